package domain

import (
	"context"
	"time"
)

type Enrollment struct {
	ID          int
	StudentID   int
	CourseID    int
	Progress    int
	EnrolledAt  time.Time
	CompletedAt *time.Time

	// Populated on reads for the student's own listing.
	CourseTitle  string
	CourseThumb  *string
	TeacherName  string
}

// StudentDashboard aggregates a student's enrollment activity.
type StudentDashboard struct {
	TotalEnrollments  int
	CompletedCourses  int
	InProgressCourses int
}

type EnrollmentRepository interface {
	// Create inserts the enrollment and bumps the course's enrollment
	// counter in one transaction. Duplicate (student, course) pairs are
	// rejected with ErrAlreadyEnrolled by the unique constraint, never by a
	// prior read.
	Create(ctx context.Context, enrollment *Enrollment) error
	GetById(ctx context.Context, id int) (*Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int) (*Enrollment, error)
	GetAllByStudent(ctx context.Context, studentID int) ([]*Enrollment, error)
	UpdateProgress(ctx context.Context, enrollment *Enrollment) error
	GetStudentDashboard(ctx context.Context, studentID int) (*StudentDashboard, error)
}
