package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type MockEnrollmentRepo struct {
	domain.EnrollmentRepository
	CreateFunc                func(ctx context.Context, enrollment *domain.Enrollment) error
	GetByIdFunc               func(ctx context.Context, id int) (*domain.Enrollment, error)
	GetByStudentAndCourseFunc func(ctx context.Context, studentID, courseID int) (*domain.Enrollment, error)
	GetAllByStudentFunc       func(ctx context.Context, studentID int) ([]*domain.Enrollment, error)
	UpdateProgressFunc        func(ctx context.Context, enrollment *domain.Enrollment) error
	GetStudentDashboardFunc   func(ctx context.Context, studentID int) (*domain.StudentDashboard, error)
}

func (m *MockEnrollmentRepo) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	return m.CreateFunc(ctx, enrollment)
}

func (m *MockEnrollmentRepo) GetById(ctx context.Context, id int) (*domain.Enrollment, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockEnrollmentRepo) GetByStudentAndCourse(
	ctx context.Context,
	studentID, courseID int) (*domain.Enrollment, error) {

	return m.GetByStudentAndCourseFunc(ctx, studentID, courseID)
}

func (m *MockEnrollmentRepo) GetAllByStudent(ctx context.Context, studentID int) ([]*domain.Enrollment, error) {
	return m.GetAllByStudentFunc(ctx, studentID)
}

func (m *MockEnrollmentRepo) UpdateProgress(ctx context.Context, enrollment *domain.Enrollment) error {
	return m.UpdateProgressFunc(ctx, enrollment)
}

func (m *MockEnrollmentRepo) GetStudentDashboard(ctx context.Context, studentID int) (*domain.StudentDashboard, error) {
	return m.GetStudentDashboardFunc(ctx, studentID)
}
