package domain

import (
	"context"
	"time"
)

// Review targets exactly one of CourseID or TeacherID.
type Review struct {
	ID        int
	StudentID int
	CourseID  *int
	TeacherID *int
	Rating    int
	Comment   *string
	CreatedAt time.Time

	StudentName  string
	StudentImage *string
}

type ReviewFilters struct {
	Pagination
	CourseID  int
	TeacherID int
}

type ReviewRepository interface {
	// Create inserts the review and refreshes the target's aggregate rating
	// in the same transaction. Duplicates surface as ErrAlreadyReviewed via
	// the partial unique indexes.
	Create(ctx context.Context, review *Review) error
	GetById(ctx context.Context, id int) (*Review, error)
	GetAll(ctx context.Context, filters ReviewFilters) ([]*Review, *Metadata, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int) error
}
