package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
	LevelAllLevels    CourseLevel = "ALL_LEVELS"
)

type Course struct {
	ID               int
	TeacherID        int
	Title            string
	Description      string
	ShortDescription *string
	Category         string
	Level            CourseLevel
	Price            decimal.Decimal
	Duration         int
	ThumbnailImage   *string
	Syllabus         *string
	IsPublished      bool
	Rating           float64
	TotalEnrollments int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Populated on detail reads.
	TeacherName  string
	TeacherImage *string
}

// CourseFilters narrows the public course listing. Zero values mean
// "no filter" except Page/PageSize, which callers must default.
type CourseFilters struct {
	Pagination
	Category  string
	Level     string
	TeacherID int
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetById(ctx context.Context, id int) (*Course, error)
	GetAll(ctx context.Context, filters CourseFilters) ([]*Course, *Metadata, error)
	GetAllByTeacher(ctx context.Context, teacherID int) ([]*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id int) error
	Publish(ctx context.Context, id int) error
}
