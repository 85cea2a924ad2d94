package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type MockCourseRepo struct {
	domain.CourseRepository
	CreateFunc          func(ctx context.Context, course *domain.Course) error
	GetByIdFunc         func(ctx context.Context, id int) (*domain.Course, error)
	GetAllFunc          func(ctx context.Context, filters domain.CourseFilters) ([]*domain.Course, *domain.Metadata, error)
	GetAllByTeacherFunc func(ctx context.Context, teacherID int) ([]*domain.Course, error)
	UpdateFunc          func(ctx context.Context, course *domain.Course) error
	DeleteFunc          func(ctx context.Context, id int) error
	PublishFunc         func(ctx context.Context, id int) error
}

func (m *MockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	return m.CreateFunc(ctx, course)
}

func (m *MockCourseRepo) GetById(ctx context.Context, id int) (*domain.Course, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockCourseRepo) GetAll(
	ctx context.Context,
	filters domain.CourseFilters) ([]*domain.Course, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters)
}

func (m *MockCourseRepo) GetAllByTeacher(ctx context.Context, teacherID int) ([]*domain.Course, error) {
	return m.GetAllByTeacherFunc(ctx, teacherID)
}

func (m *MockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	return m.UpdateFunc(ctx, course)
}

func (m *MockCourseRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockCourseRepo) Publish(ctx context.Context, id int) error {
	return m.PublishFunc(ctx, id)
}
