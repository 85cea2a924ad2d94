package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
)

type MockReviewRepo struct {
	domain.ReviewRepository
	CreateFunc  func(ctx context.Context, review *domain.Review) error
	GetByIdFunc func(ctx context.Context, id int) (*domain.Review, error)
	GetAllFunc  func(ctx context.Context, filters domain.ReviewFilters) ([]*domain.Review, *domain.Metadata, error)
	UpdateFunc  func(ctx context.Context, review *domain.Review) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.CreateFunc(ctx, review)
}

func (m *MockReviewRepo) GetById(ctx context.Context, id int) (*domain.Review, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockReviewRepo) GetAll(
	ctx context.Context,
	filters domain.ReviewFilters) ([]*domain.Review, *domain.Metadata, error) {

	return m.GetAllFunc(ctx, filters)
}

func (m *MockReviewRepo) Update(ctx context.Context, review *domain.Review) error {
	return m.UpdateFunc(ctx, review)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
