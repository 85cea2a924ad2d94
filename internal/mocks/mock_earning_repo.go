package mocks

import (
	"context"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/shopspring/decimal"
)

type MockEarningRepo struct {
	domain.EarningRepository
	GetAllByTeacherFunc func(ctx context.Context, teacherID int) ([]*domain.Earning, decimal.Decimal, error)
}

func (m *MockEarningRepo) GetAllByTeacher(
	ctx context.Context,
	teacherID int) ([]*domain.Earning, decimal.Decimal, error) {

	return m.GetAllByTeacherFunc(ctx, teacherID)
}

type MockSubscriptionRepo struct {
	domain.SubscriptionRepository
	GetByTeacherFunc func(ctx context.Context, teacherID int) (*domain.Subscription, error)
}

func (m *MockSubscriptionRepo) GetByTeacher(ctx context.Context, teacherID int) (*domain.Subscription, error) {
	return m.GetByTeacherFunc(ctx, teacherID)
}
