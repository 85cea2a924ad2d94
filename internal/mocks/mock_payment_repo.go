package mocks

import (
	"context"
	"time"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByOrderId(ctx context.Context, gatewayOrderId string) (*domain.Payment, error) {
	args := m.Called(ctx, gatewayOrderId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetAllByUser(ctx context.Context, userID int) ([]*domain.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) ConfirmCoursePayment(
	ctx context.Context,
	gatewayOrderId, gatewayPaymentId string) (*domain.CoursePaymentResult, error) {

	args := m.Called(ctx, gatewayOrderId, gatewayPaymentId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoursePaymentResult), args.Error(1)
}

func (m *MockPaymentRepo) ConfirmSubscriptionPayment(
	ctx context.Context,
	gatewayOrderId, gatewayPaymentId string,
	now time.Time) (*domain.Subscription, error) {

	args := m.Called(ctx, gatewayOrderId, gatewayPaymentId, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockPaymentRepo) MarkFailedByOrderId(ctx context.Context, gatewayOrderId string) error {
	args := m.Called(ctx, gatewayOrderId)
	return args.Error(0)
}
