package mocks

import (
	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateOrder(
	amount decimal.Decimal,
	currency, receipt string,
	notes map[string]any) (*domain.GatewayOrder, error) {

	args := m.Called(amount, currency, receipt, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatewayOrder), args.Error(1)
}

func (m *MockPaymentProvider) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

func (m *MockPaymentProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

func (m *MockPaymentProvider) KeyID() string {
	args := m.Called()
	return args.String(0)
}
