package payment

import (
	"errors"

	"github.com/edusphere/elearning-platform/internal/domain"
	"github.com/shopspring/decimal"
)

// MockProvider is a deterministic PaymentProvider for tests and local
// development without gateway credentials.
type MockProvider struct {
	NextOrderID string
	FailOrders  bool

	AcceptPaymentSignatures bool
	AcceptWebhookSignatures bool
}

func (m *MockProvider) CreateOrder(
	amount decimal.Decimal,
	currency string,
	receipt string,
	notes map[string]any) (*domain.GatewayOrder, error) {

	if m.FailOrders {
		return nil, errors.New("mock gateway rejected the order")
	}

	orderID := m.NextOrderID
	if orderID == "" {
		orderID = "order_mock"
	}

	return &domain.GatewayOrder{
		ID:       orderID,
		Amount:   amount.Mul(minorUnitFactor).IntPart(),
		Currency: currency,
	}, nil
}

func (m *MockProvider) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return m.AcceptPaymentSignatures
}

func (m *MockProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	return m.AcceptWebhookSignatures
}

func (m *MockProvider) KeyID() string {
	return "rzp_test_mock"
}
