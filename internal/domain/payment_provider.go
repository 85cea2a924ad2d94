package domain

import "github.com/shopspring/decimal"

// GatewayOrder is the provider-side intent to collect a specific amount.
// Amount is in the currency's minor unit, as returned by the gateway.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
}

// PaymentProvider is the trust boundary to the payment gateway. Signature
// checks must be constant time; a true result is the only proof that the
// client-side checkout actually happened.
type PaymentProvider interface {
	CreateOrder(amount decimal.Decimal, currency, receipt string, notes map[string]any) (*GatewayOrder, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
	KeyID() string
}
