package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/edusphere/elearning-platform/internal/domain"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

var minorUnitFactor = decimal.NewFromInt(100)

// RazorpayProvider implements domain.PaymentProvider against the Razorpay
// Orders API. Signature verification is done locally: the gateway signs
// "orderID|paymentID" for client confirmations and the raw body for
// webhooks, both with HMAC-SHA256.
type RazorpayProvider struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayProvider(keyID, keySecret, webhookSecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client:        razorpay.NewClient(keyID, keySecret),
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (p *RazorpayProvider) CreateOrder(
	amount decimal.Decimal,
	currency string,
	receipt string,
	notes map[string]any) (*domain.GatewayOrder, error) {

	data := map[string]interface{}{
		"amount":   amount.Mul(minorUnitFactor).IntPart(),
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	order := &domain.GatewayOrder{
		ID:       orderID,
		Currency: currency,
	}

	// The gateway echoes the amount in minor units as a JSON number.
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	} else {
		order.Amount = amount.Mul(minorUnitFactor).IntPart()
	}

	return order, nil
}

func (p *RazorpayProvider) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	payload := orderID + "|" + paymentID
	return verifyHMAC([]byte(payload), signature, p.keySecret)
}

func (p *RazorpayProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	return verifyHMAC(body, signature, p.webhookSecret)
}

func (p *RazorpayProvider) KeyID() string {
	return p.keyID
}

// verifyHMAC recomputes the hex-encoded HMAC-SHA256 of payload and compares
// it to the supplied signature in constant time.
func verifyHMAC(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
