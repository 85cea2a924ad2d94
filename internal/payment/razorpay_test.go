package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(t *testing.T, payload, secret string) string {
	t.Helper()

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	provider := NewRazorpayProvider("rzp_test_key", "key-secret", "webhook-secret")

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{
			name:      "valid signature",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: signPayload(t, "order_123|pay_456", "key-secret"),
			want:      true,
		},
		{
			name:      "signature computed with wrong secret",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: signPayload(t, "order_123|pay_456", "other-secret"),
			want:      false,
		},
		{
			name:      "signature for different order",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: signPayload(t, "order_999|pay_456", "key-secret"),
			want:      false,
		},
		{
			name:      "garbage signature",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: "not-a-hex-digest",
			want:      false,
		},
		{
			name:      "empty signature",
			orderID:   "order_123",
			paymentID: "pay_456",
			signature: "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := provider.VerifyPaymentSignature(tt.orderID, tt.paymentID, tt.signature)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	provider := NewRazorpayProvider("rzp_test_key", "key-secret", "webhook-secret")

	body := []byte(`{"event":"payment.failed","payload":{}}`)

	assert.True(t, provider.VerifyWebhookSignature(body, signPayload(t, string(body), "webhook-secret")))
	assert.False(t, provider.VerifyWebhookSignature(body, signPayload(t, string(body), "key-secret")))

	// A single flipped byte in the body must invalidate the signature.
	tampered := append([]byte{}, body...)
	tampered[10] ^= 0x01
	assert.False(t, provider.VerifyWebhookSignature(tampered, signPayload(t, string(body), "webhook-secret")))
}
