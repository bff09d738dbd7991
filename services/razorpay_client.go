package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KingAshu22/Parichay-Admin/models"
	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway creates payment intents with the external processor. A call
// may create a real monetary authorization, so it is not safe to retry
// blindly; callers own that policy.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.PaymentIntent, error)
}

type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds the long-lived gateway client, constructed once at
// startup and injected. timeout bounds each order-create call; the gateway is
// the one step with an external monetary side effect and must not be left
// open-ended.
func NewRazorpayGateway(keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	secs := int16(timeout.Seconds())
	if secs < 1 {
		secs = 1
	}
	client.SetTimeout(secs)
	return &RazorpayGateway{client: client}
}

// CreateOrder creates a capture-on-create Razorpay order for the given amount
// in paise. The SDK does not take a context; the client timeout set at
// construction bounds the call.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.PaymentIntent, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	intent := &models.PaymentIntent{
		GatewayOrderID: stringField(body, "id"),
		Amount:         int64Field(body, "amount", amount),
		Currency:       stringField(body, "currency"),
		Receipt:        receipt,
		Status:         stringField(body, "status"),
	}
	if intent.GatewayOrderID == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}
	if intent.Currency == "" {
		intent.Currency = currency
	}
	return intent, nil
}

func stringField(body map[string]interface{}, key string) string {
	if v, ok := body[key].(string); ok {
		return v
	}
	return ""
}

// int64Field reads a numeric field from the decoded JSON body. The decoder
// yields float64 for numbers; paise totals stay well inside float64's exact
// integer range.
func int64Field(body map[string]interface{}, key string, fallback int64) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return fallback
}
