package ports

import (
	"context"
	"errors"
)

var (
	ErrUnsupportedPaymentEvent = errors.New("unsupported payment event")
	// ErrPaymentGateway wraps failures talking to the gateway itself.
	ErrPaymentGateway = errors.New("payment gateway request failed")
)

// GatewayOrderRequest asks the gateway to open an order for amount minor units.
type GatewayOrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// PaymentGateway opens gateway orders the customer then pays in the browser.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (GatewayOrder, error)
}

// CapturedPayment is a payment the gateway reports as captured for one of our gateway orders.
type CapturedPayment struct {
	Event          string
	GatewayOrderID string
	PaymentID      string
}

// PaymentVerifier checks that payment data really comes from the gateway.
type PaymentVerifier interface {
	// VerifyPaymentSignature checks the signature the checkout widget returns to the browser.
	VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool

	// ParseWebhook authenticates a webhook body and extracts the captured payment.
	// Events other than captures yield ErrUnsupportedPaymentEvent.
	ParseWebhook(body []byte, signature string) (CapturedPayment, error)
}
