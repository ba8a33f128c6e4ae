package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	rzputils "github.com/razorpay/razorpay-go/utils"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventOrderPaid       = "order.paid"
)

var ErrInvalidWebhookSignature = errors.New("Invalid webhook signature")

// Verifier implements ports.PaymentVerifier with the SDK's signature helpers.
type Verifier struct {
	keySecret     string
	webhookSecret string
}

func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{keySecret: keySecret, webhookSecret: webhookSecret}
}

// Sign returns hex(HMAC-SHA256(secret, message)), the format Razorpay uses for
// both checkout and webhook signatures. It produces signatures for local
// tooling and tests; verification goes through the SDK.
func Sign(secret, message []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks the signature the checkout widget returns for
// gatewayOrderID|paymentID.
func (v *Verifier) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool {
	if v.keySecret == "" || signature == "" {
		return false
	}
	return rzputils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": paymentID,
	}, signature, v.keySecret)
}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

func (v *Verifier) ParseWebhook(body []byte, signature string) (ports.CapturedPayment, error) {
	if v.webhookSecret == "" || signature == "" ||
		!rzputils.VerifyWebhookSignature(string(body), signature, v.webhookSecret) {
		return ports.CapturedPayment{}, errs.NewValueIsInvalidErrorWithCause("X-Razorpay-Signature", ErrInvalidWebhookSignature)
	}

	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ports.CapturedPayment{}, errs.NewValueIsInvalidErrorWithCause("webhook body", err)
	}

	switch env.Event {
	case EventPaymentCaptured, EventOrderPaid:
	default:
		return ports.CapturedPayment{}, fmt.Errorf("%w: %q", ports.ErrUnsupportedPaymentEvent, env.Event)
	}

	captured := ports.CapturedPayment{
		Event:          env.Event,
		GatewayOrderID: env.Payload.Payment.Entity.OrderID,
		PaymentID:      env.Payload.Payment.Entity.ID,
	}
	if captured.GatewayOrderID == "" {
		captured.GatewayOrderID = env.Payload.Order.Entity.ID
	}
	if captured.GatewayOrderID == "" || captured.PaymentID == "" {
		return ports.CapturedPayment{}, errs.NewValueIsRequiredError("payload.payment.entity")
	}
	return captured, nil
}
