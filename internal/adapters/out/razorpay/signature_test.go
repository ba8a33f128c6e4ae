package razorpay_test

import (
	"fmt"
	"testing"

	"storefront/internal/adapters/out/razorpay"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_VerifyPaymentSignature(t *testing.T) {
	v := razorpay.NewVerifier("key_secret", "hook_secret")
	valid := razorpay.Sign([]byte("key_secret"), []byte("order_1|pay_1"))

	assert.True(t, v.VerifyPaymentSignature("order_1", "pay_1", valid))
	assert.False(t, v.VerifyPaymentSignature("order_1", "pay_2", valid), "other payment")
	assert.False(t, v.VerifyPaymentSignature("order_1", "pay_1", razorpay.Sign([]byte("hook_secret"), []byte("order_1|pay_1"))))
	assert.False(t, v.VerifyPaymentSignature("order_1", "pay_1", "not-hex"))
	assert.False(t, v.VerifyPaymentSignature("order_1", "pay_1", ""))
}

func webhookBody(event string) []byte {
	return []byte(fmt.Sprintf(`{
		"entity": "event",
		"event": %q,
		"payload": {
			"payment": {"entity": {"id": "pay_29QQoUBi66xm2f", "order_id": "order_9A33XWu170gUtm", "status": "captured"}},
			"order": {"entity": {"id": "order_9A33XWu170gUtm"}}
		}
	}`, event))
}

func TestVerifier_ParseWebhook(t *testing.T) {
	v := razorpay.NewVerifier("key_secret", "hook_secret")

	t.Run("payment captured", func(t *testing.T) {
		body := webhookBody(razorpay.EventPaymentCaptured)
		captured, err := v.ParseWebhook(body, razorpay.Sign([]byte("hook_secret"), body))

		require.NoError(t, err)
		assert.Equal(t, ports.CapturedPayment{
			Event:          "payment.captured",
			GatewayOrderID: "order_9A33XWu170gUtm",
			PaymentID:      "pay_29QQoUBi66xm2f",
		}, captured)
	})

	t.Run("order paid", func(t *testing.T) {
		body := webhookBody(razorpay.EventOrderPaid)
		captured, err := v.ParseWebhook(body, razorpay.Sign([]byte("hook_secret"), body))

		require.NoError(t, err)
		assert.Equal(t, "order_9A33XWu170gUtm", captured.GatewayOrderID)
	})

	t.Run("other events are unsupported", func(t *testing.T) {
		body := webhookBody("payment.failed")
		_, err := v.ParseWebhook(body, razorpay.Sign([]byte("hook_secret"), body))

		assert.ErrorIs(t, err, ports.ErrUnsupportedPaymentEvent)
	})

	t.Run("tampered body", func(t *testing.T) {
		body := webhookBody(razorpay.EventPaymentCaptured)
		sig := razorpay.Sign([]byte("hook_secret"), body)
		body[len(body)-2] = ' '

		_, err := v.ParseWebhook(body, sig)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), razorpay.ErrInvalidWebhookSignature.Error())
	})

	t.Run("no webhook secret configured", func(t *testing.T) {
		body := webhookBody(razorpay.EventPaymentCaptured)
		_, err := razorpay.NewVerifier("key_secret", "").ParseWebhook(body, razorpay.Sign(nil, body))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
