package commands

import (
	"errors"
	"strings"

	"storefront/internal/pkg/guard"
)

var ErrRecordCapturedPaymentCommandIsNotConstructed = errors.New(
	"RecordCapturedPaymentCommand must be created via NewRecordCapturedPaymentCommand constructor",
)

// RecordCapturedPaymentCommand is a capture reported by the gateway webhook.
type RecordCapturedPaymentCommand struct {
	gatewayOrderID string
	paymentID      string

	guard guard.ConstructorGuard
}

func NewRecordCapturedPaymentCommand(gatewayOrderID, paymentID string) (RecordCapturedPaymentCommand, error) {
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	paymentID = strings.TrimSpace(paymentID)

	if err := errors.Join(
		requireText("order_id", gatewayOrderID),
		requireText("payment_id", paymentID),
	); err != nil {
		return RecordCapturedPaymentCommand{}, err
	}
	return RecordCapturedPaymentCommand{
		gatewayOrderID: gatewayOrderID,
		paymentID:      paymentID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RecordCapturedPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordCapturedPaymentCommandIsNotConstructed)
}

func (c RecordCapturedPaymentCommand) GatewayOrderID() string { return c.gatewayOrderID }
func (c RecordCapturedPaymentCommand) PaymentID() string      { return c.paymentID }
