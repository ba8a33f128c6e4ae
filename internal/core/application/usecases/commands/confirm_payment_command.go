package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrInvalidPaymentSignature = errors.New("Invalid payment signature")
)

// ConfirmPaymentCommand carries what the payment widget hands back to the
// browser after a successful payment. Line items and address are only used
// when no checkout session is known for the gateway order.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	userID         kernel.UUID
	gatewayOrderID string
	paymentID      string
	signature      string
	addressID      kernel.UUID
	items          []order.LineItem

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(
	userID kernel.UUID,
	gatewayOrderID, paymentID, signature string,
	addressID string,
	items []LineItemInput,
) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		gatewayOrderID: strings.TrimSpace(gatewayOrderID),
		paymentID:      strings.TrimSpace(paymentID),
		signature:      strings.TrimSpace(signature),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireUser(userID),
		requireText("razorpay_order_id", cmd.gatewayOrderID),
		requireText("razorpay_payment_id", cmd.paymentID),
		requireText("razorpay_signature", cmd.signature),
		cmd.setFallbackCart(addressID, items),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}
	cmd.userID = userID
	return cmd, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) UserID() kernel.UUID     { return c.userID }
func (c ConfirmPaymentCommand) GatewayOrderID() string  { return c.gatewayOrderID }
func (c ConfirmPaymentCommand) PaymentID() string       { return c.paymentID }
func (c ConfirmPaymentCommand) Signature() string       { return c.signature }
func (c ConfirmPaymentCommand) AddressID() kernel.UUID  { return c.addressID }
func (c ConfirmPaymentCommand) Items() []order.LineItem { return c.items }

// setFallbackCart accepts an absent cart; a partially supplied one must be valid.
func (c *ConfirmPaymentCommand) setFallbackCart(addressID string, inputs []LineItemInput) error {
	if addressID == "" && len(inputs) == 0 {
		return nil
	}
	id, err := kernel.ParseID("addressId", addressID)
	if err != nil {
		return err
	}
	items, err := parseLineItems(inputs)
	if err != nil {
		return err
	}
	c.addressID = id
	c.items = items
	return nil
}

func requireText(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}
