package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a customer cancelling one of their own orders.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	number order.Number
	userID kernel.UUID
	reason string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID string, userID kernel.UUID, reason string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setNumber(orderID),
		cmd.setUserID(userID),
		cmd.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}
	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Number() order.Number { return c.number }
func (c CancelOrderCommand) UserID() kernel.UUID  { return c.userID }
func (c CancelOrderCommand) Reason() string       { return c.reason }

func (c *CancelOrderCommand) setNumber(orderID string) error {
	n, err := order.ParseNumber(orderID)
	if err != nil {
		return err
	}
	c.number = n
	return nil
}

func (c *CancelOrderCommand) setUserID(userID kernel.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if err := requireText("cancellationReason", reason); err != nil {
		return err
	}
	c.reason = reason
	return nil
}
