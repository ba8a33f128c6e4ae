package commands

import (
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order on behalf of an admin.
type DeleteOrderCommand struct {
	number order.Number

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID string) (DeleteOrderCommand, error) {
	n, err := order.ParseNumber(orderID)
	if err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{number: n, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Number() order.Number {
	return c.number
}
