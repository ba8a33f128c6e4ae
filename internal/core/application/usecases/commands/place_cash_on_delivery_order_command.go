package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrPlaceCashOnDeliveryOrderCommandIsNotConstructed = errors.New(
	"PlaceCashOnDeliveryOrderCommand must be created via NewPlaceCashOnDeliveryOrderCommand constructor",
)

// PlaceCashOnDeliveryOrderCommand turns the customer's cart into unpaid orders
// settled on delivery.
type PlaceCashOnDeliveryOrderCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	addressID kernel.UUID
	items     []order.LineItem

	guard guard.ConstructorGuard
}

func NewPlaceCashOnDeliveryOrderCommand(
	userID kernel.UUID,
	addressID string,
	items []LineItemInput,
) (PlaceCashOnDeliveryOrderCommand, error) {
	cmd := PlaceCashOnDeliveryOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddressID(addressID),
		cmd.setItems(items),
	); err != nil {
		return PlaceCashOnDeliveryOrderCommand{}, err
	}
	return cmd, nil
}

func (c PlaceCashOnDeliveryOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceCashOnDeliveryOrderCommandIsNotConstructed)
}

func (c PlaceCashOnDeliveryOrderCommand) UserID() kernel.UUID     { return c.userID }
func (c PlaceCashOnDeliveryOrderCommand) AddressID() kernel.UUID  { return c.addressID }
func (c PlaceCashOnDeliveryOrderCommand) Items() []order.LineItem { return c.items }

func (c *PlaceCashOnDeliveryOrderCommand) setUserID(userID kernel.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *PlaceCashOnDeliveryOrderCommand) setAddressID(addressID string) error {
	id, err := kernel.ParseID("addressId", addressID)
	if err != nil {
		return err
	}
	c.addressID = id
	return nil
}

func (c *PlaceCashOnDeliveryOrderCommand) setItems(inputs []LineItemInput) error {
	items, err := parseLineItems(inputs)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}
