package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrBeginCheckoutCommandIsNotConstructed = errors.New(
	"BeginCheckoutCommand must be created via NewBeginCheckoutCommand constructor",
)

// BeginCheckoutCommand quotes the cart for online payment.
type BeginCheckoutCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	addressID kernel.UUID
	items     []order.LineItem

	guard guard.ConstructorGuard
}

func NewBeginCheckoutCommand(userID kernel.UUID, addressID string, items []LineItemInput) (BeginCheckoutCommand, error) {
	cmd := BeginCheckoutCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddressID(addressID),
		cmd.setItems(items),
	); err != nil {
		return BeginCheckoutCommand{}, err
	}
	return cmd, nil
}

func (c BeginCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrBeginCheckoutCommandIsNotConstructed)
}

func (c BeginCheckoutCommand) UserID() kernel.UUID     { return c.userID }
func (c BeginCheckoutCommand) AddressID() kernel.UUID  { return c.addressID }
func (c BeginCheckoutCommand) Items() []order.LineItem { return c.items }

func (c *BeginCheckoutCommand) setUserID(userID kernel.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *BeginCheckoutCommand) setAddressID(addressID string) error {
	id, err := kernel.ParseID("addressId", addressID)
	if err != nil {
		return err
	}
	c.addressID = id
	return nil
}

func (c *BeginCheckoutCommand) setItems(inputs []LineItemInput) error {
	items, err := parseLineItems(inputs)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}
