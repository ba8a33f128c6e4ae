package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// OrderPlacer turns the line items of one checkout into orders.
//
// Business rules:
//   - at least one line item and a delivery address are required
//   - every line item becomes its own order with its own order number
//   - all orders of one checkout share a freshly generated group id
//   - every order carries the same payment
//
// Example usage:
//
//	placer := NewOrderPlacer()
//	orders, groupID, err := placer.Place(userID, addressID, items, order.CashOnDeliveryPayment(), time.Now())
type OrderPlacer struct{}

func NewOrderPlacer() OrderPlacer {
	return OrderPlacer{}
}

func (p OrderPlacer) Place(
	userID, addressID kernel.UUID,
	items []order.LineItem,
	payment order.Payment,
	now time.Time,
) ([]*order.Order, kernel.UUID, error) {
	if len(items) == 0 {
		return nil, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(
			"list_items", errors.New("Provide list_items and addressId"))
	}
	if err := addressID.Validate(); err != nil {
		return nil, kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause("addressId", err)
	}

	groupID := kernel.NewUUID()
	orders := make([]*order.Order, 0, len(items))
	for i, item := range items {
		o, err := order.NewOrder(userID, groupID, addressID, item, payment, now)
		if err != nil {
			return nil, kernel.UUID{}, fmt.Errorf("list_items[%d]: %w", i, err)
		}
		orders = append(orders, o)
	}
	return orders, groupID, nil
}
