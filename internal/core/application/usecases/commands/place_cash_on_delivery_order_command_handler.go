package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// PlaceCashOnDeliveryOrderCommandHandler inserts one order per line item and
// empties the cart. Both happen in one transaction: the cart is only cleared
// when every insert succeeded.
type PlaceCashOnDeliveryOrderCommandHandler struct {
	uowFactory PlacementUoWFactory
	placer     services.OrderPlacer
	now        func() time.Time
}

// NewPlaceCashOnDeliveryOrderCommandHandler returns a handler that prices line
// items with services.OrderPlacer.
//
// Example:
//
//	h := commands.NewPlaceCashOnDeliveryOrderCommandHandler(uowFactory)
//	orders, err := h.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// len(orders) == number of line items, all sharing one GroupID
func NewPlaceCashOnDeliveryOrderCommandHandler(uowFactory PlacementUoWFactory) PlaceCashOnDeliveryOrderCommandHandler {
	return PlaceCashOnDeliveryOrderCommandHandler{
		uowFactory: uowFactory,
		placer:     services.NewOrderPlacer(),
		now:        time.Now,
	}
}

func (h *PlaceCashOnDeliveryOrderCommandHandler) Handle(
	ctx context.Context,
	cmd PlaceCashOnDeliveryOrderCommand,
) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orders, _, err := h.placer.Place(cmd.UserID(), cmd.AddressID(), cmd.Items(), order.CashOnDeliveryPayment(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().AddAll(ctx, orders); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().ClearForUser(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}
