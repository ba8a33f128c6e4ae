package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
)

// completeSession places the session's orders as captured, completes the
// session and clears the buyer's cart, all on the caller's transaction.
func completeSession(
	ctx context.Context,
	uow CheckoutUoW,
	placer services.OrderPlacer,
	session *checkout.Session,
	paymentID string,
	now time.Time,
) ([]*order.Order, error) {
	payment, err := order.CapturedPayment(paymentID)
	if err != nil {
		return nil, err
	}

	orders, groupID, err := placer.Place(session.UserID(), session.AddressID(), session.Items(), payment, now)
	if err != nil {
		return nil, err
	}
	if err = session.Complete(paymentID, groupID, now); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().AddAll(ctx, orders); err != nil {
		return nil, err
	}
	if err = uow.CheckoutRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().ClearForUser(ctx, session.UserID()); err != nil {
		return nil, err
	}
	return orders, nil
}
