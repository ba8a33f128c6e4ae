package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// CancelOrderCommandHandler only finds orders owned by the requesting user;
// anybody else's order number looks like an unknown one.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCancelOrderCommandHandler returns a handler using the wall clock.
//
// Example:
//
//	cmd, err := commands.NewCancelOrderCommand(orderID, userID, "ordered twice")
//	if err != nil {
//	    return err
//	}
//	h := commands.NewCancelOrderCommandHandler(uowFactory)
//	o, err := h.Handle(ctx, cmd)
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle returns the cancelled order. Shipped and delivered orders are rejected
// with errs.ErrBusinessRuleViolated.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetByNumberForUser(ctx, cmd.Number(), cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = o.Cancel(cmd.UserID(), cmd.Reason(), h.now()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
