package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// DeleteOrderCommandHandler soft deletes orders for admins.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewDeleteOrderCommandHandler returns a handler using the wall clock.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (*order.Order, error) {
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
	o, err := repo.GetByNumber(ctx, cmd.Number())
	if err != nil {
		return nil, err
	}

	if err = o.Delete(h.now()); err != nil {
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
