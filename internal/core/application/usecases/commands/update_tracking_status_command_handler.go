package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// UpdateTrackingStatusCommandHandler moves an order along the tracking
// sequence on behalf of an admin.
type UpdateTrackingStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewUpdateTrackingStatusCommandHandler(uowFactory OrderUoWFactory) UpdateTrackingStatusCommandHandler {
	return UpdateTrackingStatusCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle loads the non-deleted order, applies the transition and writes it back
// with the version it was read at.
func (h *UpdateTrackingStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingStatusCommand) (*order.Order, error) {
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

	if err = o.UpdateTracking(cmd.Status(), cmd.UpdatedBy(), h.now()); err != nil {
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
