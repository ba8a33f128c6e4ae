package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// RecordCapturedPaymentCommandHandler completes the session a webhook capture
// refers to, including sessions that expired before the payment arrived. A
// session the browser already confirmed is left alone and nil orders are
// returned, also when the browser wins a concurrent race. Unknown gateway
// orders surface errs.ErrObjectNotFound.
type RecordCapturedPaymentCommandHandler struct {
	uowFactory CheckoutUoWFactory
	placer     services.OrderPlacer
	now        func() time.Time
}

// NewRecordCapturedPaymentCommandHandler is used by the payment webhook.
//
// Example:
//
//	cmd, err := commands.NewRecordCapturedPaymentCommand(event.OrderID, event.PaymentID)
//	if err != nil {
//	    return err
//	}
//	orders, err := h.Handle(ctx, cmd)
//	// orders is nil when the browser confirmed the session first
func NewRecordCapturedPaymentCommandHandler(uowFactory CheckoutUoWFactory) RecordCapturedPaymentCommandHandler {
	return RecordCapturedPaymentCommandHandler{
		uowFactory: uowFactory,
		placer:     services.NewOrderPlacer(),
		now:        time.Now,
	}
}

func (h *RecordCapturedPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd RecordCapturedPaymentCommand,
) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.recordInTx(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return h.recordInTx(ctx, cmd)
	}
	return orders, err
}

func (h *RecordCapturedPaymentCommandHandler) recordInTx(
	ctx context.Context,
	cmd RecordCapturedPaymentCommand,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	session, err := uow.CheckoutRepository().GetByGatewayOrderID(ctx, cmd.GatewayOrderID())
	if err != nil {
		return nil, err
	}
	if session.Status() == checkout.Completed {
		return nil, nil
	}

	orders, err := completeSession(ctx, uow, h.placer, session, cmd.PaymentID(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}
