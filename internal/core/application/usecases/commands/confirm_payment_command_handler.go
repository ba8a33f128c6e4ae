package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler creates captured orders once the browser proves
// the payment with the gateway signature.
//
// Session handling:
//   - OPEN or EXPIRED: the session's frozen cart and address are used
//   - COMPLETED: the orders created earlier are returned unchanged
//   - unknown gateway order: the cart sent with the request is used
//
// When the webhook completes the same session concurrently, the losing
// transaction rolls back on the version check and the retry returns the
// webhook's orders.
type ConfirmPaymentCommandHandler struct {
	uowFactory CheckoutUoWFactory
	customers  ports.CustomerRepository
	verifier   ports.PaymentVerifier
	placer     services.OrderPlacer
	now        func() time.Time
}

// NewConfirmPaymentCommandHandler wires the handler to its unit of work, the
// customer lookup and the gateway signature check.
//
// Example:
//
//	h := commands.NewConfirmPaymentCommandHandler(uowFactory, customers, verifier)
//	orders, err := h.Handle(ctx, cmd)
func NewConfirmPaymentCommandHandler(
	uowFactory CheckoutUoWFactory,
	customers ports.CustomerRepository,
	verifier ports.PaymentVerifier,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		customers:  customers,
		verifier:   verifier,
		placer:     services.NewOrderPlacer(),
		now:        time.Now,
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.verifier.VerifyPaymentSignature(cmd.GatewayOrderID(), cmd.PaymentID(), cmd.Signature()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("razorpay_signature", ErrInvalidPaymentSignature)
	}

	if _, err := h.customers.Get(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	orders, err := h.confirmInTx(ctx, cmd)
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return h.confirmInTx(ctx, cmd)
	}
	return orders, err
}

func (h *ConfirmPaymentCommandHandler) confirmInTx(ctx context.Context, cmd ConfirmPaymentCommand) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := h.confirm(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return orders, nil
}

func (h *ConfirmPaymentCommandHandler) confirm(
	ctx context.Context,
	uow CheckoutUoW,
	cmd ConfirmPaymentCommand,
) ([]*order.Order, error) {
	now := h.now()

	session, err := uow.CheckoutRepository().GetByGatewayOrderID(ctx, cmd.GatewayOrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.placeWithoutSession(ctx, uow, cmd, now)
	}
	if err != nil {
		return nil, err
	}

	if !session.BelongsTo(cmd.UserID()) {
		return nil, errs.NewObjectNotFoundError("razorpay_order_id", cmd.GatewayOrderID())
	}
	if session.Status() == checkout.Completed {
		return uow.OrderRepository().ListByGroup(ctx, session.GroupID())
	}
	return completeSession(ctx, uow, h.placer, session, cmd.PaymentID(), now)
}

func (h *ConfirmPaymentCommandHandler) placeWithoutSession(
	ctx context.Context,
	uow CheckoutUoW,
	cmd ConfirmPaymentCommand,
	now time.Time,
) ([]*order.Order, error) {
	if len(cmd.Items()) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("list_items", ErrNoLineItems)
	}

	payment, err := order.CapturedPayment(cmd.PaymentID())
	if err != nil {
		return nil, err
	}
	orders, _, err := h.placer.Place(cmd.UserID(), cmd.AddressID(), cmd.Items(), payment, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().AddAll(ctx, orders); err != nil {
		return nil, err
	}
	if err = uow.CartRepository().ClearForUser(ctx, cmd.UserID()); err != nil {
		return nil, err
	}
	return orders, nil
}
