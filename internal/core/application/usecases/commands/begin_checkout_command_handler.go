package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/ports"
)

// CheckoutQuote is what the browser needs to open the payment widget.
type CheckoutQuote struct {
	SessionID      string
	GatewayOrderID string
	Amount         int64
	Currency       string
	Email          string
}

// BeginCheckoutCommandHandler opens a gateway order for the cart total and
// remembers the quote as an OPEN checkout session.
type BeginCheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	customers  ports.CustomerRepository
	gateway    ports.PaymentGateway
	now        func() time.Time
}

// NewBeginCheckoutCommandHandler wires the checkout transaction with the
// customer lookup and the payment gateway.
//
// Example:
//
//	h := commands.NewBeginCheckoutCommandHandler(uowFactory, customers, razorpayClient)
//	quote, err := h.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// quote.GatewayOrderID is handed to the payment widget
func NewBeginCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	customers ports.CustomerRepository,
	gateway ports.PaymentGateway,
) BeginCheckoutCommandHandler {
	return BeginCheckoutCommandHandler{
		uowFactory: uowFactory,
		customers:  customers,
		gateway:    gateway,
		now:        time.Now,
	}
}

func (h *BeginCheckoutCommandHandler) Handle(ctx context.Context, cmd BeginCheckoutCommand) (CheckoutQuote, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutQuote{}, err
	}

	buyer, err := h.customers.Get(ctx, cmd.UserID())
	if err != nil {
		return CheckoutQuote{}, err
	}

	session, err := checkout.NewSession(cmd.UserID(), cmd.AddressID(), cmd.Items(), h.now())
	if err != nil {
		return CheckoutQuote{}, err
	}

	gatewayOrder, err := h.gateway.CreateOrder(ctx, ports.GatewayOrderRequest{
		Amount:   session.Amount().MinorUnits(),
		Currency: session.Currency(),
		Receipt:  session.Receipt(),
	})
	if err != nil {
		return CheckoutQuote{}, err
	}
	if err = session.AttachGatewayOrder(gatewayOrder.ID); err != nil {
		return CheckoutQuote{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CheckoutQuote{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CheckoutRepository().Add(ctx, session); err != nil {
		return CheckoutQuote{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return CheckoutQuote{}, err
	}

	return CheckoutQuote{
		SessionID:      session.ID().String(),
		GatewayOrderID: session.GatewayOrderID(),
		Amount:         session.Amount().MinorUnits(),
		Currency:       session.Currency(),
		Email:          buyer.Email,
	}, nil
}
