// Package http exposes the order use cases as the /order JSON API on echo.
package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 1 << 20

type (
	CashOnDeliveryPlacer interface {
		Handle(ctx context.Context, cmd commands.PlaceCashOnDeliveryOrderCommand) ([]*order.Order, error)
	}
	CheckoutStarter interface {
		Handle(ctx context.Context, cmd commands.BeginCheckoutCommand) (commands.CheckoutQuote, error)
	}
	PaymentConfirmer interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) ([]*order.Order, error)
	}
	CapturedPaymentRecorder interface {
		Handle(ctx context.Context, cmd commands.RecordCapturedPaymentCommand) ([]*order.Order, error)
	}
	OrderCanceller interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	TrackingUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateTrackingStatusCommand) (*order.Order, error)
	}
	OrderDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) (*order.Order, error)
	}
	UserOrdersLister interface {
		Handle(ctx context.Context, query queries.ListUserOrdersQuery) ([]queries.OrderView, error)
	}
	AllOrdersLister interface {
		Handle(ctx context.Context, query queries.ListAllOrdersQuery) ([]queries.OrderView, error)
	}
	StatsReader interface {
		Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.OrderStats, error)
	}
	ProductTracker interface {
		Handle(ctx context.Context, query queries.TrackOrderByProductQuery) (queries.TrackingView, error)
	}
)

// Handlers are the use cases the HTTP server delegates to.
type Handlers struct {
	PlaceCashOnDelivery   CashOnDeliveryPlacer
	BeginCheckout         CheckoutStarter
	ConfirmPayment        PaymentConfirmer
	RecordCapturedPayment CapturedPaymentRecorder
	CancelOrder           OrderCanceller
	UpdateTracking        TrackingUpdater
	DeleteOrder           OrderDeleter

	ListUserOrders UserOrdersLister
	ListAllOrders  AllOrdersLister
	OrderStats     StatsReader
	TrackByProduct ProductTracker
}

// Server implements ServerInterface on top of the order use cases.
type Server struct {
	handlers Handlers
	verifier ports.PaymentVerifier
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, verifier ports.PaymentVerifier, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		verifier: verifier,
		logger:   logger.With("component", "http"),
	}
}

func bind(c echo.Context, req any, missing string) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, missing).SetInternal(err)
	}
	return nil
}

// PlaceCashOnDeliveryOrder handles POST /order/cash-on-delivery.
func (s *Server) PlaceCashOnDeliveryOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req PlaceOrderRequest
	if err = bind(c, &req, commands.ErrNoLineItems.Error()); err != nil {
		return err
	}

	cmd, err := commands.NewPlaceCashOnDeliveryOrderCommand(userID, req.AddressID, lineItemInputs(req.ListItems))
	if err != nil {
		return err
	}

	orders, err := s.handlers.PlaceCashOnDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(c, "Order created successfully", toOrderResponses(orders))
}

// Checkout handles POST /order/checkout. Without gateway fields it opens a
// Razorpay order; with them it verifies the payment and creates the orders.
func (s *Server) Checkout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err = bind(c, &req, commands.ErrNoLineItems.Error()); err != nil {
		return err
	}
	ctx := c.Request().Context()

	if req.confirming() {
		cmd, cmdErr := commands.NewConfirmPaymentCommand(
			userID,
			req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature,
			req.AddressID,
			lineItemInputs(req.ListItems),
		)
		if cmdErr != nil {
			return cmdErr
		}

		orders, confirmErr := s.handlers.ConfirmPayment.Handle(ctx, cmd)
		if confirmErr != nil {
			return confirmErr
		}
		return ok(c, "Payment verified and order created successfully", toOrderResponses(orders))
	}

	cmd, err := commands.NewBeginCheckoutCommand(userID, req.AddressID, lineItemInputs(req.ListItems))
	if err != nil {
		return err
	}

	quote, err := s.handlers.BeginCheckout.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	return ok(c, "Payment order created", CheckoutQuoteResponse{
		ID:       quote.GatewayOrderID,
		Amount:   quote.Amount,
		Currency: quote.Currency,
		Email:    quote.Email,
	})
}

// PaymentWebhook handles POST /order/webhook. Anything that is not a captured
// payment for an open session is acknowledged without creating orders, so
// Razorpay stops retrying it.
func (s *Server) PaymentWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	captured, err := s.verifier.ParseWebhook(body, c.Request().Header.Get("X-Razorpay-Signature"))
	if errors.Is(err, ports.ErrUnsupportedPaymentEvent) {
		s.logger.InfoContext(ctx, "webhook event ignored", "reason", err.Error())
		return ok(c, "Event ignored", struct{}{})
	}
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordCapturedPaymentCommand(captured.GatewayOrderID, captured.PaymentID)
	if err != nil {
		return err
	}

	orders, err := s.handlers.RecordCapturedPayment.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		s.logger.WarnContext(ctx, "webhook for unknown checkout session",
			"gateway_order_id", captured.GatewayOrderID,
			"payment_id", captured.PaymentID,
		)
		return ok(c, "Event acknowledged", struct{}{})
	case err != nil:
		return err
	}

	s.logger.InfoContext(ctx, "payment captured",
		"event", captured.Event,
		"gateway_order_id", captured.GatewayOrderID,
		"orders", len(orders),
	)
	return ok(c, "Event processed", struct{}{})
}

// ListUserOrders handles GET /order/order-list.
func (s *Server) ListUserOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListUserOrdersQuery(userID)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListUserOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, "Order list", toOrderDetailsResponses(views))
}

// ListAllOrders handles GET /order/all-orders.
func (s *Server) ListAllOrders(c echo.Context) error {
	views, err := s.handlers.ListAllOrders.Handle(c.Request().Context(), queries.NewListAllOrdersQuery())
	if err != nil {
		return err
	}
	return ok(c, "All orders", toOrderDetailsResponses(views))
}

// CancelOrder handles POST /order/cancel-order.
func (s *Server) CancelOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CancelOrderRequest
	if err = bind(c, &req, "Provide orderId and cancellationReason"); err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(req.OrderID, userID, req.CancellationReason)
	if err != nil {
		return err
	}

	cancelled, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(c, "Order cancelled successfully", toOrderResponse(cancelled))
}

// UpdateTrackingStatus handles PUT /order/update-tracking.
func (s *Server) UpdateTrackingStatus(c echo.Context) error {
	adminID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateTrackingRequest
	if err = bind(c, &req, "Provide orderId and tracking_status"); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTrackingStatusCommand(req.OrderID, req.TrackingStatus, adminID)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateTracking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(c, "Tracking status updated successfully", toOrderResponse(updated))
}

// DeleteOrder handles DELETE /order/delete-order/{orderId}.
func (s *Server) DeleteOrder(c echo.Context, orderID string) error {
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}

	deleted, err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ok(c, "Order deleted successfully", toOrderResponse(deleted))
}

// GetOrderStats handles GET /order/stats.
func (s *Server) GetOrderStats(c echo.Context) error {
	stats, err := s.handlers.OrderStats.Handle(c.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return err
	}
	return ok(c, "Order statistics", OrderStatsResponse{
		TotalUsers:      stats.TotalUsers,
		TotalOrders:     stats.TotalOrders,
		CanceledOrders:  stats.CanceledOrders,
		DeliveredOrders: stats.DeliveredOrders,
		ReceivedOrders:  stats.ReceivedOrders,
	})
}

// TrackOrderByProduct handles POST /order/tracking.
func (s *Server) TrackOrderByProduct(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req TrackOrderRequest
	if err = bind(c, &req, "Provide productId"); err != nil {
		return err
	}

	query, err := queries.NewTrackOrderByProductQuery(userID, req.ProductID)
	if err != nil {
		return err
	}

	view, err := s.handlers.TrackByProduct.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, "Order tracking details", toTrackingResponse(view))
}
