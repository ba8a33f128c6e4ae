package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists the operations of openapi.yaml, one method per operationId.
type ServerInterface interface {
	// (POST /order/cash-on-delivery)
	PlaceCashOnDeliveryOrder(ctx echo.Context) error
	// (POST /order/checkout)
	Checkout(ctx echo.Context) error
	// (POST /order/webhook)
	PaymentWebhook(ctx echo.Context) error
	// (GET /order/order-list)
	ListUserOrders(ctx echo.Context) error
	// (GET /order/all-orders)
	ListAllOrders(ctx echo.Context) error
	// (POST /order/cancel-order)
	CancelOrder(ctx echo.Context) error
	// (PUT /order/update-tracking)
	UpdateTrackingStatus(ctx echo.Context) error
	// (DELETE /order/delete-order/{orderId})
	DeleteOrder(ctx echo.Context, orderID string) error
	// (GET /order/stats)
	GetOrderStats(ctx echo.Context) error
	// (POST /order/tracking)
	TrackOrderByProduct(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) PlaceCashOnDeliveryOrder(ctx echo.Context) error {
	return w.Handler.PlaceCashOnDeliveryOrder(ctx)
}

func (w *ServerInterfaceWrapper) Checkout(ctx echo.Context) error {
	return w.Handler.Checkout(ctx)
}

func (w *ServerInterfaceWrapper) PaymentWebhook(ctx echo.Context) error {
	return w.Handler.PaymentWebhook(ctx)
}

func (w *ServerInterfaceWrapper) ListUserOrders(ctx echo.Context) error {
	return w.Handler.ListUserOrders(ctx)
}

func (w *ServerInterfaceWrapper) ListAllOrders(ctx echo.Context) error {
	return w.Handler.ListAllOrders(ctx)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	return w.Handler.CancelOrder(ctx)
}

func (w *ServerInterfaceWrapper) UpdateTrackingStatus(ctx echo.Context) error {
	return w.Handler.UpdateTrackingStatus(ctx)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	var orderID string

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return w.Handler.DeleteOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetOrderStats(ctx echo.Context) error {
	return w.Handler.GetOrderStats(ctx)
}

func (w *ServerInterfaceWrapper) TrackOrderByProduct(ctx echo.Context) error {
	return w.Handler.TrackOrderByProduct(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RouteMiddleware groups the middleware chains per audience. Public routes
// authenticate by other means, the webhook by its signature.
type RouteMiddleware struct {
	Public []echo.MiddlewareFunc
	User   []echo.MiddlewareFunc
	Admin  []echo.MiddlewareFunc
}

// RegisterHandlers mounts the order routes.
func RegisterHandlers(router EchoRouter, si ServerInterface, m RouteMiddleware) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/order/cash-on-delivery", w.PlaceCashOnDeliveryOrder, m.User...)
	router.POST("/order/checkout", w.Checkout, m.User...)
	router.POST("/order/webhook", w.PaymentWebhook, m.Public...)
	router.GET("/order/order-list", w.ListUserOrders, m.User...)
	router.GET("/order/all-orders", w.ListAllOrders, m.Admin...)
	router.POST("/order/cancel-order", w.CancelOrder, m.User...)
	router.PUT("/order/update-tracking", w.UpdateTrackingStatus, m.Admin...)
	router.DELETE("/order/delete-order/:orderId", w.DeleteOrder, m.Admin...)
	router.GET("/order/stats", w.GetOrderStats, m.Admin...)
	router.POST("/order/tracking", w.TrackOrderByProduct, m.User...)
}
