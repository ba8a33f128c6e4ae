package cmd

import (
	"log/slog"

	httpapi "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/metrics"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/adapters/out/razorpay"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	metrics    *metrics.Publisher
	uowFactory *postgres.GormUnitOfWorkFactory
	gateway    *razorpay.Client
	verifier   *razorpay.Verifier
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	publisher := metrics.NewPublisher(logger)
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		metrics:    publisher,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher),
		gateway: razorpay.NewClient(razorpay.Config{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayBaseURL,
		}, logger),
		verifier: razorpay.NewVerifier(cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) placementUoWFactory() commands.PlacementUoWFactory {
	return FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceCashOnDeliveryOrderCommandHandler() *commands.PlaceCashOnDeliveryOrderCommandHandler {
	h := commands.NewPlaceCashOnDeliveryOrderCommandHandler(c.placementUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateBeginCheckoutCommandHandler() *commands.BeginCheckoutCommandHandler {
	h := commands.NewBeginCheckoutCommandHandler(c.checkoutUoWFactory(), userrepo.NewGormCustomerRepository(c.gormDB), c.gateway)
	return &h
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() *commands.ConfirmPaymentCommandHandler {
	h := commands.NewConfirmPaymentCommandHandler(c.checkoutUoWFactory(), userrepo.NewGormCustomerRepository(c.gormDB), c.verifier)
	return &h
}

func (c *CompositionRoot) CreateRecordCapturedPaymentCommandHandler() *commands.RecordCapturedPaymentCommandHandler {
	h := commands.NewRecordCapturedPaymentCommandHandler(c.checkoutUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateTrackingStatusCommandHandler() *commands.UpdateTrackingStatusCommandHandler {
	h := commands.NewUpdateTrackingStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateExpireCheckoutSessionsCommandHandler() *commands.ExpireCheckoutSessionsCommandHandler {
	h := commands.NewExpireCheckoutSessionsCommandHandler(c.checkoutUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAllOrdersQueryHandler() queries.ListAllOrdersQueryHandler {
	return queries.NewListAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderByProductQueryHandler() queries.TrackOrderByProductQueryHandler {
	return queries.NewTrackOrderByProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpapi.NewServer(httpapi.Handlers{
		PlaceCashOnDelivery:   c.CreatePlaceCashOnDeliveryOrderCommandHandler(),
		BeginCheckout:         c.CreateBeginCheckoutCommandHandler(),
		ConfirmPayment:        c.CreateConfirmPaymentCommandHandler(),
		RecordCapturedPayment: c.CreateRecordCapturedPaymentCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),
		UpdateTracking:        c.CreateUpdateTrackingStatusCommandHandler(),
		DeleteOrder:           c.CreateDeleteOrderCommandHandler(),
		ListUserOrders:        c.CreateListUserOrdersQueryHandler(),
		ListAllOrders:         c.CreateListAllOrdersQueryHandler(),
		OrderStats:            c.CreateGetOrderStatsQueryHandler(),
		TrackByProduct:        c.CreateTrackOrderByProductQueryHandler(),
	}, c.verifier, c.logger)

	return httpapi.NewRouter(server, httpapi.RouterConfig{
		JWTSecret:      []byte(c.cfg.JWTSecret),
		AllowedOrigins: c.cfg.AllowedOrigins,
		Metrics:        c.metrics.Handler(),
		Logger:         c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireCheckoutSessionsCommandHandler(),
		c.cfg.CheckoutSessionTTL,
		c.CreateGetOrderStatsQueryHandler(),
		c.metrics,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
