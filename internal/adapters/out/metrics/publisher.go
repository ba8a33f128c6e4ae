// Package metrics exports order activity as Prometheus metrics. Publisher is
// the ports.EventPublisher the unit of work hands committed events to.
package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type Publisher struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	placed      *prometheus.CounterVec
	placedTotal *prometheus.CounterVec
	transitions *prometheus.CounterVec
	cancelled   *prometheus.CounterVec
	deleted     prometheus.Counter
	stats       *prometheus.GaugeVec
}

func NewPublisher(logger *slog.Logger) *Publisher {
	p := &Publisher{
		registry: prometheus.NewRegistry(),
		logger:   logger.With("component", "order_events"),
		placed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders created, by payment status.",
		}, []string{"payment_status"}),
		placedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_amount_total",
			Help:      "Sum of order totals in major currency units, by payment status.",
		}, []string{"payment_status"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_tracking_transitions_total",
			Help:      "Tracking status updates applied by admins.",
		}, []string{"from", "to"}),
		cancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_cancelled_total",
			Help:      "Orders cancelled by customers, by the status they were cancelled from.",
		}, []string{"from"}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_deleted_total",
			Help:      "Orders soft deleted by admins.",
		}),
		stats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "order_stats",
			Help:      "Latest dashboard statistics over non-deleted orders.",
		}, []string{"kind"}),
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.placed, p.placedTotal, p.transitions, p.cancelled, p.deleted, p.stats,
	)
	return p
}

func (p *Publisher) Publish(ctx context.Context, events []order.Event) {
	for _, event := range events {
		switch e := event.(type) {
		case order.OrderPlaced:
			payment := e.Payment.String()
			p.placed.WithLabelValues(payment).Inc()
			p.placedTotal.WithLabelValues(payment).Add(e.Total.Decimal().InexactFloat64())
		case order.TrackingUpdated:
			p.transitions.WithLabelValues(e.From.String(), e.To.String()).Inc()
		case order.OrderCancelled:
			p.cancelled.WithLabelValues(e.From.String()).Inc()
		case order.OrderDeleted:
			p.deleted.Inc()
		}

		p.logger.InfoContext(ctx, "order event",
			"event", event.EventName(),
			"order_id", event.OrderNumber().String(),
		)
	}
}

// RecordStats publishes a stats snapshot as gauges.
func (p *Publisher) RecordStats(stats queries.OrderStats) {
	p.stats.WithLabelValues("users").Set(float64(stats.TotalUsers))
	p.stats.WithLabelValues("orders").Set(float64(stats.TotalOrders))
	p.stats.WithLabelValues("cancelled").Set(float64(stats.CanceledOrders))
	p.stats.WithLabelValues("delivered").Set(float64(stats.DeliveredOrders))
	p.stats.WithLabelValues("received").Set(float64(stats.ReceivedOrders))
}

func (p *Publisher) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
