package queries

import (
	"context"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle counts everything in one statement, so the order counts come from a
// single snapshot and ReceivedOrders can never go negative.
func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (OrderStats, error) {
	if err := query.Validate(); err != nil {
		return OrderStats{}, err
	}

	var stats OrderStats
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = ?) AS total_users,
			COUNT(*) AS total_orders,
			COALESCE(SUM(CASE WHEN is_cancelled = ? THEN 1 ELSE 0 END), 0) AS canceled_orders,
			COALESCE(SUM(CASE WHEN tracking_status = ? THEN 1 ELSE 0 END), 0) AS delivered_orders
		FROM orders
		WHERE is_deleted = ?
	`, string(customer.RoleUser), true, order.Delivered.String(), false).Scan(&stats).Error
	if err != nil {
		return OrderStats{}, err
	}

	stats.ReceivedOrders = max(stats.TotalOrders-stats.CanceledOrders-stats.DeliveredOrders, 0)
	return stats, nil
}
