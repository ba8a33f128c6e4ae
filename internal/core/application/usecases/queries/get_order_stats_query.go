package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// OrderStats summarises the non-deleted orders. ReceivedOrders are the ones
// still on their way: Pending, Processing or Shipped.
type OrderStats struct {
	TotalUsers      int64
	TotalOrders     int64
	CanceledOrders  int64
	DeliveredOrders int64
	ReceivedOrders  int64
}
