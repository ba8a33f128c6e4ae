package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// Event is a fact recorded by the Order aggregate. The unit of work hands pulled
// events to the configured publisher after a successful commit.
type Event interface {
	EventName() string
	OrderNumber() Number
}

type OrderPlaced struct {
	Number     Number
	GroupID    kernel.UUID
	UserID     kernel.UUID
	Total      kernel.Money
	Payment    PaymentStatus
	OccurredAt time.Time
}

func (e OrderPlaced) EventName() string   { return "order.placed" }
func (e OrderPlaced) OrderNumber() Number { return e.Number }

type TrackingUpdated struct {
	Number     Number
	From       Status
	To         Status
	UpdatedBy  kernel.UUID
	OccurredAt time.Time
}

func (e TrackingUpdated) EventName() string   { return "order.tracking_updated" }
func (e TrackingUpdated) OrderNumber() Number { return e.Number }

type OrderCancelled struct {
	Number     Number
	From       Status
	Reason     string
	OccurredAt time.Time
}

func (e OrderCancelled) EventName() string   { return "order.cancelled" }
func (e OrderCancelled) OrderNumber() Number { return e.Number }

type OrderDeleted struct {
	Number     Number
	OccurredAt time.Time
}

func (e OrderDeleted) EventName() string   { return "order.deleted" }
func (e OrderDeleted) OrderNumber() Number { return e.Number }
