package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// EventPublisher receives order events after the transaction that produced them committed.
type EventPublisher interface {
	Publish(ctx context.Context, events []order.Event)
}
