// Package ports defines the contracts between the storefront core and its
// adapters: repositories, the unit of work, the payment gateway and the event
// publisher.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their tracking history.
type OrderRepository interface {
	// AddAll inserts the orders of one checkout in a single batch.
	AddAll(ctx context.Context, orders []*order.Order) error

	// Update writes mutable state and new history entries. It fails with
	// errs.ErrVersionIsInvalid if the stored version differs from aggregate.Version().
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByNumber returns a non-deleted order or errs.ErrObjectNotFound.
	GetByNumber(ctx context.Context, number order.Number) (*order.Order, error)

	// GetByNumberForUser returns the user's order regardless of the deleted flag.
	GetByNumberForUser(ctx context.Context, number order.Number, userID kernel.UUID) (*order.Order, error)

	// ListByGroup returns the orders created by one checkout, oldest first.
	ListByGroup(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error)
}
