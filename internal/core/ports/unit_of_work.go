package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction. Repositories it hands out are bound
// to the transaction opened by Begin; events of tracked aggregates are
// published after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CheckoutRepository() CheckoutRepository
	CartRepository() CartRepository
}
