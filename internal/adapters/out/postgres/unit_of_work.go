// Package postgres implements the storefront's unit of work on top of GORM.
//
// A unit of work wraps one database transaction. Repositories handed out after
// Begin run on that transaction; before Begin they use the plain connection.
// Orders added or updated through the order repository are tracked, and once
// Commit succeeds their pending domain events go to the EventPublisher.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().AddAll(ctx, orders); err != nil {
//	    return err
//	}
//	if err := uow.CartRepository().ClearForUser(ctx, userID); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency:
//   - each UnitOfWork owns one transaction; goroutines must not share one
//   - orders and checkout sessions carry a version column, so a writer holding
//     a stale copy fails with errs.VersionIsInvalidError instead of overwriting
//   - handlers that can lose such a race retry once on a fresh unit of work
package postgres

import (
	"context"

	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/checkoutrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work whose events
// are published after commit.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands every operation a fresh unit of work.
//
// Example:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db, metrics.NewPublisher(logger))
//	uow := factory.Create()
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates units of work on db. publisher receives the
// order events of every committed transaction and may be nil.
//
// Example:
//
//	db, err := postgres.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db, publisher)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create returns a unit of work with no transaction open yet.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork. It is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
//
// Example:
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit ends the transaction and publishes the events of tracked orders.
// It returns gorm.ErrInvalidTransaction when no transaction is open. Events are
// only published once the commit succeeded.
//
// Example:
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction. After Commit there is nothing left to
// roll back and gorm.ErrInvalidTransaction is returned.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the open transaction.
// Orders it writes are tracked for event publishing.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// CheckoutRepository returns a checkout session repository bound to the open transaction.
func (uow *GormUnitOfWork) CheckoutRepository() ports.CheckoutRepository {
	return checkoutrepo.NewGormCheckoutRepository(uow.conn())
}

// CartRepository returns a cart repository bound to the open transaction.
func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they wrote.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if uow.publisher == nil {
		return
	}

	var events []order.Event
	for _, t := range tracked {
		if o, ok := t.Aggregate.(*order.Order); ok {
			events = append(events, o.PullEvents()...)
		}
	}
	if len(events) > 0 {
		uow.publisher.Publish(ctx, events)
	}
}
