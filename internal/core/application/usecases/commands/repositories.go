// Package commands contains the storefront's state-changing use cases. Every
// handler validates its command, opens a unit of work, lets the aggregates
// decide, persists through the transaction-bound repositories and commits.
package commands

import (
	"context"

	"storefront/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	CheckoutRepoFactory interface {
		CheckoutRepository() ports.CheckoutRepository
	}

	// OrderUoW serves commands that only touch existing orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PlacementUoW serves order creation: orders are inserted and the cart is
	// cleared in the same transaction.
	PlacementUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
	}

	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// CheckoutUoW serves online checkout, which also reads and completes sessions.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { ... }
	//   defer uow.Rollback(ctx)
	//
	//   session, err := uow.CheckoutRepository().GetByGatewayOrderID(ctx, id)
	//   // ... place orders, complete the session, clear the cart
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		CheckoutRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}
)
