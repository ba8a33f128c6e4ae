package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrListAllOrdersQueryIsNotConstructed = errors.New(
	"ListAllOrdersQuery must be created via NewListAllOrdersQuery constructor",
)

// ListAllOrdersQuery is the admin order board.
type ListAllOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListAllOrdersQuery() ListAllOrdersQuery {
	return ListAllOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAllOrdersQueryIsNotConstructed)
}
