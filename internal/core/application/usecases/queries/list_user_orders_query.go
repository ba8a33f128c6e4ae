package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrListUserOrdersQueryIsNotConstructed = errors.New(
	"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
)

// ListUserOrdersQuery lists the orders one customer placed.
type ListUserOrdersQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListUserOrdersQuery(userID kernel.UUID) (ListUserOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListUserOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return ListUserOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}

func (q ListUserOrdersQuery) UserID() kernel.UUID {
	return q.userID
}
