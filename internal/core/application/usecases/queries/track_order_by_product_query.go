package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrTrackOrderByProductQueryIsNotConstructed = errors.New(
	"TrackOrderByProductQuery must be created via NewTrackOrderByProductQuery constructor",
)

// TrackOrderByProductQuery finds the customer's latest order of one product.
type TrackOrderByProductQuery struct {
	userID    kernel.UUID
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewTrackOrderByProductQuery(userID kernel.UUID, productID string) (TrackOrderByProductQuery, error) {
	if err := userID.Validate(); err != nil {
		return TrackOrderByProductQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	id, err := kernel.ParseID("productId", productID)
	if err != nil {
		return TrackOrderByProductQuery{}, err
	}
	return TrackOrderByProductQuery{userID: userID, productID: id, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackOrderByProductQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderByProductQueryIsNotConstructed)
}

func (q TrackOrderByProductQuery) UserID() kernel.UUID    { return q.userID }
func (q TrackOrderByProductQuery) ProductID() kernel.UUID { return q.productID }

type TrackingView struct {
	OrderID         string
	ProductDetails  ProductDetails
	TrackingStatus  string
	DeliveryAddress *AddressView
	UpdatedAt       time.Time
}
