package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/checkout"
)

type CheckoutRepository interface {
	Add(ctx context.Context, session *checkout.Session) error
	Update(ctx context.Context, session *checkout.Session) error
	// GetByGatewayOrderID returns errs.ErrObjectNotFound when no session carries the id.
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*checkout.Session, error)
	// ListOpenCreatedBefore returns OPEN sessions created before cutoff.
	ListOpenCreatedBefore(ctx context.Context, cutoff time.Time) ([]*checkout.Session, error)
}
