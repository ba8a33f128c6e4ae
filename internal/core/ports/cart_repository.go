package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// CartRepository empties a customer's cart once its contents became orders.
type CartRepository interface {
	ClearForUser(ctx context.Context, userID kernel.UUID) error
}
