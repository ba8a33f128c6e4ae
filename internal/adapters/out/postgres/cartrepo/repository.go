// Package cartrepo empties carts after their contents were ordered.
package cartrepo

import (
	"context"

	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCartRepository implements ports.CartRepository.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// ClearForUser deletes the user's cart items and empties the cart reference
// on the user row. Users without a row are not an error.
func (r *GormCartRepository) ClearForUser(ctx context.Context, userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID.Bytes()).Delete(&CartItemDTO{}).Error; err != nil {
		return err
	}
	return db.Model(&userrepo.UserDTO{}).
		Where("id = ?", userID.Bytes()).
		Select("shopping_cart").
		Updates(&userrepo.UserDTO{ShoppingCart: []string{}}).Error
}
