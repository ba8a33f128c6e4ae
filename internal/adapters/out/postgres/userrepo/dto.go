// Package userrepo reads storefront accounts and resets their cart reference.
package userrepo

import (
	"github.com/google/uuid"
)

// UserDTO is the users table. ShoppingCart lists the cart item ids the account
// screens keep on the user row.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string   `gorm:"index"`
	Role         string   `gorm:"size:8;not null;default:USER"`
	ShoppingCart []string `gorm:"serializer:json"`
}

func (UserDTO) TableName() string {
	return "users"
}
