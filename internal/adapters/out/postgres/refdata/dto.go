// Package refdata maps the tables owned by the catalog and account screens that
// order reads resolve against. The order service never writes them outside tests.
package refdata

import (
	"github.com/google/uuid"
)

type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	AddressLine string
	City        string
	State       string
	Pincode     string
	Country     string
	Mobile      string
}

func (AddressDTO) TableName() string {
	return "addresses"
}

type ProductDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Images []string `gorm:"serializer:json"`
}

func (ProductDTO) TableName() string {
	return "products"
}
