package pgtest

import (
	"testing"

	"storefront/internal/adapters/out/postgres/cartrepo"
	"storefront/internal/adapters/out/postgres/refdata"
	"storefront/internal/adapters/out/postgres/userrepo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SeedUser(t *testing.T, db *gorm.DB, name, role string) uuid.UUID {
	t.Helper()
	dto := userrepo.UserDTO{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@example.com",
		Role:         role,
		ShoppingCart: []string{},
	}
	mustCreate(t, db, &dto)
	return dto.ID
}

func SeedAddress(t *testing.T, db *gorm.DB, userID uuid.UUID, city string) uuid.UUID {
	t.Helper()
	dto := refdata.AddressDTO{
		ID:          uuid.New(),
		UserID:      userID,
		AddressLine: "12 MG Road",
		City:        city,
		State:       "Karnataka",
		Pincode:     "560001",
		Country:     "India",
		Mobile:      "9999999999",
	}
	mustCreate(t, db, &dto)
	return dto.ID
}

func SeedProduct(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	dto := refdata.ProductDTO{
		ID:     uuid.New(),
		Name:   name,
		Images: []string{"https://cdn.example.com/" + uuid.NewString() + ".jpg"},
	}
	mustCreate(t, db, &dto)
	return dto.ID
}

// SeedCart puts productIDs in the user's cart and references them from the user row.
func SeedCart(t *testing.T, db *gorm.DB, userID uuid.UUID, productIDs ...uuid.UUID) {
	t.Helper()
	refs := make([]string, 0, len(productIDs))
	for _, productID := range productIDs {
		item := cartrepo.CartItemDTO{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: 1}
		mustCreate(t, db, &item)
		refs = append(refs, item.ID.String())
	}
	err := db.Model(&userrepo.UserDTO{}).
		Where("id = ?", userID).
		Select("shopping_cart").
		Updates(&userrepo.UserDTO{ShoppingCart: refs}).Error
	if err != nil {
		t.Fatalf("seed cart reference: %v", err)
	}
}

// CartSize returns the number of cart rows and cart references the user has.
func CartSize(t *testing.T, db *gorm.DB, userID uuid.UUID) (items int64, refs int) {
	t.Helper()
	if err := db.Model(&cartrepo.CartItemDTO{}).Where("user_id = ?", userID).Count(&items).Error; err != nil {
		t.Fatalf("count cart items: %v", err)
	}
	var user userrepo.UserDTO
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return items, len(user.ShoppingCart)
}

func mustCreate(t *testing.T, db *gorm.DB, value any) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}
