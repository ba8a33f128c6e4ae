// Package customer is the read-only view of a storefront account that the
// order subsystem needs: who is buying, and where receipts go.
package customer

import (
	"storefront/internal/core/domain/model/kernel"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type Customer struct {
	ID    kernel.UUID
	Name  string
	Email string
	Role  Role
}
