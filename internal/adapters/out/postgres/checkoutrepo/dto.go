// Package checkoutrepo persists online checkout sessions.
package checkoutrepo

import (
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	AddressID      uuid.UUID       `gorm:"type:uuid"`
	Items          []LineItemDTO   `gorm:"serializer:json"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency       string          `gorm:"size:3;not null"`
	Receipt        string          `gorm:"size:40"`
	GatewayOrderID *string         `gorm:"size:64;uniqueIndex"`
	Status         string          `gorm:"size:16;index:idx_checkout_status_created,priority:1;not null"`
	PaymentID      string          `gorm:"size:64"`
	GroupID        *uuid.UUID      `gorm:"type:uuid"`
	Version        int             `gorm:"not null;default:1"`
	CreatedAt      time.Time       `gorm:"autoCreateTime:false;index:idx_checkout_status_created,priority:2"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime:false"`
}

func (SessionDTO) TableName() string {
	return "checkout_sessions"
}

// LineItemDTO is a cart entry frozen into the session's items column.
type LineItemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Images    []string        `json:"image"`
	UnitPrice decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Quantity  int             `json:"quantity"`
}

func fromDomain(s *checkout.Session) SessionDTO {
	items := s.Items()
	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, LineItemDTO{
			ProductID: item.Product().ID().String(),
			Name:      item.Product().Name(),
			Images:    item.Product().Images(),
			UnitPrice: item.UnitPrice().Decimal(),
			Discount:  item.Discount().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	var gatewayOrderID *string
	if id := s.GatewayOrderID(); id != "" {
		gatewayOrderID = &id
	}
	var groupID *uuid.UUID
	if !s.GroupID().IsZero() {
		id := s.GroupID().Bytes()
		groupID = &id
	}

	return SessionDTO{
		ID:             s.ID().Bytes(),
		UserID:         s.UserID().Bytes(),
		AddressID:      s.AddressID().Bytes(),
		Items:          dtos,
		Amount:         s.Amount().Decimal(),
		Currency:       s.Currency(),
		Receipt:        s.Receipt(),
		GatewayOrderID: gatewayOrderID,
		Status:         s.Status().String(),
		PaymentID:      s.PaymentID(),
		GroupID:        groupID,
		Version:        s.Version(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func toDomain(dto SessionDTO) (*checkout.Session, error) {
	status, err := checkout.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, in := range dto.Items {
		item, itemErr := lineItemToDomain(in)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var gatewayOrderID string
	if dto.GatewayOrderID != nil {
		gatewayOrderID = *dto.GatewayOrderID
	}
	var groupID kernel.UUID
	if dto.GroupID != nil {
		groupID = kernel.UUIDFromGoogle(*dto.GroupID)
	}

	return checkout.RestoreSession(checkout.RestoreParams{
		ID:             kernel.UUIDFromGoogle(dto.ID),
		UserID:         kernel.UUIDFromGoogle(dto.UserID),
		AddressID:      kernel.UUIDFromGoogle(dto.AddressID),
		Items:          items,
		Amount:         amount,
		Currency:       dto.Currency,
		Receipt:        dto.Receipt,
		GatewayOrderID: gatewayOrderID,
		Status:         status,
		PaymentID:      dto.PaymentID,
		GroupID:        groupID,
		Version:        dto.Version,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}

func lineItemToDomain(in LineItemDTO) (order.LineItem, error) {
	productID, err := kernel.UUIDFromString(in.ProductID)
	if err != nil {
		return order.LineItem{}, err
	}
	product, err := order.NewProductSnapshot(productID, in.Name, in.Images)
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(in.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}
	discount, err := kernel.NewPercent(in.Discount)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(product, in.Quantity, price, discount)
}
