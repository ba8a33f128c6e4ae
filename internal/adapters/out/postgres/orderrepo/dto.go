// Package orderrepo persists Order aggregates: one row per order in "orders"
// and one row per tracking history entry in "order_tracking_events".
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table. Reads from the query side select these
// columns directly, so renames here are schema changes.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber        string          `gorm:"size:32;uniqueIndex;not null"`
	GroupID            uuid.UUID       `gorm:"type:uuid;index"`
	UserID             uuid.UUID       `gorm:"type:uuid;index:idx_orders_user_product,priority:1;not null"`
	AddressID          uuid.UUID       `gorm:"type:uuid"`
	ProductID          uuid.UUID       `gorm:"type:uuid;index:idx_orders_user_product,priority:2"`
	ProductName        string          `gorm:"not null"`
	ProductImages      []string        `gorm:"serializer:json"`
	Quantity           int             `gorm:"not null"`
	SubTotal           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total              decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentID          string          `gorm:"size:64"`
	PaymentStatus      string          `gorm:"size:32;not null"`
	TrackingStatus     string          `gorm:"size:16;index;not null"`
	IsCancelled        bool            `gorm:"not null;default:false"`
	CancellationReason string
	CancelledAt        *time.Time
	IsDeleted          bool      `gorm:"index;not null;default:false"`
	Version            int       `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// TrackingEventDTO is one history entry. Seq is the entry's position in the
// order's history; (order_id, seq) makes re-inserting known entries a no-op.
type TrackingEventDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int       `gorm:"primaryKey;autoIncrement:false"`
	Status    string    `gorm:"size:16;not null"`
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	At        time.Time `gorm:"not null"`
}

func (TrackingEventDTO) TableName() string {
	return "order_tracking_events"
}

func fromDomain(o *order.Order) OrderDTO {
	product := o.Product()
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		OrderNumber:        o.Number().String(),
		GroupID:            o.GroupID().Bytes(),
		UserID:             o.UserID().Bytes(),
		AddressID:          o.AddressID().Bytes(),
		ProductID:          product.ID().Bytes(),
		ProductName:        product.Name(),
		ProductImages:      product.Images(),
		Quantity:           o.Quantity(),
		SubTotal:           o.SubTotal().Decimal(),
		Total:              o.Total().Decimal(),
		PaymentID:          o.Payment().Reference(),
		PaymentStatus:      o.Payment().Status().String(),
		TrackingStatus:     o.Status().String(),
		IsCancelled:        o.IsCancelled(),
		CancellationReason: o.CancellationReason(),
		CancelledAt:        o.CancelledAt(),
		IsDeleted:          o.IsDeleted(),
		Version:            o.Version(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func historyFromDomain(o *order.Order) []TrackingEventDTO {
	history := o.History()
	dtos := make([]TrackingEventDTO, 0, len(history))
	for i, e := range history {
		dtos = append(dtos, TrackingEventDTO{
			OrderID:   o.ID().Bytes(),
			Seq:       i + 1,
			Status:    e.Status().String(),
			UpdatedBy: e.UpdatedBy().Bytes(),
			At:        e.At(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO, events []TrackingEventDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.TrackingStatus)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	payment, err := order.RestorePayment(paymentStatus, dto.PaymentID)
	if err != nil {
		return nil, err
	}
	product, err := order.NewProductSnapshot(kernel.UUIDFromGoogle(dto.ProductID), dto.ProductName, dto.ProductImages)
	if err != nil {
		return nil, err
	}
	subTotal, err := kernel.NewMoney(dto.SubTotal)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	history := make([]order.TrackingEvent, 0, len(events))
	for _, e := range events {
		s, parseErr := order.ParseStatus(e.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		entry, entryErr := order.NewTrackingEvent(s, e.At, kernel.UUIDFromGoogle(e.UpdatedBy))
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                 kernel.UUIDFromGoogle(dto.ID),
		Number:             order.Number(dto.OrderNumber),
		GroupID:            kernel.UUIDFromGoogle(dto.GroupID),
		UserID:             kernel.UUIDFromGoogle(dto.UserID),
		AddressID:          kernel.UUIDFromGoogle(dto.AddressID),
		Product:            product,
		Quantity:           dto.Quantity,
		SubTotal:           subTotal,
		Total:              total,
		Payment:            payment,
		Status:             status,
		History:            history,
		Cancelled:          dto.IsCancelled,
		CancellationReason: dto.CancellationReason,
		CancelledAt:        dto.CancelledAt,
		Deleted:            dto.IsDeleted,
		Version:            dto.Version,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}
