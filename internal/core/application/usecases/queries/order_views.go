// Package queries contains the storefront's read-side use cases. Handlers read
// the tables directly through GORM and return view structs shaped for the API,
// bypassing the aggregates.
package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is an order with its references resolved.
type OrderView struct {
	ID      kernel.UUID
	OrderID string
	GroupID kernel.UUID
	// User is nil when the account no longer exists.
	User *UserView

	ProductID      kernel.UUID
	ProductDetails ProductDetails
	// Product is the current catalog entry, nil once it was removed.
	Product  *ProductView
	Quantity int

	SubTotal      decimal.Decimal
	Total         decimal.Decimal
	PaymentID     string
	PaymentStatus string

	DeliveryAddress *AddressView
	TrackingStatus  string
	TrackingHistory []TrackingEntryView

	IsCancelled        bool
	CancellationReason string
	CancellationDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductDetails is the snapshot taken when the order was placed.
type ProductDetails struct {
	Name   string
	Images []string
}

type ProductView struct {
	ID     kernel.UUID
	Name   string
	Images []string
}

type UserView struct {
	ID    kernel.UUID
	Name  string
	Email string
}

type AddressView struct {
	ID          kernel.UUID
	AddressLine string
	City        string
	State       string
	Pincode     string
	Country     string
	Mobile      string
}

type TrackingEntryView struct {
	Status    string
	Timestamp time.Time
	UpdatedBy kernel.UUID
}

type orderRow struct {
	ID                 uuid.UUID
	OrderNumber        string
	GroupID            uuid.UUID
	UserID             uuid.UUID
	AddressID          uuid.UUID
	ProductID          uuid.UUID
	ProductName        string
	ProductImages      []string `gorm:"serializer:json"`
	Quantity           int
	SubTotal           decimal.Decimal
	Total              decimal.Decimal
	PaymentID          string
	PaymentStatus      string
	TrackingStatus     string
	IsCancelled        bool
	CancellationReason string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type trackingRow struct {
	OrderID   uuid.UUID
	Status    string
	UpdatedBy uuid.UUID
	At        time.Time
}

type userRow struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type productRow struct {
	ID     uuid.UUID
	Name   string
	Images []string `gorm:"serializer:json"`
}

type addressRow struct {
	ID          uuid.UUID
	AddressLine string
	City        string
	State       string
	Pincode     string
	Country     string
	Mobile      string
}

const orderColumns = `
	id, order_number, group_id, user_id, address_id,
	product_id, product_name, product_images, quantity,
	sub_total, total, payment_id, payment_status, tracking_status,
	is_cancelled, cancellation_reason, cancelled_at, created_at, updated_at`

// orderReader loads non-deleted orders newest first and resolves their
// references with one query per referenced table.
type orderReader struct {
	db *gorm.DB
}

func (r orderReader) list(ctx context.Context, filter string, args ...any) ([]OrderView, error) {
	db := r.db.WithContext(ctx)

	where := "is_deleted = ?"
	params := []any{false}
	if filter != "" {
		where += " AND " + filter
		params = append(params, args...)
	}

	var rows []orderRow
	err := db.Raw(
		"SELECT "+orderColumns+" FROM orders WHERE "+where+" ORDER BY created_at DESC, order_number DESC",
		params...,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, rows)
}

func (r orderReader) resolve(ctx context.Context, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	var orderIDs, userIDs, productIDs, addressIDs idSet
	for _, row := range rows {
		orderIDs.add(row.ID)
		userIDs.add(row.UserID)
		productIDs.add(row.ProductID)
		addressIDs.add(row.AddressID)
	}

	db := r.db.WithContext(ctx)

	var history []trackingRow
	if err := db.Raw(
		"SELECT order_id, status, updated_by, at FROM order_tracking_events WHERE order_id IN ? ORDER BY order_id, seq",
		orderIDs.values(),
	).Scan(&history).Error; err != nil {
		return nil, err
	}
	var users []userRow
	if err := db.Raw("SELECT id, name, email FROM users WHERE id IN ?", userIDs.values()).
		Scan(&users).Error; err != nil {
		return nil, err
	}
	var products []productRow
	if err := db.Raw("SELECT id, name, images FROM products WHERE id IN ?", productIDs.values()).
		Scan(&products).Error; err != nil {
		return nil, err
	}
	var addresses []addressRow
	if err := db.Raw(
		"SELECT id, address_line, city, state, pincode, country, mobile FROM addresses WHERE id IN ?",
		addressIDs.values(),
	).Scan(&addresses).Error; err != nil {
		return nil, err
	}

	historyByOrder := make(map[uuid.UUID][]TrackingEntryView, len(rows))
	for _, h := range history {
		historyByOrder[h.OrderID] = append(historyByOrder[h.OrderID], TrackingEntryView{
			Status:    h.Status,
			Timestamp: h.At,
			UpdatedBy: kernel.UUIDFromGoogle(h.UpdatedBy),
		})
	}
	usersByID := make(map[uuid.UUID]*UserView, len(users))
	for _, u := range users {
		usersByID[u.ID] = &UserView{ID: kernel.UUIDFromGoogle(u.ID), Name: u.Name, Email: u.Email}
	}
	productsByID := make(map[uuid.UUID]*ProductView, len(products))
	for _, p := range products {
		productsByID[p.ID] = &ProductView{ID: kernel.UUIDFromGoogle(p.ID), Name: p.Name, Images: p.Images}
	}
	addressesByID := make(map[uuid.UUID]*AddressView, len(addresses))
	for _, a := range addresses {
		addressesByID[a.ID] = toAddressView(a)
	}

	for _, row := range rows {
		history := historyByOrder[row.ID]
		if history == nil {
			history = []TrackingEntryView{}
		}
		views = append(views, OrderView{
			ID:                 kernel.UUIDFromGoogle(row.ID),
			OrderID:            row.OrderNumber,
			GroupID:            kernel.UUIDFromGoogle(row.GroupID),
			User:               usersByID[row.UserID],
			ProductID:          kernel.UUIDFromGoogle(row.ProductID),
			ProductDetails:     ProductDetails{Name: row.ProductName, Images: row.ProductImages},
			Product:            productsByID[row.ProductID],
			Quantity:           row.Quantity,
			SubTotal:           row.SubTotal,
			Total:              row.Total,
			PaymentID:          row.PaymentID,
			PaymentStatus:      row.PaymentStatus,
			DeliveryAddress:    addressesByID[row.AddressID],
			TrackingStatus:     row.TrackingStatus,
			TrackingHistory:    history,
			IsCancelled:        row.IsCancelled,
			CancellationReason: row.CancellationReason,
			CancellationDate:   row.CancelledAt,
			CreatedAt:          row.CreatedAt,
			UpdatedAt:          row.UpdatedAt,
		})
	}
	return views, nil
}

func toAddressView(a addressRow) *AddressView {
	return &AddressView{
		ID:          kernel.UUIDFromGoogle(a.ID),
		AddressLine: a.AddressLine,
		City:        a.City,
		State:       a.State,
		Pincode:     a.Pincode,
		Country:     a.Country,
		Mobile:      a.Mobile,
	}
}

// idSet collects distinct ids in insertion order.
type idSet struct {
	seen map[uuid.UUID]struct{}
	ids  []any
}

func (s *idSet) add(id uuid.UUID) {
	if s.seen == nil {
		s.seen = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *idSet) values() []any {
	return s.ids
}
