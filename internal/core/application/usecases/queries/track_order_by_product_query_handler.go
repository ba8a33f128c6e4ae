package queries

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

var ErrNoOrderForProduct = errors.New("No order found for this product and user")

type TrackOrderByProductQueryHandler struct {
	db *gorm.DB
}

func NewTrackOrderByProductQueryHandler(db *gorm.DB) TrackOrderByProductQueryHandler {
	return TrackOrderByProductQueryHandler{db: db}
}

func (h TrackOrderByProductQueryHandler) Handle(ctx context.Context, query TrackOrderByProductQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	db := h.db.WithContext(ctx)

	var rows []orderRow
	err := db.Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = ? AND product_id = ? AND is_deleted = ?
		ORDER BY created_at DESC, order_number DESC
		LIMIT 1
	`, query.UserID().Bytes(), query.ProductID().Bytes(), false).Scan(&rows).Error
	if err != nil {
		return TrackingView{}, err
	}
	if len(rows) == 0 {
		return TrackingView{}, errs.NewObjectNotFoundErrorWithCause("productId", query.ProductID().String(), ErrNoOrderForProduct)
	}
	row := rows[0]

	view := TrackingView{
		OrderID:        row.OrderNumber,
		ProductDetails: ProductDetails{Name: row.ProductName, Images: row.ProductImages},
		TrackingStatus: row.TrackingStatus,
		UpdatedAt:      row.UpdatedAt,
	}

	var addresses []addressRow
	err = db.Raw(
		"SELECT id, address_line, city, state, pincode, country, mobile FROM addresses WHERE id = ?",
		row.AddressID,
	).Scan(&addresses).Error
	if err != nil {
		return TrackingView{}, err
	}
	if len(addresses) > 0 {
		view.DeliveryAddress = toAddressView(addresses[0])
	}
	return view, nil
}
