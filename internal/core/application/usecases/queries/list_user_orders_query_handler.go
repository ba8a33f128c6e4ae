package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListUserOrdersQueryHandler struct {
	reader orderReader
}

func NewListUserOrdersQueryHandler(db *gorm.DB) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{reader: orderReader{db: db}}
}

// Handle returns the customer's non-deleted orders, newest first. Cancelled
// orders are included.
func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.list(ctx, "user_id = ?", query.UserID().Bytes())
}
