package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListAllOrdersQueryHandler struct {
	reader orderReader
}

func NewListAllOrdersQueryHandler(db *gorm.DB) ListAllOrdersQueryHandler {
	return ListAllOrdersQueryHandler{reader: orderReader{db: db}}
}

// Handle returns every non-deleted order, newest first, with the buyer's name
// and email resolved.
func (h ListAllOrdersQueryHandler) Handle(ctx context.Context, query ListAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.reader.list(ctx, "")
}
