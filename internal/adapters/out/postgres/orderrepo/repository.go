package orderrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAll inserts the orders of one checkout with a single statement per table.
func (r *GormOrderRepository) AddAll(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	dtos := make([]OrderDTO, 0, len(orders))
	var events []TrackingEventDTO
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(o))
		events = append(events, historyFromDomain(o)...)
	}

	db := r.db.WithContext(ctx)
	if err := db.Create(&dtos).Error; err != nil {
		return err
	}
	if len(events) > 0 {
		if err := db.Create(&events).Error; err != nil {
			return err
		}
	}

	for _, o := range orders {
		r.tracker.TrackAggregate(o.ID(), o)
	}
	return nil
}

// Update writes the mutable columns guarded by the version the aggregate was
// loaded with, then appends history entries not stored yet.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"tracking_status":     dto.TrackingStatus,
			"is_cancelled":        dto.IsCancelled,
			"cancellation_reason": dto.CancellationReason,
			"cancelled_at":        dto.CancelledAt,
			"is_deleted":          dto.IsDeleted,
			"version":             dto.Version + 1,
			"updated_at":          dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate)
	}

	if events := historyFromDomain(aggregate); len(events) > 0 {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&events).Error
		if err != nil {
			return err
		}
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.Number().String())
	}
	return errs.NewVersionIsInvalidError("order " + aggregate.Number().String())
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number order.Number) (*order.Order, error) {
	return r.first(ctx, number, "order_number = ? AND is_deleted = ?", number.String(), false)
}

func (r *GormOrderRepository) GetByNumberForUser(
	ctx context.Context,
	number order.Number,
	userID kernel.UUID,
) (*order.Order, error) {
	return r.first(ctx, number, "order_number = ? AND user_id = ?", number.String(), userID.Bytes())
}

func (r *GormOrderRepository) ListByGroup(ctx context.Context, groupID kernel.UUID) ([]*order.Order, error) {
	if err := groupID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID.Bytes()).
		Order("created_at, order_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return r.restoreAll(ctx, dtos)
}

func (r *GormOrderRepository) first(ctx context.Context, number order.Number, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", number.String())
		}
		return nil, err
	}

	orders, err := r.restoreAll(ctx, []OrderDTO{dto})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// restoreAll loads the history of every row with one query and rebuilds the aggregates.
func (r *GormOrderRepository) restoreAll(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	if len(dtos) == 0 {
		return orders, nil
	}

	ids := make([]any, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	var events []TrackingEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id, seq").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]TrackingEventDTO, len(dtos))
	for _, e := range events {
		byOrder[e.OrderID] = append(byOrder[e.OrderID], e)
	}

	for _, dto := range dtos {
		o, err := toDomain(dto, byOrder[dto.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
