package checkoutrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCheckoutRepository implements ports.CheckoutRepository.
type GormCheckoutRepository struct {
	db *gorm.DB
}

// NewGormCheckoutRepository binds the repository to db, which is the unit of
// work's transaction when used through ports.UnitOfWork.
func NewGormCheckoutRepository(db *gorm.DB) *GormCheckoutRepository {
	return &GormCheckoutRepository{db: db}
}

func (r *GormCheckoutRepository) Add(ctx context.Context, session *checkout.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the session guarded by the version it was loaded with. A
// writer holding a stale copy, such as a webhook racing the browser confirm or
// the expiry job racing a payment, gets errs.VersionIsInvalidError and nothing
// is written.
func (r *GormCheckoutRepository) Update(ctx context.Context, session *checkout.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	result := r.db.WithContext(ctx).Model(&SessionDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"gateway_order_id": dto.GatewayOrderID,
			"status":           dto.Status,
			"payment_id":       dto.PaymentID,
			"group_id":         dto.GroupID,
			"version":          dto.Version + 1,
			"updated_at":       dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, session)
	}

	session.MarkPersisted()
	return nil
}

func (r *GormCheckoutRepository) missOrConflict(ctx context.Context, session *checkout.Session) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&SessionDTO{}).Where("id = ?", session.ID().Bytes()).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("checkout session", session.ID().String())
	}
	return errs.NewVersionIsInvalidError("checkout session " + session.ID().String())
}

func (r *GormCheckoutRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*checkout.Session, error) {
	if gatewayOrderID == "" {
		return nil, errs.NewValueIsRequiredError("razorpay_order_id")
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "gateway_order_id = ?", gatewayOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("checkout session", gatewayOrderID)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormCheckoutRepository) ListOpenCreatedBefore(ctx context.Context, cutoff time.Time) ([]*checkout.Session, error) {
	var dtos []SessionDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", checkout.Open.String(), cutoff.UTC()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*checkout.Session, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
