package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Order is the aggregate root for one purchased line item. A checkout with N
// cart entries produces N orders sharing a group id; each one is tracked,
// cancelled and deleted on its own.
//
// Invariants:
//   - number is unique and never changes
//   - amounts, product snapshot, quantity and address are write-once
//   - tracking moves forward only (see Status.AdvanceTo)
//   - a cancelled order stays Cancelled and accepts no tracking updates
//   - history is append-only
type Order struct {
	id        kernel.UUID
	number    Number
	groupID   kernel.UUID
	userID    kernel.UUID
	addressID kernel.UUID

	product  ProductSnapshot
	quantity int
	subTotal kernel.Money
	total    kernel.Money
	payment  Payment

	status  Status
	history []TrackingEvent

	cancelled          bool
	cancellationReason string
	cancelledAt        *time.Time
	deleted            bool

	// version is the optimistic concurrency counter as last read from or written to storage.
	version   int
	createdAt time.Time
	updatedAt time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder places a Pending order for a single line item. The history starts
// empty; the first entry is written by the first tracking update. All field
// errors are reported together.
//
// Example:
//
//	item, err := order.NewLineItem(snapshot, 2, unitPrice, discount)
//	if err != nil {
//	    return err
//	}
//	o, err := order.NewOrder(userID, groupID, addressID, item, order.CashOnDeliveryPayment(), time.Now())
//	if err != nil {
//	    return err
//	}
//	// o.Status() == order.Pending
func NewOrder(
	userID, groupID, addressID kernel.UUID,
	item LineItem,
	payment Payment,
	now time.Time,
) (*Order, error) {
	o := &Order{
		id:        kernel.NewUUID(),
		number:    NewNumber(),
		status:    Pending,
		version:   1,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setGroupID(groupID),
		o.setAddressID(addressID),
		o.setLineItem(item),
		o.setPayment(payment),
	); err != nil {
		return nil, err
	}

	o.raise(OrderPlaced{
		Number:     o.number,
		GroupID:    o.groupID,
		UserID:     o.userID,
		Total:      o.total,
		Payment:    o.payment.status,
		OccurredAt: o.createdAt,
	})
	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID                 kernel.UUID
	Number             Number
	GroupID            kernel.UUID
	UserID             kernel.UUID
	AddressID          kernel.UUID
	Product            ProductSnapshot
	Quantity           int
	SubTotal           kernel.Money
	Total              kernel.Money
	Payment            Payment
	Status             Status
	History            []TrackingEvent
	Cancelled          bool
	CancellationReason string
	CancelledAt        *time.Time
	Deleted            bool
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreOrder rebuilds an order read from storage. No events are raised and
// the stored status is trusted, so orders restored in any status, including
// Cancelled, are valid.
//
// Example:
//
//	o, err := order.RestoreOrder(order.RestoreParams{
//	    ID:      dto.ID,
//	    Number:  number,
//	    UserID:  dto.UserID,
//	    Status:  status,
//	    Payment: payment,
//	    Version: dto.Version,
//	})
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.UserID.Validate(),
		p.Status.Validate(),
		p.Payment.Validate(),
	); err != nil {
		return nil, err
	}
	if _, err := ParseNumber(p.Number.String()); err != nil {
		return nil, err
	}

	return &Order{
		id:                 p.ID,
		number:             p.Number,
		groupID:            p.GroupID,
		userID:             p.UserID,
		addressID:          p.AddressID,
		product:            p.Product,
		quantity:           p.Quantity,
		subTotal:           p.SubTotal,
		total:              p.Total,
		payment:            p.Payment,
		status:             p.Status,
		history:            slices.Clone(p.History),
		cancelled:          p.Cancelled,
		cancellationReason: p.CancellationReason,
		cancelledAt:        p.CancelledAt,
		deleted:            p.Deleted,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate reports ErrOrderIsNotConstructed for an Order built without a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) Number() Number             { return o.number }
func (o *Order) GroupID() kernel.UUID       { return o.groupID }
func (o *Order) UserID() kernel.UUID        { return o.userID }
func (o *Order) AddressID() kernel.UUID     { return o.addressID }
func (o *Order) Product() ProductSnapshot   { return o.product }
func (o *Order) Quantity() int              { return o.quantity }
func (o *Order) SubTotal() kernel.Money     { return o.subTotal }
func (o *Order) Total() kernel.Money        { return o.total }
func (o *Order) Payment() Payment           { return o.payment }
func (o *Order) Status() Status             { return o.status }
func (o *Order) History() []TrackingEvent   { return slices.Clone(o.history) }
func (o *Order) IsCancelled() bool          { return o.cancelled }
func (o *Order) CancellationReason() string { return o.cancellationReason }
func (o *Order) CancelledAt() *time.Time    { return o.cancelledAt }
func (o *Order) IsDeleted() bool            { return o.deleted }
func (o *Order) Version() int               { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// BelongsTo reports whether userID placed the order.
func (o *Order) BelongsTo(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// UpdateTracking moves the order to target and appends a history entry
// attributed to updatedBy. Cancelled orders and transitions outside the
// tracking sequence are rejected with a business rule error.
//
// Example:
//
//	if err := o.UpdateTracking(order.Shipped, adminID, time.Now()); err != nil {
//	    return err // e.g. errs.ErrBusinessRuleViolated for Pending -> Delivered
//	}
func (o *Order) UpdateTracking(target Status, updatedBy kernel.UUID, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.cancelled {
		return errs.NewBusinessRuleError(ErrInvalidState, "cannot update tracking of a cancelled order")
	}

	next, err := o.status.AdvanceTo(target)
	if err != nil {
		return err
	}

	from := o.status
	if err := o.appendHistory(next, updatedBy, now); err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now.UTC()

	o.raise(TrackingUpdated{Number: o.number, From: from, To: next, UpdatedBy: updatedBy, OccurredAt: o.updatedAt})
	return nil
}

// Cancel records the customer's cancellation. The status is forced to
// Cancelled and the cancellation is written to the history.
func (o *Order) Cancel(cancelledBy kernel.UUID, reason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellationReason")
	}
	if o.cancelled {
		return errs.NewBusinessRuleError(ErrAlreadyCancelled, o.number.String())
	}
	if err := o.status.ValidateCancel(); err != nil {
		return err
	}

	from := o.status
	if err := o.appendHistory(Cancelled, cancelledBy, now); err != nil {
		return err
	}
	at := now.UTC()
	o.cancelled = true
	o.cancellationReason = reason
	o.cancelledAt = &at
	o.status = Cancelled
	o.updatedAt = at

	o.raise(OrderCancelled{Number: o.number, From: from, Reason: reason, OccurredAt: at})
	return nil
}

// Delete hides the order from every listing. The row itself is kept.
func (o *Order) Delete(now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.deleted {
		return errs.NewBusinessRuleError(ErrInvalidState, "order is already deleted")
	}
	if err := o.status.ValidateDelete(); err != nil {
		return err
	}

	o.deleted = true
	o.updatedAt = now.UTC()
	o.raise(OrderDeleted{Number: o.number, OccurredAt: o.updatedAt})
	return nil
}

// MarkPersisted advances the version after the repository wrote the order.
func (o *Order) MarkPersisted() {
	o.version++
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) raise(e Event) {
	o.events = append(o.events, e)
}

func (o *Order) appendHistory(status Status, updatedBy kernel.UUID, now time.Time) error {
	entry, err := NewTrackingEvent(status, now, updatedBy)
	if err != nil {
		return err
	}
	o.history = append(o.history, entry)
	return nil
}

func (o *Order) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	o.userID = id
	return nil
}

func (o *Order) setGroupID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("groupId", err)
	}
	o.groupID = id
	return nil
}

func (o *Order) setAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("addressId", err)
	}
	o.addressID = id
	return nil
}

func (o *Order) setLineItem(item LineItem) error {
	if item.quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", item.quantity, 1, "unbounded")
	}
	if err := item.product.id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	o.product = item.product
	o.quantity = item.quantity
	o.total = item.Total()
	o.subTotal = o.total
	return nil
}

func (o *Order) setPayment(p Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.payment = p
	return nil
}
