package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateTrackingStatusCommandIsNotConstructed = errors.New(
	"UpdateTrackingStatusCommand must be created via NewUpdateTrackingStatusCommand constructor",
)

// UpdateTrackingStatusCommand is an admin moving an order along the tracking sequence.
type UpdateTrackingStatusCommand struct { //nolint:recvcheck //using for validation
	number    order.Number
	status    order.Status
	updatedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateTrackingStatusCommand accepts Pending, Processing, Shipped and
// Delivered. Cancelled is reserved for customer cancellation.
func NewUpdateTrackingStatusCommand(orderID, status string, updatedBy kernel.UUID) (UpdateTrackingStatusCommand, error) {
	cmd := UpdateTrackingStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setStatus(status),
		cmd.setNumber(orderID),
		cmd.setUpdatedBy(updatedBy),
	); err != nil {
		return UpdateTrackingStatusCommand{}, err
	}
	return cmd, nil
}

func (c UpdateTrackingStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingStatusCommandIsNotConstructed)
}

func (c UpdateTrackingStatusCommand) Number() order.Number   { return c.number }
func (c UpdateTrackingStatusCommand) Status() order.Status   { return c.status }
func (c UpdateTrackingStatusCommand) UpdatedBy() kernel.UUID { return c.updatedBy }

func (c *UpdateTrackingStatusCommand) setNumber(orderID string) error {
	n, err := order.ParseNumber(orderID)
	if err != nil {
		return err
	}
	c.number = n
	return nil
}

func (c *UpdateTrackingStatusCommand) setStatus(status string) error {
	s, err := order.ParseStatus(status)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("tracking_status", order.ErrInvalidTrackingStatus)
	}
	if err = order.ValidateTrackingTarget(s); err != nil {
		return err
	}
	c.status = s
	return nil
}

func (c *UpdateTrackingStatusCommand) setUpdatedBy(updatedBy kernel.UUID) error {
	if err := updatedBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("updatedBy", err)
	}
	c.updatedBy = updatedBy
	return nil
}
