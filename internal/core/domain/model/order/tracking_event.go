package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// TrackingEvent is one entry of the append-only tracking history.
type TrackingEvent struct {
	status    Status
	at        time.Time
	updatedBy kernel.UUID
}

func NewTrackingEvent(status Status, at time.Time, updatedBy kernel.UUID) (TrackingEvent, error) {
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	return TrackingEvent{status: status, at: at.UTC(), updatedBy: updatedBy}, nil
}

func (e TrackingEvent) Status() Status {
	return e.status
}

func (e TrackingEvent) At() time.Time {
	return e.at
}

func (e TrackingEvent) UpdatedBy() kernel.UUID {
	return e.updatedBy
}
