package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status is the tracking state of an order.
//
//	Pending ──> Processing ──> Shipped ──> Delivered
//	   │             │
//	   └─────────────┴──────> Cancelled (customer cancellation only)
//
// Tracking updates move forward along the sequence. Pending is a wildcard
// origin: any tracking status may follow it, including Pending itself.
// Cancelled is terminal and only reachable through cancellation.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	Pending
	Processing
	Shipped
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getTrackingRanks lists the statuses an admin may set, by position in the sequence.
func getTrackingRanks() map[Status]int {
	//nolint:exhaustive // Unknown and Cancelled are not tracking targets
	return map[Status]int{
		Pending:    0,
		Processing: 1,
		Shipped:    2,
		Delivered:  3,
	}
}

// ParseStatus maps the wire name ("Pending", "Shipped", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("tracking_status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("tracking_status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTrackingTarget reports whether s may be set through a tracking update.
func (s Status) IsTrackingTarget() bool {
	_, ok := getTrackingRanks()[s]
	return ok
}

// ValidateTrackingTarget rejects Unknown and Cancelled as tracking update targets.
func ValidateTrackingTarget(target Status) error {
	if !target.IsTrackingTarget() {
		return errs.NewValueIsInvalidErrorWithCause("tracking_status", ErrInvalidTrackingStatus)
	}
	return nil
}

// AdvanceTo returns target if the tracking sequence allows moving there from s.
//
// Rules, in order:
//   - target must be Pending, Processing, Shipped or Delivered
//   - a Cancelled order accepts no tracking updates (ErrInvalidState)
//   - from Pending any target is accepted
//   - otherwise target must rank strictly after s (ErrInvalidTransition)
func (s Status) AdvanceTo(target Status) (Status, error) {
	if err := ValidateTrackingTarget(target); err != nil {
		return Unknown, err
	}
	if s == Cancelled {
		return Unknown, errs.NewBusinessRuleError(ErrInvalidState, "cannot update tracking of a cancelled order")
	}
	if s == Pending {
		return target, nil
	}

	ranks := getTrackingRanks()
	current, ok := ranks[s]
	if !ok {
		return Unknown, s.Validate()
	}
	if ranks[target] <= current {
		return Unknown, errs.NewBusinessRuleError(
			ErrInvalidTransition,
			fmt.Sprintf("cannot move from %s to %s", s, target),
		)
	}
	return target, nil
}

// ValidateCancel allows cancellation only before the order leaves the warehouse.
func (s Status) ValidateCancel() error {
	switch s {
	case Cancelled:
		return errs.NewBusinessRuleError(ErrAlreadyCancelled, "")
	case Shipped, Delivered:
		return errs.NewBusinessRuleError(
			ErrIneligibleForCancellation,
			fmt.Sprintf("order is already %s", s),
		)
	case Pending, Processing:
		return nil
	default:
		return s.Validate()
	}
}

// ValidateDelete keeps delivered orders in the books.
func (s Status) ValidateDelete() error {
	if s == Delivered {
		return errs.NewBusinessRuleError(ErrIneligibleForDeletion, "delivered orders cannot be deleted")
	}
	return s.Validate()
}
