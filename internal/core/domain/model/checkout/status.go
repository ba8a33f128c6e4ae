package checkout

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status of a checkout session. Open sessions move to Completed or Expired;
// an Expired session can still be Completed by a verified payment.
type Status int

const (
	Unknown Status = iota
	Open
	Completed
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Open:      "OPEN",
		Completed: "COMPLETED",
		Expired:   "EXPIRED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("checkout status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Expired {
		return errs.NewValueIsInvalidErrorWithCause("checkout status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
