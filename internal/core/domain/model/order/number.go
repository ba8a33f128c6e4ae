package order

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const numberPrefix = "ORD-"

// Number is the customer-facing order id, ORD- followed by a 24 hex digit
// ObjectID. ObjectIDs start with a timestamp, so numbers sort roughly by creation.
type Number string

func NewNumber() Number {
	return Number(numberPrefix + primitive.NewObjectID().Hex())
}

func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("orderId")
	}
	if !strings.HasPrefix(s, numberPrefix) || len(s) == len(numberPrefix) {
		return "", errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%q is not an order id", s))
	}
	return Number(s), nil
}

func (n Number) String() string {
	return string(n)
}
