package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentStatus is the closed set of payment states an order can carry.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	Unpaid
	PendingCapture
	Captured
	CashOnDelivery
	Refunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "UNKNOWN",
		Unpaid:         "UNPAID",
		PendingCapture: "PENDING_CAPTURE",
		Captured:       "CAPTURED",
		CashOnDelivery: "CASH_ON_DELIVERY",
		Refunded:       "REFUNDED",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if status != PaymentUnknown && name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%q is not a known payment status", s))
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > Refunded {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Payment pairs the payment status with the gateway payment reference.
// Cash-on-delivery payments carry no reference.
type Payment struct {
	status    PaymentStatus
	reference string
}

func CashOnDeliveryPayment() Payment {
	return Payment{status: CashOnDelivery}
}

func CapturedPayment(reference string) (Payment, error) {
	if reference == "" {
		return Payment{}, errs.NewValueIsRequiredError("paymentId")
	}
	return Payment{status: Captured, reference: reference}, nil
}

func RestorePayment(status PaymentStatus, reference string) (Payment, error) {
	if err := status.Validate(); err != nil {
		return Payment{}, err
	}
	return Payment{status: status, reference: reference}, nil
}

func (p Payment) Status() PaymentStatus {
	return p.status
}

func (p Payment) Reference() string {
	return p.reference
}

func (p Payment) Validate() error {
	return p.status.Validate()
}
