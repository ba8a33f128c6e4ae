package order

import "errors"

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	ErrInvalidTrackingStatus     = errors.New("Invalid tracking status")
	ErrInvalidState              = errors.New("order is not in a state that allows this operation")
	ErrInvalidTransition         = errors.New("invalid tracking status transition")
	ErrAlreadyCancelled          = errors.New("order is already cancelled")
	ErrIneligibleForCancellation = errors.New("order cannot be cancelled after it has been shipped or delivered")
	ErrIneligibleForDeletion     = errors.New("order cannot be deleted")
)
