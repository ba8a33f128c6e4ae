package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"} {
		s, err := order.ParseStatus(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.String())
	}

	for _, name := range []string{"", "Unknown", "pending", "Returned"} {
		_, err := order.ParseStatus(name)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, name)
	}
}

func TestStatus_Validate(t *testing.T) {
	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(42).Validate())
	assert.NoError(t, order.Delivered.Validate())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_AdvanceTo(t *testing.T) {
	statuses := []order.Status{order.Pending, order.Processing, order.Shipped, order.Delivered}

	tests := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		// Pending accepts every tracking target.
		{order.Pending, order.Pending, true},
		{order.Pending, order.Processing, true},
		{order.Pending, order.Shipped, true},
		{order.Pending, order.Delivered, true},

		{order.Processing, order.Pending, false},
		{order.Processing, order.Processing, false},
		{order.Processing, order.Shipped, true},
		{order.Processing, order.Delivered, true},

		{order.Shipped, order.Pending, false},
		{order.Shipped, order.Processing, false},
		{order.Shipped, order.Shipped, false},
		{order.Shipped, order.Delivered, true},

		{order.Delivered, order.Pending, false},
		{order.Delivered, order.Processing, false},
		{order.Delivered, order.Shipped, false},
		{order.Delivered, order.Delivered, false},
	}
	require.Len(t, tests, len(statuses)*len(statuses))

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			next, err := tt.from.AdvanceTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			require.ErrorIs(t, err, order.ErrInvalidTransition)
			require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
			assert.Contains(t, err.Error(), "cannot move from "+tt.from.String()+" to "+tt.to.String())
		})
	}
}

func TestStatus_AdvanceTo_RejectsNonTrackingTargets(t *testing.T) {
	for _, target := range []order.Status{order.Cancelled, order.Unknown, order.Status(9)} {
		_, err := order.Pending.AdvanceTo(target)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), order.ErrInvalidTrackingStatus.Error())
	}
}

func TestStatus_AdvanceTo_FromCancelled(t *testing.T) {
	_, err := order.Cancelled.AdvanceTo(order.Delivered)
	assert.ErrorIs(t, err, order.ErrInvalidState)
}

func TestStatus_ValidateCancel(t *testing.T) {
	assert.NoError(t, order.Pending.ValidateCancel())
	assert.NoError(t, order.Processing.ValidateCancel())
	assert.ErrorIs(t, order.Shipped.ValidateCancel(), order.ErrIneligibleForCancellation)
	assert.ErrorIs(t, order.Delivered.ValidateCancel(), order.ErrIneligibleForCancellation)
	assert.ErrorIs(t, order.Cancelled.ValidateCancel(), order.ErrAlreadyCancelled)
	assert.Error(t, order.Unknown.ValidateCancel())
}

func TestStatus_ValidateDelete(t *testing.T) {
	assert.ErrorIs(t, order.Delivered.ValidateDelete(), order.ErrIneligibleForDeletion)
	for _, s := range []order.Status{order.Pending, order.Processing, order.Shipped, order.Cancelled} {
		assert.NoError(t, s.ValidateDelete(), s.String())
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, name := range []string{"UNPAID", "PENDING_CAPTURE", "CAPTURED", "CASH_ON_DELIVERY", "REFUNDED"} {
		s, err := order.ParsePaymentStatus(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}
	_, err := order.ParsePaymentStatus("CASH ON DELIVERY")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
