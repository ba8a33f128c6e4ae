package commands_test

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/checkout"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireCheckoutSessionsCommandHandler_Handle(t *testing.T) {
	t.Run("expires every stale session", func(t *testing.T) {
		stale := []*checkout.Session{
			openSession(t, kernel.NewUUID(), "order_a"),
			openSession(t, kernel.NewUUID(), "order_b"),
		}
		f := newFixture()
		f.expectCommittedTx()
		f.checkouts.On("ListOpenCreatedBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
			return time.Since(cutoff) >= 30*time.Minute
		})).Return(stale, nil).Once()
		f.checkouts.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()

		cmd, err := commands.NewExpireCheckoutSessionsCommand(30 * time.Minute)
		require.NoError(t, err)
		h := commands.NewExpireCheckoutSessionsCommandHandler(f.checkoutFactory())
		n, err := h.Handle(testContext(t), cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		for _, s := range stale {
			assert.Equal(t, checkout.Expired, s.Status())
		}
		f.assertExpectations(t)
	})

	t.Run("skips sessions completed meanwhile", func(t *testing.T) {
		paid := openSession(t, kernel.NewUUID(), "order_paid")
		abandoned := openSession(t, kernel.NewUUID(), "order_abandoned")
		f := newFixture()
		f.expectCommittedTx()
		f.checkouts.On("ListOpenCreatedBefore", mock.Anything, mock.Anything).
			Return([]*checkout.Session{paid, abandoned}, nil).Once()
		f.checkouts.On("Update", mock.Anything, paid).
			Return(errs.NewVersionIsInvalidError("checkout session")).Once()
		f.checkouts.On("Update", mock.Anything, abandoned).Return(nil).Once()

		cmd, err := commands.NewExpireCheckoutSessionsCommand(time.Hour)
		require.NoError(t, err)
		h := commands.NewExpireCheckoutSessionsCommandHandler(f.checkoutFactory())
		n, err := h.Handle(testContext(t), cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		f.assertExpectations(t)
	})

	t.Run("update failure aborts", func(t *testing.T) {
		f := newFixture()
		f.expectAbortedTx()
		f.checkouts.On("ListOpenCreatedBefore", mock.Anything, mock.Anything).
			Return([]*checkout.Session{openSession(t, kernel.NewUUID(), "order_a")}, nil).Once()
		f.checkouts.On("Update", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		cmd, err := commands.NewExpireCheckoutSessionsCommand(time.Hour)
		require.NoError(t, err)
		h := commands.NewExpireCheckoutSessionsCommandHandler(f.checkoutFactory())
		_, err = h.Handle(testContext(t), cmd)

		require.EqualError(t, err, "db down")
	})

	t.Run("ttl must be positive", func(t *testing.T) {
		_, err := commands.NewExpireCheckoutSessionsCommand(0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
