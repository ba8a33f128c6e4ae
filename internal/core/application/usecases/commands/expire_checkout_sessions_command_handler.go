package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/pkg/errs"
)

// ExpireCheckoutSessionsCommandHandler closes OPEN checkout sessions older
// than the command's TTL.
type ExpireCheckoutSessionsCommandHandler struct {
	uowFactory CheckoutUoWFactory
	now        func() time.Time
}

// NewExpireCheckoutSessionsCommandHandler is run by the expiry job.
//
// Example:
//
//	cmd, _ := commands.NewExpireCheckoutSessionsCommand(30 * time.Minute)
//	h := commands.NewExpireCheckoutSessionsCommandHandler(uowFactory)
//	n, err := h.Handle(ctx, cmd)
func NewExpireCheckoutSessionsCommandHandler(uowFactory CheckoutUoWFactory) ExpireCheckoutSessionsCommandHandler {
	return ExpireCheckoutSessionsCommandHandler{uowFactory: uowFactory, now: time.Now}
}

// Handle returns the number of sessions it expired. A session paid for while
// the job ran fails the version check and is skipped.
func (h *ExpireCheckoutSessionsCommandHandler) Handle(ctx context.Context, cmd ExpireCheckoutSessionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CheckoutRepository()
	sessions, err := repo.ListOpenCreatedBefore(ctx, now.Add(-cmd.TTL()))
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, session := range sessions {
		if err = session.Expire(now); err != nil {
			return 0, err
		}
		err = repo.Update(ctx, session)
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			continue
		}
		if err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return expired, nil
}
