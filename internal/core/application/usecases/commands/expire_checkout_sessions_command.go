package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrExpireCheckoutSessionsCommandIsNotConstructed = errors.New(
	"ExpireCheckoutSessionsCommand must be created via NewExpireCheckoutSessionsCommand constructor",
)

// ExpireCheckoutSessionsCommand expires OPEN sessions older than ttl.
type ExpireCheckoutSessionsCommand struct {
	ttl time.Duration

	guard guard.ConstructorGuard
}

func NewExpireCheckoutSessionsCommand(ttl time.Duration) (ExpireCheckoutSessionsCommand, error) {
	if ttl <= 0 {
		return ExpireCheckoutSessionsCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	return ExpireCheckoutSessionsCommand{ttl: ttl, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireCheckoutSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireCheckoutSessionsCommandIsNotConstructed)
}

func (c ExpireCheckoutSessionsCommand) TTL() time.Duration {
	return c.ttl
}
