package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type SessionExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireCheckoutSessionsCommand) (int, error)
}

// CheckoutExpiryJob expires checkout sessions that were never paid.
type CheckoutExpiryJob struct {
	handler SessionExpirer
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewCheckoutExpiryJob(handler SessionExpirer, ttl time.Duration, logger *slog.Logger) *CheckoutExpiryJob {
	return &CheckoutExpiryJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "checkout_expiry_job"),
	}
}

// Start schedules the job at the top of every minute.
func (j *CheckoutExpiryJob) Start() error {
	if _, err := commands.NewExpireCheckoutSessionsCommand(j.ttl); err != nil {
		return err
	}

	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Checkout expiry job started", "ttl", j.ttl.String())
	return nil
}

func (j *CheckoutExpiryJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewExpireCheckoutSessionsCommand(j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Checkout expiry job misconfigured", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Checkout expiry job failed", "error", err)
		return
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Checkout sessions expired", "count", expired)
	}
}

func (j *CheckoutExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Checkout expiry job stopped")
}
