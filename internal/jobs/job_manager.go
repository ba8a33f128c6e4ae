package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops every scheduled job of the service together.
type JobManager struct {
	checkoutExpiryJob *CheckoutExpiryJob
	statsRefreshJob   *StatsRefreshJob
}

func NewJobManager(
	expirer SessionExpirer,
	sessionTTL time.Duration,
	statsReader StatsReader,
	statsRecorder StatsRecorder,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		checkoutExpiryJob: NewCheckoutExpiryJob(expirer, sessionTTL, logger),
		statsRefreshJob:   NewStatsRefreshJob(statsReader, statsRecorder, logger),
	}
}

// StartAll starts all jobs. If one fails to start, those already running are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.checkoutExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start checkout expiry job: %w", err)
	}

	if err := jm.statsRefreshJob.Start(); err != nil {
		jm.checkoutExpiryJob.Stop()
		return fmt.Errorf("failed to start stats refresh job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.statsRefreshJob.Stop()
	jm.checkoutExpiryJob.Stop()
}
