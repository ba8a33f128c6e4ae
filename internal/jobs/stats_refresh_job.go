package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

type StatsReader interface {
	Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.OrderStats, error)
}

type StatsRecorder interface {
	RecordStats(stats queries.OrderStats)
}

// StatsRefreshJob keeps the order stats gauges current between admin requests.
type StatsRefreshJob struct {
	reader   StatsReader
	recorder StatsRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStatsRefreshJob(reader StatsReader, recorder StatsRecorder, logger *slog.Logger) *StatsRefreshJob {
	return &StatsRefreshJob{
		reader:   reader,
		recorder: recorder,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stats_refresh_job"),
	}
}

// Start refreshes once immediately, then every 30 seconds.
func (j *StatsRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.RunOnce(context.Background())
	j.cron.Start()
	j.logger.Info("Stats refresh job started (running every 30 seconds)")
	return nil
}

func (j *StatsRefreshJob) RunOnce(ctx context.Context) {
	stats, err := j.reader.Handle(ctx, queries.NewGetOrderStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stats refresh job failed", "error", err)
		return
	}
	j.recorder.RecordStats(stats)
}

func (j *StatsRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Stats refresh job stopped")
}
