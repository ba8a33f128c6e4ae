package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type expirerMock struct{ mock.Mock }

func (m *expirerMock) Handle(ctx context.Context, cmd commands.ExpireCheckoutSessionsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type statsReaderMock struct{ mock.Mock }

func (m *statsReaderMock) Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.OrderStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderStats), args.Error(1)
}

type statsRecorderMock struct{ mock.Mock }

func (m *statsRecorderMock) RecordStats(stats queries.OrderStats) {
	m.Called(stats)
}

func logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckoutExpiryJob_RunOnce(t *testing.T) {
	expirer := &expirerMock{}
	expirer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExpireCheckoutSessionsCommand) bool {
		return cmd.Validate() == nil && cmd.TTL() == 30*time.Minute
	})).Return(2, nil).Once()

	jobs.NewCheckoutExpiryJob(expirer, 30*time.Minute, logger()).RunOnce(context.Background())

	expirer.AssertExpectations(t)
}

func TestCheckoutExpiryJob_Start_RejectsNonPositiveTTL(t *testing.T) {
	expirer := &expirerMock{}

	err := jobs.NewCheckoutExpiryJob(expirer, 0, logger()).Start()

	require.Error(t, err)
	expirer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestStatsRefreshJob_RunOnce(t *testing.T) {
	stats := queries.OrderStats{TotalUsers: 4, TotalOrders: 9, DeliveredOrders: 3, ReceivedOrders: 6}

	t.Run("records fresh stats", func(t *testing.T) {
		reader := &statsReaderMock{}
		recorder := &statsRecorderMock{}
		reader.On("Handle", mock.Anything, mock.Anything).Return(stats, nil).Once()
		recorder.On("RecordStats", stats).Once()

		jobs.NewStatsRefreshJob(reader, recorder, logger()).RunOnce(context.Background())

		reader.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("keeps the previous gauges on failure", func(t *testing.T) {
		reader := &statsReaderMock{}
		recorder := &statsRecorderMock{}
		reader.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderStats{}, errors.New("db down")).Once()

		jobs.NewStatsRefreshJob(reader, recorder, logger()).RunOnce(context.Background())

		recorder.AssertNotCalled(t, "RecordStats", mock.Anything)
	})
}

func TestJobManager_StartAll(t *testing.T) {
	expirer := &expirerMock{}
	reader := &statsReaderMock{}
	recorder := &statsRecorderMock{}
	reader.On("Handle", mock.Anything, mock.Anything).Return(queries.OrderStats{}, nil)
	recorder.On("RecordStats", mock.Anything)
	expirer.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Maybe()

	manager := jobs.NewJobManager(expirer, time.Hour, reader, recorder, logger())
	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.True(t, reader.AssertCalled(t, "Handle", mock.Anything, mock.Anything), "stats are refreshed on start")
}

func TestJobManager_StartAll_BadTTL(t *testing.T) {
	manager := jobs.NewJobManager(&expirerMock{}, -time.Second, &statsReaderMock{}, &statsRecorderMock{}, logger())
	assert.Error(t, manager.StartAll())
}
