package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/familienkasse/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAllowanceService struct {
	mock.Mock
}

func (m *mockAllowanceService) ProcessWeeklyAllowances(ctx context.Context, dryRun bool) domain.AllowanceResult {
	args := m.Called(ctx, dryRun)
	return args.Get(0).(domain.AllowanceResult)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewAllowanceScheduler_InvalidSpec(t *testing.T) {
	_, err := NewAllowanceScheduler("every monday", new(mockAllowanceService), discardLogger())
	assert.Error(t, err)
}

func TestNewAllowanceScheduler_NextRunIsUTC(t *testing.T) {
	s, err := NewAllowanceScheduler("0 6 * * 1", new(mockAllowanceService), discardLogger())
	require.NoError(t, err)

	entries := s.cron.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Schedule.Next(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 16, 6, 0, 0, 0, time.UTC), next)
}

func TestRun_ProcessesForReal(t *testing.T) {
	svc := new(mockAllowanceService)
	svc.On("ProcessWeeklyAllowances", mock.Anything, false).
		Return(domain.AllowanceResult{Success: true, AccountsProcessed: 3, Errors: []string{}}).Once()

	s, err := NewAllowanceScheduler("@weekly", svc, discardLogger())
	require.NoError(t, err)

	s.run()
	svc.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s, err := NewAllowanceScheduler("@weekly", new(mockAllowanceService), discardLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
