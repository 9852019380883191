// Package scheduler runs the weekly allowance job on a cron schedule inside the server process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/familienkasse/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single scheduled allowance run.
const jobTimeout = 5 * time.Minute

// AllowanceScheduler triggers ProcessWeeklyAllowances according to a cron spec evaluated in UTC.
type AllowanceScheduler struct {
	cron      *cron.Cron
	allowance portssvc.AllowanceSvc
	logger    *slog.Logger
}

// NewAllowanceScheduler parses spec (standard five-field cron syntax) and registers the job.
// The scheduler does not run until Start is called.
func NewAllowanceScheduler(spec string, allowance portssvc.AllowanceSvc, logger *slog.Logger) (*AllowanceScheduler, error) {
	s := &AllowanceScheduler{
		allowance: allowance,
		logger:    logger,
	}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger{logger: logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
	)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid allowance schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running the schedule in its own goroutine.
func (s *AllowanceScheduler) Start() {
	s.cron.Start()
	for _, entry := range s.cron.Entries() {
		s.logger.Info("Allowance scheduler started", slog.Time("next_run", entry.Next))
	}
}

// Stop halts the schedule and waits for a running job until ctx is done.
func (s *AllowanceScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AllowanceScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result := s.allowance.ProcessWeeklyAllowances(ctx, false)
	attrs := []any{
		slog.Int("accounts_processed", result.AccountsProcessed),
		slog.Int("accounts_skipped", result.AccountsSkipped),
		slog.Int("errors", len(result.Errors)),
	}
	if !result.Success {
		s.logger.Error("Scheduled weekly allowance finished with errors", append(attrs, slog.Any("error_details", result.Errors))...)
		return
	}
	s.logger.Info("Scheduled weekly allowance finished", attrs...)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err.Error())...)
}
