package main

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"github.com/riskibarqy/excitement-engine/internal/usecase"
	"github.com/robfig/cron/v3"
)

type batchRunner interface {
	RunPreMatch(ctx context.Context, opts usecase.PreMatchRunOptions) (usecase.BatchResult, error)
	RunLive(ctx context.Context) (usecase.BatchResult, error)
}

type scheduleConfig struct {
	PreMatchSpec    string
	LiveSpec        string
	PreMatchTimeout time.Duration
	LiveTimeout     time.Duration
	// LiveEnabled leaves the live job unscheduled when no provider is configured.
	LiveEnabled bool
}

// newScheduler registers both jobs. A job still running when its next tick fires is skipped.
func newScheduler(runner batchRunner, cfg scheduleConfig, logger *logging.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cronLog := cronLogger{logger: logger.Named("cron")}
	scheduler := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := scheduler.AddFunc(cfg.PreMatchSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.PreMatchTimeout)
		defer cancel()

		result, err := runner.RunPreMatch(ctx, usecase.PreMatchRunOptions{})
		logResult(logger, result, err)
	}); err != nil {
		return nil, fmt.Errorf("schedule prematch %q: %w", cfg.PreMatchSpec, err)
	}

	if !cfg.LiveEnabled {
		return scheduler, nil
	}
	if _, err := scheduler.AddFunc(cfg.LiveSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.LiveTimeout)
		defer cancel()

		result, err := runner.RunLive(ctx)
		logResult(logger, result, err)
	}); err != nil {
		return nil, fmt.Errorf("schedule live %q: %w", cfg.LiveSpec, err)
	}

	return scheduler, nil
}

// cronLogger adapts the service logger to cron's logging interface.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
