// Command worker runs excitement scoring batches once or on a cron schedule.
//
// Usage:
//
//	excitement-worker prematch [--force]
//	excitement-worker live
//	excitement-worker schedule
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/excitement-engine/internal/app"
	"github.com/riskibarqy/excitement-engine/internal/config"
	"github.com/riskibarqy/excitement-engine/internal/observability"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"github.com/riskibarqy/excitement-engine/internal/usecase"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "excitement-worker",
		Short:         "Excitement scoring batch runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(preMatchCmd())
	root.AddCommand(liveCmd())
	root.AddCommand(scheduleCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func preMatchCmd() *cobra.Command {
	var (
		force   bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "prematch",
		Short: "Score every unfinished fixture once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer("prematch", func(ctx context.Context, container *app.Container) error {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				result, err := container.Excitement.RunPreMatch(ctx, usecase.PreMatchRunOptions{Force: force})
				logResult(container.Logger, result, err)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Recompute scores that are still fresh")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Maximum duration of the run")
	return cmd
}

func liveCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Score every fixture currently in play once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer("live", func(ctx context.Context, container *app.Container) error {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()

				result, err := container.Excitement.RunLive(ctx)
				logResult(container.Logger, result, err)
				return err
			})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Maximum duration of the run")
	return cmd
}

func scheduleCmd() *cobra.Command {
	var (
		preMatchTimeout time.Duration
		liveTimeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run pre-match and live scoring on their cron schedules until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer("schedule", func(ctx context.Context, container *app.Container) error {
				scheduler, err := newScheduler(container.Excitement, scheduleConfig{
					PreMatchSpec:    container.Config.SchedulePreMatchCron,
					LiveSpec:        container.Config.ScheduleLiveCron,
					PreMatchTimeout: preMatchTimeout,
					LiveTimeout:     liveTimeout,
					LiveEnabled:     container.Config.LivescoreEnabled,
				}, container.Logger)
				if err != nil {
					return err
				}

				scheduler.Start()
				container.Logger.Info("scheduler started",
					"prematch_cron", container.Config.SchedulePreMatchCron,
					"live_cron", container.Config.ScheduleLiveCron,
					"live_enabled", container.Config.LivescoreEnabled,
				)

				<-ctx.Done()
				container.Logger.Info("scheduler stopping")
				<-scheduler.Stop().Done()
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&preMatchTimeout, "prematch-timeout", 10*time.Minute, "Maximum duration of one pre-match run")
	cmd.Flags().DurationVar(&liveTimeout, "live-timeout", 50*time.Second, "Maximum duration of one live run")
	return cmd
}

// withContainer loads config, starts observability and builds the services for one command.
func withContainer(role string, fn func(ctx context.Context, container *app.Container) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "role", "worker", "command", role)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	telemetry, err := observability.Start(ctx, cfg, observability.RoleWorker, logger)
	if err != nil {
		return fmt.Errorf("start observability: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(flushCtx)
	}()

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() { _ = container.Close() }()

	return fn(ctx, container)
}

func logResult(logger *logging.Logger, result usecase.BatchResult, err error) {
	fields := []any{
		"run_id", result.RunID,
		"mode", result.Mode,
		"total", result.Total,
		"scored", result.Scored,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"duration_ms", result.DurationMS,
	}
	if err != nil {
		logger.Error("scoring run failed", append(fields, "error", err)...)
		return
	}
	logger.Info("scoring run finished", fields...)
}
