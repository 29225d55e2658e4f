// Package main provides the scheduled parlay generation daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/health"
	"github.com/yourusername/parlay-engine/internal/logger"
	"github.com/yourusername/parlay-engine/internal/oddsfeed"
	"github.com/yourusername/parlay-engine/internal/parlay"
	"github.com/yourusername/parlay-engine/internal/repository"
	"github.com/yourusername/parlay-engine/internal/scheduler"
	"github.com/yourusername/parlay-engine/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the parlay generation daemon",
	Long:  `Regenerates ranked parlays on a cron schedule and serves health and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.ApplySecrets(ctx, cfg); err != nil {
		return fmt.Errorf("failed to resolve secrets: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"commit":      GitCommit,
		"environment": cfg.App.Environment,
		"cron":        cfg.Scheduler.CronExpression,
	}).Info("Parlay scheduler starting")

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	var legs parlay.LegSource = repos.Leg
	if cfg.OddsFeed.Enabled {
		client := oddsfeed.NewClient(cfg.OddsFeed, appLog)
		defer client.Close()
		legs = oddsfeed.NewEnrichingSource(legs, client, appLog)
	}

	svc := service.NewGenerationService(legs, repos.Parlay, cfg.Cache, appLog)

	runTimeout := time.Duration(cfg.Scheduler.RunTimeoutSeconds) * time.Second
	sched := scheduler.NewScheduler(svc, runTimeout, appLog)
	if err := sched.ScheduleGeneration(cfg.Scheduler.CronExpression, cfg.Generator); err != nil {
		return err
	}
	if cfg.Scheduler.RetentionDays > 0 {
		if err := sched.ScheduleRetention(cfg.Scheduler.RetentionDays); err != nil {
			return err
		}
	}

	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthServer := health.NewServer(health.Config{
		ServiceName:    cfg.App.Name,
		Version:        Version,
		Commit:         GitCommit,
		Port:           metricsPort(cfg),
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         appLog,
		DB:             db,
	})
	if err := healthServer.Start(serverCtx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	if err := sched.Start(); err != nil {
		return err
	}
	healthServer.SetReady(true)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	appLog.WithField("signal", received.String()).Info("Shutting down")

	healthServer.SetReady(false)
	sched.Stop()
	cancel()

	return nil
}

func metricsPort(cfg *config.Config) string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	return strconv.Itoa(cfg.Metrics.Port)
}
