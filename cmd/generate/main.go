// Package main provides the one-shot parlay generation command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/parlay-engine/internal/config"
	"github.com/yourusername/parlay-engine/internal/database"
	"github.com/yourusername/parlay-engine/internal/logger"
	"github.com/yourusername/parlay-engine/internal/models"
	"github.com/yourusername/parlay-engine/internal/oddsfeed"
	"github.com/yourusername/parlay-engine/internal/parlay"
	"github.com/yourusername/parlay-engine/internal/repository"
	"github.com/yourusername/parlay-engine/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	parlayType string
	maxLegs    int
	dryRun     bool
	jsonOutput bool

	cfg    *config.Config
	appLog *logrus.Logger
	db     *database.DB
	repos  *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&parlayType, "parlay-type", "t", "", "Parlay type to generate (multi_game|single_game|both)")
	rootCmd.Flags().IntVarP(&maxLegs, "max-legs", "l", 0, "Maximum legs per parlay")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate without persisting results")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the ranked parlays as JSON")
}

var rootCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one parlay generation pass",
	Long:  `Fetches the candidate leg pool, generates ranked parlay combinations and persists them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer db.Close()
		return runGeneration(cmd.Context())
	},
}

var latestLimit int

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recently persisted generation run",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer db.Close()
		return showLatest(cmd.Context())
	},
}

func main() {
	latestCmd.Flags().IntVarP(&latestLimit, "limit", "n", 20, "Maximum parlays to show")
	rootCmd.AddCommand(latestCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func showLatest(ctx context.Context) error {
	records, err := repos.Parlay.GetLatest(ctx, latestLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch latest parlays: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No persisted parlays found")
		return nil
	}

	fmt.Printf("Run %s (%s)\n", records[0].RunID, records[0].GeneratedAt.Format(time.RFC3339))
	for i, p := range records {
		fmt.Printf("%3d. [%s] %d legs  score=%.1f  edge=%.1f%%  prob=%.3f  odds=%s  tier=%s\n",
			i+1, p.ParlayType, p.LegCount, p.QualityScore, p.ParlayEdge,
			p.AdjustedProb, p.DisplayOdds.StringFixed(2), p.ConfidenceTier)
	}
	return nil
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.ApplySecrets(ctx, cfg); err != nil {
		return fmt.Errorf("failed to resolve secrets: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"version":     Version,
		"commit":      GitCommit,
		"environment": cfg.App.Environment,
	}).Info("Parlay generation starting")

	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return err
	}

	return nil
}

func runGeneration(ctx context.Context) error {
	genCfg := cfg.Generator.Normalize()
	if parlayType != "" {
		genCfg.ParlayType = parlayType
	}
	if maxLegs > 0 {
		genCfg.MaxLegCount = maxLegs
	}

	var legs parlay.LegSource = repos.Leg
	if cfg.OddsFeed.Enabled {
		client := oddsfeed.NewClient(cfg.OddsFeed, appLog)
		defer client.Close()
		legs = oddsfeed.NewEnrichingSource(legs, client, appLog)
	}

	var parlayRepo repository.ParlayRepository
	if !dryRun {
		parlayRepo = repos.Parlay
	}

	svc := service.NewGenerationService(legs, parlayRepo, cfg.Cache, appLog)

	start := time.Now()
	combos, err := svc.GenerateFresh(ctx, genCfg)
	if err != nil {
		return fmt.Errorf("generation run failed: %w", err)
	}

	appLog.WithFields(logrus.Fields{
		"parlays":    len(combos),
		"elapsed_ms": time.Since(start).Milliseconds(),
		"dry_run":    dryRun,
	}).Info("Generation finished")

	if jsonOutput {
		return printJSON(combos)
	}
	printSummary(combos)
	return nil
}

func printJSON(combos []*models.Combination) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(combos)
}

func printSummary(combos []*models.Combination) {
	if len(combos) == 0 {
		fmt.Println("No qualifying parlays this run")
		return
	}
	for i, c := range combos {
		fmt.Printf("%3d. [%s] %d legs  score=%.1f  edge=%.1f%%  prob=%.3f  odds=%s  tier=%s\n",
			i+1, c.ParlayType, c.LegCount, c.QualityScore, c.ParlayEdge,
			c.AdjustedProb, c.DisplayOdds(), c.ConfidenceTier)
	}
}
