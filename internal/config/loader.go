// Package config provides configuration management for the parlay engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/parlay-engine/internal/parlay"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields; a missing config file is tolerated so the engine can run from
// environment variables alone.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PARLAY_ENGINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "parlay-engine")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("generator.min_leg_edge", parlay.DefaultMinLegEdge)
	v.SetDefault("generator.min_parlay_edge", parlay.DefaultMinParlayEdge)
	v.SetDefault("generator.min_combined_prob", parlay.DefaultMinCombinedProb)
	v.SetDefault("generator.max_leg_count", parlay.DefaultMaxLegCount)
	v.SetDefault("generator.min_model_agreement", parlay.DefaultMinModelAgreement)
	v.SetDefault("generator.max_results_per_bucket", parlay.DefaultMaxResultsPerBucket)
	v.SetDefault("generator.parlay_type", parlay.TypeBoth)

	v.SetDefault("odds_feed.enabled", false)
	v.SetDefault("odds_feed.timeout_seconds", 10)
	v.SetDefault("odds_feed.rate_limit", 5.0)
	v.SetDefault("odds_feed.max_retries", 3)

	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_entries", 64)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("scheduler.cron_expression", "0 */2 * * *")
	v.SetDefault("scheduler.run_timeout_seconds", 120)
	v.SetDefault("scheduler.retention_days", 30)
}
