// Package config provides configuration management for the parlay engine.
package config

import (
	"fmt"

	"github.com/yourusername/parlay-engine/internal/parlay"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig               `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig          `mapstructure:"database" validate:"required"`
	Generator parlay.GenerationConfig `mapstructure:"generator"`
	OddsFeed  OddsFeedConfig          `mapstructure:"odds_feed"`
	Cache     CacheConfig             `mapstructure:"cache"`
	Metrics   MetricsConfig           `mapstructure:"metrics"`
	Scheduler SchedulerConfig         `mapstructure:"scheduler"`
	Secrets   SecretsConfig           `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// OddsFeedConfig represents the market-odds enrichment API configuration.
// Enrichment is optional: when disabled, legs keep consensus data only.
type OddsFeedConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"omitempty,gte=0"`
}

// CacheConfig represents the generation result cache configuration
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"omitempty,gt=0"`
	MaxEntries int `mapstructure:"max_entries" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig represents scheduled generation configuration. A zero
// RetentionDays disables the retention cleanup job.
type SchedulerConfig struct {
	CronExpression    string `mapstructure:"cron_expression" validate:"required"`
	RunTimeoutSeconds int    `mapstructure:"run_timeout_seconds" validate:"required,gt=0"`
	RetentionDays     int    `mapstructure:"retention_days" validate:"gte=0"`
}

// SecretsConfig controls AWS Secrets Manager credential resolution
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
