// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Rewards  RewardsConfig  `mapstructure:"rewards"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address for the HTTP server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RewardsConfig holds earn/convert/stake behavior knobs.
type RewardsConfig struct {
	// HistoryLimit caps the per-account conversion history; the oldest
	// entry is evicted when a new one pushes past the cap.
	HistoryLimit int `mapstructure:"history_limit"`
	// WatchThresholdPercent is the share of a video's duration that must
	// be watched before its point reward can be claimed.
	WatchThresholdPercent int `mapstructure:"watch_threshold_percent"`
	// CommitDelay is an optional pause applied after validation and before
	// a mutation commits, mirroring the dashboard's pending-transaction
	// latency. Zero disables it.
	CommitDelay time.Duration `mapstructure:"commit_delay"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Enable environment variable override
	// Environment variables use underscore separator and uppercase
	// e.g., SERVER_PORT, DATABASE_HOST, REWARDS_COMMIT_DELAY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - env vars can provide all config)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we can use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Rewards.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects reward knobs that would corrupt account state: a
// non-positive history limit truncates the whole history on every insert.
func (r *RewardsConfig) validate() error {
	if r.HistoryLimit < 1 {
		return fmt.Errorf("rewards.history_limit must be at least 1, got %d", r.HistoryLimit)
	}
	if r.WatchThresholdPercent < 1 || r.WatchThresholdPercent > 100 {
		return fmt.Errorf("rewards.watch_threshold_percent must be in 1..100, got %d", r.WatchThresholdPercent)
	}
	if r.CommitDelay < 0 {
		return fmt.Errorf("rewards.commit_delay must not be negative, got %s", r.CommitDelay)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "owatch")
	v.SetDefault("database.name", "owatch")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Rewards defaults
	v.SetDefault("rewards.history_limit", 10)
	v.SetDefault("rewards.watch_threshold_percent", 80)
	v.SetDefault("rewards.commit_delay", "0s")
}
