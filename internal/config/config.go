// Package config provides configuration management for the leaders scraper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingAPIBaseURL        = errors.New("api.base_url is required")
	ErrInvalidAPIBaseURL        = errors.New("api.base_url must be a valid absolute URL")
	ErrInvalidAPITimeout        = errors.New("api.timeout_sec must be at least 1")
	ErrInvalidWikiTimeout       = errors.New("wikipedia.timeout_sec must be at least 1")
	ErrInvalidMinParagraph      = errors.New("wikipedia.min_paragraph_chars must be non-negative")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrMissingOutputPath        = errors.New("output.path is required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete scraper configuration.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
}

// ScraperConfig contains scraper-specific settings.
type ScraperConfig struct {
	API       APIConfig     `yaml:"api"`
	Wikipedia WikiConfig    `yaml:"wikipedia"`
	Retry     RetryPolicy   `yaml:"retry"`
	Output    OutputConfig  `yaml:"output"`
	Logging   LoggingConfig `yaml:"logging"`
}

// APIConfig describes the country-leaders API endpoint.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// WikiConfig describes Wikipedia fetching and paragraph selection.
type WikiConfig struct {
	UserAgent         string `yaml:"user_agent"`
	TimeoutSec        int    `yaml:"timeout_sec"`
	MinParagraphChars int    `yaml:"min_paragraph_chars"`
}

// RetryPolicy defines retry behavior for transient upstream failures.
// Cookie-refresh retries on 401/403 are handled separately by the fetcher.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
}

// OutputConfig defines where and how the leader collection is written.
type OutputConfig struct {
	Path          string `yaml:"path"`
	PrettyPrint   bool   `yaml:"pretty_print"`
	CreateBackup  bool   `yaml:"create_backup"`
	WriteChecksum bool   `yaml:"write_checksum"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	ShowProgress  bool   `yaml:"show_progress"`
	SampleLeaders int    `yaml:"sample_leaders"`
}

// Default creates a configuration with built-in defaults, used when no config
// file is provided on the command line.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			API: APIConfig{
				BaseURL:    "https://country-leaders.onrender.com",
				TimeoutSec: 10,
			},
			Wikipedia: WikiConfig{
				TimeoutSec:        10,
				MinParagraphChars: 80,
				UserAgent:         "leaderswiki/1.0 (batch biography enrichment)",
			},
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    500,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
			},
			Output: OutputConfig{
				Path:          "data/leaders.json",
				PrettyPrint:   true,
				CreateBackup:  true,
				WriteChecksum: true,
			},
			Logging: LoggingConfig{
				Level:         "info",
				ShowProgress:  true,
				SampleLeaders: 3,
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scraper.API.BaseURL == "" {
		return ErrMissingAPIBaseURL
	}

	parsed, err := url.Parse(c.Scraper.API.BaseURL)
	if err != nil || !parsed.IsAbs() {
		return ErrInvalidAPIBaseURL
	}

	if c.Scraper.API.TimeoutSec < 1 {
		return ErrInvalidAPITimeout
	}

	if c.Scraper.Wikipedia.TimeoutSec < 1 {
		return ErrInvalidWikiTimeout
	}

	if c.Scraper.Wikipedia.MinParagraphChars < 0 {
		return ErrInvalidMinParagraph
	}

	// Validate retry policy
	if c.Scraper.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Scraper.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if c.Scraper.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if c.Scraper.Output.Path == "" {
		return ErrMissingOutputPath
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scraper.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the API request timeout duration.
func (a *APIConfig) GetTimeout() time.Duration {
	return time.Duration(a.TimeoutSec) * time.Second
}

// GetTimeout returns the Wikipedia request timeout duration.
func (w *WikiConfig) GetTimeout() time.Duration {
	return time.Duration(w.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{API: %s, MaxAttempts: %d, Output: %s}",
		c.Scraper.API.BaseURL,
		c.Scraper.Retry.MaxAttempts,
		c.Scraper.Output.Path,
	)
}
