// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package config

import (
	"fmt"
	"strings"

	"github.com/harshini-2425/Insurance-project/internal/logging"
	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// Config holds all application configuration for policyrank.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds ranking engine settings.
//
// Environment Variables:
//   - RECOMMEND_FILTER_MODE: soft, strict (default: soft)
//   - RECOMMEND_DEFAULT_TOP_N: results when the request has no top_n (default: 5)
//   - RECOMMEND_MAX_TOP_N: upper bound on top_n, 0 disables (default: 100)
//   - RECOMMEND_WORKERS: scoring workers, 0 means GOMAXPROCS (default: 0)
//   - RECOMMEND_CURRENCY_SYMBOL, RECOMMEND_LOCALE, RECOMMEND_SEPARATOR
//   - RECOMMEND_LARGE_COVERAGE_THRESHOLD (default: 1000000)
//   - RECOMMEND_DEFAULT_PROVIDER_RATING (default: 0.85)
//   - RECOMMEND_WEIGHT_COVERAGE, _PREMIUM, _HEALTH, _TYPE_FIT, _PROVIDER
type RecommendConfig struct {
	FilterMode     string        `koanf:"filter_mode"`
	DefaultTopN    int           `koanf:"default_top_n"`
	MaxTopN        int           `koanf:"max_top_n"`
	Workers        int           `koanf:"workers"`
	CurrencySymbol string        `koanf:"currency_symbol"`
	Locale         string        `koanf:"locale"`
	Separator      string        `koanf:"separator"`
	Weights        WeightsConfig `koanf:"weights"`

	// LargeCoverageThreshold is a decimal string; amounts at or above it
	// are described as strong coverage.
	LargeCoverageThreshold string `koanf:"large_coverage_threshold"`

	// DefaultProviderRating is used for providers missing from ProviderRatings.
	DefaultProviderRating float64 `koanf:"default_provider_rating"`

	// ProviderRatings maps provider_id to a rating in [0,1]. File only.
	ProviderRatings map[string]float64 `koanf:"provider_ratings"`
}

// WeightsConfig holds the factor weights. They must sum to 100.
type WeightsConfig struct {
	Coverage float64 `koanf:"coverage"`
	Premium  float64 `koanf:"premium"`
	Health   float64 `koanf:"health"`
	TypeFit  float64 `koanf:"type_fit"`
	Provider float64 `koanf:"provider"`
}

// MetricsConfig holds Prometheus settings.
//
// Environment Variables:
//   - METRICS_ENABLED: true/false (default: true)
//   - METRICS_TEXTFILE: node-exporter textfile written after each run (default: empty)
type MetricsConfig struct {
	Enabled      bool   `koanf:"enabled"`
	TextfilePath string `koanf:"textfile_path"`
}

var validLogFormats = map[string]bool{
	logging.FormatJSON:    true,
	logging.FormatConsole: true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateMetrics(); err != nil {
		return err
	}
	_, err := c.EngineConfig()
	return err
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateMetrics validates metrics configuration
func (c *Config) validateMetrics() error {
	if c.Metrics.TextfilePath != "" && !strings.HasSuffix(c.Metrics.TextfilePath, ".prom") {
		return fmt.Errorf("METRICS_TEXTFILE must end in .prom, got %q", c.Metrics.TextfilePath)
	}
	return nil
}

// EngineConfig converts the recommend section into a validated
// recommend.Config.
func (c *Config) EngineConfig() (*recommend.Config, error) {
	r := c.Recommend

	threshold, err := recommend.ParseAmount("recommend.large_coverage_threshold", r.LargeCoverageThreshold)
	if err != nil {
		return nil, err
	}

	for id, rating := range r.ProviderRatings {
		if rating < 0 || rating > 1 {
			return nil, fmt.Errorf("recommend.provider_ratings[%s] must be in [0,1], got %v", id, rating)
		}
	}

	cfg := &recommend.Config{
		Weights: recommend.FactorWeights{
			Coverage: r.Weights.Coverage,
			Premium:  r.Weights.Premium,
			Health:   r.Weights.Health,
			TypeFit:  r.Weights.TypeFit,
			Provider: r.Weights.Provider,
		},
		Filter: recommend.FilterConfig{
			Mode: recommend.FilterMode(strings.ToLower(strings.TrimSpace(r.FilterMode))),
		},
		Limits: recommend.LimitsConfig{
			DefaultTopN: r.DefaultTopN,
			MaxTopN:     r.MaxTopN,
			Workers:     r.Workers,
		},
		Reason: recommend.ReasonFormat{
			CurrencySymbol:         r.CurrencySymbol,
			Locale:                 r.Locale,
			Separator:              r.Separator,
			LargeCoverageThreshold: threshold,
		},
		Provider: recommend.ProviderConfig{
			DefaultRating: r.DefaultProviderRating,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	return cfg, nil
}

// ProviderRatings returns the configured ratings, or nil when none are set.
func (c *Config) ProviderRatings() recommend.ProviderRatings {
	if len(c.Recommend.ProviderRatings) == 0 {
		return nil
	}
	out := make(recommend.ProviderRatings, len(c.Recommend.ProviderRatings))
	for id, rating := range c.Recommend.ProviderRatings {
		out[id] = rating
	}
	return out
}

// LoggingOptions converts the logging section for logging.Init.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	opts.Format = c.Logging.Format
	opts.Caller = c.Logging.Caller
	return opts
}
