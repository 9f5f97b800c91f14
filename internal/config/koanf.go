// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"policyrank.yaml",
	"policyrank.yml",
	"/etc/policyrank/config.yaml",
	"/etc/policyrank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values, derived
// from recommend.DefaultConfig so the two never drift.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()

	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			FilterMode:     string(engine.Filter.Mode),
			DefaultTopN:    engine.Limits.DefaultTopN,
			MaxTopN:        engine.Limits.MaxTopN,
			Workers:        engine.Limits.Workers,
			CurrencySymbol: engine.Reason.CurrencySymbol,
			Locale:         engine.Reason.Locale,
			Separator:      engine.Reason.Separator,
			Weights: WeightsConfig{
				Coverage: engine.Weights.Coverage,
				Premium:  engine.Weights.Premium,
				Health:   engine.Weights.Health,
				TypeFit:  engine.Weights.TypeFit,
				Provider: engine.Weights.Provider,
			},
			LargeCoverageThreshold: engine.Reason.LargeCoverageThreshold.String(),
			DefaultProviderRating:  engine.Provider.DefaultRating,
		},
		Metrics: MetricsConfig{
			Enabled:      true,
			TextfilePath: "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any mapped setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	return load(findConfigFile())
}

// LoadFromPath is LoadWithKoanf with an explicit config file. Unlike the
// search paths, a missing explicit file is an error.
func LoadFromPath(path string) (*Config, error) {
	if path == "" {
		return LoadWithKoanf()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// RECOMMEND_FILTER_MODE -> recommend.filter_mode
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommendation engine mappings
	"recommend_filter_mode":              "recommend.filter_mode",
	"recommend_default_top_n":            "recommend.default_top_n",
	"recommend_max_top_n":                "recommend.max_top_n",
	"recommend_workers":                  "recommend.workers",
	"recommend_currency_symbol":          "recommend.currency_symbol",
	"recommend_locale":                   "recommend.locale",
	"recommend_separator":                "recommend.separator",
	"recommend_large_coverage_threshold": "recommend.large_coverage_threshold",
	"recommend_default_provider_rating":  "recommend.default_provider_rating",
	"recommend_weight_coverage":          "recommend.weights.coverage",
	"recommend_weight_premium":           "recommend.weights.premium",
	"recommend_weight_health":            "recommend.weights.health",
	"recommend_weight_type_fit":          "recommend.weights.type_fit",
	"recommend_weight_provider":          "recommend.weights.provider",

	// Metrics mappings
	"metrics_enabled":  "metrics.enabled",
	"metrics_textfile": "metrics.textfile_path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LOG_LEVEL -> logging.level
//   - RECOMMEND_FILTER_MODE -> recommend.filter_mode
//   - RECOMMEND_WEIGHT_TYPE_FIT -> recommend.weights.type_fit
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
