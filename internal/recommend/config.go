// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// FilterMode selects how strictly candidates are excluded before scoring.
type FilterMode string

const (
	// FilterSoft applies only the preferred-type filter.
	FilterSoft FilterMode = "soft"

	// FilterStrict additionally excludes by age band, high risk level and
	// budget before the type filter.
	FilterStrict FilterMode = "strict"
)

// Valid reports whether m is a known mode.
func (m FilterMode) Valid() bool {
	return m == FilterSoft || m == FilterStrict
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights are the factor weights of the composite score.
	Weights FactorWeights `json:"weights"`

	// Filter controls eligibility filtering.
	Filter FilterConfig `json:"filter"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Reason controls reason text formatting.
	Reason ReasonFormat `json:"reason"`

	// Provider controls the provider rating factor.
	Provider ProviderConfig `json:"provider"`
}

// FactorWeights are the points each factor contributes at full strength.
// They must be non-negative and sum to 100 so scores land in [0, 100].
type FactorWeights struct {
	Coverage float64 `json:"coverage"`
	Premium  float64 `json:"premium"`
	Health   float64 `json:"health"`
	TypeFit  float64 `json:"type_fit"`
	Provider float64 `json:"provider"`
}

// Sum returns the total weight.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w FactorWeights) Sum() float64 {
	return w.Coverage + w.Premium + w.Health + w.TypeFit + w.Provider
}

// ToMap returns the weights as a string-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w FactorWeights) ToMap() map[string]float64 {
	return map[string]float64{
		FactorCoverage: w.Coverage,
		FactorPremium:  w.Premium,
		FactorHealth:   w.Health,
		FactorTypeFit:  w.TypeFit,
		FactorProvider: w.Provider,
	}
}

// FilterConfig controls eligibility filtering.
type FilterConfig struct {
	// Mode is soft or strict.
	// Default: soft.
	Mode FilterMode `json:"mode"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultTopN is used when a request does not specify how many results
	// it wants.
	// Default: 5.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the requested result count. Zero disables the cap.
	// Default: 100.
	MaxTopN int `json:"max_top_n"`

	// Workers bounds concurrent scoring within one request.
	// Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// ReasonFormat controls how reason text renders amounts.
type ReasonFormat struct {
	// CurrencySymbol prefixes every amount.
	// Default: "₹".
	CurrencySymbol string `json:"currency_symbol"`

	// Locale is a BCP 47 tag selecting digit grouping.
	// Default: "en".
	Locale string `json:"locale"`

	// Separator joins reason clauses.
	// Default: " • ".
	Separator string `json:"separator"`

	// LargeCoverageThreshold is the sum insured at or above which the
	// coverage clause reads "Strong coverage".
	// Default: 1000000.
	LargeCoverageThreshold decimal.Decimal `json:"large_coverage_threshold"`
}

// ProviderConfig controls the provider rating factor.
type ProviderConfig struct {
	// DefaultRating is used when no rater is injected or the provider is
	// unknown to it.
	// Default: 0.85.
	DefaultRating float64 `json:"default_rating"`
}

// DefaultConfig returns a Config with the canonical scoring weights.
func DefaultConfig() *Config {
	return &Config{
		Weights: FactorWeights{
			Coverage: 35,
			Premium:  25,
			Health:   25,
			TypeFit:  10,
			Provider: 5,
		},
		Filter: FilterConfig{
			Mode: FilterSoft,
		},
		Limits: LimitsConfig{
			DefaultTopN: 5,
			MaxTopN:     100,
			Workers:     0,
		},
		Reason: ReasonFormat{
			CurrencySymbol:         "₹",
			Locale:                 "en",
			Separator:              " • ",
			LargeCoverageThreshold: decimal.NewFromInt(1_000_000),
		},
		Provider: ProviderConfig{
			DefaultRating: 0.85,
		},
	}
}

// weightSumTolerance absorbs float noise in configured weights.
const weightSumTolerance = 1e-6

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	weights := c.Weights.ToMap()
	for _, name := range FactorNames {
		w := weights[name]
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("weights.%s must be a non-negative number, got %f", name, w)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-100) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 100, got %f", sum)
	}

	if !c.Filter.Mode.Valid() {
		return fmt.Errorf("filter.mode must be soft or strict, got %q", c.Filter.Mode)
	}

	if c.Limits.DefaultTopN < 0 {
		return fmt.Errorf("limits.default_top_n must be non-negative, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < 0 {
		return fmt.Errorf("limits.max_top_n must be non-negative, got %d", c.Limits.MaxTopN)
	}
	if c.Limits.MaxTopN > 0 && c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d",
			c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.Workers < 0 {
		return fmt.Errorf("limits.workers must be non-negative, got %d", c.Limits.Workers)
	}

	if c.Reason.Separator == "" {
		return fmt.Errorf("reason.separator must not be empty")
	}
	if _, err := language.Parse(c.Reason.Locale); err != nil {
		return fmt.Errorf("reason.locale %q: %w", c.Reason.Locale, err)
	}
	if c.Reason.LargeCoverageThreshold.IsNegative() {
		return fmt.Errorf("reason.large_coverage_threshold must be non-negative, got %s",
			c.Reason.LargeCoverageThreshold)
	}

	if c.Provider.DefaultRating < 0 || c.Provider.DefaultRating > 1 {
		return fmt.Errorf("provider.default_rating must be in [0, 1], got %f", c.Provider.DefaultRating)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	return &Config{
		Weights:  c.Weights,
		Filter:   c.Filter,
		Limits:   c.Limits,
		Reason:   c.Reason,
		Provider: c.Provider,
	}
}
