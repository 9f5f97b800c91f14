// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"github.com/shopspring/decimal"
)

// ScorePlaces is the number of fractional digits kept in a composite score.
const ScorePlaces = 2

var maxScore = decimal.NewFromInt(100)

// Breakdown holds the clamped factor values behind one composite score.
type Breakdown struct {
	Coverage decimal.Decimal `json:"coverage"`
	Premium  decimal.Decimal `json:"premium"`
	Health   decimal.Decimal `json:"health"`
	TypeFit  decimal.Decimal `json:"type_fit"`
	Provider decimal.Decimal `json:"provider"`

	// Score is the weighted composite in [0, 100].
	Score decimal.Decimal `json:"score"`
}

// Factor returns the value of the named factor.
func (b *Breakdown) Factor(name string) decimal.Decimal {
	switch name {
	case FactorCoverage:
		return b.Coverage
	case FactorPremium:
		return b.Premium
	case FactorHealth:
		return b.Health
	case FactorTypeFit:
		return b.TypeFit
	case FactorProvider:
		return b.Provider
	default:
		return decimal.Zero
	}
}

// Scorer computes composite scores. It holds only immutable configuration
// and is safe for concurrent use.
type Scorer struct {
	wCoverage decimal.Decimal
	wPremium  decimal.Decimal
	wHealth   decimal.Decimal
	wTypeFit  decimal.Decimal
	wProvider decimal.Decimal

	rater         ProviderRater
	defaultRating decimal.Decimal
}

// NewScorer builds a Scorer from cfg. rater may be nil.
func NewScorer(cfg *Config, rater ProviderRater) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{
		wCoverage:     decimal.NewFromFloat(cfg.Weights.Coverage),
		wPremium:      decimal.NewFromFloat(cfg.Weights.Premium),
		wHealth:       decimal.NewFromFloat(cfg.Weights.Health),
		wTypeFit:      decimal.NewFromFloat(cfg.Weights.TypeFit),
		wProvider:     decimal.NewFromFloat(cfg.Weights.Provider),
		rater:         rater,
		defaultRating: decimal.NewFromFloat(cfg.Provider.DefaultRating),
	}
}

// Breakdown evaluates every factor and the composite score.
func (s *Scorer) Breakdown(c *PolicyCandidate, profile *UserProfile, prefs *Preferences, tier RiskTier) Breakdown {
	b := Breakdown{
		Coverage: CoverageMatch(c, prefs),
		Premium:  PremiumAffordability(c, profile, prefs),
		Health:   HealthAlignment(c, profile, tier),
		TypeFit:  TypeFit(c, profile, prefs),
		Provider: ProviderRating(c, s.rater, s.defaultRating),
	}

	total := s.wCoverage.Mul(b.Coverage).
		Add(s.wPremium.Mul(b.Premium)).
		Add(s.wHealth.Mul(b.Health)).
		Add(s.wTypeFit.Mul(b.TypeFit)).
		Add(s.wProvider.Mul(b.Provider))

	b.Score = clampScore(total.Round(ScorePlaces))
	return b
}

// Score returns the composite score of c.
func (s *Scorer) Score(c *PolicyCandidate, profile *UserProfile, prefs *Preferences, tier RiskTier) decimal.Decimal {
	b := s.Breakdown(c, profile, prefs, tier)
	return b.Score
}

func clampScore(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(maxScore) {
		return maxScore
	}
	return v
}
