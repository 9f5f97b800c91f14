// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RiskTier is the user's stated appetite for risk. It scales the health and
// risk alignment factor.
type RiskTier string

const (
	// TierConservative favours health and life cover.
	TierConservative RiskTier = "conservative"
	// TierModerate is neutral.
	TierModerate RiskTier = "moderate"
	// TierAggressive boosts every type.
	TierAggressive RiskTier = "aggressive"
)

// String returns the wire token for the tier.
func (t RiskTier) String() string {
	return string(t)
}

// Valid reports whether t is a known tier.
func (t RiskTier) Valid() bool {
	switch t {
	case TierConservative, TierModerate, TierAggressive:
		return true
	default:
		return false
	}
}

// ParseRiskTier parses a tier token case-insensitively. An empty string
// yields TierModerate. Unknown tokens are rejected.
func ParseRiskTier(s string) (RiskTier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TierModerate, nil
	}
	t := RiskTier(s)
	if !t.Valid() {
		return TierModerate, &ValidationError{
			Field:  "risk_tier",
			Value:  s,
			Reason: "must be one of conservative, moderate, aggressive",
		}
	}
	return t, nil
}

var (
	multConservativeCore  = decimal.RequireFromString("1.10")
	multConservativeOther = decimal.RequireFromString("0.95")
	multAggressive        = decimal.RequireFromString("1.15")
)

// Multiplier returns the health-alignment multiplier for a policy type.
// Unrecognised tiers are neutral.
func (t RiskTier) Multiplier(pt PolicyType) decimal.Decimal {
	switch t {
	case TierConservative:
		if pt == PolicyHealth || pt == PolicyLife {
			return multConservativeCore
		}
		return multConservativeOther
	case TierAggressive:
		return multAggressive
	default:
		return decimal.NewFromInt(1)
	}
}

// RiskLevel is the health risk derived from a profile. It is a separate
// vocabulary from RiskTier and is never converted into one.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// String returns the wire token for the level.
func (l RiskLevel) String() string {
	return string(l)
}

// Valid reports whether l is a known level.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// ParseRiskLevel parses a level token case-insensitively. An empty string
// yields an empty level, meaning "derive from profile".
func ParseRiskLevel(s string) (RiskLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	l := RiskLevel(s)
	if !l.Valid() {
		return "", &ValidationError{
			Field:  "risk_level",
			Value:  s,
			Reason: "must be one of low, medium, high",
		}
	}
	return l, nil
}

// Risk classification thresholds.
const (
	highRiskDiseases   = 4
	mediumRiskDiseases = 2
	highRiskBMI        = 30.0
	mediumRiskBMI      = 25.0
)

// ClassifyRiskLevel derives the health risk level from disease count and BMI.
func ClassifyRiskLevel(profile *UserProfile) RiskLevel {
	diseases := profile.DiseaseCount()
	bmi := profile.EffectiveBMI()

	switch {
	case diseases >= highRiskDiseases || bmi >= highRiskBMI:
		return RiskHigh
	case diseases >= mediumRiskDiseases || bmi >= mediumRiskBMI:
		return RiskMedium
	default:
		return RiskLow
	}
}
