// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"math"

	"github.com/shopspring/decimal"
)

// Factor names used in weights, breakdowns and metrics labels.
const (
	FactorCoverage = "coverage"
	FactorPremium  = "premium"
	FactorHealth   = "health"
	FactorTypeFit  = "type_fit"
	FactorProvider = "provider"
)

// FactorNames lists the factors in scoring order.
var FactorNames = []string{FactorCoverage, FactorPremium, FactorHealth, FactorTypeFit, FactorProvider}

// ProviderRater supplies an external reputation score for an insurer.
// Ratings outside [0, 1] are clamped. ok is false for unknown providers.
type ProviderRater interface {
	Rating(providerID string) (rating float64, ok bool)
}

// ProviderRatings is a static ProviderRater backed by a map.
type ProviderRatings map[string]float64

// Rating implements ProviderRater.
func (r ProviderRatings) Rating(providerID string) (float64, bool) {
	v, ok := r[providerID]
	return v, ok
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	one = decimal.NewFromInt(1)

	// Coverage match: 0.30 x typeMatch + 0.70 x detail.
	coverageTypeShare   = dec("0.30")
	coverageDetailShare = dec("0.70")
	typeMatchPreferred  = dec("1.0")
	typeMatchNoPrefs    = dec("0.3")
	typeMatchOther      = dec("0.4")
	coverageDetailOther = dec("0.8")
	coverageDetail      = map[PolicyType]decimal.Decimal{
		PolicyHealth: dec("0.9"),
		PolicyLife:   dec("0.85"),
		PolicyHome:   dec("0.8"),
		PolicyTravel: dec("0.8"),
		PolicyAuto:   dec("0.75"),
	}

	// Premium affordability.
	incomeBudgetShare = dec("0.05")
	monthsPerYear     = decimal.NewFromInt(12)
	premiumNeutral    = dec("0.5")
	premiumFloor      = dec("0.05")
	premiumWithinBase = dec("0.60")
	premiumWithinGain = dec("0.40")
	premiumOverBase   = dec("0.40")
	premiumOverSlope  = dec("0.35")

	// Health and risk alignment.
	healthBase       = dec("0.90")
	healthBMIBonus   = dec("0.05")
	healthPerDisease = dec("0.03")
	lifeYoung        = dec("0.85")
	lifeOlder        = dec("0.75")
	autoAlignment    = dec("0.70")
	homeAlignment    = dec("0.75")
	travelYoung      = dec("0.80")
	travelOlder      = dec("0.60")
	unknownAlignment = dec("0.70")

	// Type fit.
	typeFitPreferred = dec("1.00")
	typeFitCondition = dec("0.95")
	typeFitNoPrefs   = dec("0.60")
	typeFitOther     = dec("0.40")
)

// Age and BMI cut-offs used by the health alignment factor.
const (
	lifeAgeCutoff   = 50
	travelAgeCutoff = 40
	healthBMICutoff = 25.0
)

// clampUnit limits v to [0, 1].
func clampUnit(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(one) {
		return one
	}
	return v
}

// CoverageMatch scores how well the candidate's coverage fits the request.
func CoverageMatch(c *PolicyCandidate, prefs *Preferences) decimal.Decimal {
	typeMatch := typeMatchOther
	switch {
	case !prefs.HasPreferredTypes():
		typeMatch = typeMatchNoPrefs
	case prefs.Prefers(c.PolicyType):
		typeMatch = typeMatchPreferred
	}

	detail, ok := requiredCoverageFraction(c, prefs.RequiredCoverages)
	if !ok {
		detail, ok = coverageDetail[c.PolicyType]
		if !ok {
			detail = coverageDetailOther
		}
	}

	v := coverageTypeShare.Mul(typeMatch).Add(coverageDetailShare.Mul(detail))
	return clampUnit(v)
}

// requiredCoverageFraction returns the share of distinct required features
// present in the candidate. ok is false when nothing usable was required.
func requiredCoverageFraction(c *PolicyCandidate, required []string) (decimal.Decimal, bool) {
	if len(required) == 0 {
		return decimal.Zero, false
	}
	seen := make(map[string]struct{}, len(required))
	present := 0
	for _, feature := range required {
		if feature == "" {
			continue
		}
		if _, dup := seen[feature]; dup {
			continue
		}
		seen[feature] = struct{}{}
		if c.HasCoverage(feature) {
			present++
		}
	}
	if len(seen) == 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(present)).Div(decimal.NewFromInt(int64(len(seen)))), true
}

// PremiumThreshold returns the monthly budget used for affordability.
// ok is false when neither a budget nor an income is known.
func PremiumThreshold(profile *UserProfile, prefs *Preferences) (threshold decimal.Decimal, ok bool) {
	if prefs.MaxPremium != nil {
		return *prefs.MaxPremium, true
	}
	if profile.Income.IsPositive() {
		return profile.Income.Mul(incomeBudgetShare).Div(monthsPerYear), true
	}
	return decimal.Zero, false
}

// PremiumAffordability scores the premium against the user's budget.
func PremiumAffordability(c *PolicyCandidate, profile *UserProfile, prefs *Preferences) decimal.Decimal {
	threshold, ok := PremiumThreshold(profile, prefs)
	if !ok {
		return premiumNeutral
	}
	if !threshold.IsPositive() {
		return premiumFloor
	}

	ratio := c.Premium.Div(threshold)
	if c.Premium.LessThanOrEqual(threshold) {
		return clampUnit(premiumWithinBase.Add(one.Sub(ratio).Mul(premiumWithinGain)))
	}

	over := c.Premium.Sub(threshold).Div(threshold)
	v := premiumOverBase.Sub(over.Mul(premiumOverSlope))
	return clampUnit(decimal.Max(premiumFloor, v))
}

// HealthAlignment scores how the policy type suits the user's health and
// age, scaled by the risk tier.
func HealthAlignment(c *PolicyCandidate, profile *UserProfile, tier RiskTier) decimal.Decimal {
	var base decimal.Decimal
	switch c.PolicyType {
	case PolicyHealth:
		base = healthBase
		if profile.EffectiveBMI() > healthBMICutoff {
			base = base.Add(healthBMIBonus)
		}
		base = base.Add(healthPerDisease.Mul(decimal.NewFromInt(int64(profile.DiseaseCount()))))
		base = decimal.Min(base, one)
	case PolicyLife:
		base = lifeOlder
		if profile.Age < lifeAgeCutoff {
			base = lifeYoung
		}
	case PolicyAuto:
		base = autoAlignment
	case PolicyHome:
		base = homeAlignment
	case PolicyTravel:
		base = travelOlder
		if profile.Age < travelAgeCutoff {
			base = travelYoung
		}
	default:
		base = unknownAlignment
	}

	return clampUnit(base.Mul(tier.Multiplier(c.PolicyType)))
}

// TypeFit scores the policy type against the stated preferences.
func TypeFit(c *PolicyCandidate, profile *UserProfile, prefs *Preferences) decimal.Decimal {
	switch {
	case prefs.Prefers(c.PolicyType):
		return typeFitPreferred
	case c.PolicyType == PolicyHealth && profile.DiseaseCount() > 0:
		return typeFitCondition
	case !prefs.HasPreferredTypes():
		return typeFitNoPrefs
	default:
		return typeFitOther
	}
}

// ProviderRating returns the provider reputation factor. A nil rater or an
// unknown provider yields fallback.
func ProviderRating(c *PolicyCandidate, rater ProviderRater, fallback decimal.Decimal) decimal.Decimal {
	if rater == nil {
		return clampUnit(fallback)
	}
	rating, ok := rater.Rating(c.ProviderID)
	if !ok || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return clampUnit(fallback)
	}
	return clampUnit(decimal.NewFromFloat(rating))
}
