// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestScorer_Scenarios(t *testing.T) {
	t.Parallel()

	s := NewScorer(DefaultConfig(), nil)

	tests := []struct {
		name    string
		c       PolicyCandidate
		profile UserProfile
		prefs   Preferences
		tier    RiskTier
		want    string
	}{
		{
			name:    "preferred health within budget",
			c:       candidate("h1", PolicyHealth, "300"),
			profile: UserProfile{Age: 30, BMI: 22},
			prefs:   Preferences{PreferredPolicyTypes: []PolicyType{PolicyHealth}, MaxPremium: AmountPtr("500")},
			tier:    TierModerate,
			want:    "88.30",
		},
		{
			name:    "no signals",
			c:       candidate("h2", PolicyHealth, "300"),
			profile: UserProfile{},
			prefs:   Preferences{},
			tier:    TierModerate,
			want:    "70.45",
		},
		{
			name:    "exact budget",
			c:       candidate("h3", PolicyHealth, "500"),
			profile: UserProfile{Age: 30, BMI: 22},
			prefs:   Preferences{PreferredPolicyTypes: []PolicyType{PolicyHealth}, MaxPremium: AmountPtr("500")},
			tier:    TierModerate,
			want:    "84.30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := s.Breakdown(&tt.c, &tt.profile, &tt.prefs, tt.tier)
			if b.Score.StringFixed(2) != tt.want {
				t.Errorf("Score = %s, want %s (breakdown %+v)", b.Score.StringFixed(2), tt.want, b)
			}
			if got := s.Score(&tt.c, &tt.profile, &tt.prefs, tt.tier); !got.Equal(b.Score) {
				t.Errorf("Score() = %s, Breakdown().Score = %s", got, b.Score)
			}
		})
	}
}

func TestScorer_ExactBudgetPremiumFactor(t *testing.T) {
	t.Parallel()

	s := NewScorer(nil, nil)
	c := candidate("p", PolicyLife, "1200.00")
	prefs := Preferences{MaxPremium: AmountPtr("1200.00")}
	profile := UserProfile{Age: 33}

	b := s.Breakdown(&c, &profile, &prefs, TierModerate)
	assertDecimal(t, "Breakdown.Premium", b.Premium, "0.60")
	assertDecimal(t, "Breakdown.Factor(premium)", b.Factor(FactorPremium), "0.60")
}

func TestScorer_Bounds(t *testing.T) {
	t.Parallel()

	s := NewScorer(nil, ProviderRatings{"top": 5, "bottom": -5})
	premiums := []string{"0", "1", "250", "499.99", "500", "5000", "-10"}
	tiers := []RiskTier{TierConservative, TierModerate, TierAggressive}
	profiles := []UserProfile{
		{},
		{Age: 70, BMI: 35, Diseases: []string{"a", "b", "c", "d", "e", "f"}},
		{Age: 12, Income: MustAmount("1000000")},
	}
	prefsList := []Preferences{
		{},
		{PreferredPolicyTypes: []PolicyType{PolicyHealth, PolicyLife}, MaxPremium: AmountPtr("0")},
		{MaxPremium: AmountPtr("500"), RequiredCoverages: []string{"opd"}},
	}
	hundred := decimal.NewFromInt(100)

	for _, pt := range append(PolicyTypes, PolicyType("unknown")) {
		for _, premium := range premiums {
			for _, provider := range []string{"top", "bottom", "none"} {
				c := candidate("c", pt, premium)
				c.ProviderID = provider
				for _, tier := range tiers {
					for i := range profiles {
						for j := range prefsList {
							b := s.Breakdown(&c, &profiles[i], &prefsList[j], tier)
							for _, name := range FactorNames {
								f := b.Factor(name)
								if f.IsNegative() || f.GreaterThan(one) {
									t.Fatalf("factor %s = %s out of [0,1] for %+v", name, f, c)
								}
							}
							if b.Score.IsNegative() || b.Score.GreaterThan(hundred) {
								t.Fatalf("score %s out of [0,100]", b.Score)
							}
							if !b.Score.Equal(b.Score.Round(ScorePlaces)) {
								t.Fatalf("score %s has more than two fractional digits", b.Score)
							}
						}
					}
				}
			}
		}
	}
}

func TestScorer_CustomWeights(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Weights = FactorWeights{Provider: 100}
	s := NewScorer(cfg, nil)

	c := candidate("c", PolicyAuto, "100")
	profile := UserProfile{}
	prefs := Preferences{}
	if got := s.Score(&c, &profile, &prefs, TierModerate); got.StringFixed(2) != "85.00" {
		t.Errorf("Score() = %s, want 85.00", got.StringFixed(2))
	}
}

func TestBreakdown_FactorUnknown(t *testing.T) {
	t.Parallel()

	b := Breakdown{Coverage: one}
	if !b.Factor("nope").IsZero() {
		t.Error("Factor(unknown) should be zero")
	}
	if !b.Factor(FactorCoverage).Equal(one) {
		t.Error("Factor(coverage) mismatch")
	}
}
