// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// PolicyType classifies an insurance product.
type PolicyType string

const (
	// PolicyHealth covers medical expenses.
	PolicyHealth PolicyType = "health"
	// PolicyLife pays out on death or maturity.
	PolicyLife PolicyType = "life"
	// PolicyAuto covers vehicles.
	PolicyAuto PolicyType = "auto"
	// PolicyHome covers dwellings and contents.
	PolicyHome PolicyType = "home"
	// PolicyTravel covers trips.
	PolicyTravel PolicyType = "travel"
)

// PolicyTypes lists every known policy type in canonical order.
var PolicyTypes = []PolicyType{PolicyHealth, PolicyLife, PolicyAuto, PolicyHome, PolicyTravel}

// String returns the wire token for the policy type.
func (t PolicyType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known policy types.
func (t PolicyType) Valid() bool {
	switch t {
	case PolicyHealth, PolicyLife, PolicyAuto, PolicyHome, PolicyTravel:
		return true
	default:
		return false
	}
}

// ParsePolicyType parses an exact lowercase policy type token.
func ParsePolicyType(s string) (PolicyType, error) {
	t := PolicyType(s)
	if !t.Valid() {
		return "", &ValidationError{
			Field:  "policy_type",
			Value:  s,
			Reason: "must be one of health, life, auto, home, travel",
		}
	}
	return t, nil
}

// PolicyCandidate is an insurance product considered for recommendation.
// Candidates are treated as immutable for the duration of a ranking call.
type PolicyCandidate struct {
	// ID is an opaque identifier.
	ID string `json:"id"`

	// PolicyType is the product category. Unknown types are tolerated and
	// scored with neutral defaults.
	PolicyType PolicyType `json:"policy_type"`

	// Title is the display name.
	Title string `json:"title"`

	// Premium is the monthly premium with two fractional digits.
	Premium decimal.Decimal `json:"premium"`

	// Coverage maps a feature name to an arbitrary descriptor. A feature is
	// "present" when its key exists and the descriptor is truthy.
	Coverage map[string]any `json:"coverage,omitempty"`

	// CoverageAmount is the sum insured, when known.
	CoverageAmount *decimal.Decimal `json:"coverage_amount,omitempty"`

	// ProviderID identifies the insurer.
	ProviderID string `json:"provider_id,omitempty"`
}

// MarshalJSON renders money with exactly two fractional digits.
//
//nolint:gocritic // value receiver keeps candidates marshalable by value
func (p PolicyCandidate) MarshalJSON() ([]byte, error) {
	type alias PolicyCandidate
	out := struct {
		alias
		Premium        string  `json:"premium"`
		CoverageAmount *string `json:"coverage_amount,omitempty"`
	}{
		alias:   alias(p),
		Premium: p.Premium.StringFixed(MoneyPlaces),
	}
	if p.CoverageAmount != nil {
		s := p.CoverageAmount.StringFixed(MoneyPlaces)
		out.CoverageAmount = &s
	}
	return json.Marshal(out)
}

// HasCoverage reports whether feature is present in the candidate's coverage
// map with a truthy descriptor.
func (p *PolicyCandidate) HasCoverage(feature string) bool {
	v, ok := p.Coverage[feature]
	if !ok {
		return false
	}
	return truthy(v)
}

// truthy mirrors the loose truthiness of decoded JSON/YAML values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	case decimal.Decimal:
		return !x.IsZero()
	case map[string]any:
		return len(x) > 0
	case []any:
		return len(x) > 0
	default:
		return true
	}
}

// UserProfile is the subset of the user's data that influences scoring.
type UserProfile struct {
	// Age in years. Zero means unknown.
	Age int `json:"age" validate:"gte=0"`

	// Income is the annual income. Zero means unknown.
	Income decimal.Decimal `json:"income" validate:"gte=0"`

	// BMI is the body mass index. Zero means unknown; EffectiveBMI derives it
	// from Height and Weight when possible.
	BMI float64 `json:"bmi" validate:"gte=0"`

	// Diseases is a set of condition codes. Duplicates are ignored.
	Diseases []string `json:"diseases,omitempty"`

	MaritalStatus string `json:"marital_status,omitempty"`
	HasKids       bool   `json:"has_kids"`

	// Height in centimetres, optional.
	Height float64 `json:"height,omitempty" validate:"gte=0"`

	// Weight in kilograms, optional.
	Weight float64 `json:"weight,omitempty" validate:"gte=0"`
}

// DiseaseCount returns the number of distinct non-empty disease codes.
func (u *UserProfile) DiseaseCount() int {
	if len(u.Diseases) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(u.Diseases))
	for _, d := range u.Diseases {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		seen[d] = struct{}{}
	}
	return len(seen)
}

// EffectiveBMI returns BMI when set, otherwise weight / (height/100)^2
// rounded to one decimal. Returns 0 when neither is available.
func (u *UserProfile) EffectiveBMI() float64 {
	if u.BMI > 0 {
		return u.BMI
	}
	if u.Height <= 0 || u.Weight <= 0 {
		return 0
	}
	m := u.Height / 100
	return math.Round(u.Weight/(m*m)*10) / 10
}

// Preferences captures what the user asked for.
type Preferences struct {
	// PreferredPolicyTypes restricts the output when non-empty.
	PreferredPolicyTypes []PolicyType `json:"preferred_policy_types,omitempty" validate:"dive,policytype"`

	// MaxPremium is the monthly budget. Nil means no budget was given.
	MaxPremium *decimal.Decimal `json:"max_premium,omitempty"`

	// RequiredCoverages lists coverage features the user needs.
	RequiredCoverages []string `json:"required_coverages,omitempty"`
}

// HasPreferredTypes reports whether the user restricted policy types.
func (p *Preferences) HasPreferredTypes() bool {
	return len(p.PreferredPolicyTypes) > 0
}

// Prefers reports whether t is among the preferred types.
func (p *Preferences) Prefers(t PolicyType) bool {
	for _, pt := range p.PreferredPolicyTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// preferredSet returns the preferred types as a set. Nil when unrestricted.
func (p *Preferences) preferredSet() map[PolicyType]struct{} {
	if !p.HasPreferredTypes() {
		return nil
	}
	set := make(map[PolicyType]struct{}, len(p.PreferredPolicyTypes))
	for _, t := range p.PreferredPolicyTypes {
		set[t] = struct{}{}
	}
	return set
}

// ScoredCandidate is one ranked output entry.
type ScoredCandidate struct {
	Policy PolicyCandidate `json:"policy"`

	// Score is in [0, 100] with two fractional digits.
	Score decimal.Decimal `json:"score"`

	Reason string `json:"reason"`
}

// ScoreString renders the score with exactly two fractional digits.
func (s *ScoredCandidate) ScoreString() string {
	return s.Score.StringFixed(2)
}

// MarshalJSON renders the score as a fixed two-digit string.
//
//nolint:gocritic // value receiver keeps results marshalable by value
func (s ScoredCandidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Policy PolicyCandidate `json:"policy"`
		Score  string          `json:"score"`
		Reason string          `json:"reason"`
	}{
		Policy: s.Policy,
		Score:  s.Score.StringFixed(2),
		Reason: s.Reason,
	})
}
