// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// Mapper converts file records to recommend types.
type Mapper struct{}

// NewMapper creates a new record mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// ToCandidates maps every record, failing on the first invalid one.
// Record order is preserved.
func (m *Mapper) ToCandidates(records []policyRecord) ([]recommend.PolicyCandidate, error) {
	out := make([]recommend.PolicyCandidate, 0, len(records))
	seen := make(map[string]int, len(records))

	for i := range records {
		c, err := m.ToCandidate(i, &records[i])
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[c.ID]; dup {
			return nil, &recommend.ValidationError{
				Field:  fmt.Sprintf("policies[%d].id", i),
				Value:  c.ID,
				Reason: fmt.Sprintf("duplicate of policies[%d]", prev),
			}
		}
		seen[c.ID] = i
		out = append(out, c)
	}
	return out, nil
}

// ToCandidate maps one record. idx is used in error field paths.
func (m *Mapper) ToCandidate(idx int, rec *policyRecord) (recommend.PolicyCandidate, error) {
	field := func(name string) string { return fmt.Sprintf("policies[%d].%s", idx, name) }

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return recommend.PolicyCandidate{}, &recommend.ValidationError{Field: field("id"), Reason: "id is required"}
	}

	premium, err := recommend.ParseAmount(field("premium"), string(rec.Premium))
	if err != nil {
		return recommend.PolicyCandidate{}, err
	}
	if premium.IsNegative() {
		return recommend.PolicyCandidate{}, &recommend.ValidationError{
			Field:  field("premium"),
			Value:  string(rec.Premium),
			Reason: "premium must be non-negative",
		}
	}

	c := recommend.PolicyCandidate{
		ID:         id,
		PolicyType: recommend.PolicyType(strings.TrimSpace(rec.PolicyType)),
		Title:      rec.Title,
		Premium:    premium,
		Coverage:   rec.Coverage,
		ProviderID: strings.TrimSpace(rec.ProviderID),
	}

	amount, err := optionalAmount(field("coverage_amount"), rec.CoverageAmount)
	if err != nil {
		return recommend.PolicyCandidate{}, err
	}
	c.CoverageAmount = amount

	return c, nil
}

// ToRequest maps a request document. Policy types, tiers and levels are
// passed through verbatim; recommend.Engine validates them.
func (m *Mapper) ToRequest(doc *requestFile) (*recommend.Request, error) {
	req := &recommend.Request{
		RequestID:  strings.TrimSpace(doc.RequestID),
		RiskTier:   recommend.RiskTier(strings.ToLower(strings.TrimSpace(doc.RiskTier))),
		RiskLevel:  recommend.RiskLevel(strings.ToLower(strings.TrimSpace(doc.RiskLevel))),
		TopN:       doc.TopN,
		FilterMode: recommend.FilterMode(strings.ToLower(strings.TrimSpace(doc.FilterMode))),
	}

	prefs, err := m.toPreferences(&doc.Preferences)
	if err != nil {
		return nil, err
	}
	req.Preferences = prefs

	profile, err := m.toProfile(&doc.Profile)
	if err != nil {
		return nil, err
	}
	req.Profile = profile

	return req, nil
}

func (m *Mapper) toPreferences(rec *preferencesRecord) (recommend.Preferences, error) {
	prefs := recommend.Preferences{
		RequiredCoverages: rec.RequiredCoverages,
	}
	for _, t := range rec.PreferredPolicyTypes {
		prefs.PreferredPolicyTypes = append(prefs.PreferredPolicyTypes, recommend.PolicyType(strings.TrimSpace(t)))
	}

	maxPremium, err := optionalAmount("preferences.max_premium", rec.MaxPremium)
	if err != nil {
		return recommend.Preferences{}, err
	}
	prefs.MaxPremium = maxPremium

	return prefs, nil
}

func (m *Mapper) toProfile(rec *profileRecord) (recommend.UserProfile, error) {
	profile := recommend.UserProfile{
		Age:           rec.Age,
		BMI:           rec.BMI,
		Diseases:      rec.Diseases,
		MaritalStatus: rec.MaritalStatus,
		HasKids:       rec.HasKids,
		Height:        rec.Height,
		Weight:        rec.Weight,
	}

	// An absent income is unknown, not an error.
	if strings.TrimSpace(string(rec.Income)) != "" {
		income, err := recommend.ParseAmount("profile.income", string(rec.Income))
		if err != nil {
			return recommend.UserProfile{}, err
		}
		profile.Income = income
	}

	return profile, nil
}

// optionalAmount parses raw when present. Nil and blank both mean absent.
func optionalAmount(field string, raw *rawAmount) (*decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(string(*raw)) == "" {
		return nil, nil //nolint:nilnil // absent amount is not an error
	}
	d, err := recommend.ParseAmount(field, string(*raw))
	if err != nil {
		return nil, err
	}
	return &d, nil
}
