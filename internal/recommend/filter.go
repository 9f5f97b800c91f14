// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

// Filter stage names reported in FilterReport.Stages.
const (
	StageAge    = "age_band"
	StageRisk   = "risk_level"
	StageBudget = "budget"
	StageType   = "policy_type"
)

// Age bands for the strict filter. Age zero means unknown.
const (
	minorAgeLimit  = 15
	seniorAgeFloor = 45
)

var (
	minorTypes  = typeSet(PolicyHealth)
	adultTypes  = typeSet(PolicyHealth, PolicyAuto, PolicyHome, PolicyTravel)
	seniorTypes = typeSet(PolicyHealth, PolicyLife)
	highRisk    = typeSet(PolicyHealth)
)

func typeSet(types ...PolicyType) map[PolicyType]struct{} {
	set := make(map[PolicyType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}

// StageCount records how many candidates remained after a filter stage.
type StageCount struct {
	Stage     string `json:"stage"`
	Remaining int    `json:"remaining"`
}

// FilterReport describes what the eligibility filter did. It is diagnostic
// only and never affects ranking.
type FilterReport struct {
	Mode          FilterMode         `json:"mode"`
	Initial       int                `json:"initial"`
	Stages        []StageCount       `json:"stages"`
	Final         int                `json:"final"`
	Eliminated    int                `json:"eliminated"`
	ByType        map[PolicyType]int `json:"by_type"`
	SelectedTypes []PolicyType       `json:"selected_types,omitempty"`
}

// FilterCandidates applies the eligibility filter.
//
// In soft mode only the preferred-type constraint applies; with no preferred
// types the input slice itself is returned. Strict mode first removes
// candidates outside the user's age band, non-health policies for a high
// risk level, and policies over MaxPremium. The result is never nil and
// preserves input order.
func FilterCandidates(candidates []PolicyCandidate, profile *UserProfile, prefs *Preferences,
	level RiskLevel, mode FilterMode) ([]PolicyCandidate, FilterReport) {
	report := FilterReport{
		Mode:          mode,
		Initial:       len(candidates),
		Stages:        make([]StageCount, 0, 4),
		SelectedTypes: prefs.PreferredPolicyTypes,
	}

	survivors := candidates
	if survivors == nil {
		survivors = []PolicyCandidate{}
	}

	if mode == FilterStrict {
		if allowed := ageBand(profile.Age); allowed != nil {
			survivors = keep(survivors, func(c *PolicyCandidate) bool {
				_, ok := allowed[c.PolicyType]
				return ok
			})
			report.Stages = append(report.Stages, StageCount{Stage: StageAge, Remaining: len(survivors)})
		}

		if level == RiskHigh {
			survivors = keep(survivors, func(c *PolicyCandidate) bool {
				_, ok := highRisk[c.PolicyType]
				return ok
			})
			report.Stages = append(report.Stages, StageCount{Stage: StageRisk, Remaining: len(survivors)})
		}

		if prefs.MaxPremium != nil {
			limit := *prefs.MaxPremium
			survivors = keep(survivors, func(c *PolicyCandidate) bool {
				return c.Premium.LessThanOrEqual(limit)
			})
			report.Stages = append(report.Stages, StageCount{Stage: StageBudget, Remaining: len(survivors)})
		}
	}

	if preferred := prefs.preferredSet(); preferred != nil {
		survivors = keep(survivors, func(c *PolicyCandidate) bool {
			_, ok := preferred[c.PolicyType]
			return ok
		})
		report.Stages = append(report.Stages, StageCount{Stage: StageType, Remaining: len(survivors)})
	}

	report.Final = len(survivors)
	report.Eliminated = report.Initial - report.Final
	report.ByType = countByType(survivors)

	return survivors, report
}

// ageBand returns the policy types allowed for age, or nil when the age is
// unknown.
func ageBand(age int) map[PolicyType]struct{} {
	switch {
	case age <= 0:
		return nil
	case age < minorAgeLimit:
		return minorTypes
	case age <= seniorAgeFloor:
		return adultTypes
	default:
		return seniorTypes
	}
}

// keep returns the candidates for which pred holds, in input order, in a
// freshly allocated slice.
func keep(candidates []PolicyCandidate, pred func(*PolicyCandidate) bool) []PolicyCandidate {
	out := make([]PolicyCandidate, 0, len(candidates))
	for i := range candidates {
		if pred(&candidates[i]) {
			out = append(out, candidates[i])
		}
	}
	return out
}

func countByType(candidates []PolicyCandidate) map[PolicyType]int {
	counts := make(map[PolicyType]int)
	for i := range candidates {
		counts[candidates[i].PolicyType]++
	}
	return counts
}
