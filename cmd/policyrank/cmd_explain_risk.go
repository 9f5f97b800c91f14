// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harshini-2425/Insurance-project/internal/catalog"
	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// riskReport is what explain-risk prints.
type riskReport struct {
	RiskLevel    recommend.RiskLevel    `json:"risk_level"`
	Derived      bool                   `json:"derived"`
	EffectiveBMI float64                `json:"effective_bmi"`
	DiseaseCount int                    `json:"disease_count"`
	RiskTier     recommend.RiskTier     `json:"risk_tier"`
	Multipliers  map[string]string      `json:"multipliers"`
	StrictTypes  []recommend.PolicyType `json:"strict_eligible_types,omitempty"`
}

func newExplainRiskCommand(a *app) *cobra.Command {
	var (
		requestPath string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "explain-risk",
		Short: "Show the risk level and tier multipliers derived from a request",
		Long: `Explain-risk reads a ranking request and prints the health risk level used
by strict filtering, the effective BMI and disease count behind it, and the
health-alignment multiplier the risk tier applies to each policy type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be text or json", format)
			}

			req, err := catalog.LoadRequest(requestPath)
			if err != nil {
				return fmt.Errorf("load request: %w", err)
			}

			report, err := buildRiskReport(req)
			if err != nil {
				return err
			}
			a.logger.Debug().
				Str("risk_level", string(report.RiskLevel)).
				Bool("derived", report.Derived).
				Msg("risk explained")

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), report, true)
			}
			printRiskReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "Ranking request file (.json, .yaml)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("request")

	return cmd
}

func buildRiskReport(req *recommend.Request) (*riskReport, error) {
	tier, err := recommend.ParseRiskTier(string(req.RiskTier))
	if err != nil {
		return nil, err
	}
	level, err := recommend.ParseRiskLevel(string(req.RiskLevel))
	if err != nil {
		return nil, err
	}

	report := &riskReport{
		RiskLevel:    level,
		EffectiveBMI: req.Profile.EffectiveBMI(),
		DiseaseCount: req.Profile.DiseaseCount(),
		RiskTier:     tier,
		Multipliers:  make(map[string]string, len(recommend.PolicyTypes)),
	}
	if level == "" {
		report.RiskLevel = recommend.ClassifyRiskLevel(&req.Profile)
		report.Derived = true
	}
	for _, pt := range recommend.PolicyTypes {
		report.Multipliers[string(pt)] = tier.Multiplier(pt).StringFixed(2)
	}
	report.StrictTypes = strictEligibleTypes(&req.Profile, report.RiskLevel)

	return report, nil
}

// strictEligibleTypes runs one probe candidate per policy type through the
// strict filter and reports which types survive the age and risk stages.
func strictEligibleTypes(profile *recommend.UserProfile, level recommend.RiskLevel) []recommend.PolicyType {
	probes := make([]recommend.PolicyCandidate, 0, len(recommend.PolicyTypes))
	for _, pt := range recommend.PolicyTypes {
		probes = append(probes, recommend.PolicyCandidate{ID: string(pt), PolicyType: pt})
	}

	survivors, _ := recommend.FilterCandidates(probes, profile, &recommend.Preferences{}, level, recommend.FilterStrict)
	out := make([]recommend.PolicyType, 0, len(survivors))
	for i := range survivors {
		out = append(out, survivors[i].PolicyType)
	}
	return out
}

func printRiskReport(w io.Writer, r *riskReport) {
	source := "explicit"
	if r.Derived {
		source = "derived"
	}

	fmt.Fprintf(w, "risk level:     %s (%s)\n", r.RiskLevel, source)
	fmt.Fprintf(w, "effective BMI:  %.1f\n", r.EffectiveBMI)
	fmt.Fprintf(w, "disease count:  %d\n", r.DiseaseCount)
	fmt.Fprintf(w, "risk tier:      %s\n", r.RiskTier)

	parts := make([]string, 0, len(recommend.PolicyTypes))
	for _, pt := range recommend.PolicyTypes {
		parts = append(parts, fmt.Sprintf("%s=%s", pt, r.Multipliers[string(pt)]))
	}
	fmt.Fprintf(w, "multipliers:    %s\n", strings.Join(parts, " "))

	types := make([]string, 0, len(r.StrictTypes))
	for _, pt := range r.StrictTypes {
		types = append(types, string(pt))
	}
	fmt.Fprintf(w, "strict types:   %s\n", strings.Join(types, ", "))
}
