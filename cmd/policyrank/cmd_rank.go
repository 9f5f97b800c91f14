// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/harshini-2425/Insurance-project/internal/catalog"
	"github.com/harshini-2425/Insurance-project/internal/logging"
	"github.com/harshini-2425/Insurance-project/internal/metrics"
	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

type rankOptions struct {
	requestPath     string
	catalogPath     string
	top             int
	strict          bool
	metricsTextfile string
	timeout         time.Duration
	diagnostics     bool
	compact         bool
}

// rankOutput is the JSON document printed by the rank command.
type rankOutput struct {
	Items       []recommend.ScoredCandidate `json:"items"`
	Diagnostics *recommend.Diagnostics      `json:"diagnostics,omitempty"`
}

func newRankCommand(a *app) *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a policy catalog for one request",
		Long: `Rank loads a policy catalog and a ranking request (JSON or YAML, chosen by
file extension), scores every eligible policy and prints the top results as JSON.

An empty result is not an error: it means no policy survived filtering.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRank(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.requestPath, "request", "r", "", "Ranking request file (.json, .yaml)")
	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "Policy catalog file (.json, .yaml)")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "Number of results (overrides the request and config default)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Apply strict eligibility rules (age band, risk level, budget)")
	cmd.Flags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this .prom file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort ranking after this duration (0 = no limit)")
	cmd.Flags().BoolVar(&opts.diagnostics, "diagnostics", true, "Include filter and factor diagnostics in the output")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print compact JSON")
	_ = cmd.MarkFlagRequired("request")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (a *app) runRank(cmd *cobra.Command, opts *rankOptions) error {
	candidates, err := catalog.LoadCandidates(opts.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	req, err := catalog.LoadRequest(opts.requestPath)
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}

	req.Candidates = candidates
	if cmd.Flags().Changed("top") {
		top := opts.top
		req.TopN = &top
	}
	if opts.strict {
		req.FilterMode = recommend.FilterStrict
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	engine, err := initEngine(a.cfg, a.logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	ctx = logging.ContextWithLogger(ctx, a.logger)
	ctx = logging.ContextWithRequestID(ctx, req.RequestID)

	logging.Ctx(ctx).Info().
		Str("catalog", opts.catalogPath).
		Int("candidates", len(candidates)).
		Msg("ranking policies")

	res, err := engine.Rank(ctx, *req)
	if err != nil {
		metrics.RecordRankError(err)
		_ = a.writeMetrics(ctx, opts.metricsTextfile)
		return fmt.Errorf("rank: %w", err)
	}

	logging.Ctx(ctx).Info().
		Int("eligible", res.Diagnostics.Filter.Final).
		Int("returned", len(res.Items)).
		Dur("duration", res.Diagnostics.Duration).
		Msg("ranking complete")

	out := rankOutput{Items: res.Items}
	if opts.diagnostics {
		out.Diagnostics = &res.Diagnostics
	}
	if err := writeJSON(cmd.OutOrStdout(), out, !opts.compact); err != nil {
		return err
	}

	return a.writeMetrics(ctx, opts.metricsTextfile)
}

// writeMetrics dumps the Prometheus registry when metrics are enabled and a
// textfile path is configured. The flag overrides the config file.
func (a *app) writeMetrics(ctx context.Context, flagPath string) error {
	path := a.cfg.Metrics.TextfilePath
	if flagPath != "" {
		path = flagPath
	}
	if !a.cfg.Metrics.Enabled || path == "" {
		return nil
	}

	if err := metrics.WriteTextfile(path); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to write metrics textfile")
		return err
	}
	logging.Ctx(ctx).Debug().Str("path", path).Msg("metrics textfile written")
	return nil
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
