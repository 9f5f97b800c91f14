// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CandidateBreakdown is the factor breakdown of one scored candidate.
type CandidateBreakdown struct {
	PolicyID   string     `json:"policy_id"`
	PolicyType PolicyType `json:"policy_type"`
	Breakdown  Breakdown  `json:"breakdown"`
}

// Diagnostics describes one ranking call. It is returned with every Result
// and pushed to registered observers.
type Diagnostics struct {
	RequestID  string               `json:"request_id"`
	FilterMode FilterMode           `json:"filter_mode"`
	RiskTier   RiskTier             `json:"risk_tier"`
	RiskLevel  RiskLevel            `json:"risk_level"`
	Filter     FilterReport         `json:"filter"`
	Scored     int                  `json:"scored"`
	Returned   int                  `json:"returned"`
	TopN       int                  `json:"top_n"`
	Breakdowns []CandidateBreakdown `json:"breakdowns,omitempty"`
	Duration   time.Duration        `json:"duration_ns"`
}

// Observer receives diagnostics after each successful ranking call.
// Implementations must be safe for concurrent use and must not retain or
// modify d.
type Observer interface {
	Observe(ctx context.Context, d *Diagnostics)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, d *Diagnostics)

// Observe implements Observer.
func (f ObserverFunc) Observe(ctx context.Context, d *Diagnostics) {
	f(ctx, d)
}

// LogObserver writes diagnostics to a zerolog logger at debug level.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates a LogObserver.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe implements Observer.
func (o *LogObserver) Observe(_ context.Context, d *Diagnostics) {
	stages := zerolog.Dict()
	for _, s := range d.Filter.Stages {
		stages.Int(s.Stage, s.Remaining)
	}

	o.logger.Debug().
		Str("request_id", d.RequestID).
		Str("filter_mode", string(d.FilterMode)).
		Str("risk_tier", string(d.RiskTier)).
		Str("risk_level", string(d.RiskLevel)).
		Int("initial", d.Filter.Initial).
		Dict("stages", stages).
		Int("eliminated", d.Filter.Eliminated).
		Int("scored", d.Scored).
		Int("returned", d.Returned).
		Dur("duration", d.Duration).
		Msg("ranking diagnostics")
}
