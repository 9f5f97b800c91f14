// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package metrics

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// Filter stage labels besides the recommend.Stage* names.
const (
	StageInitial = "initial"
	StageFinal   = "final"
)

// Error kinds for RankErrorsTotal.
const (
	ErrorKindValidation = "validation"
	ErrorKindCanceled   = "canceled"
	ErrorKindTimeout    = "timeout"
	ErrorKindOther      = "other"
)

var (
	// Ranking Metrics
	RankRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policyrank_rank_requests_total",
			Help: "Total number of successful ranking requests",
		},
		[]string{"filter_mode", "risk_tier"},
	)

	RankErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policyrank_rank_errors_total",
			Help: "Total number of failed ranking requests",
		},
		[]string{"kind"}, // "validation", "canceled", "timeout", "other"
	)

	RankEmptyResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policyrank_rank_empty_results_total",
			Help: "Total number of ranking requests that returned no policies",
		},
		[]string{"filter_mode"},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "policyrank_rank_duration_seconds",
			Help:    "Ranking duration in seconds, filter through reasons",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		},
	)

	RankReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "policyrank_rank_returned_items",
			Help:    "Number of policies returned per ranking request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50, 100},
		},
	)

	// Filter Metrics
	FilterCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policyrank_filter_candidates",
			Help:    "Candidates remaining after each eligibility stage",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 .. 2048
		},
		[]string{"stage"}, // "initial", "age_band", "risk_level", "budget", "policy_type", "final"
	)

	FilterEliminatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policyrank_filter_eliminated_total",
			Help: "Total number of candidates removed by eligibility filtering",
		},
		[]string{"filter_mode"},
	)

	// Scoring Metrics
	ScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "policyrank_score",
			Help:    "Distribution of final scores (0-100) across scored candidates",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	FactorDistribution = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "policyrank_factor_value",
			Help:    "Distribution of individual factor values (0-1)",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"factor"}, // "coverage", "premium", "health", "type_fit", "provider"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "policyrank_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Observer records ranking diagnostics as Prometheus metrics.
// It implements recommend.Observer.
type Observer struct{}

// NewObserver creates an Observer.
func NewObserver() *Observer {
	return &Observer{}
}

var _ recommend.Observer = (*Observer)(nil)

// Observe implements recommend.Observer.
func (o *Observer) Observe(_ context.Context, d *recommend.Diagnostics) {
	RankRequestsTotal.WithLabelValues(string(d.FilterMode), string(d.RiskTier)).Inc()
	RankDuration.Observe(d.Duration.Seconds())
	RankReturned.Observe(float64(d.Returned))
	if d.Returned == 0 {
		RankEmptyResults.WithLabelValues(string(d.FilterMode)).Inc()
	}

	FilterCandidates.WithLabelValues(StageInitial).Observe(float64(d.Filter.Initial))
	for _, s := range d.Filter.Stages {
		FilterCandidates.WithLabelValues(s.Stage).Observe(float64(s.Remaining))
	}
	FilterCandidates.WithLabelValues(StageFinal).Observe(float64(d.Filter.Final))
	if d.Filter.Eliminated > 0 {
		FilterEliminatedTotal.WithLabelValues(string(d.FilterMode)).Add(float64(d.Filter.Eliminated))
	}

	for i := range d.Breakdowns {
		b := &d.Breakdowns[i].Breakdown
		ScoreDistribution.Observe(b.Score.InexactFloat64())
		for _, name := range recommend.FactorNames {
			FactorDistribution.WithLabelValues(name).Observe(b.Factor(name).InexactFloat64())
		}
	}
}

// RecordRankError records a failed ranking request by error kind.
func RecordRankError(err error) {
	if err == nil {
		return
	}
	RankErrorsTotal.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind classifies a ranking error for the kind label.
func ErrorKind(err error) string {
	switch {
	case recommend.IsValidationError(err):
		return ErrorKindValidation
	case errors.Is(err, context.Canceled):
		return ErrorKindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	default:
		return ErrorKindOther
	}
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for the node-exporter textfile collector.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom is WriteTextfile for an explicit gatherer.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
