// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/harshini-2425/Insurance-project/internal/logging"
	"github.com/harshini-2425/Insurance-project/internal/validation"
)

// Request is one ranking call.
type Request struct {
	// RequestID correlates logs and diagnostics. Generated when empty.
	RequestID string `json:"request_id,omitempty"`

	// Candidates is the catalog to rank. It is never modified.
	Candidates []PolicyCandidate `json:"candidates"`

	Preferences Preferences `json:"preferences"`

	// RiskTier defaults to moderate when empty.
	RiskTier RiskTier `json:"risk_tier,omitempty" validate:"omitempty,risktier"`

	// RiskLevel is derived from Profile when empty. Only strict filtering
	// reads it.
	RiskLevel RiskLevel `json:"risk_level,omitempty" validate:"omitempty,risklevel"`

	Profile UserProfile `json:"profile"`

	// TopN is the number of results wanted. Nil uses the configured default.
	TopN *int `json:"top_n,omitempty" validate:"omitempty,gte=0"`

	// FilterMode overrides the configured filter mode when set.
	FilterMode FilterMode `json:"filter_mode,omitempty" validate:"omitempty,oneof=soft strict"`
}

// Result is the outcome of a ranking call.
type Result struct {
	Items       []ScoredCandidate `json:"items"`
	Diagnostics Diagnostics       `json:"diagnostics"`
}

// Stats are cumulative engine counters.
type Stats struct {
	Requests      int64 `json:"requests"`
	Errors        int64 `json:"errors"`
	EmptyResults  int64 `json:"empty_results"`
	ScoredTotal   int64 `json:"scored_total"`
	ReturnedTotal int64 `json:"returned_total"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithProviderRater sets the source of provider ratings.
func WithProviderRater(r ProviderRater) Option {
	return func(e *Engine) {
		e.rater = r
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// Engine runs the filter, score, rank and explain pipeline.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	rater   ProviderRater
	scorer  *Scorer
	reasons *ReasonGenerator
	workers int

	observers []Observer
	obsMu     sync.RWMutex

	requestCount  atomic.Int64
	errorCount    atomic.Int64
	emptyCount    atomic.Int64
	scoredCount   atomic.Int64
	returnedCount atomic.Int64
}

// NewEngine creates a new recommendation engine. A nil cfg uses
// DefaultConfig. The config is cloned, so later changes by the caller have
// no effect.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	workers := cfg.Limits.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		reasons: NewReasonGenerator(cfg.Reason),
		workers: workers,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scorer = NewScorer(cfg, e.rater)

	return e, nil
}

// RegisterObserver adds an observer to receive diagnostics.
func (e *Engine) RegisterObserver(o Observer) {
	if o == nil {
		return
	}
	e.obsMu.Lock()
	defer e.obsMu.Unlock()

	e.observers = append(e.observers, o)
	e.logger.Debug().
		Str("observer", fmt.Sprintf("%T", o)).
		Msg("registered observer")
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Scorer returns the engine's scorer.
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// Stats returns cumulative counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:      e.requestCount.Load(),
		Errors:        e.errorCount.Load(),
		EmptyResults:  e.emptyCount.Load(),
		ScoredTotal:   e.scoredCount.Load(),
		ReturnedTotal: e.returnedCount.Load(),
	}
}

// Rank filters, scores, ranks and explains the request's candidates.
//
// The only error conditions are an invalid request (a *ValidationError) and
// cancellation of ctx while scoring. An empty catalog or a filter that
// removes everything yields an empty result, not an error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Rank(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(ctx, req)
	if err := validateRequest(&req); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	logger := e.createRequestLogger(req)
	logger.Debug().Int("candidates", len(req.Candidates)).Msg("processing ranking request")

	level := req.RiskLevel
	if level == "" {
		level = ClassifyRiskLevel(&req.Profile)
	}

	survivors, report := FilterCandidates(req.Candidates, &req.Profile, &req.Preferences, level, req.FilterMode)

	breakdowns, err := e.scoreCandidates(ctx, req, survivors)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	scored := make([]ScoredCandidate, len(survivors))
	for i := range survivors {
		scored[i] = ScoredCandidate{Policy: survivors[i], Score: breakdowns[i].Score}
	}

	topN := *req.TopN
	ranked := Rank(scored, topN)
	for i := range ranked {
		ranked[i].Reason = e.reasons.Explain(&ranked[i].Policy, ranked[i].Score, &req.Profile, &req.Preferences)
	}

	res := &Result{
		Items: ranked,
		Diagnostics: Diagnostics{
			RequestID:  req.RequestID,
			FilterMode: req.FilterMode,
			RiskTier:   req.RiskTier,
			RiskLevel:  level,
			Filter:     report,
			Scored:     len(scored),
			Returned:   len(ranked),
			TopN:       topN,
			Breakdowns: buildBreakdowns(survivors, breakdowns),
			Duration:   time.Since(start),
		},
	}

	e.scoredCount.Add(int64(len(scored)))
	e.returnedCount.Add(int64(len(ranked)))
	if len(ranked) == 0 {
		e.emptyCount.Add(1)
	}

	e.notify(ctx, &res.Diagnostics)

	logger.Debug().
		Int("eligible", report.Final).
		Int("returned", len(ranked)).
		Dur("duration", res.Diagnostics.Duration).
		Msg("ranking complete")

	return res, nil
}

// prepareRequest applies defaults. The request ID comes from the request,
// then from ctx, and is generated otherwise.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) Request {
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	if req.RiskTier == "" {
		req.RiskTier = TierModerate
	}
	if req.FilterMode == "" {
		req.FilterMode = e.config.Filter.Mode
	}

	topN := e.config.Limits.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	if limit := e.config.Limits.MaxTopN; limit > 0 && topN > limit {
		topN = limit
	}
	req.TopN = &topN

	return req
}

// validateRequest converts struct validation failures into a *ValidationError.
func validateRequest(req *Request) error {
	verr := validation.ValidateStruct(req)
	if verr == nil {
		return nil
	}

	ve := &ValidationError{
		Field:  "request",
		Reason: verr.Error(),
		Err:    verr,
	}
	if first := verr.First(); first != nil {
		ve.Field = first.Field()
		if v := first.Value(); v != nil {
			ve.Value = fmt.Sprint(v)
		}
	}
	return ve
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("filter_mode", string(req.FilterMode)).
		Str("risk_tier", string(req.RiskTier)).
		Logger()
}

// scoreCandidates scores every candidate on a bounded worker pool. Results
// are stored by input index so order never depends on scheduling.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) scoreCandidates(ctx context.Context, req Request, candidates []PolicyCandidate) ([]Breakdown, error) {
	out := make([]Breakdown, len(candidates))
	if len(candidates) == 0 {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.scorer.Breakdown(&candidates[i], &req.Profile, &req.Preferences, req.RiskTier)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}
	return out, nil
}

func buildBreakdowns(candidates []PolicyCandidate, breakdowns []Breakdown) []CandidateBreakdown {
	out := make([]CandidateBreakdown, len(candidates))
	for i := range candidates {
		out[i] = CandidateBreakdown{
			PolicyID:   candidates[i].ID,
			PolicyType: candidates[i].PolicyType,
			Breakdown:  breakdowns[i],
		}
	}
	return out
}

// notify pushes diagnostics to every observer. A panicking observer is
// logged and skipped.
func (e *Engine) notify(ctx context.Context, d *Diagnostics) {
	e.obsMu.RLock()
	observers := e.observers
	e.obsMu.RUnlock()

	for _, o := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error().
						Str("observer", fmt.Sprintf("%T", o)).
						Interface("panic", r).
						Msg("observer panicked")
				}
			}()
			o.Observe(ctx, d)
		}()
	}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// RankPolicies ranks candidates with the default configuration and returns
// up to topN results. It never cancels and logs nothing.
func RankPolicies(candidates []PolicyCandidate, prefs Preferences, tier RiskTier,
	profile UserProfile, topN int) ([]ScoredCandidate, error) {
	defaultEngineOnce.Do(func() {
		cfg := DefaultConfig()
		cfg.Limits.MaxTopN = 0
		// DefaultConfig always validates.
		defaultEngine, _ = NewEngine(cfg, zerolog.Nop())
	})

	res, err := defaultEngine.Rank(context.Background(), Request{
		Candidates:  candidates,
		Preferences: prefs,
		RiskTier:    tier,
		Profile:     profile,
		TopN:        &topN,
	})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
