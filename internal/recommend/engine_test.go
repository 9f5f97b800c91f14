// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/harshini-2425/Insurance-project/internal/logging"
)

// testLogger returns a zerolog logger for testing.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestEngine(t *testing.T, cfg *Config, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, testLogger(), opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func intPtr(v int) *int { return &v }

// --- Test: NewEngine ---

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			cfg:     nil,
			wantErr: false,
		},
		{
			name:    "valid default config",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name: "invalid config returns error",
			cfg: func() *Config {
				c := DefaultConfig()
				c.Weights.Coverage = -1
				return c
			}(),
			wantErr: true,
		},
		{
			name: "explicit workers",
			cfg: func() *Config {
				c := DefaultConfig()
				c.Limits.Workers = 3
				return c
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(tt.cfg, testLogger())

			if tt.wantErr {
				if err == nil {
					t.Error("NewEngine() = nil error, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewEngine() error = %v, want nil", err)
			}
			if engine.config == nil {
				t.Error("engine.config = nil, want non-nil")
			}
			if engine.scorer == nil || engine.reasons == nil {
				t.Error("engine scorer/reasons not initialized")
			}
			if engine.workers < 1 {
				t.Errorf("engine.workers = %d, want >= 1", engine.workers)
			}
		})
	}
}

func TestNewEngine_ClonesConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	e := newTestEngine(t, cfg)
	cfg.Limits.DefaultTopN = 1

	if e.Config().Limits.DefaultTopN != 5 {
		t.Error("engine config changed after caller mutated its copy")
	}
}

// --- Test: Rank scenarios ---

func TestRankPolicies_PreferredHealthWithinBudget(t *testing.T) {
	t.Parallel()

	got, err := RankPolicies(
		[]PolicyCandidate{candidate("h1", PolicyHealth, "300")},
		Preferences{PreferredPolicyTypes: []PolicyType{PolicyHealth}, MaxPremium: AmountPtr("500")},
		TierModerate,
		UserProfile{Age: 30, BMI: 22},
		5,
	)
	if err != nil {
		t.Fatalf("RankPolicies() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("RankPolicies() returned %d items, want 1", len(got))
	}
	if got[0].ScoreString() != "88.30" {
		t.Errorf("score = %s, want 88.30", got[0].ScoreString())
	}
	want := "Matches your preferred health coverage • Within budget (₹300)"
	if got[0].Reason != want {
		t.Errorf("reason = %q, want %q", got[0].Reason, want)
	}
}

func TestRankPolicies_EmptyCatalog(t *testing.T) {
	t.Parallel()

	got, err := RankPolicies(nil, Preferences{}, TierModerate, UserProfile{}, 5)
	if err != nil {
		t.Fatalf("RankPolicies() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("RankPolicies() = %v, want empty non-nil slice", got)
	}
}

func TestRankPolicies_TopNZero(t *testing.T) {
	t.Parallel()

	got, err := RankPolicies(mixedCatalog(), Preferences{}, TierModerate, UserProfile{Age: 30}, 0)
	if err != nil {
		t.Fatalf("RankPolicies() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("RankPolicies(topN=0) returned %d items", len(got))
	}
}

func TestRankPolicies_TopNLargerThanDefaultCap(t *testing.T) {
	t.Parallel()

	catalog := make([]PolicyCandidate, 120)
	for i := range catalog {
		catalog[i] = candidate(fmt.Sprintf("p%03d", i), PolicyHealth, "100")
	}
	got, err := RankPolicies(catalog, Preferences{}, TierModerate, UserProfile{}, 500)
	if err != nil {
		t.Fatalf("RankPolicies() error = %v", err)
	}
	if len(got) != len(catalog) {
		t.Errorf("RankPolicies() returned %d items, want %d", len(got), len(catalog))
	}
}

func TestEngine_Rank_PreferredTypesNeverBypassed(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	catalog := mixedCatalog()
	// A health policy with a perfect profile would outscore life on every
	// soft factor; it must still be excluded.
	res, err := e.Rank(context.Background(), Request{
		Candidates:  catalog,
		Preferences: prefsFor(PolicyLife),
		RiskTier:    TierConservative,
		Profile:     UserProfile{Age: 30, Diseases: []string{"asthma"}},
		TopN:        intPtr(10),
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("Rank() returned %d items, want 1", len(res.Items))
	}
	for _, item := range res.Items {
		if item.Policy.PolicyType != PolicyLife {
			t.Errorf("Rank() returned %s policy %s", item.Policy.PolicyType, item.Policy.ID)
		}
	}
}

func TestEngine_Rank_StableTies(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	catalog := []PolicyCandidate{
		candidate("first", PolicyAuto, "100"),
		candidate("second", PolicyAuto, "100"),
		candidate("third", PolicyAuto, "100"),
		candidate("best", PolicyHealth, "100"),
		candidate("fourth", PolicyAuto, "100"),
	}

	res, err := e.Rank(context.Background(), Request{
		Candidates: catalog,
		Profile:    UserProfile{Age: 30},
		TopN:       intPtr(5),
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	want := []string{"best", "first", "second", "third", "fourth"}
	if got := scoredIDs(res.Items); !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() order = %v, want %v", got, want)
	}
}

func TestEngine_Rank_Idempotent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	req := Request{
		RequestID:   "fixed",
		Candidates:  mixedCatalog(),
		Preferences: Preferences{MaxPremium: AmountPtr("500")},
		RiskTier:    TierAggressive,
		Profile:     UserProfile{Age: 40, Income: MustAmount("900000"), BMI: 27},
	}

	first, err := e.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	second, err := e.Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	a, _ := json.Marshal(first.Items)
	b, _ := json.Marshal(second.Items)
	if string(a) != string(b) {
		t.Errorf("Rank() not idempotent:\n%s\n%s", a, b)
	}
}

func TestEngine_Rank_WorkerCountDoesNotChangeOutput(t *testing.T) {
	t.Parallel()

	catalog := make([]PolicyCandidate, 0, 60)
	for i := 0; i < 60; i++ {
		pt := PolicyTypes[i%len(PolicyTypes)]
		catalog = append(catalog, candidate(fmt.Sprintf("p%02d", i), pt, fmt.Sprintf("%d", 100+(i%7)*50)))
	}
	req := Request{
		Candidates:  catalog,
		Preferences: Preferences{MaxPremium: AmountPtr("300")},
		Profile:     UserProfile{Age: 35},
		TopN:        intPtr(60),
	}

	var outputs [][]string
	for _, workers := range []int{1, 2, 16} {
		cfg := DefaultConfig()
		cfg.Limits.Workers = workers
		res, err := newTestEngine(t, cfg).Rank(context.Background(), req)
		if err != nil {
			t.Fatalf("Rank() error = %v", err)
		}
		outputs = append(outputs, scoredIDs(res.Items))
	}

	for i := 1; i < len(outputs); i++ {
		if !reflect.DeepEqual(outputs[0], outputs[i]) {
			t.Errorf("worker count changed ranking:\n%v\n%v", outputs[0], outputs[i])
		}
	}
}

func TestEngine_Rank_ExactBudgetDiagnostics(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	res, err := e.Rank(context.Background(), Request{
		Candidates:  []PolicyCandidate{candidate("edge", PolicyHome, "750.00")},
		Preferences: Preferences{MaxPremium: AmountPtr("750.00")},
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(res.Diagnostics.Breakdowns) != 1 {
		t.Fatalf("Breakdowns = %d, want 1", len(res.Diagnostics.Breakdowns))
	}
	assertDecimal(t, "premium factor", res.Diagnostics.Breakdowns[0].Breakdown.Premium, "0.60")
}

func TestEngine_Rank_Defaults(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.MaxTopN = 3
	cfg.Limits.DefaultTopN = 2
	e := newTestEngine(t, cfg)

	res, err := e.Rank(context.Background(), Request{Candidates: mixedCatalog()})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("default TopN returned %d items, want 2", len(res.Items))
	}
	d := res.Diagnostics
	if d.RequestID == "" {
		t.Error("RequestID not generated")
	}
	if d.RiskTier != TierModerate {
		t.Errorf("RiskTier = %q, want moderate", d.RiskTier)
	}
	if d.FilterMode != FilterSoft {
		t.Errorf("FilterMode = %q, want soft", d.FilterMode)
	}
	if d.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want low", d.RiskLevel)
	}
	if d.Scored != 6 || d.Returned != 2 || d.TopN != 2 {
		t.Errorf("Diagnostics counts = %+v", d)
	}

	res, err = e.Rank(context.Background(), Request{Candidates: mixedCatalog(), TopN: intPtr(50)})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(res.Items) != 3 {
		t.Errorf("capped TopN returned %d items, want 3", len(res.Items))
	}
}

func TestEngine_Rank_RequestIDFromContext(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := logging.ContextWithRequestID(context.Background(), "ctx-req")

	res, err := e.Rank(ctx, Request{Candidates: mixedCatalog()})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if res.Diagnostics.RequestID != "ctx-req" {
		t.Errorf("RequestID = %q, want ctx-req", res.Diagnostics.RequestID)
	}

	res, err = e.Rank(ctx, Request{RequestID: "explicit", Candidates: mixedCatalog()})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if res.Diagnostics.RequestID != "explicit" {
		t.Errorf("RequestID = %q, want explicit", res.Diagnostics.RequestID)
	}
}

func TestEngine_Rank_DebugLoggerEmitsDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e, err := NewEngine(nil, logger, WithObserver(NewLogObserver(logger)))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	req := Request{
		RequestID:  "embedded",
		Candidates: []PolicyCandidate{candidate("h1", PolicyHealth, "300")},
		Profile:    UserProfile{Age: 30},
	}
	if _, err := e.Rank(context.Background(), req); err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ranking diagnostics") || !strings.Contains(out, `"request_id":"embedded"`) {
		t.Errorf("debug logger produced no diagnostics: %q", out)
	}
}

func TestEngine_Rank_StrictOverride(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	res, err := e.Rank(context.Background(), Request{
		Candidates: mixedCatalog(),
		Profile:    UserProfile{Age: 60, BMI: 31},
		FilterMode: FilterStrict,
		TopN:       intPtr(10),
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if res.Diagnostics.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %q, want high", res.Diagnostics.RiskLevel)
	}
	for _, item := range res.Items {
		if item.Policy.PolicyType != PolicyHealth {
			t.Errorf("strict high-risk result contains %s", item.Policy.PolicyType)
		}
	}
	if len(res.Items) != 2 {
		t.Errorf("Rank() returned %d items, want 2", len(res.Items))
	}
}

func TestEngine_Rank_ExplicitRiskLevel(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	res, err := e.Rank(context.Background(), Request{
		Candidates: mixedCatalog(),
		Profile:    UserProfile{BMI: 35},
		RiskLevel:  RiskLow,
		FilterMode: FilterStrict,
		TopN:       intPtr(10),
	})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if res.Diagnostics.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want low", res.Diagnostics.RiskLevel)
	}
	if len(res.Items) != 6 {
		t.Errorf("Rank() returned %d items, want 6", len(res.Items))
	}
}

// --- Test: validation ---

func TestEngine_Rank_ValidationErrors(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	tests := []struct {
		name      string
		req       Request
		wantField string
	}{
		{
			name:      "negative top n",
			req:       Request{TopN: intPtr(-1)},
			wantField: "top_n",
		},
		{
			name:      "unknown preferred type",
			req:       Request{Preferences: prefsFor(PolicyHealth, PolicyType("pet"))},
			wantField: "preferences.preferred_policy_types[1]",
		},
		{
			name:      "negative age",
			req:       Request{Profile: UserProfile{Age: -1}},
			wantField: "profile.age",
		},
		{
			name:      "negative bmi",
			req:       Request{Profile: UserProfile{BMI: -2}},
			wantField: "profile.bmi",
		},
		{
			name:      "negative income",
			req:       Request{Profile: UserProfile{Income: MustAmount("-1")}},
			wantField: "profile.income",
		},
		{
			name:      "unknown tier",
			req:       Request{RiskTier: RiskTier("reckless")},
			wantField: "risk_tier",
		},
		{
			name:      "unknown filter mode",
			req:       Request{FilterMode: FilterMode("loose")},
			wantField: "filter_mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.req.Candidates = mixedCatalog()
			res, err := e.Rank(context.Background(), tt.req)
			if res != nil {
				t.Error("Rank() returned a result with an error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Rank() error = %v, want ErrValidation", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Rank() error = %T, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestRankPolicies_NegativeTopN(t *testing.T) {
	t.Parallel()

	_, err := RankPolicies(mixedCatalog(), Preferences{}, TierModerate, UserProfile{}, -3)
	if !IsValidationError(err) {
		t.Errorf("RankPolicies(topN=-3) error = %v, want *ValidationError", err)
	}
}

func TestRankPolicies_NoUpperAgeBound(t *testing.T) {
	t.Parallel()

	got, err := RankPolicies(mixedCatalog(), Preferences{}, TierModerate, UserProfile{Age: 200}, 5)
	if err != nil {
		t.Fatalf("RankPolicies(age=200) error = %v, want nil", err)
	}
	if len(got) == 0 {
		t.Error("RankPolicies(age=200) returned no items")
	}
}

// --- Test: cancellation ---

func TestEngine_Rank_CancelledContext(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Rank(ctx, Request{Candidates: mixedCatalog()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Rank() error = %v, want context.Canceled", err)
	}
	if e.Stats().Errors != 1 {
		t.Errorf("Stats().Errors = %d, want 1", e.Stats().Errors)
	}
}

func TestEngine_Rank_CancelledContextEmptyCatalog(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.Rank(ctx, Request{})
	if err != nil {
		t.Fatalf("Rank() error = %v, want nil for empty catalog", err)
	}
	if len(res.Items) != 0 {
		t.Errorf("Rank() returned %d items", len(res.Items))
	}
}

// --- Test: observers and stats ---

type countingObserver struct {
	calls atomic.Int32
	last  atomic.Pointer[Diagnostics]
}

func (o *countingObserver) Observe(_ context.Context, d *Diagnostics) {
	o.calls.Add(1)
	cp := *d
	o.last.Store(&cp)
}

func TestEngine_Observers(t *testing.T) {
	t.Parallel()

	construct := &countingObserver{}
	registered := &countingObserver{}
	var funcCalls atomic.Int32

	e := newTestEngine(t, nil, WithObserver(construct), WithObserver(nil))
	e.RegisterObserver(registered)
	e.RegisterObserver(nil)
	e.RegisterObserver(ObserverFunc(func(context.Context, *Diagnostics) {
		panic("observer failure")
	}))
	e.RegisterObserver(ObserverFunc(func(context.Context, *Diagnostics) {
		funcCalls.Add(1)
	}))
	e.RegisterObserver(NewLogObserver(testLogger()))

	res, err := e.Rank(context.Background(), Request{RequestID: "obs-1", Candidates: mixedCatalog()})
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(res.Items) == 0 {
		t.Fatal("Rank() returned no items")
	}

	if construct.calls.Load() != 1 || registered.calls.Load() != 1 || funcCalls.Load() != 1 {
		t.Errorf("observer calls = %d/%d/%d, want 1/1/1",
			construct.calls.Load(), registered.calls.Load(), funcCalls.Load())
	}
	if last := registered.last.Load(); last == nil || last.RequestID != "obs-1" {
		t.Errorf("observer got diagnostics %+v", last)
	}

	// Validation failures are not observed.
	_, _ = e.Rank(context.Background(), Request{TopN: intPtr(-1)})
	if registered.calls.Load() != 1 {
		t.Errorf("observer called on failed request")
	}
}

func TestEngine_Stats(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := context.Background()

	_, _ = e.Rank(ctx, Request{Candidates: mixedCatalog(), TopN: intPtr(3)})
	_, _ = e.Rank(ctx, Request{})
	_, _ = e.Rank(ctx, Request{TopN: intPtr(-1)})

	got := e.Stats()
	want := Stats{Requests: 3, Errors: 1, EmptyResults: 1, ScoredTotal: 6, ReturnedTotal: 3}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestEngine_ConcurrentRank(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil, WithProviderRater(ProviderRatings{"acme": 0.95}))
	catalog := mixedCatalog()
	for i := range catalog {
		catalog[i].ProviderID = "acme"
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Rank(context.Background(), Request{Candidates: catalog, TopN: intPtr(6)})
			if err != nil {
				errs <- err
				return
			}
			if len(res.Items) != 6 {
				errs <- fmt.Errorf("got %d items", len(res.Items))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if e.Stats().Requests != 20 {
		t.Errorf("Stats().Requests = %d, want 20", e.Stats().Requests)
	}
}

func TestEngine_ProviderRaterChangesScore(t *testing.T) {
	t.Parallel()

	c := candidate("p", PolicyHealth, "300")
	c.ProviderID = "acme"
	req := Request{Candidates: []PolicyCandidate{c}}

	plain, err := newTestEngine(t, nil).Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	rated, err := newTestEngine(t, nil, WithProviderRater(ProviderRatings{"acme": 1})).Rank(context.Background(), req)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	diff := rated.Items[0].Score.Sub(plain.Items[0].Score)
	assertDecimal(t, "score difference", diff, "0.75")
}
