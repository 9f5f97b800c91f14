// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

// Package recommend implements the insurance policy recommendation engine.
//
// # Pipeline
//
// A recommendation request flows through a single, stateless pass:
//
//	candidates -> eligibility filter -> factor scorers -> composite score
//	           -> stable rank -> reason generator -> ranked output
//
// The eligibility filter is the only hard constraint: when the user lists
// preferred policy types, nothing else can ever appear in the output. All
// other signals (budget, health, risk tier, provider reputation) are soft and
// only move a candidate up or down the list.
//
// # Scoring
//
// Five factor scorers each return a value in [0, 1]:
//
//   - Coverage match (weight 35)
//   - Premium affordability (weight 25)
//   - Health and risk alignment (weight 25)
//   - Policy type fit (weight 10)
//   - Provider rating (weight 5)
//
// The weighted sum is rounded half-up to two fractional digits and clamped to
// [0, 100]. All arithmetic uses fixed-point decimals (shopspring/decimal).
//
// # Design Principles
//
//   - Deterministic: identical inputs produce byte-identical outputs
//   - Stable: equal scores keep their input order
//   - Embeddable: no I/O, no console output; diagnostics are returned in
//     Result.Diagnostics and pushed to registered Observers
//   - Explicit strictness: FilterMode selects between the soft policy
//     (type filter only) and the strict policy (age, risk level and budget
//     exclusions before scoring)
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	res, err := engine.Rank(ctx, recommend.Request{
//	    Candidates:  catalog,
//	    Preferences: prefs,
//	    RiskTier:    recommend.TierModerate,
//	    Profile:     profile,
//	})
//
// For callers that only need the ranked tuples, RankPolicies runs the default
// engine with a no-op logger.
//
// # Thread Safety
//
// An Engine is safe for concurrent use. Scoring within one request runs on a
// bounded worker pool; ranking always happens after every score is known, so
// concurrency never changes the output order.
package recommend
