// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

/*
Package metrics provides Prometheus instrumentation for policy ranking.

Metrics are registered on the default registry at package init via promauto.
Observer plugs into recommend.Engine as a recommend.Observer; failures are
recorded separately with RecordRankError because observers only see
successful calls.

# Available Metrics

Ranking:
  - policyrank_rank_requests_total: successful requests (counter)
    Labels: filter_mode, risk_tier
  - policyrank_rank_errors_total: failed requests (counter)
    Labels: kind (validation, canceled, timeout, other)
  - policyrank_rank_empty_results_total: requests returning nothing (counter)
    Labels: filter_mode
  - policyrank_rank_duration_seconds: end-to-end ranking time (histogram)
  - policyrank_rank_returned_items: policies returned (histogram)

Filtering:
  - policyrank_filter_candidates: candidates left after each stage (histogram)
    Labels: stage (initial, age_band, risk_level, budget, policy_type, final)
  - policyrank_filter_eliminated_total: candidates removed (counter)
    Labels: filter_mode

Scoring:
  - policyrank_score: final scores, 10-point buckets (histogram)
  - policyrank_factor_value: factor values, 0.1 buckets (histogram)
    Labels: factor

# Export

policyrank is a batch CLI, so there is no /metrics endpoint. WriteTextfile
dumps the default gatherer for the node-exporter textfile collector:

	engine.RegisterObserver(metrics.NewObserver())
	...
	if err := metrics.WriteTextfile("/var/lib/node_exporter/policyrank.prom"); err != nil {
	    logging.Err(err).Msg("metrics textfile")
	}
*/
package metrics
