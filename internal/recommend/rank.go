// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"sort"
)

// Rank orders scored candidates by score descending and keeps the first
// topN. Candidates with equal scores keep their input order. The input slice
// is not modified. topN <= 0 or empty input yields an empty, non-nil slice.
func Rank(scored []ScoredCandidate, topN int) []ScoredCandidate {
	if topN <= 0 || len(scored) == 0 {
		return []ScoredCandidate{}
	}

	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.GreaterThan(ranked[j].Score)
	})

	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
