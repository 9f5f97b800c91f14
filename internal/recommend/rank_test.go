// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"reflect"
	"testing"
)

func scored(id, score string) ScoredCandidate {
	return ScoredCandidate{Policy: PolicyCandidate{ID: id}, Score: dec(score)}
}

func scoredIDs(sc []ScoredCandidate) []string {
	out := make([]string, len(sc))
	for i := range sc {
		out[i] = sc[i].Policy.ID
	}
	return out
}

func TestRank(t *testing.T) {
	t.Parallel()

	input := []ScoredCandidate{
		scored("a", "70.00"),
		scored("b", "88.30"),
		scored("c", "70"),
		scored("d", "91.5"),
		scored("e", "70.00"),
	}

	tests := []struct {
		name string
		topN int
		want []string
	}{
		{name: "all", topN: 10, want: []string{"d", "b", "a", "c", "e"}},
		{name: "truncated", topN: 3, want: []string{"d", "b", "a"}},
		{name: "exact length", topN: 5, want: []string{"d", "b", "a", "c", "e"}},
		{name: "zero", topN: 0, want: []string{}},
		{name: "negative", topN: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Rank(input, tt.topN)
			if got == nil {
				t.Fatal("Rank() = nil, want non-nil")
			}
			if !reflect.DeepEqual(scoredIDs(got), tt.want) {
				t.Errorf("Rank() = %v, want %v", scoredIDs(got), tt.want)
			}
		})
	}

	if !reflect.DeepEqual(scoredIDs(input), []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Rank() modified its input: %v", scoredIDs(input))
	}
}

func TestRank_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := Rank(nil, 5); got == nil || len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty non-nil slice", got)
	}
}

func TestRank_AllTiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	input := make([]ScoredCandidate, 50)
	want := make([]string, 50)
	for i := range input {
		id := string(rune('A' + i%26))
		if i >= 26 {
			id += "2"
		}
		input[i] = scored(id, "50.00")
		want[i] = id
	}

	if got := scoredIDs(Rank(input, 50)); !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() reordered ties: %v", got)
	}
}
