// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

/*
Package catalog reads policy catalogs and ranking requests from JSON or YAML
files and maps them to recommend types.

The format follows the file extension (.json, .yaml, .yml). Unknown fields are
rejected. Monetary fields (premium, coverage_amount, max_premium, income) may
be written as numbers or strings; they are kept as literal text while decoding
and parsed into two-place decimals by the Mapper, so a bad value reports its
path:

	invalid policies[3].premium "abc": not a decimal amount

A catalog document:

	policies:
	  - id: h1
	    policy_type: health
	    title: Family Health Plus
	    premium: 300
	    coverage: {hospitalization: true, maternity: "up to 50k"}
	    coverage_amount: "1,000,000"
	    provider_id: acme-health

A request document:

	risk_tier: conservative
	top_n: 3
	preferences:
	  preferred_policy_types: [health]
	  max_premium: 500
	profile:
	  age: 34
	  income: 600000
	  diseases: [diabetes]
*/
package catalog
