// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages keyed by JSON field path.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - JSON field names in error paths ("profile.age", "preferences.preferred_policy_types[0]")
//   - shopspring/decimal support: decimal fields validate as numbers, so
//     `validate:"gte=0"` works on money
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type Request struct {
//	    TopN    *int        `json:"top_n" validate:"omitempty,gte=0"`
//	    Tier    string      `json:"risk_tier" validate:"omitempty,risktier"`
//	    Profile UserProfile `json:"profile"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    first := verr.First()
//	    return fmt.Errorf("invalid %s: %w", first.Field(), verr)
//	}
//
// # Custom Validation Tags
//
//   - policytype: one of health, life, auto, home, travel
//   - risktier: one of conservative, moderate, aggressive
//   - risklevel: one of low, medium, high
//
// All three accept any string-kinded type, so named string types such as
// recommend.PolicyType validate without conversion.
//
// # Common Validation Tags
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - gt=n: Greater than n
//   - lt=n: Less than n
//
// Slice validations:
//   - dive: apply the following tags to every element
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
