// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the minor-unit precision of every monetary amount.
const MoneyPlaces = 2

// ParseAmount parses a monetary amount into a fixed-point decimal rounded
// half-up to two fractional digits. Surrounding whitespace and thousands
// separators ("1,500.00") are accepted.
//
// field names the input for the returned *ValidationError.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: field, Reason: "amount is empty"}
	}
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{
			Field:  field,
			Value:  raw,
			Reason: "not a decimal amount",
			Err:    err,
		}
	}
	return d.Round(MoneyPlaces), nil
}

// MustAmount is like ParseAmount but panics on error. It is meant for
// constants and tests.
func MustAmount(raw string) decimal.Decimal {
	d, err := ParseAmount("amount", raw)
	if err != nil {
		panic(err)
	}
	return d
}

// AmountPtr returns a pointer to the parsed amount; handy for optional fields.
func AmountPtr(raw string) *decimal.Decimal {
	d := MustAmount(raw)
	return &d
}
