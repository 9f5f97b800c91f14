// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package recommend

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// goodCoverageThreshold is the coverage factor at which the generic
// coverage clause is emitted.
var goodCoverageThreshold = dec("0.6")

// ReasonGenerator renders the short explanation attached to each result.
// It is safe for concurrent use.
type ReasonGenerator struct {
	format ReasonFormat
	tag    language.Tag
}

// NewReasonGenerator builds a generator for the given format. An empty or
// unparseable locale falls back to English.
//
//nolint:gocritic // hugeParam: format copied once at construction
func NewReasonGenerator(format ReasonFormat) *ReasonGenerator {
	tag, err := language.Parse(format.Locale)
	if err != nil {
		tag = language.English
	}
	if format.Separator == "" {
		format.Separator = " • "
	}
	return &ReasonGenerator{format: format, tag: tag}
}

// Explain returns up to three clauses describing why c scored as it did.
// It never fails: when no clause applies, or formatting panics, it returns
// "Score: <score>/100".
func (g *ReasonGenerator) Explain(c *PolicyCandidate, score decimal.Decimal, profile *UserProfile, prefs *Preferences) (reason string) {
	fallback := "Score: " + score.StringFixed(ScorePlaces) + "/100"
	defer func() {
		if r := recover(); r != nil {
			reason = fallback
		}
	}()

	p := message.NewPrinter(g.tag)
	clauses := make([]string, 0, 3)

	switch {
	case prefs.Prefers(c.PolicyType):
		clauses = append(clauses, "Matches your preferred "+c.PolicyType.String()+" coverage")
	case c.PolicyType == PolicyHealth && profile.DiseaseCount() > 0:
		clauses = append(clauses, "Ideal for managing your health conditions")
	case CoverageMatch(c, prefs).GreaterThanOrEqual(goodCoverageThreshold):
		clauses = append(clauses, "Good coverage match")
	}

	if c.Premium.IsPositive() {
		amount := g.amount(p, c.Premium)
		if prefs.MaxPremium != nil && c.Premium.LessThanOrEqual(*prefs.MaxPremium) {
			clauses = append(clauses, "Within budget ("+amount+")")
		} else {
			clauses = append(clauses, "Good value coverage ("+amount+")")
		}
	}

	if c.CoverageAmount != nil {
		if c.CoverageAmount.GreaterThanOrEqual(g.format.LargeCoverageThreshold) {
			clauses = append(clauses, "Strong coverage ("+g.amount(p, *c.CoverageAmount)+")")
		} else {
			clauses = append(clauses, "Solid protection")
		}
	}

	if len(clauses) == 0 {
		return fallback
	}
	return strings.Join(clauses, g.format.Separator)
}

// amount renders v with zero fractional digits, rounded half away from zero,
// with locale digit grouping and the configured currency symbol.
func (g *ReasonGenerator) amount(p *message.Printer, v decimal.Decimal) string {
	r := v.Round(0)
	if r.Abs().LessThanOrEqual(maxPrintableInt) {
		return p.Sprintf("%s%d", g.format.CurrencySymbol, r.IntPart())
	}
	return g.format.CurrencySymbol + groupDigits(r.String(), groupSeparator(p))
}

// maxPrintableInt is the largest magnitude IntPart returns without wrapping.
var maxPrintableInt = decimal.NewFromInt(math.MaxInt64)

// groupSeparator returns the locale's thousands separator as rendered by p,
// or "" when the locale does not group.
func groupSeparator(p *message.Printer) string {
	s := p.Sprintf("%d", 1000)
	if len(s) <= len("1000") || !strings.HasPrefix(s, "1") || !strings.HasSuffix(s, "000") {
		return ""
	}
	return s[1 : len(s)-3]
}

// groupDigits inserts sep between groups of three digits of an integer
// string, keeping a leading minus sign.
func groupDigits(digits, sep string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if sep == "" || len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
