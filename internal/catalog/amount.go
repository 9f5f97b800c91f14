// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package catalog

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// rawAmount holds a monetary value exactly as written in the source file.
// Both quoted strings and bare numbers are accepted; parsing into a decimal
// happens in the mapper so errors carry a field path.
type rawAmount string

// UnmarshalJSON keeps the literal text of a JSON number or string.
func (r *rawAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = rawAmount(s)
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		*r = rawAmount(b)
	default:
		return fmt.Errorf("amount must be a number or string, got %s", b)
	}
	return nil
}

// UnmarshalYAML keeps the literal text of a YAML scalar.
func (r *rawAmount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*r = ""
		return nil
	}
	*r = rawAmount(node.Value)
	return nil
}
