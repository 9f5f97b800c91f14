// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// Format is a file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions other than
// .json, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// catalogFile is the on-disk catalog document.
type catalogFile struct {
	Policies []policyRecord `json:"policies" yaml:"policies"`
}

// policyRecord is one catalog entry as written in the file.
type policyRecord struct {
	ID             string         `json:"id" yaml:"id"`
	PolicyType     string         `json:"policy_type" yaml:"policy_type"`
	Title          string         `json:"title" yaml:"title"`
	Premium        rawAmount      `json:"premium" yaml:"premium"`
	Coverage       map[string]any `json:"coverage" yaml:"coverage"`
	CoverageAmount *rawAmount     `json:"coverage_amount" yaml:"coverage_amount"`
	ProviderID     string         `json:"provider_id" yaml:"provider_id"`
}

// requestFile is the on-disk ranking request. Candidates come from the
// catalog, not from this file.
type requestFile struct {
	RequestID   string            `json:"request_id" yaml:"request_id"`
	Preferences preferencesRecord `json:"preferences" yaml:"preferences"`
	RiskTier    string            `json:"risk_tier" yaml:"risk_tier"`
	RiskLevel   string            `json:"risk_level" yaml:"risk_level"`
	Profile     profileRecord     `json:"profile" yaml:"profile"`
	TopN        *int              `json:"top_n" yaml:"top_n"`
	FilterMode  string            `json:"filter_mode" yaml:"filter_mode"`
}

type preferencesRecord struct {
	PreferredPolicyTypes []string   `json:"preferred_policy_types" yaml:"preferred_policy_types"`
	MaxPremium           *rawAmount `json:"max_premium" yaml:"max_premium"`
	RequiredCoverages    []string   `json:"required_coverages" yaml:"required_coverages"`
}

type profileRecord struct {
	Age           int       `json:"age" yaml:"age"`
	Income        rawAmount `json:"income" yaml:"income"`
	BMI           float64   `json:"bmi" yaml:"bmi"`
	Diseases      []string  `json:"diseases" yaml:"diseases"`
	MaritalStatus string    `json:"marital_status" yaml:"marital_status"`
	HasKids       bool      `json:"has_kids" yaml:"has_kids"`
	Height        float64   `json:"height" yaml:"height"`
	Weight        float64   `json:"weight" yaml:"weight"`
}

// decode reads r into v, rejecting unknown fields.
func decode(r io.Reader, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeCandidates reads a catalog document and maps it to candidates.
func DecodeCandidates(r io.Reader, format Format) ([]recommend.PolicyCandidate, error) {
	var doc catalogFile
	if err := decode(r, format, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewMapper().ToCandidates(doc.Policies)
}

// DecodeRequest reads a request document and maps it to a recommend.Request
// without candidates.
func DecodeRequest(r io.Reader, format Format) (*recommend.Request, error) {
	var doc requestFile
	if err := decode(r, format, &doc); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return NewMapper().ToRequest(&doc)
}

// LoadCandidates reads the catalog file at path. The format follows the
// file extension.
func LoadCandidates(path string) ([]recommend.PolicyCandidate, error) {
	var out []recommend.PolicyCandidate
	err := withFile(path, func(r io.Reader, format Format) error {
		var err error
		out, err = DecodeCandidates(r, format)
		return err
	})
	return out, err
}

// LoadRequest reads the request file at path. The format follows the file
// extension.
func LoadRequest(path string) (*recommend.Request, error) {
	var out *recommend.Request
	err := withFile(path, func(r io.Reader, format Format) error {
		var err error
		out, err = DecodeRequest(r, format)
		return err
	})
	return out, err
}

func withFile(path string, fn func(io.Reader, Format) error) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := fn(f, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
