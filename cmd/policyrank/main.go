// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

// Package main is the entry point for the policyrank CLI.
//
// policyrank ranks a catalog of insurance policies for one user request and
// prints the top results with scores and reasons as JSON.
//
// # Commands
//
//	policyrank rank --request request.yaml --catalog catalog.json [--top N] [--strict]
//	policyrank explain-risk --request request.yaml
//	policyrank version
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags (--log-level, --log-format, --metrics-textfile)
//   - Environment variables (LOG_LEVEL, RECOMMEND_FILTER_MODE, ...)
//   - Config file (--config, CONFIG_PATH or policyrank.yaml)
//   - Built-in defaults
//
// # Exit Codes
//
//	0  success, including an empty ranking
//	1  runtime failure (unreadable file, cancelled run, metrics write)
//	2  invalid input (bad amount, unknown policy type, negative top-N)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case recommend.IsValidationError(err):
		return ExitInvalidInput
	default:
		return ExitError
	}
}
