// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harshini-2425/Insurance-project/internal/config"
	"github.com/harshini-2425/Insurance-project/internal/logging"
)

// app carries state shared by subcommands once the root pre-run has loaded
// configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "policyrank",
		Short: "Rank insurance policies for a user profile",
		Long: `policyrank scores a catalog of insurance policies against one user's
preferences, risk tier and health profile, and prints the best matches with a
score out of 100 and a short explanation.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: CONFIG_PATH or policyrank.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json or console")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.load(cmd)
	}

	cmd.AddCommand(newRankCommand(a))
	cmd.AddCommand(newExplainRiskCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// load reads configuration, applies flag overrides and initializes logging.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.LoadFromPath(a.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	opts := cfg.LoggingOptions()
	opts.Output = cmd.ErrOrStderr()
	logging.Init(opts)

	a.cfg = cfg
	a.logger = logging.WithComponent("cli")
	a.logger.Debug().
		Str("filter_mode", cfg.Recommend.FilterMode).
		Int("default_top_n", cfg.Recommend.DefaultTopN).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("configuration loaded")

	return nil
}
