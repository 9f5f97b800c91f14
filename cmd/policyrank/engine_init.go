// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/harshini-2425/Insurance-project/internal/config"
	"github.com/harshini-2425/Insurance-project/internal/logging"
	"github.com/harshini-2425/Insurance-project/internal/metrics"
	"github.com/harshini-2425/Insurance-project/internal/recommend"
)

// initEngine builds the ranking engine from application configuration and
// attaches the configured observers.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}

	var opts []recommend.Option
	if ratings := cfg.ProviderRatings(); ratings != nil {
		opts = append(opts, recommend.WithProviderRater(ratings))
	}
	if cfg.Metrics.Enabled {
		metrics.SetAppInfo(version)
		opts = append(opts, recommend.WithObserver(metrics.NewObserver()))
	}
	if logging.GetLevel() <= zerolog.DebugLevel {
		opts = append(opts, recommend.WithObserver(recommend.NewLogObserver(logger)))
	}

	engine, err := recommend.NewEngine(engineCfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("create ranking engine: %w", err)
	}

	logger.Debug().
		Interface("weights", engineCfg.Weights.ToMap()).
		Str("filter_mode", string(engineCfg.Filter.Mode)).
		Int("providers_rated", len(cfg.Recommend.ProviderRatings)).
		Msg("ranking engine initialized")

	return engine, nil
}
