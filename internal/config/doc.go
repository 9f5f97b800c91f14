// Insurance Project - Policy Recommendation Scoring Engine
// Copyright 2026 The Insurance Project Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/harshini-2425/Insurance-project

/*
Package config loads policyrank application configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (mirroring recommend.DefaultConfig)
 2. An optional YAML file: CONFIG_PATH, then policyrank.yaml in the working
    directory, then /etc/policyrank/config.yaml
 3. Environment variables from an explicit mapping table

# Configuration Structure

  - LoggingConfig: zerolog level, format and caller annotation
  - RecommendConfig: factor weights, filter mode, top-N limits, reason
    formatting and provider ratings
  - MetricsConfig: Prometheus collection and textfile output

# Example File

	logging:
	  level: debug
	  format: console
	recommend:
	  filter_mode: strict
	  default_top_n: 3
	  weights:
	    coverage: 40
	    premium: 20
	    health: 25
	    type_fit: 10
	    provider: 5
	  provider_ratings:
	    acme-health: 0.92
	metrics:
	  textfile_path: /var/lib/node_exporter/policyrank.prom

# Usage

	cfg, err := config.LoadFromPath(flagPath)
	if err != nil {
	    return err
	}
	engineCfg, err := cfg.EngineConfig()

EngineConfig converts the recommend section into a validated
recommend.Config; Validate calls it, so a loaded Config always converts.
*/
package config
