// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-slip39/internal/config"
)

// Config holds the global flag values of one CLI invocation
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json, yaml)
	OutputFormat string

	// Verbose enables debug logging
	Verbose bool

	// MetricsFile receives a Prometheus textfile dump after each command
	MetricsFile string

	// RNGMode selects the random source
	RNGMode string
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: "text",
		RNGMode:      "auto",
	}
}

// applyFlags overlays flags that were set on the command line onto cfg,
// which already carries the file and SLIP39_* values, then revalidates it.
func applyFlags(v *viper.Viper, cfg *config.Config) error {
	if v.IsSet("output") {
		cfg.Output.Format = v.GetString("output")
	}
	if v.IsSet("rng") {
		cfg.RNG.Mode = v.GetString("rng")
	}
	if v.IsSet("metrics-file") {
		cfg.Metrics.Textfile = v.GetString("metrics-file")
	}
	if v.GetBool("verbose") {
		cfg.Logging.Level = "debug"
	}
	return cfg.Validate()
}
