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
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-slip39/internal/config"
	"github.com/jeremyhahn/go-slip39/pkg/logging"
	"github.com/jeremyhahn/go-slip39/pkg/metrics"
)

// EnvPrefix prefixes every environment variable read by the CLI.
//
// Settings resolve in this order, highest first: command line flags,
// SLIP39_* environment variables, the --config file, built-in defaults.
// Each setting has exactly one variable, shared with internal/config
// (SLIP39_OUTPUT_FORMAT, SLIP39_RNG_MODE, SLIP39_METRICS_TEXTFILE, ...);
// SLIP39_CONFIG names the config file.
const EnvPrefix = "SLIP39"

// app carries the state shared by every command of one invocation.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	flags  *Config
	cfg    *config.Config
	logger *logging.Logger
}

// Execute runs the root command against the OS filesystem
func Execute() error {
	cmd := NewRootCommand(afero.NewOsFs())
	if err := cmd.Execute(); err != nil {
		handleError(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// NewRootCommand builds the command tree. Share files and config files are
// read and written through fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{
		fs:     fs,
		v:      viper.New(),
		flags:  NewConfig(),
		cfg:    config.Default(),
		logger: logging.Discard(),
	}

	rootCmd := &cobra.Command{
		Use:   "slip39",
		Short: "slip39 - Shamir secret sharing with mnemonic shares",
		Long: `slip39 splits a 128 to 256 bit master secret into mnemonic shares
using a two-level (group, member) Shamir scheme, and recovers it from any
qualifying subset of shares.

Random sources:
  - auto:     PKCS#11 if configured, then TPM 2.0, then software
  - software: operating system CSPRNG
  - tpm2:     TPM 2.0 hardware RNG (built with -tags tpm2)
  - pkcs11:   PKCS#11 HSM RNG (built with -tags pkcs11)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.flags.ConfigFile, "config", "",
		"config file (YAML)")
	pf.StringVarP(&a.flags.OutputFormat, "output", "o", "text",
		"output format (text, json, yaml)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false,
		"verbose output")
	pf.StringVar(&a.flags.MetricsFile, "metrics-file", "",
		"write Prometheus metrics to this file after the command")
	pf.StringVar(&a.flags.RNGMode, "rng", "auto",
		"random source (auto, software, tpm2, pkcs11)")

	// Setting variables are read by internal/config; viper only carries
	// the flags and the config file location.
	_ = a.v.BindEnv("config", EnvPrefix+"_CONFIG")
	_ = a.v.BindPFlags(pf) // only fails on a nil flag set

	rootCmd.AddCommand(newVersionCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newRecoverCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newValidateCommand(a))

	return rootCmd
}

// initialize resolves configuration: file (or defaults and SLIP39_* env),
// then flags and their bound environment variables.
func (a *app) initialize(cmd *cobra.Command) error {
	var err error
	if path := a.v.GetString("config"); path != "" {
		a.cfg, err = config.LoadFs(a.fs, path)
	} else {
		a.cfg, err = config.FromEnv()
	}
	if err != nil {
		return err
	}

	if err := applyFlags(a.v, a.cfg); err != nil {
		return err
	}

	a.logger, err = logging.NewLoggerWithOptions(a.cfg.Logging.Level, a.cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if a.cfg.Metrics.Enabled {
		metrics.Enable()
	} else {
		metrics.Disable()
	}

	a.logger.Debug("configuration loaded",
		"config_file", a.v.GetString("config"),
		"rng", a.cfg.RNG.Mode,
		"output", a.cfg.Output.Format)
	return nil
}

// printer returns a Printer for the configured output format
func (a *app) printer(w io.Writer) *Printer {
	return NewPrinter(a.cfg.Output.Format, w)
}

// handleError prints an error to w in text form
func handleError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	printer := NewPrinter(string(OutputFormatText), w)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
}
