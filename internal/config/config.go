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

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
	"github.com/jeremyhahn/go-slip39/pkg/logging"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

// Config represents the complete CLI configuration
type Config struct {
	Sharing SharingConfig `yaml:"sharing"`
	RNG     RNGConfig     `yaml:"rng"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
}

// SharingConfig is the default group layout for generate
type SharingConfig struct {
	GroupThreshold    int                `yaml:"group_threshold"`
	Groups            []slip39.GroupSpec `yaml:"groups"`
	IterationExponent int                `yaml:"iteration_exponent"`
	Extendable        bool               `yaml:"extendable"`
}

// RNGConfig selects the random source for identifiers and coefficients
type RNGConfig struct {
	Mode         string       `yaml:"mode"`          // auto, software, tpm2, pkcs11
	FallbackMode string       `yaml:"fallback_mode"` // tried when the primary fails
	TPM2         TPM2Config   `yaml:"tpm2"`
	PKCS11       PKCS11Config `yaml:"pkcs11"`
}

// TPM2Config contains TPM random source settings
type TPM2Config struct {
	Device         string `yaml:"device"`
	MaxRequestSize int    `yaml:"max_request_size"`
	UseSimulator   bool   `yaml:"use_simulator"`
	SimulatorHost  string `yaml:"simulator_host"`
	SimulatorPort  int    `yaml:"simulator_port"`
}

// PKCS11Config contains HSM random source settings
type PKCS11Config struct {
	Module string `yaml:"module"`
	SlotID uint   `yaml:"slot_id"`
	PIN    string `yaml:"pin"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls metrics collection and the textfile dump
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// OutputConfig controls how results are printed and where shares are written
type OutputConfig struct {
	Format    string `yaml:"format"` // text, json, yaml
	Directory string `yaml:"directory"`
}

// Default returns the built-in configuration: one group of three members,
// two of which recover the secret.
func Default() *Config {
	return &Config{
		Sharing: SharingConfig{
			GroupThreshold:    1,
			Groups:            []slip39.GroupSpec{{Threshold: 2, Count: 3}},
			IterationExponent: slip39.DefaultIterationExponent,
			Extendable:        true,
		},
		RNG: RNGConfig{
			Mode: string(rand.ModeAuto),
			TPM2: TPM2Config{
				Device: "/dev/tpmrm0",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file and applies environment variable overrides
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is Load against an explicit filesystem. Keys missing from the file
// keep their Default values.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	// #nosec G304 - Config file path is provided by the user
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FromEnv returns Default with environment variable overrides applied.
func FromEnv() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) {
	// Sharing
	envInt("SLIP39_GROUP_THRESHOLD", &cfg.Sharing.GroupThreshold)
	envInt("SLIP39_ITERATION_EXPONENT", &cfg.Sharing.IterationExponent)
	envBool("SLIP39_EXTENDABLE", &cfg.Sharing.Extendable)

	// RNG
	if mode := os.Getenv("SLIP39_RNG_MODE"); mode != "" {
		cfg.RNG.Mode = mode
	}
	if mode := os.Getenv("SLIP39_RNG_FALLBACK"); mode != "" {
		cfg.RNG.FallbackMode = mode
	}
	if device := os.Getenv("SLIP39_TPM_DEVICE"); device != "" {
		cfg.RNG.TPM2.Device = device
	}
	if module := os.Getenv("SLIP39_PKCS11_MODULE"); module != "" {
		cfg.RNG.PKCS11.Module = module
	}
	if pin := os.Getenv("SLIP39_PKCS11_PIN"); pin != "" {
		cfg.RNG.PKCS11.PIN = pin
	}
	if slot := os.Getenv("SLIP39_PKCS11_SLOT"); slot != "" {
		id, err := strconv.ParseUint(slot, 10, 32)
		if err != nil {
			log.Printf("Warning: invalid SLIP39_PKCS11_SLOT value %q, using default %d: %v",
				slot, cfg.RNG.PKCS11.SlotID, err)
		} else {
			cfg.RNG.PKCS11.SlotID = uint(id)
		}
	}

	// Logging
	if level := os.Getenv("SLIP39_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("SLIP39_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}

	// Metrics
	envBool("SLIP39_METRICS_ENABLED", &cfg.Metrics.Enabled)
	if textfile := os.Getenv("SLIP39_METRICS_TEXTFILE"); textfile != "" {
		cfg.Metrics.Textfile = textfile
	}

	// Output
	if format := os.Getenv("SLIP39_OUTPUT_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if dir := os.Getenv("SLIP39_OUTPUT_DIR"); dir != "" {
		cfg.Output.Directory = dir
	}
}

func envInt(name string, target *int) {
	raw := os.Getenv(name)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using default %d: %v", name, raw, *target, err)
		return
	}
	*target = v
}

func envBool(name string, target *bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using default %t: %v", name, raw, *target, err)
		return
	}
	*target = v
}

// SlipConfig converts the sharing section into a split configuration.
func (c *Config) SlipConfig() *slip39.Config {
	groups := make([]slip39.GroupSpec, len(c.Sharing.Groups))
	copy(groups, c.Sharing.Groups)
	return &slip39.Config{
		GroupThreshold:    c.Sharing.GroupThreshold,
		Groups:            groups,
		IterationExponent: c.Sharing.IterationExponent,
		Extendable:        c.Sharing.Extendable,
	}
}

// ResolverConfig converts the rng section into a resolver configuration.
func (c *Config) ResolverConfig() (*rand.Config, error) {
	mode, err := rand.ParseMode(c.RNG.Mode)
	if err != nil {
		return nil, err
	}
	var fallback rand.Mode
	if c.RNG.FallbackMode != "" {
		if fallback, err = rand.ParseMode(c.RNG.FallbackMode); err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
	}

	rc := &rand.Config{
		Mode:         mode,
		FallbackMode: fallback,
		TPM2Config: &rand.TPM2Config{
			Device:         c.RNG.TPM2.Device,
			MaxRequestSize: c.RNG.TPM2.MaxRequestSize,
			UseSimulator:   c.RNG.TPM2.UseSimulator,
			SimulatorHost:  c.RNG.TPM2.SimulatorHost,
			SimulatorPort:  c.RNG.TPM2.SimulatorPort,
		},
	}
	// auto mode only probes an HSM that is explicitly configured
	if c.RNG.PKCS11.Module != "" {
		rc.PKCS11Config = &rand.PKCS11Config{
			Module: c.RNG.PKCS11.Module,
			SlotID: c.RNG.PKCS11.SlotID,
			PIN:    c.RNG.PKCS11.PIN,
		}
	}
	return rc, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.SlipConfig().Validate(); err != nil {
		return fmt.Errorf("sharing: %w", err)
	}

	rc, err := c.ResolverConfig()
	if err != nil {
		return fmt.Errorf("rng: %w", err)
	}
	if (rc.Mode == rand.ModePKCS11 || rc.FallbackMode == rand.ModePKCS11) && rc.PKCS11Config == nil {
		return fmt.Errorf("rng: pkcs11 module is required when pkcs11 mode is selected")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	switch strings.ToLower(c.Output.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", c.Output.Format)
	}

	return nil
}
