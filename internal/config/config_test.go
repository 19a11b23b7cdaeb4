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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/rand"
	"github.com/jeremyhahn/go-slip39/pkg/slip39"
)

// TestLoad_Success tests successful loading of a valid config file
func TestLoad_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
sharing:
  group_threshold: 2
  groups:
    - threshold: 1
      count: 1
    - threshold: 2
      count: 3
    - threshold: 3
      count: 5
  iteration_exponent: 0
  extendable: false

rng:
  mode: "software"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  textfile: "/var/lib/node_exporter/slip39.prom"

output:
  format: "yaml"
  directory: "/tmp/shares"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Sharing.GroupThreshold != 2 {
		t.Errorf("Expected group threshold 2, got %d", cfg.Sharing.GroupThreshold)
	}
	if len(cfg.Sharing.Groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(cfg.Sharing.Groups))
	}
	if cfg.Sharing.Groups[2] != (slip39.GroupSpec{Threshold: 3, Count: 5}) {
		t.Errorf("Unexpected third group: %+v", cfg.Sharing.Groups[2])
	}
	if cfg.Sharing.IterationExponent != 0 {
		t.Errorf("Expected iteration exponent 0, got %d", cfg.Sharing.IterationExponent)
	}
	if cfg.Sharing.Extendable {
		t.Error("Expected extendable to be false")
	}
	if cfg.RNG.Mode != "software" {
		t.Errorf("Expected rng mode software, got %s", cfg.RNG.Mode)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected log format json, got %s", cfg.Logging.Format)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/slip39.prom" {
		t.Errorf("Unexpected metrics textfile: %s", cfg.Metrics.Textfile)
	}
	if cfg.Output.Format != "yaml" || cfg.Output.Directory != "/tmp/shares" {
		t.Errorf("Unexpected output config: %+v", cfg.Output)
	}
}

// TestLoadFs_PartialFileKeepsDefaults tests that missing keys fall back to Default
func TestLoadFs_PartialFileKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/etc/slip39.yaml", []byte("logging:\n  level: warn\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadFs(fs, "/etc/slip39.yaml")
	if err != nil {
		t.Fatalf("LoadFs() failed: %v", err)
	}

	def := Default()
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != def.Logging.Format {
		t.Errorf("Expected default log format %s, got %s", def.Logging.Format, cfg.Logging.Format)
	}
	if cfg.Sharing.GroupThreshold != def.Sharing.GroupThreshold || len(cfg.Sharing.Groups) != 1 {
		t.Errorf("Expected default sharing config, got %+v", cfg.Sharing)
	}
	if !cfg.Sharing.Extendable {
		t.Error("Expected extendable default to survive a partial file")
	}
}

// TestLoad_FileNotFound tests loading a non-existent config file
func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/slip39.yaml")
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestLoad_InvalidYAML tests loading a malformed config file
func TestLoad_InvalidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "bad.yaml", []byte("sharing: [unclosed"), 0600)

	_, err := LoadFs(fs, "bad.yaml")
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestLoad_InvalidConfig tests that validation runs after loading
func TestLoad_InvalidConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "c.yaml", []byte("sharing:\n  group_threshold: 3\n"), 0600)

	_, err := LoadFs(fs, "c.yaml")
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestApplyEnvOverrides tests environment variable overrides
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SLIP39_GROUP_THRESHOLD", "1")
	t.Setenv("SLIP39_ITERATION_EXPONENT", "5")
	t.Setenv("SLIP39_EXTENDABLE", "false")
	t.Setenv("SLIP39_RNG_MODE", "tpm2")
	t.Setenv("SLIP39_RNG_FALLBACK", "software")
	t.Setenv("SLIP39_TPM_DEVICE", "/dev/tpm0")
	t.Setenv("SLIP39_PKCS11_MODULE", "/usr/lib/softhsm/libsofthsm2.so")
	t.Setenv("SLIP39_PKCS11_SLOT", "7")
	t.Setenv("SLIP39_PKCS11_PIN", "1234")
	t.Setenv("SLIP39_LOG_LEVEL", "debug")
	t.Setenv("SLIP39_LOG_FORMAT", "json")
	t.Setenv("SLIP39_METRICS_ENABLED", "false")
	t.Setenv("SLIP39_METRICS_TEXTFILE", "/tmp/slip39.prom")
	t.Setenv("SLIP39_OUTPUT_FORMAT", "json")
	t.Setenv("SLIP39_OUTPUT_DIR", "/tmp/out")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Sharing.IterationExponent != 5 {
		t.Errorf("Expected iteration exponent 5, got %d", cfg.Sharing.IterationExponent)
	}
	if cfg.Sharing.Extendable {
		t.Error("Expected extendable false")
	}
	if cfg.RNG.Mode != "tpm2" || cfg.RNG.FallbackMode != "software" {
		t.Errorf("Unexpected rng modes: %+v", cfg.RNG)
	}
	if cfg.RNG.TPM2.Device != "/dev/tpm0" {
		t.Errorf("Expected TPM device /dev/tpm0, got %s", cfg.RNG.TPM2.Device)
	}
	if cfg.RNG.PKCS11.SlotID != 7 || cfg.RNG.PKCS11.PIN != "1234" {
		t.Errorf("Unexpected pkcs11 config: %+v", cfg.RNG.PKCS11)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Metrics.Enabled || cfg.Metrics.Textfile != "/tmp/slip39.prom" {
		t.Errorf("Unexpected metrics config: %+v", cfg.Metrics)
	}
	if cfg.Output.Format != "json" || cfg.Output.Directory != "/tmp/out" {
		t.Errorf("Unexpected output config: %+v", cfg.Output)
	}
}

// TestApplyEnvOverrides_InvalidValues tests that unparsable values keep defaults
func TestApplyEnvOverrides_InvalidValues(t *testing.T) {
	t.Setenv("SLIP39_GROUP_THRESHOLD", "two")
	t.Setenv("SLIP39_EXTENDABLE", "maybe")
	t.Setenv("SLIP39_PKCS11_SLOT", "-1")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.Sharing.GroupThreshold != 1 {
		t.Errorf("Expected default group threshold, got %d", cfg.Sharing.GroupThreshold)
	}
	if !cfg.Sharing.Extendable {
		t.Error("Expected default extendable")
	}
	if cfg.RNG.PKCS11.SlotID != 0 {
		t.Errorf("Expected default slot, got %d", cfg.RNG.PKCS11.SlotID)
	}
}

// TestFromEnv tests building a config without a file
func TestFromEnv(t *testing.T) {
	t.Setenv("SLIP39_OUTPUT_FORMAT", "yaml")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() failed: %v", err)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Expected yaml output, got %s", cfg.Output.Format)
	}

	t.Setenv("SLIP39_LOG_LEVEL", "loud")
	if _, err := FromEnv(); err == nil {
		t.Error("Expected error for invalid log level")
	}
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"no groups", func(c *Config) { c.Sharing.Groups = nil }, "sharing"},
		{"member threshold", func(c *Config) { c.Sharing.Groups[0].Threshold = 4 }, "sharing"},
		{"iteration exponent", func(c *Config) { c.Sharing.IterationExponent = 16 }, "sharing"},
		{"rng mode", func(c *Config) { c.RNG.Mode = "quantum" }, "rng"},
		{"rng fallback", func(c *Config) { c.RNG.FallbackMode = "dice" }, "rng"},
		{"pkcs11 without module", func(c *Config) { c.RNG.Mode = "pkcs11" }, "pkcs11 module"},
		{"pkcs11 with module", func(c *Config) {
			c.RNG.Mode = "pkcs11"
			c.RNG.PKCS11.Module = "/usr/lib/libsofthsm2.so"
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "level"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "log format"},
		{"output format", func(c *Config) { c.Output.Format = "csv" }, "output format"},
		{"output yaml", func(c *Config) { c.Output.Format = "yaml" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

// TestSlipConfig tests conversion to a split configuration
func TestSlipConfig(t *testing.T) {
	cfg := Default()
	sc := cfg.SlipConfig()
	if sc.GroupThreshold != 1 || len(sc.Groups) != 1 || !sc.Extendable {
		t.Errorf("Unexpected slip39 config: %+v", sc)
	}

	sc.Groups[0].Count = 9
	if cfg.Sharing.Groups[0].Count == 9 {
		t.Error("SlipConfig must copy the group slice")
	}
}

// TestResolverConfig tests conversion to a random source configuration
func TestResolverConfig(t *testing.T) {
	cfg := Default()
	rc, err := cfg.ResolverConfig()
	if err != nil {
		t.Fatalf("ResolverConfig() failed: %v", err)
	}
	if rc.Mode != rand.ModeAuto {
		t.Errorf("Expected auto mode, got %s", rc.Mode)
	}
	if rc.PKCS11Config != nil {
		t.Error("Expected no PKCS#11 config without a module")
	}
	if rc.TPM2Config == nil || rc.TPM2Config.Device != "/dev/tpmrm0" {
		t.Errorf("Unexpected TPM2 config: %+v", rc.TPM2Config)
	}

	cfg.RNG.PKCS11.Module = "/usr/lib/libsofthsm2.so"
	cfg.RNG.FallbackMode = "software"
	rc, err = cfg.ResolverConfig()
	if err != nil {
		t.Fatalf("ResolverConfig() failed: %v", err)
	}
	if rc.PKCS11Config == nil || rc.PKCS11Config.Module != "/usr/lib/libsofthsm2.so" {
		t.Errorf("Unexpected PKCS#11 config: %+v", rc.PKCS11Config)
	}
	if rc.FallbackMode != rand.ModeSoftware {
		t.Errorf("Expected software fallback, got %s", rc.FallbackMode)
	}
}
