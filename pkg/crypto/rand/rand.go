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

// Package rand supplies the random byte sources used when splitting secrets.
//
// Every coefficient of a sharing polynomial is drawn from a Resolver. The
// production resolvers are all cryptographically secure:
//   - ModeSoftware reads from crypto/rand
//   - ModeTPM2 issues TPM2_GetRandom to a TPM 2.0 device (build tag "tpm2")
//   - ModePKCS11 calls C_GenerateRandom on an HSM slot (build tag "pkcs11")
//   - ModeAuto picks the best available source: PKCS#11 > TPM2 > software
//
// A deterministic resolver for reproducible tests is available through
// NewSeededResolver. It is deliberately not selectable through a Mode, so
// configuration files and command line flags can never enable it.
//
// All resolvers are safe for concurrent use.
package rand

import (
	"crypto/rand"
	"fmt"
)

// Mode specifies which RNG source to use.
type Mode string

const (
	// ModeAuto automatically selects the best available RNG.
	ModeAuto Mode = "auto"

	// ModeSoftware uses crypto/rand.
	ModeSoftware Mode = "software"

	// ModeTPM2 uses the Trusted Platform Module 2.0 hardware RNG.
	ModeTPM2 Mode = "tpm2"

	// ModePKCS11 uses a PKCS#11 hardware security module RNG.
	ModePKCS11 Mode = "pkcs11"
)

// Modes lists every selectable mode.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeSoftware, ModeTPM2, ModePKCS11}
}

// Config contains RNG configuration.
type Config struct {
	// Mode specifies the primary RNG source. Defaults to ModeAuto.
	Mode Mode

	// FallbackMode is tried when the primary source fails to produce bytes.
	// If empty, failures are returned to the caller.
	FallbackMode Mode

	// TPM2Config is used when Mode or FallbackMode is ModeTPM2.
	TPM2Config *TPM2Config

	// PKCS11Config is used when Mode or FallbackMode is ModePKCS11.
	PKCS11Config *PKCS11Config
}

// TPM2Config contains configuration for the TPM2 RNG.
type TPM2Config struct {
	// Device path to the TPM device (default: "/dev/tpmrm0")
	Device string

	// MaxRequestSize limits the bytes requested per TPM2_GetRandom call.
	// Default: 32
	MaxRequestSize int

	// UseSimulator connects to a TCP simulator (swtpm) instead of Device.
	UseSimulator bool

	// SimulatorHost defaults to "localhost".
	SimulatorHost string

	// SimulatorPort defaults to 2321. The platform port is SimulatorPort+1.
	SimulatorPort int
}

// PKCS11Config contains configuration for the PKCS#11 RNG.
type PKCS11Config struct {
	// Module path to the PKCS#11 library (e.g., /usr/lib/softhsm/libsofthsm2.so)
	Module string

	// SlotID specifies the PKCS#11 slot containing the RNG
	SlotID uint

	// PIN authenticates the session when set
	PIN string
}

// Resolver provides random bytes to secret sharing operations.
//
// Resolver implements io.Reader so it can stand in for crypto/rand.Reader.
type Resolver interface {
	// Rand returns n random bytes.
	Rand(n int) ([]byte, error)

	// Read fills p with random bytes.
	Read(p []byte) (n int, err error)

	// Available returns true if the source is ready to produce bytes.
	Available() bool

	// Close releases any device handles held by the resolver.
	Close() error
}

// NewResolver creates a resolver for a Mode or *Config.
// A nil or empty configuration selects ModeAuto.
func NewResolver(config interface{}) (Resolver, error) {
	cfg, err := normalizeConfig(config)
	if err != nil {
		return nil, err
	}
	return newResolver(cfg)
}

// ParseMode validates a mode name from configuration or flags.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown RNG mode: %s", s)
}

func normalizeConfig(config interface{}) (*Config, error) {
	switch v := config.(type) {
	case nil:
		return &Config{Mode: ModeAuto}, nil
	case Mode:
		return &Config{Mode: v}, nil
	case *Config:
		if v == nil {
			return &Config{Mode: ModeAuto}, nil
		}
		cfg := *v
		if cfg.Mode == "" {
			cfg.Mode = ModeAuto
		}
		return &cfg, nil
	default:
		return nil, fmt.Errorf("unsupported RNG configuration type %T", config)
	}
}

func newResolver(cfg *Config) (Resolver, error) {
	var (
		primary Resolver
		err     error
	)
	switch cfg.Mode {
	case ModeAuto:
		primary, err = newAutoResolver(cfg)
	case ModeSoftware:
		primary = &SoftwareResolver{}
	case ModeTPM2:
		primary, err = newTPM2Resolver(cfg.TPM2Config)
	case ModePKCS11:
		primary, err = newPKCS11Resolver(cfg.PKCS11Config)
	default:
		return nil, fmt.Errorf("unknown RNG mode: %s", cfg.Mode)
	}
	if err != nil {
		if cfg.FallbackMode == "" || cfg.FallbackMode == cfg.Mode {
			return nil, err
		}
		return newResolver(&Config{
			Mode:         cfg.FallbackMode,
			TPM2Config:   cfg.TPM2Config,
			PKCS11Config: cfg.PKCS11Config,
		})
	}

	if cfg.FallbackMode == "" || cfg.FallbackMode == cfg.Mode {
		return primary, nil
	}
	fallback, err := newResolver(&Config{
		Mode:         cfg.FallbackMode,
		TPM2Config:   cfg.TPM2Config,
		PKCS11Config: cfg.PKCS11Config,
	})
	if err != nil {
		// The primary works; a broken fallback is not fatal.
		return primary, nil
	}
	return &fallbackResolver{primary: primary, fallback: fallback}, nil
}

// SoftwareResolver uses crypto/rand from the Go standard library.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

// Rand returns n bytes from crypto/rand.
func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid byte count: %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("crypto/rand read failed: %w", err)
	}
	return buf, nil
}

// Read implements io.Reader.
func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

// Available always returns true; crypto/rand is always present.
func (s *SoftwareResolver) Available() bool {
	return true
}

// Close is a no-op.
func (s *SoftwareResolver) Close() error {
	return nil
}

// readFrom adapts a Rand-style source to io.Reader semantics.
func readFrom(r interface{ Rand(int) ([]byte, error) }, p []byte) (int, error) {
	data, err := r.Rand(len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, data), nil
}
