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

package secretsharing

import (
	"crypto/subtle"
	"fmt"

	"github.com/jeremyhahn/go-slip39/pkg/gf256"
)

const (
	// MaxShares is the number of non-zero elements in GF(256).
	MaxShares = 255

	// MaxSecretLength bounds the byte length of a secret or share value.
	MaxSecretLength = 32
)

// RandomSource supplies the random polynomial coefficients.
// Production callers pass a CSPRNG-backed resolver from pkg/crypto/rand.
type RandomSource interface {
	Rand(n int) ([]byte, error)
}

// ShareConfig configures secret sharing parameters.
type ShareConfig struct {
	Threshold   int // M - minimum shares needed to reconstruct
	TotalShares int // N - total shares to create
}

// Validate checks 1 <= Threshold <= TotalShares <= MaxShares.
func (c *ShareConfig) Validate() error {
	if c.Threshold < 1 {
		return &ConfigError{Field: "threshold", Message: fmt.Sprintf("must be at least 1, got %d", c.Threshold)}
	}
	if c.TotalShares < c.Threshold {
		return &ConfigError{
			Field:   "total_shares",
			Message: fmt.Sprintf("total shares (%d) must be >= threshold (%d)", c.TotalShares, c.Threshold),
		}
	}
	if c.TotalShares > MaxShares {
		return &ConfigError{Field: "total_shares", Message: fmt.Sprintf("must be <= %d, got %d", MaxShares, c.TotalShares)}
	}
	return nil
}

// Share is one point (x, y) of the sharing polynomial.
type Share struct {
	Index byte   // x coordinate, 1-255
	Value []byte // y, one byte per secret byte
}

// Shamir splits secrets for a fixed threshold configuration.
type Shamir struct {
	config ShareConfig
	rng    RandomSource
	field  *gf256.Field
}

// Option customizes a Shamir instance.
type Option func(*Shamir)

// WithField overrides the shared GF(256) tables.
func WithField(f *gf256.Field) Option {
	return func(s *Shamir) {
		if f != nil {
			s.field = f
		}
	}
}

// NewShamir creates a new Shamir instance with the given configuration.
// Returns a *ConfigError if the configuration is invalid or rng is nil.
func NewShamir(config *ShareConfig, rng RandomSource, opts ...Option) (*Shamir, error) {
	if config == nil {
		return nil, &ConfigError{Field: "config", Message: "cannot be nil"}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &ConfigError{Field: "rng", Message: "random source cannot be nil"}
	}

	s := &Shamir{
		config: *config,
		rng:    rng,
		field:  gf256.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Threshold returns the number of shares needed to reconstruct.
func (s *Shamir) Threshold() int {
	return s.config.Threshold
}

// Split divides a secret into TotalShares shares, any Threshold of which
// reconstruct it. Share i is evaluated at x = i+1.
func (s *Shamir) Split(secret []byte) ([]Share, error) {
	if err := validateSecret(secret); err != nil {
		return nil, err
	}

	poly := make(polynomial, s.config.Threshold)
	poly[0] = secret
	for i := 1; i < s.config.Threshold; i++ {
		coeff, err := s.rng.Rand(len(secret))
		if err != nil {
			return nil, fmt.Errorf("failed to generate random coefficients: %w", err)
		}
		if len(coeff) != len(secret) {
			return nil, fmt.Errorf("random source returned %d bytes, want %d", len(coeff), len(secret))
		}
		poly[i] = coeff
	}
	defer func() {
		for _, c := range poly[1:] {
			clear(c)
		}
	}()

	shares := make([]Share, s.config.TotalShares)
	for i := range shares {
		x := byte(i + 1)
		shares[i] = Share{
			Index: x,
			Value: poly.evaluate(s.field, x),
		}
	}
	return shares, nil
}

// Combine reconstructs the secret from the first Threshold of the given shares.
func (s *Shamir) Combine(shares []Share) ([]byte, error) {
	if len(shares) < s.config.Threshold {
		return nil, &PointError{
			Index:   len(shares),
			Message: fmt.Sprintf("need %d shares, got %d", s.config.Threshold, len(shares)),
		}
	}
	return combine(s.field, shares[:s.config.Threshold])
}

// Verify recombines the first Threshold shares and compares the result with
// secret in constant time. It is a generation-time self test.
func (s *Shamir) Verify(secret []byte, shares []Share) (bool, error) {
	recovered, err := s.Combine(shares)
	if err != nil {
		return false, err
	}
	defer clear(recovered)
	return subtle.ConstantTimeCompare(recovered, secret) == 1, nil
}

// Combine reconstructs a secret from exactly the given shares by Lagrange
// interpolation at x = 0. Fewer shares than the original threshold yield a
// wrong value without error.
func Combine(shares []Share) ([]byte, error) {
	return combine(gf256.Default(), shares)
}

// CombineWithField is Combine using explicit field tables.
func CombineWithField(f *gf256.Field, shares []Share) ([]byte, error) {
	return combine(f, shares)
}

// Interpolate evaluates the polynomial through shares at x. Combine is
// Interpolate at x = 0.
func Interpolate(shares []Share, x byte) ([]byte, error) {
	if err := validatePoints(shares); err != nil {
		return nil, err
	}
	return interpolate(gf256.Default(), shares, x)
}

func combine(f *gf256.Field, shares []Share) ([]byte, error) {
	if err := validatePoints(shares); err != nil {
		return nil, err
	}
	return interpolate(f, shares, 0)
}

func validateSecret(secret []byte) error {
	if len(secret) == 0 {
		return &ConfigError{Field: "secret", Message: "cannot be empty"}
	}
	if len(secret) > MaxSecretLength {
		return &ConfigError{
			Field:   "secret",
			Message: fmt.Sprintf("length must be <= %d bytes, got %d", MaxSecretLength, len(secret)),
		}
	}
	return nil
}

func validatePoints(shares []Share) error {
	if len(shares) == 0 {
		return &PointError{Index: 0, Message: "no shares provided"}
	}
	size := len(shares[0].Value)
	if size == 0 {
		return &PointError{Index: 0, Message: "empty value"}
	}

	var seen [256]bool
	for i, share := range shares {
		if share.Index == 0 {
			return &PointError{Index: i, Message: "index 0 is reserved for the secret"}
		}
		if seen[share.Index] {
			return &PointError{Index: i, Message: fmt.Sprintf("duplicate index %d", share.Index)}
		}
		seen[share.Index] = true
		if len(share.Value) != size {
			return &PointError{
				Index:   i,
				Message: fmt.Sprintf("value length %d differs from %d", len(share.Value), size),
			}
		}
	}
	return nil
}
