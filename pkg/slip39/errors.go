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

package slip39

import (
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-slip39/pkg/crypto/secretsharing"
)

var (
	// ErrInvalidConfig indicates a group layout or secret violated its bounds.
	ErrInvalidConfig = secretsharing.ErrInvalidConfig

	// ErrInvalidChecksum indicates a mnemonic failed its RS1024 integrity check.
	ErrInvalidChecksum = errors.New("slip39: invalid mnemonic checksum")

	// ErrInvalidWord indicates a mnemonic word is not in the wordlist.
	ErrInvalidWord = errors.New("slip39: invalid mnemonic word")

	// ErrInvalidMnemonic indicates a structurally malformed mnemonic
	// (length, padding or inconsistent metadata).
	ErrInvalidMnemonic = errors.New("slip39: invalid mnemonic")

	// ErrIncompatibleShares indicates shares that do not belong to one split.
	ErrIncompatibleShares = errors.New("slip39: incompatible shares")

	// ErrInsufficientShares indicates too few shares to reach a threshold.
	ErrInsufficientShares = errors.New("slip39: insufficient shares")
)

// ConfigError reports which configuration value violated its bounds.
type ConfigError = secretsharing.ConfigError

// Tier identifies a level of the sharing hierarchy.
type Tier string

const (
	// TierGroup is the split of the master secret among groups.
	TierGroup Tier = "group"

	// TierMember is the split of a group secret among its members.
	TierMember Tier = "member"
)

// ChecksumError is returned when a mnemonic fails checksum verification.
// None of the mnemonic's fields are trusted once this happens.
type ChecksumError struct {
	Words int
}

// Error implements the error interface.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("slip39: checksum verification failed for %d-word mnemonic", e.Words)
}

// Unwrap returns the underlying error for errors.Is() support.
func (e *ChecksumError) Unwrap() error {
	return ErrInvalidChecksum
}

// InvalidWordError names the offending word and its 0-based position.
type InvalidWordError struct {
	Word     string
	Position int
}

// Error implements the error interface.
func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("slip39: word %d (%q) is not in the wordlist", e.Position+1, e.Word)
}

// Unwrap returns the underlying error for errors.Is() support.
func (e *InvalidWordError) Unwrap() error {
	return ErrInvalidWord
}

// MnemonicError describes a structural problem with a mnemonic.
type MnemonicError struct {
	Reason string
}

// Error implements the error interface.
func (e *MnemonicError) Error() string {
	return "slip39: invalid mnemonic: " + e.Reason
}

// Unwrap returns the underlying error for errors.Is() support.
func (e *MnemonicError) Unwrap() error {
	return ErrInvalidMnemonic
}

// IncompatibleSharesError names the first metadata field on which two
// shares disagree.
type IncompatibleSharesError struct {
	Field string
	Want  int
	Got   int
}

// Error implements the error interface.
func (e *IncompatibleSharesError) Error() string {
	return fmt.Sprintf("slip39: incompatible shares: %s mismatch (%d != %d)", e.Field, e.Got, e.Want)
}

// Unwrap returns the underlying error for errors.Is() support.
func (e *IncompatibleSharesError) Unwrap() error {
	return ErrIncompatibleShares
}

// InsufficientSharesError reports how many shares a tier needed and had.
// GroupIndex is meaningful for TierMember only.
type InsufficientSharesError struct {
	Tier       Tier
	GroupIndex int
	Required   int
	Available  int
}

// Error implements the error interface.
func (e *InsufficientSharesError) Error() string {
	if e.Tier == TierMember {
		return fmt.Sprintf("slip39: insufficient shares in group %d: required %d, available %d",
			e.GroupIndex+1, e.Required, e.Available)
	}
	return fmt.Sprintf("slip39: insufficient groups: required %d, available %d", e.Required, e.Available)
}

// Unwrap returns the underlying error for errors.Is() support.
func (e *InsufficientSharesError) Unwrap() error {
	return ErrInsufficientShares
}
