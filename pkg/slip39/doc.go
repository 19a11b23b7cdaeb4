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

// Package slip39 implements two-level Shamir secret sharing with mnemonic
// encoding in the SLIP-39 format.
//
// A master secret of 16 to 32 bytes (even length) is split into group
// shares, GroupThreshold of which are needed to recover it. Each group share
// is split again among the group's members. Every member share is encoded as
// a mnemonic of 20 to 33 words drawn from a fixed 1024-word list, carrying
// the share set identifier, both thresholds, its indexes and an RS1024
// checksum.
//
// # Generating shares
//
//	cfg := slip39.NewConfig(2,
//	    slip39.GroupSpec{Threshold: 1, Count: 1}, // owner
//	    slip39.GroupSpec{Threshold: 2, Count: 3}, // family
//	)
//	mnemonics, err := slip39.GenerateMnemonics(cfg, masterSecret)
//
// # Recovering
//
//	secret, err := slip39.CombineMnemonics([]string{m1, m2, m3})
//
// Recovery accepts shares in any order and ignores surplus shares. Errors
// are typed: *ChecksumError and *InvalidWordError for damaged mnemonics,
// *IncompatibleSharesError for shares from different sets and
// *InsufficientSharesError when a threshold cannot be met. All unwrap to
// package sentinels for use with errors.Is.
//
// Passphrase encryption of the master secret is not performed; the
// iteration exponent is recorded in each share for callers that apply it.
package slip39
