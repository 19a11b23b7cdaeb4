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

import "fmt"

const (
	// RadixBits is the number of bits encoded by one word.
	RadixBits = 10

	// MaxGroups bounds the number of groups and members per group; both are
	// stored in 4-bit fields.
	MaxGroups = 16

	// MaxIterationExponent is the largest value the 4-bit field holds.
	MaxIterationExponent = 15

	// MinSecretLength and MaxSecretLength bound the master secret in bytes.
	MinSecretLength = 16
	MaxSecretLength = 32

	// MaxIdentifier is the largest 15-bit share set identifier.
	MaxIdentifier = 1<<15 - 1

	idExpWords      = 2
	groupFieldWords = 2
	metadataWords   = idExpWords + groupFieldWords + ChecksumWords

	// MinMnemonicWords is the length of a mnemonic carrying a 16-byte secret.
	MinMnemonicWords = metadataWords + (MinSecretLength*8+RadixBits-1)/RadixBits

	// MaxMnemonicWords is the length of a mnemonic carrying a 32-byte secret.
	MaxMnemonicWords = metadataWords + (MaxSecretLength*8+RadixBits-1)/RadixBits
)

// Share is one member share together with the metadata needed to combine
// it. Group and member indexes are 0-based; thresholds and counts are the
// real values, not the encoded value-minus-one.
type Share struct {
	Identifier        uint16
	Extendable        bool
	IterationExponent int
	GroupIndex        int
	GroupThreshold    int
	GroupCount        int
	MemberIndex       int
	MemberThreshold   int
	Value             []byte
}

// String summarizes the share metadata. The value is never included.
func (s *Share) String() string {
	return fmt.Sprintf("share id=%d group=%d/%d (threshold %d) member=%d (threshold %d)",
		s.Identifier, s.GroupIndex+1, s.GroupCount, s.GroupThreshold, s.MemberIndex+1, s.MemberThreshold)
}

// validate checks every field against its encoded width.
func (s *Share) validate() error {
	switch {
	case s.Identifier > MaxIdentifier:
		return &MnemonicError{Reason: fmt.Sprintf("identifier %d exceeds 15 bits", s.Identifier)}
	case s.IterationExponent < 0 || s.IterationExponent > MaxIterationExponent:
		return &MnemonicError{Reason: fmt.Sprintf("iteration exponent %d out of range", s.IterationExponent)}
	case s.GroupCount < 1 || s.GroupCount > MaxGroups:
		return &MnemonicError{Reason: fmt.Sprintf("group count %d out of range", s.GroupCount)}
	case s.GroupThreshold < 1 || s.GroupThreshold > s.GroupCount:
		return &MnemonicError{Reason: fmt.Sprintf("group threshold %d out of range for %d groups", s.GroupThreshold, s.GroupCount)}
	case s.GroupIndex < 0 || s.GroupIndex >= MaxGroups:
		return &MnemonicError{Reason: fmt.Sprintf("group index %d out of range", s.GroupIndex)}
	case s.MemberIndex < 0 || s.MemberIndex >= MaxGroups:
		return &MnemonicError{Reason: fmt.Sprintf("member index %d out of range", s.MemberIndex)}
	case s.MemberThreshold < 1 || s.MemberThreshold > MaxGroups:
		return &MnemonicError{Reason: fmt.Sprintf("member threshold %d out of range", s.MemberThreshold)}
	}
	return validateSecretLength(len(s.Value))
}

func validateSecretLength(n int) error {
	if n < MinSecretLength || n > MaxSecretLength || n%2 != 0 {
		return &ConfigError{
			Field:   "secret",
			Message: fmt.Sprintf("length must be an even number of bytes in [%d, %d], got %d", MinSecretLength, MaxSecretLength, n),
		}
	}
	return nil
}
