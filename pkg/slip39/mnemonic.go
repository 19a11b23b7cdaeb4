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
	"fmt"
	"strings"
)

// Words encodes the share as a list of wordlist words, checksum included.
func (s *Share) Words() ([]string, error) {
	indexes, err := s.encode()
	if err != nil {
		return nil, err
	}
	wl := DefaultWordlist()
	words := make([]string, len(indexes))
	for i, idx := range indexes {
		words[i], _ = wl.Word(idx)
	}
	return words, nil
}

// Mnemonic encodes the share as a single space-separated phrase.
func (s *Share) Mnemonic() (string, error) {
	words, err := s.Words()
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// Checksum returns the three RS1024 checksum words of the encoded share as
// 10-bit values.
func (s *Share) Checksum() ([ChecksumWords]int, error) {
	indexes, err := s.encode()
	if err != nil {
		return [ChecksumWords]int{}, err
	}
	var out [ChecksumWords]int
	copy(out[:], indexes[len(indexes)-ChecksumWords:])
	return out, nil
}

// encode packs the share into 10-bit word values.
func (s *Share) encode() ([]int, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	ext := 0
	if s.Extendable {
		ext = 1
	}
	idExp := int(s.Identifier)<<5 | ext<<4 | s.IterationExponent
	groups := s.GroupIndex<<16 |
		(s.GroupThreshold-1)<<12 |
		(s.GroupCount-1)<<8 |
		s.MemberIndex<<4 |
		(s.MemberThreshold - 1)

	value := encodeValue(s.Value)
	data := make([]int, 0, metadataWords+len(value))
	data = append(data, idExp>>RadixBits, idExp&(WordlistSize-1))
	data = append(data, groups>>RadixBits, groups&(WordlistSize-1))
	data = append(data, value...)

	checksum := rs1024Checksum(s.Extendable, data)
	return append(data, checksum[:]...), nil
}

// ParseMnemonic decodes a space-separated mnemonic. Case and surplus
// whitespace are ignored.
func ParseMnemonic(mnemonic string) (*Share, error) {
	return DecodeWords(strings.Fields(mnemonic))
}

// ValidateMnemonic reports whether mnemonic decodes to a well-formed share.
func ValidateMnemonic(mnemonic string) error {
	_, err := ParseMnemonic(mnemonic)
	return err
}

// DecodeWords decodes a share from its words. Words are resolved first,
// then the length and padding are checked, then the checksum. No field is
// interpreted before the checksum verifies.
func DecodeWords(words []string) (*Share, error) {
	wl := DefaultWordlist()
	data := make([]int, len(words))
	for i, w := range words {
		idx, ok := wl.Index(strings.TrimSpace(w))
		if !ok {
			return nil, &InvalidWordError{Word: w, Position: i}
		}
		data[i] = idx
	}

	if len(data) < MinMnemonicWords {
		return nil, &MnemonicError{
			Reason: fmt.Sprintf("mnemonic must be at least %d words, got %d", MinMnemonicWords, len(data)),
		}
	}
	if len(data) > MaxMnemonicWords {
		return nil, &MnemonicError{
			Reason: fmt.Sprintf("mnemonic must be at most %d words, got %d", MaxMnemonicWords, len(data)),
		}
	}
	valueWords := len(data) - metadataWords
	padding := (RadixBits * valueWords) % 16
	if padding > 8 {
		return nil, &MnemonicError{Reason: fmt.Sprintf("invalid mnemonic length %d", len(data))}
	}

	extendable := (data[1]>>4)&1 == 1
	if !rs1024Verify(extendable, data) {
		return nil, &ChecksumError{Words: len(data)}
	}

	idExp := data[0]<<RadixBits | data[1]
	groups := data[2]<<RadixBits | data[3]
	share := &Share{
		Identifier:        uint16(idExp >> 5),
		Extendable:        extendable,
		IterationExponent: idExp & 0xF,
		GroupIndex:        groups >> 16,
		GroupThreshold:    (groups>>12)&0xF + 1,
		GroupCount:        (groups>>8)&0xF + 1,
		MemberIndex:       (groups >> 4) & 0xF,
		MemberThreshold:   groups&0xF + 1,
	}
	if share.GroupThreshold > share.GroupCount {
		return nil, &MnemonicError{
			Reason: fmt.Sprintf("group threshold %d exceeds group count %d", share.GroupThreshold, share.GroupCount),
		}
	}

	value, err := decodeValue(data[idExpWords+groupFieldWords:len(data)-ChecksumWords], (RadixBits*valueWords-padding)/8)
	if err != nil {
		return nil, err
	}
	share.Value = value
	return share, nil
}

// encodeValue splits value into 10-bit words, most significant first, with
// zero bits padding the front.
func encodeValue(value []byte) []int {
	words := make([]int, (len(value)*8+RadixBits-1)/RadixBits)
	var acc uint32
	bits := 0
	pos := len(words) - 1
	for i := len(value) - 1; i >= 0; i-- {
		acc |= uint32(value[i]) << bits
		bits += 8
		for bits >= RadixBits {
			words[pos] = int(acc & (WordlistSize - 1))
			pos--
			acc >>= RadixBits
			bits -= RadixBits
		}
	}
	if bits > 0 {
		words[pos] = int(acc)
	}
	return words
}

// decodeValue is the inverse of encodeValue. The padding bits must be zero.
func decodeValue(words []int, size int) ([]byte, error) {
	out := make([]byte, size)
	var acc uint32
	bits := 0
	pos := size - 1
	for i := len(words) - 1; i >= 0; i-- {
		acc |= uint32(words[i]) << bits
		bits += RadixBits
		for bits >= 8 && pos >= 0 {
			out[pos] = byte(acc)
			pos--
			acc >>= 8
			bits -= 8
		}
	}
	if acc != 0 {
		return nil, &MnemonicError{Reason: "padding bits are not zero"}
	}
	return out, nil
}
