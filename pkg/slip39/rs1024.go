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

// RS1024 is a Reed-Solomon code over GF(1024) that detects any error in up
// to 3 words and fails to detect a random corruption with probability
// below 1e-9.

// ChecksumWords is the number of words occupied by the checksum.
const ChecksumWords = 3

const (
	customizationNonExtendable = "shamir"
	customizationExtendable    = "shamir_extendable"
)

var rs1024Generator = [10]uint32{
	0xE0E040,
	0x1C1C080,
	0x3838100,
	0x7070200,
	0xE0E0009,
	0x1C0C2412,
	0x38086C24,
	0x3090FC48,
	0x21B1F890,
	0x3F3F120,
}

func customizationString(extendable bool) string {
	if extendable {
		return customizationExtendable
	}
	return customizationNonExtendable
}

func rs1024Polymod(values []int) uint32 {
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 20
		chk = (chk&0xFFFFF)<<10 ^ uint32(v)
		for i := 0; i < 10; i++ {
			if (b>>i)&1 != 0 {
				chk ^= rs1024Generator[i]
			}
		}
	}
	return chk
}

func customizationValues(extendable bool, data []int, extra int) []int {
	cs := customizationString(extendable)
	values := make([]int, 0, len(cs)+len(data)+extra)
	for i := 0; i < len(cs); i++ {
		values = append(values, int(cs[i]))
	}
	return append(values, data...)
}

// rs1024Checksum returns the checksum words to append to data.
func rs1024Checksum(extendable bool, data []int) [ChecksumWords]int {
	values := customizationValues(extendable, data, ChecksumWords)
	values = append(values, 0, 0, 0)
	polymod := rs1024Polymod(values) ^ 1

	var out [ChecksumWords]int
	for i := 0; i < ChecksumWords; i++ {
		out[i] = int(polymod>>(RadixBits*(ChecksumWords-1-i))) & (WordlistSize - 1)
	}
	return out
}

// rs1024Verify checks data whose last ChecksumWords entries are the checksum.
func rs1024Verify(extendable bool, data []int) bool {
	return rs1024Polymod(customizationValues(extendable, data, 0)) == 1
}
