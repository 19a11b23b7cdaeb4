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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-slip39/pkg/gf256"
)

func TestPolynomial_Evaluate(t *testing.T) {
	f := gf256.Default()

	// p(x) = 7 + 3x + 2x^2, single byte offset.
	p := polynomial{{7}, {3}, {2}}

	assert.Equal(t, []byte{7}, p.evaluate(f, 0))

	for x := 1; x < 256; x++ {
		xb := byte(x)
		want := f.Add(f.Add(7, f.Mul(3, xb)), f.Mul(2, f.Mul(xb, xb)))
		require.Equal(t, []byte{want}, p.evaluate(f, xb), "x=%d", x)
	}

	assert.Nil(t, polynomial{}.evaluate(f, 1))
}

func TestPolynomial_EvaluatePerOffset(t *testing.T) {
	f := gf256.Default()
	p := polynomial{{1, 2, 3}, {4, 5, 6}}

	got := p.evaluate(f, 9)
	for k := 0; k < 3; k++ {
		scalar := polynomial{{p[0][k]}, {p[1][k]}}
		assert.Equal(t, scalar.evaluate(f, 9)[0], got[k])
	}
}

func TestInterpolate_RecoversConstantTerm(t *testing.T) {
	f := gf256.Default()
	p := polynomial{{0xAB, 0x00}, {0x11, 0xFF}, {0x5C, 0x01}}

	points := []Share{
		{Index: 4, Value: p.evaluate(f, 4)},
		{Index: 200, Value: p.evaluate(f, 200)},
		{Index: 17, Value: p.evaluate(f, 17)},
	}
	got, err := interpolate(f, points, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAB, 0x00}, got)

	got, err = interpolate(f, points, 99)
	require.NoError(t, err)
	assert.Equal(t, p.evaluate(f, 99), got)
}

func TestInterpolate_DuplicateIndexFailsInField(t *testing.T) {
	f := gf256.Default()
	points := []Share{{Index: 5, Value: []byte{1}}, {Index: 5, Value: []byte{2}}}
	_, err := interpolate(f, points, 0)
	assert.ErrorIs(t, err, gf256.ErrDivisionByZero)
}
