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

package gf256

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ExpTableIsPermutation(t *testing.T) {
	f := New()

	seen := make(map[byte]bool, Order)
	for i := 0; i < Order; i++ {
		v := f.Exp(i)
		require.NotZero(t, v, "exp[%d] must be non-zero", i)
		require.False(t, seen[v], "exp[%d]=0x%02x repeats", i, v)
		seen[v] = true
	}
	assert.Len(t, seen, Order)
}

func TestDefault_ReturnsSharedInstance(t *testing.T) {
	var wg sync.WaitGroup
	fields := make([]*Field, 16)
	for i := range fields {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fields[i] = Default()
		}(i)
	}
	wg.Wait()

	for _, f := range fields {
		assert.Same(t, fields[0], f)
	}
	assert.Equal(t, *New(), *Default())
}

func TestAdd_SelfInverse(t *testing.T) {
	f := Default()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			x, y := byte(a), byte(b)
			if f.Add(f.Add(x, y), y) != x {
				t.Fatalf("add(add(%d,%d),%d) != %d", a, b, b, a)
			}
			if f.Sub(x, y) != f.Add(x, y) {
				t.Fatalf("sub(%d,%d) != add(%d,%d)", a, b, a, b)
			}
		}
		if f.Add(byte(a), byte(a)) != 0 {
			t.Fatalf("add(%d,%d) != 0", a, a)
		}
	}
}

func TestMul_Identities(t *testing.T) {
	f := Default()
	for a := 0; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, x, f.Mul(x, 1))
		assert.Equal(t, byte(0), f.Mul(x, 0))
		assert.Equal(t, byte(0), f.Mul(0, x))
	}
}

func TestMul_KnownVectors(t *testing.T) {
	// Products from FIPS-197 section 4.2.
	f := Default()
	assert.Equal(t, byte(0xC1), f.Mul(0x57, 0x83))
	assert.Equal(t, byte(0xFE), f.Mul(0x57, 0x13))
	assert.Equal(t, byte(0xAE), f.Mul(0x57, 0x02))
	assert.Equal(t, byte(0x47), f.Mul(0x57, 0x04))
}

func TestMul_CommutativeAndDistributive(t *testing.T) {
	f := Default()
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 5 {
			for c := 0; c < 256; c += 11 {
				x, y, z := byte(a), byte(b), byte(c)
				require.Equal(t, f.Mul(x, y), f.Mul(y, x))
				require.Equal(t, f.Add(f.Mul(x, y), f.Mul(x, z)), f.Mul(x, f.Add(y, z)))
			}
		}
	}
}

func TestInverse(t *testing.T) {
	f := Default()
	for a := 1; a < 256; a++ {
		inv, err := f.Inverse(byte(a))
		require.NoError(t, err)
		require.Equal(t, byte(1), f.Mul(byte(a), inv), "a=%d", a)
	}
}

func TestInverse_ZeroFails(t *testing.T) {
	_, err := Default().Inverse(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDivisionByZero))

	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "inverse", domainErr.Op)
}

func TestDiv(t *testing.T) {
	f := Default()
	for a := 0; a < 256; a++ {
		for b := 1; b < 256; b++ {
			q, err := f.Div(byte(a), byte(b))
			require.NoError(t, err)
			require.Equal(t, byte(a), f.Mul(q, byte(b)))
		}
	}

	_, err := f.Div(5, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPow(t *testing.T) {
	f := Default()

	pow := func(base byte, exp int) byte {
		t.Helper()
		v, err := f.Pow(base, exp)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, byte(1), pow(0, 0))
	assert.Equal(t, byte(0), pow(0, 3))

	for a := 1; a < 256; a++ {
		x := byte(a)
		assert.Equal(t, byte(1), pow(x, 0))
		assert.Equal(t, x, pow(x, 1))
		assert.Equal(t, f.Mul(x, f.Mul(x, x)), pow(x, 3))
		assert.Equal(t, byte(1), pow(x, Order))

		inv, err := f.Inverse(x)
		require.NoError(t, err)
		assert.Equal(t, inv, pow(x, -1))
	}
}

func TestPow_ZeroNegativeExponentFails(t *testing.T) {
	f := Default()
	for _, exp := range []int{-1, -2, -Order} {
		_, err := f.Pow(0, exp)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDivisionByZero)

		var domainErr *DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "pow", domainErr.Op)
	}
}

func TestLog(t *testing.T) {
	f := Default()
	for i := 0; i < Order; i++ {
		l, err := f.Log(f.Exp(i))
		require.NoError(t, err)
		assert.Equal(t, i, l)
	}

	_, err := f.Log(0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func BenchmarkMul(b *testing.B) {
	f := Default()
	for i := 0; i < b.N; i++ {
		_ = f.Mul(byte(i), byte(i>>8))
	}
}
