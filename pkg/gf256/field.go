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

// Package gf256 implements arithmetic in the finite field GF(2^8).
//
// Elements are bytes. The field is defined by the AES reduction polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B). Addition and subtraction are XOR,
// multiplication is carry-less with reduction, and inversion, division and
// exponentiation use exponential/logarithm tables generated from 0x03.
//
// A Field holds the lookup tables and is immutable once constructed, so a
// single instance can be shared by any number of goroutines. Default returns
// a process-wide instance that is built on first use.
package gf256

import (
	"sync"
)

const (
	// Polynomial is the irreducible reduction polynomial x^8 + x^4 + x^3 + x + 1.
	Polynomial = 0x11B

	// Generator is the primitive element used to build the exp/log tables.
	Generator = 0x03

	// Order is the size of the multiplicative group (number of non-zero elements).
	Order = 255
)

// Field holds precomputed exponential and logarithm tables for GF(256).
// The zero value is not usable; construct with New or Default.
type Field struct {
	// exp is doubled so exp[log[a]+log[b]] never needs a modulo.
	exp [2 * Order]byte
	log [256]byte
}

var (
	defaultField *Field
	defaultOnce  sync.Once
)

// Default returns the shared Field instance, building its tables on first use.
// Concurrent first calls are safe; later calls return the same instance.
func Default() *Field {
	defaultOnce.Do(func() {
		defaultField = New()
	})
	return defaultField
}

// New builds a Field by walking the powers of the generator.
func New() *Field {
	f := &Field{}
	var x byte = 1
	for i := 0; i < Order; i++ {
		f.exp[i] = x
		f.exp[i+Order] = x
		f.log[x] = byte(i)
		x = mul(x, Generator)
	}
	return f
}

// Add returns a + b, which is XOR in characteristic 2.
func (f *Field) Add(a, b byte) byte {
	return a ^ b
}

// Sub returns a - b. Subtraction and addition coincide in GF(2^8).
func (f *Field) Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns a * b.
func (f *Field) Mul(a, b byte) byte {
	return mul(a, b)
}

// Inverse returns the multiplicative inverse of a.
// Zero has no inverse and yields a *DomainError.
func (f *Field) Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, &DomainError{Op: "inverse", Operand: a}
	}
	return f.exp[Order-int(f.log[a])], nil
}

// Div returns a / b, failing with a *DomainError when b is zero.
func (f *Field) Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, &DomainError{Op: "divide", Operand: a}
	}
	if a == 0 {
		return 0, nil
	}
	return f.exp[int(f.log[a])+Order-int(f.log[b])], nil
}

// Pow returns base raised to exp. Pow(0, 0) is 1 by convention; zero
// raised to a negative power needs its inverse and yields a *DomainError.
func (f *Field) Pow(base byte, exp int) (byte, error) {
	if exp == 0 {
		return 1, nil
	}
	if base == 0 {
		if exp < 0 {
			return 0, &DomainError{Op: "pow", Operand: base}
		}
		return 0, nil
	}
	e := (int(f.log[base]) * (exp % Order)) % Order
	if e < 0 {
		e += Order
	}
	return f.exp[e], nil
}

// Exp returns Generator^i.
func (f *Field) Exp(i int) byte {
	i %= Order
	if i < 0 {
		i += Order
	}
	return f.exp[i]
}

// Log returns the discrete logarithm of a to the base Generator.
func (f *Field) Log(a byte) (int, error) {
	if a == 0 {
		return 0, &DomainError{Op: "log", Operand: a}
	}
	return int(f.log[a]), nil
}

// mul is peasant multiplication: shift-and-add with reduction by the
// polynomial whenever bit 8 of the running multiplicand is set.
func mul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= Polynomial & 0xFF
		}
		b >>= 1
	}
	return p
}
