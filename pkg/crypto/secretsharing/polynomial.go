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
	"github.com/jeremyhahn/go-slip39/pkg/gf256"
)

// polynomial holds byte-vector coefficients, lowest degree first. Every
// coefficient has the same length; offset k of all coefficients forms one
// scalar polynomial.
type polynomial [][]byte

// evaluate computes p(x) at every byte offset using Horner's method:
// p(x) = a0 + x(a1 + x(a2 + ... + x*an)).
func (p polynomial) evaluate(f *gf256.Field, x byte) []byte {
	if len(p) == 0 {
		return nil
	}
	size := len(p[0])
	result := make([]byte, size)
	copy(result, p[len(p)-1])

	for i := len(p) - 2; i >= 0; i-- {
		coeff := p[i]
		for k := 0; k < size; k++ {
			result[k] = f.Add(f.Mul(result[k], x), coeff[k])
		}
	}
	return result
}

// interpolate evaluates at x the unique polynomial of degree len(points)-1
// passing through points, independently per byte offset. Callers guarantee
// the points are non-empty, share one value length and have distinct indexes.
func interpolate(f *gf256.Field, points []Share, x byte) ([]byte, error) {
	size := len(points[0].Value)
	result := make([]byte, size)

	for i, pi := range points {
		// Lagrange basis l_i(x) = prod_{j != i} (x - xj) / (xi - xj)
		var numerator, denominator byte = 1, 1
		for j, pj := range points {
			if i == j {
				continue
			}
			numerator = f.Mul(numerator, f.Sub(x, pj.Index))
			denominator = f.Mul(denominator, f.Sub(pi.Index, pj.Index))
		}

		basis, err := f.Div(numerator, denominator)
		if err != nil {
			return nil, err
		}

		for k := 0; k < size; k++ {
			result[k] = f.Add(result[k], f.Mul(pi.Value[k], basis))
		}
	}
	return result, nil
}
