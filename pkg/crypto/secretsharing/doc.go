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

// Package secretsharing implements Shamir's Secret Sharing over GF(256).
//
// A secret of up to 32 bytes becomes the constant term of a random polynomial
// of degree threshold-1, evaluated independently at every byte offset. Share i
// is the polynomial's value at x = i+1; x = 0 is reserved for the secret
// itself. Any threshold shares recover the secret with Lagrange interpolation
// at x = 0, while fewer shares reveal nothing about it.
//
// # Usage
//
//	rng, _ := rand.NewResolver(rand.ModeSoftware)
//	shamir, err := secretsharing.NewShamir(&secretsharing.ShareConfig{
//	    Threshold:   3,
//	    TotalShares: 5,
//	}, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	shares, err := shamir.Split(secret)
//	...
//	recovered, err := secretsharing.Combine(shares[1:4])
//
// # Recovery without detection
//
// Combine interpolates exactly the points it is given. Supplying fewer than
// threshold shares silently produces a wrong value; integrity is the job of
// the encoding layer (see package slip39), not of the arithmetic.
//
// # Constraints
//
//   - 1 <= threshold <= total shares <= 255
//   - 1 <= len(secret) <= 32
//   - share indexes are 1-255 and pairwise distinct within one Combine call
package secretsharing
