// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec

import (
	"math/big"
)

// The helpers in this file operate on field elements, integers reduced into
// [0, P).  Every helper returns a freshly allocated value so that inputs are
// never aliased or modified.

// ModInverse returns the multiplicative inverse of a modulo m.  The boolean
// is false when no inverse exists, which includes every a ≡ 0 (mod m).
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	reduced := new(big.Int).Mod(a, m)
	if reduced.Sign() == 0 {
		return nil, false
	}
	inv := new(big.Int).ModInverse(reduced, m)
	if inv == nil {
		return nil, false
	}
	return inv, true
}

// fieldReduce returns a mod P.
func (params *Params) fieldReduce(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, params.P)
}

// fieldAdd returns a + b mod P.
func (params *Params) fieldAdd(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, params.P)
}

// fieldSub returns a - b mod P.
func (params *Params) fieldSub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, params.P)
}

// fieldMul returns a * b mod P.
func (params *Params) fieldMul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, params.P)
}

// fieldSquare returns a² mod P.
func (params *Params) fieldSquare(a *big.Int) *big.Int {
	return params.fieldMul(a, a)
}

// fieldInverse returns a⁻¹ mod P, or false when a ≡ 0.
func (params *Params) fieldInverse(a *big.Int) (*big.Int, bool) {
	return ModInverse(a, params.P)
}

// curveRHS returns x³ + ax + b mod P.
func (params *Params) curveRHS(x *big.Int) *big.Int {
	x3 := params.fieldMul(params.fieldSquare(x), x)
	ax := params.fieldMul(params.A, x)
	return params.fieldAdd(params.fieldAdd(x3, ax), params.B)
}

// DecompressY returns the y coordinate for x whose parity matches odd.  The
// boolean is false when x is not the x coordinate of any curve point.
func (params *Params) DecompressY(x *big.Int, odd bool) (*big.Int, bool) {
	if x.Sign() < 0 || x.Cmp(params.P) >= 0 {
		return nil, false
	}

	// y = ±sqrt(x³ + ax + b), computed as rhs^((P+1)/4) since P ≡ 3 mod 4.
	rhs := params.curveRHS(x)
	y := new(big.Int).Exp(rhs, params.sqrtExp, params.P)
	if params.fieldSquare(y).Cmp(rhs) != 0 {
		return nil, false
	}

	if odd != (y.Bit(0) == 1) {
		y.Sub(params.P, y)
		y.Mod(y, params.P)
	}
	if odd != (y.Bit(0) == 1) {
		// Only possible for y = 0, which has no odd root.
		return nil, false
	}
	return y, true
}
