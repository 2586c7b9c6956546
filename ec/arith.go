// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec

import (
	"math/big"
)

// Negate returns -p.
func (params *Params) Negate(p Point) Point {
	if p.infinity {
		return p
	}
	return Point{
		x:          new(big.Int).Set(p.x),
		y:          params.fieldSub(new(big.Int), p.y),
		compressed: p.compressed,
	}
}

// Add returns p + q.  The result carries the compression flag of p.
func (params *Params) Add(p, q Point) Point {
	// A point at infinity is the identity according to the group law for
	// elliptic curve cryptography.  Thus, ∞ + Q = Q and P + ∞ = P.
	if p.infinity {
		return q.WithCompression(p.compressed)
	}
	if q.infinity {
		return p
	}

	// When the x coordinates are the same for two points on the curve, the
	// y coordinates either must be the same, in which case it is point
	// doubling, or they are opposite and the result is the point at
	// infinity per the group law.
	if p.x.Cmp(q.x) == 0 {
		if p.y.Cmp(q.y) == 0 {
			return params.Double(p)
		}
		return Infinity().WithCompression(p.compressed)
	}

	// λ = (y2 - y1) / (x2 - x1)
	inv, ok := params.fieldInverse(params.fieldSub(q.x, p.x))
	if !ok {
		return Infinity().WithCompression(p.compressed)
	}
	lambda := params.fieldMul(params.fieldSub(q.y, p.y), inv)

	// x3 = λ² - x1 - x2
	// y3 = λ(x1 - x3) - y1
	x3 := params.fieldSub(params.fieldSub(params.fieldSquare(lambda), p.x), q.x)
	y3 := params.fieldSub(params.fieldMul(lambda, params.fieldSub(p.x, x3)), p.y)
	return Point{x: x3, y: y3, compressed: p.compressed}
}

// Double returns 2p.
func (params *Params) Double(p Point) Point {
	// Doubling a point at infinity is still infinity, as is doubling a
	// point with a vertical tangent.
	if p.infinity {
		return p
	}
	inv, ok := params.fieldInverse(params.fieldAdd(p.y, p.y))
	if !ok {
		return Infinity().WithCompression(p.compressed)
	}

	// λ = (3x² + a) / 2y
	x2 := params.fieldSquare(p.x)
	num := params.fieldAdd(params.fieldAdd(params.fieldAdd(x2, x2), x2), params.A)
	lambda := params.fieldMul(num, inv)

	// x3 = λ² - 2x
	// y3 = λ(x - x3) - y
	x3 := params.fieldSub(params.fieldSquare(lambda), params.fieldAdd(p.x, p.x))
	y3 := params.fieldSub(params.fieldMul(lambda, params.fieldSub(p.x, x3)), p.y)
	return Point{x: x3, y: y3, compressed: p.compressed}
}

// reduceScalar returns k mod N as a non-negative integer.
func (params *Params) reduceScalar(k *big.Int) *big.Int {
	if k.Sign() >= 0 && k.Cmp(params.N) < 0 {
		return k
	}
	return new(big.Int).Mod(k, params.N)
}

// Multiply returns k*p using the left to right binary method.  k is reduced
// modulo N first, so multiplying by zero or any multiple of N yields the
// point at infinity.  The result carries the compression flag of p.
func (params *Params) Multiply(k *big.Int, p Point) Point {
	k = params.reduceScalar(k)

	// Point Q = ∞ (point at infinity).
	q := Infinity().WithCompression(p.compressed)
	if p.infinity {
		return q
	}

	// Double and add as necessary depending on the bits set in the scalar.
	for i := k.BitLen() - 1; i >= 0; i-- {
		q = params.Double(q)
		if k.Bit(i) == 1 {
			q = params.Add(q, p)
		}
	}
	return q
}

// ScalarBaseMult returns k*G.
func (params *Params) ScalarBaseMult(k *big.Int) Point {
	return params.Multiply(k, params.G)
}

// SumOfTwoMultiplies returns u1*p + u2*q using Shamir's trick: the bits of
// both scalars are processed together from the most significant down, so the
// accumulator is doubled once per bit rather than once per bit per scalar.
// At each step p, q or the precomputed p+q is added depending on which of
// the two bits are set.
//
// The result carries the compression flag of p.
func (params *Params) SumOfTwoMultiplies(p Point, u1 *big.Int, q Point, u2 *big.Int) Point {
	u1 = params.reduceScalar(u1)
	u2 = params.reduceScalar(u2)
	pq := params.Add(p, q)

	bits := u1.BitLen()
	if u2.BitLen() > bits {
		bits = u2.BitLen()
	}

	r := Infinity().WithCompression(p.compressed)
	for i := bits - 1; i >= 0; i-- {
		r = params.Double(r)

		switch b1, b2 := u1.Bit(i), u2.Bit(i); {
		case b1 == 1 && b2 == 1:
			r = params.Add(r, pq)
		case b1 == 1:
			r = params.Add(r, p)
		case b2 == 1:
			r = params.Add(r, q)
		}
	}
	return r.WithCompression(p.compressed)
}
