// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ec implements affine point arithmetic over short Weierstrass curves
y² = x³ + ax + b defined over a prime field, with the secp256k1 parameters
provided by S256.

All arithmetic is expressed as methods on an immutable *Params value rather
than on a process wide "current curve", so the same code serves any curve
whose field prime is congruent to 3 mod 4 (a requirement of DecompressY).
Params values and Points are never modified after construction and may be
shared freely between goroutines.

Degenerate cases are ordinary results.  Adding a point to its negation,
doubling a point with y = 0 and multiplying by a scalar congruent to zero all
yield the point at infinity; none of the functions in this package panic on
valid curve points.

References:
  [SECG]: Recommended Elliptic Curve Domain Parameters
    https://www.secg.org/sec2-v2.pdf
*/
package ec
