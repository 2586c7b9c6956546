// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec

import (
	"fmt"
	"math/big"
)

// Point is either the point at infinity or an affine point (x, y).  It also
// records whether it should be serialized in compressed form, which is an
// encoding property and plays no part in the arithmetic or in Equal.
//
// Points are immutable; the accessors return copies of the coordinates.
type Point struct {
	x, y       *big.Int
	infinity   bool
	compressed bool
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{infinity: true}
}

// NewPoint returns the affine point (x, y).  The coordinates are copied.  No
// curve membership check is performed; see Params.IsOnCurve.
func NewPoint(x, y *big.Int, compressed bool) Point {
	return Point{
		x:          new(big.Int).Set(x),
		y:          new(big.Int).Set(y),
		compressed: compressed,
	}
}

// IsInfinity returns whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.infinity
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if p.infinity {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if p.infinity {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// IsCompressed returns whether p prefers the compressed serialization.
func (p Point) IsCompressed() bool {
	return p.compressed
}

// WithCompression returns a copy of p with the compression flag set.
func (p Point) WithCompression(compressed bool) Point {
	p.compressed = compressed
	return p
}

// Equal returns whether p and q are the same group element.
func (p Point) Equal(q Point) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// String returns a human readable form of the point.
func (p Point) String() string {
	if p.infinity {
		return "(infinity)"
	}
	return fmt.Sprintf("(%064x, %064x)", p.x, p.y)
}

// IsOnCurve returns whether p is the point at infinity or an affine point
// with reduced coordinates satisfying the curve equation.
func (params *Params) IsOnCurve(p Point) bool {
	if p.infinity {
		return true
	}
	if p.x.Sign() < 0 || p.x.Cmp(params.P) >= 0 ||
		p.y.Sign() < 0 || p.y.Cmp(params.P) >= 0 {
		return false
	}
	return params.fieldSquare(p.y).Cmp(params.curveRHS(p.x)) == 0
}
