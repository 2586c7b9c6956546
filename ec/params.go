// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec

import (
	"math/big"
	"sync"
)

// Params holds the domain parameters of a curve.  The big integers must be
// treated as read only.
type Params struct {
	Name    string
	P       *big.Int // field prime
	A       *big.Int // curve coefficient a
	B       *big.Int // curve coefficient b
	G       Point    // base point
	N       *big.Int // order of G
	H       int      // cofactor
	BitSize int      // bit length of P

	// sqrtExp is (P+1)/4, used to calculate square roots via
	// exponentiation.
	sqrtExp *big.Int
}

// NewParams returns curve parameters for the given domain values.  gx and gy
// must describe a point on the curve and p must be congruent to 3 mod 4.
func NewParams(name string, p, a, b, gx, gy, n *big.Int, h int) *Params {
	params := &Params{
		Name:    name,
		P:       new(big.Int).Set(p),
		A:       new(big.Int).Set(a),
		B:       new(big.Int).Set(b),
		N:       new(big.Int).Set(n),
		H:       h,
		BitSize: p.BitLen(),
	}
	params.G = NewPoint(gx, gy, false)
	params.sqrtExp = new(big.Int).Add(p, big.NewInt(1))
	params.sqrtExp.Rsh(params.sqrtExp, 2)
	return params
}

// fromHex converts the passed hex string into a big integer pointer and will
// panic is there is an error.  This is only provided for the hard-coded
// constants so errors in the source code can bet detected.  It will only (and
// must only) be called for initialization purposes.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

// Curve parameters taken from [SECG] section 2.4.1.
var (
	initonce  sync.Once
	secp256k1 *Params
)

func initS256() {
	secp256k1 = NewParams("secp256k1",
		fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"),
		new(big.Int),
		big.NewInt(7),
		fromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"),
		fromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"),
		fromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"),
		1)
}

// S256 returns the parameters of the secp256k1 curve.  They are built once
// on first use.
func S256() *Params {
	initonce.Do(initS256)
	return secp256k1
}

// ByteSize returns the number of bytes needed to hold a field element.
func (params *Params) ByteSize() int {
	return (params.BitSize + 7) / 8
}

// IsValidScalar returns whether k lies in [1, N-1].
func (params *Params) IsValidScalar(k *big.Int) bool {
	return k.Sign() > 0 && k.Cmp(params.N) < 0
}
