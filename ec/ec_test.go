// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec

import (
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	dcrsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// scalarGen draws scalars in [1, N-1].
func scalarGen(params *Params) *rapid.Generator[*big.Int] {
	return rapid.Custom(func(t *rapid.T) *big.Int {
		b := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "scalar")
		k := new(big.Int).SetBytes(b)
		k.Mod(k, new(big.Int).Sub(params.N, big.NewInt(1)))
		return k.Add(k, big.NewInt(1))
	})
}

// TestS256Params ensures the curve constants agree with the decred
// secp256k1 implementation and that the base point is on the curve.
func TestS256Params(t *testing.T) {
	params := S256()
	want := dcrsecp.S256().Params()

	require.Equal(t, 0, params.P.Cmp(want.P))
	require.Equal(t, 0, params.N.Cmp(want.N))
	require.Equal(t, 0, params.B.Cmp(want.B))
	require.Equal(t, 0, params.G.X().Cmp(want.Gx))
	require.Equal(t, 0, params.G.Y().Cmp(want.Gy))
	require.Equal(t, 256, params.BitSize)
	require.Equal(t, 32, params.ByteSize())
	require.Equal(t, 1, params.H)
	require.True(t, params.IsOnCurve(params.G))
	require.Same(t, params, S256())
}

// TestSmallMultiples ensures the first few multiples of G match their
// published values.
func TestSmallMultiples(t *testing.T) {
	params := S256()
	tests := []struct {
		k    int64
		x, y string
	}{{
		k: 1,
		x: "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798",
		y: "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8",
	}, {
		k: 2,
		x: "C6047F9441ED7D6D3045406E95C07CD85C778E4B8CEF3CA7ABAC09B95C709EE5",
		y: "1AE168FEA63DC339A3C58419466CEAEEF7F632653266D0E1236431A950CFE52A",
	}, {
		k: 3,
		x: "F9308A019258C31049344F85F89D5229B531C845836F99B08601F113BCE036F9",
		y: "388F7B0F632DE8140FE337E62A37F3566500A99934C2231B6CB9FD7584B8E672",
	}}

	for _, test := range tests {
		got := params.ScalarBaseMult(big.NewInt(test.k))
		require.Equal(t, 0, got.X().Cmp(fromHex(test.x)), "k=%d x", test.k)
		require.Equal(t, 0, got.Y().Cmp(fromHex(test.y)), "k=%d y", test.k)
		require.True(t, params.IsOnCurve(got))
	}

	// 2G computed by doubling and by addition must agree.
	require.True(t, params.Double(params.G).Equal(params.Add(params.G, params.G)))
}

// TestInfinityRules ensures the identity and degenerate cases produce the
// point at infinity rather than failing.
func TestInfinityRules(t *testing.T) {
	params := S256()
	g := params.G
	inf := Infinity()

	require.True(t, params.Add(inf, g).Equal(g))
	require.True(t, params.Add(g, inf).Equal(g))
	require.True(t, params.Add(inf, inf).IsInfinity())
	require.True(t, params.Double(inf).IsInfinity())
	require.True(t, params.Add(g, params.Negate(g)).IsInfinity())
	require.True(t, params.Multiply(new(big.Int), g).IsInfinity())
	require.True(t, params.Multiply(params.N, g).IsInfinity())
	require.True(t, params.Multiply(big.NewInt(5), inf).IsInfinity())
	require.True(t, params.IsOnCurve(inf))
	require.Nil(t, inf.X())
	require.Nil(t, inf.Y())

	// (N-1)*G is -G.
	nMinus1 := new(big.Int).Sub(params.N, big.NewInt(1))
	require.True(t, params.Multiply(nMinus1, g).Equal(params.Negate(g)))

	// Negative scalars are reduced modulo N.
	require.True(t, params.Multiply(big.NewInt(-1), g).Equal(params.Negate(g)))

	// A point with y = 0 has a vertical tangent.  No such point exists on
	// secp256k1, so use a toy curve y² = x³ + 1 over F_11 where (10, 0)
	// is on the curve.
	toy := NewParams("toy", big.NewInt(11), new(big.Int), big.NewInt(1),
		big.NewInt(10), new(big.Int), big.NewInt(12), 1)
	require.True(t, toy.IsOnCurve(toy.G))
	require.True(t, toy.Double(toy.G).IsInfinity())
	require.True(t, toy.Add(toy.G, toy.G).IsInfinity())
}

// TestModInverse ensures modular inverses are computed and zero is reported
// as having no inverse.
func TestModInverse(t *testing.T) {
	inv, ok := ModInverse(big.NewInt(3), big.NewInt(7))
	require.True(t, ok)
	require.Equal(t, int64(5), inv.Int64())

	_, ok = ModInverse(new(big.Int), big.NewInt(7))
	require.False(t, ok)
	_, ok = ModInverse(big.NewInt(14), big.NewInt(7))
	require.False(t, ok)
	_, ok = ModInverse(big.NewInt(4), big.NewInt(8))
	require.False(t, ok)

	params := S256()
	inv, ok = ModInverse(big.NewInt(-2), params.P)
	require.True(t, ok)
	prod := new(big.Int).Mul(inv, big.NewInt(-2))
	require.Equal(t, int64(1), prod.Mod(prod, params.P).Int64())
}

// TestDecompressY ensures y can be recovered from x and its parity.
func TestDecompressY(t *testing.T) {
	params := S256()
	g := params.G

	y, ok := params.DecompressY(g.X(), g.Y().Bit(0) == 1)
	require.True(t, ok)
	require.Equal(t, 0, y.Cmp(g.Y()))

	y, ok = params.DecompressY(g.X(), g.Y().Bit(0) == 0)
	require.True(t, ok)
	require.Equal(t, 0, y.Cmp(params.Negate(g).Y()))

	// x = 5 has no square root for x³ + 7 on secp256k1.
	_, ok = params.DecompressY(big.NewInt(5), false)
	require.False(t, ok)

	_, ok = params.DecompressY(params.P, false)
	require.False(t, ok)
}

// TestMultiplyMatchesDecred cross checks scalar multiplication against the
// decred secp256k1 implementation.
func TestMultiplyMatchesDecred(t *testing.T) {
	params := S256()
	curve := dcrsecp.S256()

	rapid.Check(t, func(t *rapid.T) {
		k := scalarGen(params).Draw(t, "k")
		got := params.ScalarBaseMult(k)
		wantX, wantY := curve.ScalarBaseMult(k.Bytes())
		if got.X().Cmp(wantX) != 0 || got.Y().Cmp(wantY) != 0 {
			t.Fatalf("k=%x: got %v want (%x, %x)", k, got, wantX, wantY)
		}

		j := scalarGen(params).Draw(t, "j")
		sum := params.Add(got, params.ScalarBaseMult(j))
		jx, jy := curve.ScalarBaseMult(j.Bytes())
		sumX, sumY := curve.Add(wantX, wantY, jx, jy)
		if sum.X().Cmp(sumX) != 0 || sum.Y().Cmp(sumY) != 0 {
			t.Fatalf("sum mismatch: %s", spew.Sdump(k, j))
		}
	})
}

// TestSumOfTwoMultiplies ensures Shamir's trick agrees with two independent
// multiplications followed by an addition.
func TestSumOfTwoMultiplies(t *testing.T) {
	params := S256()

	rapid.Check(t, func(t *rapid.T) {
		u1 := scalarGen(params).Draw(t, "u1")
		u2 := scalarGen(params).Draw(t, "u2")
		q := params.ScalarBaseMult(scalarGen(params).Draw(t, "d"))

		got := params.SumOfTwoMultiplies(params.G, u1, q, u2)
		want := params.Add(params.Multiply(u1, params.G), params.Multiply(u2, q))
		if !got.Equal(want) {
			t.Fatalf("got %v want %v", got, want)
		}
	})

	// Degenerate inputs: zero scalars and Q = -G.
	g := params.G
	zero := new(big.Int)
	one := big.NewInt(1)
	require.True(t, params.SumOfTwoMultiplies(g, zero, g, zero).IsInfinity())
	require.True(t, params.SumOfTwoMultiplies(g, one, params.Negate(g), one).IsInfinity())
	require.True(t, params.SumOfTwoMultiplies(g, one, g, one).Equal(params.Double(g)))
	require.True(t, params.SumOfTwoMultiplies(g, zero, g, big.NewInt(3)).
		Equal(params.ScalarBaseMult(big.NewInt(3))))
}

// TestCompressionFlag ensures the compression flag is carried through the
// arithmetic and is ignored by Equal.
func TestCompressionFlag(t *testing.T) {
	params := S256()
	g := params.G.WithCompression(true)

	require.True(t, g.IsCompressed())
	require.False(t, params.G.IsCompressed())
	require.True(t, g.Equal(params.G))
	require.True(t, params.Multiply(big.NewInt(7), g).IsCompressed())
	require.True(t, params.SumOfTwoMultiplies(g, big.NewInt(1), params.G,
		big.NewInt(1)).IsCompressed())
}
