// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"math/big"

	"github.com/paybullion/keycore/ec"
	"github.com/paybullion/keycore/keys"
)

// hashToInt converts a hash value to an integer.  Per FIPS 186-4 section
// 6.4, the leftmost bits of the hash are used when the hash is longer than
// the group order.
func hashToInt(params *ec.Params, hash []byte) *big.Int {
	orderBits := params.N.BitLen()
	e := new(big.Int).SetBytes(hash)
	if excess := len(hash)*8 - orderBits; excess > 0 {
		e.Rsh(e, uint(excess))
	}
	return e
}

// Verify reports whether sig is a valid signature of hash by the public key
// point pub.
func Verify(params *ec.Params, hash []byte, sig *Signature, pub ec.Point) bool {
	if pub.IsInfinity() {
		return false
	}

	// r and s must be in the range [1, N-1].
	if !params.IsValidScalar(sig.r) || !params.IsValidScalar(sig.s) {
		return false
	}

	e := hashToInt(params, hash)

	// c = s^-1 mod N
	c, ok := ec.ModInverse(sig.s, params.N)
	if !ok {
		return false
	}

	// u1 = e * c mod N
	// u2 = r * c mod N
	u1 := new(big.Int).Mul(e, c)
	u1.Mod(u1, params.N)
	u2 := new(big.Int).Mul(sig.r, c)
	u2.Mod(u2, params.N)

	// R = u1*G + u2*Q
	point := params.SumOfTwoMultiplies(params.G, u1, pub, u2)
	if point.IsInfinity() {
		return false
	}

	// v = R.x mod N
	v := point.X()
	v.Mod(v, params.N)
	return v.Cmp(sig.r) == 0
}

// Verify reports whether the signature is a valid signature of hash by
// pubKey.  A public key that fails to decode never verifies.
func (sig *Signature) Verify(hash []byte, pubKey *keys.PublicKey) bool {
	pt, err := pubKey.Point()
	if err != nil {
		log.Debugf("Unable to verify against public key %v: %v", pubKey,
			err)
		return false
	}
	return Verify(pubKey.Params(), hash, sig, pt)
}

// VerifyStandardSignature reports whether sigStr, a serialized signature
// followed by a single hash type byte, is a valid signature of hash by
// pubKey.  Malformed signatures do not verify.
func VerifyStandardSignature(hash, sigStr []byte, pubKey *keys.PublicKey) bool {
	sig, _, err := ParseSignatureWithHashType(sigStr)
	if err != nil {
		log.Debugf("Rejecting signature: %v", err)
		return false
	}
	return sig.Verify(hash, pubKey)
}
