// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashes provides the digest functions used by keycore: SHA-256,
// double SHA-256 and hash160.
package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Hash160Size is the size in bytes of a hash160 digest.
const Hash160Size = ripemd160.Size

// HashB calculates sha256(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	return chainhash.HashB(b)
}

// DoubleHashB calculates sha256(sha256(b)) and returns the resulting bytes.
func DoubleHashB(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// DoubleHashH calculates sha256(sha256(b)) and returns the resulting bytes
// as a chainhash.Hash.
func DoubleHashH(b []byte) chainhash.Hash {
	return chainhash.DoubleHashH(b)
}

// Checksum returns the first four bytes of sha256(sha256(b)).
func Checksum(b []byte) [4]byte {
	var cksum [4]byte
	h := chainhash.DoubleHashH(b)
	copy(cksum[:], h[:4])
	return cksum
}

// calcHash calculates the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	_, _ = hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}
