// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/paybullion/keycore/bytecodec"
	"github.com/paybullion/keycore/hashes"
	"github.com/paybullion/keycore/keys"
)

// messageMagic is the header that separates signed messages from
// transactions.
const messageMagic = "Bitcoin Signed Message:\n"

// FormatMessageForSigning returns the bytes that are hashed when signing the
// text message msg:
//
//	compactsize(len(magic)) magic compactsize(len(msg)) msg
//
// Both lengths count UTF-8 bytes.
func FormatMessageForSigning(msg string) []byte {
	size := bytecodec.CompactSizeLen(uint64(len(messageMagic))) +
		len(messageMagic) + bytecodec.CompactSizeLen(uint64(len(msg))) +
		len(msg)
	w := bytecodec.NewWriter(size)
	w.PutCompactSize(uint64(len(messageMagic)))
	w.PutBytes([]byte(messageMagic))
	w.PutCompactSize(uint64(len(msg)))
	w.PutBytes([]byte(msg))
	return w.Bytes()
}

// MessageDigest returns the double SHA-256 of the framed message.
func MessageDigest(msg string) chainhash.Hash {
	return hashes.DoubleHashH(FormatMessageForSigning(msg))
}

// VerifyMessage reports whether sigStr, a serialized signature with no hash
// type, signs msg under the signed message convention for pubKey.
func VerifyMessage(msg string, sigStr []byte, pubKey *keys.PublicKey) bool {
	sig, err := ParseSignatureBytes(sigStr)
	if err != nil {
		log.Debugf("Rejecting message signature: %v", err)
		return false
	}
	digest := MessageDigest(msg)
	return sig.Verify(digest[:], pubKey)
}
