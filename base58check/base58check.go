// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package base58check implements Base58Check framing: a payload followed by
// the first four bytes of its double SHA-256, rendered in the Bitcoin Base58
// alphabet.
//
// Unlike btcutil/base58.CheckEncode the payload is not required to start
// with a single version byte, which is needed for formats such as BIP0038
// that use a two byte prefix.
package base58check

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/paybullion/keycore/hashes"
)

// ChecksumSize is the number of checksum bytes appended to every payload.
const ChecksumSize = 4

var (
	// ErrChecksum indicates that the checksum of a check-encoded string
	// does not verify against the checksum.
	ErrChecksum = errors.New("checksum error")

	// ErrInvalidFormat indicates that the check-encoded string has an
	// invalid format.
	ErrInvalidFormat = errors.New("invalid format: not base58 or checksum bytes missing")
)

// Encode appends a checksum to payload and returns the Base58 encoding.
func Encode(payload []byte) string {
	b := make([]byte, 0, len(payload)+ChecksumSize)
	b = append(b, payload...)
	cksum := hashes.Checksum(payload)
	b = append(b, cksum[:]...)
	return base58.Encode(b)
}

// EncodeVersioned prepends prefix to payload and check encodes the result.
func EncodeVersioned(payload []byte, prefix ...byte) string {
	b := make([]byte, 0, len(prefix)+len(payload))
	b = append(b, prefix...)
	b = append(b, payload...)
	return Encode(b)
}

// Decode decodes a check-encoded string and returns the payload without the
// checksum.
func Decode(text string) ([]byte, error) {
	decoded := base58.Decode(text)

	// The base58 package reports invalid characters by returning an empty
	// slice, which is also what an empty string decodes to.
	if len(decoded) < ChecksumSize+1 {
		return nil, ErrInvalidFormat
	}

	split := len(decoded) - ChecksumSize
	payload, got := decoded[:split], decoded[split:]
	want := hashes.Checksum(payload)
	if !bytes.Equal(got, want[:]) {
		return nil, ErrChecksum
	}
	return payload, nil
}
