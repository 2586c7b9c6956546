// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bip38 detects, decrypts and encrypts password protected private keys
in the BIP0038 format.

An encrypted key is the Base58Check encoding of a 39 byte payload:

	0x01 <variant> <flag> <address hash:4> <encrypted half 1:16> <encrypted half 2:16>

The variant byte is 0x42 for keys encrypted directly from a private key and
0x43 for EC-multiplied keys.  Only the first variant can be decrypted; the
second is recognized so that callers can report it as unsupported.

Decryption derives 64 bytes from the NFC normalized password with scrypt
(N=16384, r=8, p=8) salted by the address hash.  The second 32 bytes are an
AES-256 key that decrypts both halves, and the first 32 bytes are XORed with
the result to recover the private key.  The address of the recovered key is
then hashed and compared with the address hash, which is how a wrong
password is detected.

Scrypt dominates the cost of both directions.  Decrypt and Encrypt accept a
context to cancel it and a progress callback to observe it.
*/
package bip38

import (
	"fmt"

	"github.com/paybullion/keycore/base58check"
	"github.com/paybullion/keycore/bytecodec"
)

const (
	// PayloadLen is the length of a decoded encrypted key.
	PayloadLen = 39

	// magic is the first byte shared by both variants.
	magic = 0x01

	// prefixNonEC identifies a key encrypted without EC multiplication.
	prefixNonEC = 0x42

	// prefixECMultiplied identifies an EC-multiplied key.
	prefixECMultiplied = 0x43

	// flagNonEC holds the two bits that are always set in the flag byte of
	// a key encrypted without EC multiplication.
	flagNonEC = 0xc0

	// flagCompressed marks a key whose address uses the compressed public
	// key.
	flagCompressed = 0x20

	addressHashLen = 4
	halfLen        = 16
)

// Payload is a decoded encrypted key.
type Payload struct {
	// ECMultiplied is set for the 0x0143 variant.
	ECMultiplied bool

	// Flag is the raw flag byte.
	Flag byte

	// AddressHash is the first four bytes of the double SHA-256 of the
	// key's address.  It also salts the key derivation.
	AddressHash [addressHashLen]byte

	// EncryptedHalf1 and EncryptedHalf2 are the AES-256 encrypted halves
	// of the key.
	EncryptedHalf1 [halfLen]byte
	EncryptedHalf2 [halfLen]byte
}

// Compressed returns whether the key's address uses the compressed public
// key.
func (p *Payload) Compressed() bool {
	return p.Flag&flagCompressed != 0
}

// Bytes returns the serialized payload without a checksum.
func (p *Payload) Bytes() []byte {
	w := bytecodec.NewWriter(PayloadLen)
	w.PutByte(magic)
	if p.ECMultiplied {
		w.PutByte(prefixECMultiplied)
	} else {
		w.PutByte(prefixNonEC)
	}
	w.PutByte(p.Flag)
	w.PutBytes(p.AddressHash[:])
	w.PutBytes(p.EncryptedHalf1[:])
	w.PutBytes(p.EncryptedHalf2[:])
	return w.Bytes()
}

// String returns the Base58Check encoding of the payload.
func (p *Payload) String() string {
	return base58check.Encode(p.Bytes())
}

// ParsePayload decodes a 39 byte payload.
func ParsePayload(b []byte) (*Payload, error) {
	if len(b) != PayloadLen {
		str := fmt.Sprintf("encrypted key payload is %d bytes, want %d",
			len(b), PayloadLen)
		return nil, makeError(ErrMalformedPayload, str)
	}

	var p Payload
	r := bytecodec.NewReader(b)
	first, _ := r.Get()
	variant, _ := r.Get()
	switch {
	case first != magic:
		str := fmt.Sprintf("unknown encrypted key prefix %02x%02x", first,
			variant)
		return nil, makeError(ErrMalformedPayload, str)

	case variant == prefixECMultiplied:
		p.ECMultiplied = true

	case variant != prefixNonEC:
		str := fmt.Sprintf("unknown encrypted key prefix %02x%02x", first,
			variant)
		return nil, makeError(ErrMalformedPayload, str)
	}

	p.Flag, _ = r.Get()
	if !p.ECMultiplied && p.Flag&^flagCompressed != flagNonEC {
		str := fmt.Sprintf("invalid flag byte %#02x", p.Flag)
		return nil, makeError(ErrMalformedPayload, str)
	}

	// The length was checked above, so none of these reads can fail.
	addrHash, _ := r.GetBytes(addressHashLen)
	half1, _ := r.GetBytes(halfLen)
	half2, _ := r.GetBytes(halfLen)
	copy(p.AddressHash[:], addrHash)
	copy(p.EncryptedHalf1[:], half1)
	copy(p.EncryptedHalf2[:], half2)
	return &p, nil
}

// DecodePayload decodes the Base58Check text of an encrypted key.
func DecodePayload(text string) (*Payload, error) {
	b, err := base58check.Decode(text)
	if err != nil {
		str := fmt.Sprintf("encrypted key is not valid base58check: %v", err)
		return nil, makeError(ErrMalformedPayload, str)
	}
	return ParsePayload(b)
}

// Detect returns whether text is an encrypted key of either variant.
func Detect(text string) bool {
	_, err := DecodePayload(text)
	return err == nil
}
