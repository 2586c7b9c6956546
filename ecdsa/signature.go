// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdsa parses and verifies ECDSA signatures over the curves of the
// ec package, including the "Bitcoin Signed Message" convention.
package ecdsa

import (
	"fmt"
	"math/big"

	"github.com/paybullion/keycore/bytecodec"
)

const (
	// sequenceID is the identifier that starts a serialized signature.
	sequenceID = 0x30

	// integerID is the identifier that precedes R and S.
	integerID = 0x02

	// minSigLen is the minimum length of a serialized signature: both
	// integers one byte long.
	//
	// 0x30 + <1-byte> + 0x02 + 0x01 + <byte> + 0x2 + 0x01 + <byte>
	minSigLen = 8
)

// Signature is a type representing an ECDSA signature.  The values are not
// range checked; a signature with r or s outside [1, N-1] never verifies.
type Signature struct {
	r *big.Int
	s *big.Int
}

// NewSignature instantiates a new signature given some r and s values.
// Negative values are replaced by their magnitude.
func NewSignature(r, s *big.Int) *Signature {
	return &Signature{
		r: new(big.Int).Abs(r),
		s: new(big.Int).Abs(s),
	}
}

// R returns a copy of the r value of the signature.
func (sig *Signature) R() *big.Int {
	return new(big.Int).Set(sig.r)
}

// S returns a copy of the s value of the signature.
func (sig *Signature) S() *big.Int {
	return new(big.Int).Set(sig.s)
}

// IsEqual compares this Signature instance to the one passed, returning true
// if both Signatures are equivalent.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	return sig.r.Cmp(otherSig.r) == 0 && sig.s.Cmp(otherSig.s) == 0
}

// Serialize returns the signature in the two integer format:
//
//	0x30 <length> 0x02 <length r> r 0x02 <length s> s
//
// Lengths are single bytes, so r and s must each encode to at most 124
// bytes.  The serialized bytes do not include a hash type.
func (sig *Signature) Serialize() []byte {
	// Ensure the encoded bytes for the r and s values are canonical and
	// thus cannot be read back as negative.
	rb := canonicalizeInt(sig.r)
	sb := canonicalizeInt(sig.s)

	// total length of returned signature is 1 byte for each magic and
	// length (6 total), plus lengths of r and s
	length := 6 + len(rb) + len(sb)
	b := make([]byte, length)

	b[0] = sequenceID
	b[1] = byte(length - 2)
	b[2] = integerID
	b[3] = byte(len(rb))
	offset := copy(b[4:], rb) + 4
	b[offset] = integerID
	b[offset+1] = byte(len(sb))
	copy(b[offset+2:], sb)
	return b
}

// parseInt reads one identifier, length and magnitude triple.
func parseInt(r *bytecodec.Reader, name string, idKind, zeroKind ErrorKind) (*big.Int, error) {
	id, err := r.Get()
	if err != nil {
		str := fmt.Sprintf("malformed signature: no %s identifier", name)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if id != integerID {
		str := fmt.Sprintf("malformed signature: %s integer id %#x != %#x",
			name, id, integerID)
		return nil, signatureError(idKind, str)
	}

	length, err := r.Get()
	if err != nil {
		str := fmt.Sprintf("malformed signature: no %s length", name)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if length == 0 {
		str := fmt.Sprintf("malformed signature: %s length is zero", name)
		return nil, signatureError(zeroKind, str)
	}

	// The magnitude is unsigned even when its high bit is set.
	magnitude, err := r.GetBytes(int(length))
	if err != nil {
		str := fmt.Sprintf("malformed signature: %s length %d exceeds "+
			"remaining %d bytes", name, length, r.Available())
		return nil, signatureError(ErrSigTooShort, str)
	}
	return new(big.Int).SetBytes(magnitude), nil
}

// ParseSignature reads one signature from r.  The grammar is
//
//	0x30 <total> 0x02 <len R> <R> 0x02 <len S> <S>
//
// where every length is a single byte and 2 + len R + 2 + len S must equal
// total.  Bytes after the signature are left unread.  On error the reader
// position is unspecified.
func ParseSignature(r *bytecodec.Reader) (*Signature, error) {
	if r.Available() < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d",
			r.Available(), minSigLen)
		return nil, signatureError(ErrSigTooShort, str)
	}

	// The signature must start with the sequence identifier.
	id, _ := r.Get()
	if id != sequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x",
			id)
		return nil, signatureError(ErrSigInvalidSeqID, str)
	}

	total, _ := r.Get()
	body, err := r.GetBytes(int(total))
	if err != nil {
		str := fmt.Sprintf("malformed signature: declared length %d exceeds "+
			"remaining %d bytes", total, r.Available())
		return nil, signatureError(ErrSigInvalidDataLen, str)
	}

	br := bytecodec.NewReader(body)
	sigR, err := parseInt(br, "R", ErrSigInvalidRIntID, ErrSigZeroRLen)
	if err != nil {
		return nil, err
	}
	sigS, err := parseInt(br, "S", ErrSigInvalidSIntID, ErrSigZeroSLen)
	if err != nil {
		return nil, err
	}

	if br.Available() != 0 {
		str := fmt.Sprintf("malformed signature: declared length %d does "+
			"not match the integer lengths", total)
		return nil, signatureError(ErrSigInvalidDataLen, str)
	}
	return &Signature{r: sigR, s: sigS}, nil
}

// ParseSignatureBytes parses a signature that must occupy all of sigStr.
func ParseSignatureBytes(sigStr []byte) (*Signature, error) {
	r := bytecodec.NewReader(sigStr)
	sig, err := ParseSignature(r)
	if err != nil {
		return nil, err
	}
	if r.Available() != 0 {
		str := fmt.Sprintf("malformed signature: %d trailing bytes",
			r.Available())
		return nil, signatureError(ErrSigTrailingBytes, str)
	}
	return sig, nil
}

// ParseSignatureWithHashType parses a signature followed by exactly one hash
// type byte, as found in transaction inputs, and returns both.
func ParseSignatureWithHashType(sigStr []byte) (*Signature, byte, error) {
	r := bytecodec.NewReader(sigStr)
	sig, err := ParseSignature(r)
	if err != nil {
		return nil, 0, err
	}

	switch r.Available() {
	case 0:
		str := "malformed signature: missing hash type"
		return nil, 0, signatureError(ErrSigMissingHashType, str)
	case 1:
		hashType, _ := r.Get()
		return sig, hashType, nil
	default:
		str := fmt.Sprintf("malformed signature: %d bytes follow the "+
			"signature, want a single hash type", r.Available())
		return nil, 0, signatureError(ErrSigTrailingBytes, str)
	}
}

// canonicalizeInt returns the bytes for the passed big integer adjusted as
// necessary to ensure that a big-endian encoded integer can't possibly be
// misinterpreted as a negative number.  This can happen when the most
// significant bit is set, so it is padded by a leading zero byte in this case.
// Also, the returned bytes will have at least a single byte when the passed
// value is 0.
func canonicalizeInt(val *big.Int) []byte {
	b := val.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		paddedBytes := make([]byte, len(b)+1)
		copy(paddedBytes[1:], b)
		b = paddedBytes
	}
	return b
}
