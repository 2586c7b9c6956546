// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/paybullion/keycore/ec"
	"github.com/paybullion/keycore/hashes"
)

const (
	// PubKeyFormatCompressed is the prefix of a compressed public key with
	// an even y coordinate.  The odd variant sets the low bit.
	PubKeyFormatCompressed byte = 0x02

	// PubKeyFormatUncompressed is the prefix of an uncompressed public key.
	PubKeyFormatUncompressed byte = 0x04
)

// DecodePoint parses a serialized public key into a curve point.  Both the
// 33 byte compressed and the 65 byte uncompressed formats are accepted and
// the returned point records which one was used.
func DecodePoint(params *ec.Params, serialized []byte) (ec.Point, error) {
	size := params.ByteSize()
	if len(serialized) == 0 {
		str := "malformed public key: empty input"
		return ec.Point{}, makeError(ErrPubKeyInvalidLen, str)
	}

	format := serialized[0]
	switch len(serialized) {
	case 1 + 2*size:
		if format != PubKeyFormatUncompressed {
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return ec.Point{}, makeError(ErrPubKeyInvalidFormat, str)
		}
		x := new(big.Int).SetBytes(serialized[1 : 1+size])
		y := new(big.Int).SetBytes(serialized[1+size:])
		if x.Cmp(params.P) >= 0 {
			str := "invalid public key: x >= field prime"
			return ec.Point{}, makeError(ErrPubKeyXTooBig, str)
		}
		if y.Cmp(params.P) >= 0 {
			str := "invalid public key: y >= field prime"
			return ec.Point{}, makeError(ErrPubKeyYTooBig, str)
		}
		pt := ec.NewPoint(x, y, false)
		if !params.IsOnCurve(pt) {
			str := fmt.Sprintf("invalid public key: [%v,%v] not on "+
				"%s curve", x, y, params.Name)
			return ec.Point{}, makeError(ErrPubKeyNotOnCurve, str)
		}
		return pt, nil

	case 1 + size:
		// Reject unsupported public key formats for the given length.
		// The low bit selects the y parity.
		if format&^0x01 != PubKeyFormatCompressed {
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return ec.Point{}, makeError(ErrPubKeyInvalidFormat, str)
		}
		x := new(big.Int).SetBytes(serialized[1:])
		if x.Cmp(params.P) >= 0 {
			str := "invalid public key: x >= field prime"
			return ec.Point{}, makeError(ErrPubKeyXTooBig, str)
		}
		odd := format&0x01 == 0x01
		y, ok := params.DecompressY(x, odd)
		if !ok {
			str := fmt.Sprintf("invalid public key: x coordinate %x is "+
				"not on the %s curve", x, params.Name)
			return ec.Point{}, makeError(ErrPubKeyNotOnCurve, str)
		}
		return ec.NewPoint(x, y, true), nil

	default:
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return ec.Point{}, makeError(ErrPubKeyInvalidLen, str)
	}
}

// EncodePoint serializes a point in the format selected by its compression
// flag.  The point at infinity is encoded as a single zero byte, which
// DecodePoint rejects.
func EncodePoint(params *ec.Params, pt ec.Point) []byte {
	if pt.IsInfinity() {
		return []byte{0x00}
	}

	size := params.ByteSize()
	x, y := pt.X(), pt.Y()
	if pt.IsCompressed() {
		b := make([]byte, 1+size)
		b[0] = PubKeyFormatCompressed | byte(y.Bit(0))
		x.FillBytes(b[1:])
		return b
	}

	b := make([]byte, 1+2*size)
	b[0] = PubKeyFormatUncompressed
	x.FillBytes(b[1 : 1+size])
	y.FillBytes(b[1+size:])
	return b
}

// PublicKey is a serialized public key.  The curve point and hash160 are
// derived from the serialized bytes on first use and cached.
//
// A PublicKey must not be copied after first use.
type PublicKey struct {
	params     *ec.Params
	serialized []byte

	hashOnce sync.Once
	hash160  []byte

	pointOnce sync.Once
	point     ec.Point
	pointErr  error
}

// NewPublicKey returns a public key backed by a copy of serialized.  The
// bytes are not validated until Point is called; use ParsePubKey to reject
// invalid keys up front.
func NewPublicKey(params *ec.Params, serialized []byte) *PublicKey {
	return &PublicKey{
		params:     params,
		serialized: bytes.Clone(serialized),
	}
}

// ParsePubKey parses and validates a serialized public key.
func ParsePubKey(params *ec.Params, serialized []byte) (*PublicKey, error) {
	pk := NewPublicKey(params, serialized)
	if _, err := pk.Point(); err != nil {
		return nil, err
	}
	return pk, nil
}

// NewPublicKeyFromPoint returns the public key for pt, serialized according
// to its compression flag.
func NewPublicKeyFromPoint(params *ec.Params, pt ec.Point) *PublicKey {
	pk := &PublicKey{
		params:     params,
		serialized: EncodePoint(params, pt),
	}
	pk.pointOnce.Do(func() {
		pk.point = pt
	})
	return pk
}

// Bytes returns a copy of the serialized public key.
func (pk *PublicKey) Bytes() []byte {
	return bytes.Clone(pk.serialized)
}

// Hash160 returns RIPEMD160(SHA256(serialized)).
func (pk *PublicKey) Hash160() []byte {
	pk.hashOnce.Do(func() {
		pk.hash160 = hashes.Hash160(pk.serialized)
	})
	return bytes.Clone(pk.hash160)
}

// Point decodes the serialized key.  The result, including a decoding
// error, is computed once.
func (pk *PublicKey) Point() (ec.Point, error) {
	pk.pointOnce.Do(func() {
		pk.point, pk.pointErr = DecodePoint(pk.params, pk.serialized)
	})
	return pk.point, pk.pointErr
}

// Params returns the curve the key belongs to.
func (pk *PublicKey) Params() *ec.Params {
	return pk.params
}

// IsCompressed returns whether the key is serialized in compressed form.
func (pk *PublicKey) IsCompressed() bool {
	return len(pk.serialized) == 1+pk.params.ByteSize() &&
		pk.serialized[0]&^0x01 == PubKeyFormatCompressed
}

// Equal returns whether two keys have the same hash160.  The compressed and
// uncompressed forms of one point are different keys.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return bytes.Equal(pk.Hash160(), other.Hash160())
}

// HashCode returns a 32-bit hash of the key built from the four leading
// bytes of its hash160.
func (pk *PublicKey) HashCode() uint32 {
	h := pk.Hash160()
	return uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 |
		uint32(h[3])
}

// Address returns the pay-to-pubkey-hash address of the key on net.
func (pk *PublicKey) Address(net *NetParams) string {
	return Address(pk.Hash160(), net)
}

// String returns the hex encoding of the serialized key.
func (pk *PublicKey) String() string {
	return hex.EncodeToString(pk.serialized)
}
