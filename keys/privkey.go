// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"fmt"
	"math/big"

	"github.com/paybullion/keycore/base58check"
	"github.com/paybullion/keycore/ec"
)

// compressMagic is the byte appended to the WIF payload of a key whose
// public key is serialized in compressed form.
const compressMagic byte = 0x01

// PrivateKey is a scalar in the range [1, N-1].
type PrivateKey struct {
	params *ec.Params
	d      *big.Int
}

// NewPrivateKey returns the private key for scalar d.
func NewPrivateKey(params *ec.Params, d *big.Int) (*PrivateKey, error) {
	if !params.IsValidScalar(d) {
		str := "private key scalar is not in the range [1, N-1]"
		return nil, makeError(ErrPrivKeyOutOfRange, str)
	}
	return &PrivateKey{params: params, d: new(big.Int).Set(d)}, nil
}

// PrivKeyFromBytes returns the private key for a big-endian scalar that is
// exactly the size of a field element.
func PrivKeyFromBytes(params *ec.Params, pk []byte) (*PrivateKey, error) {
	if len(pk) != params.ByteSize() {
		str := fmt.Sprintf("malformed private key: invalid length: %d",
			len(pk))
		return nil, makeError(ErrPrivKeyInvalidLen, str)
	}
	return NewPrivateKey(params, new(big.Int).SetBytes(pk))
}

// D returns a copy of the private scalar.
func (p *PrivateKey) D() *big.Int {
	return new(big.Int).Set(p.d)
}

// Params returns the curve the key belongs to.
func (p *PrivateKey) Params() *ec.Params {
	return p.params
}

// Serialize returns the private key as a big-endian binary-encoded number,
// padded to the size of a field element.
func (p *PrivateKey) Serialize() []byte {
	b := make([]byte, p.params.ByteSize())
	return p.d.FillBytes(b)
}

// PubKey returns the public key d*G serialized in the requested form.
func (p *PrivateKey) PubKey(compressed bool) *PublicKey {
	pt := p.params.ScalarBaseMult(p.d).WithCompression(compressed)
	return NewPublicKeyFromPoint(p.params, pt)
}

// WIF returns the wallet import format encoding of the key for net.
func (p *PrivateKey) WIF(net *NetParams, compressed bool) string {
	payload := p.Serialize()
	if compressed {
		payload = append(payload, compressMagic)
	}
	return base58check.EncodeVersioned(payload, net.PrivateKeyID)
}

// DecodeWIF decodes a wallet import format string for net.  It also
// reports whether the encoded key's public key is compressed.
func DecodeWIF(params *ec.Params, wif string, net *NetParams) (*PrivateKey, bool, error) {
	decoded, err := base58check.Decode(wif)
	if err != nil {
		str := fmt.Sprintf("malformed WIF: %v", err)
		return nil, false, makeError(ErrMalformedWIF, str)
	}

	size := params.ByteSize()
	var compressed bool
	switch len(decoded) {
	case 1 + size + 1:
		if decoded[1+size] != compressMagic {
			str := fmt.Sprintf("malformed WIF: bad compression flag %x",
				decoded[1+size])
			return nil, false, makeError(ErrMalformedWIF, str)
		}
		compressed = true
	case 1 + size:
	default:
		str := fmt.Sprintf("malformed WIF: invalid length: %d",
			len(decoded))
		return nil, false, makeError(ErrMalformedWIF, str)
	}

	if decoded[0] != net.PrivateKeyID {
		str := fmt.Sprintf("WIF version %x is not for %s", decoded[0],
			net.Name)
		return nil, false, makeError(ErrWrongNetwork, str)
	}

	priv, err := PrivKeyFromBytes(params, decoded[1:1+size])
	if err != nil {
		return nil, false, err
	}
	return priv, compressed, nil
}
