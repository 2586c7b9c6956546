// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keys

import (
	"fmt"

	"github.com/paybullion/keycore/base58check"
	"github.com/paybullion/keycore/hashes"
)

// NetParams defines the version bytes a network uses for encoded keys and
// addresses.
type NetParams struct {
	// Name is a human-readable identifier for the network.
	Name string

	// PubKeyHashAddrID is the first byte of a P2PKH address.
	PubKeyHashAddrID byte

	// PrivateKeyID is the first byte of a WIF private key.
	PrivateKeyID byte
}

// MainNetParams defines the version bytes of the main Bitcoin network.
var MainNetParams = NetParams{
	Name:             "mainnet",
	PubKeyHashAddrID: 0x00, // starts with 1
	PrivateKeyID:     0x80, // starts with 5 (uncompressed) or K (compressed)
}

// TestNet3Params defines the version bytes of the test Bitcoin network
// (version 3).
var TestNet3Params = NetParams{
	Name:             "testnet3",
	PubKeyHashAddrID: 0x6f, // starts with m or n
	PrivateKeyID:     0xef, // starts with 9 (uncompressed) or c (compressed)
}

// NetParamsByName returns the parameters of the named network.
func NetParamsByName(name string) (*NetParams, error) {
	switch name {
	case MainNetParams.Name:
		return &MainNetParams, nil
	case TestNet3Params.Name:
		return &TestNet3Params, nil
	}
	str := fmt.Sprintf("unknown network %q", name)
	return nil, makeError(ErrUnknownNetwork, str)
}

// Address returns the pay-to-pubkey-hash address of a hash160 on net.
func Address(hash160 []byte, net *NetParams) string {
	return base58check.EncodeVersioned(hash160, net.PubKeyHashAddrID)
}

// DecodeAddress returns the hash160 of a pay-to-pubkey-hash address on net.
func DecodeAddress(addr string, net *NetParams) ([]byte, error) {
	decoded, err := base58check.Decode(addr)
	if err != nil {
		str := fmt.Sprintf("malformed address: %v", err)
		return nil, makeError(ErrMalformedAddress, str)
	}
	if len(decoded) != 1+hashes.Hash160Size {
		str := fmt.Sprintf("malformed address: invalid length: %d",
			len(decoded))
		return nil, makeError(ErrMalformedAddress, str)
	}
	if decoded[0] != net.PubKeyHashAddrID {
		str := fmt.Sprintf("address version %x is not for %s",
			decoded[0], net.Name)
		return nil, makeError(ErrWrongNetwork, str)
	}
	return decoded[1:], nil
}
