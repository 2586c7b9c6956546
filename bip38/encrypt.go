// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip38

import (
	"context"

	"github.com/paybullion/keycore/keys"
	"github.com/paybullion/keycore/scrypt"
)

// Encrypt encrypts priv with password and returns the Base58Check text of
// the encrypted key.  compressed selects which address of the key is
// committed to, and net selects its version byte.  A canceled derivation
// returns an error matching ErrCanceled.
func Encrypt(ctx context.Context, priv *keys.PrivateKey, password string,
	compressed bool, net *keys.NetParams, progress scrypt.ProgressFunc) (string, error) {

	addr := priv.PubKey(compressed).Address(net)
	p := Payload{
		Flag:        flagNonEC,
		AddressHash: addressHash(addr),
	}
	if compressed {
		p.Flag |= flagCompressed
	}

	derived, err := deriveKey(ctx, password, p.AddressHash, progress)
	if err != nil {
		return "", err
	}
	defer clear(derived)

	privBytes := priv.Serialize()
	defer clear(privBytes)
	if err := encryptHalves(derived, privBytes, &p); err != nil {
		return "", err
	}

	log.Debugf("Encrypted key for %s", addr)
	return p.String(), nil
}
