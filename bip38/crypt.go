// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip38

import (
	"context"
	"crypto/aes"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/paybullion/keycore/hashes"
	"github.com/paybullion/keycore/scrypt"
	"golang.org/x/text/unicode/norm"
)

// Scrypt parameters fixed by the format.
const (
	ScryptN = 16384
	ScryptR = 8
	ScryptP = 8

	derivedKeyLen = 64
)

// normalizePassword returns the UTF-8 bytes of the NFC form of password.
func normalizePassword(password string) []byte {
	return []byte(norm.NFC.String(password))
}

// addressHash returns the first four bytes of the double SHA-256 of addr.
func addressHash(addr string) [addressHashLen]byte {
	var h [addressHashLen]byte
	copy(h[:], hashes.DoubleHashB([]byte(addr)))
	return h
}

// deriveKey runs scrypt over the normalized password salted with the
// address hash.  A canceled derivation is reported as ErrCanceled.
func deriveKey(ctx context.Context, password string, salt [addressHashLen]byte,
	progress scrypt.ProgressFunc) ([]byte, error) {

	pass := normalizePassword(password)
	defer clear(pass)

	derived, err := scrypt.Key(ctx, pass, salt[:], ScryptN, ScryptR, ScryptP,
		derivedKeyLen, progress)
	switch {
	case errors.Is(err, scrypt.ErrCanceled):
		return nil, Error{Err: ErrCanceled, Description: err.Error()}
	case err != nil:
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	return derived, nil
}

// decryptHalves recovers the private key from the encrypted halves using the
// derived key.
func decryptHalves(derived []byte, p *Payload) ([]byte, error) {
	half1, half2 := derived[:32], derived[32:]
	block, err := aes.NewCipher(half2)
	if err != nil {
		return nil, err
	}

	// Each half is a single AES block, so ECB mode is one block operation
	// per half.
	priv := make([]byte, 2*halfLen)
	block.Decrypt(priv[:halfLen], p.EncryptedHalf1[:])
	block.Decrypt(priv[halfLen:], p.EncryptedHalf2[:])
	subtle.XORBytes(priv, priv, half1)
	return priv, nil
}

// encryptHalves is the inverse of decryptHalves.
func encryptHalves(derived, priv []byte, p *Payload) error {
	half1, half2 := derived[:32], derived[32:]
	block, err := aes.NewCipher(half2)
	if err != nil {
		return err
	}

	var plain [2 * halfLen]byte
	defer clear(plain[:])
	subtle.XORBytes(plain[:], priv, half1)
	block.Encrypt(p.EncryptedHalf1[:], plain[:halfLen])
	block.Encrypt(p.EncryptedHalf2[:], plain[halfLen:])
	return nil
}
