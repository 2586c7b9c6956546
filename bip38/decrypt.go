// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip38

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/paybullion/keycore/ec"
	"github.com/paybullion/keycore/keys"
	"github.com/paybullion/keycore/scrypt"
)

// State is the decryption state of an EncryptedKey.
type State int

// These constants define the states of an EncryptedKey.  StateDecrypted and
// StateFailed are terminal.
const (
	StateUndecrypted State = iota
	StateDecrypted
	StateFailed
)

// String returns the State as a human-readable name.
func (s State) String() string {
	switch s {
	case StateUndecrypted:
		return "undecrypted"
	case StateDecrypted:
		return "decrypted"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// DecryptedKey is the result of a successful decryption.
type DecryptedKey struct {
	PrivateKey *keys.PrivateKey
	Compressed bool
	Address    string
}

// WIF returns the private key in wallet import format for net.
func (k *DecryptedKey) WIF(net *keys.NetParams) string {
	return k.PrivateKey.WIF(net, k.Compressed)
}

// EncryptedKey is a parsed encrypted key together with its decryption
// state.  It is safe for concurrent use.
type EncryptedKey struct {
	params  *ec.Params
	net     *keys.NetParams
	payload Payload

	mtx     sync.Mutex
	state   State
	running bool
	result  *DecryptedKey
}

// Parse decodes the Base58Check text of an encrypted key whose address
// belongs to net.
func Parse(text string, net *keys.NetParams) (*EncryptedKey, error) {
	p, err := DecodePayload(text)
	if err != nil {
		return nil, err
	}
	return &EncryptedKey{
		params:  ec.S256(),
		net:     net,
		payload: *p,
	}, nil
}

// Payload returns a copy of the decoded payload.
func (k *EncryptedKey) Payload() Payload {
	return k.payload
}

// State returns the current decryption state.
func (k *EncryptedKey) State() State {
	k.mtx.Lock()
	defer k.mtx.Unlock()
	return k.state
}

// Result returns the decrypted key once the state is StateDecrypted and nil
// otherwise.
func (k *EncryptedKey) Result() *DecryptedKey {
	k.mtx.Lock()
	defer k.mtx.Unlock()
	return k.result
}

// String returns the Base58Check text of the key.
func (k *EncryptedKey) String() string {
	return k.payload.String()
}

// Decrypt decrypts the key with password.
//
// A wrong password or an unsupported variant moves the key to StateFailed.
// A derivation canceled through ctx returns an error matching ErrCanceled
// and leaves the key in StateUndecrypted so it may be retried.  Decrypting
// a key in a terminal state, or while another Decrypt call is running,
// returns ErrInvalidState.
func (k *EncryptedKey) Decrypt(ctx context.Context, password string,
	progress scrypt.ProgressFunc) (*DecryptedKey, error) {

	k.mtx.Lock()
	switch {
	case k.state != StateUndecrypted:
		k.mtx.Unlock()
		str := fmt.Sprintf("cannot decrypt key in state %v", k.state)
		return nil, makeError(ErrInvalidState, str)

	case k.running:
		k.mtx.Unlock()
		str := "decryption is already in progress"
		return nil, makeError(ErrInvalidState, str)
	}
	k.running = true
	k.mtx.Unlock()

	// The lock is not held during the derivation.
	result, err := k.decrypt(ctx, password, progress)

	k.mtx.Lock()
	defer k.mtx.Unlock()
	k.running = false

	switch {
	case errors.Is(err, ErrCanceled):
		log.Debugf("Decryption of key for address hash %x canceled",
			k.payload.AddressHash)
		return nil, err

	case err != nil:
		k.state = StateFailed
		log.Debugf("Decryption of key for address hash %x failed: %v",
			k.payload.AddressHash, err)
		return nil, err
	}

	k.state = StateDecrypted
	k.result = result
	return result, nil
}

// decrypt runs the decryption without touching the state.
func (k *EncryptedKey) decrypt(ctx context.Context, password string,
	progress scrypt.ProgressFunc) (*DecryptedKey, error) {

	p := &k.payload
	if p.ECMultiplied {
		str := "decrypting EC-multiplied keys is not supported"
		return nil, makeError(ErrUnsupportedFormat, str)
	}

	start := time.Now()
	derived, err := deriveKey(ctx, password, p.AddressHash, progress)
	if err != nil {
		return nil, err
	}
	defer clear(derived)

	privBytes, err := decryptHalves(derived, p)
	if err != nil {
		return nil, err
	}
	defer clear(privBytes)

	// A wrong password produces a random scalar which is almost always
	// valid, so range failures are reported the same way as an address
	// mismatch.
	priv, err := keys.PrivKeyFromBytes(k.params, privBytes)
	if err != nil {
		return nil, makeError(ErrWrongPassword, "wrong password")
	}

	compressed := p.Compressed()
	addr := priv.PubKey(compressed).Address(k.net)
	checksum := addressHash(addr)
	if !bytes.Equal(checksum[:], p.AddressHash[:]) {
		return nil, makeError(ErrWrongPassword, "wrong password")
	}

	log.Debugf("Decrypted key for %s in %v", addr, time.Since(start))
	return &DecryptedKey{
		PrivateKey: priv,
		Compressed: compressed,
		Address:    addr,
	}, nil
}

// Decrypt parses text and decrypts it with password.  See
// EncryptedKey.Decrypt for the error semantics.
func Decrypt(ctx context.Context, text, password string, net *keys.NetParams,
	progress scrypt.ProgressFunc) (*DecryptedKey, error) {

	k, err := Parse(text, net)
	if err != nil {
		return nil, err
	}
	return k.Decrypt(ctx, password, progress)
}
