// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"github.com/decred/dcrd/lru"
	"github.com/paybullion/keycore/ec"
	"github.com/paybullion/keycore/keys"
)

// DefaultPubKeyCacheSize is the number of parsed keys kept by a cache made
// with a zero size.
const DefaultPubKeyCacheSize = 256

// PubKeyCache keeps recently parsed public keys by their serialization so
// that repeated verification against the same signer reuses the decoded
// point.  It is safe for concurrent use.
type PubKeyCache struct {
	params *ec.Params
	cache  lru.KVCache
}

// NewPubKeyCache returns a cache holding at most size keys for params.
func NewPubKeyCache(params *ec.Params, size uint) *PubKeyCache {
	if size == 0 {
		size = DefaultPubKeyCacheSize
	}
	return &PubKeyCache{
		params: params,
		cache:  lru.NewKVCache(size),
	}
}

// PubKey returns the validated public key for serialized, parsing it only on
// a cache miss.  Invalid keys are not cached.
func (c *PubKeyCache) PubKey(serialized []byte) (*keys.PublicKey, error) {
	if v, ok := c.cache.Lookup(string(serialized)); ok {
		return v.(*keys.PublicKey), nil
	}

	pk, err := keys.ParsePubKey(c.params, serialized)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(serialized), pk)
	return pk, nil
}

// Contains returns whether serialized is cached.
func (c *PubKeyCache) Contains(serialized []byte) bool {
	return c.cache.Contains(string(serialized))
}

// VerifyMessage parses the serialized public key through the cache and
// verifies a message signature against it.
func (c *PubKeyCache) VerifyMessage(msg string, sigStr, serializedPubKey []byte) bool {
	pk, err := c.PubKey(serializedPubKey)
	if err != nil {
		log.Debugf("Rejecting public key: %v", err)
		return false
	}
	return VerifyMessage(msg, sigStr, pk)
}
