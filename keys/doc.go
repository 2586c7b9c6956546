// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package keys provides secp256k1 public and private keys together with the
encodings a wallet needs for them.

Public keys are held in their serialized SEC form, either 33 byte compressed
(0x02 or 0x03 followed by X) or 65 byte uncompressed (0x04 followed by X and
Y).  The curve point and the hash160 fingerprint of a PublicKey are derived
lazily, at most once, and are safe to request from multiple goroutines.

Private keys are 32 byte scalars in the range [1, N-1].  They can be
exported and imported using the wallet import format (WIF), and their
pay-to-pubkey-hash addresses are produced for the network described by a
NetParams value.
*/
package keys
