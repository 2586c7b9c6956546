// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/davecgh/go-spew/spew"
	"github.com/paybullion/keycore/bytecodec"
	"github.com/paybullion/keycore/ec"
	"github.com/paybullion/keycore/hashes"
	"github.com/paybullion/keycore/keys"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// hexToBytes converts the passed hex string into bytes and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

const (
	examplePubKey = "02a673638cb9587cb68ea08dbef685c6f2d2a751a8b3c6f2a7e9a4999e6e4bfaf5"
	exampleSig    = "30450220090ebfb3690a0ff115bb1b38b8b323a667b7653454f1bccb06d4bb" +
		"dca42c2079022100ec95778b51e7071cb1205f8bde9af6592fc978b0452dafe599" +
		"481c46d6b2e479"
)

// TestParseSignature ensures the two integer grammar is parsed and that every
// malformed input is rejected with the expected kind.
func TestParseSignature(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		err  error
		r, s int64
	}{{
		name: "minimal",
		sig:  "3006020101020102",
		r:    1,
		s:    2,
	}, {
		name: "high bit magnitude is non-negative",
		sig:  "3006020181020101",
		r:    0x81,
		s:    1,
	}, {
		name: "zero r decodes",
		sig:  "3006020100020101",
		r:    0,
		s:    1,
	}, {
		name: "too short",
		sig:  "300502010102",
		err:  ErrSigTooShort,
	}, {
		name: "empty",
		sig:  "",
		err:  ErrSigTooShort,
	}, {
		name: "bad sequence id",
		sig:  "3106020101020101",
		err:  ErrSigInvalidSeqID,
	}, {
		name: "declared length past end",
		sig:  "3007020101020101",
		err:  ErrSigInvalidDataLen,
	}, {
		name: "declared length larger than integers",
		sig:  "300702010102010100",
		err:  ErrSigInvalidDataLen,
	}, {
		name: "bad R id",
		sig:  "3006030101020101",
		err:  ErrSigInvalidRIntID,
	}, {
		name: "zero R length",
		sig:  "3006020002010100",
		err:  ErrSigZeroRLen,
	}, {
		name: "R length past end",
		sig:  "3006020501020101",
		err:  ErrSigTooShort,
	}, {
		name: "bad S id",
		sig:  "3006020101030101",
		err:  ErrSigInvalidSIntID,
	}, {
		name: "zero S length",
		sig:  "3006020101020000",
		err:  ErrSigZeroSLen,
	}, {
		name: "declared length shorter than integers",
		sig:  "3005020101020101",
		err:  ErrSigTooShort,
	}}

	for _, test := range tests {
		sig, err := ParseSignatureBytes(hexToBytes(test.sig))
		if !errors.Is(err, test.err) {
			t.Errorf("%s: mismatched err -- got %v, want %v", test.name,
				err, test.err)
			continue
		}
		if err != nil {
			var sigErr Error
			require.True(t, errors.As(err, &sigErr), test.name)
			continue
		}
		require.Equal(t, test.r, sig.R().Int64(), test.name)
		require.Equal(t, test.s, sig.S().Int64(), test.name)
	}
}

// TestParseSignatureWithHashType ensures exactly one hash type byte must
// follow the signature.
func TestParseSignatureWithHashType(t *testing.T) {
	raw := hexToBytes(exampleSig)

	sig, hashType, err := ParseSignatureWithHashType(append(bytes.Clone(raw), 0x01))
	require.NoError(t, err)
	require.Equal(t, byte(0x01), hashType)
	require.Equal(t, raw, sig.Serialize())

	_, _, err = ParseSignatureWithHashType(raw)
	require.ErrorIs(t, err, ErrSigMissingHashType)

	_, _, err = ParseSignatureWithHashType(append(bytes.Clone(raw), 0x01, 0x01))
	require.ErrorIs(t, err, ErrSigTrailingBytes)

	_, err = ParseSignatureBytes(append(bytes.Clone(raw), 0x01))
	require.ErrorIs(t, err, ErrSigTrailingBytes)

	// The reader is left positioned after the signature.
	r := bytecodec.NewReader(append(bytes.Clone(raw), 0xaa, 0xbb))
	_, err = ParseSignature(r)
	require.NoError(t, err)
	require.Equal(t, 2, r.Available())
}

// TestSignatureSerializeRoundTrip ensures decoding an encoded signature
// yields the same values for magnitudes of every length up to 32 bytes.
func TestSignatureSerializeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rb := rapid.SliceOfN(rapid.Byte(), 1, 32).Draw(t, "r")
		sb := rapid.SliceOfN(rapid.Byte(), 1, 32).Draw(t, "s")
		sig := NewSignature(new(big.Int).SetBytes(rb), new(big.Int).SetBytes(sb))

		serialized := sig.Serialize()
		got, err := ParseSignatureBytes(serialized)
		if err != nil {
			t.Fatalf("parse %x: %v", serialized, err)
		}
		if !got.IsEqual(sig) {
			t.Fatalf("round trip mismatch: %s", spew.Sdump(sig, got))
		}
		if !bytes.Equal(got.Serialize(), serialized) {
			t.Fatalf("re-serialization mismatch for %x", serialized)
		}
	})

	// Values with the high bit set gain a padding byte.
	sig := NewSignature(big.NewInt(0x80), big.NewInt(0x7f))
	require.Equal(t, hexToBytes("3007020200800201"+"7f"), sig.Serialize())

	// Zero is encoded with a single byte.
	sig = NewSignature(new(big.Int), big.NewInt(1))
	require.Equal(t, hexToBytes("3006020100020101"), sig.Serialize())
}

// TestVerifyKnownSignature verifies a known good signature and ensures any
// tampering makes it fail.
func TestVerifyKnownSignature(t *testing.T) {
	params := ec.S256()
	pubKey, err := keys.ParsePubKey(params, hexToBytes(examplePubKey))
	require.NoError(t, err)
	sig, err := ParseSignatureBytes(hexToBytes(exampleSig))
	require.NoError(t, err)

	hash := hashes.DoubleHashB([]byte("test message"))
	require.True(t, sig.Verify(hash, pubKey))
	require.True(t, VerifyStandardSignature(hash,
		append(hexToBytes(exampleSig), 0x01), pubKey))

	require.False(t, sig.Verify(hashes.DoubleHashB([]byte("test messagf")), pubKey))
	require.False(t, VerifyStandardSignature(hash, hexToBytes(exampleSig), pubKey))
	require.False(t, VerifyStandardSignature(hash, []byte{0x30}, pubKey))

	// r and s outside [1, N-1] never verify.
	require.False(t, NewSignature(new(big.Int), sig.S()).Verify(hash, pubKey))
	require.False(t, NewSignature(sig.R(), new(big.Int)).Verify(hash, pubKey))
	require.False(t, NewSignature(params.N, sig.S()).Verify(hash, pubKey))
	require.False(t, NewSignature(sig.R(), params.N).Verify(hash, pubKey))

	// The point at infinity is never a valid key.
	require.False(t, Verify(params, hash, sig, ec.Infinity()))

	// An undecodable key does not verify.
	bad := keys.NewPublicKey(params, []byte{0x02, 0x01})
	require.False(t, sig.Verify(hash, bad))
}

// TestHashToInt ensures hashes longer than the group order are truncated to
// their leftmost bits.
func TestHashToInt(t *testing.T) {
	params := ec.S256()

	short := []byte{0x01, 0x02}
	require.Equal(t, int64(0x0102), hashToInt(params, short).Int64())

	full := bytes.Repeat([]byte{0xff}, 32)
	require.Equal(t, 0, hashToInt(params, full).Cmp(new(big.Int).SetBytes(full)))

	long := append(bytes.Repeat([]byte{0xab}, 32), bytes.Repeat([]byte{0xcd}, 32)...)
	want := new(big.Int).SetBytes(long[:32])
	require.Equal(t, 0, hashToInt(params, long).Cmp(want))
}

// TestFormatMessageForSigning ensures the message frame uses byte lengths.
func TestFormatMessageForSigning(t *testing.T) {
	header := append([]byte{0x18}, []byte("Bitcoin Signed Message:\n")...)

	tests := []struct {
		name   string
		msg    string
		prefix []byte
	}{{
		name:   "empty",
		msg:    "",
		prefix: []byte{0x00},
	}, {
		name:   "ascii",
		msg:    "hello",
		prefix: []byte{0x05},
	}, {
		name:   "multibyte counts bytes",
		msg:    "grüße",
		prefix: []byte{0x07},
	}, {
		name:   "compact size boundary",
		msg:    strings.Repeat("a", 0xfd),
		prefix: []byte{0xfd, 0xfd, 0x00},
	}}

	for _, test := range tests {
		want := append(bytes.Clone(header), test.prefix...)
		want = append(want, []byte(test.msg)...)
		require.Equal(t, want, FormatMessageForSigning(test.msg), test.name)

		digest := MessageDigest(test.msg)
		require.Equal(t, hashes.DoubleHashB(want), digest[:], test.name)
	}
}

// TestVerifyMessageProperties signs random messages with btcec and ensures
// they verify, and that flipping any bit of the message, r or s makes
// verification fail.
func TestVerifyMessageProperties(t *testing.T) {
	params := ec.S256()

	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "priv")
		if !params.IsValidScalar(new(big.Int).SetBytes(b)) {
			t.Skip("scalar out of range")
		}
		compressed := rapid.Bool().Draw(t, "compressed")
		msg := rapid.String().Draw(t, "msg")

		priv, err := keys.PrivKeyFromBytes(params, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pubKey := priv.PubKey(compressed)

		oracleKey, _ := btcec.PrivKeyFromBytes(b)
		digest := MessageDigest(msg)
		sigBytes := btcecdsa.Sign(oracleKey, digest[:]).Serialize()

		if !VerifyMessage(msg, sigBytes, pubKey) {
			t.Fatalf("valid signature rejected: %s", spew.Sdump(msg, sigBytes))
		}

		// Flip one bit of the message.
		if len(msg) > 0 {
			mb := []byte(msg)
			i := rapid.IntRange(0, len(mb)*8-1).Draw(t, "msgBit")
			mb[i/8] ^= 1 << (i % 8)
			if VerifyMessage(string(mb), sigBytes, pubKey) {
				t.Fatalf("tampered message verified")
			}
		}

		sig, err := ParseSignatureBytes(sigBytes)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		bit := rapid.IntRange(0, 255).Draw(t, "sigBit")
		flip := new(big.Int).Lsh(big.NewInt(1), uint(bit))

		flippedR := NewSignature(new(big.Int).Xor(sig.R(), flip), sig.S())
		if flippedR.Verify(digest[:], pubKey) {
			t.Fatalf("tampered r verified")
		}
		flippedS := NewSignature(sig.R(), new(big.Int).Xor(sig.S(), flip))
		if flippedS.Verify(digest[:], pubKey) {
			t.Fatalf("tampered s verified")
		}
	})
}

// TestPubKeyCache ensures parsed keys are reused and invalid keys are not
// cached.
func TestPubKeyCache(t *testing.T) {
	params := ec.S256()
	cache := NewPubKeyCache(params, 2)
	serialized := hexToBytes(examplePubKey)

	require.False(t, cache.Contains(serialized))
	first, err := cache.PubKey(serialized)
	require.NoError(t, err)
	require.True(t, cache.Contains(serialized))
	second, err := cache.PubKey(serialized)
	require.NoError(t, err)
	require.Same(t, first, second)

	bad := []byte{0x05, 0x01}
	_, err = cache.PubKey(bad)
	require.ErrorIs(t, err, keys.ErrPubKeyInvalidLen)
	require.False(t, cache.Contains(bad))

	// Adding more keys than the limit evicts the least recently used.
	for k := int64(2); k <= 3; k++ {
		priv, err := keys.NewPrivateKey(params, big.NewInt(k))
		require.NoError(t, err)
		_, err = cache.PubKey(priv.PubKey(true).Bytes())
		require.NoError(t, err)
	}
	require.False(t, cache.Contains(serialized))

	// Message verification through the cache.
	b := bytes.Repeat([]byte{0x11}, 32)
	priv, err := keys.PrivKeyFromBytes(params, b)
	require.NoError(t, err)
	oracleKey, _ := btcec.PrivKeyFromBytes(b)
	digest := MessageDigest("cached")
	sig := btcecdsa.Sign(oracleKey, digest[:]).Serialize()

	pub := priv.PubKey(false).Bytes()
	require.True(t, cache.VerifyMessage("cached", sig, pub))
	require.True(t, cache.Contains(pub))
	require.False(t, cache.VerifyMessage("cache", sig, pub))
	require.False(t, cache.VerifyMessage("cached", sig, bad))

	require.NotNil(t, NewPubKeyCache(params, 0))
}
