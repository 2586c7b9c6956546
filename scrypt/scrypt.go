// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scrypt implements the scrypt key derivation function as defined in
// RFC 7914 with two additions needed by interactive callers: completion
// reporting and cooperative cancellation.
//
// The derivation is pure CPU work.  It is only interrupted at progress
// points, which occur at the start of every lane and every progressInterval
// iterations of the sequential memory-hard mixing loop, so the latency of a
// cancellation is bounded by one such mixing round.
package scrypt

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/salsa20/salsa"
)

const (
	// salsaBlockSize is the size of the Salsa20/8 core input and output.
	salsaBlockSize = 64

	// progressInterval is the number of ROMix iterations between progress
	// points.
	progressInterval = 1024
)

// ProgressFunc receives the completed fraction of a derivation, a value in
// [0, 1] that never decreases during a single call to Key.
type ProgressFunc func(fraction float64)

// progressTracker couples the caller's context and progress callback with
// the running step count of a derivation.
type progressTracker struct {
	ctx      context.Context
	report   ProgressFunc
	total    float64
	lastSent float64
}

// checkpoint reports the completed number of steps and returns an error when
// the derivation must stop.
func (t *progressTracker) checkpoint(done int) error {
	if err := t.ctx.Err(); err != nil {
		str := fmt.Sprintf("key derivation canceled at %.1f%%: %v",
			100*float64(done)/t.total, err)
		return makeError(ErrCanceled, str)
	}
	if t.report != nil {
		fraction := float64(done) / t.total
		if fraction > t.lastSent {
			t.lastSent = fraction
			t.report(fraction)
		}
	}
	return nil
}

// blockMix computes BlockMix_{Salsa20/8,r} of in and stores it in out.  Both
// slices must be 128*r bytes and must not overlap.
func blockMix(in, out []byte, r int) {
	var x, t [salsaBlockSize]byte
	copy(x[:], in[(2*r-1)*salsaBlockSize:])

	for i := 0; i < 2*r; i++ {
		block := in[i*salsaBlockSize : (i+1)*salsaBlockSize]
		subtle.XORBytes(t[:], x[:], block)
		salsa.Core208(&x, &t)

		// Even blocks fill the first half of the output and odd blocks
		// the second half.
		dst := (i / 2) * salsaBlockSize
		if i%2 == 1 {
			dst += r * salsaBlockSize
		}
		copy(out[dst:dst+salsaBlockSize], x[:])
	}
}

// integerify interprets the first eight bytes of the last 64 byte block of b
// as a little endian integer.
func integerify(b []byte, r int) uint64 {
	return binary.LittleEndian.Uint64(b[(2*r-1)*salsaBlockSize:])
}

// roMix runs the sequential memory-hard function over b in place.  v must be
// n*128*r bytes of scratch memory and y must be 128*r bytes.  stepBase is the
// number of steps completed before this lane started.
func roMix(b, v, y []byte, n, r int, tracker *progressTracker, stepBase int) error {
	blockLen := 128 * r
	x := b

	for i := 0; i < n; i++ {
		if i%progressInterval == 0 {
			if err := tracker.checkpoint(stepBase + i); err != nil {
				return err
			}
		}
		copy(v[i*blockLen:(i+1)*blockLen], x)
		blockMix(x, y, r)
		x, y = y, x
	}

	mask := uint64(n - 1)
	for i := 0; i < n; i++ {
		if i%progressInterval == 0 {
			if err := tracker.checkpoint(stepBase + n + i); err != nil {
				return err
			}
		}
		j := int(integerify(x, r) & mask)
		subtle.XORBytes(x, x, v[j*blockLen:(j+1)*blockLen])
		blockMix(x, y, r)
		x, y = y, x
	}

	// After an even number of swaps x is b again, so only copy when the
	// result lives in the scratch block.
	if &x[0] != &b[0] {
		copy(b, x)
	}
	return nil
}

// validateParams returns an error when the cost parameters are unusable.
func validateParams(n, r, p, keyLen int) error {
	switch {
	case n <= 1 || n&(n-1) != 0:
		str := fmt.Sprintf("N must be > 1 and a power of 2, got %d", n)
		return makeError(ErrInvalidParams, str)

	case r <= 0 || p <= 0:
		str := fmt.Sprintf("r and p must be positive, got r=%d p=%d", r, p)
		return makeError(ErrInvalidParams, str)

	case uint64(r)*uint64(p) >= 1<<30 || r > math.MaxInt/128/p ||
		r > math.MaxInt/256 || n > math.MaxInt/128/r:
		str := fmt.Sprintf("parameters are too large: N=%d r=%d p=%d",
			n, r, p)
		return makeError(ErrInvalidParams, str)

	case keyLen <= 0:
		str := fmt.Sprintf("key length must be positive, got %d", keyLen)
		return makeError(ErrInvalidParams, str)
	}
	return nil
}

// Key derives a key of keyLen bytes from password and salt using the cost
// parameters N (CPU/memory cost, a power of two), r (block size) and p
// (parallelization).
//
// progress may be nil.  When non-nil it is invoked from the calling goroutine
// at every progress point and finally with 1.0 on success.  If ctx is done at
// a progress point the derivation stops and an error matching ErrCanceled is
// returned.
func Key(ctx context.Context, password, salt []byte, N, r, p, keyLen int,
	progress ProgressFunc) ([]byte, error) {

	if err := validateParams(N, r, p, keyLen); err != nil {
		return nil, err
	}

	start := time.Now()
	log.Debugf("Deriving %d byte key (N=%d, r=%d, p=%d)", keyLen, N, r, p)

	stepsPerLane := 2 * N
	tracker := &progressTracker{
		ctx:    ctx,
		report: progress,
		total:  float64(p * stepsPerLane),
	}

	blockLen := 128 * r
	b := pbkdf2.Key(password, salt, 1, p*blockLen, sha256.New)
	v := make([]byte, N*blockLen)
	y := make([]byte, blockLen)

	for lane := 0; lane < p; lane++ {
		chunk := b[lane*blockLen : (lane+1)*blockLen]
		err := roMix(chunk, v, y, N, r, tracker, lane*stepsPerLane)
		if err != nil {
			log.Debugf("Key derivation aborted: %v", err)
			return nil, err
		}
	}

	// One last check so a cancellation that raced the final mixing round
	// is still honoured.
	if err := tracker.checkpoint(p * stepsPerLane); err != nil {
		log.Debugf("Key derivation aborted: %v", err)
		return nil, err
	}

	key := pbkdf2.Key(password, b, 1, keyLen, sha256.New)
	log.Debugf("Key derivation finished in %v", time.Since(start))
	return key, nil
}
