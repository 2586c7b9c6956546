// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bytecodec

import (
	"encoding/binary"
	"errors"
)

// ErrInsufficientBytes is returned when a read requests more bytes than
// remain in the underlying buffer.
var ErrInsufficientBytes = errors.New("insufficient bytes")

// Reader is a cursor over a byte slice.  It does not copy the slice, so the
// caller must not modify it while the Reader is in use.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Available returns the number of unread bytes.
func (r *Reader) Available() int {
	return len(r.buf) - r.pos
}

// Position returns the current offset of the cursor.
func (r *Reader) Position() int {
	return r.pos
}

// Get reads a single byte.
func (r *Reader) Get() (byte, error) {
	if r.Available() < 1 {
		return 0, ErrInsufficientBytes
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// GetBytes reads the next n bytes.  The returned slice is a copy.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	if n < 0 || r.Available() < n {
		return nil, ErrInsufficientBytes
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Available() < n {
		return ErrInsufficientBytes
	}
	r.pos += n
	return nil
}

// GetUint16LE reads a little endian uint16.
func (r *Reader) GetUint16LE() (uint16, error) {
	if r.Available() < 2 {
		return 0, ErrInsufficientBytes
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

// GetUint32LE reads a little endian uint32.
func (r *Reader) GetUint32LE() (uint32, error) {
	if r.Available() < 4 {
		return 0, ErrInsufficientBytes
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// GetUint64LE reads a little endian uint64.
func (r *Reader) GetUint64LE() (uint64, error) {
	if r.Available() < 8 {
		return 0, ErrInsufficientBytes
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// GetCompactSize reads a variable length integer.  The cursor is not moved
// when the full encoding is not available.
func (r *Reader) GetCompactSize() (uint64, error) {
	start := r.pos
	discriminant, err := r.Get()
	if err != nil {
		return 0, err
	}

	var v uint64
	switch discriminant {
	case 0xff:
		v, err = r.GetUint64LE()
	case 0xfe:
		var v32 uint32
		v32, err = r.GetUint32LE()
		v = uint64(v32)
	case 0xfd:
		var v16 uint16
		v16, err = r.GetUint16LE()
		v = uint64(v16)
	default:
		v = uint64(discriminant)
	}
	if err != nil {
		r.pos = start
		return 0, err
	}
	return v, nil
}
