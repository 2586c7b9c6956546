// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bytecodec

import (
	"encoding/binary"
	"math"
)

// Writer accumulates bytes into a growable buffer.  The zero value is ready
// to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with capacity preallocated for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// PutByte appends a single byte.
func (w *Writer) PutByte(b byte) {
	w.buf = append(w.buf, b)
}

// PutBytes appends b.
func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutUint16LE appends v in little endian order.
func (w *Writer) PutUint16LE(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// PutUint32LE appends v in little endian order.
func (w *Writer) PutUint32LE(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// PutUint64LE appends v in little endian order.
func (w *Writer) PutUint64LE(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// PutCompactSize appends v using the minimal compact size encoding.
func (w *Writer) PutCompactSize(v uint64) {
	switch {
	case v < 0xfd:
		w.PutByte(byte(v))
	case v <= math.MaxUint16:
		w.PutByte(0xfd)
		w.PutUint16LE(uint16(v))
	case v <= math.MaxUint32:
		w.PutByte(0xfe)
		w.PutUint32LE(uint32(v))
	default:
		w.PutByte(0xff)
		w.PutUint64LE(v)
	}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated bytes.  The slice aliases the internal buffer
// until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// CompactSizeLen returns the number of bytes PutCompactSize uses for v.
func CompactSizeLen(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}
