// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bytecodec provides a bounds checked cursor for reading and a growable
buffer for writing the small binary structures used throughout keycore, such
as signature encodings and the framing of signed messages.

Reads never panic.  Any attempt to consume more bytes than remain returns
ErrInsufficientBytes and leaves the cursor where it was.

Integers use the Bitcoin conventions: fixed width values are little endian and
variable length values use the compact size encoding:

	value < 0xfd         1 byte
	value <= 0xffff      0xfd followed by uint16
	value <= 0xffffffff  0xfe followed by uint32
	otherwise            0xff followed by uint64
*/
package bytecodec
