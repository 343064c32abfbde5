// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package elements holds the low level primitives used to encode and decode
// the payloads of BSON elements. The Write functions put a single primitive
// into a destination slice at an explicit cursor position and return the
// number of bytes written; every write is bounds checked and fails with
// ErrTooSmall instead of growing the destination. The Read functions are the
// inverse: they take a source slice and a cursor, and return the decoded
// primitive, the new cursor position, and a boolean indicating whether enough
// bytes were available. A boolean is used instead of an error because the
// only failure mode is the same for every Read: not enough bytes. Callers are
// responsible for any validation beyond length.
package elements

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTooSmall indicates that the destination slice cannot fit the primitive
// at the requested position.
var ErrTooSmall = errors.New("elements: the provided slice is too small")

// WriteByte puts a single byte into dst at start.
func WriteByte(start uint, dst []byte, b byte) (int, error) {
	if uint(len(dst)) < start+1 {
		return 0, ErrTooSmall
	}

	dst[start] = b

	return 1, nil
}

// WriteInt32 puts a little-endian int32 into dst at start.
func WriteInt32(start uint, dst []byte, i int32) (int, error) {
	if uint(len(dst)) < start+4 {
		return 0, ErrTooSmall
	}

	binary.LittleEndian.PutUint32(dst[start:start+4], uint32(i))

	return 4, nil
}

// WriteInt64 puts a little-endian int64 into dst at start.
func WriteInt64(start uint, dst []byte, i int64) (int, error) {
	if uint(len(dst)) < start+8 {
		return 0, ErrTooSmall
	}

	binary.LittleEndian.PutUint64(dst[start:start+8], uint64(i))

	return 8, nil
}

// WriteDouble puts the IEEE 754 bits of f into dst at start, little-endian.
func WriteDouble(start uint, dst []byte, f float64) (int, error) {
	if uint(len(dst)) < start+8 {
		return 0, ErrTooSmall
	}

	binary.LittleEndian.PutUint64(dst[start:start+8], math.Float64bits(f))

	return 8, nil
}

// WriteCString puts the bytes of s followed by a null terminator into dst at
// start.
func WriteCString(start uint, dst []byte, s string) (int, error) {
	if uint(len(dst)) < start+uint(len(s))+1 {
		return 0, ErrTooSmall
	}

	n := copy(dst[start:], s)
	dst[start+uint(n)] = 0x00

	return n + 1, nil
}

// WriteString puts a length-prefixed string into dst at start. The prefix
// counts the bytes of s plus the trailing null terminator.
func WriteString(start uint, dst []byte, s string) (int, error) {
	var total int

	n, err := WriteInt32(start, dst, int32(len(s))+1)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteCString(start+uint(total), dst, s)
	total += n

	return total, err
}

// WriteBytes copies b into dst at start with no framing.
func WriteBytes(start uint, dst []byte, b []byte) (int, error) {
	if uint(len(dst)) < start+uint(len(b)) {
		return 0, ErrTooSmall
	}

	return copy(dst[start:], b), nil
}

// WriteBinary puts a BSON binary payload into dst at start: a length prefix,
// the subtype byte, and the data. The legacy subtype 0x02 carries an extra
// inner length prefix counted by the outer one.
func WriteBinary(start uint, dst []byte, subtype byte, b []byte) (int, error) {
	if subtype == 0x02 {
		return writeLegacyBinary(start, dst, b)
	}

	var total int

	n, err := WriteInt32(start, dst, int32(len(b)))
	start += uint(n)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteByte(start, dst, subtype)
	start += uint(n)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteBytes(start, dst, b)
	total += n

	return total, err
}

func writeLegacyBinary(start uint, dst []byte, b []byte) (int, error) {
	var total int

	n, err := WriteInt32(start, dst, int32(len(b))+4)
	start += uint(n)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteByte(start, dst, 0x02)
	start += uint(n)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteInt32(start, dst, int32(len(b)))
	start += uint(n)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteBytes(start, dst, b)
	total += n

	return total, err
}

// WriteObjectID puts the 12 bytes of oid into dst at start.
func WriteObjectID(start uint, dst []byte, oid [12]byte) (int, error) {
	return WriteBytes(start, dst, oid[:])
}

// WriteTimestamp puts a BSON timestamp into dst at start. The increment i is
// written before the seconds t, matching the wire layout.
func WriteTimestamp(start uint, dst []byte, t uint32, i uint32) (int, error) {
	if uint(len(dst)) < start+8 {
		return 0, ErrTooSmall
	}

	binary.LittleEndian.PutUint32(dst[start:start+4], i)
	binary.LittleEndian.PutUint32(dst[start+4:start+8], t)

	return 8, nil
}

// WriteDecimal128 puts the low then high halves of a decimal128 into dst at
// start.
func WriteDecimal128(start uint, dst []byte, h, l uint64) (int, error) {
	if uint(len(dst)) < start+16 {
		return 0, ErrTooSmall
	}

	binary.LittleEndian.PutUint64(dst[start:start+8], l)
	binary.LittleEndian.PutUint64(dst[start+8:start+16], h)

	return 16, nil
}

// WriteRegex puts a BSON regular expression payload, two consecutive
// cstrings, into dst at start.
func WriteRegex(start uint, dst []byte, pattern, options string) (int, error) {
	var total int

	n, err := WriteCString(start, dst, pattern)
	total += n
	if err != nil {
		return total, err
	}

	n, err = WriteCString(start+uint(total), dst, options)
	total += n

	return total, err
}

// ReadByte returns the byte at pos and the new cursor position.
func ReadByte(src []byte, pos uint) (byte, uint, bool) {
	if uint(len(src)) < pos+1 {
		return 0, pos, false
	}
	return src[pos], pos + 1, true
}

// ReadInt32 returns the little-endian int32 at pos and the new cursor
// position.
func ReadInt32(src []byte, pos uint) (int32, uint, bool) {
	if uint(len(src)) < pos+4 {
		return 0, pos, false
	}
	return int32(binary.LittleEndian.Uint32(src[pos : pos+4])), pos + 4, true
}

// ReadInt64 returns the little-endian int64 at pos and the new cursor
// position.
func ReadInt64(src []byte, pos uint) (int64, uint, bool) {
	if uint(len(src)) < pos+8 {
		return 0, pos, false
	}
	return int64(binary.LittleEndian.Uint64(src[pos : pos+8])), pos + 8, true
}

// ReadDouble returns the float64 whose bits are at pos and the new cursor
// position.
func ReadDouble(src []byte, pos uint) (float64, uint, bool) {
	if uint(len(src)) < pos+8 {
		return 0, pos, false
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(src[pos : pos+8])), pos + 8, true
}

// ReadCString returns the null-terminated string starting at pos, without its
// terminator, and the cursor position just past the terminator. The scan is
// bounded by end rather than the length of src so callers can confine a read
// to a single document.
func ReadCString(src []byte, pos, end uint) (string, uint, bool) {
	if end > uint(len(src)) {
		end = uint(len(src))
	}

	i := pos
	for ; i < end && src[i] != 0x00; i++ {
	}
	if i == end || src[i] != 0x00 {
		return "", pos, false
	}

	return string(src[pos:i]), i + 1, true
}

// ReadObjectID returns the 12 bytes at pos and the new cursor position.
func ReadObjectID(src []byte, pos uint) ([12]byte, uint, bool) {
	var oid [12]byte
	if uint(len(src)) < pos+12 {
		return oid, pos, false
	}
	copy(oid[:], src[pos:pos+12])
	return oid, pos + 12, true
}

// ReadTimestamp returns the timestamp components at pos, seconds then
// increment, and the new cursor position.
func ReadTimestamp(src []byte, pos uint) (t uint32, i uint32, newPos uint, ok bool) {
	if uint(len(src)) < pos+8 {
		return 0, 0, pos, false
	}
	i = binary.LittleEndian.Uint32(src[pos : pos+4])
	t = binary.LittleEndian.Uint32(src[pos+4 : pos+8])
	return t, i, pos + 8, true
}

// ReadDecimal128 returns the high and low decimal128 halves at pos and the
// new cursor position.
func ReadDecimal128(src []byte, pos uint) (h uint64, l uint64, newPos uint, ok bool) {
	if uint(len(src)) < pos+16 {
		return 0, 0, pos, false
	}
	l = binary.LittleEndian.Uint64(src[pos : pos+8])
	h = binary.LittleEndian.Uint64(src[pos+8 : pos+16])
	return h, l, pos + 16, true
}
