// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package elements

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	t.Run("TooSmall", func(t *testing.T) {
		t.Parallel()
		testCases := []struct {
			name string
			fn   func(start uint, dst []byte) (int, error)
			need int
		}{
			{"byte", func(s uint, d []byte) (int, error) { return WriteByte(s, d, 0x01) }, 1},
			{"int32", func(s uint, d []byte) (int, error) { return WriteInt32(s, d, 1) }, 4},
			{"int64", func(s uint, d []byte) (int, error) { return WriteInt64(s, d, 1) }, 8},
			{"double", func(s uint, d []byte) (int, error) { return WriteDouble(s, d, 1) }, 8},
			{"cstring", func(s uint, d []byte) (int, error) { return WriteCString(s, d, "ab") }, 3},
			{"string", func(s uint, d []byte) (int, error) { return WriteString(s, d, "ab") }, 7},
			{"objectid", func(s uint, d []byte) (int, error) { return WriteObjectID(s, d, [12]byte{}) }, 12},
			{"timestamp", func(s uint, d []byte) (int, error) { return WriteTimestamp(s, d, 1, 2) }, 8},
			{"decimal128", func(s uint, d []byte) (int, error) { return WriteDecimal128(s, d, 1, 2) }, 16},
			{"regex", func(s uint, d []byte) (int, error) { return WriteRegex(s, d, "a", "i") }, 4},
			{"binary", func(s uint, d []byte) (int, error) { return WriteBinary(s, d, 0x00, []byte{0x01}) }, 6},
			{"legacy binary", func(s uint, d []byte) (int, error) { return WriteBinary(s, d, 0x02, []byte{0x01}) }, 10},
		}

		for _, tc := range testCases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				// Exactly enough space succeeds.
				n, err := tc.fn(0, make([]byte, tc.need))
				require.NoError(t, err)
				require.Equal(t, tc.need, n)

				// One byte short fails, and a start offset counts against the
				// available space.
				_, err = tc.fn(0, make([]byte, tc.need-1))
				require.Equal(t, ErrTooSmall, err)
				_, err = tc.fn(1, make([]byte, tc.need))
				require.Equal(t, ErrTooSmall, err)
			})
		}
	})
	t.Run("Offsets", func(t *testing.T) {
		t.Parallel()
		dst := make([]byte, 8)
		n, err := WriteInt32(2, dst, 0x01020304)
		require.NoError(t, err)
		require.Equal(t, 4, n)
		require.Equal(t, []byte{0x00, 0x00, 0x04, 0x03, 0x02, 0x01, 0x00, 0x00}, dst)
	})
	t.Run("String", func(t *testing.T) {
		t.Parallel()
		dst := make([]byte, 8)
		n, err := WriteString(0, dst, "abc")
		require.NoError(t, err)
		require.Equal(t, 8, n)
		require.Equal(t, []byte{0x04, 0x00, 0x00, 0x00, 'a', 'b', 'c', 0x00}, dst)
	})
}

func TestRead(t *testing.T) {
	t.Parallel()
	t.Run("Roundtrip", func(t *testing.T) {
		t.Parallel()
		dst := make([]byte, 64)

		n, err := WriteDouble(0, dst, 3.5)
		require.NoError(t, err)
		f, np, ok := ReadDouble(dst, 0)
		require.True(t, ok)
		require.Equal(t, 3.5, f)
		require.Equal(t, uint(n), np)

		n, err = WriteTimestamp(8, dst, 42, 7)
		require.NoError(t, err)
		ts, inc, np, ok := ReadTimestamp(dst, 8)
		require.True(t, ok)
		require.Equal(t, uint32(42), ts)
		require.Equal(t, uint32(7), inc)
		require.Equal(t, uint(8+n), np)

		_, err = WriteDecimal128(16, dst, 0xAABB, 0xCCDD)
		require.NoError(t, err)
		h, l, _, ok := ReadDecimal128(dst, 16)
		require.True(t, ok)
		require.Equal(t, uint64(0xAABB), h)
		require.Equal(t, uint64(0xCCDD), l)
	})
	t.Run("CString", func(t *testing.T) {
		t.Parallel()
		src := []byte{'a', 'b', 0x00, 'c'}

		s, np, ok := ReadCString(src, 0, uint(len(src)))
		require.True(t, ok)
		require.Equal(t, "ab", s)
		require.Equal(t, uint(3), np)

		// The terminator beyond the bound does not count.
		_, _, ok = ReadCString(src, 0, 2)
		require.False(t, ok)
	})
	t.Run("OutOfBounds", func(t *testing.T) {
		t.Parallel()
		src := []byte{0x01, 0x02}

		_, _, ok := ReadInt32(src, 0)
		require.False(t, ok)
		_, _, ok = ReadInt64(src, 0)
		require.False(t, ok)
		_, _, ok = ReadDouble(src, 0)
		require.False(t, ok)
		_, _, ok = ReadObjectID(src, 0)
		require.False(t, ok)
		_, _, ok = ReadByte(src, 2)
		require.False(t, ok)
	})
}
