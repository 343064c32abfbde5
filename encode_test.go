// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticMarshaler struct {
	val Val
	err error
}

func (sm staticMarshaler) MarshalValue() (Val, error) { return sm.val, sm.err }

func TestEncode(t *testing.T) {
	t.Parallel()
	t.Run("EmptyDocument", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{}.MarshalBSON()
		require.NoError(t, err)
		require.Equal(t, []byte{0x05, 0x00, 0x00, 0x00, 0x00}, b)
	})
	t.Run("SingleString", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"a", VC.String("hello")}}.MarshalBSON()
		require.NoError(t, err)
		want := []byte{
			0x12, 0x00, 0x00, 0x00,
			0x02, 'a', 0x00,
			0x06, 0x00, 0x00, 0x00, 'h', 'e', 'l', 'l', 'o', 0x00,
			0x00,
		}
		require.Equal(t, want, b)
	})
	t.Run("Int32AndBoolean", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"i", VC.Int32(256)}, {"b", VC.Boolean(true)}}.MarshalBSON()
		require.NoError(t, err)
		want := []byte{
			0x10, 0x00, 0x00, 0x00,
			0x10, 'i', 0x00, 0x00, 0x01, 0x00, 0x00,
			0x08, 'b', 0x00, 0x01,
			0x00,
		}
		require.Equal(t, want, b)
	})
	t.Run("TimestampIncrementFirst", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"ts", VC.Timestamp(0x01020304, 0x0A0B0C0D)}}.MarshalBSON()
		require.NoError(t, err)
		want := []byte{
			0x11, 0x00, 0x00, 0x00,
			0x11, 't', 's', 0x00,
			0x0D, 0x0C, 0x0B, 0x0A,
			0x04, 0x03, 0x02, 0x01,
			0x00,
		}
		require.Equal(t, want, b)
	})
	t.Run("UndefinedWritesNullTag", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"u", VC.Undefined()}}.MarshalBSON()
		require.NoError(t, err)
		require.Equal(t, []byte{0x08, 0x00, 0x00, 0x00, 0x0A, 'u', 0x00, 0x00}, b)
	})
	t.Run("EmptyScopeBecomesPlainCode", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"c", VC.CodeWithScope("x()", Doc{})}}.MarshalBSON()
		require.NoError(t, err)
		want, err := Doc{{"c", VC.JavaScript("x()")}}.MarshalBSON()
		require.NoError(t, err)
		require.Equal(t, want, b)
		require.Equal(t, byte(TypeJavaScript), b[4])
	})
	t.Run("CodeWithScopeFraming", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"c", VC.CodeWithScope("x()", Doc{{"y", VC.Int32(2)}})}}.MarshalBSON()
		require.NoError(t, err)
		want := []byte{
			0x20, 0x00, 0x00, 0x00,
			0x0F, 'c', 0x00,
			0x18, 0x00, 0x00, 0x00, // container: 4 + (4+3+1) + 12
			0x04, 0x00, 0x00, 0x00, 'x', '(', ')', 0x00,
			0x0C, 0x00, 0x00, 0x00, 0x10, 'y', 0x00, 0x02, 0x00, 0x00, 0x00, 0x00,
			0x00,
		}
		require.Equal(t, want, b)
	})
	t.Run("LegacyBinaryInnerPrefix", func(t *testing.T) {
		t.Parallel()
		b, err := Doc{{"b", VC.BinaryWithSubtype([]byte{0xAA, 0xBB}, SubtypeBinaryOld)}}.MarshalBSON()
		require.NoError(t, err)
		want := []byte{
			0x13, 0x00, 0x00, 0x00,
			0x05, 'b', 0x00,
			0x06, 0x00, 0x00, 0x00, // outer: data + inner prefix
			0x02,
			0x02, 0x00, 0x00, 0x00, // inner: data only
			0xAA, 0xBB,
			0x00,
		}
		require.Equal(t, want, b)
	})
	t.Run("Cursor", func(t *testing.T) {
		t.Parallel()
		d := Doc{{"i", VC.Int32(1)}}
		size, err := d.Size()
		require.NoError(t, err)

		dst := make([]byte, size+3)
		n, err := d.Encode(3, dst, EncodeOptions{})
		require.NoError(t, err)
		require.Equal(t, int(size), n)
		require.Equal(t, []byte{0x00, 0x00, 0x00}, dst[:3])

		_, err = ReadDoc(dst[3:])
		require.NoError(t, err)
	})
	t.Run("TooSmall", func(t *testing.T) {
		t.Parallel()
		d := Doc{{"i", VC.Int32(1)}}
		_, err := d.Encode(0, make([]byte, 4), EncodeOptions{})
		require.True(t, NewErrTooSmall().Equals(err))
	})
	t.Run("MarshalerResolvedFirst", func(t *testing.T) {
		t.Parallel()
		d := Doc{{"m", VC.Marshaler(staticMarshaler{val: VC.String("resolved")})}}
		b, err := d.MarshalBSON()
		require.NoError(t, err)
		want, err := Doc{{"m", VC.String("resolved")}}.MarshalBSON()
		require.NoError(t, err)
		require.Equal(t, want, b)
	})
	t.Run("MarshalerFailure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		d := Doc{{"m", VC.Marshaler(staticMarshaler{err: boom})}}

		// The size pass drops the element, the encoder refuses it.
		size, err := d.Size()
		require.NoError(t, err)
		require.Equal(t, int64(5), size)

		_, err = d.MarshalBSON()
		require.Equal(t, boom, err)
	})
	t.Run("UnsupportedType", func(t *testing.T) {
		t.Parallel()
		d := Doc{{"x", Val{t: Type(0x42)}}}
		_, err := d.MarshalBSON()
		require.Equal(t, UnsupportedTypeError{Type: Type(0x42)}, err)

		// Even with room to spare the encoder must refuse the element rather
		// than write its tag and key.
		dst := make([]byte, 64)
		_, err = d.Encode(0, dst, EncodeOptions{})
		require.Equal(t, UnsupportedTypeError{Type: Type(0x42)}, err)
		require.Equal(t, make([]byte, 60), dst[4:])
	})
	t.Run("MaxDepth", func(t *testing.T) {
		t.Parallel()
		d := Doc{{"a", VC.Document(Doc{{"b", VC.Document(Doc{})}})}}
		_, err := d.MarshalBSONWithOptions(EncodeOptions{MaxDepth: 2})
		require.Equal(t, ErrTooDeep, err)
	})
}
