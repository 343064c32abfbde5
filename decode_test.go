// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ikmak/bsonkit/decimal"
	"github.com/ikmak/bsonkit/objectid"
	"github.com/stretchr/testify/require"
)

func valueComparer(v1, v2 Val) bool    { return v1.Equal(v2) }
func elementComparer(e1, e2 Elem) bool { return e1.Equal(e2) }
func documentComparer(d1, d2 Doc) bool { return d1.Equal(d2) }

func docDiff(t *testing.T, want, got Doc) string {
	t.Helper()
	return cmp.Diff(want, got,
		cmp.Comparer(valueComparer), cmp.Comparer(elementComparer), cmp.Comparer(documentComparer),
	)
}

func TestDecode(t *testing.T) {
	t.Parallel()
	t.Run("Roundtrip", func(t *testing.T) {
		t.Parallel()
		oid, err := objectid.FromHex("5a934e000102030405060708")
		require.NoError(t, err)

		testCases := []struct {
			name string
			doc  Doc
		}{
			{"empty", Doc{}},
			{"scalars", Doc{
				{"f", VC.Double(3.14159)},
				{"s", VC.String("hello world")},
				{"long", VC.String("a string too long for the inline space")},
				{"i32", VC.Int32(-42)},
				{"i64", VC.Int64(1 << 40)},
				{"b", VC.Boolean(true)},
				{"n", VC.Null()},
				{"dt", VC.DateTime(1565545664000)},
			}},
			{"nested", Doc{
				{"doc", VC.Document(Doc{{"inner", VC.String("x")}})},
				{"arr", VC.Array(Arr{VC.Int32(1), VC.Document(Doc{{"k", VC.Boolean(false)}}), VC.Array(Arr{VC.Null()})})},
			}},
			{"exotic", Doc{
				{"oid", VC.ObjectID(oid)},
				{"re", VC.Regex("^a.*z$", "is")},
				{"bin", VC.Binary([]byte{0x01, 0x02, 0x03})},
				{"binold", VC.BinaryWithSubtype([]byte{0x04, 0x05}, SubtypeBinaryOld)},
				{"ptr", VC.DBPointer("db.coll", oid)},
				{"js", VC.JavaScript("var x;")},
				{"sym", VC.Symbol("sigil")},
				{"cws", VC.CodeWithScope("f()", Doc{{"v", VC.Int32(1)}})},
				{"ts", VC.Timestamp(1565545664, 3)},
				{"dec", VC.Decimal128(decimal.NewDecimal128(0x3040000000000000, 42))},
				{"min", VC.MinKey()},
				{"max", VC.MaxKey()},
			}},
		}

		for _, tc := range testCases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				b, err := tc.doc.MarshalBSON()
				require.NoError(t, err)
				got, err := ReadDoc(b)
				require.NoError(t, err)
				if diff := docDiff(t, tc.doc, got); diff != "" {
					t.Errorf("Decoded document does not match. (-want +got):\n%s", diff)
				}
			})
		}
	})
	t.Run("UndefinedTag", func(t *testing.T) {
		t.Parallel()
		src := []byte{0x08, 0x00, 0x00, 0x00, 0x06, 'u', 0x00, 0x00}
		doc, err := ReadDoc(src)
		require.NoError(t, err)
		require.Len(t, doc, 1)
		require.Equal(t, TypeUndefined, doc[0].Value.Type())
	})
	t.Run("UndefinedRoundTrip", func(t *testing.T) {
		t.Parallel()
		d := Doc{
			{"gone", VC.Undefined()},
			{"kept", VC.Int32(7)},
			{"arr", VC.Array(Arr{VC.Int32(1), VC.Undefined(), VC.String("last")})},
		}

		b, err := d.MarshalBSONWithOptions(EncodeOptions{IgnoreUndefined: true})
		require.NoError(t, err)
		out, err := ReadDoc(b)
		require.NoError(t, err)

		// The document element is dropped entirely, while the array slot
		// comes back as a null placeholder at the same index.
		require.Equal(t, -1, out.IndexOf("gone"))
		require.Equal(t, int32(7), out.Lookup("kept").Int32())
		arr := out.Lookup("arr").Array()
		require.Len(t, arr, 3)
		require.Equal(t, TypeNull, arr[1].Type())
		require.Equal(t, "last", arr[2].StringValue())

		// Without the option the document element survives as null too.
		b, err = d.MarshalBSON()
		require.NoError(t, err)
		out, err = ReadDoc(b)
		require.NoError(t, err)
		require.Equal(t, TypeNull, out.Lookup("gone").Type())
	})
	t.Run("DBRefDetection", func(t *testing.T) {
		t.Parallel()
		t.Run("detected", func(t *testing.T) {
			t.Parallel()
			ref := DBRef{
				Collection: "users",
				ID:         VC.Int32(7),
				DB:         "app",
				Fields:     Doc{{"shard", VC.Int32(4)}},
			}
			b, err := Doc{{"r", VC.DBRef(ref)}}.MarshalBSON()
			require.NoError(t, err)

			doc, err := ReadDoc(b)
			require.NoError(t, err)
			got, ok := doc[0].Value.DBRefOK()
			require.True(t, ok)
			require.True(t, ref.Equal(got))
		})
		t.Run("wrong leading keys", func(t *testing.T) {
			t.Parallel()
			plain := Doc{{"d", VC.Document(Doc{
				{"$id", VC.Int32(7)},
				{"$ref", VC.String("users")},
			})}}
			b, err := plain.MarshalBSON()
			require.NoError(t, err)

			doc, err := ReadDoc(b)
			require.NoError(t, err)
			require.Equal(t, TypeEmbeddedDocument, doc[0].Value.Type())
		})
		t.Run("non-string ref", func(t *testing.T) {
			t.Parallel()
			plain := Doc{{"d", VC.Document(Doc{
				{"$ref", VC.Int32(1)},
				{"$id", VC.Int32(7)},
			})}}
			b, err := plain.MarshalBSON()
			require.NoError(t, err)

			doc, err := ReadDoc(b)
			require.NoError(t, err)
			require.Equal(t, TypeEmbeddedDocument, doc[0].Value.Type())
		})
	})
	t.Run("Failures", func(t *testing.T) {
		t.Parallel()
		testCases := []struct {
			name string
			src  []byte
			err  error
		}{
			{"too short", []byte{0x05, 0x00}, NewErrTooSmall()},
			{"length too small", []byte{0x04, 0x00, 0x00, 0x00, 0x00}, ErrInvalidLength},
			{"length past buffer", []byte{0xFF, 0x00, 0x00, 0x00, 0x00}, ErrInvalidLength},
			{"missing null", []byte{0x05, 0x00, 0x00, 0x00, 0x01}, ErrMissingNull},
			{"early null", []byte{
				0x0A, 0x00, 0x00, 0x00,
				0x00,
				0x0A, 'u', 0x00, 0x00, 0x00,
			}, ErrInvalidLength},
			{"unterminated key", []byte{
				0x08, 0x00, 0x00, 0x00,
				0x0A, 'a', 'b', 0x00,
			}, ErrInvalidKey},
			{"unknown tag", []byte{
				0x08, 0x00, 0x00, 0x00,
				0x42, 'a', 0x00, 0x00,
			}, UnknownTagError{Tag: 0x42}},
			{"string overruns container", []byte{
				0x10, 0x00, 0x00, 0x00,
				0x02, 'a', 0x00,
				0xFF, 0x00, 0x00, 0x00, 'h', 'i', 0x00,
				0x00, 0x00,
			}, ErrInvalidString},
			{"string missing terminator", []byte{
				0x0F, 0x00, 0x00, 0x00,
				0x02, 'a', 0x00,
				0x03, 0x00, 0x00, 0x00, 'h', 'i', 'X',
				0x00,
			}, ErrInvalidString},
			{"zero string length", []byte{
				0x0C, 0x00, 0x00, 0x00,
				0x02, 'a', 0x00,
				0x00, 0x00, 0x00, 0x00,
				0x00,
			}, ErrInvalidString},
			{"bad boolean byte", []byte{
				0x09, 0x00, 0x00, 0x00,
				0x08, 'b', 0x00, 0x02,
				0x00,
			}, ErrInvalidBooleanType},
			{"bad binary subtype", []byte{
				0x0E, 0x00, 0x00, 0x00,
				0x05, 'b', 0x00,
				0x01, 0x00, 0x00, 0x00, 0x42, 0xAA,
				0x00,
			}, ErrInvalidBinarySubtype},
			{"legacy binary bad inner length", []byte{
				0x11, 0x00, 0x00, 0x00,
				0x05, 'b', 0x00,
				0x04, 0x00, 0x00, 0x00, 0x02, 0x09, 0x00, 0x00, 0x00,
				0x00,
			}, ErrInvalidLength},
			{"code with scope string too large", []byte{
				0x17, 0x00, 0x00, 0x00,
				0x0F, 'c', 0x00,
				0x0F, 0x00, 0x00, 0x00,
				0xFF, 0x00, 0x00, 0x00, 'x', 0x00,
				0x05, 0x00, 0x00, 0x00, 0x00,
				0x00,
			}, ErrStringLargerThanContainer},
		}

		for _, tc := range testCases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				_, err := ReadDoc(tc.src)
				if ets, ok := tc.err.(ErrTooSmall); ok {
					require.True(t, ets.Equals(err))
					return
				}
				require.Equal(t, tc.err, err)
			})
		}
	})
	t.Run("MaxDepth", func(t *testing.T) {
		t.Parallel()
		d := Doc{{"a", VC.Document(Doc{{"b", VC.Document(Doc{})}})}}
		b, err := d.MarshalBSON()
		require.NoError(t, err)

		_, err = ReadDocWithOptions(b, DecodeOptions{MaxDepth: 3})
		require.NoError(t, err)

		_, err = ReadDocWithOptions(b, DecodeOptions{MaxDepth: 2})
		require.Equal(t, ErrTooDeep, err)
	})
	t.Run("UnmarshalBSON", func(t *testing.T) {
		t.Parallel()
		want := Doc{{"x", VC.Int32(9)}}
		b, err := want.MarshalBSON()
		require.NoError(t, err)

		var got Doc
		require.NoError(t, got.UnmarshalBSON(b))
		if diff := docDiff(t, want, got); diff != "" {
			t.Errorf("Unmarshaled document does not match. (-want +got):\n%s", diff)
		}
	})
}
