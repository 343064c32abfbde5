// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"strconv"

	"github.com/ikmak/bsonkit/elements"
)

// MarshalBSONWithOptions is the same as MarshalBSON, but encoding behavior
// can be adjusted through opts.
func (d Doc) MarshalBSONWithOptions(opts EncodeOptions) ([]byte, error) {
	size, err := d.sizeWithOptions(opts)
	if err != nil {
		return nil, err
	}
	b := make([]byte, size)
	if _, err := d.writeByteSlice(0, size, b, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Encode writes the document into dst, beginning at start, and returns the
// number of bytes written. If dst cannot hold the encoded document an
// ErrTooSmall is returned and dst is left unchanged.
func (d Doc) Encode(start uint, dst []byte, opts EncodeOptions) (int, error) {
	size, err := d.sizeWithOptions(opts)
	if err != nil {
		return 0, err
	}
	if int64(len(dst)) < int64(start)+size {
		return 0, NewErrTooSmall()
	}
	return encodeDoc(start, dst, d, opts, 1)
}

func (d Doc) writeByteSlice(start uint, size int64, b []byte, opts EncodeOptions) (int64, error) {
	if int64(len(b)) < int64(start)+size {
		return 0, NewErrTooSmall()
	}
	n, err := encodeDoc(start, b, d, opts, 1)
	return int64(n), err
}

// encodeDoc writes d into dst at start and returns the number of bytes
// written. The length prefix is written last, once the total is known.
func encodeDoc(start uint, dst []byte, d Doc, opts EncodeOptions, depth uint32) (int, error) {
	if depth > opts.maxDepth() {
		return 0, ErrTooDeep
	}

	total := 4
	for _, elem := range d {
		n, err := encodeElem(start+uint(total), dst, elem.Key, elem.Value, opts, depth, false)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := elements.WriteByte(start+uint(total), dst, 0x00)
	total += n
	if err != nil {
		return total, err
	}

	if _, err := elements.WriteInt32(start, dst, int32(total)); err != nil {
		return total, err
	}
	return total, nil
}

func encodeArr(start uint, dst []byte, a Arr, opts EncodeOptions, depth uint32) (int, error) {
	if depth > opts.maxDepth() {
		return 0, ErrTooDeep
	}

	total := 4
	for idx, val := range a {
		n, err := encodeElem(start+uint(total), dst, strconv.Itoa(idx), val, opts, depth, true)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := elements.WriteByte(start+uint(total), dst, 0x00)
	total += n
	if err != nil {
		return total, err
	}

	if _, err := elements.WriteInt32(start, dst, int32(total)); err != nil {
		return total, err
	}
	return total, nil
}

// encodeElem writes the tag byte, the key, and the payload for a single
// element. It returns zero bytes written, with no error, for elements the
// options drop. The skip decisions here mirror sizeValue exactly; the sizer
// and the encoder must agree on which elements appear in the output.
func encodeElem(start uint, dst []byte, key string, v Val, opts EncodeOptions, depth uint32, inArray bool) (int, error) {
	if v.Type() == TypeMarshaler {
		resolved, err := v.Marshaler().MarshalValue()
		if err != nil {
			return 0, err
		}
		if resolved.Type() == TypeMarshaler {
			return 0, UnsupportedTypeError{Type: TypeMarshaler}
		}
		v = resolved
	}

	tag, skip := wireTag(v, opts, inArray)
	if skip {
		return 0, nil
	}
	// wireTag's substitutions always produce valid wire tags, so an invalid
	// tag here means a category with no encoding rule. The sizer dropped the
	// element, so nothing may be written for it.
	if !Type(tag).IsValid() {
		return 0, UnsupportedTypeError{Type: v.Type()}
	}

	var total int
	n, err := elements.WriteByte(start, dst, tag)
	total += n
	if err != nil {
		return total, err
	}

	n, err = elements.WriteCString(start+uint(total), dst, key)
	total += n
	if err != nil {
		return total, err
	}

	n, err = encodePayload(start+uint(total), dst, v, opts, depth)
	total += n
	return total, err
}

// wireTag maps a value to the tag byte written before its key, applying the
// substitutions the tree model calls for: undefined is written as null,
// database references are written as embedded documents, code with an empty
// scope is written as plain code, and functions become code when they are
// serialized at all.
func wireTag(v Val, opts EncodeOptions, inArray bool) (byte, bool) {
	switch v.Type() {
	case TypeUndefined:
		if !inArray && opts.IgnoreUndefined {
			return 0, true
		}
		return byte(TypeNull), false
	case TypeDBRef:
		return byte(TypeEmbeddedDocument), false
	case TypeCodeWithScope:
		if len(v.CodeWithScope().Scope) == 0 {
			return byte(TypeJavaScript), false
		}
		return byte(TypeCodeWithScope), false
	case TypeFunction:
		if !opts.SerializeFunctions {
			return 0, true
		}
		if len(v.Function().Scope) == 0 {
			return byte(TypeJavaScript), false
		}
		return byte(TypeCodeWithScope), false
	default:
		return byte(v.Type()), false
	}
}

func encodePayload(start uint, dst []byte, v Val, opts EncodeOptions, depth uint32) (int, error) {
	switch v.Type() {
	case TypeDouble:
		return elements.WriteDouble(start, dst, v.Double())
	case TypeString, TypeJavaScript, TypeSymbol:
		return elements.WriteString(start, dst, v.string())
	case TypeEmbeddedDocument:
		return encodeDoc(start, dst, v.Document(), opts, depth+1)
	case TypeArray:
		return encodeArr(start, dst, v.Array(), opts, depth+1)
	case TypeBinary:
		bin := v.Binary()
		return elements.WriteBinary(start, dst, bin.Subtype, bin.Data)
	case TypeUndefined, TypeNull, TypeMinKey, TypeMaxKey:
		return 0, nil
	case TypeObjectID:
		return elements.WriteObjectID(start, dst, v.ObjectID())
	case TypeBoolean:
		var b byte
		if v.Boolean() {
			b = 0x01
		}
		return elements.WriteByte(start, dst, b)
	case TypeDateTime:
		return elements.WriteInt64(start, dst, v.DateTime())
	case TypeRegex:
		regex := v.Regex()
		return elements.WriteRegex(start, dst, regex.Pattern, regex.Options)
	case TypeDBPointer:
		dbptr := v.DBPointer()
		var total int
		n, err := elements.WriteString(start, dst, dbptr.DB)
		total += n
		if err != nil {
			return total, err
		}
		n, err = elements.WriteObjectID(start+uint(total), dst, dbptr.Pointer)
		total += n
		return total, err
	case TypeCodeWithScope:
		cws := v.CodeWithScope()
		return encodeCodeWithScope(start, dst, cws.Code, cws.Scope, opts, depth)
	case TypeFunction:
		fn := v.Function()
		return encodeCodeWithScope(start, dst, fn.Source, fn.Scope, opts, depth)
	case TypeDBRef:
		return encodeDoc(start, dst, v.DBRef().document(), opts, depth+1)
	case TypeInt32:
		return elements.WriteInt32(start, dst, v.Int32())
	case TypeTimestamp:
		ts := v.Timestamp()
		return elements.WriteTimestamp(start, dst, ts.T, ts.I)
	case TypeInt64:
		return elements.WriteInt64(start, dst, v.Int64())
	case TypeDecimal128:
		h, l := v.Decimal128().GetBytes()
		return elements.WriteDecimal128(start, dst, h, l)
	default:
		return 0, UnsupportedTypeError{Type: v.Type()}
	}
}

// encodeCodeWithScope writes code with scope, or plain code when the scope is
// empty. The outer length prefix counts itself, the string, and the scope
// document.
func encodeCodeWithScope(start uint, dst []byte, code string, scope Doc, opts EncodeOptions, depth uint32) (int, error) {
	if len(scope) == 0 {
		return elements.WriteString(start, dst, code)
	}

	total := 4
	n, err := elements.WriteString(start+uint(total), dst, code)
	total += n
	if err != nil {
		return total, err
	}

	n, err = encodeDoc(start+uint(total), dst, scope, opts, depth+1)
	total += n
	if err != nil {
		return total, err
	}

	if _, err := elements.WriteInt32(start, dst, int32(total)); err != nil {
		return total, err
	}
	return total, nil
}
