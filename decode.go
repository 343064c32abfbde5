// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"github.com/ikmak/bsonkit/decimal"
	"github.com/ikmak/bsonkit/elements"
)

// decodeDoc parses the document framing at pos: a length prefix, the
// elements, and the terminating null. The document itself is at the given
// depth; a root document is at depth 1.
func decodeDoc(src []byte, pos uint, opts DecodeOptions, depth uint32) (Doc, uint, error) {
	if depth > opts.maxDepth() {
		return nil, pos, ErrTooDeep
	}

	if uint(len(src)) < pos+5 {
		return nil, pos, NewErrTooSmall()
	}

	length, _, _ := elements.ReadInt32(src, pos)
	if length < 5 || uint(len(src)) < pos+uint(length) {
		return nil, pos, ErrInvalidLength
	}

	end := pos + uint(length)
	if src[end-1] != 0x00 {
		return nil, end - 1, ErrMissingNull
	}

	doc := Doc{}
	cur := pos + 4
	for cur < end-1 {
		tag, np, ok := elements.ReadByte(src, cur)
		if !ok {
			return nil, cur, NewErrTooSmall()
		}
		if tag == 0x00 {
			// A terminator before the declared end means the length prefix
			// overshoots the document.
			return nil, cur, ErrInvalidLength
		}
		cur = np

		key, np, ok := elements.ReadCString(src, cur, end-1)
		if !ok {
			return nil, cur, ErrInvalidKey
		}
		cur = np

		val, np, err := decodeValue(src, cur, end-1, tag, opts, depth)
		if err != nil {
			return nil, cur, err
		}
		if np > end-1 {
			return nil, cur, ErrInvalidLength
		}
		cur = np

		doc = append(doc, Elem{Key: key, Value: val})
	}

	if cur != end-1 {
		return nil, cur, ErrInvalidLength
	}
	return doc, end, nil
}

// decodeValue parses a single value payload at pos. The payload must lie
// entirely before end, which is the position of the enclosing document's
// terminating null.
func decodeValue(src []byte, pos, end uint, tag byte, opts DecodeOptions, depth uint32) (Val, uint, error) {
	switch Type(tag) {
	case TypeDouble:
		f64, np, ok := elements.ReadDouble(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.Double(f64), np, nil
	case TypeString:
		str, np, err := readString(src, pos, end)
		if err != nil {
			return Val{}, pos, err
		}
		return VC.String(str), np, nil
	case TypeEmbeddedDocument:
		doc, np, err := decodeDoc(src, pos, opts, depth+1)
		if err != nil {
			return Val{}, pos, err
		}
		if ref, ok := asDBRef(doc); ok {
			return VC.DBRef(ref), np, nil
		}
		return VC.Document(doc), np, nil
	case TypeArray:
		doc, np, err := decodeDoc(src, pos, opts, depth+1)
		if err != nil {
			return Val{}, pos, err
		}
		arr := make(Arr, 0, len(doc))
		for _, elem := range doc {
			arr = append(arr, elem.Value)
		}
		return VC.Array(arr), np, nil
	case TypeBinary:
		return decodeBinary(src, pos, end)
	case TypeUndefined:
		return VC.Undefined(), pos, nil
	case TypeObjectID:
		oid, np, ok := elements.ReadObjectID(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.ObjectID(oid), np, nil
	case TypeBoolean:
		b, np, ok := elements.ReadByte(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		if b != 0x00 && b != 0x01 {
			return Val{}, pos, ErrInvalidBooleanType
		}
		return VC.Boolean(b == 0x01), np, nil
	case TypeDateTime:
		dt, np, ok := elements.ReadInt64(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.DateTime(dt), np, nil
	case TypeNull:
		return VC.Null(), pos, nil
	case TypeRegex:
		pattern, np, ok := elements.ReadCString(src, pos, end)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		options, np, ok := elements.ReadCString(src, np, end)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.Regex(pattern, options), np, nil
	case TypeDBPointer:
		ns, np, err := readString(src, pos, end)
		if err != nil {
			return Val{}, pos, err
		}
		oid, np, ok := elements.ReadObjectID(src, np)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.DBPointer(ns, oid), np, nil
	case TypeJavaScript:
		code, np, err := readString(src, pos, end)
		if err != nil {
			return Val{}, pos, err
		}
		return VC.JavaScript(code), np, nil
	case TypeSymbol:
		symbol, np, err := readString(src, pos, end)
		if err != nil {
			return Val{}, pos, err
		}
		return VC.Symbol(symbol), np, nil
	case TypeCodeWithScope:
		return decodeCodeWithScope(src, pos, end, opts, depth)
	case TypeInt32:
		i32, np, ok := elements.ReadInt32(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.Int32(i32), np, nil
	case TypeTimestamp:
		t, i, np, ok := elements.ReadTimestamp(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.Timestamp(t, i), np, nil
	case TypeInt64:
		i64, np, ok := elements.ReadInt64(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.Int64(i64), np, nil
	case TypeDecimal128:
		h, l, np, ok := elements.ReadDecimal128(src, pos)
		if !ok {
			return Val{}, pos, NewErrTooSmall()
		}
		return VC.Decimal128(decimal.NewDecimal128(h, l)), np, nil
	case TypeMinKey:
		return VC.MinKey(), pos, nil
	case TypeMaxKey:
		return VC.MaxKey(), pos, nil
	default:
		return Val{}, pos, UnknownTagError{Tag: tag}
	}
}

// readString parses a length-prefixed string. The prefix counts the bytes of
// the string plus its null terminator, which must be present.
func readString(src []byte, pos, end uint) (string, uint, error) {
	length, np, ok := elements.ReadInt32(src, pos)
	if !ok {
		return "", pos, NewErrTooSmall()
	}
	if length < 1 {
		return "", pos, ErrInvalidString
	}
	if np+uint(length) > end || np+uint(length) > uint(len(src)) {
		return "", pos, ErrInvalidString
	}
	if src[np+uint(length)-1] != 0x00 {
		return "", pos, ErrInvalidString
	}
	return string(src[np : np+uint(length)-1]), np + uint(length), nil
}

func decodeBinary(src []byte, pos, end uint) (Val, uint, error) {
	length, np, ok := elements.ReadInt32(src, pos)
	if !ok {
		return Val{}, pos, NewErrTooSmall()
	}
	if length < 0 {
		return Val{}, pos, ErrInvalidLength
	}

	subtype, np, ok := elements.ReadByte(src, np)
	if !ok {
		return Val{}, pos, NewErrTooSmall()
	}
	switch subtype {
	case SubtypeGeneric, SubtypeFunction, SubtypeBinaryOld, SubtypeUUIDOld,
		SubtypeUUID, SubtypeMD5:
	default:
		if subtype < SubtypeUserDefined {
			return Val{}, pos, ErrInvalidBinarySubtype
		}
	}

	if np+uint(length) > end || np+uint(length) > uint(len(src)) {
		return Val{}, pos, ErrInvalidLength
	}

	data := src[np : np+uint(length)]
	np += uint(length)

	if subtype == SubtypeBinaryOld {
		// The legacy subtype carries an inner length prefix counted by the
		// outer one.
		inner, ip, ok := elements.ReadInt32(data, 0)
		if !ok || int(inner) != len(data)-4 {
			return Val{}, pos, ErrInvalidLength
		}
		data = data[ip:]
	}

	out := make([]byte, len(data))
	copy(out, data)
	return VC.BinaryWithSubtype(out, subtype), np, nil
}

// decodeCodeWithScope parses a code with scope payload. The outer length
// prefix counts itself, the code string, and the scope document.
func decodeCodeWithScope(src []byte, pos, end uint, opts DecodeOptions, depth uint32) (Val, uint, error) {
	length, np, ok := elements.ReadInt32(src, pos)
	if !ok {
		return Val{}, pos, NewErrTooSmall()
	}
	if length < 4+4+1+5 || pos+uint(length) > end {
		return Val{}, pos, ErrInvalidLength
	}

	strLength, _, ok := elements.ReadInt32(src, np)
	if !ok {
		return Val{}, pos, NewErrTooSmall()
	}
	if 4+4+strLength+5 > length {
		return Val{}, pos, ErrStringLargerThanContainer
	}

	code, np, err := readString(src, np, end)
	if err != nil {
		return Val{}, pos, err
	}

	scope, np, err := decodeDoc(src, np, opts, depth+1)
	if err != nil {
		return Val{}, pos, err
	}
	if np != pos+uint(length) {
		return Val{}, pos, ErrInvalidLength
	}
	return VC.CodeWithScope(code, scope), np, nil
}

// asDBRef reports whether doc has the database reference shape, which is a
// document whose first two elements are a $ref string and an $id. The $db
// element is recognized wherever it appears; any other elements are carried
// as extra fields in order.
func asDBRef(doc Doc) (DBRef, bool) {
	if len(doc) < 2 || doc[0].Key != "$ref" || doc[1].Key != "$id" {
		return DBRef{}, false
	}
	coll, ok := doc[0].Value.StringValueOK()
	if !ok {
		return DBRef{}, false
	}

	ref := DBRef{Collection: coll, ID: doc[1].Value}
	for _, elem := range doc[2:] {
		if elem.Key == "$db" {
			if db, ok := elem.Value.StringValueOK(); ok {
				ref.DB = db
				continue
			}
		}
		ref.Fields = append(ref.Fields, elem)
	}
	return ref, true
}
