// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonkit is a codec for BSON, the length-prefixed, type-tagged
// binary document format. Documents are modeled as ordered slices of elements
// (Doc), arrays as slices of values (Arr), and individual values as a closed
// tagged union (Val) with one variant per BSON category.
//
// The codec is built around one invariant: the byte count reported by
// Doc.Size is exactly the number of bytes Doc.MarshalBSON writes for the same
// document and options. Size never allocates output and is lenient about
// values it cannot encode (they contribute zero bytes); the encoder fails
// loudly for the same values, since silently producing undersized output
// would corrupt the stream. The decoder validates framing strictly and never
// returns a partial document.
//
// All operations are pure functions of their inputs: the codec holds no
// shared mutable state and a Doc may be encoded from multiple goroutines
// concurrently as long as no goroutine mutates it.
package bsonkit

// Type represents a BSON type.
type Type byte

// These constants uniquely refer to each BSON type.
const (
	TypeDouble           Type = 0x01
	TypeString           Type = 0x02
	TypeEmbeddedDocument Type = 0x03
	TypeArray            Type = 0x04
	TypeBinary           Type = 0x05
	TypeUndefined        Type = 0x06
	TypeObjectID         Type = 0x07
	TypeBoolean          Type = 0x08
	TypeDateTime         Type = 0x09
	TypeNull             Type = 0x0A
	TypeRegex            Type = 0x0B
	TypeDBPointer        Type = 0x0C
	TypeJavaScript       Type = 0x0D
	TypeSymbol           Type = 0x0E
	TypeCodeWithScope    Type = 0x0F
	TypeInt32            Type = 0x10
	TypeTimestamp        Type = 0x11
	TypeInt64            Type = 0x12
	TypeDecimal128       Type = 0x13
	TypeMinKey           Type = 0xFF
	TypeMaxKey           Type = 0x7F
)

// Non-wire categories. Values of these categories never produce their own
// tag byte: a DBRef encodes as an embedded document, a function encodes as
// code or code with scope (or not at all, depending on options), and a
// marshaler resolves to another value before encoding.
const (
	TypeDBRef     Type = 0xF4
	TypeFunction  Type = 0xF5
	TypeMarshaler Type = 0xF6
)

// BSON binary element subtypes.
const (
	SubtypeGeneric     byte = 0x00
	SubtypeFunction    byte = 0x01
	SubtypeBinaryOld   byte = 0x02
	SubtypeUUIDOld     byte = 0x03
	SubtypeUUID        byte = 0x04
	SubtypeMD5         byte = 0x05
	SubtypeUserDefined byte = 0x80
)

// IsValid will return true if the Type is a valid wire type, i.e. one that
// may appear as an element's tag byte.
func (bt Type) IsValid() bool {
	switch bt {
	case TypeDouble, TypeString, TypeEmbeddedDocument, TypeArray, TypeBinary,
		TypeUndefined, TypeObjectID, TypeBoolean, TypeDateTime, TypeNull, TypeRegex,
		TypeDBPointer, TypeJavaScript, TypeSymbol, TypeCodeWithScope, TypeInt32,
		TypeTimestamp, TypeInt64, TypeDecimal128, TypeMinKey, TypeMaxKey:
		return true
	default:
		return false
	}
}

// String returns the string representation of the BSON type's name.
func (bt Type) String() string {
	switch bt {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeEmbeddedDocument:
		return "embedded document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectID"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "UTC datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "dbPointer"
	case TypeJavaScript:
		return "javascript"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "code with scope"
	case TypeInt32:
		return "32-bit integer"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "64-bit integer"
	case TypeDecimal128:
		return "128-bit decimal"
	case TypeMinKey:
		return "min key"
	case TypeMaxKey:
		return "max key"
	case TypeDBRef:
		return "database reference"
	case TypeFunction:
		return "function"
	case TypeMarshaler:
		return "value marshaler"
	default:
		return "invalid"
	}
}
