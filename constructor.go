// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/ikmak/bsonkit/decimal"
	"github.com/ikmak/bsonkit/objectid"
)

// VC is a convenience variable provided for access to the ValConstructor methods.
var VC ValConstructor

// EC is a convenience variable provided for access to the ElemConstructor methods.
var EC ElemConstructor

// ValConstructor is used as a namespace for value constructor functions.
type ValConstructor struct{}

// ElemConstructor is used as a namespace for element constructor functions.
type ElemConstructor struct{}

// The largest integer a float64 can hold without losing precision.
const maxSafeInteger = 1<<53 - 1

// Double constructs a BSON double Val.
func (ValConstructor) Double(f64 float64) Val {
	v := Val{t: TypeDouble}
	binary.LittleEndian.PutUint64(v.bootstrap[0:8], math.Float64bits(f64))
	return v
}

// Number constructs a numeric Val from f64, choosing the narrowest faithful
// representation. A value that is integral, within int32 range, and small
// enough to be represented exactly becomes an int32; everything else stays a
// double.
func (ValConstructor) Number(f64 float64) Val {
	if f64 == math.Trunc(f64) && !math.IsInf(f64, 0) &&
		f64 >= math.MinInt32 && f64 <= math.MaxInt32 &&
		math.Abs(f64) <= maxSafeInteger {
		return VC.Int32(int32(f64))
	}
	return VC.Double(f64)
}

// String constructs a BSON string Val.
func (ValConstructor) String(str string) Val {
	return Val{t: TypeString}.writestring(str)
}

// Document constructs a Val from the given Doc. A nil Doc becomes a BSON
// null.
func (ValConstructor) Document(d Doc) Val {
	if d == nil {
		return Val{t: TypeNull}
	}
	return Val{t: TypeEmbeddedDocument, primitive: d}
}

// Array constructs a Val from the given Arr. A nil Arr becomes a BSON null.
func (ValConstructor) Array(a Arr) Val {
	if a == nil {
		return Val{t: TypeNull}
	}
	return Val{t: TypeArray, primitive: a}
}

// Binary constructs a BSON binary Val with the generic subtype.
func (ValConstructor) Binary(data []byte) Val {
	return VC.BinaryWithSubtype(data, SubtypeGeneric)
}

// BinaryWithSubtype constructs a BSON binary Val with the given subtype.
func (ValConstructor) BinaryWithSubtype(data []byte, subtype byte) Val {
	return Val{t: TypeBinary, primitive: Binary{Subtype: subtype, Data: data}}
}

// Undefined constructs a BSON undefined Val.
func (ValConstructor) Undefined() Val {
	return Val{t: TypeUndefined}
}

// ObjectID constructs a BSON ObjectID Val.
func (ValConstructor) ObjectID(oid objectid.ObjectID) Val {
	v := Val{t: TypeObjectID}
	copy(v.bootstrap[0:12], oid[:])
	return v
}

// Boolean constructs a BSON boolean Val.
func (ValConstructor) Boolean(b bool) Val {
	v := Val{t: TypeBoolean}
	if b {
		v.bootstrap[0] = 0x01
	}
	return v
}

// DateTime constructs a BSON datetime Val from milliseconds since the Unix epoch.
func (ValConstructor) DateTime(dt int64) Val {
	return Val{t: TypeDateTime}.writei64(dt)
}

// Time constructs a BSON datetime Val from a time.Time.
func (ValConstructor) Time(t time.Time) Val {
	return VC.DateTime(t.Unix()*1000 + int64(t.Nanosecond()/1000000))
}

// Null constructs a BSON null Val.
func (ValConstructor) Null() Val {
	return Val{t: TypeNull}
}

// Regex constructs a BSON regex Val.
func (ValConstructor) Regex(pattern, options string) Val {
	return Val{t: TypeRegex, primitive: Regex{Pattern: pattern, Options: options}}
}

// DBPointer constructs a BSON dbpointer Val.
func (ValConstructor) DBPointer(ns string, ptr objectid.ObjectID) Val {
	return Val{t: TypeDBPointer, primitive: DBPointer{DB: ns, Pointer: ptr}}
}

// JavaScript constructs a BSON JavaScript code Val.
func (ValConstructor) JavaScript(code string) Val {
	return Val{t: TypeJavaScript}.writestring(code)
}

// Symbol constructs a BSON symbol Val.
func (ValConstructor) Symbol(symbol string) Val {
	return Val{t: TypeSymbol}.writestring(symbol)
}

// CodeWithScope constructs a BSON code with scope Val.
func (ValConstructor) CodeWithScope(code string, scope Doc) Val {
	return Val{t: TypeCodeWithScope, primitive: CodeWithScope{Code: code, Scope: scope}}
}

// Int32 constructs a BSON int32 Val.
func (ValConstructor) Int32(i32 int32) Val {
	v := Val{t: TypeInt32}
	v.bootstrap[0] = byte(i32)
	v.bootstrap[1] = byte(i32 >> 8)
	v.bootstrap[2] = byte(i32 >> 16)
	v.bootstrap[3] = byte(i32 >> 24)
	return v
}

// Timestamp constructs a BSON timestamp Val.
func (ValConstructor) Timestamp(t uint32, i uint32) Val {
	v := Val{t: TypeTimestamp}
	v.bootstrap[0] = byte(i)
	v.bootstrap[1] = byte(i >> 8)
	v.bootstrap[2] = byte(i >> 16)
	v.bootstrap[3] = byte(i >> 24)
	v.bootstrap[4] = byte(t)
	v.bootstrap[5] = byte(t >> 8)
	v.bootstrap[6] = byte(t >> 16)
	v.bootstrap[7] = byte(t >> 24)
	return v
}

// Int64 constructs a BSON int64 Val.
func (ValConstructor) Int64(i64 int64) Val {
	return Val{t: TypeInt64}.writei64(i64)
}

// Decimal128 constructs a BSON decimal128 Val.
func (ValConstructor) Decimal128(d128 decimal.Decimal128) Val {
	return Val{t: TypeDecimal128, primitive: d128}
}

// MinKey constructs a BSON minkey Val.
func (ValConstructor) MinKey() Val {
	return Val{t: TypeMinKey}
}

// MaxKey constructs a BSON maxkey Val.
func (ValConstructor) MaxKey() Val {
	return Val{t: TypeMaxKey}
}

// DBRef constructs a database reference Val. On the wire a database
// reference is an embedded document with $ref and $id elements, followed by
// any extra fields, with $db last when present.
func (ValConstructor) DBRef(ref DBRef) Val {
	return Val{t: TypeDBRef, primitive: ref}
}

// Function constructs a function Val. Function values are skipped during size
// calculation and encoding unless EncodeOptions.SerializeFunctions is set, in
// which case they are written as JavaScript code, with scope if one is
// present.
func (ValConstructor) Function(source string, scope Doc) Val {
	return Val{t: TypeFunction, primitive: Function{Source: source, Scope: scope}}
}

// Marshaler constructs a Val that defers to the given ValueMarshaler when it
// is sized or encoded.
func (ValConstructor) Marshaler(vm ValueMarshaler) Val {
	return Val{t: TypeMarshaler, primitive: vm}
}

// Double constructs a BSON double element with the given key.
func (ElemConstructor) Double(key string, f64 float64) Elem {
	return Elem{Key: key, Value: VC.Double(f64)}
}

// Number constructs a numeric element with the given key. See
// ValConstructor.Number for how the representation is chosen.
func (ElemConstructor) Number(key string, f64 float64) Elem {
	return Elem{Key: key, Value: VC.Number(f64)}
}

// String constructs a BSON string element with the given key.
func (ElemConstructor) String(key string, str string) Elem {
	return Elem{Key: key, Value: VC.String(str)}
}

// SubDocument constructs an embedded document element with the given key.
func (ElemConstructor) SubDocument(key string, d Doc) Elem {
	return Elem{Key: key, Value: VC.Document(d)}
}

// Array constructs a BSON array element with the given key.
func (ElemConstructor) Array(key string, a Arr) Elem {
	return Elem{Key: key, Value: VC.Array(a)}
}

// Binary constructs a BSON binary element with the given key and the generic
// subtype.
func (ElemConstructor) Binary(key string, data []byte) Elem {
	return Elem{Key: key, Value: VC.Binary(data)}
}

// BinaryWithSubtype constructs a BSON binary element with the given key and
// subtype.
func (ElemConstructor) BinaryWithSubtype(key string, data []byte, subtype byte) Elem {
	return Elem{Key: key, Value: VC.BinaryWithSubtype(data, subtype)}
}

// Undefined constructs a BSON undefined element with the given key.
func (ElemConstructor) Undefined(key string) Elem {
	return Elem{Key: key, Value: VC.Undefined()}
}

// ObjectID constructs a BSON ObjectID element with the given key.
func (ElemConstructor) ObjectID(key string, oid objectid.ObjectID) Elem {
	return Elem{Key: key, Value: VC.ObjectID(oid)}
}

// Boolean constructs a BSON boolean element with the given key.
func (ElemConstructor) Boolean(key string, b bool) Elem {
	return Elem{Key: key, Value: VC.Boolean(b)}
}

// DateTime constructs a BSON datetime element with the given key.
func (ElemConstructor) DateTime(key string, dt int64) Elem {
	return Elem{Key: key, Value: VC.DateTime(dt)}
}

// Time constructs a BSON datetime element with the given key.
func (ElemConstructor) Time(key string, t time.Time) Elem {
	return Elem{Key: key, Value: VC.Time(t)}
}

// Null constructs a BSON null element with the given key.
func (ElemConstructor) Null(key string) Elem {
	return Elem{Key: key, Value: VC.Null()}
}

// Regex constructs a BSON regex element with the given key.
func (ElemConstructor) Regex(key string, pattern, options string) Elem {
	return Elem{Key: key, Value: VC.Regex(pattern, options)}
}

// DBPointer constructs a BSON dbpointer element with the given key.
func (ElemConstructor) DBPointer(key string, ns string, ptr objectid.ObjectID) Elem {
	return Elem{Key: key, Value: VC.DBPointer(ns, ptr)}
}

// JavaScript constructs a BSON JavaScript code element with the given key.
func (ElemConstructor) JavaScript(key string, code string) Elem {
	return Elem{Key: key, Value: VC.JavaScript(code)}
}

// Symbol constructs a BSON symbol element with the given key.
func (ElemConstructor) Symbol(key string, symbol string) Elem {
	return Elem{Key: key, Value: VC.Symbol(symbol)}
}

// CodeWithScope constructs a BSON code with scope element with the given key.
func (ElemConstructor) CodeWithScope(key string, code string, scope Doc) Elem {
	return Elem{Key: key, Value: VC.CodeWithScope(code, scope)}
}

// Int32 constructs a BSON int32 element with the given key.
func (ElemConstructor) Int32(key string, i32 int32) Elem {
	return Elem{Key: key, Value: VC.Int32(i32)}
}

// Timestamp constructs a BSON timestamp element with the given key.
func (ElemConstructor) Timestamp(key string, t uint32, i uint32) Elem {
	return Elem{Key: key, Value: VC.Timestamp(t, i)}
}

// Int64 constructs a BSON int64 element with the given key.
func (ElemConstructor) Int64(key string, i64 int64) Elem {
	return Elem{Key: key, Value: VC.Int64(i64)}
}

// Decimal128 constructs a BSON decimal128 element with the given key.
func (ElemConstructor) Decimal128(key string, d128 decimal.Decimal128) Elem {
	return Elem{Key: key, Value: VC.Decimal128(d128)}
}

// MinKey constructs a BSON minkey element with the given key.
func (ElemConstructor) MinKey(key string) Elem {
	return Elem{Key: key, Value: VC.MinKey()}
}

// MaxKey constructs a BSON maxkey element with the given key.
func (ElemConstructor) MaxKey(key string) Elem {
	return Elem{Key: key, Value: VC.MaxKey()}
}

// DBRef constructs a database reference element with the given key.
func (ElemConstructor) DBRef(key string, ref DBRef) Elem {
	return Elem{Key: key, Value: VC.DBRef(ref)}
}

// Function constructs a function element with the given key.
func (ElemConstructor) Function(key string, source string, scope Doc) Elem {
	return Elem{Key: key, Value: VC.Function(source, scope)}
}

// Marshaler constructs an element whose value defers to the given
// ValueMarshaler when it is sized or encoded.
func (ElemConstructor) Marshaler(key string, vm ValueMarshaler) Elem {
	return Elem{Key: key, Value: VC.Marshaler(vm)}
}
