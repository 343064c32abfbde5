package bsonkit

import (
	"bytes"

	"github.com/ikmak/bsonkit/objectid"
)

// Binary represents a BSON binary value.
type Binary struct {
	Subtype byte
	Data    []byte
}

// Equal compares b to b2 and returns true if they are equal.
func (b Binary) Equal(b2 Binary) bool {
	if b.Subtype != b2.Subtype {
		return false
	}
	return bytes.Equal(b.Data, b2.Data)
}

// Regex represents a BSON regex value.
type Regex struct {
	Pattern string
	Options string
}

// Equal compares r to r2 and returns true if they are equal.
func (r Regex) Equal(r2 Regex) bool {
	return r.Pattern == r2.Pattern && r.Options == r2.Options
}

// DBPointer represents a BSON dbpointer value, the deprecated 0x0C wire type.
type DBPointer struct {
	DB      string
	Pointer objectid.ObjectID
}

// Equal compares d to d2 and returns true if they are equal.
func (d DBPointer) Equal(d2 DBPointer) bool {
	return d.DB == d2.DB && bytes.Equal(d.Pointer[:], d2.Pointer[:])
}

// Timestamp represents a BSON timestamp value.
type Timestamp struct {
	T uint32
	I uint32
}

// Equal compares t to t2 and returns true if they are equal.
func (t Timestamp) Equal(t2 Timestamp) bool {
	return t.T == t2.T && t.I == t2.I
}

// CodeWithScope represents a BSON JavaScript code with scope value. A nil or
// empty Scope encodes as plain code.
type CodeWithScope struct {
	Code  string
	Scope Doc
}

// Equal compares cws to cws2 and returns true if they are equal.
func (cws CodeWithScope) Equal(cws2 CodeWithScope) bool {
	return cws.Code == cws2.Code && cws.Scope.Equal(cws2.Scope)
}

// DBRef represents a database reference. It has no tag byte of its own; it
// encodes as the embedded document
//
//	{ "$ref": <collection>, "$id": <id>, <fields...>, "$db": <db> }
//
// with $db present only when DB is non-empty. Embedded documents of that
// shape decode back into a DBRef.
type DBRef struct {
	Collection string
	ID         Val
	DB         string
	Fields     Doc
}

// Equal compares ref to ref2 and returns true if they are equal.
func (ref DBRef) Equal(ref2 DBRef) bool {
	if ref.Collection != ref2.Collection || ref.DB != ref2.DB {
		return false
	}
	if !ref.ID.Equal(ref2.ID) {
		return false
	}
	return ref.Fields.Equal(ref2.Fields)
}

// document returns the plain document this reference encodes as.
func (ref DBRef) document() Doc {
	d := make(Doc, 0, 3+len(ref.Fields))
	d = append(d, Elem{"$ref", VC.String(ref.Collection)}, Elem{"$id", ref.ID})
	d = append(d, ref.Fields...)
	if ref.DB != "" {
		d = append(d, Elem{"$db", VC.String(ref.DB)})
	}
	return d
}

// Function represents a function value. Functions are not serialized unless
// EncodeOptions.SerializeFunctions is set, in which case the source text is
// encoded as code, or as code with scope when Scope is non-empty.
type Function struct {
	Source string
	Scope  Doc
}

// Equal compares fn to fn2 and returns true if they are equal.
func (fn Function) Equal(fn2 Function) bool {
	return fn.Source == fn2.Source && fn.Scope.Equal(fn2.Scope)
}

// ValueMarshaler is the interface implemented by types that can convert
// themselves into a Val. Both the size calculation and the encoder invoke
// MarshalValue before standard categorization, which lets caller-defined
// types participate in the wire format without the codec knowing their shape.
type ValueMarshaler interface {
	MarshalValue() (Val, error)
}
