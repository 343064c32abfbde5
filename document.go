package bsonkit

import (
	"bytes"
	"fmt"
)

// Doc is a type safe, concise BSON document representation.
type Doc []Elem

// ReadDoc will create a Doc using the provided slice of bytes. If the
// slice of bytes is not a valid BSON document, this method will return an error.
func ReadDoc(b []byte) (Doc, error) {
	return ReadDocWithOptions(b, DecodeOptions{})
}

// ReadDocWithOptions is the same as ReadDoc, but decoding behavior can be
// adjusted through opts.
func ReadDocWithOptions(b []byte, opts DecodeOptions) (Doc, error) {
	doc, _, err := decodeDoc(b, 0, opts, 1)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Copy makes a shallow copy of this document.
func (d Doc) Copy() Doc {
	d2 := make(Doc, len(d))
	copy(d2, d)
	return d2
}

// Append adds an element to the end of the document, creating it from the key and value provided.
func (d Doc) Append(key string, val Val) Doc {
	return append(d, Elem{Key: key, Value: val})
}

// Prepend adds an element to the beginning of the document, creating it from the key and value provided.
func (d Doc) Prepend(key string, val Val) Doc {
	return append(Doc{{Key: key, Value: val}}, d...)
}

// Set replaces an element of a document. If an element with a matching key is
// found, the element will be replaced with the one provided. If the document
// does not have an element with that key, the element is appended to the
// document instead.
func (d Doc) Set(key string, val Val) Doc {
	idx := d.IndexOf(key)
	if idx == -1 {
		return append(d, Elem{Key: key, Value: val})
	}
	d = append(append(d[:idx:idx], Elem{Key: key, Value: val}), d[idx+1:]...)
	return d
}

// IndexOf returns the index of the first element with a matching key, or -1 if no element with a
// matching key is found.
func (d Doc) IndexOf(key string) int {
	for i, e := range d {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// Delete removes the element with key if it exists and returns the updated Doc.
func (d Doc) Delete(key string) Doc {
	idx := d.IndexOf(key)
	if idx == -1 {
		return d
	}
	return append(d[:idx:idx], d[idx+1:]...)
}

// Lookup searches the document and potentially subdocuments or arrays for the
// provided key. Each key provided to this method represents a layer of depth.
//
// This method will return an empty Val if it encounters an error.
func (d Doc) Lookup(key ...string) Val {
	val, _ := d.LookupErr(key...)
	return val
}

// LookupErr searches the document and potentially subdocuments or arrays for the
// provided key. Each key provided to this method represents a layer of depth.
func (d Doc) LookupErr(key ...string) (Val, error) {
	elem, err := d.LookupElementErr(key...)
	return elem.Value, err
}

// LookupElement searches the document and potentially subdocuments or arrays for the
// provided key. Each key provided to this method represents a layer of depth.
//
// This method will return an empty Elem if it encounters an error.
func (d Doc) LookupElement(key ...string) Elem {
	elem, _ := d.LookupElementErr(key...)
	return elem
}

// LookupElementErr searches the document and potentially subdocuments for the
// provided key. Each key provided to this method represents a layer of depth.
func (d Doc) LookupElementErr(key ...string) (Elem, error) {
	// KeyNotFound operates by being created where the error happens and then the depth is
	// incremented by 1 as each function unwinds. Whenever this function returns, it also assigns
	// the Key slice to the key slice it has. This ensures that the proper depth is identified and
	// the proper keys.
	if len(key) == 0 {
		return Elem{}, KeyNotFound{Key: key}
	}

	var elem Elem
	var err error
	idx := d.IndexOf(key[0])
	if idx == -1 {
		return Elem{}, KeyNotFound{Key: key}
	}

	elem = d[idx]
	if len(key) == 1 {
		return elem, nil
	}

	switch elem.Value.Type() {
	case TypeEmbeddedDocument:
		elem, err = elem.Value.Document().LookupElementErr(key[1:]...)
	case TypeArray:
		elem, err = elem.Value.Array().lookupTraverse(key[1:]...)
	default:
		err = KeyNotFound{Key: key, Type: elem.Value.Type()}
	}
	switch tt := err.(type) {
	case KeyNotFound:
		tt.Depth++
		tt.Key = key
		return Elem{}, tt
	case nil:
		return elem, nil
	default:
		return Elem{}, err
	}
}

// Equal compares this document to another, returning true if they are equal.
func (d Doc) Equal(d2 Doc) bool {
	if len(d) != len(d2) {
		return false
	}
	for idx := range d {
		if !d[idx].Equal(d2[idx]) {
			return false
		}
	}
	return true
}

// Marshaler describes a type that can marshal a BSON representation of itself
// into bytes.
type Marshaler interface {
	MarshalBSON() ([]byte, error)
}

// Unmarshaler describes a type that can unmarshal a BSON document
// representation of itself. The input can be assumed to be a valid encoding
// of a BSON document. UnmarshalBSON must copy the data if it wishes to retain
// it after returning.
type Unmarshaler interface {
	UnmarshalBSON([]byte) error
}

// MarshalBSON implements the Marshaler interface.
func (d Doc) MarshalBSON() ([]byte, error) { return d.AppendMarshalBSON(nil) }

// AppendMarshalBSON marshals Doc to BSON bytes, appending to dst.
func (d Doc) AppendMarshalBSON(dst []byte) ([]byte, error) {
	size, err := d.sizeWithOptions(EncodeOptions{})
	if err != nil {
		return nil, err
	}
	b := make([]byte, size)
	if _, err := d.writeByteSlice(0, size, b, EncodeOptions{}); err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// UnmarshalBSON implements the Unmarshaler interface.
func (d *Doc) UnmarshalBSON(b []byte) error {
	if d == nil {
		return ErrNilDocument
	}

	doc, err := ReadDoc(b)
	if err != nil {
		return err
	}

	*d = doc
	return nil
}

// String implements the fmt.Stringer interface.
func (d Doc) String() string {
	var buf bytes.Buffer
	buf.Write([]byte("bsonkit.Doc{"))
	for idx, elem := range d {
		if idx > 0 {
			buf.Write([]byte(", "))
		}
		fmt.Fprintf(&buf, "%v", elem)
	}
	buf.WriteByte('}')

	return buf.String()
}
