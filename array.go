package bsonkit

import (
	"bytes"
	"fmt"
	"strconv"
)

// Arr represents a BSON array. On the wire an array is a document whose keys
// are the decimal string forms of the element indexes, so an Arr carries only
// its values.
type Arr []Val

func (a Arr) lookupTraverse(keys ...string) (Elem, error) {
	if len(keys) == 0 {
		return Elem{}, KeyNotFound{Key: keys}
	}

	index, err := strconv.ParseUint(keys[0], 10, 0)
	if err != nil {
		return Elem{}, KeyNotFound{Key: keys}
	}
	if index >= uint64(len(a)) {
		return Elem{}, KeyNotFound{Key: keys}
	}

	val := a[index]
	if len(keys) == 1 {
		return Elem{Key: keys[0], Value: val}, nil
	}

	var elem Elem
	var lerr error
	switch val.Type() {
	case TypeEmbeddedDocument:
		elem, lerr = val.Document().LookupElementErr(keys[1:]...)
	case TypeArray:
		elem, lerr = val.Array().lookupTraverse(keys[1:]...)
	default:
		lerr = KeyNotFound{Key: keys, Type: val.Type()}
	}
	switch tt := lerr.(type) {
	case KeyNotFound:
		tt.Depth++
		tt.Key = keys
		return Elem{}, tt
	case nil:
		return elem, nil
	default:
		return Elem{}, lerr
	}
}

// Equal compares a to a2 and returns true if they are equal.
func (a Arr) Equal(a2 Arr) bool {
	if len(a) != len(a2) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(a2[idx]) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface.
func (a Arr) String() string {
	var buf bytes.Buffer
	buf.Write([]byte("bsonkit.Arr["))
	for idx, val := range a {
		if idx > 0 {
			buf.Write([]byte(", "))
		}
		fmt.Fprintf(&buf, "%v", val)
	}
	buf.WriteByte(']')

	return buf.String()
}
