// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ikmak/bsonkit/elements"
)

var errWalkDone = errors.New("element walk complete")

// Raw is a wrapper around a byte slice. It will interpret the slice as a BSON
// document. Most of the methods on Raw are low cost and are meant for simple
// operations that are run a few times. Because there is no metadata stored
// all methods run in O(n) time. If a more efficient lookup method is
// necessary then the Doc type should be used.
type Raw []byte

// Validate validates the document contained in this slice. This method only
// validates the first document in the slice, to validate other documents, the
// slice must be resliced.
func (r Raw) Validate() (size uint32, err error) {
	return r.readElements(nil)
}

// Lookup searches the document, potentially recursively, for the given key.
// If there are multiple keys provided, this method will recurse down, as long
// as the top and intermediate nodes are either documents or arrays. If an
// error occurs or if the value doesn't exist, an empty Val and an error are
// returned.
func (r Raw) Lookup(key ...string) (Val, error) {
	if len(key) < 1 {
		return Val{}, ErrEmptyKey
	}

	var val Val
	var found bool
	_, err := r.readElements(func(e Elem) error {
		if e.Key != key[0] {
			return nil
		}
		if len(key) == 1 {
			val, found = e.Value, true
			return errWalkDone
		}

		var elem Elem
		var lerr error
		switch e.Value.Type() {
		case TypeEmbeddedDocument:
			elem, lerr = e.Value.Document().LookupElementErr(key[1:]...)
		case TypeArray:
			elem, lerr = e.Value.Array().lookupTraverse(key[1:]...)
		default:
			lerr = KeyNotFound{Key: key, Type: e.Value.Type()}
		}
		if lerr != nil {
			if knf, ok := lerr.(KeyNotFound); ok {
				knf.Depth++
				knf.Key = key
				return knf
			}
			return lerr
		}
		val, found = elem.Value, true
		return errWalkDone
	})
	if err != nil {
		return Val{}, err
	}
	if !found {
		return Val{}, KeyNotFound{Key: key}
	}
	return val, nil
}

// Elements returns the elements of the first document in this slice, in
// order, after validating the framing.
func (r Raw) Elements() ([]Elem, error) {
	elems := make([]Elem, 0)
	_, err := r.readElements(func(e Elem) error {
		elems = append(elems, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return elems, nil
}

// Values returns the values of the first document in this slice, in order,
// after validating the framing.
func (r Raw) Values() ([]Val, error) {
	vals := make([]Val, 0)
	_, err := r.readElements(func(e Elem) error {
		vals = append(vals, e.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vals, nil
}

// Keys returns the keys for this document. If recursive is true then this
// method will also return the keys for subdocuments and arrays.
//
// The keys will be returned in order.
func (r Raw) Keys(recursive bool) (Keys, error) {
	doc, err := ReadDoc(r)
	if err != nil {
		return nil, err
	}
	return docKeys(doc, recursive), nil
}

// String implements the fmt.Stringer interface.
func (r Raw) String() string {
	var buf bytes.Buffer
	buf.Write([]byte("bsonkit.Raw{"))
	idx := 0
	_, _ = r.readElements(func(elem Elem) error {
		if idx > 0 {
			buf.Write([]byte(", "))
		}
		fmt.Fprintf(&buf, "%s", elem)
		idx++
		return nil
	})
	buf.WriteByte('}')

	return buf.String()
}

// readElements is an internal method used to traverse the document. It will
// validate the framing and the underlying elements. If the provided function
// is non-nil it will be called for each element. If errWalkDone is returned
// from the function, this method returns early with a nil error; in all other
// cases a non-nil error from the function is returned by this method.
func (r Raw) readElements(f func(e Elem) error) (uint32, error) {
	if len(r) < 5 {
		return 0, NewErrTooSmall()
	}
	givenLength := readi32(r[0:4])
	if givenLength < 5 || len(r) < int(givenLength) {
		return 0, ErrInvalidLength
	}

	end := uint(givenLength)
	pos := uint(4)
	for {
		if pos >= end {
			// We've gone off the end of the document and we're missing
			// a null terminator.
			return uint32(pos), ErrMissingNull
		}
		if r[pos] == 0x00 {
			if pos != end-1 {
				return uint32(pos), ErrInvalidLength
			}
			break
		}

		tag := r[pos]
		pos++

		key, np, ok := elements.ReadCString(r, pos, end-1)
		if !ok {
			return uint32(pos), ErrInvalidKey
		}
		pos = np

		val, np, err := decodeValue(r, pos, end-1, tag, DecodeOptions{}, 1)
		if err != nil {
			return uint32(pos), err
		}
		if np > end-1 {
			return uint32(pos), ErrInvalidLength
		}
		pos = np

		if f != nil {
			if err := f(Elem{Key: key, Value: val}); err != nil {
				if err == errWalkDone {
					break
				}
				return uint32(pos), err
			}
		}
	}

	// The size is always 1 larger than the position, since position is 0
	// indexed.
	return uint32(pos) + 1, nil
}

func docKeys(d Doc, recursive bool, prefix ...string) Keys {
	ks := make(Keys, 0, len(d))
	for _, elem := range d {
		ks = append(ks, Key{Prefix: prefix, Name: elem.Key})
		if !recursive {
			continue
		}
		switch elem.Value.Type() {
		case TypeEmbeddedDocument:
			recursivePrefix := append(prefix, elem.Key)
			ks = append(ks, docKeys(elem.Value.Document(), recursive, recursivePrefix...)...)
		case TypeArray:
			recursivePrefix := append(prefix, elem.Key)
			ks = append(ks, arrKeys(elem.Value.Array(), recursive, recursivePrefix...)...)
		}
	}
	return ks
}

func arrKeys(a Arr, recursive bool, prefix ...string) Keys {
	ks := make(Keys, 0, len(a))
	for idx, val := range a {
		name := strconv.Itoa(idx)
		ks = append(ks, Key{Prefix: prefix, Name: name})
		if !recursive {
			continue
		}
		switch val.Type() {
		case TypeEmbeddedDocument:
			recursivePrefix := append(prefix, name)
			ks = append(ks, docKeys(val.Document(), recursive, recursivePrefix...)...)
		case TypeArray:
			recursivePrefix := append(prefix, name)
			ks = append(ks, arrKeys(val.Array(), recursive, recursivePrefix...)...)
		}
	}
	return ks
}

// Keys represents the keys of a BSON document.
type Keys []Key

// Key represents an individual key of a BSON document. The Prefix property is
// used to represent the depth of this key.
type Key struct {
	Prefix []string
	Name   string
}

// String implements the fmt.Stringer interface.
func (k Key) String() string {
	str := strings.Join(k.Prefix, ".")
	if str != "" {
		return str + "." + k.Name
	}
	return k.Name
}

// readi32 is a helper function for reading an int32 from a slice of bytes.
func readi32(b []byte) int32 {
	_ = b[3] // bounds check hint to compiler; see golang.org/issue/14808
	return int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16 | int32(b[3])<<24
}
