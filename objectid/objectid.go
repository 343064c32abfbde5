// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package objectid holds the 12-byte ObjectID representation used by BSON.
// The package only deals with the byte representation; generating new IDs is
// the caller's concern.
package objectid

import (
	"bytes"
	"encoding/hex"
	"errors"
)

// ErrInvalidHex indicates that a hex string cannot be converted to an ObjectID.
var ErrInvalidHex = errors.New("the provided hex string is not a valid ObjectID")

// ObjectID is the BSON ObjectID type.
type ObjectID [12]byte

// NilObjectID is the zero value for ObjectID.
var NilObjectID ObjectID

// Hex returns the hex encoding of the ObjectID as a string.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ObjectID) String() string {
	return `ObjectID("` + id.Hex() + `")`
}

// IsZero returns true if id is the empty ObjectID.
func (id ObjectID) IsZero() bool {
	return bytes.Equal(id[:], NilObjectID[:])
}

// FromHex creates a new ObjectID from a hex string. It returns an error if the
// hex string is not a valid ObjectID.
func FromHex(s string) (ObjectID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return NilObjectID, err
	}

	if len(b) != 12 {
		return NilObjectID, ErrInvalidHex
	}

	var oid [12]byte
	copy(oid[:], b[:])

	return oid, nil
}

// FromBytes creates a new ObjectID from the first 12 bytes of b. It returns an
// error if b does not hold exactly 12 bytes.
func FromBytes(b []byte) (ObjectID, error) {
	if len(b) != 12 {
		return NilObjectID, ErrInvalidHex
	}

	var oid ObjectID
	copy(oid[:], b)
	return oid, nil
}
