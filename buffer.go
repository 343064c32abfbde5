// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import (
	"bytes"
	"io"
)

// EnsureBuffer normalizes the supported byte-bearing inputs to a single byte
// slice. It accepts a Raw, a []byte, or a *bytes.Buffer; anything else
// results in an InvalidBufferError. The returned slice aliases the source, it
// is not a copy.
func EnsureBuffer(src interface{}) ([]byte, error) {
	switch tt := src.(type) {
	case Raw:
		return []byte(tt), nil
	case []byte:
		return tt, nil
	case *bytes.Buffer:
		if tt == nil {
			return nil, InvalidBufferError{Source: src}
		}
		return tt.Bytes(), nil
	default:
		return nil, InvalidBufferError{Source: src}
	}
}

// NewFromIOReader reads a single document from the given io.Reader and
// constructs a Raw from it. The reader is consumed through the end of the
// document only.
func NewFromIOReader(r io.Reader) (Raw, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	var lengthBytes [4]byte

	count, err := io.ReadFull(r, lengthBytes[:])
	if err != nil {
		return nil, err
	}

	if count < 4 {
		return nil, NewErrTooSmall()
	}

	length := readi32(lengthBytes[:])
	if length < 5 {
		return nil, ErrInvalidLength
	}
	raw := make([]byte, length)

	copy(raw, lengthBytes[:])

	count, err = io.ReadFull(r, raw[4:])
	if err != nil {
		return nil, err
	}

	if int32(count) != length-4 {
		return nil, ErrInvalidLength
	}

	return raw, nil
}

// WriteTo serializes the document and writes it to w.
func (d Doc) WriteTo(w io.Writer) (int64, error) {
	b, err := d.MarshalBSON()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// WriteDocument will serialize this document into the provided writer
// beginning at the provided start position. It accepts the same inputs as
// EnsureBuffer, plus an io.Writer, for which start must be zero.
func (d Doc) WriteDocument(start uint, writer interface{}) (int64, error) {
	size, err := d.sizeWithOptions(EncodeOptions{})
	if err != nil {
		return 0, err
	}

	switch w := writer.(type) {
	case Raw, []byte, *bytes.Buffer:
		b, err := EnsureBuffer(w)
		if err != nil {
			return 0, err
		}
		return d.writeByteSlice(start, size, b, EncodeOptions{})
	case io.Writer:
		if start != 0 {
			return 0, InvalidBufferError{Source: writer}
		}
		return d.WriteTo(w)
	default:
		return 0, InvalidBufferError{Source: writer}
	}
}
