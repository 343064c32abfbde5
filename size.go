// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bsonkit

import "strconv"

// Size returns the number of bytes MarshalBSON would produce for this
// document using the default options.
func (d Doc) Size() (int64, error) { return d.sizeWithOptions(EncodeOptions{}) }

// SizeWithOptions is the same as Size, but encoding behavior can be adjusted
// through opts. The result always matches the length of the output of
// MarshalBSONWithOptions with the same options, unless that call returns an
// error.
func (d Doc) SizeWithOptions(opts EncodeOptions) (int64, error) {
	return d.sizeWithOptions(opts)
}

func (d Doc) sizeWithOptions(opts EncodeOptions) (int64, error) {
	return sizeDoc(d, opts, 1)
}

// sizeDoc computes the wire size of d. The document itself is at the given
// depth; a root document is at depth 1.
func sizeDoc(d Doc, opts EncodeOptions, depth uint32) (int64, error) {
	if depth > opts.maxDepth() {
		return 0, ErrTooDeep
	}

	var total int64 = 4 + 1
	for _, elem := range d {
		size, skip, err := sizeValue(elem.Value, opts, depth, false)
		if err != nil {
			return 0, err
		}
		if skip {
			continue
		}
		total += 1 + int64(len(elem.Key)) + 1 + size
	}
	return total, nil
}

func sizeArr(a Arr, opts EncodeOptions, depth uint32) (int64, error) {
	if depth > opts.maxDepth() {
		return 0, ErrTooDeep
	}

	var total int64 = 4 + 1
	for idx, val := range a {
		size, skip, err := sizeValue(val, opts, depth, true)
		if err != nil {
			return 0, err
		}
		if skip {
			continue
		}
		total += 1 + int64(len(strconv.Itoa(idx))) + 1 + size
	}
	return total, nil
}

// sizeValue computes the payload size of a single value, without the tag byte
// or the key. The returned skip reports whether the element is dropped from
// the output entirely, in which case size is zero. Size calculation is
// lenient: a value the encoder would reject contributes zero bytes here.
func sizeValue(v Val, opts EncodeOptions, depth uint32, inArray bool) (int64, bool, error) {
	switch v.Type() {
	case TypeDouble, TypeDateTime, TypeInt64:
		return 8, false, nil
	case TypeString, TypeJavaScript, TypeSymbol:
		return 4 + int64(len(v.string())) + 1, false, nil
	case TypeEmbeddedDocument:
		size, err := sizeDoc(v.Document(), opts, depth+1)
		return size, false, err
	case TypeArray:
		size, err := sizeArr(v.Array(), opts, depth+1)
		return size, false, err
	case TypeBinary:
		bin := v.Binary()
		size := int64(len(bin.Data)) + 4 + 1
		if bin.Subtype == SubtypeBinaryOld {
			size += 4
		}
		return size, false, nil
	case TypeUndefined:
		// Positions inside arrays are preserved, so undefined is only dropped
		// from documents.
		if !inArray && opts.IgnoreUndefined {
			return 0, true, nil
		}
		return 0, false, nil
	case TypeObjectID:
		return 12, false, nil
	case TypeBoolean:
		return 1, false, nil
	case TypeNull, TypeMinKey, TypeMaxKey:
		return 0, false, nil
	case TypeRegex:
		regex := v.Regex()
		return int64(len(regex.Pattern)) + 1 + int64(len(regex.Options)) + 1, false, nil
	case TypeDBPointer:
		return 4 + int64(len(v.DBPointer().DB)) + 1 + 12, false, nil
	case TypeCodeWithScope:
		cws := v.CodeWithScope()
		if len(cws.Scope) == 0 {
			return 4 + int64(len(cws.Code)) + 1, false, nil
		}
		scopeSize, err := sizeDoc(cws.Scope, opts, depth+1)
		if err != nil {
			return 0, false, err
		}
		return 4 + 4 + int64(len(cws.Code)) + 1 + scopeSize, false, nil
	case TypeInt32:
		return 4, false, nil
	case TypeTimestamp:
		return 8, false, nil
	case TypeDecimal128:
		return 16, false, nil
	case TypeDBRef:
		size, err := sizeDoc(v.DBRef().document(), opts, depth+1)
		return size, false, err
	case TypeFunction:
		if !opts.SerializeFunctions {
			return 0, true, nil
		}
		fn := v.Function()
		if len(fn.Scope) == 0 {
			return 4 + int64(len(fn.Source)) + 1, false, nil
		}
		scopeSize, err := sizeDoc(fn.Scope, opts, depth+1)
		if err != nil {
			return 0, false, err
		}
		return 4 + 4 + int64(len(fn.Source)) + 1 + scopeSize, false, nil
	case TypeMarshaler:
		resolved, err := v.Marshaler().MarshalValue()
		if err != nil || resolved.Type() == TypeMarshaler {
			return 0, true, nil
		}
		return sizeValue(resolved, opts, depth, inArray)
	default:
		return 0, true, nil
	}
}
