// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package decimal holds the 128-bit decimal representation used by BSON. The
// codec treats a Decimal128 as an opaque pair of 64-bit halves; arithmetic and
// parsing are out of scope.
package decimal

import "fmt"

// Decimal128 holds decimal128 BSON values.
type Decimal128 struct {
	h, l uint64
}

// NewDecimal128 creates a Decimal128 using the provided high and low uint64s.
func NewDecimal128(h, l uint64) Decimal128 {
	return Decimal128{h: h, l: l}
}

// GetBytes returns the underlying bytes of the BSON decimal value as two
// uint64 values. The first contains the most significant 8 bytes of the value
// and the second contains the least significant 8 bytes.
func (d Decimal128) GetBytes() (uint64, uint64) {
	return d.h, d.l
}

// Equal compares d to d2 and returns true if they hold the same bits.
func (d Decimal128) Equal(d2 Decimal128) bool {
	return d.h == d2.h && d.l == d2.l
}

// IsNaN returns true if d holds the decimal128 NaN bit pattern.
func (d Decimal128) IsNaN() bool {
	return d.h>>58&(1<<5-1) == 0x1F
}

// IsInf returns +1 if d is positive infinity, -1 if d is negative infinity,
// and 0 otherwise.
func (d Decimal128) IsInf() int {
	if d.h>>58&(1<<5-1) != 0x1E {
		return 0
	}
	if d.h>>63&1 == 0 {
		return 1
	}
	return -1
}

// String renders the raw halves. The codec deliberately does not implement the
// IEEE 754-2008 decimal character representation; this form is for debugging
// and error messages only.
func (d Decimal128) String() string {
	switch {
	case d.IsNaN():
		return "NaN"
	case d.IsInf() > 0:
		return "Infinity"
	case d.IsInf() < 0:
		return "-Infinity"
	}
	return fmt.Sprintf("Decimal128(%#016x,%#016x)", d.h, d.l)
}
