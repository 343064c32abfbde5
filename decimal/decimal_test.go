// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package decimal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimal128(t *testing.T) {
	t.Parallel()
	t.Run("GetBytes", func(t *testing.T) {
		t.Parallel()
		d := NewDecimal128(0x3040000000000000, 42)
		h, l := d.GetBytes()
		require.Equal(t, uint64(0x3040000000000000), h)
		require.Equal(t, uint64(42), l)
	})
	t.Run("Equal", func(t *testing.T) {
		t.Parallel()
		require.True(t, NewDecimal128(1, 2).Equal(NewDecimal128(1, 2)))
		require.False(t, NewDecimal128(1, 2).Equal(NewDecimal128(2, 1)))
	})
	t.Run("SpecialValues", func(t *testing.T) {
		t.Parallel()
		nan := NewDecimal128(0x7C00000000000000, 0)
		require.True(t, nan.IsNaN())
		require.Equal(t, "NaN", nan.String())

		posInf := NewDecimal128(0x7800000000000000, 0)
		require.Equal(t, 1, posInf.IsInf())
		require.Equal(t, "Infinity", posInf.String())

		negInf := NewDecimal128(0xF800000000000000, 0)
		require.Equal(t, -1, negInf.IsInf())
		require.Equal(t, "-Infinity", negInf.String())

		finite := NewDecimal128(0x3040000000000000, 42)
		require.False(t, finite.IsNaN())
		require.Equal(t, 0, finite.IsInf())
	})
}
