// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package objectid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectID(t *testing.T) {
	t.Parallel()
	t.Run("FromHex", func(t *testing.T) {
		t.Parallel()
		oid, err := FromHex("5a934e000102030405060708")
		require.NoError(t, err)
		require.Equal(t, "5a934e000102030405060708", oid.Hex())
		require.Equal(t, ObjectID{0x5a, 0x93, 0x4e, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, oid)
	})
	t.Run("FromHexErrors", func(t *testing.T) {
		t.Parallel()
		_, err := FromHex("5a934e0001020304050607") // 11 bytes
		require.Equal(t, ErrInvalidHex, err)
		_, err = FromHex("zz934e000102030405060708")
		require.Error(t, err)
	})
	t.Run("FromBytes", func(t *testing.T) {
		t.Parallel()
		b := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
		oid, err := FromBytes(b)
		require.NoError(t, err)
		require.Equal(t, b, oid[:])

		_, err = FromBytes([]byte{1, 2, 3})
		require.Error(t, err)
	})
	t.Run("IsZero", func(t *testing.T) {
		t.Parallel()
		require.True(t, NilObjectID.IsZero())
		oid, err := FromHex("5a934e000102030405060708")
		require.NoError(t, err)
		require.False(t, oid.IsZero())
	})
	t.Run("String", func(t *testing.T) {
		t.Parallel()
		oid, err := FromHex("5a934e000102030405060708")
		require.NoError(t, err)
		require.Equal(t, `ObjectID("5a934e000102030405060708")`, oid.String())
	})
}
