// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"context"

	"github.com/ikmak/bsonkit"
	"github.com/pkg/errors"
)

func FlatDocumentEncoding(ctx context.Context, tm TimerManager, iters int) error {
	doc := makeFlatDocument()

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		out, err := doc.MarshalBSON()
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return errors.New("marshaling error")
		}
	}

	return nil
}

func FlatDocumentSizing(ctx context.Context, tm TimerManager, iters int) error {
	doc := makeFlatDocument()

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		size, err := doc.Size()
		if err != nil {
			return err
		}
		if size == 0 {
			return errors.New("sizing error")
		}
	}

	return nil
}

func FlatDocumentDecoding(ctx context.Context, tm TimerManager, iters int) error {
	raw, err := marshalFixture(makeFlatDocument())
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		out, err := bsonkit.ReadDoc(raw)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return errors.New("decoding error")
		}
	}

	return nil
}

func DeepDocumentEncoding(ctx context.Context, tm TimerManager, iters int) error {
	doc := makeDeepDocument()

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		out, err := doc.MarshalBSON()
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return errors.New("marshaling error")
		}
	}

	return nil
}

func DeepDocumentDecoding(ctx context.Context, tm TimerManager, iters int) error {
	raw, err := marshalFixture(makeDeepDocument())
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		out, err := bsonkit.ReadDoc(raw)
		if err != nil {
			return err
		}
		if len(out) == 0 {
			return errors.New("decoding error")
		}
	}

	return nil
}

func FlatRawValidation(ctx context.Context, tm TimerManager, iters int) error {
	raw, err := marshalFixture(makeFlatDocument())
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		size, err := raw.Validate()
		if err != nil {
			return err
		}
		if size == 0 {
			return errors.New("validation error")
		}
	}

	return nil
}

func FlatRawLookup(ctx context.Context, tm TimerManager, iters int) error {
	raw, err := marshalFixture(makeFlatDocument())
	if err != nil {
		return err
	}

	tm.ResetTimer()

	for i := 0; i < iters; i++ {
		val, err := raw.Lookup("label_032")
		if err != nil {
			return err
		}
		if _, ok := val.StringValueOK(); !ok {
			return errors.New("lookup returned wrong type")
		}
	}

	return nil
}
