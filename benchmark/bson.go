// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package benchmark

import (
	"fmt"
	"math"
	"time"

	"github.com/ikmak/bsonkit"
	"github.com/pkg/errors"
)

const (
	flatFieldCount = 64
	deepNestDepth  = 16
)

var (
	flatDataSize = mustDocumentSize(makeFlatDocument())
	deepDataSize = mustDocumentSize(makeDeepDocument())
)

// utility functions for the codec benchmarks

// makeFlatDocument builds a wide single-level document mixing the scalar
// types the codec handles on its fast paths.
func makeFlatDocument() bsonkit.Doc {
	doc := make(bsonkit.Doc, 0, flatFieldCount*5)
	for i := 0; i < flatFieldCount; i++ {
		doc = append(doc,
			bsonkit.EC.Int64(fmt.Sprintf("counter_%03d", i), int64(i)*math.MaxInt32),
			bsonkit.EC.Double(fmt.Sprintf("ratio_%03d", i), float64(i)/flatFieldCount),
			bsonkit.EC.String(fmt.Sprintf("label_%03d", i), fmt.Sprintf("benchmark value %d with some padding", i)),
			bsonkit.EC.Boolean(fmt.Sprintf("flag_%03d", i), i%2 == 0),
			bsonkit.EC.DateTime(fmt.Sprintf("stamp_%03d", i), time.Now().Unix()*1000),
		)
	}
	return doc
}

// makeDeepDocument builds a document nested deepNestDepth levels, each level
// carrying a handful of scalars so traversal dominates over payload copying.
func makeDeepDocument() bsonkit.Doc {
	doc := bsonkit.Doc{
		bsonkit.EC.String("leaf", "bottom of the tree"),
		bsonkit.EC.Int32("depth", 0),
	}
	for i := 1; i <= deepNestDepth; i++ {
		doc = bsonkit.Doc{
			bsonkit.EC.Int32("depth", int32(i)),
			bsonkit.EC.SubDocument("nested", doc),
			bsonkit.EC.Array("siblings", bsonkit.Arr{
				bsonkit.VC.Int32(int32(i)),
				bsonkit.VC.String("sibling"),
			}),
		}
	}
	return doc
}

func mustDocumentSize(doc bsonkit.Doc) int {
	size, err := doc.Size()
	if err != nil {
		panic(errors.Wrap(err, "sizing benchmark fixture"))
	}
	return int(size)
}

func marshalFixture(doc bsonkit.Doc) (bsonkit.Raw, error) {
	raw, err := doc.MarshalBSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshaling benchmark fixture")
	}
	if len(raw) == 0 {
		return nil, errors.New("empty benchmark fixture")
	}
	return bsonkit.Raw(raw), nil
}
