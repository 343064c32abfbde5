package bsonkit

// DefaultMaxDepth is the depth limit applied to size, encode, and decode
// operations when the caller does not supply one. A document at the root is
// at depth 1.
const DefaultMaxDepth = uint32(2048)

// EncodeOptions configures size calculation and encoding. The zero value
// requests the default behavior.
type EncodeOptions struct {
	// SerializeFunctions causes Function values to be written as JavaScript
	// code, with scope when one is present. When false, Function values are
	// skipped entirely.
	SerializeFunctions bool

	// IgnoreUndefined causes Undefined values inside documents to be skipped
	// entirely rather than written as null. Undefined values inside arrays
	// are always written, regardless of this setting, so that element
	// positions are preserved.
	IgnoreUndefined bool

	// MaxDepth overrides DefaultMaxDepth when nonzero.
	MaxDepth uint32
}

func (eo EncodeOptions) maxDepth() uint32 {
	if eo.MaxDepth != 0 {
		return eo.MaxDepth
	}
	return DefaultMaxDepth
}

// DecodeOptions configures decoding. The zero value requests the default
// behavior.
type DecodeOptions struct {
	// MaxDepth overrides DefaultMaxDepth when nonzero.
	MaxDepth uint32
}

func (do DecodeOptions) maxDepth() uint32 {
	if do.MaxDepth != 0 {
		return do.MaxDepth
	}
	return DefaultMaxDepth
}
