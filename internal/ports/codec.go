package ports

// RecordCodecPort encodes and decodes records against one resolved
// schema. The bit-level work is delegated to an external Avro codec; the
// implementation's own responsibility stops at schema-shape validation.
//
// A codec holds no mutable state after construction and may be shared
// across goroutines; a failed Decode never corrupts the codec or any
// registry it was built from.
type RecordCodecPort interface {
	// Encode serializes a record, failing when the record does not
	// structurally match the schema.
	Encode(record map[string]any) ([]byte, error)

	// Decode deserializes bytes produced by Encode against the same
	// schema, failing on truncated or malformed input.
	Decode(data []byte) (map[string]any, error)

	// Validate reports structural compliance without failing.
	Validate(record map[string]any) bool
}
