package adapters

import (
	"encoding/json"

	"github.com/linkedin/goavro/v2"

	"alert-packet/internal/core"
	"alert-packet/internal/ports"
	"alert-packet/internal/types"
)

// GoavroCodec encodes and decodes records for one resolved schema,
// delegating all bit-level work to goavro. Safe for concurrent use across
// independent records; it holds no mutable state after construction.
type GoavroCodec struct {
	schema types.ResolvedSchema
	codec  *goavro.Codec
}

// NewRecordCodec builds a codec for the resolved schema.
func NewRecordCodec(schema types.ResolvedSchema) (GoavroCodec, error) {
	definition, err := json.Marshal(core.AvroJSON(schema))
	if err != nil {
		return GoavroCodec{}, core.ErrEncoding("schema definition", err)
	}
	codec, err := goavro.NewCodec(string(definition))
	if err != nil {
		return GoavroCodec{}, core.ErrSchemaMismatch("schema rejected by codec: " + err.Error())
	}
	return GoavroCodec{schema: schema, codec: codec}, nil
}

// Encode serializes a record against the schema. The structural check
// runs first so shape problems surface as encoding errors with the
// offending record, not as codec internals.
func (c GoavroCodec) Encode(record map[string]any) ([]byte, error) {
	if !core.ValidateRecord(c.schema, record) {
		return nil, core.ErrEncoding("record does not match schema", nil)
	}
	data, err := c.codec.BinaryFromNative(nil, record)
	if err != nil {
		return nil, core.ErrEncoding("binary serialization", err)
	}
	return data, nil
}

// Decode deserializes bytes produced against this schema. Trailing bytes
// mean the input was not a single record and fail the decode.
func (c GoavroCodec) Decode(data []byte) (map[string]any, error) {
	native, rest, err := c.codec.NativeFromBinary(data)
	if err != nil {
		return nil, core.ErrDecoding("binary deserialization", err)
	}
	if len(rest) != 0 {
		return nil, core.ErrDecoding("trailing bytes after record", nil)
	}
	record, ok := native.(map[string]any)
	if !ok {
		return nil, core.ErrDecoding("decoded value is not a record", nil)
	}
	return record, nil
}

// Validate reports structural compliance without failing.
func (c GoavroCodec) Validate(record map[string]any) bool {
	return core.ValidateRecord(c.schema, record)
}

var _ ports.RecordCodecPort = GoavroCodec{}
