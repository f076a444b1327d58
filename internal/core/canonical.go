package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"alert-packet/internal/types"
)

// AvroJSON renders a resolved schema back into Avro's JSON value form
// (type names as strings, complex types as objects, [null, T] unions as
// two-element lists). Named types carry their full name in "name" with no
// separate namespace key, matching how the resolver hands schemas to the
// codec.
func AvroJSON(schema types.ResolvedSchema) any {
	return avroValue(schema.Root)
}

// CanonicalForm serializes the resolved schema's definition with sorted
// object keys. Field order inside "fields" lists is preserved (it is wire
// layout); only object keys sort. The bytes feed identifier derivation
// and nothing else.
func CanonicalForm(schema types.ResolvedSchema) ([]byte, error) {
	data, err := json.Marshal(AvroJSON(schema))
	if err != nil {
		return nil, ErrEncoding("canonical form", err)
	}
	return data, nil
}

// SchemaID derives the content identifier for a resolved schema: the hex
// SHA-256 of its canonical form. Collision-resistant by construction, as
// opposed to the 32-bit checksums that break down at survey scale.
func SchemaID(schema types.ResolvedSchema) (string, error) {
	canonical, err := CanonicalForm(schema)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func avroValue(t types.Type) any {
	switch t.Kind {
	case types.TypeKindPrimitive:
		if t.LogicalType != "" {
			return map[string]any{
				"type":        string(t.Primitive),
				"logicalType": t.LogicalType,
			}
		}
		return string(t.Primitive)

	case types.TypeKindRef:
		return t.Name

	case types.TypeKindNullable:
		return []any{"null", avroValue(*t.Inner)}

	case types.TypeKindArray:
		return map[string]any{
			"type":  "array",
			"items": avroValue(*t.Items),
		}

	case types.TypeKindRecord:
		fields := make([]any, 0, len(t.Fields))
		for _, field := range t.Fields {
			entry := map[string]any{
				"name": field.Name,
				"type": avroValue(field.Type),
			}
			if field.Doc != "" {
				entry["doc"] = field.Doc
			}
			if field.HasDefault {
				entry["default"] = field.Default
			}
			fields = append(fields, entry)
		}
		out := map[string]any{
			"type":   "record",
			"name":   t.FullName(),
			"fields": fields,
		}
		if t.Doc != "" {
			out["doc"] = t.Doc
		}
		return out

	case types.TypeKindEnum:
		out := map[string]any{
			"type":    "enum",
			"name":    t.FullName(),
			"symbols": toAnySlice(t.Symbols),
		}
		if t.Doc != "" {
			out["doc"] = t.Doc
		}
		return out

	case types.TypeKindFixed:
		return map[string]any{
			"type": "fixed",
			"name": t.FullName(),
			"size": t.Size,
		}

	default:
		return nil
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}
