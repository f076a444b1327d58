package core

import (
	"math"

	"alert-packet/internal/types"
)

// ValidateRecord checks that a record structurally matches the resolved
// schema: every field present with the right native shape, array elements
// conforming, union values either nil or the codec's single-entry map
// form. It never fails with an error; compliance queries want a plain
// answer.
func ValidateRecord(schema types.ResolvedSchema, record map[string]any) bool {
	defs := map[string]types.Type{}
	CollectNamedTypes(schema.Root, defs)
	return validValue(schema.Root, record, defs)
}

// CollectNamedTypes walks a resolved tree and indexes every inline named
// definition by full name, so refs can be chased without re-walking.
func CollectNamedTypes(t types.Type, defs map[string]types.Type) {
	switch t.Kind {
	case types.TypeKindRecord:
		defs[t.FullName()] = t
		for _, field := range t.Fields {
			CollectNamedTypes(field.Type, defs)
		}
	case types.TypeKindEnum, types.TypeKindFixed:
		defs[t.FullName()] = t
	case types.TypeKindArray:
		CollectNamedTypes(*t.Items, defs)
	case types.TypeKindNullable:
		CollectNamedTypes(*t.Inner, defs)
	}
}

// UnionKey returns the key the codec's native form uses for a non-null
// union branch: the primitive or complex type name, or the full name for
// named types.
func UnionKey(t types.Type) string {
	switch t.Kind {
	case types.TypeKindPrimitive:
		return string(t.Primitive)
	case types.TypeKindArray:
		return "array"
	case types.TypeKindRef:
		return t.Name
	default:
		return t.FullName()
	}
}

func validValue(t types.Type, value any, defs map[string]types.Type) bool {
	switch t.Kind {
	case types.TypeKindPrimitive:
		return validPrimitive(t.Primitive, value)

	case types.TypeKindRef:
		def, ok := defs[t.Name]
		if !ok {
			return false
		}
		return validValue(def, value, defs)

	case types.TypeKindNullable:
		if value == nil {
			return true
		}
		wrapped, ok := value.(map[string]any)
		if !ok || len(wrapped) != 1 {
			return false
		}
		inner, ok := wrapped[UnionKey(*t.Inner)]
		if !ok {
			return false
		}
		return validValue(*t.Inner, inner, defs)

	case types.TypeKindArray:
		elements, ok := value.([]any)
		if !ok {
			return false
		}
		for _, element := range elements {
			if !validValue(*t.Items, element, defs) {
				return false
			}
		}
		return true

	case types.TypeKindRecord:
		record, ok := value.(map[string]any)
		if !ok {
			return false
		}
		for _, field := range t.Fields {
			fieldValue, present := record[field.Name]
			if !present {
				return false
			}
			if !validValue(field.Type, fieldValue, defs) {
				return false
			}
		}
		return true

	case types.TypeKindEnum:
		symbol, ok := value.(string)
		if !ok {
			return false
		}
		for _, candidate := range t.Symbols {
			if candidate == symbol {
				return true
			}
		}
		return false

	case types.TypeKindFixed:
		data, ok := value.([]byte)
		return ok && len(data) == t.Size

	default:
		return false
	}
}

func validPrimitive(kind types.PrimitiveKind, value any) bool {
	switch kind {
	case types.PrimitiveNull:
		return value == nil
	case types.PrimitiveBoolean:
		_, ok := value.(bool)
		return ok
	case types.PrimitiveInt:
		switch v := value.(type) {
		case int32:
			return true
		case int:
			return v >= math.MinInt32 && v <= math.MaxInt32
		case int64:
			return v >= math.MinInt32 && v <= math.MaxInt32
		default:
			return false
		}
	case types.PrimitiveLong:
		switch value.(type) {
		case int64, int, int32:
			return true
		default:
			return false
		}
	case types.PrimitiveFloat:
		switch value.(type) {
		case float32, float64:
			return true
		default:
			return false
		}
	case types.PrimitiveDouble:
		switch value.(type) {
		case float64, float32:
			return true
		default:
			return false
		}
	case types.PrimitiveString:
		_, ok := value.(string)
		return ok
	case types.PrimitiveBytes:
		_, ok := value.([]byte)
		return ok
	default:
		return false
	}
}
