package core

import (
	"fmt"
	"math/rand/v2"

	"alert-packet/internal/types"
)

// GenerateOptions steers synthetic record generation.
//
// Both lookups use unqualified field names ("diaSourceId", not
// "lsst.v7_0.diaSource.diaSourceId"). The alert schemas have globally
// unique field names so this is sufficient; behavior is undefined if two
// unrelated fields share a name but need different treatment.
type GenerateOptions struct {
	// SuppressNull lists nullable fields to emit as null instead of
	// generating a value for the non-null branch.
	SuppressNull map[string]struct{}

	// ArrayCardinality fixes the element count for array fields. Zero is
	// a valid count and produces an empty collection. An array field
	// absent from the map gets no synthesized data at all: null if the
	// field is nullable, an empty collection otherwise. History arrays
	// are unbounded in real packets, so absence must never mean
	// "pick something".
	ArrayCardinality map[string]int
}

// GeneratorCore produces schema-conformant records with randomized
// contents, walking a resolved schema the same way the resolver does.
// Primitive values span the full representable range of their type;
// strings and bytes stay short so fixtures stay small.
type GeneratorCore struct {
	rng *rand.Rand
}

// NewGeneratorCore returns a generator seeded for reproducible output.
// Each generator owns its random state; nothing is global.
func NewGeneratorCore(seed uint64) GeneratorCore {
	return GeneratorCore{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Generate walks the resolved schema and emits a conforming record.
func (g GeneratorCore) Generate(schema types.ResolvedSchema, opts GenerateOptions) (map[string]any, error) {
	if schema.Root.Kind != types.TypeKindRecord {
		return nil, ErrUnresolvableType(fmt.Sprintf("generator needs a record root, got %q", schema.Root.Kind))
	}
	defs := map[string]types.Type{}
	CollectNamedTypes(schema.Root, defs)
	value, err := g.generateRecord(schema.Root, opts, defs)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (g GeneratorCore) generateRecord(t types.Type, opts GenerateOptions, defs map[string]types.Type) (map[string]any, error) {
	out := make(map[string]any, len(t.Fields))
	for _, field := range t.Fields {
		value, err := g.generateField(field, opts, defs)
		if err != nil {
			return nil, err
		}
		out[field.Name] = value
	}
	return out, nil
}

func (g GeneratorCore) generateField(field types.Field, opts GenerateOptions, defs map[string]types.Type) (any, error) {
	t := field.Type

	if t.Kind == types.TypeKindNullable {
		if _, suppress := opts.SuppressNull[field.Name]; suppress {
			return nil, nil
		}
		inner := *t.Inner
		if innerKind(inner, defs) == types.TypeKindArray {
			if _, ok := opts.ArrayCardinality[field.Name]; !ok {
				return nil, nil
			}
		}
		value, err := g.generateSized(inner, field.Name, opts, defs)
		if err != nil {
			return nil, err
		}
		return map[string]any{UnionKey(inner): value}, nil
	}

	return g.generateSized(t, field.Name, opts, defs)
}

// generateSized generates a value for a field's type, applying the
// field-level array cardinality.
func (g GeneratorCore) generateSized(t types.Type, fieldName string, opts GenerateOptions, defs map[string]types.Type) (any, error) {
	if t.Kind == types.TypeKindRef {
		def, ok := defs[t.Name]
		if !ok {
			return nil, errDanglingReference(t.Name, "generation")
		}
		t = def
	}
	if t.Kind != types.TypeKindArray {
		return g.generateValue(t, opts, defs)
	}

	count := opts.ArrayCardinality[fieldName]
	elements := make([]any, 0, count)
	for i := 0; i < count; i++ {
		element, err := g.generateValue(*t.Items, opts, defs)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func (g GeneratorCore) generateValue(t types.Type, opts GenerateOptions, defs map[string]types.Type) (any, error) {
	switch t.Kind {
	case types.TypeKindPrimitive:
		return g.generatePrimitive(t.Primitive), nil

	case types.TypeKindRecord:
		return g.generateRecord(t, opts, defs)

	case types.TypeKindEnum:
		return t.Symbols[g.rng.IntN(len(t.Symbols))], nil

	case types.TypeKindFixed:
		return g.randomBytes(t.Size), nil

	case types.TypeKindRef:
		def, ok := defs[t.Name]
		if !ok {
			return nil, errDanglingReference(t.Name, "generation")
		}
		return g.generateValue(def, opts, defs)

	case types.TypeKindArray:
		// An array not directly under a field has no cardinality key;
		// synthesize nothing.
		return []any{}, nil

	case types.TypeKindNullable:
		value, err := g.generateValue(*t.Inner, opts, defs)
		if err != nil {
			return nil, err
		}
		return map[string]any{UnionKey(*t.Inner): value}, nil

	default:
		return nil, ErrUnresolvableType(fmt.Sprintf("kind %q", t.Kind))
	}
}

func (g GeneratorCore) generatePrimitive(kind types.PrimitiveKind) any {
	switch kind {
	case types.PrimitiveNull:
		return nil
	case types.PrimitiveBoolean:
		return g.rng.IntN(2) == 1
	case types.PrimitiveInt:
		return int32(g.rng.Uint32())
	case types.PrimitiveLong:
		return int64(g.rng.Uint64())
	case types.PrimitiveFloat:
		return g.rng.Float32()
	case types.PrimitiveDouble:
		return g.rng.Float64()
	case types.PrimitiveString:
		return g.randomString()
	case types.PrimitiveBytes:
		return g.randomBytes(g.rng.IntN(17))
	default:
		return nil
	}
}

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (g GeneratorCore) randomString() string {
	length := g.rng.IntN(11)
	out := make([]byte, length)
	for i := range out {
		out[i] = asciiLetters[g.rng.IntN(len(asciiLetters))]
	}
	return string(out)
}

func (g GeneratorCore) randomBytes(length int) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = byte(g.rng.Uint32())
	}
	return out
}

func innerKind(t types.Type, defs map[string]types.Type) types.TypeKind {
	if t.Kind == types.TypeKindRef {
		if def, ok := defs[t.Name]; ok {
			return def.Kind
		}
	}
	return t.Kind
}
