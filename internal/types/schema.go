package types

// TypeKind tags the variants of the schema type model. A schema is a tree
// of Type values; named kinds (record, enum, fixed) carry a namespace-
// qualified name that must be unique within one resolved schema.
type TypeKind string

const (
	TypeKindPrimitive TypeKind = "primitive"
	TypeKindArray     TypeKind = "array"
	TypeKindRecord    TypeKind = "record"
	TypeKindEnum      TypeKind = "enum"
	TypeKindFixed     TypeKind = "fixed"

	// TypeKindRef is a symbolic reference to a named type, by full name.
	TypeKindRef TypeKind = "ref"

	// TypeKindNullable is the [null, T] union, the only union shape the
	// alert schemas use. Inner holds the non-null branch.
	TypeKindNullable TypeKind = "nullable"
)

// PrimitiveKind enumerates the closed set of Avro primitive types.
type PrimitiveKind string

const (
	PrimitiveNull    PrimitiveKind = "null"
	PrimitiveBoolean PrimitiveKind = "boolean"
	PrimitiveInt     PrimitiveKind = "int"
	PrimitiveLong    PrimitiveKind = "long"
	PrimitiveFloat   PrimitiveKind = "float"
	PrimitiveDouble  PrimitiveKind = "double"
	PrimitiveString  PrimitiveKind = "string"
	PrimitiveBytes   PrimitiveKind = "bytes"
)

// Type is one node of a schema tree. Exactly the fields relevant to Kind
// are populated; the rest stay zero. Types are treated as immutable once
// constructed.
type Type struct {
	Kind TypeKind

	// Primitive is set when Kind is TypeKindPrimitive.
	Primitive PrimitiveKind

	// Name is the local name for records, enums, and fixeds, and the
	// full target name for refs.
	Name      string
	Namespace string

	Doc string

	// LogicalType is carried through untouched (e.g. "timestamp-micros").
	LogicalType string

	// Fields is set for records, in declaration order. Order determines
	// binary layout and must never be rearranged.
	Fields []Field

	// Symbols is set for enums, in declaration order.
	Symbols []string

	// Size is set for fixeds: the exact byte length.
	Size int

	// Items is set for arrays: the element type.
	Items *Type

	// Inner is set for nullables: the non-null branch.
	Inner *Type
}

// Field is one record field.
type Field struct {
	Name string
	Type Type
	Doc  string

	// Default is the declared default value, if HasDefault is set. It is
	// kept in its JSON-decoded form and passed through untouched.
	Default    any
	HasDefault bool
}

// FullName returns the namespace-qualified name for named types, or the
// bare Name when no namespace is set. For refs, Name already carries the
// full target name.
func (t Type) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// IsNamed reports whether this type carries a name that must be unique
// within a resolved schema.
func (t Type) IsNamed() bool {
	switch t.Kind {
	case TypeKindRecord, TypeKindEnum, TypeKindFixed:
		return true
	default:
		return false
	}
}

// TypeGraph is an unresolved schema: a table of named type definitions
// plus the full name of the root. Build it with core.BuildTypeGraph, which
// verifies that every symbolic reference lands in Defs; after that it is
// immutable.
type TypeGraph struct {
	RootName string
	Defs     map[string]Type
}

// Root returns the root definition.
func (g TypeGraph) Root() Type {
	return g.Defs[g.RootName]
}

// ResolvedSchema is a single expanded schema tree: every named type is
// inline-defined at its first occurrence in depth-first order and referred
// to by a bare ref everywhere else. Immutable once produced by the
// resolver.
type ResolvedSchema struct {
	Root Type
}
