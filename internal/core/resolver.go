package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"alert-packet/internal/types"
)

// ResolverCore flattens a type graph into a single resolved schema tree.
//
// The walk is depth-first from the root with one seen-names set shared
// across the whole traversal: the first occurrence of a named type is
// expanded inline, every later occurrence becomes a bare ref. That keeps
// shared substructure (the same source record under two history arrays)
// and self-referential types from expanding forever or tripping the
// codec's duplicate-definition check, and it makes resolution
// deterministic: the same graph always yields byte-identical canonical
// forms.
type ResolverCore struct {
	// KeepNullable lists unqualified field names whose [null, T] unions
	// survive resolution. Every other [null, T] collapses to T; the alert
	// schemas use nullability purely as an optionality marker, so the
	// narrowing is intentional and documented rather than a general union
	// resolver.
	KeepNullable map[string]struct{}
}

func NewResolverCore(keepNullable []string) ResolverCore {
	keep := map[string]struct{}{}
	for _, name := range keepNullable {
		keep[name] = struct{}{}
	}
	return ResolverCore{KeepNullable: keep}
}

// Resolve expands the graph into a resolved schema. It fails with an
// unresolvable-type error when a definition falls outside the closed type
// set, including unions that are not exactly [null, T].
func (r ResolverCore) Resolve(ctx context.Context, graph types.TypeGraph) (types.ResolvedSchema, error) {
	walk := &resolveWalk{graph: graph, keep: r.KeepNullable, seen: map[string]struct{}{}}
	root, err := walk.resolveType(graph.Root())
	if err != nil {
		return types.ResolvedSchema{}, err
	}
	log.Ctx(ctx).Debug().
		Str("root", graph.RootName).
		Int("named_types", len(walk.seen)).
		Msg("schema resolved")
	return types.ResolvedSchema{Root: root}, nil
}

type resolveWalk struct {
	graph types.TypeGraph
	keep  map[string]struct{}
	seen  map[string]struct{}
}

func (w *resolveWalk) resolveType(t types.Type) (types.Type, error) {
	switch t.Kind {
	case types.TypeKindPrimitive:
		return t, nil

	case types.TypeKindRecord:
		return w.resolveRecord(t)

	case types.TypeKindEnum, types.TypeKindFixed:
		name := t.FullName()
		if _, ok := w.seen[name]; ok {
			return types.Type{Kind: types.TypeKindRef, Name: name}, nil
		}
		w.seen[name] = struct{}{}
		return t, nil

	case types.TypeKindRef:
		if _, ok := w.seen[t.Name]; ok {
			return t, nil
		}
		def, ok := w.graph.Defs[t.Name]
		if !ok {
			// Graph construction verifies refs; a miss here means the
			// graph was hand-built without BuildTypeGraph.
			return types.Type{}, errDanglingReference(t.Name, "resolution")
		}
		return w.resolveType(def)

	case types.TypeKindArray:
		items, err := w.resolveType(*t.Items)
		if err != nil {
			return types.Type{}, err
		}
		t.Items = &items
		return t, nil

	case types.TypeKindNullable:
		inner, err := w.resolveType(*t.Inner)
		if err != nil {
			return types.Type{}, err
		}
		t.Inner = &inner
		return t, nil

	default:
		return types.Type{}, ErrUnresolvableType(fmt.Sprintf("kind %q", t.Kind))
	}
}

func (w *resolveWalk) resolveRecord(t types.Type) (types.Type, error) {
	name := t.FullName()
	if _, ok := w.seen[name]; ok {
		return types.Type{Kind: types.TypeKindRef, Name: name}, nil
	}
	w.seen[name] = struct{}{}

	fields := make([]types.Field, 0, len(t.Fields))
	for _, field := range t.Fields {
		resolved, err := w.resolveField(field)
		if err != nil {
			return types.Type{}, err
		}
		fields = append(fields, resolved)
	}
	t.Fields = fields
	return t, nil
}

func (w *resolveWalk) resolveField(field types.Field) (types.Field, error) {
	if field.Type.Kind != types.TypeKindNullable {
		resolved, err := w.resolveType(field.Type)
		if err != nil {
			return types.Field{}, err
		}
		field.Type = resolved
		return field, nil
	}

	inner, err := w.resolveType(*field.Type.Inner)
	if err != nil {
		return types.Field{}, err
	}
	if _, keep := w.keep[field.Name]; keep {
		nullable := field.Type
		nullable.Inner = &inner
		field.Type = nullable
		return field, nil
	}

	// Collapsing [null, T] to T makes a declared null default invalid, so
	// the default goes with the union.
	field.Type = inner
	if field.HasDefault && field.Default == nil {
		field.Default = nil
		field.HasDefault = false
	}
	return field, nil
}
