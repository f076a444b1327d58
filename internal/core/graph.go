package core

import (
	"context"
	"reflect"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"alert-packet/internal/types"
)

// BuildTypeGraph assembles an immutable type graph from a root definition
// and the named types it may reference. It fails when two definitions
// claim the same full name or when any symbolic reference points outside
// the table. No field-level validation happens here; that is the
// resolver's and the codec's business.
func BuildTypeGraph(ctx context.Context, root types.Type, named []types.Type) (types.TypeGraph, error) {
	assert.NotEmpty(ctx, root.Name, "root definition must be named")

	defs := map[string]types.Type{}
	if err := addDef(defs, root); err != nil {
		return types.TypeGraph{}, err
	}
	for _, def := range named {
		if err := addDef(defs, def); err != nil {
			return types.TypeGraph{}, err
		}
	}

	// Inline named definitions also claim their name; collect them so a
	// ref to a type that only exists nested inside another definition
	// still resolves. Two distinct definitions under one name fail here,
	// whichever order the walk meets them in.
	declared := make([]types.Type, 0, len(defs))
	for _, def := range defs {
		declared = append(declared, def)
	}
	for _, def := range declared {
		if err := collectInlineNames(def, defs); err != nil {
			return types.TypeGraph{}, err
		}
	}

	for name, def := range defs {
		if err := checkRefs(def, name, defs); err != nil {
			return types.TypeGraph{}, err
		}
	}

	return types.TypeGraph{RootName: root.FullName(), Defs: defs}, nil
}

func addDef(defs map[string]types.Type, def types.Type) error {
	name := def.FullName()
	if _, ok := defs[name]; ok {
		return errDuplicateName(name)
	}
	defs[name] = def
	return nil
}

func collectInlineNames(t types.Type, defs map[string]types.Type) error {
	switch t.Kind {
	case types.TypeKindRecord:
		if err := claimName(t, defs); err != nil {
			return err
		}
		for _, field := range t.Fields {
			if err := collectInlineNames(field.Type, defs); err != nil {
				return err
			}
		}
	case types.TypeKindEnum, types.TypeKindFixed:
		return claimName(t, defs)
	case types.TypeKindArray:
		return collectInlineNames(*t.Items, defs)
	case types.TypeKindNullable:
		return collectInlineNames(*t.Inner, defs)
	}
	return nil
}

// claimName enters a named definition into the table. Re-inlining the
// identical definition is legal; a different definition under the same
// full name is a duplicate.
func claimName(t types.Type, defs map[string]types.Type) error {
	name := t.FullName()
	existing, ok := defs[name]
	if !ok {
		defs[name] = t
		return nil
	}
	if !reflect.DeepEqual(existing, t) {
		return errDuplicateName(name)
	}
	return nil
}

func checkRefs(t types.Type, within string, defs map[string]types.Type) error {
	switch t.Kind {
	case types.TypeKindRef:
		if _, ok := defs[t.Name]; !ok {
			return errDanglingReference(t.Name, within)
		}
	case types.TypeKindRecord:
		for _, field := range t.Fields {
			if err := checkRefs(field.Type, t.FullName(), defs); err != nil {
				return err
			}
		}
	case types.TypeKindArray:
		return checkRefs(*t.Items, within, defs)
	case types.TypeKindNullable:
		return checkRefs(*t.Inner, within, defs)
	}
	return nil
}
