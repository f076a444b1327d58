package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"alert-packet/internal/core"
	"alert-packet/internal/types"
)

// SchemaFileAdapter loads Avro .avsc schema files into the tagged type
// model. An .avsc file carries Avro's polymorphic JSON (a type is a
// string, an object, or a union list); the adapter normalizes that into
// types.Type and assembles a TypeGraph from a directory of files that
// reference each other by full name.
type SchemaFileAdapter struct{}

func NewSchemaFileAdapter() SchemaFileAdapter {
	return SchemaFileAdapter{}
}

func (a SchemaFileAdapter) LoadGraph(ctx context.Context, rootPath string) (types.TypeGraph, error) {
	rootName := strings.TrimSuffix(filepath.Base(rootPath), ".avsc")

	dir := filepath.Dir(rootPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.TypeGraph{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("schema directory not readable").
			WithCause(err)
	}

	var root types.Type
	var named []types.Type
	var haveRoot bool
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".avsc") {
			continue
		}
		def, err := a.loadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return types.TypeGraph{}, err
		}
		if def.FullName() == rootName {
			root = def
			haveRoot = true
			continue
		}
		named = append(named, def)
	}
	if !haveRoot {
		return types.TypeGraph{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("root schema %s not found in %s", rootName, dir))
	}

	return core.BuildTypeGraph(ctx, root, named)
}

func (a SchemaFileAdapter) loadFile(path string) (types.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Type{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("schema file not found").
			WithCause(err)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Type{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("schema file %s is not valid JSON", filepath.Base(path))).
			WithCause(err)
	}
	def, err := ParseAvroType(raw)
	if err != nil {
		return types.Type{}, err
	}
	if !def.IsNamed() {
		return types.Type{}, core.ErrUnresolvableType(
			fmt.Sprintf("schema file %s must define a named type", filepath.Base(path)))
	}
	return def, nil
}

// ParseAvroType converts one Avro JSON type value (string, object, or
// union list) into the tagged model.
func ParseAvroType(raw any) (types.Type, error) {
	switch value := raw.(type) {
	case string:
		return parseTypeName(value), nil
	case []any:
		return parseUnion(value)
	case map[string]any:
		return parseTypeObject(value)
	default:
		return types.Type{}, core.ErrUnresolvableType(fmt.Sprintf("unexpected schema value %T", raw))
	}
}

var primitiveNames = map[string]types.PrimitiveKind{
	"null":    types.PrimitiveNull,
	"boolean": types.PrimitiveBoolean,
	"int":     types.PrimitiveInt,
	"long":    types.PrimitiveLong,
	"float":   types.PrimitiveFloat,
	"double":  types.PrimitiveDouble,
	"string":  types.PrimitiveString,
	"bytes":   types.PrimitiveBytes,
}

func parseTypeName(name string) types.Type {
	if kind, ok := primitiveNames[name]; ok {
		return types.Type{Kind: types.TypeKindPrimitive, Primitive: kind}
	}
	return types.Type{Kind: types.TypeKindRef, Name: name}
}

// parseUnion accepts exactly [null, T]. Anything else in union position
// is outside the closed type set: the alert schema corpus never writes
// multi-branch unions, and silently narrowing one would change wire
// layout.
func parseUnion(branches []any) (types.Type, error) {
	if len(branches) != 2 {
		return types.Type{}, core.ErrUnresolvableType(
			fmt.Sprintf("union with %d branches, only [null, T] is supported", len(branches)))
	}
	first, ok := branches[0].(string)
	if !ok || first != "null" {
		return types.Type{}, core.ErrUnresolvableType("union must start with null")
	}
	inner, err := ParseAvroType(branches[1])
	if err != nil {
		return types.Type{}, err
	}
	if inner.Kind == types.TypeKindPrimitive && inner.Primitive == types.PrimitiveNull {
		return types.Type{}, core.ErrUnresolvableType("union [null, null]")
	}
	return types.Type{Kind: types.TypeKindNullable, Inner: &inner}, nil
}

func parseTypeObject(obj map[string]any) (types.Type, error) {
	typeValue, ok := obj["type"]
	if !ok {
		return types.Type{}, core.ErrUnresolvableType("type object without a type key")
	}
	typeName, ok := typeValue.(string)
	if !ok {
		// {"type": {...}} nests a full type value; extra keys on the
		// wrapper carry no meaning.
		return ParseAvroType(typeValue)
	}

	switch typeName {
	case "record":
		return parseRecord(obj)
	case "enum":
		return parseEnum(obj)
	case "fixed":
		return parseFixed(obj)
	case "array":
		items, err := ParseAvroType(obj["items"])
		if err != nil {
			return types.Type{}, err
		}
		return types.Type{Kind: types.TypeKindArray, Items: &items}, nil
	default:
		if kind, ok := primitiveNames[typeName]; ok {
			return types.Type{
				Kind:        types.TypeKindPrimitive,
				Primitive:   kind,
				LogicalType: stringKey(obj, "logicalType"),
			}, nil
		}
		return types.Type{Kind: types.TypeKindRef, Name: typeName}, nil
	}
}

func parseRecord(obj map[string]any) (types.Type, error) {
	name, namespace := splitName(obj)
	rawFields, ok := obj["fields"].([]any)
	if !ok {
		return types.Type{}, core.ErrUnresolvableType(fmt.Sprintf("record %s without fields", name))
	}
	fields := make([]types.Field, 0, len(rawFields))
	for _, rawField := range rawFields {
		fieldObj, ok := rawField.(map[string]any)
		if !ok {
			return types.Type{}, core.ErrUnresolvableType(fmt.Sprintf("malformed field in record %s", name))
		}
		fieldType, err := ParseAvroType(fieldObj["type"])
		if err != nil {
			return types.Type{}, err
		}
		field := types.Field{
			Name: stringKey(fieldObj, "name"),
			Type: fieldType,
			Doc:  stringKey(fieldObj, "doc"),
		}
		if defaultValue, has := fieldObj["default"]; has {
			field.Default = defaultValue
			field.HasDefault = true
		}
		fields = append(fields, field)
	}
	return types.Type{
		Kind:      types.TypeKindRecord,
		Name:      name,
		Namespace: namespace,
		Doc:       stringKey(obj, "doc"),
		Fields:    fields,
	}, nil
}

func parseEnum(obj map[string]any) (types.Type, error) {
	name, namespace := splitName(obj)
	rawSymbols, ok := obj["symbols"].([]any)
	if !ok {
		return types.Type{}, core.ErrUnresolvableType(fmt.Sprintf("enum %s without symbols", name))
	}
	symbols := make([]string, 0, len(rawSymbols))
	for _, raw := range rawSymbols {
		symbol, ok := raw.(string)
		if !ok {
			return types.Type{}, core.ErrUnresolvableType(fmt.Sprintf("enum %s has a non-string symbol", name))
		}
		symbols = append(symbols, symbol)
	}
	return types.Type{
		Kind:      types.TypeKindEnum,
		Name:      name,
		Namespace: namespace,
		Doc:       stringKey(obj, "doc"),
		Symbols:   symbols,
	}, nil
}

func parseFixed(obj map[string]any) (types.Type, error) {
	name, namespace := splitName(obj)
	size, ok := obj["size"].(float64)
	if !ok || size < 0 {
		return types.Type{}, core.ErrUnresolvableType(fmt.Sprintf("fixed %s without a valid size", name))
	}
	return types.Type{
		Kind:      types.TypeKindFixed,
		Name:      name,
		Namespace: namespace,
		Size:      int(size),
	}, nil
}

// splitName handles both spellings the schema files use: a separate
// namespace key, or a dotted full name with no namespace.
func splitName(obj map[string]any) (name string, namespace string) {
	name = stringKey(obj, "name")
	namespace = stringKey(obj, "namespace")
	if namespace == "" {
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			namespace = name[:idx]
			name = name[idx+1:]
		}
	}
	return name, namespace
}

func stringKey(obj map[string]any, key string) string {
	value, _ := obj[key].(string)
	return value
}
