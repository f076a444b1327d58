package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"alert-packet/internal/core"
	"alert-packet/internal/types"
)

const alertSchemaJSON = `{
	"type": "record",
	"name": "lsst.v7_0.alert",
	"fields": [
		{"name": "alertId", "type": "long"},
		{"name": "diaSource", "type": "lsst.v7_0.diaSource"},
		{"name": "prvDiaSources", "type": ["null", {"type": "array", "items": "lsst.v7_0.diaSource"}], "default": null}
	]
}`

const diaSourceSchemaJSON = `{
	"type": "record",
	"name": "diaSource",
	"namespace": "lsst.v7_0",
	"fields": [
		{"name": "diaSourceId", "type": "long"},
		{"name": "midpointMjdTai", "type": {"type": "double"}, "doc": "Effective mid-visit time"},
		{"name": "psfFlux", "type": ["null", "float"], "default": null}
	]
}`

func writeSchemaDir(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	root := filepath.Join(dir, "lsst.v7_0.alert.avsc")
	require.NoError(t, os.WriteFile(root, []byte(alertSchemaJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lsst.v7_0.diaSource.avsc"), []byte(diaSourceSchemaJSON), 0644))
	return root
}

func TestLoadGraph(t *testing.T) {
	rootFile := writeSchemaDir(t, t.TempDir())

	graph, err := NewSchemaFileAdapter().LoadGraph(t.Context(), rootFile)
	require.NoError(t, err)
	require.Equal(t, "lsst.v7_0.alert", graph.RootName)
	require.Contains(t, graph.Defs, "lsst.v7_0.diaSource")

	source := graph.Defs["lsst.v7_0.diaSource"]
	require.Equal(t, "Effective mid-visit time", source.Fields[1].Doc)
	require.Equal(t, types.TypeKindNullable, source.Fields[2].Type.Kind)
	require.True(t, source.Fields[2].HasDefault)
	require.Nil(t, source.Fields[2].Default)
}

func TestLoadGraphMissingRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lsst.v7_0.diaSource.avsc"), []byte(diaSourceSchemaJSON), 0644))

	_, err := NewSchemaFileAdapter().LoadGraph(t.Context(), filepath.Join(dir, "lsst.v7_0.alert.avsc"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "root schema")
}

func TestParseAvroTypeUnions(t *testing.T) {
	parsed, err := ParseAvroType([]any{"null", "float"})
	require.NoError(t, err)
	require.Equal(t, types.TypeKindNullable, parsed.Kind)
	require.Equal(t, types.PrimitiveFloat, parsed.Inner.Primitive)

	_, err = ParseAvroType([]any{"null", "float", "double"})
	require.Error(t, err)
	require.True(t, core.IsUnresolvableType(err))

	_, err = ParseAvroType([]any{"float", "null"})
	require.Error(t, err)
	require.True(t, core.IsUnresolvableType(err))

	_, err = ParseAvroType([]any{"null", "null"})
	require.Error(t, err)
	require.True(t, core.IsUnresolvableType(err))
}

func TestParseAvroTypeObjects(t *testing.T) {
	parsed, err := ParseAvroType(map[string]any{"type": "long", "logicalType": "timestamp-micros"})
	require.NoError(t, err)
	require.Equal(t, types.PrimitiveLong, parsed.Primitive)
	require.Equal(t, "timestamp-micros", parsed.LogicalType)

	parsed, err = ParseAvroType(map[string]any{
		"type": "enum", "name": "fluxBand", "namespace": "lsst",
		"symbols": []any{"u", "g"},
	})
	require.NoError(t, err)
	require.Equal(t, types.TypeKindEnum, parsed.Kind)
	require.Equal(t, "lsst.fluxBand", parsed.FullName())

	parsed, err = ParseAvroType(map[string]any{"type": "fixed", "name": "lsst.blob", "size": float64(16)})
	require.NoError(t, err)
	require.Equal(t, types.TypeKindFixed, parsed.Kind)
	require.Equal(t, "blob", parsed.Name)
	require.Equal(t, "lsst", parsed.Namespace)
	require.Equal(t, 16, parsed.Size)

	parsed, err = ParseAvroType("lsst.v7_0.diaSource")
	require.NoError(t, err)
	require.Equal(t, types.TypeKindRef, parsed.Kind)
}
