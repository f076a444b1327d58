package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"alert-packet/internal/types"
)

func schemaWithField(name string) types.ResolvedSchema {
	return types.ResolvedSchema{Root: record("lsst", "alert",
		field(name, prim(types.PrimitiveLong)),
	)}
}

func TestRegistryLookups(t *testing.T) {
	registry := NewSchemaRegistry()
	v1 := schemaWithField("alertId")
	v2 := schemaWithField("alertIdentifier")
	v21 := schemaWithField("alertNumber")

	id1, err := registry.Register(v1, "1.0")
	require.NoError(t, err)
	id2, err := registry.Register(v2, "2.0")
	require.NoError(t, err)
	_, err = registry.Register(v21, "2.1")
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	byVersion, err := registry.ByVersion("1.0")
	require.NoError(t, err)
	require.Equal(t, v1, byVersion)

	byID, err := registry.ByID(id2)
	require.NoError(t, err)
	require.Equal(t, v2, byID)

	id, err := registry.IDByVersion("2.0")
	require.NoError(t, err)
	require.Equal(t, id2, id)

	require.Equal(t, []string{"1.0", "2.0", "2.1"}, registry.KnownVersions())
	require.Len(t, registry.KnownIDs(), 3)
}

func TestRegistryUnknownLookups(t *testing.T) {
	registry := NewSchemaRegistry()
	_, err := registry.Register(schemaWithField("alertId"), "1.0")
	require.NoError(t, err)

	_, err = registry.ByVersion("2.2")
	require.Error(t, err)
	require.True(t, IsUnknownVersion(err))

	_, err = registry.ByID("deadbeef")
	require.Error(t, err)
	require.True(t, IsUnknownID(err))

	_, err = registry.IDByVersion("9.9")
	require.Error(t, err)
	require.True(t, IsUnknownVersion(err))
}

func TestRegistryReRegisterKeepsOldID(t *testing.T) {
	registry := NewSchemaRegistry()
	old := schemaWithField("alertId")
	replacement := schemaWithField("alertIdentifier")

	oldID, err := registry.Register(old, "1.0")
	require.NoError(t, err)
	newID, err := registry.Register(replacement, "1.0")
	require.NoError(t, err)
	require.NotEqual(t, oldID, newID)

	// Version now points at the replacement.
	current, err := registry.IDByVersion("1.0")
	require.NoError(t, err)
	require.Equal(t, newID, current)

	// The superseded schema stays reachable by id.
	byOld, err := registry.ByID(oldID)
	require.NoError(t, err)
	require.Equal(t, old, byOld)
}

func TestRegistryLatestVersionNumericOrdering(t *testing.T) {
	registry := NewSchemaRegistry()
	for _, version := range []string{"9.1", "10.0", "2.5"} {
		_, err := registry.Register(schemaWithField("f"+version), version)
		require.NoError(t, err)
	}

	latest, err := registry.LatestVersion()
	require.NoError(t, err)
	require.Equal(t, "10.0", latest)
}

func TestRegistryLatestVersionEmpty(t *testing.T) {
	_, err := NewSchemaRegistry().LatestVersion()
	require.Error(t, err)
	require.True(t, IsUnknownVersion(err))
}
