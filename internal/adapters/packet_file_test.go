package adapters

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"alert-packet/internal/core"
)

func TestPacketStoreRetrieve(t *testing.T) {
	schema := resolvedAlert(t)
	adapter := NewPacketFileAdapter()

	records := []map[string]any{alertRecord(), alertRecord()}
	var buf bytes.Buffer
	require.NoError(t, adapter.Store(&buf, schema, records))
	require.NotZero(t, buf.Len())

	retrieved, err := adapter.Retrieve(bytes.NewReader(buf.Bytes()), schema)
	require.NoError(t, err)
	require.Len(t, retrieved, 2)
	for _, record := range retrieved {
		require.True(t, core.ValidateRecord(schema, record))
		require.Equal(t, int64(1231321321), record["alertId"])
	}
}

func TestPacketStoreRejectsNonConformingRecord(t *testing.T) {
	schema := resolvedAlert(t)
	bad := alertRecord()
	bad["alertId"] = "not a long"

	var buf bytes.Buffer
	err := NewPacketFileAdapter().Store(&buf, schema, []map[string]any{bad})
	require.Error(t, err)
	require.True(t, core.IsEncoding(err))
}

func TestPacketRetrieveSchemaMismatch(t *testing.T) {
	schema := resolvedAlert(t)
	adapter := NewPacketFileAdapter()

	var buf bytes.Buffer
	require.NoError(t, adapter.Store(&buf, schema, []map[string]any{alertRecord()}))

	// A schema resolved with different union handling is a different
	// writer schema.
	rootFile := writeSchemaDir(t, t.TempDir())
	graph, err := NewSchemaFileAdapter().LoadGraph(t.Context(), rootFile)
	require.NoError(t, err)
	collapsed, err := core.NewResolverCore(nil).Resolve(t.Context(), graph)
	require.NoError(t, err)

	_, err = adapter.Retrieve(bytes.NewReader(buf.Bytes()), collapsed)
	require.Error(t, err)
	require.True(t, core.IsSchemaMismatch(err))
}

func TestPacketRetrieveGarbage(t *testing.T) {
	_, err := NewPacketFileAdapter().Retrieve(bytes.NewReader([]byte("not an avro file")), resolvedAlert(t))
	require.Error(t, err)
	require.True(t, core.IsDecoding(err))
}
