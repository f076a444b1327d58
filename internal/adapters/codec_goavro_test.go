package adapters

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"alert-packet/internal/core"
	"alert-packet/internal/types"
)

// resolvedAlert loads and resolves the fixture schema written by
// writeSchemaDir, keeping prvDiaSources nullable.
func resolvedAlert(t *testing.T) types.ResolvedSchema {
	t.Helper()
	rootFile := writeSchemaDir(t, t.TempDir())
	graph, err := NewSchemaFileAdapter().LoadGraph(t.Context(), rootFile)
	require.NoError(t, err)
	resolved, err := core.NewResolverCore([]string{"prvDiaSources"}).Resolve(t.Context(), graph)
	require.NoError(t, err)
	return resolved
}

func alertRecord() map[string]any {
	return map[string]any{
		"alertId": int64(1231321321),
		"diaSource": map[string]any{
			"diaSourceId":    int64(281323062375219200),
			"midpointMjdTai": 60623.22,
			"psfFlux":        float32(1241.23),
		},
		"prvDiaSources": map[string]any{"array": []any{
			map[string]any{
				"diaSourceId":    int64(281323062375219198),
				"midpointMjdTai": 60612.11,
				"psfFlux":        float32(1208.04),
			},
		}},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewRecordCodec(resolvedAlert(t))
	require.NoError(t, err)

	record := alertRecord()
	data, err := codec.Encode(record)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.True(t, codec.Validate(decoded))

	reencoded, err := codec.Encode(decoded)
	require.NoError(t, err)
	if diff := cmp.Diff(data, reencoded); diff != "" {
		t.Fatalf("round trip not byte stable (-want +got):\n%s", diff)
	}
}

func TestCodecEncodeRejectsNonConformingRecord(t *testing.T) {
	codec, err := NewRecordCodec(resolvedAlert(t))
	require.NoError(t, err)

	record := alertRecord()
	delete(record, "alertId")
	_, err = codec.Encode(record)
	require.Error(t, err)
	require.True(t, core.IsEncoding(err))
}

func TestCodecDecodeRejectsGarbage(t *testing.T) {
	codec, err := NewRecordCodec(resolvedAlert(t))
	require.NoError(t, err)

	record := alertRecord()
	data, err := codec.Encode(record)
	require.NoError(t, err)

	_, err = codec.Decode(append(data, 0x42))
	require.Error(t, err)
	require.True(t, core.IsDecoding(err))
}
