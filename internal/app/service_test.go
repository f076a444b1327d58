package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"alert-packet/internal/adapters"
	"alert-packet/internal/core"
	"alert-packet/internal/types"
)

const alertFixture = `{
	"type": "record",
	"name": "lsst.v7_0.alert",
	"fields": [
		{"name": "alertId", "type": "long"},
		{"name": "diaSource", "type": "lsst.v7_0.diaSource"},
		{"name": "prvDiaSources", "type": ["null", {"type": "array", "items": "lsst.v7_0.diaSource"}], "default": null},
		{"name": "ssObject", "type": ["null", "string"], "default": null}
	]
}`

const diaSourceFixture = `{
	"type": "record",
	"name": "lsst.v7_0.diaSource",
	"fields": [
		{"name": "diaSourceId", "type": "long"},
		{"name": "psfFlux", "type": ["null", "float"], "default": null}
	]
}`

func writeSchemaTree(t *testing.T, versions ...[2]string) string {
	t.Helper()
	root := t.TempDir()
	for _, version := range versions {
		dir := filepath.Join(root, version[0], version[1])
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lsst.v7_0.alert.avsc"), []byte(alertFixture), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lsst.v7_0.diaSource.avsc"), []byte(diaSourceFixture), 0644))
	}
	return root
}

func TestLoadRegistryEndToEnd(t *testing.T) {
	root := writeSchemaTree(t, [2]string{"1", "0"}, [2]string{"2", "0"})
	service := NewService()

	registry, result, err := service.LoadRegistry(t.Context(), LoadRegistryRequest{
		SchemaRoot:   root,
		KeepNullable: []string{"ssObject"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"1.0", "2.0"}, result.Versions)

	// Identical schema content under both versions dedupes by id.
	require.Len(t, result.IDs, 1)

	schema, err := registry.ByVersion("1.0")
	require.NoError(t, err)
	require.Equal(t, "lsst.v7_0.alert", schema.Root.FullName())
}

func TestLoadRegistryRequiresRoot(t *testing.T) {
	_, _, err := NewService().LoadRegistry(t.Context(), LoadRegistryRequest{})
	require.Error(t, err)
}

func TestSimulateGeneratesAndStores(t *testing.T) {
	root := writeSchemaTree(t, [2]string{"7", "0"})
	output := filepath.Join(t.TempDir(), "alerts.avro")
	service := NewService()

	result, err := service.Simulate(t.Context(), SimulateRequest{
		SchemaRoot:   root,
		Count:        5,
		Seed:         42,
		KeepNullable: []string{"prvDiaSources", "ssObject"},
		SuppressNull: []string{"ssObject"},
		ArrayCounts:  map[string]int{"prvDiaSources": 2},
		OutputPath:   output,
	})
	require.NoError(t, err)
	require.Equal(t, "7.0", result.Version)
	require.Equal(t, 5, result.Generated)
	require.Len(t, result.SchemaID, 64)

	info, err := os.Stat(output)
	require.NoError(t, err)
	require.NotZero(t, info.Size())
}

func TestSimulateAcceptsQualifiedOptionNames(t *testing.T) {
	root := writeSchemaTree(t, [2]string{"7", "0"})
	output := filepath.Join(t.TempDir(), "alerts.avro")
	service := NewService()
	keep := []string{"prvDiaSources", "ssObject"}

	_, err := service.Simulate(t.Context(), SimulateRequest{
		SchemaRoot:   root,
		Count:        1,
		Seed:         5,
		KeepNullable: keep,
		SuppressNull: []string{"lsst.v7_0.alert.ssObject"},
		ArrayCounts:  map[string]int{"lsst.v7_0.alert.prvDiaSources": 2},
		OutputPath:   output,
	})
	require.NoError(t, err)

	registry, _, err := service.LoadRegistry(t.Context(), LoadRegistryRequest{
		SchemaRoot:   root,
		KeepNullable: keep,
	})
	require.NoError(t, err)
	schema, err := registry.ByVersion("7.0")
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	records, err := adapters.NewPacketFileAdapter().Retrieve(f, schema)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Nil(t, records[0]["ssObject"])
	wrapped := records[0]["prvDiaSources"].(map[string]any)
	require.Len(t, wrapped["array"].([]any), 2)
}

func TestSimulateRejectsNonPositiveCount(t *testing.T) {
	_, err := NewService().Simulate(t.Context(), SimulateRequest{SchemaRoot: "x", Count: 0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "count must be positive")
}

func TestRoundTripValidatesArchive(t *testing.T) {
	root := writeSchemaTree(t, [2]string{"7", "0"})
	output := filepath.Join(t.TempDir(), "alerts.avro")
	service := NewService()

	keep := []string{"prvDiaSources", "ssObject"}
	_, err := service.Simulate(t.Context(), SimulateRequest{
		SchemaRoot:   root,
		Count:        3,
		Seed:         1,
		KeepNullable: keep,
		ArrayCounts:  map[string]int{"prvDiaSources": 1},
		OutputPath:   output,
	})
	require.NoError(t, err)

	result, err := service.RoundTrip(t.Context(), RoundTripRequest{
		SchemaRoot:   root,
		KeepNullable: keep,
		PacketPath:   output,
	})
	require.NoError(t, err)
	require.Equal(t, "7.0", result.Result.SchemaVersion)
	require.Equal(t, 3, result.Result.PacketCount)
	require.Equal(t, 3, result.Result.MatchCount)
}

func TestRoundTripRequiresPacketPath(t *testing.T) {
	_, err := NewService().RoundTrip(t.Context(), RoundTripRequest{SchemaRoot: "x"})
	require.Error(t, err)
}

func TestSyncUploadsEveryVersion(t *testing.T) {
	root := writeSchemaTree(t, [2]string{"7", "0"}, [2]string{"7", "3"})
	var uploads []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			uploads = append(uploads, r.URL.Path)
		}
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	reportPath := filepath.Join(t.TempDir(), "sync.yaml")
	service := NewService()
	result, err := service.Sync(t.Context(), SyncRequest{
		SchemaRoot:  root,
		RegistryURL: server.URL,
		Subject:     "alert-packet",
		ReportPath:  reportPath,
	})
	require.NoError(t, err)
	require.Len(t, result.Report.Records, 2)
	require.Equal(t, 700, result.Report.Records[0].RemoteVersion)
	require.Equal(t, 703, result.Report.Records[1].RemoteVersion)
	require.Len(t, uploads, 2)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report types.SyncReport
	require.NoError(t, yaml.Unmarshal(data, &report))
	require.Equal(t, "alert-packet", report.Subject)
	require.Equal(t, "uploaded", report.Records[0].Status)
}

func TestRemoteVersionNumber(t *testing.T) {
	n, err := remoteVersionNumber("7.3")
	require.NoError(t, err)
	require.Equal(t, 703, n)

	n, err = remoteVersionNumber("10.0")
	require.NoError(t, err)
	require.Equal(t, 1000, n)

	_, err = remoteVersionNumber("7")
	require.Error(t, err)
	_, err = remoteVersionNumber("7.x")
	require.Error(t, err)
}

func TestIdenticalSchemasShareCanonicalForm(t *testing.T) {
	root := writeSchemaTree(t, [2]string{"1", "0"})
	service := NewService()

	registry, _, err := service.LoadRegistry(t.Context(), LoadRegistryRequest{SchemaRoot: root})
	require.NoError(t, err)
	schema, err := registry.ByVersion("1.0")
	require.NoError(t, err)

	id, err := core.SchemaID(schema)
	require.NoError(t, err)
	stored, err := registry.IDByVersion("1.0")
	require.NoError(t, err)
	require.Equal(t, id, stored)
}
