// Package testutil provides shared helpers for the integration test
// packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteSchemaTree lays out a <root>/<major>/<minor> schema hierarchy with
// the given files in every version directory, plus a latest.txt marker.
func WriteSchemaTree(t *testing.T, files map[string]string, latest string, versions ...[2]string) string {
	t.Helper()
	root := t.TempDir()
	for _, version := range versions {
		dir := filepath.Join(root, version[0], version[1])
		require.NoError(t, os.MkdirAll(dir, 0755))
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "latest.txt"), []byte(latest+"\n"), 0644))
	return root
}
