package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"alert-packet/internal/ports"
	"alert-packet/internal/types"
)

var _ ports.SchemaSourcePort = SchemaFileAdapter{}

// Root schema files end in this suffix; every other .avsc file in a
// version directory is a referenced subschema.
const defaultRootSuffix = ".alert.avsc"

const latestMarkerFile = "latest.txt"

// DiscoverVersions walks a <root>/<major>/<minor> tree, loading a graph
// for every version directory that contains a root schema file. The
// version string is "major.minor" taken from the directory names.
func (a SchemaFileAdapter) DiscoverVersions(ctx context.Context, root string) ([]types.DiscoveredSchema, error) {
	majors, err := os.ReadDir(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("schema root not readable").
			WithCause(err)
	}

	var discovered []types.DiscoveredSchema
	for _, major := range majors {
		if !major.IsDir() {
			continue
		}
		minors, err := os.ReadDir(filepath.Join(root, major.Name()))
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("schema version directory not readable").
				WithCause(err)
		}
		for _, minor := range minors {
			if !minor.IsDir() {
				continue
			}
			dir := filepath.Join(root, major.Name(), minor.Name())
			rootFile, ok, err := findRootSchema(dir)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			graph, err := a.LoadGraph(ctx, rootFile)
			if err != nil {
				return nil, err
			}
			version := fmt.Sprintf("%s.%s", major.Name(), minor.Name())
			discovered = append(discovered, types.DiscoveredSchema{Version: version, Graph: graph})
			log.Ctx(ctx).Debug().Str("version", version).Str("root", graph.RootName).Msg("schema discovered")
		}
	}

	sort.Slice(discovered, func(i, j int) bool {
		return discovered[i].Version < discovered[j].Version
	})
	return discovered, nil
}

// LatestVersion reads the tree's latest.txt marker, e.g. "7.3".
func (a SchemaFileAdapter) LatestVersion(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, latestMarkerFile))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("latest version marker not found").
			WithCause(err)
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("latest version marker is empty")
	}
	return version, nil
}

func findRootSchema(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("schema version directory not readable").
			WithCause(err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), defaultRootSuffix) {
			return filepath.Join(dir, entry.Name()), true, nil
		}
	}
	return "", false, nil
}
