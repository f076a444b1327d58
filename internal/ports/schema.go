package ports

import (
	"context"

	"alert-packet/internal/types"
)

// SchemaSourcePort turns on-disk schema definitions into type graphs. The
// core never touches the filesystem; this port hands it already-parsed
// graphs.
type SchemaSourcePort interface {
	// LoadGraph reads the root schema file and every sibling .avsc file
	// it references, returning the assembled graph.
	LoadGraph(ctx context.Context, rootPath string) (types.TypeGraph, error)

	// DiscoverVersions walks a <root>/<major>/<minor> tree and returns
	// one graph per version directory containing a root schema file.
	DiscoverVersions(ctx context.Context, root string) ([]types.DiscoveredSchema, error)

	// LatestVersion reads the tree's latest-version marker file
	// (latest.txt), if present.
	LatestVersion(root string) (string, error)
}
