package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"alert-packet/internal/core"
)

// LoadRegistry discovers every schema version under the given root,
// resolves each graph, and registers the results. Population happens once
// here; afterwards the registry is read-only.
func (s Service) LoadRegistry(ctx context.Context, req LoadRegistryRequest) (*core.SchemaRegistry, LoadRegistryResult, error) {
	registry, err := s.populateRegistry(ctx, req.SchemaRoot, req.KeepNullable)
	if err != nil {
		return nil, LoadRegistryResult{}, err
	}
	return registry, LoadRegistryResult{
		Versions: registry.KnownVersions(),
		IDs:      registry.KnownIDs(),
	}, nil
}

func (s Service) populateRegistry(ctx context.Context, schemaRoot string, keepNullable []string) (*core.SchemaRegistry, error) {
	if schemaRoot == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema root is required")
	}

	discovered, err := s.Schemas.DiscoverVersions(ctx, schemaRoot)
	if err != nil {
		return nil, err
	}
	if len(discovered) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no schema versions found under " + schemaRoot)
	}

	resolver := core.NewResolverCore(keepNullable)
	registry := core.NewSchemaRegistry()
	for _, entry := range discovered {
		schema, err := resolver.Resolve(ctx, entry.Graph)
		if err != nil {
			return nil, err
		}
		id, err := registry.Register(schema, entry.Version)
		if err != nil {
			return nil, err
		}
		log.Ctx(ctx).Debug().Str("version", entry.Version).Str("id", id).Msg("schema registered")
	}
	return registry, nil
}
