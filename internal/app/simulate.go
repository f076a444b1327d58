package app

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"alert-packet/internal/adapters"
	"alert-packet/internal/core"
	"alert-packet/internal/shared"
)

// Simulate generates schema-conformant synthetic alerts for one schema
// version, round-trips each through the codec, and optionally writes them
// to a container file.
func (s Service) Simulate(ctx context.Context, req SimulateRequest) (SimulateResult, error) {
	if req.Count <= 0 {
		return SimulateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("alert count must be positive")
	}

	registry, err := s.populateRegistry(ctx, req.SchemaRoot, req.KeepNullable)
	if err != nil {
		return SimulateResult{}, err
	}
	version := req.Version
	if version == "" {
		version, err = registry.LatestVersion()
		if err != nil {
			return SimulateResult{}, err
		}
	}
	schema, err := registry.ByVersion(version)
	if err != nil {
		return SimulateResult{}, err
	}
	id, err := registry.IDByVersion(version)
	if err != nil {
		return SimulateResult{}, err
	}

	codec, err := adapters.NewRecordCodec(schema)
	if err != nil {
		return SimulateResult{}, err
	}

	// Generator lookups key on unqualified field names; accept qualified
	// spellings like "lsst.v7_0.alert.ssObject" from flags and configs.
	suppress := map[string]struct{}{}
	for _, name := range req.SuppressNull {
		suppress[shared.UnqualifiedName(name)] = struct{}{}
	}
	counts := make(map[string]int, len(req.ArrayCounts))
	for name, count := range req.ArrayCounts {
		counts[shared.UnqualifiedName(name)] = count
	}
	generator := core.NewGeneratorCore(req.Seed)
	opts := core.GenerateOptions{SuppressNull: suppress, ArrayCardinality: counts}

	records := make([]map[string]any, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		record, err := generator.Generate(schema, opts)
		if err != nil {
			return SimulateResult{}, err
		}
		data, err := codec.Encode(record)
		if err != nil {
			return SimulateResult{}, err
		}
		if _, err := codec.Decode(data); err != nil {
			return SimulateResult{}, err
		}
		records = append(records, record)
	}

	if req.OutputPath != "" {
		f, err := os.Create(req.OutputPath)
		if err != nil {
			return SimulateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output file").
				WithCause(err)
		}
		defer f.Close()
		if err := s.Packets.Store(f, schema, records); err != nil {
			return SimulateResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Str("version", version).
		Int("alerts", len(records)).
		Msg("simulation completed")
	return SimulateResult{
		Version:    version,
		SchemaID:   id,
		Generated:  len(records),
		OutputPath: req.OutputPath,
	}, nil
}
