package app

import (
	"bytes"
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"alert-packet/internal/adapters"
	"alert-packet/internal/types"
)

// RoundTrip reads an alert packet archive and checks every record against
// the named schema version by encoding, decoding, and re-encoding it. A
// record counts as a match when both encodings produce identical bytes.
func (s Service) RoundTrip(ctx context.Context, req RoundTripRequest) (RoundTripResult, error) {
	if req.PacketPath == "" {
		return RoundTripResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("packet path is required")
	}

	registry, err := s.populateRegistry(ctx, req.SchemaRoot, req.KeepNullable)
	if err != nil {
		return RoundTripResult{}, err
	}
	version := req.Version
	if version == "" {
		version, err = registry.LatestVersion()
		if err != nil {
			return RoundTripResult{}, err
		}
	}
	schema, err := registry.ByVersion(version)
	if err != nil {
		return RoundTripResult{}, err
	}

	f, err := os.Open(req.PacketPath)
	if err != nil {
		return RoundTripResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open packet archive").
			WithCause(err)
	}
	defer f.Close()

	records, err := s.Packets.Retrieve(f, schema)
	if err != nil {
		return RoundTripResult{}, err
	}

	codec, err := adapters.NewRecordCodec(schema)
	if err != nil {
		return RoundTripResult{}, err
	}

	matches := 0
	for i, record := range records {
		first, err := codec.Encode(record)
		if err != nil {
			return RoundTripResult{}, err
		}
		decoded, err := codec.Decode(first)
		if err != nil {
			return RoundTripResult{}, err
		}
		second, err := codec.Encode(decoded)
		if err != nil {
			return RoundTripResult{}, err
		}
		if bytes.Equal(first, second) {
			matches++
		} else {
			log.Ctx(ctx).Warn().Int("record", i).Msg("re-encoded bytes differ")
		}
	}

	log.Ctx(ctx).Info().
		Str("version", version).
		Int("records", len(records)).
		Int("matches", matches).
		Msg("round-trip validation completed")
	return RoundTripResult{Result: types.RoundTripResult{
		SchemaVersion: version,
		PacketCount:   len(records),
		MatchCount:    matches,
	}}, nil
}
