package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"alert-packet/internal/adapters"
	"alert-packet/internal/core"
	"alert-packet/internal/ports"
	"alert-packet/internal/types"
)

// Sync uploads every discovered schema version to a remote registry
// subject, preserving historical version numbers. The remote version for
// "MAJOR.MINOR" is MAJOR*100+MINOR, so "7.3" registers as 703 and
// ordering survives the flattening.
func (s Service) Sync(ctx context.Context, req SyncRequest) (SyncResult, error) {
	started := s.Clock()
	registry, err := s.populateRegistry(ctx, req.SchemaRoot, req.KeepNullable)
	if err != nil {
		return SyncResult{}, err
	}

	remote := s.remoteRegistry(req)
	if err := remote.PrepareSubject(ctx, req.Subject); err != nil {
		return SyncResult{}, err
	}

	report := types.SyncReport{Subject: req.Subject, Registry: req.RegistryURL}
	for _, version := range registry.KnownVersions() {
		schema, err := registry.ByVersion(version)
		if err != nil {
			return SyncResult{}, err
		}
		id, err := registry.IDByVersion(version)
		if err != nil {
			return SyncResult{}, err
		}
		remoteVersion, err := remoteVersionNumber(version)
		if err != nil {
			return SyncResult{}, err
		}
		canonical, err := core.CanonicalForm(schema)
		if err != nil {
			return SyncResult{}, err
		}
		if err := remote.UploadSchema(ctx, req.Subject, remoteVersion, canonical); err != nil {
			return SyncResult{}, err
		}
		report.Records = append(report.Records, types.SyncRecord{
			Version:       version,
			SchemaID:      id,
			RemoteVersion: remoteVersion,
			Status:        "uploaded",
		})
	}

	if err := remote.CloseSubject(ctx, req.Subject); err != nil {
		return SyncResult{}, err
	}

	if req.ReportPath != "" {
		if err := s.Reports.WriteSyncReport(req.ReportPath, report); err != nil {
			return SyncResult{}, err
		}
	}

	log.Ctx(ctx).Info().
		Str("subject", req.Subject).
		Int("versions", len(report.Records)).
		Dur("elapsed", s.Clock().Sub(started)).
		Msg("registry sync completed")
	return SyncResult{Report: report}, nil
}

func (s Service) remoteRegistry(req SyncRequest) ports.RemoteRegistryPort {
	return adapters.NewConfluentRegistryAdapter(req.RegistryURL, req.Username, req.Password, req.TimeoutSec)
}

// remoteVersionNumber flattens "MAJOR.MINOR" into MAJOR*100+MINOR, the
// same numbering the live registry has used since the first upload.
func remoteVersionNumber(version string) (int, error) {
	parts := strings.SplitN(version, ".", 2)
	if len(parts) != 2 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version %q is not MAJOR.MINOR", version))
	}
	major, majorErr := strconv.Atoi(parts[0])
	minor, minorErr := strconv.Atoi(parts[1])
	if majorErr != nil || minorErr != nil || major < 0 || minor < 0 || minor > 99 {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version %q is not MAJOR.MINOR", version))
	}
	return major*100 + minor, nil
}
