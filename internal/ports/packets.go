package ports

import (
	"io"

	"alert-packet/internal/types"
)

// PacketStorePort reads and writes alert packet archives (Avro object
// container files).
type PacketStorePort interface {
	// Store writes records against the schema to the stream.
	Store(w io.Writer, schema types.ResolvedSchema, records []map[string]any) error

	// Retrieve reads every record from the stream, decoding with the
	// reader schema. It fails with a schema mismatch when the archive's
	// writer schema is incompatible.
	Retrieve(r io.Reader, schema types.ResolvedSchema) ([]map[string]any, error)
}

// ReportWriterPort persists a sync report.
type ReportWriterPort interface {
	WriteSyncReport(path string, report types.SyncReport) error
}
