package adapters

import (
	"encoding/json"
	"io"

	"github.com/linkedin/goavro/v2"

	"alert-packet/internal/core"
	"alert-packet/internal/ports"
	"alert-packet/internal/types"
)

// PacketFileAdapter stores and retrieves alert packets as Avro object
// container files. Alert archives can be very large, so Retrieve streams
// record by record rather than slurping the file through an intermediate
// buffer.
type PacketFileAdapter struct{}

func NewPacketFileAdapter() PacketFileAdapter {
	return PacketFileAdapter{}
}

var _ ports.PacketStorePort = PacketFileAdapter{}

func (a PacketFileAdapter) Store(w io.Writer, schema types.ResolvedSchema, records []map[string]any) error {
	definition, err := json.Marshal(core.AvroJSON(schema))
	if err != nil {
		return core.ErrEncoding("schema definition", err)
	}
	codec, err := goavro.NewCodec(string(definition))
	if err != nil {
		return core.ErrSchemaMismatch("schema rejected by codec: " + err.Error())
	}
	writer, err := goavro.NewOCFWriter(goavro.OCFConfig{W: w, Codec: codec})
	if err != nil {
		return core.ErrEncoding("container file header", err)
	}
	batch := make([]interface{}, 0, len(records))
	for _, record := range records {
		if !core.ValidateRecord(schema, record) {
			return core.ErrEncoding("record does not match schema", nil)
		}
		batch = append(batch, record)
	}
	if err := writer.Append(batch); err != nil {
		return core.ErrEncoding("container file append", err)
	}
	return nil
}

func (a PacketFileAdapter) Retrieve(r io.Reader, schema types.ResolvedSchema) ([]map[string]any, error) {
	reader, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, core.ErrDecoding("container file header", err)
	}

	// The archive's writer schema travels with the file; a mismatch with
	// the reader schema is a schema problem, not a data problem.
	canonical, err := core.CanonicalForm(schema)
	if err != nil {
		return nil, err
	}
	if !compatibleSchemas(reader.Codec().Schema(), canonical) {
		return nil, core.ErrSchemaMismatch("archive written with a different schema")
	}

	var records []map[string]any
	for reader.Scan() {
		native, err := reader.Read()
		if err != nil {
			return nil, core.ErrDecoding("container file record", err)
		}
		record, ok := native.(map[string]any)
		if !ok {
			return nil, core.ErrDecoding("archived value is not a record", nil)
		}
		records = append(records, record)
	}
	if err := reader.Err(); err != nil {
		return nil, core.ErrDecoding("container file scan", err)
	}
	return records, nil
}

// compatibleSchemas compares the archive's writer schema against the
// reader schema by canonical JSON, tolerating key-order differences.
func compatibleSchemas(writerSchema string, readerCanonical []byte) bool {
	var writer any
	if err := json.Unmarshal([]byte(writerSchema), &writer); err != nil {
		return false
	}
	normalized, err := json.Marshal(writer)
	if err != nil {
		return false
	}
	return string(normalized) == string(readerCanonical)
}
