package app

import (
	"time"

	"alert-packet/internal/adapters"
	"alert-packet/internal/ports"
)

// Service wires the schema engine's ports to their default adapters. App
// methods carry the orchestration: discover schema trees, resolve and
// register them, then hand the registry to the codec, the generator, or a
// remote sync.
type Service struct {
	Schemas ports.SchemaSourcePort
	Packets ports.PacketStorePort
	Reports ports.ReportWriterPort
	Clock   func() time.Time
}

func NewService() Service {
	return Service{
		Schemas: adapters.NewSchemaFileAdapter(),
		Packets: adapters.NewPacketFileAdapter(),
		Reports: adapters.NewReportFileAdapter(),
		Clock:   time.Now,
	}
}
