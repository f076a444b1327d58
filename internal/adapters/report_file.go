package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"alert-packet/internal/ports"
	"alert-packet/internal/types"
)

// ReportFileAdapter writes sync reports as YAML.
type ReportFileAdapter struct{}

func NewReportFileAdapter() ReportFileAdapter {
	return ReportFileAdapter{}
}

var _ ports.ReportWriterPort = ReportFileAdapter{}

func (a ReportFileAdapter) WriteSyncReport(path string, report types.SyncReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal sync report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sync report").
			WithCause(err)
	}
	return nil
}
