package export

import (
	"bytes"
	"encoding/csv"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// CSVExporter encodes a normalized table as UTF-8, comma-separated text with
// one header row. Missing cells encode as empty fields.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Encode renders the table; quoting follows standard CSV rules
func (e *CSVExporter) Encode(table *entities.NormalizedTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(table.Columns); err != nil {
		return nil, apperrors.NewExportError("failed to write CSV header", err)
	}

	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, cell := range row {
			record[i] = cell.Display()
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.NewExportError("failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.NewExportError("failed to flush CSV", err)
	}
	return buf.Bytes(), nil
}
