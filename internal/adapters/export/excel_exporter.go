package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// SheetName is the single worksheet carrying the exported results
const SheetName = "Query Results"

// ExcelExporter encodes a normalized table as an .xlsx workbook. Cell text is
// sanitized before writing so that downstream spreadsheet tooling never sees
// formula-adjacent characters or over-long cells.
type ExcelExporter struct {
	maxCellChars int
}

// NewExcelExporter creates an exporter with the given per-cell character
// ceiling. A non-positive ceiling disables truncation.
func NewExcelExporter(maxCellChars int) *ExcelExporter {
	return &ExcelExporter{maxCellChars: maxCellChars}
}

// Encode renders the workbook bytes for one table
func (e *ExcelExporter) Encode(table *entities.NormalizedTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, apperrors.NewExportError("failed to name worksheet", err)
	}

	for i, col := range table.Columns {
		if err := e.setCell(f, i, 1, col); err != nil {
			return nil, err
		}
	}
	for r, row := range table.Rows {
		for c, cell := range row {
			if err := e.setCell(f, c, r+2, cell.Display()); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.NewExportError("failed to serialize workbook", err)
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) setCell(f *excelize.File, col, row int, value string) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return apperrors.NewExportError(fmt.Sprintf("invalid cell coordinate (%d,%d)", col, row), err)
	}
	if err := f.SetCellStr(SheetName, ref, sanitizeCell(value, e.maxCellChars)); err != nil {
		return apperrors.NewExportError("failed to write cell "+ref, err)
	}
	return nil
}
