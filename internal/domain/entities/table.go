package entities

import (
	"strconv"
	"time"
)

// CellType is the single type every cell in a normalized column shares
type CellType string

const (
	CellTypeText      CellType = "text"
	CellTypeNumber    CellType = "number"
	CellTypeTimestamp CellType = "timestamp"
)

// Cell is one typed value in a normalized table. Missing is orthogonal to the
// column type: a numeric column keeps its type even where cells failed
// coercion.
type Cell struct {
	Missing   bool
	Text      string
	Number    float64
	Timestamp time.Time
	kind      CellType
}

// TextCell returns a text cell
func TextCell(s string) Cell {
	return Cell{kind: CellTypeText, Text: s}
}

// NumberCell returns a numeric cell
func NumberCell(f float64) Cell {
	return Cell{kind: CellTypeNumber, Number: f}
}

// TimestampCell returns a timestamp cell
func TimestampCell(t time.Time) Cell {
	return Cell{kind: CellTypeTimestamp, Timestamp: t}
}

// MissingCell returns a missing cell carrying the column type
func MissingCell(kind CellType) Cell {
	return Cell{kind: kind, Missing: true}
}

// Kind returns the cell's column type
func (c Cell) Kind() CellType {
	return c.kind
}

// Display renders the cell for tabular display and delimited export. Missing
// cells render as the empty string.
func (c Cell) Display() string {
	if c.Missing {
		return ""
	}
	switch c.kind {
	case CellTypeNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellTypeTimestamp:
		return c.Timestamp.Format(time.RFC3339)
	default:
		return c.Text
	}
}

// NormalizedTable is a result set whose columns carry one consistent type
// each, safe for display and export.
type NormalizedTable struct {
	Columns []string
	Types   []CellType
	Rows    [][]Cell
}

// ColumnIndex returns the index of the named column, or -1
func (t *NormalizedTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
