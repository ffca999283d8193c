package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
)

// timestampLayouts are tried in order when coercing string cells to timestamps
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResultNormalizerService coerces heterogeneous raw columns into single-typed
// columns safe for display and export. The first non-missing value in a
// column fixes the column's type; cells that fail coercion degrade to Missing
// instead of aborting the column.
type ResultNormalizerService struct{}

// NewResultNormalizerService creates a new result normalizer
func NewResultNormalizerService() *ResultNormalizerService {
	return &ResultNormalizerService{}
}

// Normalize builds a normalized table from a raw result set. Deterministic:
// the same raw set always yields the same table.
func (s *ResultNormalizerService) Normalize(raw *entities.RawResultSet) *entities.NormalizedTable {
	table := &entities.NormalizedTable{
		Columns: append([]string(nil), raw.Columns...),
		Types:   make([]entities.CellType, len(raw.Columns)),
	}

	for col := range raw.Columns {
		table.Types[col] = inferColumnType(raw.Rows, col)
	}

	for _, rawRow := range raw.Rows {
		row := make([]entities.Cell, len(raw.Columns))
		for col := range raw.Columns {
			var value interface{}
			if col < len(rawRow) {
				value = rawRow[col]
			}
			row[col] = coerce(value, table.Types[col])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// inferColumnType samples the first non-missing value in the column
func inferColumnType(rows [][]interface{}, col int) entities.CellType {
	for _, row := range rows {
		if col >= len(row) || isMissing(row[col]) {
			continue
		}
		return sampleType(row[col])
	}
	return entities.CellTypeText
}

func sampleType(value interface{}) entities.CellType {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return entities.CellTypeNumber
	case time.Time:
		return entities.CellTypeTimestamp
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return entities.CellTypeNumber
		}
		if _, ok := parseTimestamp(v); ok {
			return entities.CellTypeTimestamp
		}
		return entities.CellTypeText
	default:
		return entities.CellTypeText
	}
}

func coerce(value interface{}, kind entities.CellType) entities.Cell {
	if isMissing(value) {
		// Text columns render null-like values as empty text, not "null"
		if kind == entities.CellTypeText {
			return entities.TextCell("")
		}
		return entities.MissingCell(kind)
	}

	switch kind {
	case entities.CellTypeNumber:
		if f, ok := toFloat(value); ok {
			return entities.NumberCell(f)
		}
		return entities.MissingCell(kind)
	case entities.CellTypeTimestamp:
		if t, ok := toTimestamp(value); ok {
			return entities.TimestampCell(t)
		}
		return entities.MissingCell(kind)
	default:
		return entities.TextCell(toText(value))
	}
}

// isMissing recognizes absent values and the null markers stores hand back as
// text
func isMissing(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "null", "none", "nan":
			return true
		}
	}
	return false
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTimestamp(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		return parseTimestamp(v)
	default:
		return time.Time{}, false
	}
}

func parseTimestamp(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
