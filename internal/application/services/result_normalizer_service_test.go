package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
)

func TestNormalize_NumericColumnWithJunk(t *testing.T) {
	svc := NewResultNormalizerService()
	raw := &entities.RawResultSet{
		Columns: []string{"licensed_states"},
		Rows: [][]interface{}{
			{"5"}, {"7"}, {"N/A"}, {nil},
		},
	}
	table := svc.Normalize(raw)

	if table.Types[0] != entities.CellTypeNumber {
		t.Fatalf("expected numeric column, got %s", table.Types[0])
	}
	want := []struct {
		missing bool
		number  float64
	}{
		{false, 5}, {false, 7}, {true, 0}, {true, 0},
	}
	for i, expect := range want {
		cell := table.Rows[i][0]
		if cell.Missing != expect.missing {
			t.Errorf("row %d: expected missing=%v, got %v", i, expect.missing, cell.Missing)
		}
		if !expect.missing && cell.Number != expect.number {
			t.Errorf("row %d: expected %v, got %v", i, expect.number, cell.Number)
		}
	}
}

func TestNormalize_TextColumnNullLikeBecomesEmpty(t *testing.T) {
	svc := NewResultNormalizerService()
	raw := &entities.RawResultSet{
		Columns: []string{"COMPANY_NAME"},
		Rows: [][]interface{}{
			{"Teladoc"}, {nil}, {"None"}, {"nan"},
		},
	}
	table := svc.Normalize(raw)

	if table.Types[0] != entities.CellTypeText {
		t.Fatalf("expected text column, got %s", table.Types[0])
	}
	for i, want := range []string{"Teladoc", "", "", ""} {
		if got := table.Rows[i][0].Display(); got != want {
			t.Errorf("row %d: expected %q, got %q", i, want, got)
		}
	}
	if table.Rows[1][0].Missing {
		t.Error("null-like text cell should be empty text, not missing")
	}
}

func TestNormalize_TimestampColumn(t *testing.T) {
	svc := NewResultNormalizerService()
	raw := &entities.RawResultSet{
		Columns: []string{"JOB_START_DATE"},
		Rows: [][]interface{}{
			{"2023-04-01"}, {"not a date"}, {nil},
		},
	}
	table := svc.Normalize(raw)

	if table.Types[0] != entities.CellTypeTimestamp {
		t.Fatalf("expected timestamp column, got %s", table.Types[0])
	}
	first := table.Rows[0][0]
	if first.Missing || first.Timestamp.Format("2006-01-02") != "2023-04-01" {
		t.Errorf("unexpected first cell: %+v", first)
	}
	if !table.Rows[1][0].Missing || !table.Rows[2][0].Missing {
		t.Error("uncoercible and nil timestamp cells should be missing")
	}
}

func TestNormalize_NativeTimeValues(t *testing.T) {
	svc := NewResultNormalizerService()
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	raw := &entities.RawResultSet{
		Columns: []string{"JOB_START_DATE"},
		Rows:    [][]interface{}{{when}},
	}
	table := svc.Normalize(raw)
	if table.Types[0] != entities.CellTypeTimestamp {
		t.Fatalf("expected timestamp column, got %s", table.Types[0])
	}
	if !table.Rows[0][0].Timestamp.Equal(when) {
		t.Errorf("expected %v, got %v", when, table.Rows[0][0].Timestamp)
	}
}

func TestNormalize_TypeFixedByFirstNonMissing(t *testing.T) {
	svc := NewResultNormalizerService()
	raw := &entities.RawResultSet{
		Columns: []string{"mixed"},
		Rows: [][]interface{}{
			{nil}, {"hello"}, {"42"},
		},
	}
	table := svc.Normalize(raw)
	if table.Types[0] != entities.CellTypeText {
		t.Fatalf("expected text column (first non-missing is text), got %s", table.Types[0])
	}
	if got := table.Rows[2][0].Display(); got != "42" {
		t.Errorf("numeric-looking value in text column should stay text, got %q", got)
	}
}

// rawFromTable rebuilds a raw result set from typed cells, as if the store
// had returned already-clean values
func rawFromTable(t *entities.NormalizedTable) *entities.RawResultSet {
	raw := &entities.RawResultSet{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		rawRow := make([]interface{}, len(row))
		for i, cell := range row {
			switch {
			case cell.Missing:
				rawRow[i] = nil
			case cell.Kind() == entities.CellTypeNumber:
				rawRow[i] = cell.Number
			case cell.Kind() == entities.CellTypeTimestamp:
				rawRow[i] = cell.Timestamp
			default:
				rawRow[i] = cell.Text
			}
		}
		raw.Rows = append(raw.Rows, rawRow)
	}
	return raw
}

func TestNormalize_Idempotent(t *testing.T) {
	svc := NewResultNormalizerService()
	raw := &entities.RawResultSet{
		Columns: []string{"name", "licensed_states", "JOB_START_DATE"},
		Rows: [][]interface{}{
			{"Ada", "3", "2023-04-01"},
			{nil, "N/A", nil},
		},
	}
	once := svc.Normalize(raw)
	twice := svc.Normalize(rawFromTable(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}
