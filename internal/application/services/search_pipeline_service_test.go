package services

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/gradtohired/talentsearch/internal/adapters/database"
	"github.com/gradtohired/talentsearch/internal/domain/entities"
	"github.com/gradtohired/talentsearch/internal/schema"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

type stubTranslator struct {
	sql string
	err error
}

func (t *stubTranslator) TranslateQuery(_ context.Context, _, _ string) (string, error) {
	return t.sql, t.err
}

type stubStore struct {
	result   *entities.RawResultSet
	err      error
	executed []*entities.GeneratedQuery
}

func (s *stubStore) Execute(_ context.Context, q *entities.GeneratedQuery) (*entities.RawResultSet, error) {
	s.executed = append(s.executed, q)
	return s.result, s.err
}

func newPipeline(translator *stubTranslator, store *stubStore) *SearchPipelineService {
	return NewSearchPipelineService(translator, store, schema.DefaultCatalog(), 10, nil)
}

func TestCompileFromCriteria_DefaultsAndShape(t *testing.T) {
	pipeline := newPipeline(&stubTranslator{}, &stubStore{})

	generated, err := pipeline.CompileFromCriteria(context.Background(), &StructuredSearchInput{
		Locations:        []string{"California", "TX"},
		MinLocationCount: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generated.Source != entities.QuerySourceStructured {
		t.Errorf("expected structured source, got %s", generated.Source)
	}
	if !strings.Contains(generated.Text, "nurse practitioner") {
		t.Error("expected default title vocabulary in query")
	}
	if !strings.Contains(generated.Text, "telehealth") {
		t.Error("expected default keyword vocabulary in query")
	}
	if !strings.Contains(generated.Text, "'CA'") || !strings.Contains(generated.Text, "'TX'") {
		t.Errorf("expected canonical state codes in query:\n%s", generated.Text)
	}

	if verdict := pipeline.Validate(generated); !verdict.Accepted {
		t.Errorf("structured query rejected by validator: %s", verdict.Reason)
	}
}

func TestCompileFromCriteria_NoValidLocations(t *testing.T) {
	pipeline := newPipeline(&stubTranslator{}, &stubStore{})

	_, err := pipeline.CompileFromCriteria(context.Background(), &StructuredSearchInput{
		Locations: []string{"Atlantis", ""},
	})
	if !apperrors.IsType(err, apperrors.ErrorTypeNoValidLocations) {
		t.Fatalf("expected NO_VALID_LOCATIONS, got %v", err)
	}
}

func TestCompileFromText_Source(t *testing.T) {
	translator := &stubTranslator{sql: "SELECT c.FIRST_NAME FROM userprofiles.public.contact_search AS c"}
	pipeline := newPipeline(translator, &stubStore{})

	generated, err := pipeline.CompileFromText(context.Background(), "nurses in texas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generated.Source != entities.QuerySourceFreeText {
		t.Errorf("expected free_text source, got %s", generated.Source)
	}
	if generated.Text != translator.sql {
		t.Errorf("expected translated text passed through, got %q", generated.Text)
	}
}

func TestCompileFromText_TranslatorErrorPassedThrough(t *testing.T) {
	translator := &stubTranslator{err: apperrors.NewTranslationError("service unavailable", nil)}
	pipeline := newPipeline(translator, &stubStore{})

	_, err := pipeline.CompileFromText(context.Background(), "nurses in texas")
	if !apperrors.IsType(err, apperrors.ErrorTypeTranslation) {
		t.Fatalf("expected TRANSLATION, got %v", err)
	}
}

func TestRun_UnsafeQueryNeverExecuted(t *testing.T) {
	store := &stubStore{}
	pipeline := newPipeline(&stubTranslator{}, store)

	_, err := pipeline.Run(context.Background(), &entities.GeneratedQuery{
		Text:   "DROP TABLE userprofiles.public.contact_search",
		Source: entities.QuerySourceFreeText,
	})
	if !apperrors.IsType(err, apperrors.ErrorTypeUnsafeQuery) {
		t.Fatalf("expected UNSAFE_QUERY, got %v", err)
	}
	if len(store.executed) != 0 {
		t.Fatalf("rejected query reached the store: %d executions", len(store.executed))
	}
}

func TestRun_ExecutesAndNormalizes(t *testing.T) {
	store := &stubStore{
		result: &entities.RawResultSet{
			Columns: []string{"FIRST_NAME", "licensed_states", "keyword_matched"},
			Rows: [][]interface{}{
				{"Ada", "3", "1"},
				{"Grace", "2", "1"},
				{"Joan", "N/A", "0"},
			},
		},
	}
	pipeline := newPipeline(&stubTranslator{}, store)

	generated, err := pipeline.CompileFromCriteria(context.Background(), &StructuredSearchInput{
		Locations: []string{"CA", "TX", "NY"},
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	table, err := pipeline.Run(context.Background(), generated)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if len(store.executed) != 1 || store.executed[0].Text != generated.Text {
		t.Fatal("expected exactly the compiled query to execute")
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Types[1] != entities.CellTypeNumber {
		t.Errorf("expected numeric licensed_states column, got %s", table.Types[1])
	}
	if !table.Rows[2][1].Missing {
		t.Error("expected uncoercible count to normalize as missing")
	}

	report := pipeline.Summarize(table)
	if report.RowCount != 3 {
		t.Errorf("expected summary over 3 rows, got %d", report.RowCount)
	}
	if !report.AvgLicensedStates.Available || report.AvgLicensedStates.Value != 2.5 {
		t.Errorf("expected average over coercible counts only, got %+v", report.AvgLicensedStates)
	}
}

// TestRun_StructuredScenarioAgainstWarehouse drives the telehealth
// nurse-practitioner search through the real warehouse adapter over a mocked
// connection. Five candidates are seeded conceptually; only the three that
// hold a licence in CA or TX and mention telehealth work survive the compiled
// filters, ordered by distinct licence count.
func TestRun_StructuredScenarioAgainstWarehouse(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}
	defer db.Close()

	store := database.NewSearchAdapter(db, 5*time.Second)
	pipeline := NewSearchPipelineService(&stubTranslator{}, store, schema.DefaultCatalog(), 10, nil)

	generated, err := pipeline.CompileFromCriteria(context.Background(), &StructuredSearchInput{
		Titles:              []string{"nurse practitioner", "np"},
		Locations:           []string{"CA", "TX"},
		Keywords:            []string{"telehealth", "remote"},
		KeywordFields:       []string{"JOB_DESCRIPTION"},
		MinLocationCount:    1,
		RequireKeywordMatch: true,
	})
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	sql := generated.Text
	if !strings.Contains(sql, `HAVING ((COUNT(DISTINCT "c"."JOB_LOCATION_STATE_CODE") >= 1)`) {
		t.Errorf("expected distinct-location floor in HAVING:\n%s", sql)
	}
	if !strings.Contains(sql, "THEN 1 ELSE 0 END) = 1") {
		t.Errorf("expected required keyword match in HAVING:\n%s", sql)
	}
	if !strings.Contains(sql, `ORDER BY "licensed_states" DESC`) {
		t.Errorf("expected descending licence-count ordering:\n%s", sql)
	}
	if !strings.Contains(sql, "%telehealth%") || !strings.Contains(sql, "%remote%") {
		t.Errorf("expected keyword tokens in compiled query:\n%s", sql)
	}

	// The warehouse answers with the surviving three of five candidates
	mock.ExpectQuery(regexp.QuoteMeta(sql)).WillReturnRows(
		sqlmock.NewRows([]string{"FIRST_NAME", "LAST_NAME", "JOB_LOCATION_STATE_CODE", "licensed_states", "keyword_matched"}).
			AddRow("Ada", "Lovelace", "CA", "2", "1").
			AddRow("Grace", "Hopper", "TX", "1", "1").
			AddRow("Joan", "Clarke", "CA", "1", "1"),
	)

	table, err := pipeline.Run(context.Background(), generated)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("warehouse never saw the compiled query: %v", err)
	}

	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 matching candidates, got %d", len(table.Rows))
	}
	states := columnIndex(t, table.Columns, "licensed_states")
	var prev float64 = 1 << 30
	for i, row := range table.Rows {
		cell := row[states]
		if cell.Missing {
			t.Fatalf("row %d has no licence count", i)
		}
		if cell.Number > prev {
			t.Errorf("row %d breaks descending licence order: %v after %v", i, cell.Number, prev)
		}
		prev = cell.Number
	}
}

func columnIndex(t *testing.T, columns []string, name string) int {
	t.Helper()
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	t.Fatalf("column %s not in result", name)
	return -1
}

func TestRun_StoreErrorPassedThrough(t *testing.T) {
	store := &stubStore{err: apperrors.NewExecutionError("relation does not exist", nil)}
	pipeline := newPipeline(&stubTranslator{}, store)

	_, err := pipeline.Run(context.Background(), &entities.GeneratedQuery{
		Text:   "SELECT 1",
		Source: entities.QuerySourceFreeText,
	})
	if !apperrors.IsType(err, apperrors.ErrorTypeExecution) {
		t.Fatalf("expected EXECUTION, got %v", err)
	}
}
