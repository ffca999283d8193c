package services

import (
	"strings"
	"testing"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
)

func summaryFixture() *entities.NormalizedTable {
	return &entities.NormalizedTable{
		Columns: []string{"FIRST_NAME", "COMPANY_NAME", "JOB_LOCATION_STATE_CODE", "licensed_states", "keyword_matched"},
		Types: []entities.CellType{
			entities.CellTypeText, entities.CellTypeText, entities.CellTypeText,
			entities.CellTypeNumber, entities.CellTypeNumber,
		},
		Rows: [][]entities.Cell{
			{entities.TextCell("Ada"), entities.TextCell("Teladoc"), entities.TextCell("CA"), entities.NumberCell(3), entities.NumberCell(1)},
			{entities.TextCell("Grace"), entities.TextCell("Teladoc"), entities.TextCell("TX"), entities.NumberCell(2), entities.NumberCell(1)},
			{entities.TextCell("Joan"), entities.TextCell("Amwell"), entities.TextCell("CA"), entities.NumberCell(1), entities.NumberCell(0)},
		},
	}
}

func TestSummarize_Counts(t *testing.T) {
	report := NewSummaryService(10).Summarize(summaryFixture())
	if report.RowCount != 3 {
		t.Errorf("expected 3 rows, got %d", report.RowCount)
	}
	if report.ColumnCount != 5 {
		t.Errorf("expected 5 columns, got %d", report.ColumnCount)
	}
	if report.ApproxSizeBytes <= 0 {
		t.Error("expected positive approximate size")
	}
}

func TestSummarize_Aggregates(t *testing.T) {
	report := NewSummaryService(10).Summarize(summaryFixture())

	if !report.AvgLicensedStates.Available || report.AvgLicensedStates.Value != 2 {
		t.Errorf("expected avg licensed states 2, got %+v", report.AvgLicensedStates)
	}
	if !report.KeywordMatched.Available || report.KeywordMatched.Value != 2 {
		t.Errorf("expected 2 keyword-matched rows, got %+v", report.KeywordMatched)
	}
	if !report.DistinctCompanies.Available || report.DistinctCompanies.Value != 2 {
		t.Errorf("expected 2 distinct companies, got %+v", report.DistinctCompanies)
	}
}

func TestSummarize_TopFrequencies(t *testing.T) {
	report := NewSummaryService(10).Summarize(summaryFixture())

	if len(report.TopCompanies) != 2 || report.TopCompanies[0].Value != "Teladoc" || report.TopCompanies[0].Count != 2 {
		t.Errorf("unexpected top companies: %+v", report.TopCompanies)
	}
	if len(report.TopStates) != 2 || report.TopStates[0].Value != "CA" || report.TopStates[0].Count != 2 {
		t.Errorf("unexpected top states: %+v", report.TopStates)
	}
}

func TestSummarize_TopNBound(t *testing.T) {
	report := NewSummaryService(1).Summarize(summaryFixture())
	if len(report.TopCompanies) != 1 || len(report.TopStates) != 1 {
		t.Errorf("expected top-1 tables, got %d companies, %d states", len(report.TopCompanies), len(report.TopStates))
	}
}

func TestSummarize_MissingColumnsDegrade(t *testing.T) {
	table := &entities.NormalizedTable{
		Columns: []string{"FIRST_NAME"},
		Types:   []entities.CellType{entities.CellTypeText},
		Rows:    [][]entities.Cell{{entities.TextCell("Ada")}},
	}
	report := NewSummaryService(10).Summarize(table)

	if report.AvgLicensedStates.Available {
		t.Error("expected avg licensed states unavailable")
	}
	if report.KeywordMatched.Available {
		t.Error("expected keyword-matched count unavailable")
	}
	if report.DistinctCompanies.Available {
		t.Error("expected distinct companies unavailable")
	}
	if !strings.Contains(report.Report, "not available") {
		t.Errorf("expected report to say not available:\n%s", report.Report)
	}
}

func TestSummarize_CaseInsensitiveColumnLookup(t *testing.T) {
	table := &entities.NormalizedTable{
		Columns: []string{"STATES_LICENSED_IN"},
		Types:   []entities.CellType{entities.CellTypeNumber},
		Rows: [][]entities.Cell{
			{entities.NumberCell(4)},
			{entities.NumberCell(2)},
		},
	}
	report := NewSummaryService(10).Summarize(table)
	if !report.AvgLicensedStates.Available || report.AvgLicensedStates.Value != 3 {
		t.Errorf("expected upper-case column recognized, got %+v", report.AvgLicensedStates)
	}
}

func TestSummarize_MissingStats(t *testing.T) {
	table := &entities.NormalizedTable{
		Columns: []string{"EMAIL_ADDRESS"},
		Types:   []entities.CellType{entities.CellTypeText},
		Rows: [][]entities.Cell{
			{entities.TextCell("a@b.c")},
			{entities.TextCell("")},
		},
	}
	report := NewSummaryService(10).Summarize(table)
	if report.ColumnStats[0].MissingCount != 1 {
		t.Errorf("expected 1 missing value, got %d", report.ColumnStats[0].MissingCount)
	}
	if report.ColumnStats[0].MissingPercent != 50 {
		t.Errorf("expected 50%%, got %v", report.ColumnStats[0].MissingPercent)
	}
}
