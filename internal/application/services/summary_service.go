package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
)

const notAvailable = "not available"

// Candidate column names per aggregate. The summarizer never assumes the
// structured compiler's exact output shape: free-text queries return whatever
// the completion service selected.
var (
	licensedStatesColumns = []string{"licensed_states", "states_licensed_in"}
	keywordMatchedColumns = []string{"keyword_matched", "has_telehealth_experience"}
	companyColumns        = []string{"company_name"}
	stateCodeColumns      = []string{"job_location_state_code", "state_code"}
)

// SummaryService computes aggregate statistics over one normalized table
type SummaryService struct {
	topN int
}

// NewSummaryService creates a summary service with the given top-N bound
func NewSummaryService(topN int) *SummaryService {
	if topN <= 0 {
		topN = 10
	}
	return &SummaryService{topN: topN}
}

// Summarize derives the report for a normalized table. Aggregates whose
// source column is absent degrade to unavailable instead of failing.
func (s *SummaryService) Summarize(table *entities.NormalizedTable) *entities.SummaryReport {
	report := &entities.SummaryReport{
		RowCount:        len(table.Rows),
		ColumnCount:     len(table.Columns),
		ApproxSizeBytes: approxSize(table),
		ColumnStats:     columnStats(table),
	}

	if idx := findColumn(table, licensedStatesColumns); idx >= 0 {
		report.AvgLicensedStates = meanOf(table, idx)
	}
	if idx := findColumn(table, keywordMatchedColumns); idx >= 0 {
		report.KeywordMatched = entities.Metric{Available: true, Value: float64(truthyCount(table, idx))}
	}
	if idx := findColumn(table, companyColumns); idx >= 0 {
		report.DistinctCompanies = entities.Metric{Available: true, Value: float64(distinctCount(table, idx))}
		report.TopCompanies = topValues(table, idx, s.topN)
	}
	if idx := findColumn(table, stateCodeColumns); idx >= 0 {
		report.TopStates = topValues(table, idx, s.topN)
	}

	report.Report = s.renderReport(report)
	return report
}

func (s *SummaryService) renderReport(r *entities.SummaryReport) string {
	var b strings.Builder
	b.WriteString("CANDIDATE SEARCH SUMMARY REPORT\n")
	b.WriteString("===============================\n\n")
	fmt.Fprintf(&b, "Search Date: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Candidates Found: %d\n\n", r.RowCount)

	b.WriteString("KEY STATISTICS:\n")
	fmt.Fprintf(&b, "- Average states licensed in: %s\n", metricString(r.AvgLicensedStates, "%.1f"))
	fmt.Fprintf(&b, "- Candidates with keyword experience: %s\n", metricString(r.KeywordMatched, "%.0f"))
	fmt.Fprintf(&b, "- Unique companies represented: %s\n", metricString(r.DistinctCompanies, "%.0f"))

	b.WriteString("\nCOMPANIES WITH MOST CANDIDATES:\n")
	writeFrequencies(&b, r.TopCompanies)

	b.WriteString("\nSTATE DISTRIBUTION:\n")
	writeFrequencies(&b, r.TopStates)

	return b.String()
}

func metricString(m entities.Metric, format string) string {
	if !m.Available {
		return notAvailable
	}
	return fmt.Sprintf(format, m.Value)
}

func writeFrequencies(b *strings.Builder, values []entities.ValueCount) {
	if len(values) == 0 {
		b.WriteString(notAvailable + "\n")
		return
	}
	for _, vc := range values {
		fmt.Fprintf(b, "%-30s %d\n", vc.Value, vc.Count)
	}
}

// findColumn looks up the first matching candidate, case-insensitively
func findColumn(table *entities.NormalizedTable, candidates []string) int {
	for i, col := range table.Columns {
		lowered := strings.ToLower(col)
		for _, candidate := range candidates {
			if lowered == candidate {
				return i
			}
		}
	}
	return -1
}

func cellMissing(cell entities.Cell) bool {
	return cell.Missing || (cell.Kind() == entities.CellTypeText && cell.Text == "")
}

func columnStats(table *entities.NormalizedTable) []entities.ColumnStat {
	stats := make([]entities.ColumnStat, len(table.Columns))
	for i, col := range table.Columns {
		missing := 0
		for _, row := range table.Rows {
			if cellMissing(row[i]) {
				missing++
			}
		}
		percent := 0.0
		if len(table.Rows) > 0 {
			percent = float64(missing) / float64(len(table.Rows)) * 100
		}
		stats[i] = entities.ColumnStat{Name: col, MissingCount: missing, MissingPercent: percent}
	}
	return stats
}

func approxSize(table *entities.NormalizedTable) int {
	size := 0
	for _, col := range table.Columns {
		size += len(col)
	}
	for _, row := range table.Rows {
		for _, cell := range row {
			size += len(cell.Display()) + 16
		}
	}
	return size
}

func meanOf(table *entities.NormalizedTable, col int) entities.Metric {
	sum := 0.0
	count := 0
	for _, row := range table.Rows {
		cell := row[col]
		if cell.Missing || cell.Kind() != entities.CellTypeNumber {
			continue
		}
		sum += cell.Number
		count++
	}
	if count == 0 {
		return entities.Metric{}
	}
	return entities.Metric{Available: true, Value: sum / float64(count)}
}

// truthyCount counts rows whose flag cell is a non-zero number or a "true"
// text, covering both compile modes' renderings of the flag
func truthyCount(table *entities.NormalizedTable, col int) int {
	count := 0
	for _, row := range table.Rows {
		cell := row[col]
		if cell.Missing {
			continue
		}
		switch cell.Kind() {
		case entities.CellTypeNumber:
			if cell.Number != 0 {
				count++
			}
		default:
			if strings.EqualFold(strings.TrimSpace(cell.Text), "true") {
				count++
			}
		}
	}
	return count
}

func distinctCount(table *entities.NormalizedTable, col int) int {
	seen := make(map[string]struct{})
	for _, row := range table.Rows {
		if cellMissing(row[col]) {
			continue
		}
		seen[row[col].Display()] = struct{}{}
	}
	return len(seen)
}

func topValues(table *entities.NormalizedTable, col, n int) []entities.ValueCount {
	counts := make(map[string]int)
	for _, row := range table.Rows {
		if cellMissing(row[col]) {
			continue
		}
		counts[row[col].Display()]++
	}

	out := make([]entities.ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, entities.ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
