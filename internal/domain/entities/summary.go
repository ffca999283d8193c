package entities

// ColumnStat holds per-column missing-value statistics
type ColumnStat struct {
	Name           string  `json:"name"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
}

// Metric is an aggregate that degrades gracefully when its source column is
// absent from the table being summarized.
type Metric struct {
	Available bool    `json:"available"`
	Value     float64 `json:"value"`
}

// ValueCount is one entry of a top-N frequency table
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SummaryReport holds the aggregate statistics over one normalized table.
// Derived, read-only, discarded with the request.
type SummaryReport struct {
	RowCount          int          `json:"row_count"`
	ColumnCount       int          `json:"column_count"`
	ApproxSizeBytes   int          `json:"approx_size_bytes"`
	ColumnStats       []ColumnStat `json:"column_stats"`
	AvgLicensedStates Metric       `json:"avg_licensed_states"`
	KeywordMatched    Metric       `json:"keyword_matched"`
	DistinctCompanies Metric       `json:"distinct_companies"`
	TopStates         []ValueCount `json:"top_states,omitempty"`
	TopCompanies      []ValueCount `json:"top_companies,omitempty"`
	Report            string       `json:"report"`
}
