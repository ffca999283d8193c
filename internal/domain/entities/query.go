package entities

// QuerySource records which compile mode produced a query
type QuerySource string

const (
	QuerySourceFreeText   QuerySource = "free_text"
	QuerySourceStructured QuerySource = "structured"
)

// GeneratedQuery is a compiled, not-yet-validated query. Never mutated after
// creation.
type GeneratedQuery struct {
	Text     string              `json:"text"`
	Source   QuerySource         `json:"source"`
	Criteria *StructuredCriteria `json:"criteria,omitempty"`
}

// ValidationVerdict is the safety validator's decision on a query text
type ValidationVerdict struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}
