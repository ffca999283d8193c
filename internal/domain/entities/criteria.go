package entities

// FreeTextCriteria is a prose description of a hiring search, translated into
// a query by the external completion service.
type FreeTextCriteria struct {
	Text string `json:"text"`
}

// StructuredCriteria describes a hiring search in fielded form. It is built
// once from caller input and not mutated afterwards.
type StructuredCriteria struct {
	// TitleTokens are matched case-insensitively against the title fields
	TitleTokens []string `json:"title_tokens"`

	// LocationCodes are canonical two-letter state codes
	LocationCodes []string `json:"location_codes"`

	// KeywordGroups maps a searchable field name to alternative terms; a hit
	// on any term in any field satisfies the keyword condition
	KeywordGroups map[string][]string `json:"keyword_groups"`

	// MinLocationCount is the minimum distinct-location count per entity
	MinLocationCount int `json:"min_location_count"`

	// RequireKeywordMatch requires the keyword condition to hold
	RequireKeywordMatch bool `json:"require_keyword_match"`
}
