package services

import (
	"strings"

	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// stateCodes maps full US state names to their canonical two-letter codes
var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "florida": "FL", "georgia": "GA", "hawaii": "HI",
	"idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME",
	"maryland": "MD", "massachusetts": "MA", "michigan": "MI",
	"minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM",
	"new york": "NY", "north carolina": "NC", "north dakota": "ND",
	"ohio": "OH", "oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

var knownCodes = func() map[string]struct{} {
	set := make(map[string]struct{}, len(stateCodes))
	for _, code := range stateCodes {
		set[code] = struct{}{}
	}
	return set
}()

// CriteriaService turns loose caller input into canonical matching tokens
type CriteriaService struct{}

// NewCriteriaService creates a new criteria service
func NewCriteriaService() *CriteriaService {
	return &CriteriaService{}
}

// NormalizeLocations maps state names and abbreviations to canonical codes.
// Unmatched tokens are dropped silently; only an entirely unusable input list
// is an error. Output preserves input order, de-duplicated.
func (s *CriteriaService) NormalizeLocations(locations []string) ([]string, error) {
	var codes []string
	seen := make(map[string]struct{})

	for _, loc := range locations {
		token := strings.ToLower(strings.TrimSpace(loc))
		if token == "" {
			continue
		}

		code, ok := stateCodes[token]
		if !ok {
			upper := strings.ToUpper(token)
			if _, known := knownCodes[upper]; known {
				code = upper
			} else {
				continue
			}
		}

		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return nil, apperrors.NewNoValidLocationsError("no valid locations provided")
	}
	return codes, nil
}

// NormalizeTerms trims and de-duplicates title or keyword tokens, preserving
// order. No spelling correction is attempted.
func (s *CriteriaService) NormalizeTerms(terms []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, term := range terms {
		token := strings.TrimSpace(term)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, token)
	}
	return out
}

// NormalizeGroups applies NormalizeTerms to every keyword group, dropping
// groups left empty
func (s *CriteriaService) NormalizeGroups(groups map[string][]string) map[string][]string {
	if len(groups) == 0 {
		return nil
	}
	out := make(map[string][]string, len(groups))
	for field, terms := range groups {
		normalized := s.NormalizeTerms(terms)
		if len(normalized) > 0 {
			out[strings.TrimSpace(field)] = normalized
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
