package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// deniedKeywords are the mutating statements a generated query may never
// contain
var deniedKeywords = []string{"DROP", "DELETE", "TRUNCATE", "ALTER", "CREATE", "GRANT", "REVOKE"}

var (
	deniedPattern = regexp.MustCompile(`\b(` + strings.Join(deniedKeywords, "|") + `)\b`)
	selectPattern = regexp.MustCompile(`\bSELECT\b`)
)

// Validator is a conservative lexical filter over generated query text.
//
// Known limitation: this is not a parser. A denied keyword inside a string
// literal or comment is still rejected, and a mutation smuggled past word
// boundaries is not; the store's read-only grant is the actual guarantee.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate inspects query text and accepts or rejects it for execution
func (v *Validator) Validate(text string) entities.ValidationVerdict {
	upper := strings.ToUpper(text)

	if match := deniedPattern.FindString(upper); match != "" {
		return entities.ValidationVerdict{
			Accepted: false,
			Reason:   fmt.Sprintf("query contains potentially dangerous keyword: %s", match),
		}
	}

	if !selectPattern.MatchString(upper) {
		return entities.ValidationVerdict{
			Accepted: false,
			Reason:   "query must contain a SELECT statement",
		}
	}

	return entities.ValidationVerdict{Accepted: true, Reason: "query appears safe"}
}

// Check is Validate lifted into the error taxonomy for pipeline use
func (v *Validator) Check(query *entities.GeneratedQuery) error {
	verdict := v.Validate(query.Text)
	if !verdict.Accepted {
		return apperrors.NewUnsafeQueryError(verdict.Reason)
	}
	return nil
}
