package query

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
	"github.com/gradtohired/talentsearch/internal/schema"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// Derived column names exposed by structured-mode queries
const (
	LicensedStatesColumn = "licensed_states"
	KeywordMatchedColumn = "keyword_matched"
	StateCodeColumn      = "JOB_LOCATION_STATE_CODE"
	CompanyColumn        = "COMPANY_NAME"
)

// titleFields are the columns title tokens are matched against
var titleFields = []string{"JOB_TITLE", "JOB_FUNCTION"}

// entityKeyColumns form the natural key a candidate is aggregated under. The
// state code is deliberately not part of the key: the distinct-location count
// is computed across an entity's rows, not per row.
var entityKeyColumns = []string{
	"FIRST_NAME", "LAST_NAME", "EMAIL_ADDRESS",
	"JOB_TITLE", "JOB_DESCRIPTION", "LINKEDIN_HEADLINE",
	"JOB_LOCATION_CITY", "COMPANY_NAME", "SKILLS", "EDUCATION",
	"LINKEDIN_URL", "JOB_START_DATE", "JOB_END_DATE", "JOB_IS_CURRENT",
}

// Builder renders StructuredCriteria into one deterministic read-only query.
// It exists because free-text translation is only as reliable as the external
// service; this path is verifiable and test-stable with identical shape.
type Builder struct {
	catalog *schema.Catalog
	dialect goqu.DialectWrapper
}

// NewBuilder creates a builder against the given catalog
func NewBuilder(catalog *schema.Catalog) *Builder {
	return &Builder{
		catalog: catalog,
		dialect: goqu.Dialect("postgres"),
	}
}

// Build compiles criteria into a GeneratedQuery. Criteria are expected to be
// normalized already; location codes must be canonical.
func (b *Builder) Build(criteria *entities.StructuredCriteria) (*entities.GeneratedQuery, error) {
	if criteria == nil {
		return nil, apperrors.NewValidationError("criteria are required")
	}
	if len(criteria.LocationCodes) == 0 {
		return nil, apperrors.NewNoValidLocationsError("no location codes in criteria")
	}
	if len(criteria.TitleTokens) == 0 {
		return nil, apperrors.NewValidationError("at least one title token is required")
	}
	if criteria.RequireKeywordMatch && len(criteria.KeywordGroups) == 0 {
		return nil, apperrors.NewValidationError("keyword match required but no keyword groups provided")
	}
	if err := b.checkColumns(criteria); err != nil {
		return nil, err
	}

	min := criteria.MinLocationCount
	if min < 1 {
		min = 1
	}

	titleCond := likeAnyOver(titleFields, criteria.TitleTokens)
	distinctStates := goqu.COUNT(goqu.DISTINCT(contactCol(StateCodeColumn)))

	selects := make([]interface{}, 0, len(entityKeyColumns)+3)
	groupBy := make([]interface{}, 0, len(entityKeyColumns))
	for _, col := range entityKeyColumns {
		selects = append(selects, contactCol(col))
		groupBy = append(groupBy, contactCol(col))
	}
	// Representative location for display; the full set is folded into the count
	selects = append(selects,
		goqu.MIN(contactCol(StateCodeColumn)).As(StateCodeColumn),
		distinctStates.As(LicensedStatesColumn),
	)

	having := []exp.Expression{distinctStates.Gte(min)}

	if len(criteria.KeywordGroups) > 0 {
		keywordCond := keywordCondition(criteria.KeywordGroups)
		matched := goqu.MAX(goqu.Case().When(keywordCond, 1).Else(0))
		selects = append(selects, matched.As(KeywordMatchedColumn))
		if criteria.RequireKeywordMatch {
			having = append(having, matched.Eq(1))
		}
	} else {
		selects = append(selects, goqu.V(0).As(KeywordMatchedColumn))
	}

	ds := b.dialect.
		From(goqu.I(schema.ContactTable).As(schema.ContactAlias)).
		Select(selects...).
		Where(
			titleCond,
			contactCol(StateCodeColumn).In(stringSlice(criteria.LocationCodes)),
			goqu.Func("COALESCE", contactCol("JOB_IS_CURRENT"), goqu.V(false)).Eq(true),
		).
		GroupBy(groupBy...).
		Having(having...).
		Order(
			goqu.I(LicensedStatesColumn).Desc(),
			contactCol("JOB_START_DATE").Desc(),
			contactCol("LAST_NAME").Asc(),
			contactCol("FIRST_NAME").Asc(),
		)

	sql, _, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to render query", err)
	}

	return &entities.GeneratedQuery{
		Text:     sql,
		Source:   entities.QuerySourceStructured,
		Criteria: criteria,
	}, nil
}

// checkColumns enforces the catalog invariant: a reference to a column the
// contact table does not expose is a compiler bug, surfaced before any SQL is
// rendered.
func (b *Builder) checkColumns(criteria *entities.StructuredCriteria) error {
	table, err := b.catalog.Describe(schema.ContactAlias)
	if err != nil {
		return err
	}

	for _, col := range entityKeyColumns {
		if !table.HasColumn(col) {
			return apperrors.NewInternalError(fmt.Sprintf("entity key column %s not in catalog", col), nil)
		}
	}
	for _, col := range titleFields {
		if !table.HasColumn(col) {
			return apperrors.NewInternalError(fmt.Sprintf("title field %s not in catalog", col), nil)
		}
	}
	for field := range criteria.KeywordGroups {
		if !table.HasColumn(field) {
			return apperrors.NewValidationError(fmt.Sprintf("unknown keyword field %q", field))
		}
	}
	return nil
}

func contactCol(name string) exp.IdentifierExpression {
	return goqu.I(schema.ContactAlias + "." + name)
}

// likeAnyOver builds an OR of case-insensitive substring matches for every
// token over every field
func likeAnyOver(fields []string, tokens []string) exp.ExpressionList {
	conds := make([]exp.Expression, 0, len(fields)*len(tokens))
	for _, field := range fields {
		lowered := goqu.Func("LOWER", goqu.Func("COALESCE", contactCol(field), goqu.V("")))
		for _, token := range tokens {
			conds = append(conds, lowered.Like("%"+strings.ToLower(token)+"%"))
		}
	}
	return goqu.Or(conds...)
}

// keywordCondition ORs every group's tokens over that group's field, then ORs
// the groups: a hit in any field counts.
func keywordCondition(groups map[string][]string) exp.ExpressionList {
	fields := make([]string, 0, len(groups))
	for field := range groups {
		fields = append(fields, field)
	}
	// Deterministic field order for reproducible SQL text
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j] < fields[j-1]; j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}

	var conds []exp.Expression
	for _, field := range fields {
		conds = append(conds, likeAnyOver([]string{field}, groups[field]))
	}
	return goqu.Or(conds...)
}

func stringSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
