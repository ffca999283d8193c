package schema

import (
	"fmt"
	"strings"

	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// TableDescriptor describes one warehouse table: its qualified name, the
// alias generated queries use for it, and the columns it exposes.
type TableDescriptor struct {
	Name    string
	Alias   string
	Columns []string

	columnSet map[string]struct{}
}

// HasColumn reports whether the table exposes the named column
func (t *TableDescriptor) HasColumn(name string) bool {
	_, ok := t.columnSet[strings.ToUpper(name)]
	return ok
}

// Catalog is the static description of the denormalized warehouse schema.
// Immutable after construction; safe for concurrent reads.
type Catalog struct {
	tables  []*TableDescriptor
	byAlias map[string]*TableDescriptor
}

// NewCatalog builds a catalog from descriptors, indexing them by alias
func NewCatalog(tables ...*TableDescriptor) *Catalog {
	c := &Catalog{byAlias: make(map[string]*TableDescriptor, len(tables))}
	for _, table := range tables {
		table.columnSet = make(map[string]struct{}, len(table.Columns))
		for _, col := range table.Columns {
			table.columnSet[strings.ToUpper(col)] = struct{}{}
		}
		c.tables = append(c.tables, table)
		c.byAlias[table.Alias] = table
	}
	return c
}

// Describe returns the descriptor registered under the alias
func (c *Catalog) Describe(alias string) (*TableDescriptor, error) {
	table, ok := c.byAlias[alias]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown table alias %q", alias))
	}
	return table, nil
}

// Tables returns the descriptors in registration order
func (c *Catalog) Tables() []*TableDescriptor {
	return c.tables
}

// PromptDescription renders the catalog for the translation system prompt
func (c *Catalog) PromptDescription() string {
	var b strings.Builder
	b.WriteString("Tables available:\n")
	for i, table := range c.tables {
		fmt.Fprintf(&b, "\n%d. %s (alias: %s)\n", i+1, table.Name, table.Alias)
		fmt.Fprintf(&b, "   Columns: %s\n", strings.Join(table.Columns, ", "))
	}
	b.WriteString("\nIMPORTANT: Use the correct table aliases and column names. Do NOT reference columns that don't exist in the specified table.\n")
	return b.String()
}

// Aliases of the three warehouse tables
const (
	ContactAlias = "c"
	OrgAlias     = "o"
	PersonAlias  = "p"
)

// ContactTable is the qualified name of the denormalized contact table
const ContactTable = "userprofiles.public.contact_search"

// DefaultCatalog describes the fixed warehouse schema the compiler targets
func DefaultCatalog() *Catalog {
	return NewCatalog(
		&TableDescriptor{
			Name:  ContactTable,
			Alias: ContactAlias,
			Columns: []string{
				"FIRST_NAME", "LAST_NAME", "EMAIL_ADDRESS", "EMAIL_STATUS",
				"JOB_TITLE", "JOB_FUNCTION", "JOB_DESCRIPTION", "JOB_LEVEL",
				"JOB_START_DATE", "JOB_END_DATE", "JOB_IS_CURRENT",
				"JOB_LOCATION_CITY", "JOB_LOCATION_STATE", "JOB_LOCATION_STATE_CODE",
				"JOB_LOCATION_COUNTRY", "JOB_LOCATION_COUNTRY_CODE",
				"COMPANY_NAME", "COMPANY_URL", "SKILLS", "EDUCATION",
				"LINKEDIN_URL", "LINKEDIN_HEADLINE", "LINKEDIN_CONNECTIONS_COUNT",
				"LINKEDIN_INDUSTRY",
			},
		},
		&TableDescriptor{
			Name:  "userprofiles.public.org_profiles",
			Alias: OrgAlias,
			Columns: []string{
				"COMPANY_NAME", "ABOUT_US", "EMPLOYEE_COUNT_MIN", "EMPLOYEE_COUNT_MAX",
				"INDUSTRY_LINKEDIN", "INDUSTRY_SIC_CODE", "INDUSTRY_NAICS_CODE",
				"HEADQUARTERS_CITY", "HEADQUARTERS_STATE_CODE", "HEADQUARTERS_COUNTRY_CODE",
				"PHONE", "WEBSITE", "DOMAIN",
			},
		},
		&TableDescriptor{
			Name:  "userprofiles.public.person_profiles",
			Alias: PersonAlias,
			Columns: []string{
				"FIRST_NAME", "LAST_NAME", "FULL_NAME", "ABOUT_ME",
				"EMAIL_ADDRESS", "CELLPHONE", "DIRECT_PHONE",
				"CITY", "STATE_CODE", "COUNTRY_CODE",
				"JOB_TITLE", "JOB_DESCRIPTION", "JOB_LEVEL", "JOB_FUNCTION",
				"SKILLS", "CERTIFICATIONS", "EDUCATION", "LANGUAGES", "INTERESTS",
				"LINKEDIN_URL", "LINKEDIN_HEADLINE", "LINKEDIN_CONNECTIONS_COUNT",
			},
		},
	)
}
