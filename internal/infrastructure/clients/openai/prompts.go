package openai

import "fmt"

// translationRules constrain the completion service to a single valid query
// over the cataloged schema. Output-format rule last so truncation cannot
// drop it silently in the middle.
const translationRules = `CRITICAL RULES:
1. Use proper analytical SQL syntax.
2. ALWAYS use the correct table aliases: 'c' for contact_search, 'o' for org_profiles, 'p' for person_profiles.
3. ONLY reference columns that actually exist in the specified tables.
4. For job title searches, be flexible: match with LOWER(column) LIKE patterns over title and function columns and include common abbreviations.
5. Check MULTIPLE fields for one concept: c.JOB_DESCRIPTION, c.LINKEDIN_HEADLINE, c.SKILLS, c.EDUCATION can each carry experience keywords.
6. For state licensing use c.JOB_LOCATION_STATE_CODE and be flexible with state formats.
7. When using GROUP BY with COUNT(DISTINCT), only ORDER BY columns that are in the GROUP BY clause or use aggregate functions.
8. Use clean LIKE patterns like '%keyword%'.
9. Return only the SQL query, no explanations and no Markdown fences.`

// buildTranslationSystemPrompt embeds the rendered schema catalog into the
// fixed instruction preamble
func buildTranslationSystemPrompt(schemaDescription string) string {
	return fmt.Sprintf(
		"You are a SQL expert for an analytical candidate-search warehouse. Convert the user's natural language search into a single valid read-only SQL query.\n\nDatabase Schema:\n%s\n\n%s",
		schemaDescription,
		translationRules,
	)
}
