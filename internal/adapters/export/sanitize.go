package export

import "strings"

// truncationMarker is appended to cells cut at the spreadsheet ceiling
const truncationMarker = "..."

var cellReplacer = strings.NewReplacer(
	"~", "-",
	"`", "'",
	"|", "-",
)

// sanitizeCell replaces characters known to corrupt spreadsheet cell syntax
// and enforces the per-cell character ceiling. The ceiling counts characters,
// not bytes, so a multi-byte rune is never split.
func sanitizeCell(s string, maxChars int) string {
	cleaned := cellReplacer.Replace(s)
	if maxChars <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) > maxChars {
		cleaned = string(runes[:maxChars]) + truncationMarker
	}
	return cleaned
}
