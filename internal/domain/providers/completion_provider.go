package providers

import "context"

// CompletionProvider is the external text-completion boundary. One request in,
// one plain-text candidate query out; its output is untrusted until the safety
// validator accepts it.
type CompletionProvider interface {
	// TranslateQuery turns a prose search description into a single candidate
	// query, given the rendered schema description for grounding.
	TranslateQuery(ctx context.Context, schemaDescription, userText string) (string, error)
}
