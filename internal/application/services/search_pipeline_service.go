package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gradtohired/talentsearch/internal/domain/entities"
	"github.com/gradtohired/talentsearch/internal/domain/providers"
	"github.com/gradtohired/talentsearch/internal/infrastructure/observability"
	"github.com/gradtohired/talentsearch/internal/query"
	"github.com/gradtohired/talentsearch/internal/schema"
)

// StructuredSearchInput is raw caller input for the structured compile mode.
// Empty title and keyword lists fall back to the built-in nurse-practitioner
// and telehealth vocabularies.
type StructuredSearchInput struct {
	Titles              []string `json:"titles"`
	Locations           []string `json:"locations"`
	Keywords            []string `json:"keywords"`
	KeywordFields       []string `json:"keyword_fields"`
	MinLocationCount    int      `json:"min_location_count"`
	RequireKeywordMatch bool     `json:"require_keyword_match"`
}

// SearchPipelineService drives a search from criteria to normalized results.
// Both compile modes feed the same validate, execute, normalize path; a query
// that fails validation is never handed to the store.
type SearchPipelineService struct {
	translator providers.CompletionProvider
	store      providers.QueryStore
	catalog    *schema.Catalog
	criteria   *CriteriaService
	builder    *query.Builder
	validator  *query.Validator
	normalizer *ResultNormalizerService
	summarizer *SummaryService
	metrics    *observability.Metrics
}

// NewSearchPipelineService wires the pipeline. Metrics may be nil.
func NewSearchPipelineService(
	translator providers.CompletionProvider,
	store providers.QueryStore,
	catalog *schema.Catalog,
	topN int,
	metrics *observability.Metrics,
) *SearchPipelineService {
	return &SearchPipelineService{
		translator: translator,
		store:      store,
		catalog:    catalog,
		criteria:   NewCriteriaService(),
		builder:    query.NewBuilder(catalog),
		validator:  query.NewValidator(),
		normalizer: NewResultNormalizerService(),
		summarizer: NewSummaryService(topN),
		metrics:    metrics,
	}
}

// CompileFromText translates a prose description into a candidate query. The
// result is untrusted until Run validates it.
func (s *SearchPipelineService) CompileFromText(ctx context.Context, text string) (*entities.GeneratedQuery, error) {
	ctx, span := observability.StartSpan(ctx, "search.compile_free_text")
	defer span.End()

	start := time.Now()
	sql, err := s.translator.TranslateQuery(ctx, s.catalog.PromptDescription(), text)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if s.metrics != nil {
		observability.RecordTranslationMetric(ctx, s.metrics, time.Since(start))
	}

	return &entities.GeneratedQuery{
		Text:   sql,
		Source: entities.QuerySourceFreeText,
	}, nil
}

// CompileFromCriteria normalizes caller input and renders the deterministic
// structured query. Location normalization runs first so unusable locations
// fail before anything is compiled.
func (s *SearchPipelineService) CompileFromCriteria(ctx context.Context, input *StructuredSearchInput) (*entities.GeneratedQuery, error) {
	_, span := observability.StartSpan(ctx, "search.compile_structured")
	defer span.End()

	codes, err := s.criteria.NormalizeLocations(input.Locations)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	titles := s.criteria.NormalizeTerms(input.Titles)
	if len(titles) == 0 {
		titles = DefaultTitleTokens
	}

	keywords := s.criteria.NormalizeTerms(input.Keywords)
	if len(keywords) == 0 {
		keywords = DefaultTelehealthKeywords
	}
	fields := s.criteria.NormalizeTerms(input.KeywordFields)
	if len(fields) == 0 {
		fields = DefaultKeywordFields
	}
	groups := make(map[string][]string, len(fields))
	for _, field := range fields {
		groups[field] = keywords
	}

	generated, err := s.builder.Build(&entities.StructuredCriteria{
		TitleTokens:         titles,
		LocationCodes:       codes,
		KeywordGroups:       s.criteria.NormalizeGroups(groups),
		MinLocationCount:    input.MinLocationCount,
		RequireKeywordMatch: input.RequireKeywordMatch,
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.location_count", len(codes)))
	return generated, nil
}

// Validate reports the safety verdict without executing anything
func (s *SearchPipelineService) Validate(generated *entities.GeneratedQuery) entities.ValidationVerdict {
	return s.validator.Validate(generated.Text)
}

// Run validates, executes and normalizes one compiled query
func (s *SearchPipelineService) Run(ctx context.Context, generated *entities.GeneratedQuery) (*entities.NormalizedTable, error) {
	ctx, span := observability.StartSpan(ctx, "search.run")
	defer span.End()
	span.SetAttributes(attribute.String("query.source", string(generated.Source)))

	if err := s.validator.Check(generated); err != nil {
		if s.metrics != nil {
			observability.RecordRejectedQuery(ctx, s.metrics, string(generated.Source))
		}
		observability.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	raw, err := s.store.Execute(ctx, generated)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if s.metrics != nil {
		observability.RecordQueryMetric(ctx, s.metrics, string(generated.Source), time.Since(start))
	}

	table := s.normalizer.Normalize(raw)
	span.SetAttributes(attribute.Int("search.result_rows", len(table.Rows)))

	observability.LoggerFromContext(ctx).Info().
		Str("source", string(generated.Source)).
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Columns)).
		Msg("search completed")

	return table, nil
}

// Summarize derives the aggregate report for a result table
func (s *SearchPipelineService) Summarize(table *entities.NormalizedTable) *entities.SummaryReport {
	return s.summarizer.Summarize(table)
}
