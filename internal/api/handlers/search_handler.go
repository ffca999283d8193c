package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gradtohired/talentsearch/internal/adapters/export"
	"github.com/gradtohired/talentsearch/internal/application/services"
	"github.com/gradtohired/talentsearch/internal/domain/entities"
	"github.com/gradtohired/talentsearch/internal/infrastructure/observability"
	apperrors "github.com/gradtohired/talentsearch/pkg/errors"
)

// ExampleQueries are ready-made free-text searches exposed to callers
var ExampleQueries = []string{
	"Find nurse practitioners licensed in California and Texas with telehealth experience",
	"Show all software engineers with Python skills in San Francisco",
	"Find companies in the healthcare industry with more than 1000 employees",
	"Show people with nursing degrees and certifications in multiple states",
}

// SearchPipeline defines the pipeline operations used by the handler.
type SearchPipeline interface {
	CompileFromText(ctx context.Context, text string) (*entities.GeneratedQuery, error)
	CompileFromCriteria(ctx context.Context, input *services.StructuredSearchInput) (*entities.GeneratedQuery, error)
	Validate(generated *entities.GeneratedQuery) entities.ValidationVerdict
	Run(ctx context.Context, generated *entities.GeneratedQuery) (*entities.NormalizedTable, error)
	Summarize(table *entities.NormalizedTable) *entities.SummaryReport
}

// SearchHandler serves the candidate search endpoints.
type SearchHandler struct {
	pipeline SearchPipeline
	csv      *export.CSVExporter
	xlsx     *export.ExcelExporter
	metrics  *observability.Metrics
}

// NewSearchHandler creates a new search handler. Metrics may be nil.
func NewSearchHandler(pipeline SearchPipeline, csv *export.CSVExporter, xlsx *export.ExcelExporter, metrics *observability.Metrics) *SearchHandler {
	return &SearchHandler{
		pipeline: pipeline,
		csv:      csv,
		xlsx:     xlsx,
		metrics:  metrics,
	}
}

type translateRequest struct {
	Text string `json:"text"`
}

type queryResponse struct {
	Query   queryPayload               `json:"query"`
	Verdict entities.ValidationVerdict `json:"verdict"`
}

type queryPayload struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// searchRequest selects one compile mode: free text or structured criteria
type searchRequest struct {
	Text           string                          `json:"text,omitempty"`
	Criteria       *services.StructuredSearchInput `json:"criteria,omitempty"`
	IncludeSummary bool                            `json:"include_summary,omitempty"`
}

type tablePayload struct {
	Columns  []string   `json:"columns"`
	Types    []string   `json:"types"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
}

type searchResponse struct {
	Query   queryPayload            `json:"query"`
	Results tablePayload            `json:"results"`
	Summary *entities.SummaryReport `json:"summary,omitempty"`
}

// TranslateQuery handles POST /api/v1/search/translate
func (h *SearchHandler) TranslateQuery(w http.ResponseWriter, r *http.Request) {
	var payload translateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "text is required")
		return
	}

	generated, err := h.pipeline.CompileFromText(r.Context(), payload.Text)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, queryResponse{
		Query:   queryPayload{Text: generated.Text, Source: string(generated.Source)},
		Verdict: h.pipeline.Validate(generated),
	})
}

// CompileQuery handles POST /api/v1/search/compile
func (h *SearchHandler) CompileQuery(w http.ResponseWriter, r *http.Request) {
	var input services.StructuredSearchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	generated, err := h.pipeline.CompileFromCriteria(r.Context(), &input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, queryResponse{
		Query:   queryPayload{Text: generated.Text, Source: string(generated.Source)},
		Verdict: h.pipeline.Validate(generated),
	})
}

// RunSearch handles POST /api/v1/search/run
func (h *SearchHandler) RunSearch(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}

	generated, table, err := h.compileAndRun(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	resp := searchResponse{
		Query:   queryPayload{Text: generated.Text, Source: string(generated.Source)},
		Results: renderTable(table),
	}
	if payload.IncludeSummary {
		resp.Summary = h.pipeline.Summarize(table)
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// ExportCSV handles POST /api/v1/search/export/csv
func (h *SearchHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}

	_, table, err := h.compileAndRun(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	data, err := h.csv.Encode(table)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	h.recordExport(r.Context(), "csv")
	respondWithFile(w, data, "text/csv", "search_results.csv")
}

// ExportExcel handles POST /api/v1/search/export/xlsx
func (h *SearchHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}

	_, table, err := h.compileAndRun(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	data, err := h.xlsx.Encode(table)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	h.recordExport(r.Context(), "xlsx")
	respondWithFile(w, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"search_results.xlsx")
}

// ExportSummary handles POST /api/v1/search/export/summary
func (h *SearchHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeSearchRequest(w, r)
	if !ok {
		return
	}

	_, table, err := h.compileAndRun(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	report := h.pipeline.Summarize(table)
	h.recordExport(r.Context(), "summary")
	respondWithFile(w, []byte(report.Report), "text/plain; charset=utf-8", "search_summary.txt")
}

// ListExamples handles GET /api/v1/search/examples
func (h *SearchHandler) ListExamples(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{"examples": ExampleQueries})
}

func (h *SearchHandler) compileAndRun(ctx context.Context, payload *searchRequest) (*entities.GeneratedQuery, *entities.NormalizedTable, error) {
	var generated *entities.GeneratedQuery
	var err error
	if payload.Criteria != nil {
		generated, err = h.pipeline.CompileFromCriteria(ctx, payload.Criteria)
	} else {
		generated, err = h.pipeline.CompileFromText(ctx, payload.Text)
	}
	if err != nil {
		return nil, nil, err
	}

	table, err := h.pipeline.Run(ctx, generated)
	if err != nil {
		return nil, nil, err
	}
	return generated, table, nil
}

func (h *SearchHandler) recordExport(ctx context.Context, format string) {
	if h.metrics != nil {
		observability.RecordExportMetric(ctx, h.metrics, format)
	}
}

func decodeSearchRequest(w http.ResponseWriter, r *http.Request) (*searchRequest, bool) {
	var payload searchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return nil, false
	}
	if payload.Criteria == nil && strings.TrimSpace(payload.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "either text or criteria is required")
		return nil, false
	}
	return &payload, true
}

func renderTable(table *entities.NormalizedTable) tablePayload {
	payload := tablePayload{
		Columns:  table.Columns,
		Types:    make([]string, len(table.Types)),
		Rows:     make([][]string, len(table.Rows)),
		RowCount: len(table.Rows),
	}
	for i, t := range table.Types {
		payload.Types[i] = string(t)
	}
	for i, row := range table.Rows {
		rendered := make([]string, len(row))
		for j, cell := range row {
			rendered[j] = cell.Display()
		}
		payload.Rows[i] = rendered
	}
	return payload
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithFile(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// respondWithAppError translates the error taxonomy into HTTP statuses
func respondWithAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNoValidLocations:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeUnsafeQuery:
		status = http.StatusUnprocessableEntity
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeTranslation:
		status = http.StatusBadGateway
	case apperrors.ErrorTypeTimeout:
		status = http.StatusGatewayTimeout
	}

	message := "internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	respondWithJSON(w, status, map[string]string{
		"error": message,
		"type":  string(apperrors.TypeOf(err)),
	})
}
