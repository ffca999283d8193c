package routes

import (
	"net/http"

	"github.com/gradtohired/talentsearch/internal/api/handlers"
	"github.com/gradtohired/talentsearch/internal/api/middleware"
	"github.com/gradtohired/talentsearch/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux           *http.ServeMux
	searchHandler *handlers.SearchHandler
	metrics       *observability.Metrics
	healthCheck   func() error
}

// NewRouter creates a new router. healthCheck may be nil.
func NewRouter(searchHandler *handlers.SearchHandler, metrics *observability.Metrics, healthCheck func() error) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		searchHandler: searchHandler,
		metrics:       metrics,
		healthCheck:   healthCheck,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		if r.healthCheck != nil {
			if err := r.healthCheck(); err != nil {
				http.Error(w, "warehouse unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoints
	r.mux.HandleFunc("POST /api/v1/search/translate", r.searchHandler.TranslateQuery)
	r.mux.HandleFunc("POST /api/v1/search/compile", r.searchHandler.CompileQuery)
	r.mux.HandleFunc("POST /api/v1/search/run", r.searchHandler.RunSearch)
	r.mux.HandleFunc("GET /api/v1/search/examples", r.searchHandler.ListExamples)

	// Export endpoints
	r.mux.HandleFunc("POST /api/v1/search/export/csv", r.searchHandler.ExportCSV)
	r.mux.HandleFunc("POST /api/v1/search/export/xlsx", r.searchHandler.ExportExcel)
	r.mux.HandleFunc("POST /api/v1/search/export/summary", r.searchHandler.ExportSummary)

	// Middleware applies in reverse order; CORS outermost so every response
	// carries the headers
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
