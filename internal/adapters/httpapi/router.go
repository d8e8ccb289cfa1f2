package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	// CORSAllowedOrigins defaults to allow-all, matching the upstream
	// OCR frontend deployments that call this API from the browser.
	CORSAllowedOrigins []string

	// Middleware is mounted after the baseline set; this is the seam
	// where auth would go if the API ever stops being public.
	Middleware []func(http.Handler) http.Handler
}

// NewRouter constructs the API HTTP router with default options.
func NewRouter(s *Server) http.Handler {
	return NewRouterWithOptions(s, RouterOptions{})
}

// NewRouterWithOptions is intentionally a thin adapter:
// - this package wires routes/middleware and decodes/encodes JSON
// - all behavior lives in the application services
func NewRouterWithOptions(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Baseline production-safe middleware (minimal but useful).
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	for _, mw := range opts.Middleware {
		r.Use(mw)
	}

	// Health endpoint is deliberately plain text (used for infra checks).
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleRoot)
	r.Post("/upload", s.handleUpload)
	r.Post("/extract", s.handleExtract)
	r.Post("/extract/batch", s.handleExtractBatch)
	r.Get("/documents/{documentID}", s.handleGetDocument)
	r.Get("/extractions/{extractionID}", s.handleGetExtraction)
	r.Get("/templates", s.handleListTemplates)

	return r
}
