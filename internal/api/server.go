// Package api implements the HTTP API for batch pattern generation.
//
// Three endpoints share one request shape and differ only in the point
// synthesis strategy:
//
//	POST /generate/jitter
//	POST /generate/sunflower
//	POST /generate/poisson
//
// Each request sweeps the cartesian product of its cell size and line
// width options, uploads every rendered artifact to the configured
// store, and responds with the public URLs. Jobs are tracked in the
// configured job store and can be polled at GET /jobs/{id}.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lumafab/agpattern/pkg/buildinfo"
	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/jobs"
	"github.com/lumafab/agpattern/pkg/pipeline"
	"github.com/lumafab/agpattern/pkg/storage"
)

// Server is the HTTP API server.
type Server struct {
	runner *pipeline.Runner
	store  storage.Store
	jobs   jobs.Store
	logger *log.Logger
	router chi.Router
}

// NewServer wires the API around a pipeline runner, artifact store, and
// job store. A nil job store falls back to in-memory tracking.
func NewServer(runner *pipeline.Runner, store storage.Store, jobStore jobs.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if jobStore == nil {
		jobStore = jobs.NewMemoryStore()
	}
	s := &Server{
		runner: runner,
		store:  store,
		jobs:   jobStore,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))
	r.Use(s.requestLogger)

	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)
	r.Post("/generate/jitter", s.handleGenerateJitter)
	r.Post("/generate/sunflower", s.handleGenerateSunflower)
	r.Post("/generate/poisson", s.handleGeneratePoisson)
	r.Get("/jobs/{id}", s.handleGetJob)
	return r
}

// requestLogger logs one line per request with timing.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "agpattern",
		"version": buildinfo.Version,
		"message": "POST /generate/{jitter|sunflower|poisson} to create patterns",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	rec, err := s.jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeError maps coded errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeJobNotFound) || errors.Is(err, errors.ErrCodeNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
