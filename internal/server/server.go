// Package server exposes the aggregation and composition pipeline over HTTP.
//
// Routes:
//
//	GET  /api/profile/{username}  aggregated profile record as JSON
//	POST /api/generate            {username, config} -> {markdown, assets}
//	GET  /api/proxy/image?url=    allowlisted image passthrough
//	GET  /healthz                 liveness probe
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	errs "github.com/lmoreno/readmegen/pkg/errors"
	"github.com/lmoreno/readmegen/pkg/profile"
	"github.com/lmoreno/readmegen/pkg/readme"
)

// ProfileFetcher assembles profile records. *profile.Builder satisfies it;
// tests substitute stubs.
type ProfileFetcher interface {
	Fetch(ctx context.Context, username string) (*profile.Profile, error)
}

// Server wires the aggregation pipeline and document composer to HTTP.
type Server struct {
	fetcher ProfileFetcher
	builder *readme.Builder
	proxy   *imageProxy
	logger  *log.Logger
}

// New creates a Server. If logger is nil, log.Default() is used.
func New(fetcher ProfileFetcher, builder *readme.Builder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		fetcher: fetcher,
		builder: builder,
		proxy:   newImageProxy(logger),
		logger:  logger,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/profile/{username}", s.handleProfile)
		r.Post("/generate", s.handleGenerate)
		r.Get("/proxy/image", s.proxy.handle)
	})
	return r
}

// requestLogger tags each request with an ID and logs method, path, and
// duration at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	p, err := s.fetcher.Fetch(r.Context(), username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type generateRequest struct {
	Username string         `json:"username"`
	Config   map[string]any `json:"config"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	p, err := s.fetcher.Fetch(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc := s.builder.Build(p, readme.ParseConfig(req.Config))
	writeJSON(w, http.StatusOK, doc)
}

type errorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errs.UserMessage(err), Code: errs.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
