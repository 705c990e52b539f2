// Package server exposes the glossary and the feedback form over HTTP:
// a JSON API, a server-rendered result page, and Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesh-intelligence/glossary/internal/feedback"
	"github.com/mesh-intelligence/glossary/internal/filter"
	"github.com/mesh-intelligence/glossary/internal/render"
	"github.com/mesh-intelligence/glossary/pkg/types"
)

// maxRequestBodySize limits POST body sizes.
const maxRequestBodySize = 1 << 20 // 1 MB

// pageTitle heads the HTML result page.
const pageTitle = "Glossary"

// Options configures a Server. Zero values select defaults.
type Options struct {
	// Style is the result style of the HTML page.
	Style string

	// Logger receives request logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Registry collects the server's metrics. Defaults to a fresh
	// registry so several servers can coexist in tests.
	Registry *prometheus.Registry
}

// Server serves one loaded glossary and one feedback submitter.
type Server struct {
	glossary  types.Glossary
	submitter *feedback.Submitter
	style     string
	logger    *slog.Logger
	registry  *prometheus.Registry
	metrics   *metrics
}

// New returns a Server over g that records feedback through sub.
func New(g types.Glossary, sub *feedback.Submitter, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		glossary:  g,
		submitter: sub,
		style:     opts.Style,
		logger:    opts.Logger,
		registry:  opts.Registry,
		metrics:   newMetrics(opts.Registry),
	}
	s.metrics.entries.Set(float64(len(g.Entries())))
	return s
}

// Handler returns a mux with every route registered at the root.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterHTTPHandlers("", mux)
	return mux
}

// RegisterHTTPHandlers registers all handlers under the given prefix.
// Handlers are registered as:
//
//	GET  <prefix>/
//	GET  <prefix>/api/sources
//	GET  <prefix>/api/categories?source=
//	GET  <prefix>/api/entries?source=&keyword=
//	POST <prefix>/api/feedback
//	GET  <prefix>/metrics
func (s *Server) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	mux.Handle(prefix+"/{$}", s.instrument("/", s.handlePage))
	mux.Handle(prefix+"/api/sources", s.instrument("/api/sources", s.handleSources))
	mux.Handle(prefix+"/api/categories", s.instrument("/api/categories", s.handleCategories))
	mux.Handle(prefix+"/api/entries", s.instrument("/api/entries", s.handleEntries))
	mux.Handle(prefix+"/api/feedback", s.instrument("/api/feedback", s.handleFeedback))
	mux.Handle(prefix+"/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// instrument counts and logs every request to route.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		h(rec, r)
		s.metrics.requests.WithLabelValues(route, rec.code()).Inc()
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("status", rec.code()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

// query reads the source and keyword parameters. "None" means unset.
func query(r *http.Request) filter.Query {
	v := r.URL.Query()
	return filter.NewQuery(v.Get("source"), v.Get("keyword"))
}

// handlePage renders the HTML result page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := query(r)
	sources := s.glossary.Sources()
	page := render.Page{
		Title:      pageTitle,
		Style:      s.style,
		Sources:    sources,
		Categories: s.glossary.Categories(q.Source),
		Source:     q.Source,
		Keyword:    q.Keyword,
		Entries:    s.glossary.Filter(q.Source, q.Keyword),
	}
	if q.IsZero() {
		page.Info = render.NoFiltersInfo(sources)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, page); err != nil {
		s.logger.Error("render page failed", slog.String("error", err.Error()))
	}
}

// handleSources returns the sorted distinct Source values.
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.glossary.Sources()))
}

// handleCategories returns the keyword options for the source parameter.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(s.glossary.Categories(query(r).Source)))
}

// handleEntries returns the entries matching the source and keyword
// parameters.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := query(r)
	entries := s.glossary.Filter(q.Source, q.Keyword)
	if entries == nil {
		entries = []types.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// FeedbackRequest is the request body for POST /api/feedback.
type FeedbackRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// handleFeedback validates and appends one submission.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := s.submitter.Submit(req.Name, req.Text)
	switch {
	case err == nil:
		s.metrics.submissions.WithLabelValues(outcomeOK).Inc()
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, types.ErrWriteFailure):
		s.metrics.submissions.WithLabelValues(outcomeError).Inc()
		writeJSON(w, http.StatusInternalServerError, res)
	default:
		s.metrics.submissions.WithLabelValues(outcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, res)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
