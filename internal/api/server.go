// Package api serves a completed analysis over HTTP.
//
// The server is read-only: it holds one analyzed graph in memory and answers
// lookups against it. Reloading means re-running the pipeline and starting a
// new server.
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wikiflowhq/wikiflow/pkg/errors"
	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
	"github.com/wikiflowhq/wikiflow/pkg/observability"
	"github.com/wikiflowhq/wikiflow/pkg/pipeline"
	"github.com/wikiflowhq/wikiflow/pkg/store"
)

// DefaultTopN is how many entries /v1/top returns when n is not given.
const DefaultTopN = 10

// Server answers HTTP queries against one analyzed graph.
type Server struct {
	graph  *funcgraph.Graph
	cls    *funcgraph.Classification
	result *pipeline.Result
	target string
	runs   store.Store
	logger *log.Logger
}

// NewServer creates a server for an analyzed graph.
// If runs is nil, the run history endpoints return empty lists.
// If logger is nil, the default logger is used.
func NewServer(g *funcgraph.Graph, cls *funcgraph.Classification, result *pipeline.Result, target string, runs store.Store, logger *log.Logger) *Server {
	if runs == nil {
		runs = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		graph:  g,
		cls:    cls,
		result: result,
		target: target,
		runs:   runs,
		logger: logger,
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Get("/heat/{title}", s.handleHeat)
		r.Get("/distance/{title}", s.handleDistance)
		r.Get("/path/{title}", s.handlePath)
		r.Get("/top", s.handleTop)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})
	return r
}

// requestLogger logs each request and feeds the API observability hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statsResponse is the body of GET /v1/stats.
type statsResponse struct {
	RunID         string `json:"run_id"`
	GraphHash     string `json:"graph_hash"`
	Target        string `json:"target"`
	NodeCount     int    `json:"node_count"`
	EdgeCount     int    `json:"edge_count"`
	TerminalCount int    `json:"terminal_count"`
	CycleCount    int    `json:"cycle_count"`
	ReachedCount  int    `json:"reached_count"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		RunID:         s.result.RunID,
		GraphHash:     s.result.GraphHash,
		Target:        s.target,
		NodeCount:     s.result.Stats.NodeCount,
		EdgeCount:     s.result.Stats.EdgeCount,
		TerminalCount: s.result.Stats.TerminalCount,
		CycleCount:    s.result.Stats.CycleCount,
		ReachedCount:  s.result.Stats.ReachedCount,
	})
}

// heatResponse is the body of GET /v1/heat/{title}.
type heatResponse struct {
	Title    string `json:"title"`
	Heat     int    `json:"heat"`
	Terminal bool   `json:"terminal"`
	InCycle  bool   `json:"in_cycle"`
}

func (s *Server) handleHeat(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if !s.graph.Has(title) {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "unknown title %q", title))
		return
	}
	writeJSON(w, http.StatusOK, heatResponse{
		Title:    title,
		Heat:     s.result.Heat[title],
		Terminal: s.cls.Terminal(title),
		InCycle:  s.cls.InCycle(title),
	})
}

// distanceResponse is the body of GET /v1/distance/{title}.
type distanceResponse struct {
	Title     string `json:"title"`
	Target    string `json:"target"`
	Reachable bool   `json:"reachable"`
	Distance  int    `json:"distance,omitempty"`
}

func (s *Server) handleDistance(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if !s.graph.Has(title) {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "unknown title %q", title))
		return
	}
	dist, ok := s.result.Distances[title]
	writeJSON(w, http.StatusOK, distanceResponse{
		Title:     title,
		Target:    s.target,
		Reachable: ok,
		Distance:  dist,
	})
}

// pathResponse is the body of GET /v1/path/{title}.
type pathResponse struct {
	Title     string   `json:"title"`
	Target    string   `json:"target"`
	Reachable bool     `json:"reachable"`
	Path      []string `json:"path,omitempty"`
	Clicks    int      `json:"clicks"`
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if !s.graph.Has(title) {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "unknown title %q", title))
		return
	}
	path := funcgraph.Path(s.graph, s.result.Distances, title, s.target)
	clicks := 0
	if len(path) > 0 {
		clicks = len(path) - 1
	}
	writeJSON(w, http.StatusOK, pathResponse{
		Title:     title,
		Target:    s.target,
		Reachable: path != nil,
		Path:      path,
		Clicks:    clicks,
	})
}

// topEntry is one row of GET /v1/top.
type topEntry struct {
	Title string `json:"title"`
	Heat  int    `json:"heat"`
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	n := DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "n must be a positive integer"))
			return
		}
		n = parsed
	}

	entries := make([]topEntry, 0, len(s.result.Heat))
	for title, heat := range s.result.Heat {
		entries = append(entries, topEntry{Title: title, Heat: heat})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Heat != entries[j].Heat {
			return entries[i].Heat > entries[j].Heat
		}
		return entries[i].Title < entries[j].Title
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.runs.List(r.Context(), 20)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "list runs"))
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.runs.Get(r.Context(), id)
	if err == store.ErrNotFound {
		writeError(w, errors.New(errors.ErrCodeRunNotFound, "unknown run %q", id))
		return
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStore, err, "get run %s", id))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// errorResponse is the body of any non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNodeNotFound, errors.ErrCodeRunNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidEdges, errors.ErrCodeInvalidTarget, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
