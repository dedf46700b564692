package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/internal/logging"
	"github.com/aretw0/powerset/internal/presentation/graph"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/schema"
	"github.com/aretw0/powerset/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps request bodies; automata past this size are rejected.
const maxBodyBytes = 1 << 20

// Server exposes conversion, sessions and the catalog over HTTP.
type Server struct {
	Converter *powerset.Converter
	Sessions  *session.Manager

	logger  *slog.Logger
	metrics http.Handler
	newID   func() string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler replaces the default promhttp handler served on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithIDGenerator overrides how new session IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Server) {
		s.newID = fn
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(conv *powerset.Converter, sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Converter: conv,
		Sessions:  sessions,
		logger:    logging.NewNop(),
		metrics:   promhttp.Handler(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Handle("/metrics", s.metrics)

	r.Post("/convert", s.Convert)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/convert", s.ConvertSession)
			r.Get("/graph", s.GetSessionGraph)
			r.Post("/reset", s.ResetSession)
		})
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.ListCatalog)
		r.Get("/{name}", s.GetCatalogEntry)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"name":    "powerset",
		"version": strings.TrimSpace(powerset.Version),
	})
}

// Convert handles POST /convert. It is stateless.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	name, nfa, err := s.decodeAutomaton(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.Converter.Convert(r.Context(), nfa)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newConvertResponse(name, res.DFA, res.Trace))
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.LoadOrStart(r.Context(), s.newID())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session created", "session_id", sess.ID)
	w.Header().Set("Location", "/sessions/"+sess.ID)
	s.writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConvertSession handles POST /sessions/{id}/convert.
func (s *Server) ConvertSession(w http.ResponseWriter, r *http.Request) {
	name, nfa, err := s.decodeAutomaton(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.Sessions.Convert(r.Context(), chi.URLParam(r, "id"), name, nfa)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

// GetSessionGraph handles GET /sessions/{id}/graph?format=mermaid|dot.
// Rendering moves the session to the displaying phase.
func (s *Server) GetSessionGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "mermaid"
	}
	if format != "mermaid" && format != "dot" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown format %q", format)})
		return
	}

	sess, err := s.Sessions.Display(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var out string
	if format == "dot" {
		out = graph.GenerateDOT(sess.DFA, "DFA_"+sess.Name)
	} else {
		out = graph.GenerateMermaid(sess.DFA, nil)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

// ListCatalog handles GET /catalog.
func (s *Server) ListCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := s.Converter.Catalog()
	if catalog == nil {
		s.writeError(w, r, powerset.ErrNoCatalog)
		return
	}
	names, err := catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"definitions": names})
}

// GetCatalogEntry handles GET /catalog/{name}.
func (s *Server) GetCatalogEntry(w http.ResponseWriter, r *http.Request) {
	catalog := s.Converter.Catalog()
	if catalog == nil {
		s.writeError(w, r, powerset.ErrNoCatalog)
		return
	}
	def, err := catalog.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

var errBadRequest = errors.New("bad request")

// decodeAutomaton reads a ConvertRequest and resolves it to a validated NFA.
func (s *Server) decodeAutomaton(w http.ResponseWriter, r *http.Request) (string, *domain.Automaton, error) {
	var body ConvertRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.logger.Warn("Invalid request body", "err", err)
		return "", nil, fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}

	set := 0
	for _, present := range []bool{body.Definition != nil, body.Source != "", body.Catalog != ""} {
		if present {
			set++
		}
	}
	if set != 1 {
		return "", nil, fmt.Errorf("%w: exactly one of definition, source or catalog is required", errBadRequest)
	}

	var def *schema.Definition
	switch {
	case body.Definition != nil:
		def = body.Definition
	case body.Source != "":
		parsed, err := parser.New().ParseBytes([]byte(body.Source))
		if err != nil {
			return "", nil, err
		}
		def = parsed
	default:
		catalog := s.Converter.Catalog()
		if catalog == nil {
			return "", nil, powerset.ErrNoCatalog
		}
		loaded, err := catalog.Get(r.Context(), body.Catalog)
		if err != nil {
			return "", nil, err
		}
		def = loaded
	}

	name := body.Name
	if name == "" {
		name = def.Name
	}
	nfa, err := def.ToAutomaton()
	if err != nil {
		return "", nil, err
	}
	return name, nfa, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps domain errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: err.Error()}

	var syntaxErr *parser.SyntaxError
	switch {
	case errors.Is(err, errBadRequest), errors.As(err, &syntaxErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrMalformedAutomaton):
		status = http.StatusUnprocessableEntity
		for _, me := range domain.MalformedErrors(err) {
			resp.Details = append(resp.Details, FieldError{Field: me.Field, ID: me.ID, Reason: me.Reason})
		}
	case errors.Is(err, domain.ErrUnboundedConstruction):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, ports.ErrDefinitionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrInvalidPhase):
		status = http.StatusConflict
	case errors.Is(err, powerset.ErrNoCatalog):
		status = http.StatusNotImplemented
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, resp)
}
