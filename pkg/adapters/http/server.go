package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/tessera"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/aretw0/tessera/pkg/domain"
	"github.com/aretw0/tessera/pkg/editor"
	"github.com/aretw0/tessera/pkg/markup"
	"github.com/aretw0/tessera/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server exposes a session.Manager over HTTP. It is the UI collaborator's
// only way into the layout core.
type Server struct {
	Sessions *session.Manager
	Logger   *slog.Logger
	// MaxContentSize is the leaf text limit the sessions enforce.
	MaxContentSize int
}

// Option configures the handler.
type Option func(*Server)

// WithMaxContentSize matches the body limit of content edits to the editor's
// leaf text limit.
func WithMaxContentSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.MaxContentSize = n
		}
	}
}

// contentBodyLimit bounds a content request body. A JSON-escaped byte takes
// at most six bytes (\u00XX), plus room for the envelope.
func (s *Server) contentBodyLimit() int64 {
	return int64(s.MaxContentSize)*6 + 1024
}

// DropRequest is the body of POST /sessions/{sessionID}/drops.
type DropRequest struct {
	NodeID domain.NodeID `json:"node_id"`
	Module string        `json:"module"`
}

// ContentRequest is the body of PUT .../content.
type ContentRequest struct {
	Content string `json:"content"`
}

// SessionResponse is returned on session creation.
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	Layout    domain.NodeView `json:"layout"`
}

// NewHandler creates the HTTP handler. A nil logger discards logs.
// Without WithMaxContentSize the editor default limit is assumed.
func NewHandler(sessions *session.Manager, logger *slog.Logger, opts ...Option) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{Sessions: sessions, Logger: logger, MaxContentSize: editor.DefaultMaxContentSize}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/modules", s.ListModules)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/reset", s.ResetSession)
			r.Post("/drops", s.DropModule)
			r.Get("/nodes/{nodeID}/accepts", s.CanAccept)
			r.Put("/nodes/{nodeID}/content", s.SetContent)
			r.Get("/export", s.ExportMarkup)
			r.Get("/events", s.SubscribeEvents)
		})
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

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.Logger.Error("Failed to load OpenAPI spec", "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "tessera-http",
		"version":     strings.TrimSpace(tessera.Version),
		"api_version": apiVersion,
	})
}

// ListModules handles the GET /modules request.
func (s *Server) ListModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Catalog())
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	view, err := s.Sessions.View(r.Context(), id)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: id, Layout: view})
}

// GetSession handles the GET /sessions/{sessionID} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.View(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles the DELETE /sessions/{sessionID} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession handles the POST /sessions/{sessionID}/reset request.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.Sessions.Reset(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.fail(w, "ResetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// DropModule handles the POST /sessions/{sessionID}/drops request.
// The drop policy is evaluated again here, whatever the client saw on drag-over.
func (s *Server) DropModule(w http.ResponseWriter, r *http.Request) {
	var body DropRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		s.Logger.Warn("DropModule: Invalid request body", "err", err)
		return
	}
	if body.NodeID == "" || body.Module == "" {
		writeError(w, http.StatusBadRequest, "node_id and module are required")
		return
	}

	view, err := s.Sessions.Drop(r.Context(), chi.URLParam(r, "sessionID"), body.NodeID, body.Module)
	if err != nil {
		s.fail(w, "DropModule", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CanAccept handles the GET .../nodes/{nodeID}/accepts request (drag-over).
func (s *Server) CanAccept(w http.ResponseWriter, r *http.Request) {
	module := r.URL.Query().Get("module")
	if module == "" {
		writeError(w, http.StatusBadRequest, "module query parameter is required")
		return
	}
	ok, err := s.Sessions.CanAccept(r.Context(), chi.URLParam(r, "sessionID"), domain.NodeID(chi.URLParam(r, "nodeID")), module)
	if err != nil {
		s.fail(w, "CanAccept", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"accept": ok})
}

// SetContent handles the PUT .../nodes/{nodeID}/content request.
func (s *Server) SetContent(w http.ResponseWriter, r *http.Request) {
	var body ContentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.contentBodyLimit())).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, domain.ErrContentTooLarge.Error())
			s.Logger.Debug("SetContent: body too large", "limit", tooLarge.Limit)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		s.Logger.Warn("SetContent: Invalid request body", "err", err)
		return
	}

	view, err := s.Sessions.SetContent(r.Context(), chi.URLParam(r, "sessionID"), domain.NodeID(chi.URLParam(r, "nodeID")), body.Content)
	if err != nil {
		s.fail(w, "SetContent", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ExportMarkup handles the GET /sessions/{sessionID}/export request.
func (s *Server) ExportMarkup(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	out, err := s.Sessions.Export(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "ExportMarkup", err)
		return
	}
	if doc, _ := strconv.ParseBool(r.URL.Query().Get("document")); doc {
		out = markup.Page(out, "Layout "+sessionID)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

// SubscribeEvents handles the GET /sessions/{sessionID}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.Sessions.View(r.Context(), sessionID); err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}

	ch, cancel, err := s.Sessions.Subscribe(r.Context(), sessionID)
	if err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.Logger.Info("SSE: Subscribing to layout events", "session_id", sessionID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRejectedDrop),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidOperation):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownModule),
		errors.Is(err, domain.ErrInvalidModule),
		errors.Is(err, domain.ErrInvalidContent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrContentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrNoEventBus):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Debug(op+" declined", "err", err, "status", status)
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
