// Package httpapi exposes the assistant over HTTP: the turn endpoint, a
// health check, permissive CORS for the bundled frontend, and static
// file serving. No decision logic lives here.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/aria-chat/aria/pkg/assistant"
	"github.com/aria-chat/aria/pkg/completion"
)

// turnTimeout bounds one full turn, including a possible rescue search
// and second completion.
const turnTimeout = 60 * time.Second

// TurnHandler is the assistant surface the API needs. Tests inject fakes.
type TurnHandler interface {
	Respond(ctx context.Context, req assistant.TurnRequest) (*assistant.TurnResult, error)
}

// ChatRequest is the turn endpoint's input.
type ChatRequest struct {
	Message      string               `json:"message"`
	History      []completion.Message `json:"history"`
	EnableSearch *bool                `json:"enableSearch"`
}

// ChatResponse is the turn endpoint's success output.
type ChatResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Model   string                    `json:"model"`
	Usage   completion.Usage          `json:"usage"`
	Search  *assistant.SearchMetadata `json:"search,omitempty"`
}

// ErrorResponse is the shape of every failure the API returns.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Server wires the assistant into a chi router.
type Server struct {
	turns     TurnHandler
	staticDir string
	log       zerolog.Logger
}

// NewServer builds the HTTP layer. staticDir may be empty to disable
// frontend serving.
func NewServer(turns TurnHandler, staticDir string, log zerolog.Logger) *Server {
	return &Server{
		turns:     turns,
		staticDir: staticDir,
		log:       log.With().Str("component", "httpapi").Logger(),
	}
}

// Router assembles the route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(corsMiddleware)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.handleHealth)
		api.Post("/chat", s.handleChat)
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "API endpoint not found"})
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		})
	})

	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body", Details: err.Error()})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Message is required"})
		return
	}

	enableSearch := true
	if req.EnableSearch != nil {
		enableSearch = *req.EnableSearch
	}

	ctx, cancel := context.WithTimeout(r.Context(), turnTimeout)
	defer cancel()

	result, err := s.turns.Respond(ctx, assistant.TurnRequest{
		Message:      req.Message,
		History:      req.History,
		EnableSearch: enableSearch,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		s.log.Error().Err(err).Msg("Turn failed")
		writeJSON(w, status, ErrorResponse{Error: "Failed to generate response", Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		Message: result.Reply,
		Model:   result.Model,
		Usage:   result.Usage,
		Search:  result.Search,
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,OPTIONS,POST")
		h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, X-Requested-With")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
