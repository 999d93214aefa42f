// Package chi exposes the chatbot over HTTP using the chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/menurag"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Server defaults.
const (
	DefaultSearchK  = 5
	MaxSearchK      = 100
	ShutdownTimeout = 10 * time.Second
)

// Server serves the question answering and search API.
type Server struct {
	asker     menurag.Asker
	retriever menurag.Retriever
	logger    *slog.Logger
	router    chi.Router

	// BuildID identifies the loaded index in health responses.
	BuildID string
}

// NewServer creates a Server and registers its routes.
func NewServer(asker menurag.Asker, retriever menurag.Retriever, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		asker:     asker,
		retriever: retriever,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(logger))
	r.Get("/healthz", s.handleHealth)
	r.Post("/ask", s.handleAsk)
	r.Get("/search", s.handleSearch)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully, waiting up to ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// SearchResponse is the body returned by GET /search.
type SearchResponse struct {
	Query   string           `json:"query"`
	Results []menurag.Result `json:"results"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"build_id": s.BuildID,
	})
}

// handleAsk handles POST /ask.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, menurag.Errorf(menurag.EINVALID, "invalid request body: %v", err))
		return
	}

	answer, err := s.asker.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// handleSearch handles GET /search?q=...&k=....
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, menurag.Errorf(menurag.EINVALID, "query parameter q required"))
		return
	}

	k := DefaultSearchK
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxSearchK {
			s.writeError(w, menurag.Errorf(menurag.EINVALID, "k must be between 1 and %d", MaxSearchK))
			return
		}
		k = n
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Results: s.retriever.Retrieve(r.Context(), query, k),
	})
}

// writeError maps an application error code to an HTTP status. Internal
// error details are logged, not returned.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := menurag.ErrorCode(err)
	message := menurag.ErrorMessage(err)
	if code == menurag.EINTERNAL {
		s.logger.Error("request failed", "err", err)
		message = "Internal error."
	}
	writeJSON(w, statusFor(code), ErrorResponse{Code: code, Message: message})
}

func statusFor(code string) int {
	switch code {
	case menurag.EINVALID:
		return http.StatusBadRequest
	case menurag.ENOTFOUND:
		return http.StatusNotFound
	case menurag.ECONFLICT:
		return http.StatusConflict
	case menurag.EMALFORMED:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
