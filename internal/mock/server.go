package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	maxResults = 5000
	apiVersion = "1.4"
)

// Server exposes a Generator over HTTP in the randomuser.me response shape.
type Server struct {
	gen            *Generator
	log            *zap.Logger
	defaultResults int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithDefaultResults sets how many users a request without results=N gets.
// The default is 1, as on randomuser.me.
func WithDefaultResults(n int) ServerOption {
	return func(s *Server) {
		if n > 0 && n <= maxResults {
			s.defaultResults = n
		}
	}
}

// NewServer creates a server for gen. A nil logger discards output.
func NewServer(gen *Generator, log *zap.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{gen: gen, log: log, defaultResults: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Info mirrors the randomuser.me "info" block.
type Info struct {
	Seed    string `json:"seed"`
	Results int    `json:"results"`
	Page    int    `json:"page"`
	Version string `json:"version"`
}

type usersResponse struct {
	Results []User `json:"results"`
	Info    Info   `json:"info"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router returns the HTTP handler for the mock API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(securityHeaders)
	r.Use(s.requestLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/api", s.handleUsers)
	r.Get("/api/", s.handleUsers)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	n, err := intParam(q.Get("results"), s.defaultResults)
	if err != nil || n < 1 || n > maxResults {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("results must be between 1 and %d", maxResults))
		return
	}
	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		s.writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	seed := q.Get("seed")
	if seed == "" {
		seed = s.gen.DefaultSeed()
	}

	writeJSON(w, http.StatusOK, usersResponse{
		Results: s.gen.Users(seed, page, n),
		Info:    Info{Seed: seed, Results: n, Page: page, Version: apiVersion},
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.log.Info("rejected request", zap.Int("status", status), zap.String("reason", msg))
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// securityHeaders sets standard security headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mock user API listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("mock user API stopped")
	return nil
}
