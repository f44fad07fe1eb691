// Package server is the HTTP API: a chi router over the assistant.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/faqbot/internal/app"
	"github.com/alexanderramin/faqbot/internal/config"
)

// SessionHeader carries the session id in both directions.
const SessionHeader = "X-Session-ID"

// ErrMissingAssistant is returned when Deps has no assistant.
var ErrMissingAssistant = errors.New("server: assistant is required")

// Deps are the collaborators the handlers call.
type Deps struct {
	Assistant app.Assistant
	Network   app.NetworkStatusUseCase // optional; /api/network is absent without it
	MCP       http.Handler             // optional; mounted at /mcp
	Log       zerolog.Logger
}

// Server is the HTTP server.
type Server struct {
	cfg     config.ServerConfig
	deps    Deps
	handler http.Handler
}

// New builds the server and its routes.
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Assistant == nil {
		return nil, ErrMissingAssistant
	}
	s := &Server{cfg: cfg, deps: deps}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(s.deps.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", SessionHeader, "Mcp-Session-Id"},
		ExposedHeaders: []string{SessionHeader, "Mcp-Session-Id"},
	}).Handler)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))
		}
		r.Get("/greet", s.handleGreet)
		r.Post("/chat", s.handleChat)
		r.Post("/farewell", s.handleFarewell)
		r.Get("/sessions/{id}/history", s.handleHistory)
		r.Delete("/sessions/{id}", s.handleReset)
		if s.deps.Network != nil {
			r.Get("/network", s.handleNetwork)
		}
	})

	if s.deps.MCP != nil {
		r.Handle("/mcp", s.deps.MCP)
		r.Handle("/mcp/*", s.deps.MCP)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Log.Info().Str("addr", srv.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.deps.Log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GracefulShutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
