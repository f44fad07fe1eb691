// Package mcpserver exposes the assistant as MCP tools so other AI clients
// can ask it questions.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alexanderramin/faqbot/internal/app"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ErrMissingAssistant is returned when no assistant is provided.
var ErrMissingAssistant = errors.New("mcpserver: assistant is required")

// Server is the MCP server for faqbot.
type Server struct {
	assistant app.Assistant
	network   app.NetworkStatusUseCase
	server    *mcp.Server
}

// NewServer creates an MCP server. network may be nil, in which case the
// network_status tool is not registered.
func NewServer(assistant app.Assistant, network app.NetworkStatusUseCase) (*Server, error) {
	if assistant == nil {
		return nil, ErrMissingAssistant
	}

	impl := &mcp.Implementation{
		Name:    "faqbot",
		Version: Version,
	}

	s := &Server{
		assistant: assistant,
		network:   network,
		server:    mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler, for mounting on a router.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is done.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp http server: %w", err)
	}
	return nil
}
