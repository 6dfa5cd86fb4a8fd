package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultHTTPAddr = "localhost:8081"

	// shutdownTimeout bounds graceful HTTP shutdown so a stuck client
	// cannot hold the process open.
	shutdownTimeout = 10 * time.Second
)

// serveHTTP serves the MCP server over streamable HTTP until the context is
// cancelled, then shuts down gracefully.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = defaultHTTPAddr
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/healthz", s.handleHealthz)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown MCP http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP http: %w", err)
	}
}

// handleHealthz reports process liveness and the domain load count.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","domains_loaded":%d,"domains_total":%d}`+"\n",
		s.registry.LoadedCount(), s.registry.Len())
}
