// Package service hosts the MCP server. It builds the domain registry,
// composes tool and resource registrations onto the protocol server, and
// serves the result over stdio or HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localizer-dev/localizer/internal/domains"
	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Localizer MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.2.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport. Defaults to
	// localhost:8081 so the server is not exposed beyond the local host
	// without an explicit decision.
	HTTPAddr string
	API      translation.Config
}

// Server hosts the MCP server together with the domain registry and the
// composition report that produced it.
type Server struct {
	mcpServer *mcp.Server
	registry  *registry.Registry
	report    []registry.Row
}

// New builds the translation client, discovers and loads every domain, and
// composes their tools and resources onto a fresh MCP server. Per-domain
// failures are recorded and logged; only a name collision or a client
// configuration error aborts startup.
func New(cfg Config) (*Server, error) {
	client, err := translation.NewClient(cfg.API)
	if err != nil {
		return nil, fmt.Errorf("configure translation client: %w", err)
	}
	return newServer(client)
}

func newServer(client *translation.Client) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	catalog := domains.Catalog(domains.Deps{Client: client, Version: serverVersion})
	reg, err := registry.Build(registry.Discover(catalog))
	if err != nil {
		return nil, fmt.Errorf("build domain registry: %w", err)
	}

	toolRows, err := registry.ComposeTools(reg, mcpServer)
	if err != nil {
		return nil, fmt.Errorf("compose tools: %w", err)
	}
	resourceRows, err := registry.ComposeResources(reg, mcpServer)
	if err != nil {
		return nil, fmt.Errorf("compose resources: %w", err)
	}

	report := append(toolRows, resourceRows...)
	log.Printf("%s", registry.Summarize(reg, report))
	for _, entry := range reg.Entries() {
		if !entry.Loaded {
			log.Printf("domain %s failed to load: %s", entry.Name, entry.Err)
		}
	}

	return &Server{mcpServer: mcpServer, registry: reg, report: report}, nil
}

// Registry returns the immutable domain registry built at startup.
func (s *Server) Registry() *registry.Registry { return s.registry }

// Report returns the composition report rows for diagnostics.
func (s *Server) Report() []registry.Row {
	rows := make([]registry.Row, len(s.report))
	copy(rows, s.report)
	return rows
}

// Run is the service entrypoint and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(cfg)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// serveWithTransport starts the MCP server on the given transport. Context
// cancellation is the normal shutdown path, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// completionHandler answers completion/complete with empty results. The
// protocol requires a response; argument completion over remote API state is
// not implemented.
func completionHandler(_ context.Context, _ *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// resourceSubscribeHandler accepts resource subscriptions with a valid URI.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// resourceUnsubscribeHandler accepts resource unsubscriptions with a valid URI.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}
