// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/localizer-dev/localizer/internal/platform/config"
	"github.com/localizer-dev/localizer/internal/platform/otel"
	"github.com/localizer-dev/localizer/internal/services/mcp/service"
	"github.com/localizer-dev/localizer/internal/translation"
)

// Config holds MCP command configuration.
type Config struct {
	Transport  string `env:"LOCALIZER_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr   string `env:"LOCALIZER_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	APIToken   string `env:"LOCALIZER_API_TOKEN"`
	APIBaseURL string `env:"LOCALIZER_API_BASE_URL"`
}

// ParseConfig parses environment and flags into a Config. Flags override
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "translation API base URL")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
		API: translation.Config{
			BaseURL: cfg.APIBaseURL,
			Token:   cfg.APIToken,
		},
	})
}
