// Package cli parses CLI configuration and runs the command-line program.
package cli

import (
	"context"
	"log"
	"time"

	"github.com/localizer-dev/localizer/internal/platform/config"
	"github.com/localizer-dev/localizer/internal/platform/otel"
	servicecli "github.com/localizer-dev/localizer/internal/services/cli"
	"github.com/localizer-dev/localizer/internal/translation"
)

// Config holds CLI configuration.
type Config struct {
	APIToken   string `env:"LOCALIZER_API_TOKEN"`
	APIBaseURL string `env:"LOCALIZER_API_BASE_URL"`
}

// ParseConfig loads CLI configuration from the environment. Command
// arguments belong to cobra, so there is no flag overlay here.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the program and executes it with the given arguments.
func Run(ctx context.Context, cfg Config, args []string) error {
	shutdown, err := otel.Setup(ctx, "cli")
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

	client, err := translation.NewClient(translation.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
	})
	if err != nil {
		return err
	}

	program, err := servicecli.New(client)
	if err != nil {
		return err
	}
	program.SetArgs(args)
	return program.ExecuteContext(ctx)
}
