// Package projects contributes project listing, lookup, and progress
// reporting to the MCP server, the CLI, and the resource browser.
package projects

import (
	"fmt"
	"time"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the projects domain module.
func New(client *translation.Client, version string) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("projects: translation client is required")
	}
	return registry.Module{
		Tools:     &toolProvider{client: client},
		Commands:  &commandProvider{client: client},
		Resources: &resourceProvider{client: client},
		Meta: &registry.Meta{
			Name:             "projects",
			Description:      "Localization projects: listing, lookup, and translation progress",
			Version:          version,
			ToolsCount:       3,
			CLICommandsCount: 1,
			ResourcesCount:   2,
		},
	}, nil
}
