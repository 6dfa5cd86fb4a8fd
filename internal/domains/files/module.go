// Package files contributes source-file listing and lookup for a project.
package files

import (
	"fmt"
	"time"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the files domain module.
func New(client *translation.Client, version string) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("files: translation client is required")
	}
	return registry.Module{
		Tools:     &toolProvider{client: client},
		Commands:  &commandProvider{client: client},
		Resources: &resourceProvider{client: client},
		Meta: &registry.Meta{
			Name:             "files",
			Description:      "Translatable source files within projects",
			Version:          version,
			ToolsCount:       2,
			CLICommandsCount: 1,
			ResourcesCount:   1,
		},
	}, nil
}
