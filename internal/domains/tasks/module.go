// Package tasks contributes translation-task listing and creation.
package tasks

import (
	"fmt"
	"time"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the tasks domain module.
func New(client *translation.Client, version string) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("tasks: translation client is required")
	}
	return registry.Module{
		Tools:     &toolProvider{client: client},
		Commands:  &commandProvider{client: client},
		Resources: &resourceProvider{client: client},
		Meta: &registry.Meta{
			Name:             "tasks",
			Description:      "Translation and proofreading task management",
			Version:          version,
			ToolsCount:       2,
			CLICommandsCount: 1,
			ResourcesCount:   1,
		},
	}, nil
}
