// Package domains declares every business domain known to the build and the
// shared collaborators injected into their factories. Discovery iterates
// this static catalog; adding a domain means adding one descriptor here.
package domains

import (
	"github.com/localizer-dev/localizer/internal/domains/files"
	"github.com/localizer-dev/localizer/internal/domains/glossaries"
	"github.com/localizer-dev/localizer/internal/domains/languages"
	"github.com/localizer-dev/localizer/internal/domains/projects"
	"github.com/localizer-dev/localizer/internal/domains/tasks"
	"github.com/localizer-dev/localizer/internal/domains/translations"
	"github.com/localizer-dev/localizer/internal/domains/usergroups"
	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

// Deps carries the collaborators injected into every domain factory. The
// translation client is constructed once at startup; domains never reach for
// global state.
type Deps struct {
	Client  *translation.Client
	Version string
}

// Catalog returns the descriptor of every domain in the build.
func Catalog(deps Deps) []registry.Descriptor {
	return []registry.Descriptor{
		{
			Name: "projects",
			Path: "internal/domains/projects",
			New:  func() (registry.Module, error) { return projects.New(deps.Client, deps.Version) },
		},
		{
			Name: "files",
			Path: "internal/domains/files",
			New:  func() (registry.Module, error) { return files.New(deps.Client, deps.Version) },
		},
		{
			Name: "translations",
			Path: "internal/domains/translations",
			New:  func() (registry.Module, error) { return translations.New(deps.Client, deps.Version) },
		},
		{
			Name: "languages",
			Path: "internal/domains/languages",
			New:  func() (registry.Module, error) { return languages.New(deps.Client, deps.Version) },
		},
		{
			Name: "tasks",
			Path: "internal/domains/tasks",
			New:  func() (registry.Module, error) { return tasks.New(deps.Client, deps.Version) },
		},
		{
			Name: "usergroups",
			Path: "internal/domains/usergroups",
			New:  func() (registry.Module, error) { return usergroups.New(deps.Client, deps.Version) },
		},
		{
			Name: "glossaries",
			Path: "internal/domains/glossaries",
			New:  func() (registry.Module, error) { return glossaries.New(deps.Client) },
		},
	}
}
