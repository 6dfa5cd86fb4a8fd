package projects

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

type toolProvider struct {
	client *translation.Client
}

func (p *toolProvider) RegisterTools(host registry.ToolHost) error {
	if err := registry.AddTool(host, projectListTool(), projectListHandler(p.client)); err != nil {
		return err
	}
	if err := registry.AddTool(host, projectGetTool(), projectGetHandler(p.client)); err != nil {
		return err
	}
	return registry.AddTool(host, projectProgressTool(), projectProgressHandler(p.client))
}

// ProjectListInput is the MCP tool input for project listing.
type ProjectListInput struct{}

// ProjectEntry is one project in a listing or lookup result.
type ProjectEntry struct {
	ID                int64    `json:"id" jsonschema:"project identifier"`
	Name              string   `json:"name" jsonschema:"project name"`
	Identifier        string   `json:"identifier" jsonschema:"project slug"`
	SourceLanguageID  string   `json:"source_language_id" jsonschema:"source language"`
	TargetLanguageIDs []string `json:"target_language_ids" jsonschema:"target languages"`
	CreatedAt         string   `json:"created_at,omitempty" jsonschema:"RFC3339 timestamp"`
}

// ProjectListResult is the MCP tool output for project listing.
type ProjectListResult struct {
	Projects []ProjectEntry `json:"projects" jsonschema:"projects visible to the token"`
}

// ProjectGetInput is the MCP tool input for project lookup.
type ProjectGetInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

// ProjectGetResult is the MCP tool output for project lookup.
type ProjectGetResult struct {
	Project ProjectEntry `json:"project" jsonschema:"the requested project"`
}

// ProjectProgressInput is the MCP tool input for progress reporting.
type ProjectProgressInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

// LanguageProgressEntry is per-language progress for one target language.
type LanguageProgressEntry struct {
	LanguageID          string `json:"language_id" jsonschema:"target language"`
	TranslationProgress int    `json:"translation_progress" jsonschema:"percent translated"`
	ApprovalProgress    int    `json:"approval_progress" jsonschema:"percent approved"`
	WordsTotal          int    `json:"words_total" jsonschema:"total words"`
	WordsTranslated     int    `json:"words_translated" jsonschema:"translated words"`
}

// ProjectProgressResult is the MCP tool output for progress reporting.
type ProjectProgressResult struct {
	ProjectID int64                   `json:"project_id" jsonschema:"project identifier"`
	Languages []LanguageProgressEntry `json:"languages" jsonschema:"per-language progress"`
}

func projectListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_list",
		Description: "Lists localization projects visible to the configured token",
	}
}

func projectGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_get",
		Description: "Fetches one localization project by id",
	}
}

func projectProgressTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_progress",
		Description: "Reports per-language translation progress for a project",
	}
}

func projectListHandler(client *translation.Client) mcp.ToolHandlerFor[ProjectListInput, ProjectListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ProjectListInput) (*mcp.CallToolResult, ProjectListResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		projects, err := client.ListProjects(callCtx)
		if err != nil {
			return nil, ProjectListResult{}, fmt.Errorf("project list failed: %w", err)
		}

		result := ProjectListResult{Projects: make([]ProjectEntry, 0, len(projects))}
		for _, project := range projects {
			result.Projects = append(result.Projects, toProjectEntry(project))
		}
		return nil, result, nil
	}
}

func projectGetHandler(client *translation.Client) mcp.ToolHandlerFor[ProjectGetInput, ProjectGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectGetInput) (*mcp.CallToolResult, ProjectGetResult, error) {
		if input.ProjectID <= 0 {
			return nil, ProjectGetResult{}, fmt.Errorf("project_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		project, err := client.GetProject(callCtx, input.ProjectID)
		if err != nil {
			return nil, ProjectGetResult{}, fmt.Errorf("project get failed: %w", err)
		}
		return nil, ProjectGetResult{Project: toProjectEntry(project)}, nil
	}
}

func projectProgressHandler(client *translation.Client) mcp.ToolHandlerFor[ProjectProgressInput, ProjectProgressResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectProgressInput) (*mcp.CallToolResult, ProjectProgressResult, error) {
		if input.ProjectID <= 0 {
			return nil, ProjectProgressResult{}, fmt.Errorf("project_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		progress, err := client.ProjectProgress(callCtx, input.ProjectID)
		if err != nil {
			return nil, ProjectProgressResult{}, fmt.Errorf("project progress failed: %w", err)
		}

		result := ProjectProgressResult{ProjectID: input.ProjectID}
		for _, language := range progress {
			result.Languages = append(result.Languages, LanguageProgressEntry{
				LanguageID:          language.LanguageID,
				TranslationProgress: language.TranslationProgress,
				ApprovalProgress:    language.ApprovalProgress,
				WordsTotal:          language.Words.Total,
				WordsTranslated:     language.Words.Translated,
			})
		}
		return nil, result, nil
	}
}

func toProjectEntry(project translation.Project) ProjectEntry {
	return ProjectEntry{
		ID:                project.ID,
		Name:              project.Name,
		Identifier:        project.Identifier,
		SourceLanguageID:  project.SourceLanguageID,
		TargetLanguageIDs: project.TargetLanguageIDs,
		CreatedAt:         project.CreatedAt,
	}
}
