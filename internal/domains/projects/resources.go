package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

type resourceProvider struct {
	client *translation.Client
}

func (p *resourceProvider) RegisterResources(host registry.ResourceHost) error {
	if err := host.AddResource(projectListResource(), projectListResourceHandler(p.client)); err != nil {
		return err
	}
	return host.AddResourceTemplate(projectResourceTemplate(), projectResourceHandler(p.client))
}

// ProjectListPayload is the resource payload for the project listing.
type ProjectListPayload struct {
	Projects []ProjectEntry `json:"projects"`
}

// ProjectPayload is the resource payload for a single project.
type ProjectPayload struct {
	Project ProjectEntry `json:"project"`
}

func projectListResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         "localizer://projects",
		Name:        "projects",
		Description: "Localization projects visible to the configured token",
		MIMEType:    "application/json",
	}
}

func projectResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		URITemplate: "localizer://projects/{project_id}",
		Name:        "project",
		Description: "A single localization project",
		MIMEType:    "application/json",
	}
}

func projectListResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		projects, err := client.ListProjects(callCtx)
		if err != nil {
			return nil, fmt.Errorf("project list failed: %w", err)
		}

		payload := ProjectListPayload{Projects: make([]ProjectEntry, 0, len(projects))}
		for _, project := range projects {
			payload.Projects = append(payload.Projects, toProjectEntry(project))
		}
		return jsonResourceResult(req.Params.URI, payload)
	}
}

func projectResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("project ID is required; use URI format localizer://projects/{project_id}")
		}
		projectID, err := parseProjectIDFromURI(req.Params.URI)
		if err != nil {
			return nil, fmt.Errorf("parse project ID from URI: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		project, err := client.GetProject(callCtx, projectID)
		if err != nil {
			return nil, fmt.Errorf("project get failed: %w", err)
		}
		return jsonResourceResult(req.Params.URI, ProjectPayload{Project: toProjectEntry(project)})
	}
}

// parseProjectIDFromURI extracts the project id from localizer://projects/{project_id}.
func parseProjectIDFromURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, "localizer://projects/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	projectID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || projectID <= 0 {
		return 0, fmt.Errorf("invalid project id %q", rest)
	}
	return projectID, nil
}

func jsonResourceResult(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource payload: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(data)},
		},
	}, nil
}
