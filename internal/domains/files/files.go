package files

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

// FileListInput is the MCP tool input for file listing.
type FileListInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

// FileEntry is one source file in a listing or lookup result.
type FileEntry struct {
	ID     int64  `json:"id" jsonschema:"file identifier"`
	Name   string `json:"name" jsonschema:"file name"`
	Path   string `json:"path" jsonschema:"file path within the project"`
	Type   string `json:"type" jsonschema:"file format"`
	Status string `json:"status" jsonschema:"processing status"`
}

// FileListResult is the MCP tool output for file listing.
type FileListResult struct {
	ProjectID int64       `json:"project_id" jsonschema:"project identifier"`
	Files     []FileEntry `json:"files" jsonschema:"source files of the project"`
}

// FileGetInput is the MCP tool input for file lookup.
type FileGetInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
	FileID    int64 `json:"file_id" jsonschema:"file identifier"`
}

// FileGetResult is the MCP tool output for file lookup.
type FileGetResult struct {
	File FileEntry `json:"file" jsonschema:"the requested file"`
}

type toolProvider struct {
	client *translation.Client
}

func (p *toolProvider) RegisterTools(host registry.ToolHost) error {
	listTool := &mcp.Tool{Name: "file_list", Description: "Lists the translatable source files of a project"}
	if err := registry.AddTool(host, listTool, fileListHandler(p.client)); err != nil {
		return err
	}
	getTool := &mcp.Tool{Name: "file_get", Description: "Fetches one source file by id"}
	return registry.AddTool(host, getTool, fileGetHandler(p.client))
}

func fileListHandler(client *translation.Client) mcp.ToolHandlerFor[FileListInput, FileListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FileListInput) (*mcp.CallToolResult, FileListResult, error) {
		if input.ProjectID <= 0 {
			return nil, FileListResult{}, fmt.Errorf("project_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		files, err := client.ListFiles(callCtx, input.ProjectID)
		if err != nil {
			return nil, FileListResult{}, fmt.Errorf("file list failed: %w", err)
		}

		result := FileListResult{ProjectID: input.ProjectID}
		for _, file := range files {
			result.Files = append(result.Files, toFileEntry(file))
		}
		return nil, result, nil
	}
}

func fileGetHandler(client *translation.Client) mcp.ToolHandlerFor[FileGetInput, FileGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FileGetInput) (*mcp.CallToolResult, FileGetResult, error) {
		if input.ProjectID <= 0 || input.FileID <= 0 {
			return nil, FileGetResult{}, fmt.Errorf("project_id and file_id are required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		file, err := client.GetFile(callCtx, input.ProjectID, input.FileID)
		if err != nil {
			return nil, FileGetResult{}, fmt.Errorf("file get failed: %w", err)
		}
		return nil, FileGetResult{File: toFileEntry(file)}, nil
	}
}

func toFileEntry(file translation.File) FileEntry {
	return FileEntry{ID: file.ID, Name: file.Name, Path: file.Path, Type: file.Type, Status: file.Status}
}

type commandProvider struct {
	client *translation.Client
}

func (p *commandProvider) Register(program registry.CommandHost) error {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Inspect translatable source files",
	}
	var projectID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List the source files of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return fmt.Errorf("--project is required")
			}
			files, err := p.client.ListFiles(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(files, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal output: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	list.Flags().Int64Var(&projectID, "project", 0, "project id")
	cmd.AddCommand(list)
	return program.AddCommand(cmd)
}

// FileListPayload is the resource payload for a project's file listing.
type FileListPayload struct {
	ProjectID int64       `json:"project_id"`
	Files     []FileEntry `json:"files"`
}

type resourceProvider struct {
	client *translation.Client
}

func (p *resourceProvider) RegisterResources(host registry.ResourceHost) error {
	template := &mcp.ResourceTemplate{
		URITemplate: "localizer://projects/{project_id}/files",
		Name:        "project-files",
		Description: "Translatable source files of a project",
		MIMEType:    "application/json",
	}
	return host.AddResourceTemplate(template, fileListResourceHandler(p.client))
}

func fileListResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("project ID is required; use URI format localizer://projects/{project_id}/files")
		}
		projectID, err := parseProjectIDFromFilesURI(req.Params.URI)
		if err != nil {
			return nil, fmt.Errorf("parse project ID from URI: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		files, err := client.ListFiles(callCtx, projectID)
		if err != nil {
			return nil, fmt.Errorf("file list failed: %w", err)
		}

		payload := FileListPayload{ProjectID: projectID}
		for _, file := range files {
			payload.Files = append(payload.Files, toFileEntry(file))
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal file list: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}

// parseProjectIDFromFilesURI extracts the project id from
// localizer://projects/{project_id}/files.
func parseProjectIDFromFilesURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, "localizer://projects/")
	if !ok {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	raw, ok := strings.CutSuffix(rest, "/files")
	if !ok || raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	projectID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || projectID <= 0 {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return projectID, nil
}
