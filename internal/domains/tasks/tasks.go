package tasks

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

// TaskListInput is the MCP tool input for task listing.
type TaskListInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

// TaskEntry is one task in a listing or creation result.
type TaskEntry struct {
	ID         int64  `json:"id" jsonschema:"task identifier"`
	Title      string `json:"title" jsonschema:"task title"`
	Type       string `json:"type" jsonschema:"task type (translate, proofread)"`
	Status     string `json:"status" jsonschema:"task status"`
	LanguageID string `json:"language_id" jsonschema:"target language"`
	WordCount  int    `json:"word_count" jsonschema:"words in scope"`
	Deadline   string `json:"deadline,omitempty" jsonschema:"RFC3339 deadline"`
}

// TaskListResult is the MCP tool output for task listing.
type TaskListResult struct {
	ProjectID int64       `json:"project_id" jsonschema:"project identifier"`
	Tasks     []TaskEntry `json:"tasks" jsonschema:"tasks of the project"`
}

// TaskCreateInput is the MCP tool input for task creation.
type TaskCreateInput struct {
	ProjectID   int64   `json:"project_id" jsonschema:"project identifier"`
	Title       string  `json:"title" jsonschema:"task title"`
	Type        string  `json:"type" jsonschema:"task type (translate, proofread)"`
	LanguageID  string  `json:"language_id" jsonschema:"target language"`
	FileIDs     []int64 `json:"file_ids,omitempty" jsonschema:"optional file scope"`
	Description string  `json:"description,omitempty" jsonschema:"optional description"`
	Deadline    string  `json:"deadline,omitempty" jsonschema:"optional RFC3339 deadline"`
}

// TaskCreateResult is the MCP tool output for task creation.
type TaskCreateResult struct {
	Task TaskEntry `json:"task" jsonschema:"the created task"`
}

type toolProvider struct {
	client *translation.Client
}

func (p *toolProvider) RegisterTools(host registry.ToolHost) error {
	listTool := &mcp.Tool{Name: "task_list", Description: "Lists the translation tasks of a project"}
	if err := registry.AddTool(host, listTool, taskListHandler(p.client)); err != nil {
		return err
	}
	createTool := &mcp.Tool{Name: "task_create", Description: "Creates a translation or proofreading task"}
	return registry.AddTool(host, createTool, taskCreateHandler(p.client))
}

func taskListHandler(client *translation.Client) mcp.ToolHandlerFor[TaskListInput, TaskListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskListInput) (*mcp.CallToolResult, TaskListResult, error) {
		if input.ProjectID <= 0 {
			return nil, TaskListResult{}, fmt.Errorf("project_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		tasks, err := client.ListTasks(callCtx, input.ProjectID)
		if err != nil {
			return nil, TaskListResult{}, fmt.Errorf("task list failed: %w", err)
		}

		result := TaskListResult{ProjectID: input.ProjectID}
		for _, task := range tasks {
			result.Tasks = append(result.Tasks, toTaskEntry(task))
		}
		return nil, result, nil
	}
}

func taskCreateHandler(client *translation.Client) mcp.ToolHandlerFor[TaskCreateInput, TaskCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TaskCreateInput) (*mcp.CallToolResult, TaskCreateResult, error) {
		if input.ProjectID <= 0 {
			return nil, TaskCreateResult{}, fmt.Errorf("project_id is required")
		}
		if strings.TrimSpace(input.Title) == "" {
			return nil, TaskCreateResult{}, fmt.Errorf("title is required")
		}
		if strings.TrimSpace(input.LanguageID) == "" {
			return nil, TaskCreateResult{}, fmt.Errorf("language_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		task, err := client.CreateTask(callCtx, input.ProjectID, translation.CreateTaskRequest{
			Title:       input.Title,
			Type:        input.Type,
			LanguageID:  input.LanguageID,
			FileIDs:     input.FileIDs,
			Description: input.Description,
			Deadline:    input.Deadline,
		})
		if err != nil {
			return nil, TaskCreateResult{}, fmt.Errorf("task create failed: %w", err)
		}
		return nil, TaskCreateResult{Task: toTaskEntry(task)}, nil
	}
}

func toTaskEntry(task translation.Task) TaskEntry {
	return TaskEntry{
		ID:         task.ID,
		Title:      task.Title,
		Type:       task.Type,
		Status:     task.Status,
		LanguageID: task.LanguageID,
		WordCount:  task.WordCount,
		Deadline:   task.Deadline,
	}
}

type commandProvider struct {
	client *translation.Client
}

func (p *commandProvider) Register(program registry.CommandHost) error {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect translation tasks",
	}
	var projectID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return fmt.Errorf("--project is required")
			}
			tasks, err := p.client.ListTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(tasks, "", "  ")
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

// TaskListPayload is the resource payload for a project's task listing.
type TaskListPayload struct {
	ProjectID int64       `json:"project_id"`
	Tasks     []TaskEntry `json:"tasks"`
}

type resourceProvider struct {
	client *translation.Client
}

func (p *resourceProvider) RegisterResources(host registry.ResourceHost) error {
	template := &mcp.ResourceTemplate{
		URITemplate: "localizer://projects/{project_id}/tasks",
		Name:        "project-tasks",
		Description: "Translation tasks of a project",
		MIMEType:    "application/json",
	}
	return host.AddResourceTemplate(template, taskListResourceHandler(p.client))
}

func taskListResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("project ID is required; use URI format localizer://projects/{project_id}/tasks")
		}
		projectID, err := parseProjectIDFromTasksURI(req.Params.URI)
		if err != nil {
			return nil, fmt.Errorf("parse project ID from URI: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		tasks, err := client.ListTasks(callCtx, projectID)
		if err != nil {
			return nil, fmt.Errorf("task list failed: %w", err)
		}

		payload := TaskListPayload{ProjectID: projectID}
		for _, task := range tasks {
			payload.Tasks = append(payload.Tasks, toTaskEntry(task))
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal task list: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}

// parseProjectIDFromTasksURI extracts the project id from
// localizer://projects/{project_id}/tasks.
func parseProjectIDFromTasksURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, "localizer://projects/")
	if !ok {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	raw, ok := strings.CutSuffix(rest, "/tasks")
	if !ok || raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	projectID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || projectID <= 0 {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return projectID, nil
}
