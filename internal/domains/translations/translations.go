// Package translations contributes translation status reporting and machine
// pre-translation. It is a tools-only domain: no CLI commands and no
// browsable resources.
package translations

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the translations domain module.
func New(client *translation.Client, version string) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("translations: translation client is required")
	}
	return registry.Module{
		Tools: &toolProvider{client: client},
		Meta: &registry.Meta{
			Name:        "translations",
			Description: "Translation status and machine pre-translation",
			Version:     version,
			ToolsCount:  2,
		},
	}, nil
}

// TranslationStatusInput is the MCP tool input for status reporting.
type TranslationStatusInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

// LanguageStatusEntry is translation status for one target language.
type LanguageStatusEntry struct {
	LanguageID          string `json:"language_id" jsonschema:"target language"`
	TranslationProgress int    `json:"translation_progress" jsonschema:"percent translated"`
	ApprovalProgress    int    `json:"approval_progress" jsonschema:"percent approved"`
	WordsTotal          int    `json:"words_total" jsonschema:"total words"`
	WordsTranslated     int    `json:"words_translated" jsonschema:"translated words"`
	WordsApproved       int    `json:"words_approved" jsonschema:"approved words"`
}

// TranslationStatusResult is the MCP tool output for status reporting.
type TranslationStatusResult struct {
	ProjectID int64                 `json:"project_id" jsonschema:"project identifier"`
	Languages []LanguageStatusEntry `json:"languages" jsonschema:"per-language status"`
}

// PreTranslateInput is the MCP tool input for machine pre-translation.
type PreTranslateInput struct {
	ProjectID   int64    `json:"project_id" jsonschema:"project identifier"`
	LanguageIDs []string `json:"language_ids" jsonschema:"target languages to pre-translate"`
	Method      string   `json:"method,omitempty" jsonschema:"pre-translation method (mt, tm)"`
}

// PreTranslateResult is the MCP tool output for machine pre-translation.
type PreTranslateResult struct {
	ID       string `json:"id" jsonschema:"pre-translation run identifier"`
	Status   string `json:"status" jsonschema:"run status"`
	Progress int    `json:"progress" jsonschema:"percent complete"`
}

type toolProvider struct {
	client *translation.Client
}

func (p *toolProvider) RegisterTools(host registry.ToolHost) error {
	statusTool := &mcp.Tool{Name: "translation_status", Description: "Reports per-language translation status for a project"}
	if err := registry.AddTool(host, statusTool, translationStatusHandler(p.client)); err != nil {
		return err
	}
	preTranslateTool := &mcp.Tool{Name: "pretranslate_apply", Description: "Starts machine pre-translation for a project's target languages"}
	return registry.AddTool(host, preTranslateTool, preTranslateHandler(p.client))
}

func translationStatusHandler(client *translation.Client) mcp.ToolHandlerFor[TranslationStatusInput, TranslationStatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TranslationStatusInput) (*mcp.CallToolResult, TranslationStatusResult, error) {
		if input.ProjectID <= 0 {
			return nil, TranslationStatusResult{}, fmt.Errorf("project_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		progress, err := client.ProjectProgress(callCtx, input.ProjectID)
		if err != nil {
			return nil, TranslationStatusResult{}, fmt.Errorf("translation status failed: %w", err)
		}

		result := TranslationStatusResult{ProjectID: input.ProjectID}
		for _, lang := range progress {
			result.Languages = append(result.Languages, LanguageStatusEntry{
				LanguageID:          lang.LanguageID,
				TranslationProgress: lang.TranslationProgress,
				ApprovalProgress:    lang.ApprovalProgress,
				WordsTotal:          lang.Words.Total,
				WordsTranslated:     lang.Words.Translated,
				WordsApproved:       lang.Words.Approved,
			})
		}
		return nil, result, nil
	}
}

func preTranslateHandler(client *translation.Client) mcp.ToolHandlerFor[PreTranslateInput, PreTranslateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PreTranslateInput) (*mcp.CallToolResult, PreTranslateResult, error) {
		if input.ProjectID <= 0 {
			return nil, PreTranslateResult{}, fmt.Errorf("project_id is required")
		}
		if len(input.LanguageIDs) == 0 {
			return nil, PreTranslateResult{}, fmt.Errorf("language_ids is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		run, err := client.ApplyPreTranslation(callCtx, input.ProjectID, translation.PreTranslateRequest{
			LanguageIDs: input.LanguageIDs,
			Method:      input.Method,
		})
		if err != nil {
			return nil, PreTranslateResult{}, fmt.Errorf("pre-translation failed: %w", err)
		}
		return nil, PreTranslateResult{ID: run.ID, Status: run.Status, Progress: run.Progress}, nil
	}
}
