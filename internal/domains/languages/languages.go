// Package languages contributes the supported-language catalog and BCP 47
// locale validation. It exposes tools and a browsable resource but no CLI
// commands.
package languages

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the languages domain module.
func New(client *translation.Client, version string) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("languages: translation client is required")
	}
	return registry.Module{
		Tools:     &toolProvider{client: client},
		Resources: &resourceProvider{client: client},
		Meta: &registry.Meta{
			Name:           "languages",
			Description:    "Supported languages and locale code validation",
			Version:        version,
			ToolsCount:     2,
			ResourcesCount: 1,
		},
	}, nil
}

// LanguageListInput is the MCP tool input for language listing.
type LanguageListInput struct{}

// LanguageEntry is one supported language.
type LanguageEntry struct {
	ID             string `json:"id" jsonschema:"language identifier"`
	Name           string `json:"name" jsonschema:"English name"`
	TwoLettersCode string `json:"two_letters_code" jsonschema:"ISO 639-1 code"`
	Locale         string `json:"locale" jsonschema:"full locale code"`
}

// LanguageListResult is the MCP tool output for language listing.
type LanguageListResult struct {
	Languages []LanguageEntry `json:"languages" jsonschema:"languages the service supports"`
}

// LanguageValidateInput is the MCP tool input for locale validation.
type LanguageValidateInput struct {
	Code string `json:"code" jsonschema:"locale code to validate (e.g. pt-BR)"`
}

// LanguageValidateResult is the MCP tool output for locale validation.
type LanguageValidateResult struct {
	Code      string `json:"code" jsonschema:"the input code"`
	Valid     bool   `json:"valid" jsonschema:"whether the code is a well-formed BCP 47 tag"`
	Canonical string `json:"canonical,omitempty" jsonschema:"canonical form of the tag"`
	Base      string `json:"base,omitempty" jsonschema:"base language"`
	Region    string `json:"region,omitempty" jsonschema:"region subtag if present"`
	Supported bool   `json:"supported" jsonschema:"whether the service supports this locale"`
}

type toolProvider struct {
	client *translation.Client
}

func (p *toolProvider) RegisterTools(host registry.ToolHost) error {
	listTool := &mcp.Tool{Name: "language_list", Description: "Lists every language the translation service supports"}
	if err := registry.AddTool(host, listTool, languageListHandler(p.client)); err != nil {
		return err
	}
	validateTool := &mcp.Tool{Name: "language_validate", Description: "Validates a locale code against BCP 47 and the supported-language catalog"}
	return registry.AddTool(host, validateTool, languageValidateHandler(p.client))
}

func languageListHandler(client *translation.Client) mcp.ToolHandlerFor[LanguageListInput, LanguageListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ LanguageListInput) (*mcp.CallToolResult, LanguageListResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		languages, err := client.ListLanguages(callCtx)
		if err != nil {
			return nil, LanguageListResult{}, fmt.Errorf("language list failed: %w", err)
		}

		result := LanguageListResult{Languages: make([]LanguageEntry, 0, len(languages))}
		for _, lang := range languages {
			result.Languages = append(result.Languages, toLanguageEntry(lang))
		}
		return nil, result, nil
	}
}

func languageValidateHandler(client *translation.Client) mcp.ToolHandlerFor[LanguageValidateInput, LanguageValidateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LanguageValidateInput) (*mcp.CallToolResult, LanguageValidateResult, error) {
		code := strings.TrimSpace(input.Code)
		if code == "" {
			return nil, LanguageValidateResult{}, fmt.Errorf("code is required")
		}

		result := LanguageValidateResult{Code: code}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, result, nil
		}
		result.Valid = true
		result.Canonical = tag.String()
		base, confidence := tag.Base()
		if confidence != language.No {
			result.Base = base.String()
		}
		if region, regionConfidence := tag.Region(); regionConfidence != language.No {
			result.Region = region.String()
		}

		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		supported, err := client.ListLanguages(callCtx)
		if err != nil {
			return nil, LanguageValidateResult{}, fmt.Errorf("language list failed: %w", err)
		}
		for _, lang := range supported {
			if strings.EqualFold(lang.ID, result.Canonical) || strings.EqualFold(lang.Locale, result.Canonical) || strings.EqualFold(lang.TwoLettersCode, result.Canonical) {
				result.Supported = true
				break
			}
		}
		return nil, result, nil
	}
}

func toLanguageEntry(lang translation.Language) LanguageEntry {
	return LanguageEntry{ID: lang.ID, Name: lang.Name, TwoLettersCode: lang.TwoLettersCode, Locale: lang.Locale}
}

// LanguageListPayload is the resource payload for the language catalog.
type LanguageListPayload struct {
	Languages []LanguageEntry `json:"languages"`
}

type resourceProvider struct {
	client *translation.Client
}

func (p *resourceProvider) RegisterResources(host registry.ResourceHost) error {
	resource := &mcp.Resource{
		URI:         "localizer://languages",
		Name:        "languages",
		Description: "Languages the translation service supports",
		MIMEType:    "application/json",
	}
	return host.AddResource(resource, languageListResourceHandler(p.client))
}

func languageListResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		languages, err := client.ListLanguages(callCtx)
		if err != nil {
			return nil, fmt.Errorf("language list failed: %w", err)
		}

		payload := LanguageListPayload{Languages: make([]LanguageEntry, 0, len(languages))}
		for _, lang := range languages {
			payload.Languages = append(payload.Languages, toLanguageEntry(lang))
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal language list: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}
