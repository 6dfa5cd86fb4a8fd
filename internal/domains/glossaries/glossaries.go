// Package glossaries contributes glossary browsing through CLI commands and
// resources. It deliberately exposes no metadata and no MCP tools.
package glossaries

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the glossaries domain module.
func New(client *translation.Client) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("glossaries: translation client is required")
	}
	return registry.Module{
		Commands:  &commandProvider{client: client},
		Resources: &resourceProvider{client: client},
	}, nil
}

type commandProvider struct {
	client *translation.Client
}

func (p *commandProvider) Register(program registry.CommandHost) error {
	cmd := &cobra.Command{
		Use:   "glossaries",
		Short: "Inspect terminology glossaries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the organization's glossaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			glossaries, err := p.client.ListGlossaries(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, glossaries)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "terms <glossary-id>",
		Short: "List the terms of a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			glossaryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid glossary id %q", args[0])
			}
			terms, err := p.client.ListGlossaryTerms(cmd.Context(), glossaryID)
			if err != nil {
				return err
			}
			return printJSON(cmd, terms)
		},
	})

	return program.AddCommand(cmd)
}

func printJSON(cmd *cobra.Command, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// GlossaryListPayload is the resource payload for the glossary listing.
type GlossaryListPayload struct {
	Glossaries []translation.Glossary `json:"glossaries"`
}

// TermListPayload is the resource payload for a glossary's terms.
type TermListPayload struct {
	GlossaryID int64              `json:"glossary_id"`
	Terms      []translation.Term `json:"terms"`
}

type resourceProvider struct {
	client *translation.Client
}

func (p *resourceProvider) RegisterResources(host registry.ResourceHost) error {
	listResource := &mcp.Resource{
		URI:         "localizer://glossaries",
		Name:        "glossaries",
		Description: "Terminology glossaries of the organization",
		MIMEType:    "application/json",
	}
	if err := host.AddResource(listResource, glossaryListResourceHandler(p.client)); err != nil {
		return err
	}
	termsTemplate := &mcp.ResourceTemplate{
		URITemplate: "localizer://glossaries/{glossary_id}/terms",
		Name:        "glossary-terms",
		Description: "Terms of a glossary",
		MIMEType:    "application/json",
	}
	return host.AddResourceTemplate(termsTemplate, termListResourceHandler(p.client))
}

func glossaryListResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		glossaries, err := client.ListGlossaries(callCtx)
		if err != nil {
			return nil, fmt.Errorf("glossary list failed: %w", err)
		}
		return jsonResourceResult(req.Params.URI, GlossaryListPayload{Glossaries: glossaries})
	}
}

func termListResourceHandler(client *translation.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("glossary ID is required; use URI format localizer://glossaries/{glossary_id}/terms")
		}
		glossaryID, err := parseGlossaryIDFromURI(req.Params.URI)
		if err != nil {
			return nil, fmt.Errorf("parse glossary ID from URI: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		terms, err := client.ListGlossaryTerms(callCtx, glossaryID)
		if err != nil {
			return nil, fmt.Errorf("glossary terms failed: %w", err)
		}
		return jsonResourceResult(req.Params.URI, TermListPayload{GlossaryID: glossaryID, Terms: terms})
	}
}

// parseGlossaryIDFromURI extracts the glossary id from
// localizer://glossaries/{glossary_id}/terms.
func parseGlossaryIDFromURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, "localizer://glossaries/")
	if !ok {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	raw, ok := strings.CutSuffix(rest, "/terms")
	if !ok || raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("unexpected URI %q", uri)
	}
	glossaryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || glossaryID <= 0 {
		return 0, fmt.Errorf("invalid glossary id %q", raw)
	}
	return glossaryID, nil
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
