// Package usergroups contributes user-group listing and membership lookup.
// It exposes tools and CLI commands but no browsable resources.
package usergroups

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const apiCallTimeout = 30 * time.Second

// New constructs the usergroups domain module.
func New(client *translation.Client, version string) (registry.Module, error) {
	if client == nil {
		return registry.Module{}, fmt.Errorf("usergroups: translation client is required")
	}
	return registry.Module{
		Tools:    &toolProvider{client: client},
		Commands: &commandProvider{client: client},
		Meta: &registry.Meta{
			Name:             "usergroups",
			Description:      "User groups and their membership",
			Version:          version,
			ToolsCount:       2,
			CLICommandsCount: 1,
		},
	}, nil
}

// GroupListInput is the MCP tool input for group listing.
type GroupListInput struct{}

// GroupEntry is one user group in a listing result.
type GroupEntry struct {
	ID         int64  `json:"id" jsonschema:"group identifier"`
	Name       string `json:"name" jsonschema:"group name"`
	UsersCount int    `json:"users_count" jsonschema:"number of members"`
}

// GroupListResult is the MCP tool output for group listing.
type GroupListResult struct {
	Groups []GroupEntry `json:"groups" jsonschema:"user groups of the organization"`
}

// GroupMembersInput is the MCP tool input for membership lookup.
type GroupMembersInput struct {
	GroupID int64 `json:"group_id" jsonschema:"group identifier"`
}

// MemberEntry is one member of a user group.
type MemberEntry struct {
	ID       int64  `json:"id" jsonschema:"user identifier"`
	Username string `json:"username" jsonschema:"login name"`
	FullName string `json:"full_name,omitempty" jsonschema:"display name"`
	Role     string `json:"role,omitempty" jsonschema:"organization role"`
}

// GroupMembersResult is the MCP tool output for membership lookup.
type GroupMembersResult struct {
	GroupID int64         `json:"group_id" jsonschema:"group identifier"`
	Members []MemberEntry `json:"members" jsonschema:"members of the group"`
}

type toolProvider struct {
	client *translation.Client
}

func (p *toolProvider) RegisterTools(host registry.ToolHost) error {
	listTool := &mcp.Tool{Name: "usergroup_list", Description: "Lists the organization's user groups"}
	if err := registry.AddTool(host, listTool, groupListHandler(p.client)); err != nil {
		return err
	}
	membersTool := &mcp.Tool{Name: "usergroup_members", Description: "Lists the members of a user group"}
	return registry.AddTool(host, membersTool, groupMembersHandler(p.client))
}

func groupListHandler(client *translation.Client) mcp.ToolHandlerFor[GroupListInput, GroupListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GroupListInput) (*mcp.CallToolResult, GroupListResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		groups, err := client.ListGroups(callCtx)
		if err != nil {
			return nil, GroupListResult{}, fmt.Errorf("usergroup list failed: %w", err)
		}

		result := GroupListResult{Groups: make([]GroupEntry, 0, len(groups))}
		for _, group := range groups {
			result.Groups = append(result.Groups, GroupEntry{ID: group.ID, Name: group.Name, UsersCount: group.UsersCount})
		}
		return nil, result, nil
	}
}

func groupMembersHandler(client *translation.Client) mcp.ToolHandlerFor[GroupMembersInput, GroupMembersResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GroupMembersInput) (*mcp.CallToolResult, GroupMembersResult, error) {
		if input.GroupID <= 0 {
			return nil, GroupMembersResult{}, fmt.Errorf("group_id is required")
		}
		callCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
		defer cancel()

		members, err := client.ListGroupMembers(callCtx, input.GroupID)
		if err != nil {
			return nil, GroupMembersResult{}, fmt.Errorf("usergroup members failed: %w", err)
		}

		result := GroupMembersResult{GroupID: input.GroupID}
		for _, member := range members {
			result.Members = append(result.Members, MemberEntry{
				ID:       member.ID,
				Username: member.Username,
				FullName: member.FullName,
				Role:     member.Role,
			})
		}
		return nil, result, nil
	}
}

type commandProvider struct {
	client *translation.Client
}

func (p *commandProvider) Register(program registry.CommandHost) error {
	cmd := &cobra.Command{
		Use:   "usergroups",
		Short: "Inspect user groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the organization's user groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := p.client.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, groups)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "members <group-id>",
		Short: "List the members of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid group id %q", args[0])
			}
			members, err := p.client.ListGroupMembers(cmd.Context(), groupID)
			if err != nil {
				return err
			}
			return printJSON(cmd, members)
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
