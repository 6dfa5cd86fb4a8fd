package projects

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

type commandProvider struct {
	client *translation.Client
}

func (p *commandProvider) Register(program registry.CommandHost) error {
	return program.AddCommand(newProjectsCommand(p.client))
}

func newProjectsCommand(client *translation.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect localization projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects visible to the configured token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, projects)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			project, err := client.GetProject(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			return printJSON(cmd, project)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "progress <project-id>",
		Short: "Show per-language translation progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			progress, err := client.ProjectProgress(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			return printJSON(cmd, progress)
		},
	})

	return cmd
}

func printJSON(cmd *cobra.Command, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
