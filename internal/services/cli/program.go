// Package cli hosts the command-line program. It builds the domain registry
// once, composes every domain's commands onto the root, and attaches the
// diagnostics surface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/domains"
	"github.com/localizer-dev/localizer/internal/registry"
	"github.com/localizer-dev/localizer/internal/translation"
)

const programVersion = "0.2.0"

// New builds the root command with every loaded domain's commands composed
// on, plus the domains diagnostics command. A broken domain is reported by
// diagnostics instead of blocking the program; only a command name collision
// fails construction.
func New(client *translation.Client) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "localizer",
		Short:         "Translation management from the command line",
		Version:       programVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	catalog := domains.Catalog(domains.Deps{Client: client, Version: programVersion})
	reg, err := registry.Build(registry.Discover(catalog))
	if err != nil {
		return nil, fmt.Errorf("build domain registry: %w", err)
	}

	rows, err := registry.ComposeCommands(reg, root)
	if err != nil {
		return nil, fmt.Errorf("compose commands: %w", err)
	}

	root.AddCommand(newDomainsCommand(reg, rows))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the localizer version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "localizer %s\n", programVersion)
		},
	})
	return root, nil
}
