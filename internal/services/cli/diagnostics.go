package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/localizer-dev/localizer/internal/registry"
)

// newDomainsCommand renders the domain registry, the composition report, and
// the metadata inventory. This is the user-visible answer to "which domains
// failed and why".
func newDomainsCommand(reg *registry.Registry, rows []registry.Row) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "Show domain load state and capability registrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, registry.Summarize(reg, rows))
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DOMAIN\tSTATE\tCAPABILITIES\tERROR")
			for _, entry := range reg.Entries() {
				state := "loaded"
				if !entry.Loaded {
					state = "failed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.Name, state, capabilityList(entry), entry.Err)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(rows) > 0 {
				fmt.Fprintln(out)
				w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DOMAIN\tCAPABILITY\tRESULT\tERROR")
				for _, row := range rows {
					result := "ok"
					if !row.Succeeded {
						result = "failed"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Domain, row.Capability, result, row.Err)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			metas := registry.Aggregate(reg)
			if len(metas) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DOMAIN\tVERSION\tTOOLS\tCOMMANDS\tRESOURCES\tDESCRIPTION")
			for _, meta := range metas {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
					meta.Name, meta.Version, meta.ToolsCount, meta.CLICommandsCount, meta.ResourcesCount, meta.Description)
			}
			return w.Flush()
		},
	}
}

func capabilityList(entry registry.Entry) string {
	if !entry.Loaded {
		return "-"
	}
	var capabilities []string
	if entry.Module.HasTools() {
		capabilities = append(capabilities, string(registry.CapabilityTools))
	}
	if entry.Module.HasCLI() {
		capabilities = append(capabilities, string(registry.CapabilityCLI))
	}
	if entry.Module.HasResources() {
		capabilities = append(capabilities, string(registry.CapabilityResources))
	}
	if len(capabilities) == 0 {
		return "none"
	}
	return strings.Join(capabilities, ",")
}
