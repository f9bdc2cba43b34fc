package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/plugin/manager"
)

func newPluginsCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect renderer plugins",
		Long: `Inspect the renderer plugins found in $DUOTINT_PLUGIN_PATH and
$XDG_DATA_HOME/duotint/plugins. Set DUOTINT_DISABLED_PLUGINS to a
comma-separated list of names (or "all") to stop them being used by name.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered plugins and their metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := manager.NewBuilder().WithEnvConfig().WithLogger(g.logger.Named("plugin")).Build()
			entries := m.Discover(cmd.Context())
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No plugins found in %v\n", m.GetConfig().SearchPaths)
				return nil
			}

			table := NewTable([]string{"Name", "Version", "Protocol", "Status", "Description"})
			for _, e := range entries {
				status := "enabled"
				switch {
				case e.Err != nil:
					status = "error"
					g.logger.Warn("plugin did not describe itself", "path", e.Path, "error", e.Err)
				case e.Disabled:
					status = "disabled"
				}
				table.AddRow([]string{e.Name, e.Info.Version, string(e.Protocol), status, e.Info.Description})
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	return cmd
}
