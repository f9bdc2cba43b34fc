package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/output"
	tmplloader "github.com/jmylchreest/duotint/internal/output/template"
)

func newTemplatesCmd(g *globalOptions) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage renderer templates",
		Long: `List and dump the embedded renderer templates.

A dumped template is written to $XDG_CONFIG_HOME/duotint/templates/<renderer>/
and is used instead of the embedded one from then on, so it can be edited to
change the generated output.`,
	}
	cmd.PersistentFlags().StringVarP(&location, "location", "l", "", "template override directory (default: $XDG_CONFIG_HOME/duotint/templates)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List embedded templates and their overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := output.NewCSSRenderer(location, g.logger).Loader()
			names, err := loader.List()
			if err != nil {
				return err
			}

			table := NewTable([]string{"Renderer", "Template", "Override"})
			for _, name := range names {
				override := "-"
				if loader.HasCustomTemplate(name) {
					override = loader.CustomPath(name)
				}
				table.AddRow([]string{"css", name, override})
			}
			fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return nil
		},
	}

	var force bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Copy the embedded templates to the override directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := output.NewCSSRenderer(location, g.logger).Loader()
			dumped, err := loader.DumpAll(force)
			for _, path := range dumped {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			if errors.Is(err, tmplloader.ErrTemplateExists) {
				g.logger.Warn("kept existing templates, use --force to overwrite", "error", err)
				return nil
			}
			return err
		},
	}
	dumpCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing overrides")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}
