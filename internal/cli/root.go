// Package cli provides the command-line interface for duotint.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/config"
	"github.com/jmylchreest/duotint/internal/version"
)

// globalOptions holds the persistent flags and the logger built from them.
type globalOptions struct {
	verbose bool
	quiet   bool

	logger hclog.Logger
}

// NewRootCmd builds the duotint command tree. Each call returns fresh
// commands with their own flag state.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "duotint",
		Short: "Derive a two-colour theme from an image",
		Long: `duotint reads an image and derives a muted two-colour theme from it:
a strong colour for titles, headers and borders, a soft colour, and a
lightened tint of the soft colour for card and section backgrounds.

The palette can be printed as hex, rgb, JSON, a CSS stylesheet or a terminal
preview, handed to an external renderer plugin, or kept up to date while an
image file changes.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.Get().String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newExtractCmd(g),
		newWatchCmd(g),
		newApplyCmd(g),
		newPluginsCmd(g),
		newSwatchesCmd(),
		newConvertCmd(),
		newTemplatesCmd(g),
	)

	return rootCmd
}

// Execute runs the command tree and exits non-zero on error.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the "duotint" logger on w. DUOTINT_LOG_FORMAT=json switches
// to JSON lines.
func newLogger(g *globalOptions, w io.Writer) (hclog.Logger, error) {
	level := hclog.Info
	switch {
	case g.verbose:
		level = hclog.Debug
	case g.quiet:
		level = hclog.Error
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "duotint",
		Level:      level,
		Output:     w,
		JSONFormat: cfg.LogFormat == config.LogFormatJSON,
	}), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
