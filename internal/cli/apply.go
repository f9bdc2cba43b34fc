package cli

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/config"
	"github.com/jmylchreest/duotint/internal/plugin/executor"
	"github.com/jmylchreest/duotint/internal/plugin/manager"
	"github.com/jmylchreest/duotint/internal/security"
)

type applyOptions struct {
	config *config.Flags
	source sourceOptions

	plugin     string
	outputDir  string
	pluginArgs map[string]string
	dryRun     bool
}

func newApplyCmd(g *globalOptions) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply --plugin <name|path> [image|url|-]",
		Short: "Render the theme with an external renderer plugin",
		Long: `Extract the palette from an image and hand it to an external renderer
plugin. The files the plugin returns are written below --output-dir.

A plugin is given by path or by name. Names are looked up in
$DUOTINT_PLUGIN_PATH and $XDG_DATA_HOME/duotint/plugins, as "<name>" or
"duotint-<name>".

Plugins are executables that either speak the go-plugin RPC protocol (see
pkg/plugin) or read the palette as JSON on stdin and answer on stdout. The
protocol is detected from the plugin's --plugin-info answer.

Examples:
  duotint apply --plugin kitty -d ~/.config/kitty wallpaper.jpg
  duotint apply --plugin ./site-theme --plugin-arg prefix=brand -d ./theme photo.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, g, opts, args)
		},
	}

	fs := cmd.Flags()
	opts.config = config.BindFlags(fs)
	opts.source.register(fs, true)
	fs.StringVarP(&opts.plugin, "plugin", "p", "", "renderer plugin name or path to its executable (required)")
	fs.StringVarP(&opts.outputDir, "output-dir", "d", ".", "directory the rendered files are written to")
	fs.StringToStringVar(&opts.pluginArgs, "plugin-arg", nil, "argument passed to the plugin (key=value, repeatable)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "list the files the plugin would write without writing them")
	_ = cmd.MarkFlagRequired("plugin")

	return cmd
}

func runApply(cmd *cobra.Command, g *globalOptions, opts *applyOptions, args []string) error {
	cfg, err := opts.config.Resolve()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()
	logger := g.logger.Named("plugin")

	path, err := manager.NewBuilder().WithEnvConfig().WithLogger(logger).Build().Resolve(opts.plugin)
	if err != nil {
		return err
	}

	renderer, err := executor.New(ctx, path, executor.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer renderer.Close()

	info := renderer.Metadata()
	logger.Debug("using plugin", "name", info.Name, "version", info.Version, "protocol", renderer.Protocol())

	img, _, err := opts.source.load(ctx, g.logger, cfg, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	palette, err := colour.Extract(img, cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	files, err := renderer.Render(ctx, executor.NewPaletteData(palette, opts.pluginArgs))
	if err != nil {
		return fmt.Errorf("plugin %s failed: %w", info.Name, err)
	}
	if len(files) == 0 {
		logger.Warn("plugin returned no files", "plugin", info.Name)
		return nil
	}

	written, err := writeFiles(opts.outputDir, files, opts.dryRun)
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return err
}

// writeFiles writes files below dir in name order and returns the
// paths written. Names that would escape dir are rejected before anything is
// written.
func writeFiles(dir string, files map[string][]byte, dryRun bool) ([]string, error) {
	names := slices.Sorted(maps.Keys(files))
	for _, name := range names {
		if err := security.ValidateFilePath(name, dir); err != nil {
			return nil, fmt.Errorf("unsafe file name %q: %w", name, err)
		}
	}

	var written []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if dryRun {
			written = append(written, path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Output directories need standard permissions
			return written, fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(path, files[name], 0o644); err != nil { // #nosec G306 - Theme files are not secret
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
