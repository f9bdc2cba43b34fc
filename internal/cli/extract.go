package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/config"
	"github.com/jmylchreest/duotint/internal/output"
)

// extractOptions holds the extract command flags.
type extractOptions struct {
	config *config.Flags
	source sourceOptions

	format  string
	output  string
	preview bool
	harmony bool
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [image|url|-]",
		Short: "Extract the two-colour theme from an image",
		Long: `Extract the strong, soft and lightened soft colours from an image.

The image may be a local file, a directory (its first image is used), an
http(s) URL or "-" for standard input. Supported formats: PNG, JPEG, GIF,
WebP, BMP, TIFF and AVIF, optionally gzip, bzip2 or xz compressed.

Examples:
  # Print the hex codes
  duotint extract wallpaper.jpg

  # Show swatches in the terminal
  duotint extract -f preview wallpaper.jpg

  # Write a stylesheet
  duotint extract -f css -o theme.css https://example.com/photo.png

  # Use k-means clusters and report the harmony check
  duotint extract -a kmeans --harmony photo.webp

  # Generate the image from a prompt first
  duotint extract --prompt "autumn forest at dusk" --save-image forest.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, opts, args)
		},
	}

	fs := cmd.Flags()
	opts.config = config.BindFlags(fs)
	opts.source.register(fs, true)
	fs.StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json, code, css, preview)")
	fs.StringVarP(&opts.output, "output", "o", "", "output file, or an existing directory to write each rendered file into (default: stdout)")
	fs.BoolVar(&opts.preview, "preview", false, "force colour swatches in preview output")
	fs.BoolVar(&opts.harmony, "harmony", false, "report the harmony check on stderr")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, g *globalOptions, opts *extractOptions, args []string) error {
	cfg, err := opts.config.Resolve()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	registry := output.NewDefaultRegistry(output.Options{
		Colours: opts.preview || (opts.output == "" && isTerminal(cmd.OutOrStdout())),
		Logger:  g.logger,
	})
	// Fail on a bad format before any work is done.
	if _, err := registry.Get(opts.format); err != nil {
		return fmt.Errorf("%w (valid formats: %s)", err, strings.Join(registry.Names(), ", "))
	}

	img, label, err := opts.source.load(cmd.Context(), g.logger, cfg, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	g.logger.Debug("extracting", "algorithm", cfg.Extractor.Algorithm, "max_dimension", cfg.Extractor.MaxDimension)
	palette, err := colour.Extract(img, cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	g.logger.Debug("extracted", "source", label, "strong", palette.Strong.Hex, "soft", palette.Soft.Hex)

	files, err := registry.Render(opts.format, palette)
	if err != nil {
		return err
	}

	if opts.harmony {
		printHarmony(cmd.ErrOrStderr(), palette.Harmony())
	}

	return writeRendered(cmd.OutOrStdout(), opts.output, files, g)
}

// writeRendered prints files to out, or writes them to path when one is set.
// An existing directory receives each rendered file under its own name.
func writeRendered(out io.Writer, path string, files map[string][]byte, g *globalOptions) error {
	content := output.Concat(files)
	if path == "" {
		_, err := out.Write(content)
		return err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		written, err := writeFiles(path, files, false)
		for _, p := range written {
			g.logger.Info("wrote palette", "path", p)
		}
		return err
	}

	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 - Palette output is not secret
		return fmt.Errorf("failed to write output file: %w", err)
	}
	g.logger.Info("wrote palette", "path", path)
	return nil
}

func printHarmony(w io.Writer, h colour.Harmony) {
	verdict := "not harmonious"
	if h.Harmonious {
		verdict = "harmonious"
	}
	fmt.Fprintf(w, "harmony: %s (%d/4: distance %.1f, hue diff %d, lightness diff %d, mean saturation %.1f)\n",
		verdict, h.Score, h.ColourDistance, h.HueDifference, h.LightnessDifference, h.MeanSaturation)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - File descriptors fit in int
}
