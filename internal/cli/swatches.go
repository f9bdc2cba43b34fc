package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
)

func newSwatchesCmd() *cobra.Command {
	var colours bool

	cmd := &cobra.Command{
		Use:   "swatches",
		Short: "List the reference muted swatches",
		Long: `List the reference muted colours: a strong and a light tone for each
colour family, with the text colour that reads best on each.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, err := io.WriteString(out, renderSwatches(colours || isTerminal(out)))
			return err
		},
	}
	cmd.Flags().BoolVar(&colours, "colour", false, "draw colour blocks even when stdout is not a terminal")

	return cmd
}

func renderSwatches(colours bool) string {
	headers := []string{"Family", "Tone", "Hex", "Text"}
	var lg *lipgloss.Renderer
	if colours {
		headers = append(headers, "Sample")
		lg = lipgloss.NewRenderer(io.Discard)
		lg.SetColorProfile(termenv.TrueColor)
	}

	table := NewTable(headers)
	for _, s := range colour.ReferenceSwatches() {
		tone := "light"
		if s.Strong {
			tone = "strong"
		}

		rgb, err := colour.ParseHex(s.Hex)
		if err != nil {
			// The reference list is static; a bad entry is a programming error.
			panic(fmt.Sprintf("invalid reference swatch %q: %v", s.Hex, err))
		}
		text := util.DisplayHex(colour.TextColour(rgb).Hex())

		row := []string{s.Family, tone, s.Hex, text}
		if lg != nil {
			row = append(row, lg.NewStyle().
				Background(lipgloss.Color(s.Hex)).
				Foreground(lipgloss.Color(text)).
				Padding(0, 1).
				Render("Aa"))
		}
		table.AddRow(row)
	}
	return table.Render()
}
