package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
)

func newConvertCmd() *cobra.Command {
	var lighten int

	cmd := &cobra.Command{
		Use:   "convert <hex>",
		Short: "Show how duotint sees a colour",
		Long: `Show the RGB and HSL values of a hex colour together with its muted
tone, the lightened variant and the text colour chosen for it.

Examples:
  duotint convert "#c81e1e"
  duotint convert 6b6b6b --lighten 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lighten < colour.MinLightenAmount || lighten > colour.MaxLightenAmount {
				return fmt.Errorf("lighten amount must be between %d and %d, got %d",
					colour.MinLightenAmount, colour.MaxLightenAmount, lighten)
			}
			rgb, err := colour.ParseHex(args[0])
			if err != nil {
				return err
			}
			return writeConversion(cmd.OutOrStdout(), rgb, lighten)
		},
	}
	cmd.Flags().IntVar(&lighten, "lighten", colour.DefaultLightenAmount, "lightness added for the lightened variant")

	return cmd
}

func writeConversion(w io.Writer, rgb colour.RGB, lighten int) error {
	hsl := colour.RGBToHSL(rgb)
	muted := colour.MutedTone(hsl).ToRGB()
	lightened := colour.Lighten(rgb, lighten)

	table := NewTable([]string{"Variant", "Hex", "RGB", "HSL"})
	for _, row := range []struct {
		name string
		rgb  colour.RGB
	}{
		{"input", rgb},
		{"muted", muted},
		{fmt.Sprintf("lightened +%d", lighten), lightened},
		{"text on input", colour.TextColour(rgb)},
	} {
		table.AddRow([]string{row.name, util.DisplayHex(row.rgb.Hex()), row.rgb.String(), colour.RGBToHSL(row.rgb).String()})
	}

	_, err := io.WriteString(w, table.Render())
	return err
}
