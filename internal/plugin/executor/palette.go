package executor

import (
	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
	"github.com/jmylchreest/duotint/pkg/plugin"
)

// NewPaletteData converts a palette into the form sent to plugins.
func NewPaletteData(p colour.Palette, args map[string]string) plugin.PaletteData {
	return plugin.PaletteData{
		Strong:        colourData(p.Strong),
		Soft:          colourData(p.Soft),
		LightenedSoft: colourData(p.LightenedSoft),
		Harmonious:    p.Harmony().Harmonious,
		PluginArgs:    args,
	}
}

func colourData(rc colour.RoleColour) plugin.ColourData {
	return plugin.ColourData{
		Hex: util.DisplayHex(rc.Hex),
		RGB: rc.RGB.Array(),
		HSL: rc.HSL.Array(),
	}
}
