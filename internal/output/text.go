package output

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
)

// HexRenderer prints one "role #RRGGBB" line per role.
type HexRenderer struct{}

func (HexRenderer) Name() string        { return "hex" }
func (HexRenderer) Description() string { return "Hex codes, one line per role" }

func (HexRenderer) Render(p colour.Palette) (map[string][]byte, error) {
	return map[string][]byte{"duotint.hex": roleLines(p, func(rc colour.RoleColour) string {
		return util.DisplayHex(rc.Hex)
	})}, nil
}

// RGBRenderer prints one "role rgb(r, g, b)" line per role.
type RGBRenderer struct{}

func (RGBRenderer) Name() string        { return "rgb" }
func (RGBRenderer) Description() string { return "CSS rgb() values, one line per role" }

func (RGBRenderer) Render(p colour.Palette) (map[string][]byte, error) {
	return map[string][]byte{"duotint.rgb": roleLines(p, func(rc colour.RoleColour) string {
		return rc.RGB.String()
	})}, nil
}

func roleLines(p colour.Palette, value func(colour.RoleColour) string) []byte {
	var sb strings.Builder
	for role, rc := range p.All() {
		fmt.Fprintf(&sb, "%-14s %s\n", role, value(rc))
	}
	return []byte(sb.String())
}
