package output

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
)

// CodeRenderer writes the colour logic report: the extracted candidates, the
// final role colours, where each is used and how well the pair harmonises.
type CodeRenderer struct{}

func (CodeRenderer) Name() string { return "code" }
func (CodeRenderer) Description() string {
	return "Colour logic report with candidates, roles and region mapping"
}

func (CodeRenderer) Render(p colour.Palette) (map[string][]byte, error) {
	var sb strings.Builder

	sb.WriteString("// Extracted colours\n")
	for i, c := range p.Candidates {
		fmt.Fprintf(&sb, "color%d: %s  %s  %s  ratio %.2f%%", i+1, c.RGB, c.HSL, util.DisplayHex(c.Hex()), c.Ratio*100)
		if c.Synthesized {
			sb.WriteString("  (synthesized)")
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("\n// Final colours\n")
	for role, rc := range p.All() {
		fmt.Fprintf(&sb, "%-14s %s  %s  %s\n", role+":", util.DisplayHex(rc.Hex), rc.RGB, rc.HSL)
	}

	sb.WriteString("\n// Region mapping\n")
	for _, r := range regions {
		fmt.Fprintf(&sb, "%-26s %-14s %s  %s\n", r.Name+":", r.Role, util.DisplayHex(roleColour(p, r.Role).Hex), r.Detail)
	}

	fixed := Fixed()
	sb.WriteString("\n// Fixed colours\n")
	fmt.Fprintf(&sb, "%-26s %s\n", "Point numbers:", strings.Join(fixed.PointNumbers, " "))
	fmt.Fprintf(&sb, "%-26s %s\n", "Subtitle text:", fixed.SubtitleText)
	fmt.Fprintf(&sb, "%-26s %s\n", "Card background:", fixed.CardBackground)
	fmt.Fprintf(&sb, "%-26s %s\n", "Title and label text:", fixed.TitleText)

	h := p.Harmony()
	sb.WriteString("\n// Harmony\n")
	fmt.Fprintf(&sb, "distance %.1f %s\n", h.ColourDistance, mark(h.ContrastEnough))
	fmt.Fprintf(&sb, "hue difference %d %s\n", h.HueDifference, mark(h.HueHarmonious))
	fmt.Fprintf(&sb, "lightness difference %d %s\n", h.LightnessDifference, mark(h.LightnessBalanced))
	fmt.Fprintf(&sb, "mean saturation %.1f %s\n", h.MeanSaturation, mark(h.SaturationModerate))
	fmt.Fprintf(&sb, "score %d/4, %s\n", h.Score, harmonyVerdict(h))

	return map[string][]byte{"duotint-code.txt": []byte(sb.String())}, nil
}

func mark(ok bool) string {
	if ok {
		return "ok"
	}
	return "x"
}

func harmonyVerdict(h colour.Harmony) string {
	if h.Harmonious {
		return "harmonious"
	}
	return "not harmonious"
}
