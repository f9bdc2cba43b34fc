package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
	"github.com/muesli/termenv"
)

// PreviewRenderer draws the palette for a terminal: a swatch per role and a
// small mock-up of the title box and a card. Without Colours only the text is
// laid out.
type PreviewRenderer struct {
	Colours bool
}

func (PreviewRenderer) Name() string        { return "preview" }
func (PreviewRenderer) Description() string { return "Terminal swatches and a themed mock-up" }

func (r PreviewRenderer) Render(p colour.Palette) (map[string][]byte, error) {
	lg := lipgloss.NewRenderer(io.Discard)
	if r.Colours {
		lg.SetColorProfile(termenv.TrueColor)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	var rows []string
	for role, rc := range p.All() {
		swatch := lg.NewStyle().
			Background(lipgloss.Color(rc.Hex)).
			Width(8).
			Render("")
		label := fmt.Sprintf("%-14s %s  %s  %s", role, util.DisplayHex(rc.Hex), rc.RGB, rc.HSL)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, swatch, " ", label))
	}

	white := lipgloss.Color(Fixed().TitleText)
	title := lg.NewStyle().
		Background(lipgloss.Color(p.Strong.Hex)).
		Foreground(white).
		Padding(0, 2).
		Render("Title")
	card := lg.NewStyle().
		Background(lipgloss.Color(p.LightenedSoft.Hex)).
		Foreground(lipgloss.Color(p.Strong.Hex)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Strong.Hex)).
		Padding(0, 1).
		Render("Selling point")

	mockup := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", card)
	out := lipgloss.JoinVertical(lipgloss.Left, strings.Join(rows, "\n"), "", mockup)

	return map[string][]byte{"preview.txt": []byte(out + "\n")}, nil
}
