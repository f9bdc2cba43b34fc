package output

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
)

// JSONRenderer writes the palette document consumed by page templates.
type JSONRenderer struct{}

type jsonColour struct {
	Name  string   `json:"name"`
	Hex   string   `json:"hex"`
	RGB   [3]int   `json:"rgb"`
	HSL   [3]int   `json:"hsl"`
	Usage []string `json:"usage"`
}

type jsonPalette struct {
	Strong        jsonColour   `json:"strong"`
	Soft          jsonColour   `json:"soft"`
	LightenedSoft jsonColour   `json:"lightenedSoft"`
	Fixed         FixedColours `json:"fixed"`
}

type jsonDocument struct {
	Palette jsonPalette `json:"palette"`
}

func (JSONRenderer) Name() string        { return "json" }
func (JSONRenderer) Description() string { return "Palette document with usage notes and fixed colours" }

func (JSONRenderer) Render(p colour.Palette) (map[string][]byte, error) {
	doc := jsonDocument{Palette: jsonPalette{
		Strong:        newJSONColour(p.Strong),
		Soft:          newJSONColour(p.Soft),
		LightenedSoft: newJSONColour(p.LightenedSoft),
		Fixed:         Fixed(),
	}}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}
	return map[string][]byte{"duotint.json": append(data, '\n')}, nil
}

func newJSONColour(rc colour.RoleColour) jsonColour {
	return jsonColour{
		Name:  roleNames[rc.Role],
		Hex:   util.DisplayHex(rc.Hex),
		RGB:   rc.RGB.Array(),
		HSL:   rc.HSL.Array(),
		Usage: roleUsage[rc.Role],
	}
}
