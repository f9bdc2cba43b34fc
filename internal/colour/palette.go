package colour

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Palette is the result of one extraction run: the strong and soft role colours,
// the background tint derived from the soft colour and the two raw candidates
// the roles were derived from.
type Palette struct {
	Strong        RoleColour      `json:"strong"`
	Soft          RoleColour      `json:"soft"`
	LightenedSoft RoleColour      `json:"lightened_soft"`
	Candidates    [2]ColourSample `json:"candidates"`
}

// initialStrong and initialSoft are shown before any image has been processed.
var (
	initialStrong = RGB{R: 0x6b, G: 0x6b, B: 0x6b}
	initialSoft   = RGB{R: 0xef, G: 0xef, B: 0xef}
)

// InitialPalette returns the neutral palette used before the first image.
func InitialPalette() Palette {
	soft := NewRoleColour(RoleSoft, initialSoft)
	return Palette{
		Strong:        NewRoleColour(RoleStrong, initialStrong),
		Soft:          soft,
		LightenedSoft: LightenedSoft(soft, DefaultLightenAmount),
	}
}

// Derive turns two candidate colours into a finished palette: roles are
// assigned, both colours are muted and the soft colour is lightened by
// lightenAmount for the background tint.
func Derive(first, second ColourSample, lightenAmount int) Palette {
	strong, soft := ApplyMutedTone(AssignRoles(first, second))
	return Palette{
		Strong:        strong,
		Soft:          soft,
		LightenedSoft: LightenedSoft(soft, lightenAmount),
		Candidates:    [2]ColourSample{first, second},
	}
}

// Roles returns the role colours in display order.
func (p Palette) Roles() []RoleColour {
	return []RoleColour{p.Strong, p.Soft, p.LightenedSoft}
}

// All returns an iterator over the role colours keyed by role.
func (p Palette) All() iter.Seq2[Role, RoleColour] {
	return func(yield func(Role, RoleColour) bool) {
		for _, rc := range p.Roles() {
			if !yield(rc.Role, rc) {
				return
			}
		}
	}
}

// Harmony scores the strong and soft colours as a pair.
func (p Palette) Harmony() Harmony {
	return CheckHarmony(p.Strong.RGB, p.Soft.RGB)
}

// ToJSON converts the palette to indented JSON.
func (p Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// String returns a human-readable representation of the palette.
func (p Palette) String() string {
	var sb strings.Builder
	for role, rc := range p.All() {
		fmt.Fprintf(&sb, "%-15s %s  %s  %s\n", role, strings.ToUpper(rc.Hex), rc.RGB, rc.HSL)
	}
	return sb.String()
}
