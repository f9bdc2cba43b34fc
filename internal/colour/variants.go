package colour

const (
	// DefaultLightenAmount is the lightness added to the soft colour to derive
	// the background tint.
	DefaultLightenAmount = 15

	maxLightenedLightness = 95
)

// Lighten raises the HSL lightness of rgb by amount, capped at 95.
func Lighten(rgb RGB, amount int) RGB {
	hsl := RGBToHSL(rgb)
	hsl.L = min(hsl.L+amount, maxLightenedLightness)
	return HSLToRGB(hsl)
}

// LightenHex lightens a hex colour. Unparseable input is returned unchanged
// with ok set to false.
func LightenHex(hex string, amount int) (lightened string, ok bool) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return hex, false
	}
	return Lighten(rgb, amount).Hex(), true
}

// LightenedSoft derives the background tint from the soft colour.
func LightenedSoft(soft RoleColour, amount int) RoleColour {
	return NewRoleColour(RoleLightenedSoft, Lighten(soft.RGB, amount))
}
