package colour

// Muted tone limits. Saturation is halved and held between a floor and a
// ceiling; lightness stays on its side of the role boundary within a band.
const (
	mutedSaturationFactor = 0.5
	mutedSaturationMin    = 15
	mutedSaturationMax    = 35

	mutedDarkMin  = 30
	mutedDarkMax  = 50
	mutedLightMin = 50
	mutedLightMax = 75
)

// MutedTone maps hsl to its muted ("Morandi") counterpart.
//
// Saturation becomes clamp(s*0.5, 15, 35), so a colour is never fully grey and
// never vivid. Dark colours (l < 50) keep a lightness in [30,50], light colours
// in [50,75]. Hue is unchanged. The result keeps the fractional saturation.
func MutedTone(hsl HSL) HSLf {
	s := clampFloat(float64(hsl.S)*mutedSaturationFactor, mutedSaturationMin, mutedSaturationMax)

	var l int
	if hsl.L < roleBoundary {
		l = clampInt(hsl.L, mutedDarkMin, mutedDarkMax)
	} else {
		l = clampInt(hsl.L, mutedLightMin, mutedLightMax)
	}

	return HSLf{H: float64(hsl.H), S: s, L: float64(l)}
}

// muted applies MutedTone to the colour of rc.
func (rc RoleColour) muted() RoleColour {
	return NewRoleColour(rc.Role, MutedTone(RGBToHSL(rc.RGB)).ToRGB())
}

// ApplyMutedTone maps both role colours through MutedTone and re-enforces the
// role invariant on the mapped colours.
func ApplyMutedTone(strong, soft RoleColour) (RoleColour, RoleColour) {
	return EnforceRoleInvariant(strong.muted(), soft.muted())
}
