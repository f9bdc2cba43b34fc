package colour

const (
	// roleBoundary splits dark (strong) from light (soft) lightness.
	roleBoundary = 50

	// forcedStrongLightness and forcedSoftLightness are the lightness limits
	// applied when a colour sits on the wrong side of roleBoundary.
	forcedStrongLightness = 45
	forcedSoftLightness   = 55

	saturationWeight = 0.6
	darknessWeight   = 0.4
)

// Role names the job a colour does in the theme.
type Role string

const (
	// RoleStrong is the darker accent used for primary emphasis.
	RoleStrong Role = "strong"
	// RoleSoft is the lighter accent used for secondary emphasis.
	RoleSoft Role = "soft"
	// RoleLightenedSoft is the soft accent lightened for background use.
	RoleLightenedSoft Role = "lightened-soft"
)

// String returns the role name.
func (r Role) String() string {
	return string(r)
}

// RoleColour is a colour bound to a theme role. HSL is always derived from RGB.
type RoleColour struct {
	Role Role   `json:"role"`
	Hex  string `json:"hex"`
	RGB  RGB    `json:"rgb"`
	HSL  HSL    `json:"hsl"`
}

// NewRoleColour binds rgb to role.
func NewRoleColour(role Role, rgb RGB) RoleColour {
	return RoleColour{
		Role: role,
		Hex:  rgb.Hex(),
		RGB:  rgb,
		HSL:  RGBToHSL(rgb),
	}
}

// withLightness returns rc with its lightness replaced, keeping hue and
// saturation. The remap starts from the HSL of the rounded RGB, not from the
// carried HSL, which may be an exact synthesised triple.
func (rc RoleColour) withLightness(l int) RoleColour {
	hsl := RGBToHSL(rc.RGB)
	hsl.L = l
	return NewRoleColour(rc.Role, HSLToRGB(hsl))
}

// withRole returns rc bound to another role.
func (rc RoleColour) withRole(role Role) RoleColour {
	rc.Role = role
	return rc
}

// VisualWeight scores how heavy a colour reads. Saturation counts for more
// than darkness.
func VisualWeight(hsl HSL) float64 {
	return float64(hsl.S)/100*saturationWeight + float64(100-hsl.L)/100*darknessWeight
}

// AssignRoles makes the heavier of the two samples the strong colour and the
// other the soft colour, then enforces the dark/light role invariant.
// On equal weight the second sample becomes strong.
func AssignRoles(first, second ColourSample) (strong, soft RoleColour) {
	heavy, light := second, first
	if VisualWeight(first.HSL) > VisualWeight(second.HSL) {
		heavy, light = first, second
	}

	strong = sampleRoleColour(RoleStrong, heavy)
	soft = sampleRoleColour(RoleSoft, light)
	return EnforceRoleInvariant(strong, soft)
}

// sampleRoleColour keeps the sample's own HSL, which for synthesised samples
// is exact rather than recomputed from the rounded RGB.
func sampleRoleColour(role Role, s ColourSample) RoleColour {
	return RoleColour{Role: role, Hex: s.RGB.Hex(), RGB: s.RGB, HSL: s.HSL}
}

// EnforceRoleInvariant guarantees strong.HSL.L < 50 <= soft.HSL.L.
//
// A light strong colour swaps with a dark soft colour; if both are light the
// strong colour is darkened to at most 45. If both are dark the soft colour is
// lightened to at least 55. Calling it on its own output changes nothing.
func EnforceRoleInvariant(strong, soft RoleColour) (RoleColour, RoleColour) {
	if strong.HSL.L >= roleBoundary {
		if soft.HSL.L < roleBoundary {
			return soft.withRole(RoleStrong), strong.withRole(RoleSoft)
		}
		return strong.withLightness(min(strong.HSL.L, forcedStrongLightness)), soft
	}

	if soft.HSL.L < roleBoundary {
		return strong, soft.withLightness(max(soft.HSL.L, forcedSoftLightness))
	}
	return strong, soft
}
