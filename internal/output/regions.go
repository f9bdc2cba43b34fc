package output

import "github.com/jmylchreest/duotint/internal/colour"

// FixedColours are the theme colours that do not depend on the image.
type FixedColours struct {
	PointNumbers   []string `json:"pointNumbers"`
	SubtitleText   string   `json:"subtitleText"`
	CardBackground string   `json:"cardBackground"`
	TitleText      string   `json:"titleText"`
	LabelText      string   `json:"labelText"`
}

// Fixed returns the image-independent colours.
func Fixed() FixedColours {
	return FixedColours{
		PointNumbers:   []string{"#FA3F3F", "#FF8F0A", "#EFDD13", "#9EDC23", "#535ED9"},
		SubtitleText:   "#555555",
		CardBackground: "#FFFFFF",
		TitleText:      "#FFFFFF",
		LabelText:      "#FFFFFF",
	}
}

// roleNames are the display names of the roles.
var roleNames = map[colour.Role]string{
	colour.RoleStrong:        "Strong colour",
	colour.RoleSoft:          "Soft colour",
	colour.RoleLightenedSoft: "Lightened soft colour",
}

// roleUsage lists where each role is applied in the themed layout.
var roleUsage = map[colour.Role][]string{
	colour.RoleStrong: {
		"Title box background",
		"Label background",
		"Value text",
		"Selling-point text",
		"Card avatar",
		"Mind-map main node",
		"Connecting lines",
	},
	colour.RoleSoft: {
		"Selling-point card background",
		"Mind-map child node background",
	},
	colour.RoleLightenedSoft: {
		"Light background section",
		"Selling-point card background",
	},
}

// region maps a part of the themed layout to the role that colours it.
type region struct {
	Name   string
	Role   colour.Role
	Detail string
}

var regions = []region{
	{Name: "Title box", Role: colour.RoleStrong, Detail: "background, white title text"},
	{Name: "Subtitle values", Role: colour.RoleStrong, Detail: "text"},
	{Name: "Selling-point cards", Role: colour.RoleLightenedSoft, Detail: "background, strong text"},
	{Name: "Headers", Role: colour.RoleStrong, Detail: "background, white label text"},
	{Name: "Light background section", Role: colour.RoleLightenedSoft, Detail: "background"},
	{Name: "Card border", Role: colour.RoleStrong, Detail: "border"},
}

// roleColour returns the colour p uses for role.
func roleColour(p colour.Palette, role colour.Role) colour.RoleColour {
	switch role {
	case colour.RoleSoft:
		return p.Soft
	case colour.RoleLightenedSoft:
		return p.LightenedSoft
	default:
		return p.Strong
	}
}
