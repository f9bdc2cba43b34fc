package output

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util"
)

// TemplateFuncs returns the functions available to renderer templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Format conversion.
		"hex":        hexFunc,
		"hexNoHash":  hexNoHashFunc,
		"rgb":        rgbFunc,
		"rgba":       rgbaFunc,
		"rgbDecimal": rgbDecimalFunc,
		"hsl":        hslFunc,

		// Derived colours.
		"lighten":    lightenFunc,
		"textColour": textColourFunc,

		// Pipe-friendly string helpers.
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,

		"inc": func(i int) int { return i + 1 },
	}
}

// hexFunc returns the colour as #RRGGBB.
func hexFunc(rc colour.RoleColour) string {
	return util.DisplayHex(rc.Hex)
}

// hexNoHashFunc returns the colour as RRGGBB.
func hexNoHashFunc(rc colour.RoleColour) string {
	return util.StripHash(util.DisplayHex(rc.Hex))
}

func rgbFunc(rc colour.RoleColour) string {
	return rc.RGB.String()
}

// rgbaFunc returns CSS rgba() with the given alpha in [0,1].
func rgbaFunc(rc colour.RoleColour, alpha float64) string {
	alpha = max(0, min(alpha, 1))
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", rc.RGB.R, rc.RGB.G, rc.RGB.B, alpha)
}

// rgbDecimalFunc returns "r, g, b" for use inside rgb(var(...)).
func rgbDecimalFunc(rc colour.RoleColour) string {
	return fmt.Sprintf("%d, %d, %d", rc.RGB.R, rc.RGB.G, rc.RGB.B)
}

func hslFunc(rc colour.RoleColour) string {
	return rc.HSL.String()
}

// lightenFunc returns the colour lightened by amount as #RRGGBB.
func lightenFunc(amount int, rc colour.RoleColour) string {
	return util.DisplayHex(colour.Lighten(rc.RGB, amount).Hex())
}

// textColourFunc returns a readable text colour for the colour as a background.
func textColourFunc(rc colour.RoleColour) string {
	return util.DisplayHex(colour.TextColour(rc.RGB).Hex())
}

// trimPrefixFunc takes the prefix first so it works in pipes:
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// replaceFunc takes old and new first so it works in pipes:
//
//	{{ value | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
