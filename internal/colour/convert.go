// Package colour derives a two-colour muted theme from an image.
//
// The pipeline samples pixels, folds them into a coarse HSL histogram, picks the
// two dominant colours, assigns them the strong (dark) and soft (light) roles and
// passes both through a muted tone mapping. Everything downstream of the decoded
// image is a pure function of the pixel data.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a #rgb or #rrggbb colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Array returns the channels as a three element array, the shape used by the
// JSON renderers.
func (rgb RGB) Array() [3]int {
	return [3]int{int(rgb.R), int(rgb.G), int(rgb.B)}
}

// Colour converts the RGB value to an opaque color.Color.
func (rgb RGB) Colour() color.Color {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, discarding alpha.
// The colour is un-premultiplied first so translucent pixels keep their hue.
func ToRGB(c color.Color) RGB {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading '#' is optional, case is ignored).
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	for _, r := range hex[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
	}

	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// HSL is a colour in HSL space with integer components: hue in degrees [0,360),
// saturation and lightness in percent [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Array returns the components as a three element array.
func (c HSL) Array() [3]int {
	return [3]int{c.H, c.S, c.L}
}

// String returns the HSL colour as "hsl(h, s%, l%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// Float returns the full precision form of c.
func (c HSL) Float() HSLf {
	return HSLf{H: float64(c.H), S: float64(c.S), L: float64(c.L)}
}

// HSLf is the unrounded form of HSL, using the same units.
type HSLf struct {
	H float64
	S float64
	L float64
}

// Round rounds every component half-up and wraps a hue of 360 back to 0.
func (c HSLf) Round() HSL {
	h := int(roundHalfUp(c.H))
	if h >= 360 {
		h -= 360
	}
	return HSL{
		H: h,
		S: int(roundHalfUp(c.S)),
		L: int(roundHalfUp(c.L)),
	}
}

// ToRGB converts c to RGB, rounding each channel half-up.
func (c HSLf) ToRGB() RGB {
	h := c.H / 360
	s := c.S / 100
	l := c.L / 100

	var r, g, b float64
	if s == 0 {
		// Achromatic (grey).
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q

		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return RGB{
		R: channel(r),
		G: channel(g),
		B: channel(b),
	}
}

// RGBToHSLf converts RGB to HSL without rounding.
func RGBToHSLf(rgb RGB) HSLf {
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	l := (maxVal + minVal) / 2

	if maxVal == minVal {
		// Achromatic: hue is undefined and reported as 0.
		return HSLf{H: 0, S: 0, L: l * 100}
	}

	d := maxVal - minVal
	var s float64
	if l > 0.5 {
		s = d / (2 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSLf{H: h * 60, S: s * 100, L: l * 100}
}

// RGBToHSL converts RGB to HSL with every component rounded to an integer.
func RGBToHSL(rgb RGB) HSL {
	return RGBToHSLf(rgb).Round()
}

// HSLToRGB converts integer HSL to RGB.
func HSLToRGB(c HSL) RGB {
	return c.Float().ToRGB()
}

// hueToRGB is a helper for HSL to RGB conversion. t is a hue fraction and may
// lie one turn outside [0,1].
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// channel scales a [0,1] value to a byte.
func channel(v float64) uint8 {
	return uint8(clampFloat(roundHalfUp(v*255), 0, 255))
}

// roundHalfUp rounds to the nearest integer with halves going towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
