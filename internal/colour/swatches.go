package colour

// Swatch is an entry of the reference muted colour list.
type Swatch struct {
	Family string `json:"family"`
	Strong bool   `json:"strong"`
	Hex    string `json:"hex"`
}

// referenceSwatches pairs a strong and a light muted tone per colour family.
var referenceSwatches = []Swatch{
	{Family: "red", Strong: true, Hex: "#C49A9A"},
	{Family: "red", Hex: "#E8D4D4"},
	{Family: "orange", Strong: true, Hex: "#C4A89A"},
	{Family: "orange", Hex: "#E8D9C8"},
	{Family: "yellow", Strong: true, Hex: "#C4B59A"},
	{Family: "yellow", Hex: "#E8DCC4"},
	{Family: "green", Strong: true, Hex: "#A8B59A"},
	{Family: "green", Hex: "#D4E0C8"},
	{Family: "blue", Strong: true, Hex: "#9AA8C4"},
	{Family: "blue", Hex: "#C8D4E8"},
	{Family: "purple", Strong: true, Hex: "#B59AC4"},
	{Family: "purple", Hex: "#D9C8E8"},
	{Family: "pink", Strong: true, Hex: "#C4A8B5"},
	{Family: "pink", Hex: "#E8D4E0"},
	{Family: "grey", Strong: true, Hex: "#8B8B8B"},
	{Family: "grey", Hex: "#C4C4C4"},
	{Family: "brown", Strong: true, Hex: "#A89A8B"},
	{Family: "brown", Hex: "#D4C8B8"},
	{Family: "beige", Strong: true, Hex: "#B5A89A"},
	{Family: "beige", Hex: "#E0D4C8"},
}

// ReferenceSwatches returns a copy of the reference muted colour list.
func ReferenceSwatches() []Swatch {
	swatches := make([]Swatch, len(referenceSwatches))
	copy(swatches, referenceSwatches)
	return swatches
}

// Brightness returns the perceived brightness of rgb in [0,1] using the
// 0.299/0.587/0.114 channel weights.
func Brightness(rgb RGB) float64 {
	return (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255
}

// TextColour returns a readable text colour for a background: dark grey on
// bright backgrounds, white otherwise.
func TextColour(background RGB) RGB {
	if Brightness(background) > 0.5 {
		return RGB{R: 0x33, G: 0x33, B: 0x33}
	}
	return RGB{R: 0xff, G: 0xff, B: 0xff}
}
