package colour

import (
	"cmp"
	"slices"
)

const (
	// synthesizedRatio is the display ratio given to a synthesised second colour.
	synthesizedRatio = 0.3

	// complementLightnessBoost and complementLightnessCap shape the synthesised
	// second colour when an image only yields one bucket.
	complementLightnessBoost = 40
	complementLightnessCap   = 85
)

// neutralDefault stands in for the first colour when nothing was sampled.
var neutralDefault = ColourSample{
	RGB:   RGB{R: 107, G: 107, B: 107},
	HSL:   HSL{H: 0, S: 0, L: 42},
	Key:   BucketKey{H: 0, S: 0, L: 40},
	Ratio: 0.5,
}

// NeutralDefault returns the sample used when an image has no opaque pixels.
func NeutralDefault() ColourSample {
	return neutralDefault
}

// RankSamples orders samples by ratio, highest first. The sort is stable so
// equal ratios keep their incoming order.
func RankSamples(samples []ColourSample) []ColourSample {
	ranked := slices.Clone(samples)
	slices.SortStableFunc(ranked, func(a, b ColourSample) int {
		return cmp.Compare(b.Ratio, a.Ratio)
	})
	return ranked
}

// SelectDominantPair returns the two highest ratio samples. An empty input
// yields the neutral default as the first colour, and a missing second colour
// is synthesised from the first.
func SelectDominantPair(samples []ColourSample) (ColourSample, ColourSample) {
	ranked := RankSamples(samples)

	first := neutralDefault
	if len(ranked) > 0 {
		first = ranked[0]
	}

	if len(ranked) > 1 {
		return first, ranked[1]
	}
	return first, Complement(first)
}

// Complement synthesises a second colour from s: the opposite hue, the same
// saturation and a lightness raised by 40 (at most 85).
func Complement(s ColourSample) ColourSample {
	base := RGBToHSL(s.RGB)
	hsl := HSL{
		H: (base.H + 180) % 360,
		S: base.S,
		L: min(base.L+complementLightnessBoost, complementLightnessCap),
	}

	return ColourSample{
		RGB:         HSLToRGB(hsl),
		HSL:         hsl,
		Key:         KeyFor(hsl),
		Ratio:       synthesizedRatio,
		Synthesized: true,
	}
}
