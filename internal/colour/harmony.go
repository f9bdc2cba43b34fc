package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Harmony thresholds.
const (
	minColourDistance      = 50
	maxHarmoniousHueDiff   = 120
	complementaryHueDiff   = 180
	minLightnessDiff       = 20
	maxLightnessDiff       = 70
	maxMeanSaturation      = 80
	harmoniousCriteriaNeed = 3
)

// Harmony reports how well two colours sit together.
type Harmony struct {
	ColourDistance      float64 `json:"colour_distance"`
	HueDifference       int     `json:"hue_difference"`
	LightnessDifference int     `json:"lightness_difference"`
	MeanSaturation      float64 `json:"mean_saturation"`

	ContrastEnough     bool `json:"contrast_enough"`
	HueHarmonious      bool `json:"hue_harmonious"`
	LightnessBalanced  bool `json:"lightness_balanced"`
	SaturationModerate bool `json:"saturation_moderate"`

	Score      int  `json:"score"`
	Harmonious bool `json:"harmonious"`
}

// CheckHarmony scores a pair of colours on four criteria: enough RGB distance,
// related or complementary hues, a moderate lightness gap and a saturation that
// is not too high on average. The pair is harmonious when at least three hold.
func CheckHarmony(a, b RGB) Harmony {
	ha, hb := RGBToHSL(a), RGBToHSL(b)

	hueDiff := abs(ha.H - hb.H)
	hueDiff = min(hueDiff, 360-hueDiff)

	h := Harmony{
		ColourDistance:      toColorful(a).DistanceRgb(toColorful(b)) * 255,
		HueDifference:       hueDiff,
		LightnessDifference: abs(ha.L - hb.L),
		MeanSaturation:      float64(ha.S+hb.S) / 2,
	}

	h.ContrastEnough = h.ColourDistance > minColourDistance
	// The minimal hue difference never exceeds 180, so only the first arm can hold.
	h.HueHarmonious = h.HueDifference < maxHarmoniousHueDiff || h.HueDifference > complementaryHueDiff
	h.LightnessBalanced = h.LightnessDifference > minLightnessDiff && h.LightnessDifference < maxLightnessDiff
	h.SaturationModerate = h.MeanSaturation < maxMeanSaturation

	for _, ok := range []bool{h.ContrastEnough, h.HueHarmonious, h.LightnessBalanced, h.SaturationModerate} {
		if ok {
			h.Score++
		}
	}
	h.Harmonious = h.Score >= harmoniousCriteriaNeed

	return h
}

func toColorful(rgb RGB) colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
}

func abs(v int) int {
	return int(math.Abs(float64(v)))
}
