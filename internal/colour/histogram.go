package colour

const (
	hueBucketSize        = 10
	saturationBucketSize = 20
	lightnessBucketSize  = 20
)

// BucketKey is the quantised HSL grouping key of a histogram bucket.
type BucketKey struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// KeyFor quantises hsl into its bucket: 36 hue buckets of 10 degrees and 5
// saturation and lightness buckets of 20 percent each.
func KeyFor(hsl HSL) BucketKey {
	return BucketKey{
		H: hsl.H / hueBucketSize * hueBucketSize,
		S: hsl.S / saturationBucketSize * saturationBucketSize,
		L: hsl.L / lightnessBucketSize * lightnessBucketSize,
	}
}

// ColourSample is a histogram bucket (or a synthesised stand-in for one) with
// its representative colour and share of the sampled pixels.
type ColourSample struct {
	RGB         RGB       `json:"rgb"`
	HSL         HSL       `json:"hsl"`
	Key         BucketKey `json:"key"`
	Count       int       `json:"count"`
	Ratio       float64   `json:"ratio"`
	Synthesized bool      `json:"synthesized,omitempty"`
}

// Hex returns the sample colour as a hex string.
func (s ColourSample) Hex() string {
	return s.RGB.Hex()
}

type bucket struct {
	rgb   RGB
	count int
}

// Histogram accumulates pixel counts per quantised HSL bucket.
// Each bucket keeps the RGB of the last pixel that fell into it, not an average.
type Histogram struct {
	buckets map[BucketKey]*bucket
	order   []BucketKey
	total   int
}

// NewHistogram returns an empty histogram whose ratios are relative to total.
func NewHistogram(total int) *Histogram {
	return &Histogram{
		buckets: make(map[BucketKey]*bucket),
		total:   total,
	}
}

// BuildHistogram folds every opaque pixel of s into a new histogram.
func BuildHistogram(s Samples) *Histogram {
	h := NewHistogram(s.Total)
	for rgb := range s.Pixels() {
		h.Add(rgb)
	}
	return h
}

// Add counts one pixel.
func (h *Histogram) Add(rgb RGB) {
	key := KeyFor(RGBToHSL(rgb))
	if b, ok := h.buckets[key]; ok {
		b.rgb = rgb
		b.count++
		return
	}
	h.buckets[key] = &bucket{rgb: rgb, count: 1}
	h.order = append(h.order, key)
}

// Len returns the number of non-empty buckets.
func (h *Histogram) Len() int {
	return len(h.order)
}

// Total returns the ratio denominator.
func (h *Histogram) Total() int {
	return h.total
}

// Samples returns one sample per bucket in order of first appearance.
// A histogram with a zero total has no samples.
func (h *Histogram) Samples() []ColourSample {
	if h.total <= 0 {
		return nil
	}

	samples := make([]ColourSample, 0, len(h.order))
	for _, key := range h.order {
		b := h.buckets[key]
		samples = append(samples, ColourSample{
			RGB:   b.rgb,
			HSL:   RGBToHSL(b.rgb),
			Key:   key,
			Count: b.count,
			Ratio: float64(b.count) / float64(h.total),
		})
	}
	return samples
}
