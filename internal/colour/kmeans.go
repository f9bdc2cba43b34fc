package colour

import (
	"github.com/EdlinOrg/prominentcolor"

	"github.com/jmylchreest/duotint/internal/security"
)

// defaultClusters is the number of k-means clusters computed per image.
const defaultClusters = 3

// KMeansSource produces one sample per k-means cluster of the sampled raster.
// Cluster seeding is randomised by the clustering library, so runs on the same
// image may differ slightly.
type KMeansSource struct {
	clusters int
}

// NewKMeansSource creates a KMeansSource with default settings.
func NewKMeansSource() *KMeansSource {
	return &KMeansSource{clusters: defaultClusters}
}

// Candidates clusters the pixels of s. Clusters are returned largest first with
// Ratio set to their share of all clustered pixels. Rasters with fewer distinct
// opaque colours than clusters, or that fail to cluster, fall back to the
// histogram.
func (k *KMeansSource) Candidates(s Samples) ([]ColourSample, error) {
	if distinctColours(s, k.clusters) < k.clusters {
		return HistogramSource{}.Candidates(s)
	}

	size := uint(max(s.Width(), s.Height())) // #nosec G115 -- raster sides are positive and bounded
	items, err := prominentcolor.KmeansWithAll(k.clusters, s.raster, prominentcolor.ArgumentNoCropping, size, []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return HistogramSource{}.Candidates(s)
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}
	if total == 0 {
		return nil, nil
	}

	samples := make([]ColourSample, 0, len(items))
	for _, item := range items {
		if item.Cnt == 0 {
			continue
		}
		rgb := RGB{
			R: security.SafeUint8FromUint32(item.Color.R),
			G: security.SafeUint8FromUint32(item.Color.G),
			B: security.SafeUint8FromUint32(item.Color.B),
		}
		hsl := RGBToHSL(rgb)
		samples = append(samples, ColourSample{
			RGB:   rgb,
			HSL:   hsl,
			Key:   KeyFor(hsl),
			Count: item.Cnt,
			Ratio: float64(item.Cnt) / float64(total),
		})
	}

	return RankSamples(samples), nil
}

// distinctColours counts the distinct opaque colours of s, stopping at limit.
func distinctColours(s Samples, limit int) int {
	seen := make(map[RGB]struct{}, limit)
	for rgb := range s.Pixels() {
		seen[rgb] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}
