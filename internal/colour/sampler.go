package colour

import (
	"image"
	"iter"

	xdraw "golang.org/x/image/draw"
)

const (
	// DefaultMaxDimension bounds the longest side of the sampled raster.
	DefaultMaxDimension = 200

	// alphaThreshold is the minimum alpha for a pixel to count as opaque.
	alphaThreshold = 128
)

// Samples is the sampled raster of an image.
// Total counts every pixel of the raster, including transparent ones that
// Pixels skips; it is the denominator for histogram ratios.
type Samples struct {
	raster *image.NRGBA
	Total  int
}

// Sample scales img so that its longest side is at most maxDimension and
// returns the resulting raster. Images already within the bound are sampled at
// their native size. A maxDimension below 1 falls back to DefaultMaxDimension.
func Sample(img image.Image, maxDimension int) Samples {
	if maxDimension < 1 {
		maxDimension = DefaultMaxDimension
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return Samples{raster: image.NewNRGBA(image.Rectangle{})}
	}

	width, height := scaledSize(bounds.Dx(), bounds.Dy(), maxDimension)
	raster := image.NewNRGBA(image.Rect(0, 0, width, height))

	if width == bounds.Dx() && height == bounds.Dy() {
		xdraw.Draw(raster, raster.Bounds(), img, bounds.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(raster, raster.Bounds(), img, bounds, xdraw.Src, nil)
	}

	return Samples{raster: raster, Total: width * height}
}

// Width returns the width of the sampled raster.
func (s Samples) Width() int {
	if s.raster == nil {
		return 0
	}
	return s.raster.Rect.Dx()
}

// Height returns the height of the sampled raster.
func (s Samples) Height() int {
	if s.raster == nil {
		return 0
	}
	return s.raster.Rect.Dy()
}

// Pixels yields the RGB value of every opaque pixel in row-major order.
// Pixels with alpha below 128 are skipped.
func (s Samples) Pixels() iter.Seq[RGB] {
	return func(yield func(RGB) bool) {
		if s.raster == nil {
			return
		}
		pix := s.raster.Pix
		for i := 0; i+3 < len(pix); i += 4 {
			if pix[i+3] < alphaThreshold {
				continue
			}
			if !yield(RGB{R: pix[i], G: pix[i+1], B: pix[i+2]}) {
				return
			}
		}
	}
}

// scaledSize returns the raster size for a width x height image bounded by
// maxDimension on its longest side, preserving aspect ratio.
func scaledSize(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	// The longest side becomes maxDimension and the other is truncated.
	if width >= height {
		return maxDimension, max(height*maxDimension/width, 1)
	}
	return max(width*maxDimension/height, 1), maxDimension
}
