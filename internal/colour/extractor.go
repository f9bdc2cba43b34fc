package colour

import (
	"errors"
	"fmt"
	"image"
	"slices"
)

// ErrUnknownAlgorithm is returned for an algorithm name that is not registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm selects how the two candidate colours are found.
type Algorithm string

const (
	// AlgorithmHistogram picks the two most populated coarse HSL buckets.
	AlgorithmHistogram Algorithm = "histogram"

	// AlgorithmKMeans clusters the sampled pixels and picks the two largest clusters.
	AlgorithmKMeans Algorithm = "kmeans"
)

// Configuration bounds.
const (
	MinMaxDimension  = 1
	MaxMaxDimension  = 4096
	MinLightenAmount = 0
	MaxLightenAmount = 100
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmHistogram,
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm     Algorithm
	MaxDimension  int
	LightenAmount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:     AlgorithmHistogram,
		MaxDimension:  DefaultMaxDimension,
		LightenAmount: DefaultLightenAmount,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("%w: %q (valid algorithms: %v)", ErrUnknownAlgorithm, c.Algorithm, ValidAlgorithms())
	}
	if c.MaxDimension < MinMaxDimension || c.MaxDimension > MaxMaxDimension {
		return fmt.Errorf("max dimension must be between %d and %d, got %d", MinMaxDimension, MaxMaxDimension, c.MaxDimension)
	}
	if c.LightenAmount < MinLightenAmount || c.LightenAmount > MaxLightenAmount {
		return fmt.Errorf("lighten amount must be between %d and %d, got %d", MinLightenAmount, MaxLightenAmount, c.LightenAmount)
	}
	return nil
}

// CandidateSource produces the colour samples the dominant pair is chosen from.
type CandidateSource interface {
	Candidates(s Samples) ([]ColourSample, error)
}

// HistogramSource produces one sample per coarse HSL bucket.
type HistogramSource struct{}

// Candidates returns the histogram samples of s in order of first appearance.
func (HistogramSource) Candidates(s Samples) ([]ColourSample, error) {
	return BuildHistogram(s).Samples(), nil
}

// Extractor runs the extraction pipeline with a fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	config ExtractorConfig
	source CandidateSource
}

// NewExtractor creates an Extractor for cfg.
// Returns an error if the configuration is invalid.
func NewExtractor(cfg ExtractorConfig) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var source CandidateSource
	switch cfg.Algorithm {
	case AlgorithmKMeans:
		source = NewKMeansSource()
	default:
		source = HistogramSource{}
	}

	return &Extractor{config: cfg, source: source}, nil
}

// Config returns the configuration the extractor was built with.
func (e *Extractor) Config() ExtractorConfig {
	return e.config
}

// Extract derives the palette of img.
func (e *Extractor) Extract(img image.Image) (Palette, error) {
	if img == nil {
		return Palette{}, fmt.Errorf("image cannot be nil")
	}

	samples := Sample(img, e.config.MaxDimension)
	candidates, err := e.source.Candidates(samples)
	if err != nil {
		return Palette{}, fmt.Errorf("failed to find candidate colours: %w", err)
	}

	first, second := SelectDominantPair(candidates)
	return Derive(first, second, e.config.LightenAmount), nil
}

// Extract derives the palette of img with cfg.
func Extract(img image.Image, cfg ExtractorConfig) (Palette, error) {
	e, err := NewExtractor(cfg)
	if err != nil {
		return Palette{}, err
	}
	return e.Extract(img)
}
