// Package config resolves duotint settings from built-in defaults, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/util/http"
)

// Environment variables read by LoadFromEnv.
const (
	EnvMaxDimension  = "DUOTINT_MAX_DIMENSION"
	EnvLightenAmount = "DUOTINT_LIGHTEN_AMOUNT"
	EnvAlgorithm     = "DUOTINT_ALGORITHM"
	EnvCacheDir      = "DUOTINT_CACHE_DIR"
	EnvHTTPTimeout   = "DUOTINT_HTTP_TIMEOUT"
	EnvLogFormat     = "DUOTINT_LOG_FORMAT"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	minHTTPTimeout = time.Second
	maxHTTPTimeout = 5 * time.Minute
)

// Config holds the resolved settings for one invocation.
type Config struct {
	Extractor colour.ExtractorConfig

	// CacheDir overrides the image cache location. Empty uses the default.
	CacheDir string

	HTTPTimeout time.Duration
	LogFormat   string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Extractor:   colour.DefaultExtractorConfig(),
		HTTPTimeout: http.DefaultTimeout,
		LogFormat:   LogFormatText,
	}
}

// Validate checks every setting against its bounds.
func (c Config) Validate() error {
	if err := c.Extractor.Validate(); err != nil {
		return err
	}
	if c.HTTPTimeout < minHTTPTimeout || c.HTTPTimeout > maxHTTPTimeout {
		return fmt.Errorf("http timeout must be between %s and %s, got %s", minHTTPTimeout, maxHTTPTimeout, c.HTTPTimeout)
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("log format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat)
	}
	return nil
}

// LoadFromEnv returns the defaults overridden by any DUOTINT_* variables set
// in the environment. Unset or empty variables keep their default.
func LoadFromEnv() (Config, error) {
	cfg := Default()

	if v, ok, err := envInt(EnvMaxDimension, colour.MinMaxDimension, colour.MaxMaxDimension); err != nil {
		return cfg, err
	} else if ok {
		cfg.Extractor.MaxDimension = v
	}

	if v, ok, err := envInt(EnvLightenAmount, colour.MinLightenAmount, colour.MaxLightenAmount); err != nil {
		return cfg, err
	} else if ok {
		cfg.Extractor.LightenAmount = v
	}

	if v := envString(EnvAlgorithm); v != "" {
		alg := colour.Algorithm(strings.ToLower(v))
		if !colour.IsValidAlgorithm(alg) {
			return cfg, fmt.Errorf("%s: %w: %q", EnvAlgorithm, colour.ErrUnknownAlgorithm, v)
		}
		cfg.Extractor.Algorithm = alg
	}

	if v := envString(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}

	if v, ok, err := envDuration(EnvHTTPTimeout, minHTTPTimeout, maxHTTPTimeout); err != nil {
		return cfg, err
	} else if ok {
		cfg.HTTPTimeout = v
	}

	if v := envString(EnvLogFormat); v != "" {
		format := strings.ToLower(v)
		if format != LogFormatText && format != LogFormatJSON {
			return cfg, fmt.Errorf("%s: unknown log format %q", EnvLogFormat, v)
		}
		cfg.LogFormat = format
	}

	return cfg, nil
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envInt(key string, lo, hi int) (int, bool, error) {
	raw := envString(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	if v < lo || v > hi {
		return 0, false, fmt.Errorf("%s: must be between %d and %d, got %d", key, lo, hi, v)
	}
	return v, true, nil
}

// envDuration accepts Go durations ("30s") and bare integers as seconds.
func envDuration(key string, lo, hi time.Duration) (time.Duration, bool, error) {
	raw := envString(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		secs, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return 0, false, fmt.Errorf("%s: invalid duration %q", key, raw)
		}
		v = time.Duration(secs) * time.Second
	}
	if v < lo || v > hi {
		return 0, false, fmt.Errorf("%s: must be between %s and %s, got %s", key, lo, hi, v)
	}
	return v, true, nil
}

// Flags holds the extraction flags registered on one command.
type Flags struct {
	fs *pflag.FlagSet

	algorithm    string
	maxDimension int
	lighten      int
	cacheDir     string
	httpTimeout  time.Duration
}

// Flag names registered by BindFlags.
const (
	FlagAlgorithm    = "algorithm"
	FlagMaxDimension = "max-dimension"
	FlagLighten      = "lighten"
	FlagCacheDir     = "cache-dir"
	FlagHTTPTimeout  = "http-timeout"
)

// BindFlags registers the extraction flags on fs. The defaults shown in help
// are the built-in ones; Apply only overrides settings whose flag was set.
func BindFlags(fs *pflag.FlagSet) *Flags {
	def := Default()
	f := &Flags{fs: fs}

	fs.StringVarP(&f.algorithm, FlagAlgorithm, "a", string(def.Extractor.Algorithm),
		fmt.Sprintf("Candidate algorithm (%s)", joinAlgorithms()))
	fs.IntVar(&f.maxDimension, FlagMaxDimension, def.Extractor.MaxDimension,
		"Longest side of the sampled image in pixels")
	fs.IntVar(&f.lighten, FlagLighten, def.Extractor.LightenAmount,
		"Lightness added to the soft colour for the background tint")
	fs.StringVar(&f.cacheDir, FlagCacheDir, "", "Directory for cached remote images")
	fs.DurationVar(&f.httpTimeout, FlagHTTPTimeout, def.HTTPTimeout, "Timeout for fetching remote images")

	return f
}

// Apply returns cfg with every changed flag applied on top.
func (f *Flags) Apply(cfg Config) Config {
	if f.fs.Changed(FlagAlgorithm) {
		cfg.Extractor.Algorithm = colour.Algorithm(strings.ToLower(f.algorithm))
	}
	if f.fs.Changed(FlagMaxDimension) {
		cfg.Extractor.MaxDimension = f.maxDimension
	}
	if f.fs.Changed(FlagLighten) {
		cfg.Extractor.LightenAmount = f.lighten
	}
	if f.fs.Changed(FlagCacheDir) {
		cfg.CacheDir = f.cacheDir
	}
	if f.fs.Changed(FlagHTTPTimeout) {
		cfg.HTTPTimeout = f.httpTimeout
	}
	return cfg
}

// Resolve loads the environment, applies the changed flags and validates
// the result.
func (f *Flags) Resolve() (Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return cfg, err
	}
	cfg = f.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func joinAlgorithms() string {
	names := make([]string, 0, len(colour.ValidAlgorithms()))
	for _, alg := range colour.ValidAlgorithms() {
		names = append(names, string(alg))
	}
	return strings.Join(names, ", ")
}
