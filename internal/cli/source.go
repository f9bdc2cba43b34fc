package cli

import (
	"context"
	"errors"
	"fmt"
	goimage "image"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/duotint/internal/config"
	"github.com/jmylchreest/duotint/internal/image"
	"github.com/jmylchreest/duotint/internal/source/googlegenai"
	"github.com/jmylchreest/duotint/internal/util/imagecache"
)

var errNoSource = errors.New("an image path, URL or \"-\" is required (or --prompt)")

// sourceOptions selects where the image comes from.
type sourceOptions struct {
	cache bool

	prompt      string
	saveImage   string
	model       string
	aspectRatio string
	backend     string
}

func (s *sourceOptions) register(fs *pflag.FlagSet, withPrompt bool) {
	fs.BoolVar(&s.cache, "cache", false, "cache downloaded and generated images on disk")
	if !withPrompt {
		return
	}
	fs.StringVar(&s.prompt, "prompt", "", "generate the image from a text prompt with Google Imagen (needs GOOGLE_API_KEY)")
	fs.StringVar(&s.saveImage, "save-image", "", "with --prompt, also save the generated image to this path")
	fs.StringVar(&s.model, "genai-model", googlegenai.DefaultModel, "image model used with --prompt")
	fs.StringVar(&s.aspectRatio, "aspect-ratio", googlegenai.DefaultAspectRatio, "aspect ratio of the generated image")
	fs.StringVar(&s.backend, "genai-backend", googlegenai.BackendGeminiAPI, "genai backend (gemini-api, vertex-ai)")
}

// cacheDir returns the directory used when caching is on, or "" when it is off.
func (s *sourceOptions) cacheDir(cfg config.Config) (string, error) {
	if !s.cache {
		return "", nil
	}
	if cfg.CacheDir != "" {
		return cfg.CacheDir, nil
	}
	return imagecache.DefaultCacheDir()
}

func (s *sourceOptions) loader(cfg config.Config, stdin io.Reader) (*image.SmartLoader, error) {
	dir, err := s.cacheDir(cfg)
	if err != nil {
		return nil, err
	}
	return image.NewSmartLoader(image.SmartLoaderOptions{
		Timeout:  cfg.HTTPTimeout,
		Cache:    s.cache,
		CacheDir: dir,
		Stdin:    stdin,
	}), nil
}

// load returns the image and a label describing where it came from.
func (s *sourceOptions) load(ctx context.Context, logger hclog.Logger, cfg config.Config, args []string, stdin io.Reader) (goimage.Image, string, error) {
	if s.prompt != "" {
		if len(args) > 0 {
			return nil, "", fmt.Errorf("--prompt cannot be combined with an image argument")
		}
		return s.generate(ctx, logger, cfg)
	}
	if len(args) == 0 {
		return nil, "", errNoSource
	}

	loader, err := s.loader(cfg, stdin)
	if err != nil {
		return nil, "", err
	}

	logger.Debug("loading image", "source", args[0])
	img, err := loader.Load(ctx, args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to load image: %w", err)
	}
	b := img.Bounds()
	logger.Debug("image loaded", "width", b.Dx(), "height", b.Dy())
	return img, args[0], nil
}

func (s *sourceOptions) generate(ctx context.Context, logger hclog.Logger, cfg config.Config) (goimage.Image, string, error) {
	dir, err := s.cacheDir(cfg)
	if err != nil {
		return nil, "", err
	}

	gen, err := googlegenai.New(googlegenai.Options{
		Model:       s.model,
		AspectRatio: s.aspectRatio,
		Backend:     s.backend,
		CacheDir:    dir,
		Logger:      logger.Named("genai"),
	})
	if err != nil {
		return nil, "", err
	}

	logger.Info("generating image", "model", s.model, "prompt", s.prompt)
	data, err := gen.Generate(ctx, s.prompt)
	if err != nil {
		return nil, "", err
	}

	if s.saveImage != "" {
		if err := os.WriteFile(s.saveImage, data, 0o644); err != nil { // #nosec G306 - Generated image is not secret
			return nil, "", fmt.Errorf("failed to save generated image: %w", err)
		}
		logger.Info("saved generated image", "path", s.saveImage)
	}

	img, err := image.DecodeBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode generated image: %w", err)
	}
	return img, "prompt", nil
}
