// Package googlegenai generates theme images from a text prompt with Google Gen AI.
package googlegenai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the model used when none is specified.
	DefaultModel = "imagen-4.0-generate-001"

	// DefaultAspectRatio is the aspect ratio requested when none is specified.
	DefaultAspectRatio = "1:1"

	// BackendGeminiAPI selects the Gemini API, authenticated with GOOGLE_API_KEY.
	BackendGeminiAPI = "gemini-api"
	// BackendVertexAI selects Vertex AI, authenticated with application default credentials.
	BackendVertexAI = "vertex-ai"

	// APIKeyEnv is the environment variable holding the Gemini API key.
	APIKeyEnv = "GOOGLE_API_KEY"

	// themeEnhancement steers generated images towards a small, coherent set of colours.
	themeEnhancement = ", cohesive two-tone colour scheme, soft diffuse lighting, large areas of flat colour, no text, no watermark"
)

// ErrMissingAPIKey is returned when the Gemini API backend has no key.
var ErrMissingAPIKey = errors.New(APIKeyEnv + " environment variable is required")

var validAspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}

// Options configures a Generator.
type Options struct {
	Model       string
	AspectRatio string
	Backend     string

	// APIKey overrides GOOGLE_API_KEY for the Gemini API backend.
	APIKey string

	// NoExtendedPrompt sends the prompt without the theme enhancement suffix.
	NoExtendedPrompt bool

	// CacheDir, when set, stores generated images and reuses them for the
	// same prompt, model and aspect ratio.
	CacheDir string

	Logger hclog.Logger
}

// Generator creates images with Imagen or Gemini image models.
type Generator struct {
	opts Options
}

// New creates a Generator, filling in defaults for unset options.
func New(opts Options) (*Generator, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.AspectRatio == "" {
		opts.AspectRatio = DefaultAspectRatio
	}
	if opts.Backend == "" {
		opts.Backend = BackendGeminiAPI
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	if opts.Backend != BackendGeminiAPI && opts.Backend != BackendVertexAI {
		return nil, fmt.Errorf("unknown backend %q (valid: %s, %s)", opts.Backend, BackendGeminiAPI, BackendVertexAI)
	}
	if !slices.Contains(validAspectRatios, opts.AspectRatio) {
		return nil, fmt.Errorf("unsupported aspect ratio %q (valid: %v)", opts.AspectRatio, validAspectRatios)
	}

	return &Generator{opts: opts}, nil
}

// Prompt returns the prompt actually sent for a user prompt.
func (g *Generator) Prompt(prompt string) string {
	if g.opts.NoExtendedPrompt {
		return prompt
	}
	return prompt + themeEnhancement
}

// CachePath returns where the image for prompt is cached, or "" when caching
// is disabled.
func (g *Generator) CachePath(prompt string) string {
	if g.opts.CacheDir == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(g.opts.Model + "\x00" + g.opts.AspectRatio + "\x00" + g.Prompt(prompt)))
	return filepath.Join(g.opts.CacheDir, fmt.Sprintf("genai-%s.png", hex.EncodeToString(hash[:])[:16]))
}

// Generate returns the encoded bytes of an image generated from prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	cachePath := g.CachePath(prompt)
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil { // #nosec G304 - Cache path derived from a hash
			g.opts.Logger.Debug("using cached generated image", "path", cachePath)
			return data, nil
		}
	}

	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	g.opts.Logger.Info("generating image", "backend", g.opts.Backend, "model", g.opts.Model, "aspect_ratio", g.opts.AspectRatio)

	var data []byte
	if isGeminiModel(g.opts.Model) {
		data, err = g.generateWithGemini(ctx, client, prompt)
	} else {
		data, err = g.generateWithImagen(ctx, client, prompt)
	}
	if err != nil {
		return nil, err
	}

	g.opts.Logger.Debug("received image data", "bytes", len(data))

	if cachePath != "" {
		if err := os.MkdirAll(g.opts.CacheDir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		if err := os.WriteFile(cachePath, data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to cache generated image: %w", err)
		}
	}

	return data, nil
}

// client builds a Gen AI client for the configured backend.
func (g *Generator) client(ctx context.Context) (*genai.Client, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}

	if g.opts.Backend == BackendVertexAI {
		cfg.Backend = genai.BackendVertexAI
	} else {
		apiKey := g.opts.APIKey
		if apiKey == "" {
			apiKey = os.Getenv(APIKeyEnv)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("%w\nGet one at: https://aistudio.google.com/api-keys", ErrMissingAPIKey)
		}
		cfg.APIKey = apiKey
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}
	return client, nil
}

// isGeminiModel reports whether model generates images through GenerateContent
// rather than the Imagen GenerateImages endpoint.
func isGeminiModel(model string) bool {
	return model == "gemini-2.5-flash-image"
}

func (g *Generator) generateWithImagen(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    g.opts.AspectRatio,
		OutputMIMEType: "image/png",
	}

	response, err := client.Models.GenerateImages(ctx, g.opts.Model, g.Prompt(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(response.GeneratedImages) == 0 {
		return nil, fmt.Errorf("no images generated in response")
	}

	generated := response.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return nil, fmt.Errorf("image was filtered by safety system: %s", generated.RAIFilteredReason)
	}
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("generated image has no image data")
	}
	return generated.Image.ImageBytes, nil
}

func (g *Generator) generateWithGemini(ctx context.Context, client *genai.Client, prompt string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"Image"},
	}
	text := fmt.Sprintf("Generate an image with aspect ratio %s: %s", g.opts.AspectRatio, g.Prompt(prompt))

	response, err := client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no image data in response")
	}

	for _, part := range response.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, fmt.Errorf("no inline image data found in response")
}
