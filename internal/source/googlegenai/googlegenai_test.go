package googlegenai

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	g, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.opts.Model != DefaultModel {
		t.Errorf("model = %q, want %q", g.opts.Model, DefaultModel)
	}
	if g.opts.AspectRatio != DefaultAspectRatio {
		t.Errorf("aspect ratio = %q, want %q", g.opts.AspectRatio, DefaultAspectRatio)
	}
	if g.opts.Backend != BackendGeminiAPI {
		t.Errorf("backend = %q, want %q", g.opts.Backend, BackendGeminiAPI)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "vertex", opts: Options{Backend: BackendVertexAI}},
		{name: "portrait", opts: Options{AspectRatio: "9:16"}},
		{name: "bad backend", opts: Options{Backend: "openai"}, wantErr: true},
		{name: "bad aspect ratio", opts: Options{AspectRatio: "21:9"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	g, _ := New(Options{})
	if got := g.Prompt("misty forest"); !strings.HasPrefix(got, "misty forest, ") {
		t.Errorf("Prompt() = %q, want the enhancement appended", got)
	}

	plain, _ := New(Options{NoExtendedPrompt: true})
	if got := plain.Prompt("misty forest"); got != "misty forest" {
		t.Errorf("Prompt() = %q, want the prompt unchanged", got)
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	g, _ := New(Options{CacheDir: dir})

	a := g.CachePath("misty forest")
	if filepath.Dir(a) != dir || !strings.HasSuffix(a, ".png") {
		t.Errorf("CachePath = %q", a)
	}
	if g.CachePath("misty forest") != a {
		t.Error("CachePath is not deterministic")
	}
	if g.CachePath("desert dunes") == a {
		t.Error("different prompts share a cache path")
	}

	wide, _ := New(Options{CacheDir: dir, AspectRatio: "16:9"})
	if wide.CachePath("misty forest") == a {
		t.Error("different aspect ratios share a cache path")
	}

	uncached, _ := New(Options{})
	if uncached.CachePath("misty forest") != "" {
		t.Error("CachePath without a cache dir should be empty")
	}
}

func TestGenerateUsesCache(t *testing.T) {
	g, _ := New(Options{CacheDir: t.TempDir()})
	path := g.CachePath("misty forest")
	if err := os.WriteFile(path, []byte("cached-png"), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := g.Generate(context.Background(), "misty forest")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(data) != "cached-png" {
		t.Errorf("Generate returned %q, want the cached bytes", data)
	}
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	g, _ := New(Options{})
	_, err := g.Generate(context.Background(), "misty forest")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	g, _ := New(Options{})
	if _, err := g.Generate(context.Background(), ""); err == nil {
		t.Error("expected an error for an empty prompt")
	}
}

func TestIsGeminiModel(t *testing.T) {
	if !isGeminiModel("gemini-2.5-flash-image") {
		t.Error("gemini-2.5-flash-image should use GenerateContent")
	}
	if isGeminiModel(DefaultModel) {
		t.Errorf("%s should use GenerateImages", DefaultModel)
	}
}
