// Package output renders palettes into the formats duotint can print or write.
package output

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/duotint/internal/colour"
)

// ErrUnknownOutput is returned when no renderer is registered under a name.
var ErrUnknownOutput = errors.New("unknown output format")

// Renderer turns a palette into one or more named files.
type Renderer interface {
	// Name returns the format name used on the command line (e.g. "css").
	Name() string

	// Description returns a human-readable description of the format.
	Description() string

	// Render returns filename -> content for the palette.
	Render(p colour.Palette) (map[string][]byte, error)
}

// Registry holds renderers by name.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Options configures the built-in renderers.
type Options struct {
	// Colours forces colour blocks in the preview renderer.
	Colours bool

	// TemplateDir overrides the directory searched for template overrides.
	TemplateDir string

	Logger hclog.Logger
}

// NewDefaultRegistry returns a registry with every built-in renderer.
func NewDefaultRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	r := NewRegistry()
	r.Register(HexRenderer{})
	r.Register(RGBRenderer{})
	r.Register(JSONRenderer{})
	r.Register(CodeRenderer{})
	r.Register(NewCSSRenderer(opts.TemplateDir, opts.Logger.Named("css")))
	r.Register(PreviewRenderer{Colours: opts.Colours})
	return r
}

// Register adds a renderer, replacing any renderer with the same name.
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Name()] = renderer
}

// Get returns the renderer registered as name.
func (r *Registry) Get(name string) (Renderer, error) {
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %v)", ErrUnknownOutput, name, r.Names())
	}
	return renderer, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.renderers))
}

// Render renders p with the renderer registered as name.
func (r *Registry) Render(name string, p colour.Palette) (map[string][]byte, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	files, err := renderer.Render(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return files, nil
}

// Concat joins rendered files in filename order, for printing to a terminal.
func Concat(files map[string][]byte) []byte {
	var out []byte
	for _, name := range slices.Sorted(maps.Keys(files)) {
		out = append(out, files[name]...)
	}
	return out
}
