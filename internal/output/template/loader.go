// Package template loads renderer templates, preferring user overrides in
// $XDG_CONFIG_HOME/duotint/templates/{renderer}/ over the embedded defaults.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by Dump when an override is already present.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader reads templates for one renderer.
type Loader struct {
	renderer   string
	defaults   fs.FS
	customBase string
	logger     hclog.Logger
}

// DefaultCustomBase returns the directory holding template overrides.
func DefaultCustomBase() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "duotint", "templates")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "duotint", "templates")
	}
	return filepath.Join(".config", "duotint", "templates")
}

// New creates a loader for renderer backed by the templates in defaults.
func New(renderer string, defaults fs.FS) *Loader {
	return &Loader{
		renderer:   renderer,
		defaults:   defaults,
		customBase: DefaultCustomBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase overrides the override directory.
func (l *Loader) WithCustomBase(dir string) *Loader {
	l.customBase = dir
	return l
}

// WithLogger sets the logger used to report which template was picked.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load returns the template named filename and whether it came from an override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)
	if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 - Override path under the user's config directory
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	content, err = fs.ReadFile(l.defaults, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	l.logger.Trace("using embedded template", "name", filename)
	return content, false, nil
}

// CustomDir returns the override directory for this renderer.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.renderer)
}

// CustomPath returns where an override of filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.CustomDir(), filepath.FromSlash(filename))
}

// HasCustomTemplate reports whether an override of filename exists.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// List returns the embedded template names.
func (l *Loader) List() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.defaults, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".tmpl" {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return names, nil
}

// Dump copies the embedded template filename to the override directory so it
// can be edited. Existing overrides are kept unless force is set.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	content, err := fs.ReadFile(l.defaults, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	out := l.CustomPath(filename)
	if !force && l.HasCustomTemplate(filename) {
		return out, fmt.Errorf("%w: %s", ErrTemplateExists, out)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil { // #nosec G301 - Config directory needs standard permissions
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(out, content, 0o644); err != nil { // #nosec G306 - Templates are not secret
		return "", fmt.Errorf("failed to write template to %q: %w", out, err)
	}
	return out, nil
}

// DumpAll copies every embedded template. Templates that already have an
// override are skipped and reported in the returned error; other failures stop
// the dump.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, name := range names {
		out, err := l.Dump(name, force)
		if errors.Is(err, ErrTemplateExists) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return dumped, err
		}
		dumped = append(dumped, out)
	}
	return dumped, errors.Join(skipped...)
}
