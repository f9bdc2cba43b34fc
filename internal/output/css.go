package output

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/duotint/internal/colour"
	tmplloader "github.com/jmylchreest/duotint/internal/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const cssTemplate = "duotint.css.tmpl"

// CSSRenderer renders a stylesheet of custom properties and region rules.
// The embedded template can be overridden per user.
type CSSRenderer struct {
	loader *tmplloader.Loader
}

// templateData is the value templates are executed with.
type templateData struct {
	Strong        colour.RoleColour
	Soft          colour.RoleColour
	LightenedSoft colour.RoleColour
	Harmony       colour.Harmony
	Fixed         FixedColours
}

// NewCSSRenderer creates the CSS renderer. An empty templateDir uses the
// default override location.
func NewCSSRenderer(templateDir string, logger hclog.Logger) *CSSRenderer {
	loader := tmplloader.New("css", templates).WithLogger(logger)
	if templateDir != "" {
		loader = loader.WithCustomBase(templateDir)
	}
	return &CSSRenderer{loader: loader}
}

func (r *CSSRenderer) Name() string        { return "css" }
func (r *CSSRenderer) Description() string { return "Stylesheet with custom properties and region rules" }

// Loader returns the template loader, for dumping the embedded template.
func (r *CSSRenderer) Loader() *tmplloader.Loader {
	return r.loader
}

func (r *CSSRenderer) Render(p colour.Palette) (map[string][]byte, error) {
	content, _, err := r.loader.Load(cssTemplate)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(cssTemplate).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	data := templateData{
		Strong:        p.Strong,
		Soft:          p.Soft,
		LightenedSoft: p.LightenedSoft,
		Harmony:       p.Harmony(),
		Fixed:         Fixed(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}
	return map[string][]byte{"duotint.css": buf.Bytes()}, nil
}
