package plugin

import (
	"context"
)

// Renderer is implemented by external renderer plugins.
type Renderer interface {
	// Render returns filename -> content for the palette. Filenames must be
	// plain names; the host rejects paths that leave its output directory.
	Render(ctx context.Context, palette PaletteData) (map[string][]byte, error)

	// GetMetadata describes the plugin.
	GetMetadata() PluginInfo
}
