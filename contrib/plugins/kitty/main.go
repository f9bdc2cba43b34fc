// kitty - duotint renderer plugin for the kitty terminal
//
// A go-plugin renderer: duotint starts it once and talks to it over net/rpc.
// It writes a kitty colour include that uses the strong colour for the
// cursor, selection and active tab and the lightened soft colour for the
// background.
//
// Build:
//
//	go build -o duotint-kitty .
//
// Usage:
//
//	duotint apply --plugin ./duotint-kitty -d ~/.config/kitty wallpaper.jpg
//	duotint apply --plugin ./duotint-kitty --plugin-arg file=duotint.conf wallpaper.jpg
//
// Author: duotint contributors
// License: MIT
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/duotint/pkg/plugin"
)

// KittyRenderer renders a kitty colour include.
type KittyRenderer struct{}

// Render builds the include file from the palette.
func (KittyRenderer) Render(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := palette.Arg("file", "duotint-theme.conf")
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("file must be a bare file name, got %q", name)
	}

	foreground := palette.Arg("foreground", "#333333")

	var sb strings.Builder
	fmt.Fprintf(&sb, "# duotint theme: strong %s, soft %s\n", palette.Strong.Hex, palette.Soft.Hex)
	fmt.Fprintf(&sb, "background            %s\n", palette.LightenedSoft.Hex)
	fmt.Fprintf(&sb, "foreground            %s\n", foreground)
	fmt.Fprintf(&sb, "cursor                %s\n", palette.Strong.Hex)
	fmt.Fprintf(&sb, "selection_background  %s\n", palette.Strong.Hex)
	fmt.Fprintf(&sb, "selection_foreground  #FFFFFF\n")
	fmt.Fprintf(&sb, "active_border_color   %s\n", palette.Strong.Hex)
	fmt.Fprintf(&sb, "inactive_border_color %s\n", palette.Soft.Hex)
	fmt.Fprintf(&sb, "active_tab_background %s\n", palette.Strong.Hex)
	fmt.Fprintf(&sb, "active_tab_foreground #FFFFFF\n")
	fmt.Fprintf(&sb, "inactive_tab_background %s\n", palette.Soft.Hex)
	fmt.Fprintf(&sb, "inactive_tab_foreground %s\n", palette.Strong.Hex)

	return map[string][]byte{name: []byte(sb.String())}, nil
}

// GetMetadata describes the plugin for --plugin-info.
func (KittyRenderer) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "kitty",
		Version:     "0.1.0",
		Description: "kitty terminal colour include",
		Args: []plugin.ArgHelp{
			{Name: "file", Default: "duotint-theme.conf", Description: "name of the generated include"},
			{Name: "foreground", Default: "#333333", Description: "text colour"},
		},
	}
}

func main() {
	plugin.Serve(KittyRenderer{})
}
