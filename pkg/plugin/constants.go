// Package plugin is the public API for external duotint renderers.
//
// A renderer is a separate executable that receives the palette over
// HashiCorp go-plugin net/rpc and returns the files it generated. Plugin
// authors implement Renderer and call Serve from main.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion is the renderer API version, MAJOR.MINOR.PATCH.
	// MAJOR changes break compatibility and are mirrored in Handshake.
	ProtocolVersion = "1.0.0"

	// PluginName is the key the renderer is dispensed under.
	PluginName = "renderer"

	// InfoFlag asks a renderer binary to print its PluginInfo and exit.
	InfoFlag = "--plugin-info"
)

// Handshake keeps duotint from launching executables that are not renderers
// and renderers from being run by hand.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "DUOTINT_PLUGIN",
	MagicCookieValue: "duotint_palette",
}

// PluginMap returns the plugin set served and dispensed for impl. Hosts pass a
// nil impl.
func PluginMap(impl Renderer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &RendererRPC{Impl: impl},
	}
}

// Serve runs impl as a renderer plugin. It blocks until the host disconnects.
// Run with --plugin-info it prints the metadata instead.
func Serve(impl Renderer) {
	if slices.Contains(os.Args[1:], InfoFlag) {
		info := impl.GetMetadata()
		info.PluginProtocol = string(PluginTypeGoPlugin)
		if info.ProtocolVersion == "" {
			info.ProtocolVersion = ProtocolVersion
		}
		data, err := json.Marshal(info)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode plugin info: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
