// sitevars.go - duotint json-stdio renderer example
//
// Reads the palette as JSON on stdin and answers with SCSS and JSON design
// tokens. Plugins in this style need nothing from duotint at build time.
//
// Build:
//
//	go build -o sitevars sitevars.go
//
// Usage:
//
//	./sitevars --plugin-info
//	duotint apply --plugin ./sitevars --plugin-arg prefix=brand -d ./src/styles photo.png
//
// Author: duotint contributors
// License: MIT
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type colourData struct {
	Hex string `json:"hex"`
	RGB [3]int `json:"rgb"`
}

type paletteData struct {
	Strong        colourData        `json:"strong"`
	Soft          colourData        `json:"soft"`
	LightenedSoft colourData        `json:"lightened_soft"`
	PluginArgs    map[string]string `json:"plugin_args"`
}

type pluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"`
}

type result struct {
	Files map[string]string `json:"files"`
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		writeJSON(pluginInfo{
			Name:            "sitevars",
			Version:         "0.1.0",
			ProtocolVersion: "1.0.0",
			Description:     "SCSS variables and JSON design tokens",
			PluginProtocol:  "json-stdio",
		})
		return
	}

	var palette paletteData
	if err := json.NewDecoder(os.Stdin).Decode(&palette); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding palette: %v\n", err)
		os.Exit(1)
	}

	prefix := "duotint"
	if p := strings.TrimSpace(palette.PluginArgs["prefix"]); p != "" {
		prefix = p
	}

	roles := []struct {
		name   string
		colour colourData
	}{
		{"strong", palette.Strong},
		{"soft", palette.Soft},
		{"soft-light", palette.LightenedSoft},
	}

	var scss strings.Builder
	tokens := make(map[string]string, len(roles))
	for _, r := range roles {
		fmt.Fprintf(&scss, "$%s-%s: %s;\n", prefix, r.name, r.colour.Hex)
		fmt.Fprintf(&scss, "$%s-%s-rgb: %d, %d, %d;\n", prefix, r.name, r.colour.RGB[0], r.colour.RGB[1], r.colour.RGB[2])
		tokens[prefix+"-"+r.name] = r.colour.Hex
	}

	tokenJSON, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding tokens: %v\n", err)
		os.Exit(1)
	}

	writeJSON(result{Files: map[string]string{
		"_" + prefix + ".scss": scss.String(),
		prefix + ".tokens.json": string(tokenJSON) + "\n",
	}})
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
