package plugin

// PluginType is the transport a renderer speaks.
type PluginType string

const (
	// PluginTypeGoPlugin renderers are served with Serve over go-plugin net/rpc.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON renderers read PaletteData as JSON on stdin and write
	// either a JSONResult or plain text to stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// JSONResult is the optional structured stdout of a json-stdio renderer.
type JSONResult struct {
	Files map[string]string `json:"files"`
}

// PluginInfo describes a renderer plugin. Every renderer prints it as JSON
// when run with --plugin-info.
type PluginInfo struct {
	Name            string    `json:"name"`
	Version         string    `json:"version"`
	ProtocolVersion string    `json:"protocol_version"`
	Description     string    `json:"description"`
	PluginProtocol  string    `json:"plugin_protocol"`
	Args            []ArgHelp `json:"args,omitempty"`
}

// ArgHelp documents a key the plugin accepts through --plugin-arg.
type ArgHelp struct {
	Name        string `json:"name"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description"`
}

// PaletteData is the palette sent to renderer plugins.
type PaletteData struct {
	Strong        ColourData `json:"strong"`
	Soft          ColourData `json:"soft"`
	LightenedSoft ColourData `json:"lightened_soft"`

	// Harmonious reports whether strong and soft passed the harmony check.
	Harmonious bool `json:"harmonious"`

	// PluginArgs holds the --plugin-arg key=value pairs.
	PluginArgs map[string]string `json:"plugin_args,omitempty"`
}

// ColourData is one role colour. Hex is "#RRGGBB" in upper case, RGB holds
// 0-255 channels and HSL holds degrees and percentages.
type ColourData struct {
	Hex string `json:"hex"`
	RGB [3]int `json:"rgb"`
	HSL [3]int `json:"hsl"`
}

// Arg returns the plugin argument key, or def when it was not given.
func (p PaletteData) Arg(key, def string) string {
	if v, ok := p.PluginArgs[key]; ok {
		return v
	}
	return def
}
