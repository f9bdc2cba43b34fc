package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/jmylchreest/duotint/pkg/plugin"
)

// ParseInfo decodes the --plugin-info output of a renderer and checks its
// protocol. A missing plugin_protocol means json-stdio and a missing
// protocol_version is accepted as current.
func ParseInfo(output []byte) (plugin.PluginInfo, plugin.PluginType, error) {
	var info plugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return plugin.PluginInfo{}, "", fmt.Errorf("failed to parse plugin info: %w", err)
	}

	var kind plugin.PluginType
	switch plugin.PluginType(info.PluginProtocol) {
	case plugin.PluginTypeGoPlugin:
		kind = plugin.PluginTypeGoPlugin
	case plugin.PluginTypeJSON, "":
		kind = plugin.PluginTypeJSON
	default:
		return info, "", fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	if info.ProtocolVersion != "" {
		if _, err := IsCompatible(info.ProtocolVersion); err != nil {
			return info, kind, err
		}
	}
	return info, kind, nil
}
