// Package executor runs external renderer plugins, whichever protocol they
// speak: go-plugin net/rpc or JSON over stdin/stdout.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/duotint/internal/plugin/protocol"
	"github.com/jmylchreest/duotint/pkg/plugin"
)

const (
	// DefaultInfoTimeout bounds the --plugin-info query.
	DefaultInfoTimeout = 5 * time.Second

	// DefaultRenderTimeout bounds one json-stdio render.
	DefaultRenderTimeout = 30 * time.Second

	// jsonFallbackFile names the stdout of a json-stdio renderer that does
	// not answer with a JSONResult.
	jsonFallbackFile = "output.txt"
)

// Options configures an Executor.
type Options struct {
	// Logger receives plugin lifecycle messages and the plugin's own logs.
	Logger hclog.Logger

	// Runner runs json-stdio renderers and the --plugin-info query.
	Runner ProcessRunner

	InfoTimeout   time.Duration
	RenderTimeout time.Duration
}

// Executor talks to one renderer plugin.
type Executor struct {
	path     string
	info     plugin.PluginInfo
	protocol plugin.PluginType
	opts     Options

	client   *goplugin.Client
	renderer plugin.Renderer
}

// New queries the plugin at path for its metadata and protocol. The plugin
// process for go-plugin renderers is started lazily by Render.
func New(ctx context.Context, path string, opts Options) (*Executor, error) {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.InfoTimeout <= 0 {
		opts.InfoTimeout = DefaultInfoTimeout
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = DefaultRenderTimeout
	}

	infoCtx, cancel := context.WithTimeout(ctx, opts.InfoTimeout)
	defer cancel()

	stdout, stderr, err := opts.Runner.Run(infoCtx, path, []string{plugin.InfoFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin %s: %w%s", path, err, stderrSuffix(stderr))
	}

	info, kind, err := protocol.ParseInfo(stdout)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", path, err)
	}

	opts.Logger.Debug("detected plugin", "path", path, "name", info.Name, "version", info.Version, "protocol", kind)

	return &Executor{
		path:     path,
		info:     info,
		protocol: kind,
		opts:     opts,
	}, nil
}

// Metadata returns the plugin's --plugin-info answer.
func (e *Executor) Metadata() plugin.PluginInfo {
	return e.info
}

// Protocol returns the transport the plugin speaks.
func (e *Executor) Protocol() plugin.PluginType {
	return e.protocol
}

// Render sends palette to the plugin and returns the files it produced.
func (e *Executor) Render(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	switch e.protocol {
	case plugin.PluginTypeGoPlugin:
		renderer, err := e.rpcRenderer()
		if err != nil {
			return nil, err
		}
		return renderer.Render(ctx, palette)
	case plugin.PluginTypeJSON:
		return e.renderJSON(ctx, palette)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocol)
	}
}

// Close stops the plugin process, if one was started.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.renderer = nil
	}
}

// rpcRenderer starts the go-plugin process on first use.
func (e *Executor) rpcRenderer() (plugin.Renderer, error) {
	if e.renderer != nil {
		return e.renderer, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.PluginMap(nil),
		Cmd:              exec.Command(e.path), // #nosec G204 - Plugin path is chosen by the user
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.opts.Logger.Named(pluginLoggerName(e.info)),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to start plugin: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	renderer, ok := raw.(plugin.Renderer)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.renderer = renderer
	return renderer, nil
}

// renderJSON runs a json-stdio renderer once.
func (e *Executor) renderJSON(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	input, err := json.Marshal(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.opts.RenderTimeout)
	defer cancel()

	stdout, stderr, err := e.opts.Runner.Run(runCtx, e.path, nil, bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}
	if len(stderr) > 0 {
		e.opts.Logger.Debug("plugin stderr", "plugin", e.info.Name, "output", strings.TrimSpace(string(stderr)))
	}

	var result plugin.JSONResult
	if err := json.Unmarshal(stdout, &result); err == nil && result.Files != nil {
		files := make(map[string][]byte, len(result.Files))
		for name, content := range result.Files {
			files[name] = []byte(content)
		}
		return files, nil
	}

	files := make(map[string][]byte)
	if len(stdout) > 0 {
		files[jsonFallbackFile] = stdout
	}
	return files, nil
}

func pluginLoggerName(info plugin.PluginInfo) string {
	if info.Name == "" {
		return "plugin"
	}
	return "plugin." + info.Name
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return "\nstderr: " + msg
}
