// Package manager finds renderer plugins by name and applies the
// enable/disable configuration.
package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/duotint/internal/plugin/executor"
	"github.com/jmylchreest/duotint/pkg/plugin"
)

// Environment variables read by WithEnvConfig.
const (
	EnvPluginPath      = "DUOTINT_PLUGIN_PATH"
	EnvDisabledPlugins = "DUOTINT_DISABLED_PLUGINS"
)

// binaryPrefix is tried in front of a bare plugin name, so "kitty" finds
// "duotint-kitty".
const binaryPrefix = "duotint-"

var (
	// ErrPluginNotFound is returned when no search path holds the plugin.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrPluginDisabled is returned when the configuration disables the plugin.
	ErrPluginDisabled = errors.New("plugin disabled")
)

// Config holds plugin configuration.
type Config struct {
	// SearchPaths are the directories scanned for plugins, in order.
	SearchPaths []string

	// DisabledPlugins lists plugin names that may not be used. "all"
	// disables every plugin found by name; explicit paths still work.
	DisabledPlugins []string
}

// Builder provides a fluent interface for constructing a Manager.
type Builder struct {
	config Config
	logger hclog.Logger
	runner executor.ProcessRunner
	useEnv bool
}

// NewBuilder creates a new Manager builder searching the default plugin
// directory.
func NewBuilder() *Builder {
	return &Builder{
		config: Config{SearchPaths: []string{DefaultPluginDir()}},
		logger: hclog.NewNullLogger(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// DUOTINT_PLUGIN_PATH directories are searched before the configured ones and
// DUOTINT_DISABLED_PLUGINS replaces the disabled list.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLogger sets the logger handed to plugin executors.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithRunner overrides how plugin processes are run, for tests.
func (b *Builder) WithRunner(runner executor.ProcessRunner) *Builder {
	b.runner = runner
	return b
}

// Build constructs the Manager with the configured settings.
func (b *Builder) Build() *Manager {
	config := Config{
		SearchPaths:     slices.Clone(b.config.SearchPaths),
		DisabledPlugins: slices.Clone(b.config.DisabledPlugins),
	}

	if b.useEnv {
		if paths := os.Getenv(EnvPluginPath); paths != "" {
			config.SearchPaths = append(filepath.SplitList(paths), config.SearchPaths...)
		}
		if disabled := os.Getenv(EnvDisabledPlugins); disabled != "" {
			config.DisabledPlugins = parsePluginList(disabled)
		}
	}

	return &Manager{
		config: config,
		logger: b.logger,
		runner: b.runner,
	}
}

// Manager resolves renderer plugins.
type Manager struct {
	config Config
	logger hclog.Logger
	runner executor.ProcessRunner
}

// DefaultPluginDir returns $XDG_DATA_HOME/duotint/plugins, falling back to
// ~/.local/share/duotint/plugins.
func DefaultPluginDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "duotint", "plugins")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "duotint", "plugins")
	}
	return filepath.Join(".local", "share", "duotint", "plugins")
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// IsDisabled reports whether name is disabled by configuration.
func (m *Manager) IsDisabled(name string) bool {
	name = strings.TrimPrefix(name, binaryPrefix)
	for _, disabled := range m.config.DisabledPlugins {
		if disabled == "all" || strings.TrimPrefix(disabled, binaryPrefix) == name {
			return true
		}
	}
	return false
}

// Resolve turns a plugin reference into an executable path. A reference
// containing a path separator is used as given; a bare name is looked up in
// the search paths as "<name>" and then "duotint-<name>".
func (m *Manager) Resolve(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty plugin name", ErrPluginNotFound)
	}

	if strings.ContainsRune(ref, filepath.Separator) || strings.ContainsRune(ref, '/') {
		if !isExecutable(ref) {
			return "", fmt.Errorf("%w: %s is not an executable file", ErrPluginNotFound, ref)
		}
		return ref, nil
	}

	if m.IsDisabled(ref) {
		return "", fmt.Errorf("%w: %s", ErrPluginDisabled, ref)
	}

	for _, dir := range m.config.SearchPaths {
		for _, candidate := range []string{ref, binaryPrefix + ref} {
			path := filepath.Join(dir, candidate)
			if isExecutable(path) {
				m.logger.Debug("resolved plugin", "name", ref, "path", path)
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s (searched %s)", ErrPluginNotFound, ref, strings.Join(m.config.SearchPaths, string(filepath.ListSeparator)))
}

// Entry is a plugin found in the search paths.
type Entry struct {
	Name     string
	Path     string
	Disabled bool
	Info     plugin.PluginInfo
	Protocol plugin.PluginType

	// Err is set when the plugin did not answer --plugin-info sensibly.
	Err error
}

// Discover lists the executables in the search paths and queries each one
// for its metadata. A name found in an earlier directory shadows later ones.
func (m *Manager) Discover(ctx context.Context) []Entry {
	seen := make(map[string]bool)
	var entries []Entry

	for _, dir := range m.config.SearchPaths {
		files, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				m.logger.Warn("failed to read plugin directory", "dir", dir, "error", err)
			}
			continue
		}

		for _, f := range files {
			path := filepath.Join(dir, f.Name())
			if f.IsDir() || !isExecutable(path) {
				continue
			}
			name := strings.TrimSuffix(strings.TrimPrefix(f.Name(), binaryPrefix), ".exe")
			if seen[name] {
				continue
			}
			seen[name] = true
			entries = append(entries, m.describe(ctx, name, path))
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries
}

func (m *Manager) describe(ctx context.Context, name, path string) Entry {
	entry := Entry{Name: name, Path: path, Disabled: m.IsDisabled(name)}

	e, err := executor.New(ctx, path, executor.Options{Logger: m.logger, Runner: m.runner})
	if err != nil {
		entry.Err = err
		return entry
	}
	defer e.Close()

	entry.Info = e.Metadata()
	entry.Protocol = e.Protocol()
	return entry
}

// parsePluginList parses a comma-separated list of plugin names.
func parsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return strings.EqualFold(filepath.Ext(path), ".exe")
	}
	return info.Mode().Perm()&0o111 != 0
}
