package cli

import (
	"bytes"
	"context"
	"errors"
	goimage "image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/config"
	"github.com/jmylchreest/duotint/internal/image"
	"github.com/jmylchreest/duotint/internal/plugin/manager"
	"github.com/jmylchreest/duotint/internal/session"
)

var (
	red  = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	blue = color.NRGBA{R: 30, G: 30, B: 200, A: 255}
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvMaxDimension, config.EnvLightenAmount, config.EnvAlgorithm,
		config.EnvCacheDir, config.EnvHTTPTimeout, config.EnvLogFormat,
	} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func solidPNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := goimage.NewNRGBA(goimage.Rect(0, 0, 16, 16))
	for y := range 16 {
		for x := range 16 {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	if err := os.WriteFile(path, solidPNG(t, c), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// execute runs the command tree with args and returns what it printed.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	clearConfigEnv(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	redPath := filepath.Join(dir, "red.png")
	writePNG(t, redPath, red)

	tests := []struct {
		name   string
		args   []string
		stdin  io.Reader
		want   []string
		stderr string
	}{
		{
			name: "hex",
			args: []string{"extract", redPath},
			want: []string{"strong         #9B4B4B", "soft           #A9D6D6", "lightened-soft #DDEEEE"},
		},
		{
			name: "rgb",
			args: []string{"extract", "-f", "rgb", redPath},
			want: []string{"strong         rgb(155, 75, 75)"},
		},
		{
			name: "css",
			args: []string{"extract", "--format", "css", redPath},
			want: []string{"--duotint-strong: #9B4B4B"},
		},
		{
			name: "directory picks its first image",
			args: []string{"extract", dir},
			want: []string{"#9B4B4B"},
		},
		{
			name:  "stdin",
			args:  []string{"extract", "-"},
			stdin: bytes.NewReader(solidPNG(t, red)),
			want:  []string{"#9B4B4B"},
		},
		{
			name:   "harmony",
			args:   []string{"extract", "--harmony", redPath},
			want:   []string{"#9B4B4B"},
			stderr: "harmony: ",
		},
		{
			name: "lighten flag",
			args: []string{"extract", "--lighten", "0", redPath},
			want: []string{"lightened-soft #A9D6D6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("extract: %v\n%s", err, stderr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout)
				}
			}
			if tt.stderr != "" && !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr missing %q:\n%s", tt.stderr, stderr)
			}
		})
	}
}

func TestExtractToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "red.png")
	writePNG(t, src, red)
	out := filepath.Join(dir, "palette.json")

	stdout, _, err := execute(t, nil, "extract", "-f", "json", "-o", out, src)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing when -o is set", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"#9B4B4B"`) || !strings.Contains(string(data), `"lightenedSoft"`) {
		t.Errorf("palette.json = %s", data)
	}
}

func TestExtractToDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "red.png")
	writePNG(t, src, red)
	outDir := filepath.Join(dir, "theme")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, nil, "extract", "-f", "css", "-o", outDir, src); err != nil {
		t.Fatalf("extract: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "duotint.css"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "--duotint-strong") {
		t.Errorf("duotint.css = %s", data)
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "red.png")
	writePNG(t, src, red)
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		target error
		substr string
	}{
		{name: "no source", args: []string{"extract"}, target: errNoSource},
		{name: "unknown format", args: []string{"extract", "-f", "yaml", src}, substr: "unknown output format"},
		{name: "unknown algorithm", args: []string{"extract", "-a", "octree", src}, target: colour.ErrUnknownAlgorithm},
		{name: "dimension out of range", args: []string{"extract", "--max-dimension", "0", src}, substr: "max dimension"},
		{name: "not an image", args: []string{"extract", notes}, target: image.ErrInvalidInput},
		{name: "missing file", args: []string{"extract", filepath.Join(dir, "missing.png")}, target: image.ErrInvalidInput},
		{name: "prompt with image", args: []string{"extract", "--prompt", "sunset", src}, substr: "cannot be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, nil, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("err = %v, want %v", err, tt.target)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.substr)
			}
		})
	}
}

func TestExtractFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "red.png")
	writePNG(t, src, red)

	clearConfigEnv(t)
	t.Setenv(config.EnvLightenAmount, "0")

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"extract", src})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(stdout.String(), "lightened-soft #A9D6D6") {
		t.Errorf("stdout = %s, want the environment lighten amount applied", stdout.String())
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, nil, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout, "duotint ") {
		t.Errorf("version = %q", stdout)
	}
}

func TestConvert(t *testing.T) {
	stdout, _, err := execute(t, nil, "convert", "#c81e1e")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{"input", "#C81E1E", "rgb(200, 30, 30)", "muted", "lightened +15", "text on input"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	if _, _, err := execute(t, nil, "convert", "#12345"); !errors.Is(err, colour.ErrInvalidHex) {
		t.Errorf("err = %v, want ErrInvalidHex", err)
	}
	if _, _, err := execute(t, nil, "convert", "--lighten", "101", "#c81e1e"); err == nil {
		t.Error("expected an error for --lighten 101")
	}
}

func TestSwatches(t *testing.T) {
	stdout, _, err := execute(t, nil, "swatches")
	if err != nil {
		t.Fatalf("swatches: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 22 {
		t.Errorf("lines = %d, want header, rule and 20 swatches", len(lines))
	}
	if strings.Contains(stdout, "\x1b[") {
		t.Error("plain output contains escape sequences")
	}
	if !strings.Contains(lines[2], "red") || !strings.Contains(lines[2], "#C49A9A") || !strings.Contains(lines[2], "#333333") {
		t.Errorf("first swatch row = %q", lines[2])
	}

	coloured, _, err := execute(t, nil, "swatches", "--colour")
	if err != nil {
		t.Fatalf("swatches --colour: %v", err)
	}
	if !strings.Contains(coloured, "Sample") || !strings.Contains(coloured, "\x1b[") {
		t.Errorf("coloured output lacks the sample column:\n%s", coloured)
	}
}

func TestTemplatesDump(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, nil, "templates", "dump", "-l", dir)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	path := filepath.Join(dir, "css", "duotint.css.tmpl")
	if strings.TrimSpace(stdout) != path {
		t.Errorf("dump printed %q, want %q", stdout, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("template not written: %v", err)
	}

	stdout, _, err = execute(t, nil, "templates", "dump", "-l", dir)
	if err != nil {
		t.Fatalf("second dump: %v", err)
	}
	if stdout != "" {
		t.Errorf("second dump printed %q, want the existing template kept", stdout)
	}

	stdout, _, err = execute(t, nil, "templates", "list", "-l", dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(stdout, "duotint.css.tmpl") || !strings.Contains(stdout, path) {
		t.Errorf("list = %s", stdout)
	}
}

func TestWritePluginFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"theme.conf":      []byte("accent"),
		"nested/site.css": []byte(":root{}"),
	}

	written, err := writeFiles(dir, files, false)
	if err != nil {
		t.Fatalf("writeFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "nested", "site.css"), filepath.Join(dir, "theme.conf")}
	if strings.Join(written, ",") != strings.Join(want, ",") {
		t.Errorf("written = %v, want %v", written, want)
	}
	if data, _ := os.ReadFile(want[0]); string(data) != ":root{}" {
		t.Errorf("site.css = %q", data)
	}

	for _, name := range []string{"../escape.conf", "/etc/passwd", ""} {
		if _, err := writeFiles(dir, map[string][]byte{name: nil}, false); err == nil {
			t.Errorf("expected %q to be rejected", name)
		}
	}

	dry := t.TempDir()
	written, err = writeFiles(dry, map[string][]byte{"a.conf": []byte("x")}, true)
	if err != nil || len(written) != 1 {
		t.Fatalf("dry run = %v, %v", written, err)
	}
	if _, err := os.Stat(written[0]); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
}

const echoPlugin = `#!/bin/sh
if [ "$1" = "--plugin-info" ]; then
  echo '{"name":"echo","version":"0.1.0","protocol_version":"1.0.0","plugin_protocol":"json-stdio"}'
  exit 0
fi
cat > /dev/null
echo '{"files":{"theme.conf":"accent"}}'
`

func TestApplyJSONPlugin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell plugin fixture needs a POSIX shell")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "red.png")
	writePNG(t, src, red)
	pluginPath := filepath.Join(dir, "echo-plugin")
	if err := os.WriteFile(pluginPath, []byte(echoPlugin), 0o700); err != nil { // #nosec G306 - Test fixture must be executable
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	stdout, stderr, err := execute(t, nil, "apply", "--plugin", pluginPath, "-d", outDir, src)
	if err != nil {
		t.Fatalf("apply: %v\n%s", err, stderr)
	}

	want := filepath.Join(outDir, "theme.conf")
	if strings.TrimSpace(stdout) != want {
		t.Errorf("apply printed %q, want %q", stdout, want)
	}
	if data, _ := os.ReadFile(want); string(data) != "accent" {
		t.Errorf("theme.conf = %q", data)
	}
}

func TestApplyRequiresPlugin(t *testing.T) {
	if _, _, err := execute(t, nil, "apply", "image.png"); err == nil {
		t.Error("expected an error without --plugin")
	}
}

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wall.png")
	writePNG(t, path, red)

	sess, err := session.New(image.NewFileLoader(), colour.DefaultExtractorConfig(), nil)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	defer sess.Close()

	rendered := make(chan colour.Palette, 4)
	loop := &watchLoop{
		path:     path,
		debounce: 10 * time.Millisecond,
		session:  sess,
		logger:   hclog.NewNullLogger(),
		render: func(p colour.Palette) error {
			rendered <- p
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	done := make(chan error, 1)
	go func() { done <- loop.run(ctx, events, errs) }()

	next := func() colour.Palette {
		t.Helper()
		select {
		case p := <-rendered:
			return p
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a palette")
			return colour.Palette{}
		}
	}

	first := next()
	if first.Strong.Hex != "#9b4b4b" {
		t.Errorf("initial strong = %s, want #9b4b4b", first.Strong.Hex)
	}

	writePNG(t, path, blue)
	events <- fsnotify.Event{Name: filepath.Join(dir, "other.png"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Chmod}

	second := next()
	if second.Strong.Hex == first.Strong.Hex {
		t.Errorf("palette did not change after the write: %s", second.Strong.Hex)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatchLoopRelevant(t *testing.T) {
	loop := &watchLoop{path: "/pics/wall.png"}

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/pics/wall.png", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/pics/wall.png", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/pics/./wall.png", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/pics/wall.png", Op: fsnotify.Remove}, false},
		{fsnotify.Event{Name: "/pics/wall.png", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/pics/.wall.png.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			if got := loop.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%s) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestWatchRejectsDirectory(t *testing.T) {
	_, _, err := execute(t, nil, "watch", t.TempDir())
	if !errors.Is(err, image.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestPluginsByName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell plugin fixture needs a POSIX shell")
	}

	pluginDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(pluginDir, "duotint-echo"), []byte(echoPlugin), 0o700); err != nil { // #nosec G306 - Test fixture must be executable
		t.Fatal(err)
	}
	t.Setenv(manager.EnvPluginPath, pluginDir)
	t.Setenv(manager.EnvDisabledPlugins, "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	stdout, _, err := execute(t, nil, "plugins", "list")
	if err != nil {
		t.Fatalf("plugins list: %v", err)
	}
	if !strings.Contains(stdout, "echo") || !strings.Contains(stdout, "json-stdio") || !strings.Contains(stdout, "enabled") {
		t.Errorf("plugins list = %s", stdout)
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "red.png")
	writePNG(t, src, red)
	if _, _, err := execute(t, nil, "apply", "--plugin", "echo", "-d", dir, src); err != nil {
		t.Fatalf("apply by name: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "theme.conf")); err != nil {
		t.Errorf("theme.conf not written: %v", err)
	}

	t.Setenv(manager.EnvDisabledPlugins, "echo")
	if _, _, err := execute(t, nil, "apply", "--plugin", "echo", "-d", dir, src); !errors.Is(err, manager.ErrPluginDisabled) {
		t.Errorf("err = %v, want ErrPluginDisabled", err)
	}
}
