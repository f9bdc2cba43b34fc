package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testDefaults() fstest.MapFS {
	return fstest.MapFS{
		"theme.css.tmpl": {Data: []byte("embedded")},
		"extra.txt.tmpl": {Data: []byte("extra")},
		"README.md":      {Data: []byte("not a template")},
	}
}

func TestLoaderLoad(t *testing.T) {
	base := t.TempDir()
	loader := New("css", testDefaults()).WithCustomBase(base)

	t.Run("embedded", func(t *testing.T) {
		content, fromCustom, err := loader.Load("theme.css.tmpl")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if fromCustom || string(content) != "embedded" {
			t.Errorf("got %q (custom=%v), want embedded", content, fromCustom)
		}
	})

	t.Run("custom override", func(t *testing.T) {
		custom := filepath.Join(base, "css", "theme.css.tmpl")
		if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(custom, []byte("custom"), 0o600); err != nil {
			t.Fatal(err)
		}

		content, fromCustom, err := loader.Load("theme.css.tmpl")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !fromCustom || string(content) != "custom" {
			t.Errorf("got %q (custom=%v), want custom", content, fromCustom)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, _, err := loader.Load("missing.tmpl"); err == nil {
			t.Error("expected an error for a missing template")
		}
	})
}

func TestDefaultCustomBase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := DefaultCustomBase(), filepath.Join(dir, "duotint", "templates"); got != want {
		t.Errorf("DefaultCustomBase() = %q, want %q", got, want)
	}
	if got, want := New("css", testDefaults()).CustomDir(), filepath.Join(dir, "duotint", "templates", "css"); got != want {
		t.Errorf("CustomDir() = %q, want %q", got, want)
	}
}

func TestLoaderList(t *testing.T) {
	names, err := New("css", testDefaults()).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"extra.txt.tmpl", "theme.css.tmpl"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoaderDump(t *testing.T) {
	loader := New("css", testDefaults()).WithCustomBase(t.TempDir())

	out, err := loader.Dump("theme.css.tmpl", false)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if data, err := os.ReadFile(out); err != nil || string(data) != "embedded" {
		t.Fatalf("dumped file = %q, %v", data, err)
	}

	if _, err := loader.Dump("theme.css.tmpl", false); !errors.Is(err, ErrTemplateExists) {
		t.Errorf("second Dump error = %v, want ErrTemplateExists", err)
	}
	if _, err := loader.Dump("theme.css.tmpl", true); err != nil {
		t.Errorf("forced Dump: %v", err)
	}
	if _, err := loader.Dump("missing.tmpl", false); err == nil {
		t.Error("expected an error dumping a missing template")
	}
}

func TestLoaderDumpAll(t *testing.T) {
	loader := New("css", testDefaults()).WithCustomBase(t.TempDir())

	dumped, err := loader.DumpAll(false)
	if err != nil {
		t.Fatalf("DumpAll: %v", err)
	}
	if len(dumped) != 2 {
		t.Errorf("dumped %d templates, want 2", len(dumped))
	}

	dumped, err = loader.DumpAll(false)
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("DumpAll error = %v, want ErrTemplateExists", err)
	}
	if len(dumped) != 0 {
		t.Errorf("dumped %d templates over existing overrides", len(dumped))
	}
}
