package cli

import (
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Family", "Hex"})

	table.AddRow([]string{"red", "#C49A9A"})
	table.AddRow([]string{"grey"})
	table.AddRow([]string{"blue", "#9AA8C4", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(table.rows))
	}
	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if table.rows[1][1] != "" {
		t.Errorf("padded cell = %q, want empty", table.rows[1][1])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Family", "Hex"})
	table.AddRow([]string{"red", "#C49A9A"})
	table.AddRow([]string{"purple", "#B59AC4"})

	want := "Family  Hex\n" +
		"------  -------\n" +
		"red     #C49A9A\n" +
		"purple  #B59AC4\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	got := NewTable([]string{"Column1", "Column2"}).Render()
	if got != "Column1  Column2\n-------  -------\n" {
		t.Errorf("Render() without rows = %q", got)
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	coloured := "\x1b[48;2;196;154;154m    \x1b[0m"

	table := NewTable([]string{"Swatch", "Hex"})
	table.AddRow([]string{coloured, "#C49A9A"})
	table.AddRow([]string{"", "#E8D4D4"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	// "Swatch" is wider than the four-cell block, so both rows start the hex
	// column at the same visible offset.
	if !strings.HasSuffix(lines[2], "\x1b[0m    #C49A9A") {
		t.Errorf("coloured row = %q", lines[2])
	}
	if lines[3] != "        #E8D4D4" {
		t.Errorf("plain row = %q", lines[3])
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"café", 6, "café  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}
