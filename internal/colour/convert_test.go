package colour

import (
	"errors"
	"image/color"
	"testing"
)

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSL
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: HSL{H: 0, S: 100, L: 50}},
		{name: "green", rgb: RGB{R: 0, G: 255, B: 0}, want: HSL{H: 120, S: 100, L: 50}},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}, want: HSL{H: 240, S: 100, L: 50}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: HSL{H: 0, S: 0, L: 100}},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: HSL{H: 0, S: 0, L: 0}},
		{name: "neutral grey", rgb: RGB{R: 107, G: 107, B: 107}, want: HSL{H: 0, S: 0, L: 42}},
		{name: "dark red", rgb: RGB{R: 200, G: 30, B: 30}, want: HSL{H: 0, S: 74, L: 45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBToHSL(tt.rgb); got != tt.want {
				t.Errorf("RGBToHSL(%v) = %v, want %v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want RGB
	}{
		{name: "red", hsl: HSL{H: 0, S: 100, L: 50}, want: RGB{R: 255, G: 0, B: 0}},
		{name: "green", hsl: HSL{H: 120, S: 100, L: 50}, want: RGB{R: 0, G: 255, B: 0}},
		{name: "blue", hsl: HSL{H: 240, S: 100, L: 50}, want: RGB{R: 0, G: 0, B: 255}},
		{name: "neutral grey", hsl: HSL{H: 0, S: 0, L: 42}, want: RGB{R: 107, G: 107, B: 107}},
		{name: "white", hsl: HSL{H: 200, S: 0, L: 100}, want: RGB{R: 255, G: 255, B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLToRGB(tt.hsl); got != tt.want {
				t.Errorf("HSLToRGB(%v) = %v, want %v", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestAchromaticHasNoHue(t *testing.T) {
	for v := 0; v <= 255; v++ {
		grey := RGB{R: uint8(v), G: uint8(v), B: uint8(v)}
		hsl := RGBToHSL(grey)
		if hsl.H != 0 || hsl.S != 0 {
			t.Fatalf("RGBToHSL(%v) = %v, want zero hue and saturation", grey, hsl)
		}
	}
}

func channelDelta(a, b uint8) int {
	return abs(int(a) - int(b))
}

func maxChannelDelta(a, b RGB) int {
	return max(channelDelta(a.R, b.R), channelDelta(a.G, b.G), channelDelta(a.B, b.B))
}

func TestRoundTrip(t *testing.T) {
	const step = 15
	// Rounding H, S and L to integers moves a channel by at most about 5.
	const integerBound = 5

	worstFull, worstRounded := 0, 0
	for r := 0; r <= 255; r += step {
		for g := 0; g <= 255; g += step {
			for b := 0; b <= 255; b += step {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}

				full := RGBToHSLf(c).ToRGB()
				if d := maxChannelDelta(c, full); d > 1 {
					t.Errorf("full precision round trip of %v = %v (delta %d)", c, full, d)
				} else {
					worstFull = max(worstFull, d)
				}

				rounded := HSLToRGB(RGBToHSL(c))
				if d := maxChannelDelta(c, rounded); d > integerBound {
					t.Errorf("integer round trip of %v = %v (delta %d)", c, rounded, d)
				} else {
					worstRounded = max(worstRounded, d)
				}
			}
		}
	}
	t.Logf("worst channel delta: full precision %d, integer %d", worstFull, worstRounded)
}

func TestHSLfRoundWrapsHue(t *testing.T) {
	got := HSLf{H: 359.6, S: 10.5, L: 20.4}.Round()
	want := HSL{H: 0, S: 11, L: 20}
	if got != want {
		t.Errorf("Round() = %v, want %v", got, want)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "long form", input: "#6b6b6b", want: RGB{R: 107, G: 107, B: 107}},
		{name: "upper case", input: "#EFEFEF", want: RGB{R: 239, G: 239, B: 239}},
		{name: "no hash", input: "abc123", want: RGB{R: 0xab, G: 0xc1, B: 0x23}},
		{name: "short form", input: "#fff", want: RGB{R: 255, G: 255, B: 255}},
		{name: "short form mixed", input: "#A0c", want: RGB{R: 0xaa, G: 0x00, B: 0xcc}},
		{name: "surrounding space", input: "  #000000 ", want: RGB{}},
		{name: "empty", input: "", wantErr: true},
		{name: "bad digit", input: "#12345g", wantErr: true},
		{name: "wrong length", input: "#1234", wantErr: true},
		{name: "too long", input: "#1234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHex) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, rgb := range []RGB{{}, {R: 1, G: 2, B: 3}, {R: 250, G: 128, B: 7}} {
		got, err := ParseHex(rgb.Hex())
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", rgb.Hex(), err)
		}
		if got != rgb {
			t.Errorf("ParseHex(%q) = %v, want %v", rgb.Hex(), got, rgb)
		}
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{name: "opaque", color: color.RGBA{R: 10, G: 20, B: 30, A: 255}, want: RGB{R: 10, G: 20, B: 30}},
		{name: "non-premultiplied", color: color.NRGBA{R: 200, G: 100, B: 50, A: 128}, want: RGB{R: 200, G: 100, B: 50}},
		{name: "transparent", color: color.NRGBA{A: 0}, want: RGB{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB(%v) = %v, want %v", tt.color, got, tt.want)
			}
		})
	}
}

func TestRGBFormatting(t *testing.T) {
	rgb := RGB{R: 26, G: 43, B: 60}
	if got := rgb.Hex(); got != "#1a2b3c" {
		t.Errorf("Hex() = %q, want %q", got, "#1a2b3c")
	}
	if got := rgb.String(); got != "rgb(26, 43, 60)" {
		t.Errorf("String() = %q", got)
	}
	if got := (HSL{H: 10, S: 20, L: 30}).String(); got != "hsl(10, 20%, 30%)" {
		t.Errorf("HSL.String() = %q", got)
	}
}
