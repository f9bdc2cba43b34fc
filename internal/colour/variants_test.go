package colour

import "testing"

func TestLighten(t *testing.T) {
	tests := []struct {
		name   string
		rgb    RGB
		amount int
		want   RGB
	}{
		{name: "white capped at 95", rgb: RGB{R: 255, G: 255, B: 255}, amount: 15, want: RGB{R: 242, G: 242, B: 242}},
		{name: "neutral grey", rgb: RGB{R: 107, G: 107, B: 107}, amount: 15, want: RGB{R: 145, G: 145, B: 145}},
		{name: "zero amount", rgb: RGB{R: 107, G: 107, B: 107}, amount: 0, want: RGB{R: 107, G: 107, B: 107}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lighten(tt.rgb, tt.amount); got != tt.want {
				t.Errorf("Lighten(%v, %d) = %v, want %v", tt.rgb, tt.amount, got, tt.want)
			}
		})
	}
}

func TestLightenNeverExceedsCap(t *testing.T) {
	for l := 0; l <= 100; l += 5 {
		rgb := HSLToRGB(HSL{H: 30, S: 60, L: l})
		got := RGBToHSL(Lighten(rgb, 100))
		if got.L > 95 {
			t.Errorf("Lighten(L=%d) produced L=%d", l, got.L)
		}
	}
}

func TestLightenHex(t *testing.T) {
	got, ok := LightenHex("#6B6B6B", DefaultLightenAmount)
	if !ok || got != "#919191" {
		t.Errorf("LightenHex = %q, %v; want #919191, true", got, ok)
	}

	got, ok = LightenHex("not-a-colour", DefaultLightenAmount)
	if ok || got != "not-a-colour" {
		t.Errorf("LightenHex of invalid input = %q, %v; want input unchanged, false", got, ok)
	}
}

func TestLightenedSoftRole(t *testing.T) {
	soft := NewRoleColour(RoleSoft, RGB{R: 239, G: 239, B: 239})
	ls := LightenedSoft(soft, DefaultLightenAmount)
	if ls.Role != RoleLightenedSoft {
		t.Errorf("role = %s, want %s", ls.Role, RoleLightenedSoft)
	}
	if ls.Hex != "#f2f2f2" {
		t.Errorf("hex = %s, want #f2f2f2", ls.Hex)
	}
}
