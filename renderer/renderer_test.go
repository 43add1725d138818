package renderer

import (
	"image/color"
	"testing"
)

var _ Surface = (*Recorder)(nil)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#000", color.RGBA{0, 0, 0, 255}},
		{"#02ab83", color.RGBA{0x02, 0xab, 0x83, 0xff}},
		{"eac435", color.RGBA{0xea, 0xc4, 0x35, 0xff}},
		{"#fb4d3d80", color.RGBA{0xfb, 0x4d, 0x3d, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#fffff", "#ggg", "#12345678a"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q): expected error", in)
		}
	}
}

func TestPaletteFallback(t *testing.T) {
	p := make(Palette)
	if got := p.Color("not-a-color"); got != (color.RGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("expected magenta fallback, got %v", got)
	}
	if got := p.Color("#02ab83"); got.G != 0xab {
		t.Errorf("unexpected color %v", got)
	}
	if len(p) != 2 {
		t.Errorf("expected 2 cached colors, got %d", len(p))
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.FillRect(0, 0, 500, 500, "#fff")
	r.StrokeRect(0, 0, 500, 500, "#000")
	r.Arc(10, 20, 5, 0, FullCircle, "#02ab83", "#02ab83")

	if len(r.Calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(r.Calls))
	}
	if r.Count(OpArc) != 1 || r.Count(OpFillRect) != 1 || r.Count(OpStrokeRect) != 1 {
		t.Errorf("unexpected counts in %+v", r.Calls)
	}
	arc := r.Calls[2]
	if arc.X != 10 || arc.Y != 20 || arc.Radius != 5 || arc.End != FullCircle {
		t.Errorf("unexpected arc %+v", arc)
	}
	if r.Calls[1].Op.String() != "strokeRect" {
		t.Errorf("unexpected op name %q", r.Calls[1].Op)
	}

	r.Reset()
	if len(r.Calls) != 0 {
		t.Error("reset kept calls")
	}
}
