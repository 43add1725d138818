package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(600, 600, 500, 500)

	// World origin pinned to the top-left corner
	sx, sy := cam.WorldToScreen(0, 0)
	if sx != 0 || sy != 0 {
		t.Errorf("expected world origin at screen (0, 0), got (%f, %f)", sx, sy)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenOneToOne(t *testing.T) {
	cam := New(600, 600, 500, 500)

	sx, sy := cam.WorldToScreen(500, 250)
	if math.Abs(float64(sx-500)) > 0.01 || math.Abs(float64(sy-250)) > 0.01 {
		t.Errorf("expected (500, 250), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(600, 600, 500, 500)
	cam.SetZoom(2)
	cam.Pan(37, -12)

	testCases := []struct{ sx, sy float32 }{
		{300, 300}, // center
		{10, 10},   // top-left
		{590, 580}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(600, 600, 500, 500)

	cam.Pan(-10000, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}

	cam.Pan(0, 10000)
	if cam.Y != 500 {
		t.Errorf("expected Y clamped to 500, got %f", cam.Y)
	}
}

func TestScale(t *testing.T) {
	cam := New(600, 600, 500, 500)
	cam.SetZoom(2)
	if got := cam.Scale(5); got != 10 {
		t.Errorf("expected 10 pixels, got %f", got)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(600, 600, 500, 500)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.25 {
		t.Errorf("expected zoom clamped to 0.25, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(600, 600, 500, 500)
	cam.SetZoom(2)
	// Visible world range is (150, 150) to (450, 450)

	if !cam.IsVisible(300, 300, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(20, 20, 10) {
		t.Error("far corner should not be visible")
	}
	if !cam.IsVisible(145, 300, 10) {
		t.Error("edge point with radius should be visible")
	}
}

func TestResizeKeepsOrigin(t *testing.T) {
	cam := New(600, 600, 500, 500)
	cam.Resize(800, 700)

	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx)) > 0.01 || math.Abs(float64(sy)) > 0.01 {
		t.Errorf("expected world origin to stay at (0, 0), got (%f, %f)", sx, sy)
	}
}

func TestReset(t *testing.T) {
	cam := New(600, 600, 500, 500)
	cam.X = 100
	cam.Y = 100
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 300 || cam.Y != 300 {
		t.Errorf("expected position (300, 300), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
