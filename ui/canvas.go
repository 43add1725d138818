package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadlife/camera"
	"github.com/pthm-cable/quadlife/renderer"
)

// circleSegments is the tessellation used for partial arcs.
const circleSegments = 36

// Canvas is a renderer.Surface that draws onto the current raylib frame
// through a camera transform. Calls must happen between rl.BeginDrawing and
// rl.EndDrawing.
type Canvas struct {
	cam    *camera.Camera
	colors renderer.Palette
}

var _ renderer.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas viewed through cam.
func NewCanvas(cam *camera.Camera) *Canvas {
	return &Canvas{cam: cam, colors: make(renderer.Palette)}
}

// FillRect draws a filled rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, fill string) {
	sx, sy := c.cam.WorldToScreen(float32(x), float32(y))
	rl.DrawRectangleV(
		rl.Vector2{X: sx, Y: sy},
		rl.Vector2{X: c.cam.Scale(float32(w)), Y: c.cam.Scale(float32(h))},
		c.colors.Color(fill),
	)
}

// StrokeRect draws a one-pixel rectangle outline.
func (c *Canvas) StrokeRect(x, y, w, h float64, stroke string) {
	sx, sy := c.cam.WorldToScreen(float32(x), float32(y))
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: sx, Y: sy, Width: c.cam.Scale(float32(w)), Height: c.cam.Scale(float32(h))},
		1,
		c.colors.Color(stroke),
	)
}

// Arc draws a filled and outlined circle sector. A full turn draws a plain circle.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64, stroke, fill string) {
	if !c.cam.IsVisible(float32(x), float32(y), float32(radius)) {
		return
	}
	sx, sy := c.cam.WorldToScreen(float32(x), float32(y))
	center := rl.Vector2{X: sx, Y: sy}
	rad := c.cam.Scale(float32(radius))

	if endAngle-startAngle >= renderer.FullCircle {
		rl.DrawCircleV(center, rad, c.colors.Color(fill))
		rl.DrawCircleLines(int32(sx), int32(sy), rad, c.colors.Color(stroke))
		return
	}

	start := float32(startAngle * rl.Rad2deg)
	end := float32(endAngle * rl.Rad2deg)
	rl.DrawCircleSector(center, rad, start, end, circleSegments, c.colors.Color(fill))
	rl.DrawCircleSectorLines(center, rad, start, end, circleSegments, c.colors.Color(stroke))
}
