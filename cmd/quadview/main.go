// Quadtree bucket explorer - interactive view of how a body is bucketed.
//
// Usage: go run ./cmd/quadview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadlife/components"
	"github.com/pthm-cable/quadlife/config"
	"github.com/pthm-cable/quadlife/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	previewSize  = 560
	panelWidth   = windowWidth - previewSize - 40
)

// ViewParams holds the slider state.
type ViewParams struct {
	X, Y     float32
	Diameter float32
	Levels   int
}

func main() {
	cfg := config.Defaults()
	field := components.Field{Width: cfg.World.Width, Height: cfg.World.Height}
	scale := float32(previewSize) / float32(max(field.Width, field.Height))

	defaults := ViewParams{
		X:        float32(field.Width) / 2,
		Y:        float32(field.Height) / 2,
		Diameter: float32(cfg.Entity.Diameter),
		Levels:   cfg.Index.Levels,
	}
	params := defaults
	showAll := true

	rl.InitWindow(windowWidth, windowHeight, "Quadtree Bucket Explorer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	tree := systems.NewQuadTree[struct{}](float64(field.Width), float64(field.Height), params.Levels)

	for !rl.WindowShouldClose() {
		if tree.Levels() != params.Levels {
			tree = systems.NewQuadTree[struct{}](float64(field.Width), float64(field.Height), params.Levels)
		}

		// Click in the preview moves the body
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			if m.X >= 10 && m.X < 10+previewSize && m.Y >= 10 && m.Y < 10+previewSize {
				params.X = (m.X - 10) / scale
				params.Y = (m.Y - 10) / scale
			}
		}

		pos := components.Position{X: uint32(params.X), Y: uint32(params.Y)}
		body := components.Body{Diameter: uint32(params.Diameter)}
		ul, dr := systems.Corners(pos, body)
		bucket := tree.BucketFor(ul, dr)
		level := tree.Level(bucket)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		toScreen := func(x, y float64) (int32, int32) {
			return 10 + int32(float32(x)*scale), 10 + int32(float32(y)*scale)
		}

		// Finest grid, or just the chosen level
		for b := 0; b < tree.NumBuckets(); b++ {
			if !showAll && tree.Level(b) != level {
				continue
			}
			x, y, w, h := tree.Cell(b)
			sx, sy := toScreen(x, y)
			rl.DrawRectangleLines(sx, sy, int32(float32(w)*scale), int32(float32(h)*scale), rl.LightGray)
		}

		// Chosen bucket
		x, y, w, h := tree.Cell(bucket)
		sx, sy := toScreen(x, y)
		rl.DrawRectangle(sx, sy, int32(float32(w)*scale), int32(float32(h)*scale), rl.Color{R: 30, G: 120, B: 255, A: 50})
		rl.DrawRectangleLines(sx, sy, int32(float32(w)*scale), int32(float32(h)*scale), rl.Blue)

		// Body and its bounding square
		bx, by := toScreen(ul.X, ul.Y)
		bw := int32(float32(dr.X-ul.X) * scale)
		bh := int32(float32(dr.Y-ul.Y) * scale)
		rl.DrawRectangleLines(bx, by, bw, bh, rl.DarkGray)
		cx, cy := toScreen(float64(pos.X), float64(pos.Y))
		rl.DrawCircle(cx, cy, float32(body.Radius())*scale, rl.Color{R: 0x02, G: 0xab, B: 0x83, A: 255})

		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 30)
		panelY := float32(10)

		rl.DrawText("Bucket Assignment", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		panelY = slider(panelX, panelY, "Center X", &params.X, 0, float32(field.Width), "%.0f")
		panelY = slider(panelX, panelY, "Center Y", &params.Y, 0, float32(field.Height), "%.0f")
		panelY = slider(panelX, panelY, "Diameter", &params.Diameter, 1, float32(field.Width)/2, "%.0f")

		levels := float32(params.Levels)
		panelY = slider(panelX, panelY, "Levels", &levels, 1, 8, "%.0f")
		params.Levels = int(levels + 0.5)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+panelWidth-20, int32(panelY), rl.LightGray)
		panelY += 15

		quadrant := bucket - tree.LevelOffset(level)
		lines := []string{
			fmt.Sprintf("Bucket:   %d of %d", bucket, tree.NumBuckets()),
			fmt.Sprintf("Level:    %d (finest %d)", level, tree.Levels()-1),
			fmt.Sprintf("Quadrant: %d", quadrant),
			fmt.Sprintf("Cell:     (%.1f, %.1f) %.1f x %.1f", x, y, w, h),
			fmt.Sprintf("Box:      (%.1f, %.1f) - (%.1f, %.1f)", ul.X, ul.Y, dr.X, dr.Y),
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 22
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, toggleText(showAll, "Chosen level", "All levels")) {
			showAll = !showAll
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 120, Height: 30}, "Reset") {
			params = defaults
		}

		rl.DrawText("Click or drag in the field to move the body", 10, windowHeight-30, 14, rl.Gray)
		rl.EndDrawing()
	}
}

// slider draws a labelled slider bound to v and returns the next panel Y.
func slider(x, y float32, label string, v *float32, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	*v = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		*v, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *v), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.DarkGray)
	return y + 35
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
