package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadlife/components"
	"github.com/pthm-cable/quadlife/renderer"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick           int32
	Counts         [3]int
	Colors         [3]string
	Buckets        int // occupied buckets
	RootLoad       int
	CandidatePairs int
	NaivePairs     int
	Speed          int
	FPS            int32
	TPS            float64
	Paused         bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	colors   renderer.Palette
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), colors: make(renderer.Palette)}
}

// Draw renders the HUD panel at (x, y).
func (h *HUD) Draw(x, y int32, data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	width := int32(210)
	height := r.Theme.LineHeight*10 + pad*2
	r.DrawPanel(x, y, width, height)

	cx, cy := x+pad, y+pad
	status := "running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("Tick %d  %s", data.Tick, status), cx, cy, 14, rl.White)
	cy += r.Theme.LineHeight + 4

	for i, name := range components.SpeciesNames() {
		cy = r.DrawColorSwatch(cx, cy, name, h.colors.Color(data.Colors[i]))
		rl.DrawText(fmt.Sprintf("%d", data.Counts[i]), cx+r.Theme.LabelWidth+18, cy-r.Theme.LineHeight, r.Theme.FontSize, r.Theme.ValueColor)
	}

	cy = r.DrawLabelValue(cx, cy, "Buckets", fmt.Sprintf("%d (root %d)", data.Buckets, data.RootLoad))
	cy = r.DrawLabelValue(cx, cy, "Pairs", fmt.Sprintf("%d / %d", data.CandidatePairs, data.NaivePairs))
	var ratio float32
	if data.NaivePairs > 0 {
		ratio = float32(data.CandidatePairs) / float32(data.NaivePairs)
	}
	cy = r.DrawBar(cx, cy, "Pair ratio", ratio, width-pad*2)
	r.DrawLabelValue(cx, cy, "Speed", fmt.Sprintf("%dx  %d fps  %.0f tps", data.Speed, data.FPS, data.TPS))
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}
