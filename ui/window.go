package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadlife/camera"
	"github.com/pthm-cable/quadlife/components"
	"github.com/pthm-cable/quadlife/game"
	"github.com/pthm-cable/quadlife/systems"
	"github.com/pthm-cable/quadlife/telemetry"
)

const controlsLegend = "[Space] pause  [,/.] speed  [Arrows] pan  [+/-] zoom  [Home] reset  [Tab] overlays"

// Window drives a Game inside a raylib window and draws the UI around it.
type Window struct {
	game *game.Game
	cam  *camera.Camera

	hud       *HUD
	controls  *ControlsPanel
	inspector *Inspector
	overlays  *OverlayRegistry
	theme     Theme

	screenW, screenH float32

	// Hover state, refreshed every Update
	lives     []game.LifeInfo
	byNode    map[systems.Handle]int
	hovered   int // index into lives, -1 if none
	neighbors []systems.Handle
}

// NewWindow wraps g. The game must render onto a Canvas viewed through cam.
func NewWindow(g *game.Game, cam *camera.Camera, showHUD bool) *Window {
	w := &Window{
		game:      g,
		cam:       cam,
		hud:       NewHUD(),
		controls:  NewControlsPanel(10, 10, 220),
		inspector: NewInspector(10, 10, 220),
		overlays:  NewOverlayRegistry(),
		theme:     DefaultTheme(),
		screenW:   cam.ViewportW,
		screenH:   cam.ViewportH,
		byNode:    make(map[systems.Handle]int),
		hovered:   -1,
	}
	w.overlays.SetEnabled(OverlayHUD, showHUD)
	w.overlays.SetEnabled(OverlayBucketGrid, g.Universe().ShowGrid())
	w.overlays.SetEnabled(OverlayInspector, true)
	return w
}

// Update handles input, advances the simulation and refreshes hover state.
func (w *Window) Update() {
	w.handleInput()
	w.game.Update()
	w.updateHover()
}

// Draw renders one frame.
func (w *Window) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	w.game.Draw()

	if w.overlays.IsEnabled(OverlayNeighbors) {
		w.drawNeighbors()
	}
	if w.overlays.IsEnabled(OverlayHUD) {
		w.hud.Draw(int32(w.screenW)-220, 10, w.hudData())
	}
	if w.overlays.IsEnabled(OverlayInspector) && w.hovered >= 0 {
		w.inspector.SetPosition(int32(w.screenW)-220, 200)
		w.inspector.Draw(w.inspectorData())
	}
	w.controls.Draw(w.overlays)
	w.hud.DrawControls(int32(w.screenH), controlsLegend)

	rl.EndDrawing()
}

// updateHover finds the entity under the mouse cursor and its collision candidates.
func (w *Window) updateHover() {
	u := w.game.Universe()
	w.lives = u.Lives()
	clear(w.byNode)
	for i, l := range w.lives {
		w.byNode[l.Node] = i
	}

	mouse := rl.GetMousePosition()
	mx, my := w.cam.ScreenToWorld(mouse.X, mouse.Y)
	reach := float32(u.Body().Radius()) + 2

	w.hovered = -1
	best := reach * reach
	for i, l := range w.lives {
		dx := float32(l.Position.X) - mx
		dy := float32(l.Position.Y) - my
		if d := dx*dx + dy*dy; d <= best {
			best = d
			w.hovered = i
		}
	}

	w.neighbors = w.neighbors[:0]
	if w.hovered >= 0 {
		w.neighbors = u.Detector().QueryInto(w.neighbors, w.lives[w.hovered].Node)
	}
}

// drawNeighbors outlines the hovered entity's bucket cell and its candidates.
func (w *Window) drawNeighbors() {
	if w.hovered < 0 {
		return
	}
	u := w.game.Universe()
	index := u.Detector().Index()
	self := w.lives[w.hovered]

	x, y, cw, ch := index.Cell(index.Bucket(self.Node))
	sx, sy := w.cam.WorldToScreen(float32(x), float32(y))
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: sx, Y: sy, Width: w.cam.Scale(float32(cw)), Height: w.cam.Scale(float32(ch))},
		2, w.theme.Highlight,
	)

	r := w.cam.Scale(float32(u.Body().Radius())) + 2
	for _, h := range w.neighbors {
		i, ok := w.byNode[h]
		if !ok {
			continue
		}
		p := w.lives[i].Position
		cx, cy := w.cam.WorldToScreen(float32(p.X), float32(p.Y))
		rl.DrawCircleLines(int32(cx), int32(cy), r, w.theme.Highlight)
	}
	cx, cy := w.cam.WorldToScreen(float32(self.Position.X), float32(self.Position.Y))
	rl.DrawCircleLines(int32(cx), int32(cy), r+2, rl.Black)
}

func (w *Window) hudData() HUDData {
	u := w.game.Universe()
	snap := u.Census()
	occupied, _, _, _ := telemetry.OccupancyStats(snap.Occupancy)
	perf := w.game.Perf().Stats()
	var colors [3]string
	for i := range colors {
		colors[i] = u.SpeciesColor(components.Species(i))
	}
	return HUDData{
		Tick:           u.Tick(),
		Counts:         snap.Counts,
		Colors:         colors,
		Buckets:        occupied,
		RootLoad:       snap.Occupancy[0],
		CandidatePairs: snap.CandidatePairs,
		NaivePairs:     telemetry.NaivePairs(u.Len()),
		Speed:          w.game.StepsPerUpdate(),
		FPS:            rl.GetFPS(),
		TPS:            perf.TicksPerSecond,
		Paused:         w.game.Paused(),
	}
}

func (w *Window) inspectorData() InspectorData {
	self := w.lives[w.hovered]
	index := w.game.Universe().Detector().Index()
	b := index.Bucket(self.Node)
	return InspectorData{
		Life:       self,
		Color:      w.game.Universe().SpeciesColor(self.Species),
		Bucket:     b,
		Level:      index.Level(b),
		BucketLoad: index.BucketLen(b),
		Candidates: len(w.neighbors),
	}
}
