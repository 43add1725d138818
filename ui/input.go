package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (w *Window) handleInput() {
	w.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		w.game.TogglePause()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		w.game.SetStepsPerUpdate(w.game.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		w.game.SetStepsPerUpdate(w.game.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		w.controls.Toggle()
	}
	for _, key := range w.overlays.Keys() {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if id, on, ok := w.overlays.HandleKeyPress(key); ok && id == OverlayBucketGrid {
			w.game.Universe().SetShowGrid(on)
		}
	}

	w.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	if sw == w.screenW && sh == w.screenH {
		return
	}
	w.screenW = sw
	w.screenH = sh
	w.cam.Resize(sw, sh)
}

// handleCameraInput processes camera pan/zoom controls.
func (w *Window) handleCameraInput() {
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		w.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		w.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		w.cam.Reset()
	}
}
