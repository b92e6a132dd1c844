package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.uiControls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showPerf = !g.showPerf
	}

	g.handleCameraInput()
	g.handleOverlayKeys()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())

	g.camera.Resize(w, h)
	if g.trailRenderer != nil {
		g.trailRenderer.Resize(float32(w), float32(h))
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1.0 + float64(wheel)*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
