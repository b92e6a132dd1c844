package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/ui"
	"github.com/pthm-cable/swarmsketch/vmath"
)

var (
	overlayRadiusColor   = rl.Color{R: 100, G: 200, B: 100, A: 120}
	overlaySepColor      = rl.Color{R: 200, G: 100, B: 100, A: 120}
	overlayNeighborColor = rl.Color{R: 255, G: 220, B: 80, A: 255}
	overlayGridColor     = rl.Color{R: 60, G: 70, B: 80, A: 120}
	overlayVectorColor   = rl.Color{R: 100, G: 150, B: 200, A: 200}
)

// velocityOverlayScale stretches velocity lines so they read at boid speed.
const velocityOverlayScale = 6

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.uiOverlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.uiOverlays.Toggle(desc.ID)
		}
	}
}

// drawActiveOverlays renders all currently enabled overlays. Snapshot
// buffers are expected to hold the current frame.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayPerception:
			g.drawPerception()
		case ui.OverlaySpatialGrid:
			g.drawSpatialGrid()
		case ui.OverlayVelocity:
			g.drawVelocities()
		case ui.OverlaySensors:
			g.drawSensors()
		}
	}
}

// drawPerception circles the first boid's radii and links it to its
// neighbors.
func (g *Game) drawPerception() {
	if len(g.boidBuf) == 0 {
		return
	}
	rules := g.flock.Rules()
	zoom := float32(g.camera.Zoom)

	g.posBuf = g.posBuf[:0]
	for i := range g.boidBuf {
		g.posBuf = append(g.posBuf, g.boidBuf[i].Pos)
	}
	self := g.posBuf[0]
	center := g.camera.WorldToScreen(self)
	cx, cy := int32(center.X), int32(center.Y)
	rl.DrawCircleLines(cx, cy, float32(rules.PerceptionRadius)*zoom, overlayRadiusColor)
	rl.DrawCircleLines(cx, cy, float32(rules.SeparationRadius)*zoom, overlaySepColor)

	// Neighbor search is not toroidal, so straight lines never cross a seam
	for _, n := range systems.NeighborsWithin(nil, 0, g.posBuf, rules.PerceptionRadius) {
		other := center.Add(g.posBuf[n.Index].Sub(self).Scale(g.camera.Zoom))
		rl.DrawLineV(toScreen(center), toScreen(other), overlayNeighborColor)
	}
}

// drawSpatialGrid draws the neighbor grid cell boundaries.
func (g *Game) drawSpatialGrid() {
	cell := g.flock.GridCellSize()
	if cell <= 0 {
		return
	}
	w, h := g.flock.Bounds()
	cam := g.camera
	for x := 0.0; x < w; x += cell {
		s := cam.WorldToScreen(vmath.V(x, cam.Center.Y))
		rl.DrawLineV(rl.Vector2{X: float32(s.X)}, rl.Vector2{X: float32(s.X), Y: float32(cam.ViewportH)}, overlayGridColor)
	}
	for y := 0.0; y < h; y += cell {
		s := cam.WorldToScreen(vmath.V(cam.Center.X, y))
		rl.DrawLineV(rl.Vector2{Y: float32(s.Y)}, rl.Vector2{X: float32(cam.ViewportW), Y: float32(s.Y)}, overlayGridColor)
	}
}

func (g *Game) drawVelocities() {
	for i := range g.boidBuf {
		b := &g.boidBuf[i]
		g.drawVector(b.Pos, b.Vel.Scale(velocityOverlayScale))
	}
}

// drawSensors draws each agent's probe reach along its heading.
func (g *Game) drawSensors() {
	reach := g.forage.SensorDistance()
	for i := range g.agentBuf {
		a := &g.agentBuf[i]
		g.drawVector(a.Pos, vmath.FromAngle(a.Heading).Scale(reach))
	}
}

// drawVector draws v from a world position, scaled by the camera zoom.
func (g *Game) drawVector(from, v vmath.Vec2) {
	if !g.camera.IsVisible(from, v.Len()) {
		return
	}
	s := g.camera.WorldToScreen(from)
	rl.DrawLineV(toScreen(s), toScreen(s.Add(v.Scale(g.camera.Zoom))), overlayVectorColor)
}

func toScreen(v vmath.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
