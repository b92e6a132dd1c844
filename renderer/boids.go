// Package renderer draws simulation snapshots with raylib. Nothing here
// feeds back into the simulations.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/camera"
	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// Boid glyph dimensions in canvas units.
const (
	boidNoseLength = 8.0
	boidTailLength = 3.0
	boidTailAngle  = 120.0 // degrees either side of the heading
)

// BoidTriangle returns the glyph for one boid: a tip ahead of the boid and
// two base corners behind it. The corners are ordered so the triangle winds
// counter-clockwise on a y-down screen.
func BoidTriangle(b systems.BoidState) (tip, left, right vmath.Vec2) {
	dir := b.Vel.Normalize()
	if dir.IsZero() {
		dir = vmath.V(1, 0)
	}
	tip = b.Pos.Add(dir.Scale(boidNoseLength))
	left = b.Pos.Add(dir.RotateDeg(boidTailAngle).Scale(boidTailLength))
	right = b.Pos.Add(dir.RotateDeg(-boidTailAngle).Scale(boidTailLength))

	if cross(left.Sub(tip), right.Sub(tip)) > 0 {
		left, right = right, left
	}
	return tip, left, right
}

func cross(a, b vmath.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// BoidRenderer draws boids as filled triangles.
type BoidRenderer struct {
	Color  rl.Color
	ghosts []vmath.Vec2
}

// NewBoidRenderer creates a boid renderer drawing in white.
func NewBoidRenderer() *BoidRenderer {
	return &BoidRenderer{Color: rl.White}
}

// Draw renders all boids through cam. Boids straddling a visible seam are
// drawn on both sides.
func (r *BoidRenderer) Draw(boids []systems.BoidState, cam *camera.Camera) {
	for i := range boids {
		b := boids[i]
		if !cam.IsVisible(b.Pos, boidNoseLength) {
			continue
		}
		tip, left, right := BoidTriangle(b)
		tip, left, right = tip.Sub(b.Pos), left.Sub(b.Pos), right.Sub(b.Pos)

		r.drawAt(cam.WorldToScreen(b.Pos), tip, left, right, cam.Zoom)
		r.ghosts = cam.GhostPositions(r.ghosts[:0], b.Pos, boidNoseLength)
		for _, g := range r.ghosts {
			r.drawAt(g, tip, left, right, cam.Zoom)
		}
	}
}

// drawAt draws a triangle given relative to its boid at screen position at.
// Uniform scaling keeps the winding.
func (r *BoidRenderer) drawAt(at, tip, left, right vmath.Vec2, zoom float64) {
	rl.DrawTriangle(
		toRL(at.Add(tip.Scale(zoom))),
		toRL(at.Add(left.Scale(zoom))),
		toRL(at.Add(right.Scale(zoom))),
		r.Color,
	)
}

func toRL(v vmath.Vec2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
