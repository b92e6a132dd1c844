// Package camera provides a 2D camera over a toroidal canvas.
package camera

import (
	"math"

	"github.com/pthm-cable/swarmsketch/vmath"
)

// Camera controls the viewport into the canvas.
// Supports pan and zoom with toroidal wrapping.
type Camera struct {
	// Center is the camera center in world coordinates
	Center vmath.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions (for toroidal wrapping)
	WorldW, WorldH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world with 1:1 zoom.
func New(viewportW, viewportH, worldW, worldH float64) *Camera {
	c := &Camera{
		Center:    vmath.V(worldW/2, worldH/2),
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   8.0,
	}
	c.MinZoom = c.minZoom()
	c.SetZoom(1.0)
	return c
}

// minZoom is the smallest zoom at which the viewport never shows more
// than one copy of the world.
func (c *Camera) minZoom() float64 {
	return max(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts world coordinates to screen coordinates along the
// toroidal shortest path from the camera center.
func (c *Camera) WorldToScreen(w vmath.Vec2) vmath.Vec2 {
	dx := toroidalDelta(w.X, c.Center.X, c.WorldW)
	dy := toroidalDelta(w.Y, c.Center.Y, c.WorldH)
	return vmath.V(c.ViewportW/2+dx*c.Zoom, c.ViewportH/2+dy*c.Zoom)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(s vmath.Vec2) vmath.Vec2 {
	dx := (s.X - c.ViewportW/2) / c.Zoom
	dy := (s.Y - c.ViewportH/2) / c.Zoom
	return vmath.V(mod(c.Center.X+dx, c.WorldW), mod(c.Center.Y+dy, c.WorldH))
}

// IsVisible returns true if a circle at w with given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(w vmath.Vec2, radius float64) bool {
	dx := toroidalDelta(w.X, c.Center.X, c.WorldW)
	dy := toroidalDelta(w.Y, c.Center.Y, c.WorldH)

	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius

	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// GhostPositions appends extra screen positions for a shape of the given
// radius that straddles a visible seam, so it shows on both sides. At
// most three are added (a corner needs all of them).
func (c *Camera) GhostPositions(dst []vmath.Vec2, w vmath.Vec2, radius float64) []vmath.Vec2 {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	dx := toroidalDelta(w.X, c.Center.X, c.WorldW)
	dy := toroidalDelta(w.Y, c.Center.Y, c.WorldH)

	hGhost, hx := c.ghostOffset(dx, halfW, radius, c.WorldW)
	vGhost, vy := c.ghostOffset(dy, halfH, radius, c.WorldH)

	sx := c.ViewportW/2 + dx*c.Zoom
	sy := c.ViewportH/2 + dy*c.Zoom

	if hGhost {
		dst = append(dst, vmath.V(c.ViewportW/2+hx*c.Zoom, sy))
	}
	if vGhost {
		dst = append(dst, vmath.V(sx, c.ViewportH/2+vy*c.Zoom))
	}
	if hGhost && vGhost {
		dst = append(dst, vmath.V(c.ViewportW/2+hx*c.Zoom, c.ViewportH/2+vy*c.Zoom))
	}
	return dst
}

// ghostOffset reports whether a point at delta d from the center sits on a
// view edge of half-extent half, and where its wrapped copy lands.
func (c *Camera) ghostOffset(d, half, radius, size float64) (bool, float64) {
	switch {
	case d > half-radius && d < half+radius:
		return true, d - size
	case d < -half+radius && d > -half-radius:
		return true, d + size
	}
	return false, 0
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.minZoom()
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// Pan moves the camera by the given delta in screen pixels.
// Automatically wraps around world boundaries.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = vmath.V(
		mod(c.Center.X+dx/c.Zoom, c.WorldW),
		mod(c.Center.Y+dy/c.Zoom, c.WorldH),
	)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Center = vmath.V(c.WorldW/2, c.WorldH/2)
	c.SetZoom(1.0)
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// The bounds are not wrapped: min may be negative and max may exceed the
// world size when the view crosses a seam.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.Center.X - halfW, c.Center.Y - halfH, c.Center.X + halfW, c.Center.Y + halfH
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// in a toroidal space of the given size.
func toroidalDelta(to, from, size float64) float64 {
	d := to - from
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// mod computes the positive modulo (Go's math.Mod can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
