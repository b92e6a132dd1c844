// Package vmath provides the 2D vector type shared by the simulations.
package vmath

import "math"

// Vec2 is an immutable-by-value 2D vector.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns the unit vector pointing along theta (radians).
func FromAngle(theta float64) Vec2 {
	return Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LenSq() float64       { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }
func (a Vec2) IsZero() bool         { return a.X == 0 && a.Y == 0 }

// Div divides both components by s. Division by zero yields the zero vector.
func (a Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Zero
	}
	return Vec2{a.X / s, a.Y / s}
}

// Dist returns the Euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Normalize returns the unit vector in the direction of a.
// The zero vector normalizes to the zero vector.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Zero
	}
	return Vec2{a.X / l, a.Y / l}
}

// Rotate rotates a counter-clockwise by theta radians.
func (a Vec2) Rotate(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{a.X*c - a.Y*s, a.X*s + a.Y*c}
}

// RotateDeg rotates a by deg degrees.
func (a Vec2) RotateDeg(deg float64) Vec2 {
	return a.Rotate(deg * math.Pi / 180)
}

// Limit caps the magnitude of a at maxLen, keeping its direction.
func (a Vec2) Limit(maxLen float64) Vec2 {
	if a.LenSq() > maxLen*maxLen {
		return a.Normalize().Scale(maxLen)
	}
	return a
}

// Angle returns the heading of a in radians, in (-Pi, Pi].
func (a Vec2) Angle() float64 {
	return math.Atan2(a.Y, a.X)
}

// ApproxEqual reports whether a and b differ by at most eps on each axis.
func (a Vec2) ApproxEqual(b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
