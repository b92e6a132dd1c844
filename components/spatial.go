// Package components defines ECS components for the simulations.
package components

import "github.com/pthm-cable/swarmsketch/vmath"

// Position represents an agent's canvas position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() vmath.Vec2 { return vmath.Vec2{X: p.X, Y: p.Y} }

// Set stores v into p.
func (p *Position) Set(v vmath.Vec2) { p.X, p.Y = v.X, v.Y }

// Velocity represents an agent's per-step displacement.
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() vmath.Vec2 { return vmath.Vec2{X: v.X, Y: v.Y} }

// Set stores u into v.
func (v *Velocity) Set(u vmath.Vec2) { v.X, v.Y = u.X, u.Y }

// Heading is a foraging agent's direction of travel.
type Heading struct {
	Angle float64 // radians, [0, 2*Pi)
}
