package systems

import (
	"github.com/pthm-cable/swarmsketch/vmath"
)

// BoidState is a read-only view of one boid.
type BoidState struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}

// Rules holds the fixed constants of the three steering rules.
type Rules struct {
	PerceptionRadius float64 // alignment and cohesion
	SeparationRadius float64
	MaxForce         float64 // steering magnitude cap per step
	DesiredSpeed     float64
}

// DefaultRules returns the stock flocking constants.
func DefaultRules() Rules {
	return Rules{
		PerceptionRadius: 50,
		SeparationRadius: 24,
		MaxForce:         0.05,
		DesiredSpeed:     2.0,
	}
}

// QueryRadius is the radius that covers every rule.
func (r Rules) QueryRadius() float64 {
	return max(r.PerceptionRadius, r.SeparationRadius)
}

// Neighborhood collects the neighbours of flock[self] needed by all three
// rules into dst.
func Neighborhood(dst []Neighbor, self int, nf NeighborFinder, r Rules) []Neighbor {
	return nf.NeighborsWithin(dst, self, r.QueryRadius())
}

// steerTowards turns a desired direction into a capped steering force.
func steerTowards(desired vmath.Vec2, self BoidState, r Rules) vmath.Vec2 {
	return desired.Normalize().Scale(r.DesiredSpeed).Sub(self.Vel).Limit(r.MaxForce)
}

// Align steers toward the mean velocity of neighbours within the
// perception radius. Zero when there are none.
func Align(self int, flock []BoidState, neighbors []Neighbor, r Rules) vmath.Vec2 {
	var sum vmath.Vec2
	total := 0
	for _, n := range neighbors {
		if n.Index == self || n.Dist >= r.PerceptionRadius {
			continue
		}
		sum = sum.Add(flock[n.Index].Vel)
		total++
	}
	if total == 0 {
		return vmath.Zero
	}
	return steerTowards(sum.Div(float64(total)), flock[self], r)
}

// Cohere steers toward the centroid of neighbours within the perception
// radius. Zero when there are none.
func Cohere(self int, flock []BoidState, neighbors []Neighbor, r Rules) vmath.Vec2 {
	var sum vmath.Vec2
	total := 0
	for _, n := range neighbors {
		if n.Index == self || n.Dist >= r.PerceptionRadius {
			continue
		}
		sum = sum.Add(flock[n.Index].Pos)
		total++
	}
	if total == 0 {
		return vmath.Zero
	}
	centroid := sum.Div(float64(total))
	return steerTowards(centroid.Sub(flock[self].Pos), flock[self], r)
}

// Separate steers away from neighbours within the separation radius,
// each weighted by the inverse of its distance. Coincident neighbours
// have no defined direction and are skipped. Zero when there are none.
func Separate(self int, flock []BoidState, neighbors []Neighbor, r Rules) vmath.Vec2 {
	var sum vmath.Vec2
	total := 0
	pos := flock[self].Pos
	for _, n := range neighbors {
		if n.Index == self || n.Dist >= r.SeparationRadius || n.Dist == 0 {
			continue
		}
		diff := pos.Sub(flock[n.Index].Pos).Div(n.Dist)
		sum = sum.Add(diff)
		total++
	}
	if total == 0 {
		return vmath.Zero
	}
	return steerTowards(sum.Div(float64(total)), flock[self], r)
}
