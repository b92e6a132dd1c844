package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/swarmsketch/vmath"
)

func positionsOf(flock []BoidState) []vmath.Vec2 {
	ps := make([]vmath.Vec2, len(flock))
	for i, b := range flock {
		ps[i] = b.Pos
	}
	return ps
}

func neighborhoodOf(flock []BoidState, self int, r Rules) []Neighbor {
	return Neighborhood(nil, self, Scan{Positions: positionsOf(flock)}, r)
}

func TestRulesZeroWithoutNeighbors(t *testing.T) {
	r := DefaultRules()
	flock := []BoidState{
		{Pos: vmath.V(100, 100), Vel: vmath.V(2, 0)},
		{Pos: vmath.V(300, 300), Vel: vmath.V(0, 2)},
	}
	ns := neighborhoodOf(flock, 0, r)

	assert.Equal(t, vmath.Zero, Align(0, flock, ns, r))
	assert.Equal(t, vmath.Zero, Cohere(0, flock, ns, r))
	assert.Equal(t, vmath.Zero, Separate(0, flock, ns, r))
}

func TestSeparateIgnoresBoidsOutsideTightRadius(t *testing.T) {
	r := DefaultRules()
	// 30 units apart: inside perception, outside separation
	flock := []BoidState{
		{Pos: vmath.V(100, 100), Vel: vmath.V(0, 2)},
		{Pos: vmath.V(130, 100), Vel: vmath.V(2, 0)},
	}
	ns := neighborhoodOf(flock, 0, r)

	assert.Equal(t, vmath.Zero, Separate(0, flock, ns, r))
	assert.NotEqual(t, vmath.Zero, Cohere(0, flock, ns, r))
}

func TestAlignSteersTowardNeighborVelocity(t *testing.T) {
	r := DefaultRules()
	flock := []BoidState{
		{Pos: vmath.V(100, 100), Vel: vmath.V(2, 0)},
		{Pos: vmath.V(110, 100), Vel: vmath.V(0, 2)},
	}
	steer := Align(0, flock, neighborhoodOf(flock, 0, r), r)

	// desired (0,2) minus current (2,0), capped
	want := vmath.V(-2, 2).Limit(r.MaxForce)
	assert.True(t, steer.ApproxEqual(want, 1e-12), "got %v want %v", steer, want)
	assert.InDelta(t, r.MaxForce, steer.Len(), 1e-12)
}

func TestCohereSteersTowardCentroid(t *testing.T) {
	r := DefaultRules()
	flock := []BoidState{
		{Pos: vmath.V(100, 100), Vel: vmath.V(0, 0)},
		{Pos: vmath.V(100, 130), Vel: vmath.V(2, 0)},
		{Pos: vmath.V(100, 140), Vel: vmath.V(2, 0)},
	}
	steer := Cohere(0, flock, neighborhoodOf(flock, 0, r), r)

	assert.InDelta(t, 0, steer.X, 1e-12)
	assert.Greater(t, steer.Y, 0.0)
	assert.InDelta(t, r.MaxForce, steer.Len(), 1e-12)
}

func TestSeparateSteersAway(t *testing.T) {
	r := DefaultRules()
	flock := []BoidState{
		{Pos: vmath.V(100, 100), Vel: vmath.V(0, 0)},
		{Pos: vmath.V(110, 100), Vel: vmath.V(0, 0)},
	}
	steer := Separate(0, flock, neighborhoodOf(flock, 0, r), r)

	assert.Less(t, steer.X, 0.0)
	assert.InDelta(t, 0, steer.Y, 1e-12)
}

func TestSeparateSkipsCoincident(t *testing.T) {
	r := DefaultRules()
	flock := []BoidState{
		{Pos: vmath.V(100, 100), Vel: vmath.V(2, 0)},
		{Pos: vmath.V(100, 100), Vel: vmath.V(2, 0)},
	}
	steer := Separate(0, flock, neighborhoodOf(flock, 0, r), r)
	assert.Equal(t, vmath.Zero, steer)
}

func TestRuleForceCap(t *testing.T) {
	r := DefaultRules()
	rng := rand.New(rand.NewSource(3))
	flock := make([]BoidState, 120)
	for i := range flock {
		flock[i] = BoidState{
			Pos: vmath.V(rng.Float64()*200, rng.Float64()*200),
			Vel: vmath.FromAngle(rng.Float64() * twoPi).Scale(2),
		}
	}
	scan := Scan{Positions: positionsOf(flock)}
	var ns []Neighbor
	for i := range flock {
		ns = Neighborhood(ns[:0], i, scan, r)
		for _, steer := range []vmath.Vec2{
			Align(i, flock, ns, r),
			Cohere(i, flock, ns, r),
			Separate(i, flock, ns, r),
		} {
			assert.LessOrEqual(t, steer.Len(), r.MaxForce+1e-12)
		}
	}
}
