package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// setBoids overwrites the boids, in query order, with states.
func setBoids(t *testing.T, s *FlockSimulation, states []systems.BoidState) {
	t.Helper()
	i := 0
	query := s.boidFilter.Query()
	for query.Next() {
		pos, vel := query.Get()
		pos.Set(states[i].Pos)
		vel.Set(states[i].Vel)
		i++
	}
	require.Equal(t, len(states), i)
}

func newTestFlock(t *testing.T, mutate func(*Options)) *FlockSimulation {
	t.Helper()
	opts := DefaultFlockOptions()
	if mutate != nil {
		mutate(&opts)
	}
	s := NewFlockSimulation(opts, systems.DefaultRules(), AllRules())
	t.Cleanup(s.Close)
	return s
}

func TestFlockSpeedIsMaxAfterEveryStep(t *testing.T) {
	s := newTestFlock(t, nil)
	require.Equal(t, 100, s.Len())

	var states []systems.BoidState
	for step := 0; step < 50; step++ {
		s.Step()
		states = s.Snapshot(states[:0])
		for i, b := range states {
			require.InDelta(t, 2.0, b.Vel.Len(), 1e-9, "step %d boid %d", step, i)
			require.GreaterOrEqual(t, b.Pos.X, 0.0)
			require.Less(t, b.Pos.X, 800.0)
			require.GreaterOrEqual(t, b.Pos.Y, 0.0)
			require.Less(t, b.Pos.Y, 800.0)
		}
	}
	assert.Equal(t, 50, s.Tick())
}

func TestFlockInitialState(t *testing.T) {
	s := newTestFlock(t, func(o *Options) { o.InitialSpeed = 1.5 })

	for _, b := range s.Snapshot(nil) {
		assert.InDelta(t, 1.5, b.Vel.Len(), 1e-12)
		assert.True(t, b.Pos.X >= 0 && b.Pos.X < 800)
		assert.True(t, b.Pos.Y >= 0 && b.Pos.Y < 800)
	}
}

func TestFlockZeroStepsLeavesStateUnchanged(t *testing.T) {
	a := newTestFlock(t, nil)
	b := newTestFlock(t, nil)

	before := a.Snapshot(nil)
	assert.Equal(t, before, a.Snapshot(nil))
	assert.Equal(t, before, b.Snapshot(nil), "same seed gives the same flock")
	assert.Equal(t, 0, a.Tick())
}

func TestFlockSingleBoidKeepsDirection(t *testing.T) {
	s := newTestFlock(t, func(o *Options) {
		o.Population = 1
		o.InitialSpeed = 1
	})
	initial := s.Snapshot(nil)[0]

	for i := 0; i < 10; i++ {
		s.Step()
		b := s.Snapshot(nil)[0]
		assert.InDelta(t, 2.0, b.Vel.Len(), 1e-12)
		assert.True(t, b.Vel.Normalize().ApproxEqual(initial.Vel.Normalize(), 1e-12))
	}
}

func TestFlockWrapsOnEveryEdge(t *testing.T) {
	tests := []struct {
		name     string
		pos, vel vmath.Vec2
		want     vmath.Vec2
	}{
		{"right", vmath.V(798.001, 400), vmath.V(2, 0), vmath.V(0.001, 400)},
		{"left", vmath.V(1.999, 400), vmath.V(-2, 0), vmath.V(799.999, 400)},
		{"bottom", vmath.V(400, 798.001), vmath.V(0, 2), vmath.V(400, 0.001)},
		{"top", vmath.V(400, 1.999), vmath.V(0, -2), vmath.V(400, 799.999)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestFlock(t, func(o *Options) { o.Population = 1 })
			setBoids(t, s, []systems.BoidState{{Pos: tt.pos, Vel: tt.vel}})

			s.Step()

			got := s.Snapshot(nil)[0]
			assert.InDelta(t, tt.want.X, got.Pos.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Pos.Y, 1e-9)
			assert.Equal(t, tt.vel, got.Vel)
		})
	}
}

func TestFlockParallelMatchesSequential(t *testing.T) {
	seq := newTestFlock(t, func(o *Options) {
		o.Population = 300
		o.ParallelThreshold = 1 << 30
	})
	par := newTestFlock(t, func(o *Options) {
		o.Population = 300
		o.Workers = 4
		o.ParallelThreshold = 1
	})

	for i := 0; i < 20; i++ {
		seq.Step()
		par.Step()
	}
	assert.True(t, par.parallel.running)
	assert.False(t, seq.parallel.running)
	assert.Equal(t, seq.Snapshot(nil), par.Snapshot(nil))
}

func TestFlockCloseStopsWorkers(t *testing.T) {
	s := newTestFlock(t, func(o *Options) {
		o.Population = 50
		o.Workers = 2
		o.ParallelThreshold = 1
	})
	require.False(t, s.parallel.running, "workers start lazily")

	s.Step()
	require.True(t, s.parallel.running)

	s.Close()
	assert.False(t, s.parallel.running)
	s.Close()

	s.Step()
	assert.True(t, s.parallel.running, "a later step restarts the pool")
}

func TestFlockGridMatchesScan(t *testing.T) {
	grid := newTestFlock(t, func(o *Options) { o.Population = 400 })
	scan := newTestFlock(t, func(o *Options) {
		o.Population = 400
		o.UseGrid = false
	})

	grid.Step()
	scan.Step()

	a, b := grid.Snapshot(nil), scan.Snapshot(nil)
	require.Len(t, b, len(a))
	for i := range a {
		// Neighbour order differs between the strategies, so sums may
		// differ in the last bits
		assert.True(t, a[i].Pos.ApproxEqual(b[i].Pos, 1e-9), "boid %d", i)
		assert.True(t, a[i].Vel.ApproxEqual(b[i].Vel, 1e-9), "boid %d", i)
	}
	assert.InDelta(t, scan.MeanNeighbors(), grid.MeanNeighbors(), 1e-12)
}

func TestFlockDisabledRulesFlyStraight(t *testing.T) {
	s := newTestFlock(t, nil)
	*s.Params() = FlockParams{}
	initial := s.Snapshot(nil)

	s.Step()

	for i, b := range s.Snapshot(nil) {
		assert.True(t, b.Vel.ApproxEqual(initial[i].Vel, 1e-12), "boid %d", i)
	}
}

func TestFlockSeparationPushesApart(t *testing.T) {
	s := newTestFlock(t, func(o *Options) { o.Population = 2 })
	*s.Params() = FlockParams{EnableSeparation: true}
	setBoids(t, s, []systems.BoidState{
		{Pos: vmath.V(400, 400), Vel: vmath.V(0, 2)},
		{Pos: vmath.V(410, 400), Vel: vmath.V(0, 2)},
	})

	s.Step()

	got := s.Snapshot(nil)
	assert.Less(t, got[0].Vel.X, 0.0)
	assert.Equal(t, -got[1].Vel.X, got[0].Vel.X, "mirror-image pushes")
	assert.Equal(t, got[1].Vel.Y, got[0].Vel.Y)
	assert.Greater(t, got[1].Pos.X-got[0].Pos.X, 10.0)
	assert.InDelta(t, 1.0, s.MeanNeighbors(), 1e-12)
}

func TestFlockStepIgnoresUpdateOrder(t *testing.T) {
	states := []systems.BoidState{
		{Pos: vmath.V(400, 400), Vel: vmath.V(0, 2)},
		{Pos: vmath.V(420, 405), Vel: vmath.V(1.2, 1.6)},
		{Pos: vmath.V(407, 430), Vel: vmath.V(-2, 0)},
	}
	reversed := make([]systems.BoidState, len(states))
	for i, b := range states {
		reversed[len(states)-1-i] = b
	}

	forward := newTestFlock(t, func(o *Options) { o.Population = len(states) })
	backward := newTestFlock(t, func(o *Options) { o.Population = len(states) })
	setBoids(t, forward, states)
	setBoids(t, backward, reversed)

	forward.Step()
	backward.Step()

	a, b := forward.Snapshot(nil), backward.Snapshot(nil)
	for i := range a {
		j := len(a) - 1 - i
		assert.Equal(t, a[i].Vel, b[j].Vel, "boid %d velocity", i)
		assert.Equal(t, a[i].Pos, b[j].Pos, "boid %d position", i)
		assert.NotEqual(t, states[i].Vel, a[i].Vel, "boid %d should have steered", i)
	}
}

func TestFlockSlowBoidReachesMaxSpeed(t *testing.T) {
	s := newTestFlock(t, func(o *Options) { o.Population = 1 })
	setBoids(t, s, []systems.BoidState{{Pos: vmath.V(100, 100), Vel: vmath.V(0, 0.01)}})

	s.Step()

	got := s.Snapshot(nil)[0]
	assert.InDelta(t, 0.0, got.Vel.X, 1e-12)
	assert.InDelta(t, 2.0, got.Vel.Y, 1e-12)
}

func TestFlockFromConfigDefaults(t *testing.T) {
	opts, rules, params := FlockFromConfig(configDefaults(t), 9)

	assert.Equal(t, int64(9), opts.Seed)
	assert.Equal(t, 100, opts.Population)
	assert.Equal(t, 800.0, opts.Width)
	assert.Equal(t, systems.DefaultRules(), rules)
	assert.Equal(t, AllRules(), params)
}
