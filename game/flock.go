package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarmsketch/components"
	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/telemetry"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// FlockSimulation owns a fixed population of boids and advances them one
// frame per Step. Every boid's steer is computed from the same pre-step
// snapshot, so update order never matters.
type FlockSimulation struct {
	world *ecs.World
	rng   *rand.Rand

	boidMapper *ecs.Map2[components.Position, components.Velocity]
	boidFilter *ecs.Filter2[components.Position, components.Velocity]
	posMap     *ecs.Map1[components.Position]
	velMap     *ecs.Map1[components.Velocity]

	rules    systems.Rules
	params   *FlockParams
	enabled  FlockParams // copy of params taken at the start of a step
	maxSpeed float64

	// Neighbour lookup over the current snapshot
	grid   *systems.SpatialGrid
	finder systems.NeighborFinder

	parallel *parallelState
	perf     *telemetry.PerfCollector // optional

	tick          int
	meanNeighbors float64

	width, height float64
}

// NewFlockSimulation spawns opts.Population boids at uniformly random
// positions, each heading in a random direction at opts.InitialSpeed.
// params is held by pointer and may be changed between steps.
//
// Once the population reaches the parallel threshold the first Step starts
// worker goroutines; callers must Close the simulation to stop them.
func NewFlockSimulation(opts Options, rules systems.Rules, params *FlockParams) *FlockSimulation {
	if params == nil {
		params = AllRules()
	}
	maxSpeed := opts.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = rules.DesiredSpeed
	}

	world := ecs.NewWorld()
	s := &FlockSimulation{
		world:      world,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		boidMapper: ecs.NewMap2[components.Position, components.Velocity](world),
		boidFilter: ecs.NewFilter2[components.Position, components.Velocity](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		rules:      rules,
		params:     params,
		maxSpeed:   maxSpeed,
		width:      opts.Width,
		height:     opts.Height,
		parallel:   newParallelState(opts.Workers, opts.ParallelThreshold),
	}

	if opts.UseGrid {
		cellSize := opts.CellSize
		if cellSize <= 0 {
			cellSize = rules.QueryRadius()
		}
		s.grid = systems.NewSpatialGrid(opts.Width, opts.Height, cellSize)
	}

	s.spawnInitialPopulation(opts.Population, opts.InitialSpeed)
	return s
}

// spawnInitialPopulation creates the starting boids.
func (s *FlockSimulation) spawnInitialPopulation(n int, speed float64) {
	for i := 0; i < n; i++ {
		pos := components.Position{
			X: s.rng.Float64() * s.width,
			Y: s.rng.Float64() * s.height,
		}
		var vel components.Velocity
		vel.Set(vmath.FromAngle(s.rng.Float64() * 2 * math.Pi).Scale(speed))
		s.boidMapper.NewEntity(&pos, &vel)
	}
}

// Step advances the flock by one frame.
func (s *FlockSimulation) Step() {
	s.enabled = *s.params

	// Phase A: Build snapshots (single-threaded)
	s.phase(telemetry.PhaseSnapshot)
	s.parallel.snapshot(s.boidFilter)

	n := len(s.parallel.states)
	if n == 0 {
		s.tick++
		return
	}

	s.phase(telemetry.PhaseSpatial)
	if s.grid != nil {
		s.grid.Rebuild(s.parallel.positions)
		s.finder = s.grid
	} else {
		s.finder = systems.Scan{Positions: s.parallel.positions}
	}

	// Phase B: Compute - choose single or parallel based on population
	s.phase(telemetry.PhaseSteer)
	if n < s.parallel.threshold {
		s.computeChunk(0, n, &s.parallel.scratches[0])
	} else {
		s.computeParallel(n)
	}

	// Phase C: Apply intents (single-threaded)
	s.phase(telemetry.PhaseApply)
	s.applyIntents()
	s.tick++
}

func (s *FlockSimulation) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

// computeChunk steers and integrates boids [i0, i1) of the snapshot. It
// only reads the snapshot and writes its own intents, so chunks may run
// concurrently.
func (s *FlockSimulation) computeChunk(i0, i1 int, scratch *workerScratch) {
	states := s.parallel.states
	w, h := s.width, s.height

	for i := i0; i < i1; i++ {
		self := states[i]
		intent := &s.parallel.intents[i]

		scratch.Neighbors = systems.Neighborhood(scratch.Neighbors[:0], i, s.finder, s.rules)
		steer := s.enabled.steer(i, states, scratch.Neighbors, s.rules)

		vel := self.Vel.Add(steer)
		if vel.IsZero() {
			// Steering cancelled the velocity exactly: keep the old heading
			vel = self.Vel
		}
		vel = vel.Normalize().Scale(s.maxSpeed)

		pos := self.Pos.Add(vel)
		intent.Pos = vmath.V(systems.Wrap(pos.X, w), systems.Wrap(pos.Y, h))
		intent.Vel = vel
		intent.Neighbors = len(scratch.Neighbors)
	}
}

// steer sums the enabled rules.
func (p FlockParams) steer(self int, flock []systems.BoidState, neighbors []systems.Neighbor, r systems.Rules) vmath.Vec2 {
	var sum vmath.Vec2
	if p.EnableAlignment {
		sum = sum.Add(systems.Align(self, flock, neighbors, r))
	}
	if p.EnableCohesion {
		sum = sum.Add(systems.Cohere(self, flock, neighbors, r))
	}
	if p.EnableSeparation {
		sum = sum.Add(systems.Separate(self, flock, neighbors, r))
	}
	return sum
}

// applyIntents writes computed results back to the ECS components.
func (s *FlockSimulation) applyIntents() {
	total := 0
	for i, entity := range s.parallel.entities {
		intent := &s.parallel.intents[i]

		pos := s.posMap.Get(entity)
		vel := s.velMap.Get(entity)
		if pos == nil || vel == nil {
			continue
		}
		pos.Set(intent.Pos)
		vel.Set(intent.Vel)
		total += intent.Neighbors
	}
	s.meanNeighbors = float64(total) / float64(len(s.parallel.entities))
}

// Snapshot appends every boid's current state to dst. The order is stable
// across steps.
func (s *FlockSimulation) Snapshot(dst []systems.BoidState) []systems.BoidState {
	query := s.boidFilter.Query()
	for query.Next() {
		pos, vel := query.Get()
		dst = append(dst, systems.BoidState{Pos: pos.Vec(), Vel: vel.Vec()})
	}
	return dst
}

// Len returns the population.
func (s *FlockSimulation) Len() int {
	n := 0
	query := s.boidFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Tick returns the number of completed steps.
func (s *FlockSimulation) Tick() int { return s.tick }

// Params returns the live rule toggles.
func (s *FlockSimulation) Params() *FlockParams { return s.params }

// Rules returns the steering constants.
func (s *FlockSimulation) Rules() systems.Rules { return s.rules }

// Bounds returns the canvas size.
func (s *FlockSimulation) Bounds() (w, h float64) { return s.width, s.height }

// MaxSpeed returns the speed every boid has after a step.
func (s *FlockSimulation) MaxSpeed() float64 { return s.maxSpeed }

// MeanNeighbors returns the average neighbourhood size seen in the last step.
func (s *FlockSimulation) MeanNeighbors() float64 { return s.meanNeighbors }

// GridCellSize returns the neighbor grid cell size, or 0 when neighbors
// are found by a full scan.
func (s *FlockSimulation) GridCellSize() float64 {
	if s.grid == nil {
		return 0
	}
	return s.grid.CellSize()
}

// Close stops the worker goroutines. A later parallel Step starts them again.
func (s *FlockSimulation) Close() {
	if s.parallel != nil {
		s.parallel.stopWorkers()
	}
}
