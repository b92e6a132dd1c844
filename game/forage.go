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

// ForagingSimulation moves agents that steer by sampling a shared trail
// field just ahead of them, optionally laying trail as they go.
type ForagingSimulation struct {
	world *ecs.World
	rng   *rand.Rand

	agentMapper *ecs.Map3[components.Position, components.Velocity, components.Heading]
	agentFilter *ecs.Filter3[components.Position, components.Velocity, components.Heading]

	field          *systems.TrailField
	params         *ForageParams
	sensorDistance float64

	perf *telemetry.PerfCollector // optional

	tick      int
	reorients int // edge re-headings in the last step

	width, height float64
}

// NewForagingSimulation spawns opts.Population agents at uniformly random
// positions with random headings over an empty field. params is held by
// pointer and may be changed between steps.
func NewForagingSimulation(opts Options, trail systems.TrailParams, params *ForageParams) *ForagingSimulation {
	if params == nil {
		params = DefaultForageParams()
	}
	params.Clamp()

	world := ecs.NewWorld()
	s := &ForagingSimulation{
		world:          world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		agentMapper:    ecs.NewMap3[components.Position, components.Velocity, components.Heading](world),
		agentFilter:    ecs.NewFilter3[components.Position, components.Velocity, components.Heading](world),
		field:          systems.NewTrailField(int(math.Ceil(opts.Width)), int(math.Ceil(opts.Height)), trail),
		params:         params,
		sensorDistance: opts.SensorDistance,
		width:          opts.Width,
		height:         opts.Height,
	}

	s.spawnInitialPopulation(opts.Population)
	return s
}

// spawnInitialPopulation creates the starting agents.
func (s *ForagingSimulation) spawnInitialPopulation(n int) {
	for i := 0; i < n; i++ {
		pos := components.Position{
			X: s.rng.Float64() * s.width,
			Y: s.rng.Float64() * s.height,
		}
		heading := components.Heading{Angle: s.rng.Float64() * 2 * math.Pi}
		var vel components.Velocity
		vel.Set(vmath.FromAngle(heading.Angle).Scale(s.params.MoveSpeed))
		s.agentMapper.NewEntity(&pos, &vel, &heading)
	}
}

// Step advances the field and every agent by one frame. Agents are
// processed in a fixed order; the random draws depend on it.
func (s *ForagingSimulation) Step() {
	s.params.Clamp()
	moveSpeed := s.params.MoveSpeed
	turnSpeed := s.params.TurnSpeed

	s.phase(telemetry.PhaseTrailDecay)
	s.field.Step()

	// Deposits use pre-movement positions and land before anyone senses
	s.phase(telemetry.PhaseDeposit)
	if s.params.ShowAgents {
		query := s.agentFilter.Query()
		for query.Next() {
			pos, _, _ := query.Get()
			s.field.DepositAt(pos.Vec())
		}
	}

	s.phase(telemetry.PhaseSenseMove)
	s.reorients = 0
	query := s.agentFilter.Query()
	for query.Next() {
		pos, vel, heading := query.Get()

		sensorAngle := heading.Angle + s.uniform(-turnSpeed, turnSpeed)
		sensor := pos.Vec().Add(vmath.FromAngle(sensorAngle).Scale(s.sensorDistance))

		var angle float64
		if !systems.InCanvas(sensor.X, sensor.Y, s.width, s.height) {
			angle = s.rng.Float64() * 2 * math.Pi
			s.reorients++
		} else {
			angle = sensorAngle + s.field.Sense(int(sensor.X), int(sensor.Y))*turnSpeed
		}
		heading.Angle = systems.NormalizeHeading(angle)

		v := vmath.FromAngle(heading.Angle).Scale(moveSpeed)
		vel.Set(v)
		pos.X = systems.Wrap(pos.X+v.X, s.width)
		pos.Y = systems.Wrap(pos.Y+v.Y, s.height)
	}

	s.tick++
}

func (s *ForagingSimulation) phase(name string) {
	if s.perf != nil {
		s.perf.StartPhase(name)
	}
}

// uniform draws from [lo, hi).
func (s *ForagingSimulation) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Agents appends every agent's current state to dst.
func (s *ForagingSimulation) Agents(dst []systems.AgentState) []systems.AgentState {
	query := s.agentFilter.Query()
	for query.Next() {
		pos, vel, heading := query.Get()
		dst = append(dst, systems.AgentState{Pos: pos.Vec(), Vel: vel.Vec(), Heading: heading.Angle})
	}
	return dst
}

// Len returns the number of agents.
func (s *ForagingSimulation) Len() int {
	n := 0
	query := s.agentFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Reorients returns how many agents picked a random heading at the canvas
// edge during the last step.
func (s *ForagingSimulation) Reorients() int { return s.reorients }

// Field returns a read-only view of the trail field, valid until the next Step.
func (s *ForagingSimulation) Field() systems.TrailSampler { return s.field }

// Tick returns the number of completed steps.
func (s *ForagingSimulation) Tick() int { return s.tick }

// Params returns the live tuning parameters.
func (s *ForagingSimulation) Params() *ForageParams { return s.params }

// SensorDistance returns how far ahead agents probe the field.
func (s *ForagingSimulation) SensorDistance() float64 { return s.sensorDistance }

// Bounds returns the canvas size.
func (s *ForagingSimulation) Bounds() (w, h float64) { return s.width, s.height }
