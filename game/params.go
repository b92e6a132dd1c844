package game

import (
	"golang.org/x/exp/constraints"

	"github.com/pthm-cable/swarmsketch/config"
)

// FlockParams toggles the steering rules. The UI mutates it between steps;
// a disabled rule contributes nothing to the summed steer.
type FlockParams struct {
	EnableAlignment  bool
	EnableCohesion   bool
	EnableSeparation bool
}

// AllRules enables alignment, cohesion and separation.
func AllRules() *FlockParams {
	return &FlockParams{EnableAlignment: true, EnableCohesion: true, EnableSeparation: true}
}

// ForageParams holds the live-tunable physarum settings. Read once at the
// start of every step.
type ForageParams struct {
	MoveSpeed  float64 // [0.1, 10]
	TurnSpeed  float64 // [0.1, 5] radians
	ShowAgents bool    // agents deposit trail when set
}

// DefaultForageParams returns the stock slider values.
func DefaultForageParams() *ForageParams {
	return &ForageParams{MoveSpeed: 1.0, TurnSpeed: 0.3, ShowAgents: true}
}

// Clamp pulls MoveSpeed and TurnSpeed into their ranges. NaN falls back to
// the lower bound.
func (p *ForageParams) Clamp() {
	p.MoveSpeed = clamp(p.MoveSpeed, config.MinMoveSpeed, config.MaxMoveSpeed)
	p.TurnSpeed = clamp(p.TurnSpeed, config.MinTurnSpeed, config.MaxTurnSpeed)
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
