package game

import (
	"github.com/pthm-cable/swarmsketch/config"
	"github.com/pthm-cable/swarmsketch/systems"
)

// Options holds construction-time settings shared by both simulations.
// Everything a simulation needs is passed in; nothing is read from the
// global config.
type Options struct {
	Seed       int64
	Width      float64
	Height     float64
	Population int

	InitialSpeed   float64 // boids: magnitude of the random initial velocity
	MaxSpeed       float64 // boids: speed after every step
	SensorDistance float64 // foragers: probe distance ahead of the sensor angle

	UseGrid  bool    // spatial grid instead of the full scan
	CellSize float64 // 0 = query radius

	Workers           int // 0 = GOMAXPROCS
	ParallelThreshold int // population at which rule evaluation fans out
}

// DefaultFlockOptions returns the stock boids setup on an 800x800 canvas.
func DefaultFlockOptions() Options {
	return Options{
		Seed:              1,
		Width:             800,
		Height:            800,
		Population:        100,
		InitialSpeed:      2.0,
		MaxSpeed:          2.0,
		UseGrid:           true,
		ParallelThreshold: parallelThreshold,
	}
}

// DefaultForageOptions returns the stock physarum setup on an 800x800 canvas.
func DefaultForageOptions() Options {
	return Options{
		Seed:           1,
		Width:          800,
		Height:         800,
		Population:     1000,
		SensorDistance: 5,
	}
}

// FlockFromConfig builds everything NewFlockSimulation needs from a loaded config.
func FlockFromConfig(cfg *config.Config, seed int64) (Options, systems.Rules, *FlockParams) {
	opts := Options{
		Seed:              seed,
		Width:             float64(cfg.Screen.Width),
		Height:            float64(cfg.Screen.Height),
		Population:        cfg.Flock.Population,
		InitialSpeed:      cfg.Flock.InitialSpeed,
		MaxSpeed:          cfg.Flock.MaxSpeed,
		UseGrid:           cfg.Spatial.UseGrid,
		CellSize:          cfg.Spatial.CellSize,
		Workers:           cfg.Parallel.Workers,
		ParallelThreshold: cfg.Parallel.Threshold,
	}
	rules := systems.Rules{
		PerceptionRadius: cfg.Flock.PerceptionRadius,
		SeparationRadius: cfg.Flock.SeparationRadius,
		MaxForce:         cfg.Flock.MaxForce,
		DesiredSpeed:     cfg.Flock.MaxSpeed,
	}
	params := &FlockParams{
		EnableAlignment:  cfg.Flock.EnableAlignment,
		EnableCohesion:   cfg.Flock.EnableCohesion,
		EnableSeparation: cfg.Flock.EnableSeparation,
	}
	return opts, rules, params
}

// ForageFromConfig builds everything NewForagingSimulation needs from a loaded config.
func ForageFromConfig(cfg *config.Config, seed int64) (Options, systems.TrailParams, *ForageParams) {
	opts := Options{
		Seed:           seed,
		Width:          float64(cfg.Screen.Width),
		Height:         float64(cfg.Screen.Height),
		Population:     cfg.Forage.Population,
		SensorDistance: cfg.Forage.SensorDistance,
	}
	trail := systems.TrailParams{
		Decay:        cfg.Trail.Decay,
		DepositValue: cfg.Trail.DepositValue,
		Diffuse:      cfg.Trail.Diffuse,
	}
	params := &ForageParams{
		MoveSpeed:  cfg.Forage.MoveSpeed,
		TurnSpeed:  cfg.Forage.TurnSpeed,
		ShowAgents: cfg.Forage.ShowAgents,
	}
	return opts, trail, params
}
