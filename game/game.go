package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/swarmsketch/camera"
	"github.com/pthm-cable/swarmsketch/config"
	"github.com/pthm-cable/swarmsketch/renderer"
	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/telemetry"
	"github.com/pthm-cable/swarmsketch/ui"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// Sketch names accepted by NewGame.
const (
	SketchBoids    = telemetry.SketchBoids
	SketchPhysarum = telemetry.SketchPhysarum
)

const maxStepsPerUpdate = 10

// RunOptions configures the interactive shell around one simulation.
type RunOptions struct {
	Sketch         string
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// Game drives one sketch: it steps the simulation through the telemetry
// recorder and, unless headless, draws it with raylib.
type Game struct {
	sketch string
	cfg    *config.Config

	flock        *FlockSimulation
	flockParams  *FlockParams
	forage       *ForagingSimulation
	forageParams *ForageParams

	recorder  *Recorder
	output    *telemetry.OutputManager
	lastStats *telemetry.WindowStats

	paused         bool
	showPerf       bool
	stepsPerUpdate int

	// Rendering, nil when headless
	camera        *camera.Camera
	boidRenderer  *renderer.BoidRenderer
	agentRenderer *renderer.AgentRenderer
	trailRenderer *renderer.TrailRenderer
	uiControls    *ui.ControlsPanel
	uiOverlays    *ui.OverlayRegistry
	uiHUD         *ui.HUD

	// Per-frame snapshot buffers
	boidBuf  []systems.BoidState
	agentBuf []systems.AgentState
	posBuf   []vmath.Vec2
}

// NewGame builds the selected sketch from cfg. The raylib window must
// already exist unless opts.Headless is set.
func NewGame(cfg *config.Config, opts RunOptions) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		sketch:         opts.Sketch,
		cfg:            cfg,
		output:         output,
		recorder:       NewRecorder(cfg.Telemetry.StatsWindow, cfg.Telemetry.PerfWindow, output, opts.LogStats),
		stepsPerUpdate: steps,
	}
	g.recorder.SetStatsCallback(func(s telemetry.WindowStats) {
		g.lastStats = &s
	})

	switch opts.Sketch {
	case SketchBoids:
		simOpts, rules, params := FlockFromConfig(cfg, opts.Seed)
		g.flockParams = params
		g.flock = NewFlockSimulation(simOpts, rules, params)
	case SketchPhysarum:
		simOpts, trail, params := ForageFromConfig(cfg, opts.Seed)
		g.forageParams = params
		g.forage = NewForagingSimulation(simOpts, trail, params)
	default:
		output.Close()
		return nil, fmt.Errorf("unknown sketch %q (want %s or %s)", opts.Sketch, SketchBoids, SketchPhysarum)
	}

	if !opts.Headless {
		g.initRendering()
	}

	slog.Info("sketch created",
		"sketch", g.sketch,
		"seed", opts.Seed,
		"population", g.Population(),
		"headless", opts.Headless,
		"output_dir", output.Dir(),
	)
	return g, nil
}

func (g *Game) initRendering() {
	screenW, screenH := float64(g.cfg.Screen.Width), float64(g.cfg.Screen.Height)
	worldW, worldH := g.bounds()
	g.camera = camera.New(screenW, screenH, worldW, worldH)

	g.uiHUD = ui.NewHUD()
	g.uiControls = ui.NewControlsPanel("Settings", 10, 10, 220)

	switch g.sketch {
	case SketchBoids:
		g.boidRenderer = renderer.NewBoidRenderer()
		g.uiOverlays = ui.NewOverlayRegistry(ui.CategoryBoids)
		g.uiControls.
			AddCheckBox("Alignment", &g.flockParams.EnableAlignment).
			AddCheckBox("Cohesion", &g.flockParams.EnableCohesion).
			AddCheckBox("Separation", &g.flockParams.EnableSeparation)
	case SketchPhysarum:
		g.agentRenderer = renderer.NewAgentRenderer()
		g.trailRenderer = renderer.NewTrailRenderer(int32(g.cfg.Screen.Width), int32(g.cfg.Screen.Height))
		g.uiOverlays = ui.NewOverlayRegistry(ui.CategoryPhysarum)
		g.uiControls.
			AddSlider("Move Speed", &g.forageParams.MoveSpeed, config.MinMoveSpeed, config.MaxMoveSpeed).
			AddSlider("Turn Speed", &g.forageParams.TurnSpeed, config.MinTurnSpeed, config.MaxTurnSpeed).
			AddCheckBox("Show Agents", &g.forageParams.ShowAgents)
	}
}

// Update handles input and advances the simulation for one frame.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless advances the simulation without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

func (g *Game) step() {
	if g.flock != nil {
		g.recorder.StepFlock(g.flock)
	} else {
		g.recorder.StepForage(g.forage)
	}
}

func (g *Game) bounds() (w, h float64) {
	if g.flock != nil {
		return g.flock.Bounds()
	}
	return g.forage.Bounds()
}

// Tick returns the number of completed simulation steps.
func (g *Game) Tick() int {
	if g.flock != nil {
		return g.flock.Tick()
	}
	return g.forage.Tick()
}

// Population returns the number of simulated individuals.
func (g *Game) Population() int {
	if g.flock != nil {
		return g.flock.Len()
	}
	return g.forage.Len()
}

// LastStats returns the most recently flushed stats window, or nil.
func (g *Game) LastStats() *telemetry.WindowStats {
	return g.lastStats
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// Unload stops worker goroutines, closes output files and frees GPU
// resources.
func (g *Game) Unload() {
	if g.flock != nil {
		g.flock.Close()
	}
	if g.trailRenderer != nil {
		g.trailRenderer.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
