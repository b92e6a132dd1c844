package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/config"
	"github.com/pthm-cable/swarmsketch/game"
)

func main() {
	// CLI flags
	sketch := flag.String("sketch", game.SketchBoids, "Sketch to run: boids or physarum")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.RunOptions{
		Sketch:         *sketch,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		runHeadless(cfg, opts, *maxTicks)
		return
	}
	runWindowed(cfg, opts, *maxTicks)
}

// runHeadless steps the simulation without raylib.
func runHeadless(cfg *config.Config, opts game.RunOptions, maxTicks int) {
	if maxTicks <= 0 {
		slog.Warn("headless run without -max-ticks will not stop on its own")
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create sketch", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"sketch", opts.Sketch,
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

func runWindowed(cfg *config.Config, opts game.RunOptions, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swarm Sketch: "+opts.Sketch)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create sketch", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}
