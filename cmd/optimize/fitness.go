package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarmsketch/config"
	"github.com/pthm-cable/swarmsketch/game"
	"github.com/pthm-cable/swarmsketch/telemetry"
)

// FitnessEvaluator runs headless physarum simulations and scores the trail
// network they grow.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated mean quality over all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Seeds are independent simulations; run them in parallel
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			qualities[idx] = computeQuality(fe.runSimulation(cfg, s))
		}(i, seed)
	}
	wg.Wait()

	quality := stat.Mean(qualities, nil)

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return -quality
}

// runSimulation executes a single headless run and returns every stats
// window it produced. cfg is only read.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.WindowStats {
	opts, trail, params := game.ForageFromConfig(cfg, seed)
	sim := game.NewForagingSimulation(opts, trail, params)

	var windows []telemetry.WindowStats
	rec := game.NewRecorder(cfg.Telemetry.StatsWindow, cfg.Telemetry.PerfWindow, nil, false)
	rec.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for sim.Tick() < fe.maxTicks {
		rec.StepForage(sim)
	}
	return windows
}

// copyConfig returns a copy of the base config. Config holds only value
// fields, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Quality component weights.
const (
	qualityWeightFollow    = 0.5
	qualityWeightCoverage  = 0.3
	qualityWeightStability = 0.2

	qualityWarmupWindows = 2 // skip first N windows while the network forms

	targetCoverage = 0.25 // fraction of the canvas a good network occupies
	coverageWidth  = 0.15
)

// computeQuality scores a run in [0, 1]. It rewards agents that sit on
// trail, a network that covers a moderate share of the canvas, and a trail
// mass that has settled.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var followSum, coverageSum float64
	masses := make([]float64, 0, len(valid))
	for _, w := range valid {
		followSum += w.TrailAtAgents
		d := (w.TrailCoverage - targetCoverage) / coverageWidth
		coverageSum += math.Exp(-d * d)
		masses = append(masses, w.TrailMass)
	}
	n := float64(len(valid))

	// An empty field is trivially stable and earns nothing
	stabilityScore := 0.0
	if len(masses) >= 2 && stat.Mean(masses, nil) > 0 {
		c := cv(masses)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightFollow*followSum/n +
		qualityWeightCoverage*coverageSum/n +
		qualityWeightStability*stabilityScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
