package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/swarmsketch/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 3000, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	agents := flag.Int("agents", 0, "Physarum agent count (0 = use config)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	if *agents > 0 {
		baseCfg.Forage.Population = *agents
	}

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// CMA-ES works in normalized space; log the clamped values actually simulated
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness)}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

			fmt.Printf("Eval %d/%d: quality=%.3f (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, evaluator.LastQuality(), -bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best quality: %.3f\n", -bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.6f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
