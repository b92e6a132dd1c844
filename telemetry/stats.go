package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// Sketch names used in WindowStats.
const (
	SketchBoids    = "boids"
	SketchPhysarum = "physarum"
)

// CoverageThreshold is the trail value above which a cell counts as covered.
const CoverageThreshold = 0.05

// WindowStats holds aggregated statistics for a window of ticks. Flock and
// trail columns are zero for the sketch that does not produce them.
type WindowStats struct {
	Sketch          string `csv:"sketch"`
	WindowStartTick int    `csv:"-"`
	WindowEndTick   int    `csv:"window_end"`
	Population      int    `csv:"population"`

	// Agent speed (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Flock
	Polarization  float64 `csv:"polarization"`   // |mean unit velocity|, 1 = all aligned
	NeighborsMean float64 `csv:"neighbors_mean"` // averaged over every tick in the window

	// Trail
	TrailMass     float64 `csv:"trail_mass"`
	TrailCoverage float64 `csv:"trail_coverage"`  // fraction of cells above CoverageThreshold
	TrailAtAgents float64 `csv:"trail_at_agents"` // mean field value under the agents
	Reorients     int     `csv:"reorients"`       // random re-headings at the canvas edge
}

// Distribution returns the mean and the 10th, 50th and 90th percentiles of
// values. All zero for an empty slice.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// Polarization is the length of the mean unit velocity: 1 when every agent
// moves the same way, near 0 when headings cancel out. Stationary agents
// contribute nothing.
func Polarization(vels []vmath.Vec2) float64 {
	if len(vels) == 0 {
		return 0
	}
	var sum vmath.Vec2
	for _, v := range vels {
		sum = sum.Add(v.Normalize())
	}
	return sum.Len() / float64(len(vels))
}

// TrailMass returns the summed intensity of the field.
func TrailMass(field systems.TrailSampler) float64 {
	return floats.Sum(field.Data())
}

// TrailCoverage returns the fraction of cells above CoverageThreshold.
func TrailCoverage(field systems.TrailSampler) float64 {
	data := field.Data()
	if len(data) == 0 {
		return 0
	}
	covered := floats.Count(func(v float64) bool { return v > CoverageThreshold }, data)
	return float64(covered) / float64(len(data))
}

// MeanAt returns the mean field value at the given canvas positions.
// Positions outside the field read as zero.
func MeanAt(field systems.TrailSampler, positions []vmath.Vec2) float64 {
	if len(positions) == 0 {
		return 0
	}
	values := make([]float64, len(positions))
	for i, p := range positions {
		if p.X < 0 || p.Y < 0 {
			continue
		}
		values[i] = field.At(int(p.X), int(p.Y))
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("sketch", s.Sketch),
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	}
	switch s.Sketch {
	case SketchBoids:
		attrs = append(attrs,
			slog.Float64("polarization", s.Polarization),
			slog.Float64("neighbors_mean", s.NeighborsMean),
		)
	case SketchPhysarum:
		attrs = append(attrs,
			slog.Float64("trail_mass", s.TrailMass),
			slog.Float64("trail_coverage", s.TrailCoverage),
			slog.Float64("trail_at_agents", s.TrailAtAgents),
			slog.Int("reorients", s.Reorients),
		)
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
