package game

import (
	"log/slog"

	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/telemetry"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// Recorder times simulation steps and turns them into stats windows that
// are logged and written to CSV.
type Recorder struct {
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Reused sampling buffers
	boids     []systems.BoidState
	agents    []systems.AgentState
	positions []vmath.Vec2
	vels      []vmath.Vec2
}

// NewRecorder creates a recorder flushing every statsWindow ticks and
// averaging perf over perfWindow ticks. output may be nil.
func NewRecorder(statsWindow, perfWindow int, output *telemetry.OutputManager, logStats bool) *Recorder {
	return &Recorder{
		collector:     telemetry.NewCollector(statsWindow),
		perfCollector: telemetry.NewPerfCollector(perfWindow),
		outputManager: output,
		logStats:      logStats,
	}
}

// SetStatsCallback sets a function called with every flushed window.
func (r *Recorder) SetStatsCallback(fn func(telemetry.WindowStats)) {
	r.statsCallback = fn
}

// Perf returns the perf collector, for frame timing in graphics mode.
func (r *Recorder) Perf() *telemetry.PerfCollector {
	return r.perfCollector
}

// StepFlock advances s by one step and records it.
func (r *Recorder) StepFlock(s *FlockSimulation) {
	s.perf = r.perfCollector
	r.perfCollector.StartTick()
	s.Step()

	r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	r.collector.RecordNeighbors(s.MeanNeighbors())
	if r.collector.ShouldFlush(s.Tick()) {
		r.boids = s.Snapshot(r.boids[:0])
		r.flush(r.collector.FlushFlock(s.Tick(), r.boids))
	}
	r.perfCollector.EndTick()
}

// StepForage advances s by one step and records it.
func (r *Recorder) StepForage(s *ForagingSimulation) {
	s.perf = r.perfCollector
	r.perfCollector.StartTick()
	s.Step()

	r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	r.collector.RecordReorients(s.Reorients())
	if r.collector.ShouldFlush(s.Tick()) {
		r.agents = s.Agents(r.agents[:0])
		r.positions = r.positions[:0]
		r.vels = r.vels[:0]
		for _, a := range r.agents {
			r.positions = append(r.positions, a.Pos)
			r.vels = append(r.vels, a.Vel)
		}
		r.flush(r.collector.FlushForage(s.Tick(), r.positions, r.vels, s.Field()))
	}
	r.perfCollector.EndTick()
}

// flush reports a finished window.
func (r *Recorder) flush(stats telemetry.WindowStats) {
	perfStats := r.perfCollector.Stats()

	if r.statsCallback != nil {
		r.statsCallback(stats)
	}

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if r.outputManager != nil {
		if err := r.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := r.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
