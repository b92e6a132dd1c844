package telemetry

import (
	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/vmath"
)

// Collector accumulates per-tick values within windows and produces WindowStats.
type Collector struct {
	windowTicks     int
	windowStartTick int

	// Accumulators for the current window
	neighborSum  float64
	neighborTick int
	reorients    int

	speeds []float64
	vels   []vmath.Vec2
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordNeighbors records one tick's mean neighbourhood size.
func (c *Collector) RecordNeighbors(mean float64) {
	c.neighborSum += mean
	c.neighborTick++
}

// RecordReorients records edge re-headings from one tick.
func (c *Collector) RecordReorients(n int) {
	c.reorients += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// FlushFlock produces flock stats from the boids at window end and resets
// the window.
func (c *Collector) FlushFlock(currentTick int, boids []systems.BoidState) WindowStats {
	c.vels = c.vels[:0]
	for _, b := range boids {
		c.vels = append(c.vels, b.Vel)
	}

	stats := c.base(SketchBoids, currentTick, c.vels)
	stats.Polarization = Polarization(c.vels)
	if c.neighborTick > 0 {
		stats.NeighborsMean = c.neighborSum / float64(c.neighborTick)
	}

	c.reset(currentTick)
	return stats
}

// FlushForage produces trail stats from the agents and field at window end
// and resets the window.
func (c *Collector) FlushForage(currentTick int, positions, vels []vmath.Vec2, field systems.TrailSampler) WindowStats {
	stats := c.base(SketchPhysarum, currentTick, vels)
	stats.TrailMass = TrailMass(field)
	stats.TrailCoverage = TrailCoverage(field)
	stats.TrailAtAgents = MeanAt(field, positions)
	stats.Reorients = c.reorients

	c.reset(currentTick)
	return stats
}

func (c *Collector) base(sketch string, currentTick int, vels []vmath.Vec2) WindowStats {
	c.speeds = c.speeds[:0]
	for _, v := range vels {
		c.speeds = append(c.speeds, v.Len())
	}
	mean, p10, p50, p90 := Distribution(c.speeds)

	return WindowStats{
		Sketch:          sketch,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Population:      len(vels),
		SpeedMean:       mean,
		SpeedP10:        p10,
		SpeedP50:        p50,
		SpeedP90:        p90,
	}
}

func (c *Collector) reset(currentTick int) {
	c.windowStartTick = currentTick
	c.neighborSum = 0
	c.neighborTick = 0
	c.reorients = 0
}
