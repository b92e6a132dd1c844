package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/swarmsketch/config"
	"github.com/pthm-cable/swarmsketch/systems"
	"github.com/pthm-cable/swarmsketch/vmath"
)

func TestDistribution(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, p10, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{5}, 5, 5, 5, 5},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 1, 5, 9},
		{"constant", []float64{2, 2, 2, 2}, 2, 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p10, p50, p90 := Distribution(tt.values)
			got := []float64{mean, p10, p50, p90}
			want := []float64{tt.mean, tt.p10, tt.p50, tt.p90}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 1e-9 {
					t.Errorf("Distribution(%v) = %v, want %v", tt.values, got, want)
					break
				}
			}
		})
	}
}

func TestDistributionDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Distribution(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestPolarization(t *testing.T) {
	tests := []struct {
		name string
		vels []vmath.Vec2
		want float64
	}{
		{"empty", nil, 0},
		{"aligned", []vmath.Vec2{vmath.V(2, 0), vmath.V(1, 0), vmath.V(5, 0)}, 1},
		{"opposed", []vmath.Vec2{vmath.V(2, 0), vmath.V(-2, 0)}, 0},
		{"right angle", []vmath.Vec2{vmath.V(0, 2), vmath.V(2, 0)}, math.Sqrt2 / 2},
		{"stationary ignored", []vmath.Vec2{vmath.V(0, 0), vmath.V(0, 3)}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Polarization(tt.vels); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Polarization = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrailMetrics(t *testing.T) {
	f := systems.NewTrailField(10, 10, systems.DefaultTrailParams())
	f.Deposit(1, 1)
	f.Deposit(2, 2)
	f.Deposit(3, 3)
	f.Deposit(4, 4)

	if got := TrailMass(f); got != 4 {
		t.Errorf("TrailMass = %v, want 4", got)
	}
	if got := TrailCoverage(f); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("TrailCoverage = %v, want 0.04", got)
	}

	positions := []vmath.Vec2{vmath.V(1.5, 1.2), vmath.V(5, 5), vmath.V(-1, 3), vmath.V(50, 50)}
	if got := MeanAt(f, positions); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("MeanAt = %v, want 0.25", got)
	}
	if got := MeanAt(f, nil); got != 0 {
		t.Errorf("MeanAt(nil) = %v, want 0", got)
	}

	// Decayed cells drop below the coverage threshold eventually
	for i := 0; i < 40; i++ {
		f.DecayAndClear()
	}
	if got := TrailCoverage(f); got != 0 {
		t.Errorf("TrailCoverage after decay = %v, want 0", got)
	}
}

func TestCollectorFlock(t *testing.T) {
	c := NewCollector(3)

	for tick := 1; tick <= 3; tick++ {
		c.RecordNeighbors(float64(tick))
		if tick < 3 && c.ShouldFlush(tick) {
			t.Fatalf("ShouldFlush(%d) = true before the window is full", tick)
		}
	}
	if !c.ShouldFlush(3) {
		t.Fatal("ShouldFlush(3) = false, want true")
	}

	boids := []systems.BoidState{
		{Vel: vmath.V(2, 0)},
		{Vel: vmath.V(0, 2)},
	}
	stats := c.FlushFlock(3, boids)

	if stats.Sketch != SketchBoids {
		t.Errorf("Sketch = %q", stats.Sketch)
	}
	if stats.Population != 2 {
		t.Errorf("Population = %d, want 2", stats.Population)
	}
	if stats.SpeedMean != 2 {
		t.Errorf("SpeedMean = %v, want 2", stats.SpeedMean)
	}
	if stats.NeighborsMean != 2 {
		t.Errorf("NeighborsMean = %v, want 2", stats.NeighborsMean)
	}
	if math.Abs(stats.Polarization-math.Sqrt2/2) > 1e-12 {
		t.Errorf("Polarization = %v", stats.Polarization)
	}

	// The next window starts where this one ended
	if c.ShouldFlush(5) {
		t.Error("ShouldFlush(5) = true right after a flush at 3")
	}
	next := c.FlushFlock(6, boids)
	if next.WindowStartTick != 3 || next.NeighborsMean != 0 {
		t.Errorf("window not reset: start=%d neighbors=%v", next.WindowStartTick, next.NeighborsMean)
	}
}

func TestCollectorForage(t *testing.T) {
	c := NewCollector(10)
	f := systems.NewTrailField(4, 4, systems.DefaultTrailParams())
	f.Deposit(0, 0)

	c.RecordReorients(2)
	c.RecordReorients(3)

	positions := []vmath.Vec2{vmath.V(0.5, 0.5), vmath.V(3, 3)}
	vels := []vmath.Vec2{vmath.V(1, 0), vmath.V(0, 1)}
	stats := c.FlushForage(10, positions, vels, f)

	if stats.Sketch != SketchPhysarum {
		t.Errorf("Sketch = %q", stats.Sketch)
	}
	if stats.Reorients != 5 {
		t.Errorf("Reorients = %d, want 5", stats.Reorients)
	}
	if stats.TrailMass != 1 {
		t.Errorf("TrailMass = %v, want 1", stats.TrailMass)
	}
	if stats.TrailAtAgents != 0.5 {
		t.Errorf("TrailAtAgents = %v, want 0.5", stats.TrailAtAgents)
	}
	if stats.SpeedP50 != 1 {
		t.Errorf("SpeedP50 = %v, want 1", stats.SpeedP50)
	}

	if again := c.FlushForage(20, positions, vels, f); again.Reorients != 0 {
		t.Errorf("Reorients after flush = %d, want 0", again.Reorients)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Every method tolerates a nil manager
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should have empty dir")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for tick := 100; tick <= 300; tick += 100 {
		if err := om.WriteStats(WindowStats{Sketch: SketchBoids, WindowEndTick: tick, Population: 100}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 300); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("stats.csv has %d lines, want header + 3:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "sketch,window_end,population,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "boids,300,100,") {
		t.Errorf("unexpected last row %q", lines[3])
	}

	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Error(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}
