package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/swarmsketch/config"
	"github.com/pthm-cable/swarmsketch/telemetry"
)

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		assert.InDelta(t, raw[i], back[i], 1e-12, pv.Specs[i].Name)
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	v := []float64{-5, 100, 0, 2}

	got := pv.Clamp(v)

	assert.Equal(t, config.MinMoveSpeed, got[0])
	assert.Equal(t, config.MaxTurnSpeed, got[1])
	assert.Equal(t, 1.0, got[2])
	assert.Equal(t, 0.99, got[3])
	assert.Equal(t, -5.0, v[0], "input must not be modified")
}

func TestParamVectorApplyExtract(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	require.NoError(t, err)

	want := []float64{2.5, 1.25, 9, 0.8}
	pv.ApplyToConfig(cfg, want)

	assert.Equal(t, want, pv.ExtractFromConfig(cfg))
	assert.Equal(t, 0.8, cfg.Trail.Decay)
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, pv.DefaultVector(), pv.ExtractFromConfig(cfg))
}

func TestComputeQuality(t *testing.T) {
	ideal := telemetry.WindowStats{TrailAtAgents: 1, TrailCoverage: targetCoverage, TrailMass: 100}

	t.Run("warmup only", func(t *testing.T) {
		assert.Zero(t, computeQuality([]telemetry.WindowStats{ideal, ideal}))
	})

	t.Run("ideal", func(t *testing.T) {
		windows := []telemetry.WindowStats{{}, {}, ideal, ideal, ideal}
		assert.InDelta(t, 1.0, computeQuality(windows), 1e-12)
	})

	t.Run("empty field", func(t *testing.T) {
		windows := []telemetry.WindowStats{{}, {}, {}, {}}
		q := computeQuality(windows)
		assert.GreaterOrEqual(t, q, 0.0)
		assert.Less(t, q, 0.1)
	})
}

func TestCV(t *testing.T) {
	assert.Zero(t, cv(nil))
	assert.Zero(t, cv([]float64{0, 0}))
	assert.Zero(t, cv([]float64{3, 3, 3}))
	assert.InDelta(t, 0.5, cv([]float64{1, 3}), 1e-12)
}

func TestEvaluateSmallRun(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Screen.Width = 100
	cfg.Screen.Height = 100
	cfg.Forage.Population = 50
	cfg.Telemetry.StatsWindow = 10

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 60, []int64{1, 2}, cfg)

	fitness := fe.Evaluate(pv.DefaultVector())

	assert.LessOrEqual(t, fitness, 0.0)
	assert.GreaterOrEqual(t, fitness, -1.0)
	assert.InDelta(t, -fitness, fe.LastQuality(), 1e-12)
	assert.Equal(t, 100, cfg.Screen.Width, "base config must not change")
}
