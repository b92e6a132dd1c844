package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/telemetry"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title      string
	Population int
	Tick       int
	Speed      int // steps per frame
	FPS        int32
	Paused     bool
	Stats      *telemetry.WindowStats // last flushed window, nil before the first
}

// HUD renders the heads-up display in the bottom-left corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData, screenHeight int32) {
	r := h.renderer
	x := int32(10)
	y := screenHeight - 10 - 4*r.Theme.LineHeight
	if data.Stats != nil {
		y -= 3 * r.Theme.LineHeight
	}

	rl.DrawText(data.Title, x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	status := "running"
	if data.Paused {
		status = "PAUSED"
	}
	y = r.DrawLabelValue(x, y, "Agents", fmt.Sprintf("%d", data.Population))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d (%s, x%d)", data.Tick, status, data.Speed))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))

	if s := data.Stats; s != nil {
		switch s.Sketch {
		case telemetry.SketchBoids:
			y = r.DrawBar(x, y, "Polarization", s.Polarization, 260)
			y = r.DrawLabelValue(x, y, "Neighbors", fmt.Sprintf("%.1f", s.NeighborsMean))
			r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.2f", s.SpeedMean))
		case telemetry.SketchPhysarum:
			y = r.DrawBar(x, y, "Coverage", s.TrailCoverage, 260)
			y = r.DrawBar(x, y, "At agents", s.TrailAtAgents, 260)
			r.DrawLabelValue(x, y, "Reorients", fmt.Sprintf("%d", s.Reorients))
		}
	}
}

// DrawPerf renders average phase timings in a panel at the top right.
// Phases that never ran are skipped.
func (h *HUD) DrawPerf(stats telemetry.PerfStats, screenWidth int32) {
	r := h.renderer
	width := int32(200)
	x := screenWidth - width - 10
	y := int32(10)

	var rows []string
	for _, name := range telemetry.PhaseNames() {
		if _, ok := stats.PhaseAvg[name]; ok {
			rows = append(rows, name)
		}
	}
	r.DrawPanel(x, y, width, int32(len(rows)+2)*r.Theme.LineHeight+r.Theme.Padding*2)

	x += r.Theme.Padding
	y = r.DrawSectionHeader(x, y+r.Theme.Padding, "Performance")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%dus", stats.AvgTickDuration.Microseconds()))
	for _, name := range rows {
		y = r.DrawLabelValue(x, y, name,
			fmt.Sprintf("%dus %4.1f%%", stats.PhaseAvg[name].Microseconds(), stats.PhasePct[name]))
	}
}

// DrawControls renders the key legend at the bottom right.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	w := rl.MeasureText(controls, 14)
	rl.DrawText(controls, screenWidth-w-10, screenHeight-25, 14, rl.Gray)
}
