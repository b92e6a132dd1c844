package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/ui"
)

// Draw renders the current frame.
func (g *Game) Draw() {
	g.recorder.Perf().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	switch {
	case g.flock != nil:
		g.boidBuf = g.flock.Snapshot(g.boidBuf[:0])
		g.drawActiveOverlays()
		g.boidRenderer.Draw(g.boidBuf, g.camera)
	case g.forage != nil:
		g.trailRenderer.Update(g.forage.Field())
		g.trailRenderer.Draw(g.camera)
		g.agentBuf = g.forage.Agents(g.agentBuf[:0])
		if g.forageParams.ShowAgents {
			g.agentRenderer.Draw(g.agentBuf, g.camera)
		}
		g.drawActiveOverlays()
	}

	g.uiControls.Draw()
	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	g.uiHUD.Draw(ui.HUDData{
		Title:      g.sketch,
		Population: g.Population(),
		Tick:       g.Tick(),
		Speed:      g.stepsPerUpdate,
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
		Stats:      g.lastStats,
	}, screenH)

	if g.showPerf {
		g.uiHUD.DrawPerf(g.recorder.Perf().Stats(), screenW)
	}

	legend := "SPACE: Pause | < >: Speed | Arrows/Wheel: Camera | H: Panel | T: Timings"
	if extra := g.uiOverlays.Legend(); extra != "" {
		legend = fmt.Sprintf("%s | %s", legend, extra)
	}
	g.uiHUD.DrawControls(screenW, screenH, legend)
}
