package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarmsketch/camera"
	"github.com/pthm-cable/swarmsketch/systems"
)

// AgentRenderer draws foraging agents as small dots.
type AgentRenderer struct {
	Color  rl.Color
	Radius float32
}

// NewAgentRenderer creates an agent renderer.
func NewAgentRenderer() *AgentRenderer {
	return &AgentRenderer{Color: rl.White, Radius: 1}
}

// Draw renders all agents through cam.
func (r *AgentRenderer) Draw(agents []systems.AgentState, cam *camera.Camera) {
	radius := r.Radius * float32(cam.Zoom)
	for i := range agents {
		p := agents[i].Pos
		if !cam.IsVisible(p, float64(r.Radius)) {
			continue
		}
		rl.DrawCircleV(toRL(cam.WorldToScreen(p)), radius, r.Color)
	}
}
