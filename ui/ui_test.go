package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayRegistryCategory(t *testing.T) {
	boids := NewOverlayRegistry(CategoryBoids)
	if len(boids.All()) != 3 {
		t.Fatalf("expected 3 boids overlays, got %d", len(boids.All()))
	}
	for _, d := range boids.All() {
		if d.Category != CategoryBoids {
			t.Errorf("overlay %s registered under %s", d.ID, d.Category)
		}
	}

	physarum := NewOverlayRegistry(CategoryPhysarum)
	if len(physarum.All()) != 1 || physarum.All()[0].ID != OverlaySensors {
		t.Errorf("expected only the sensors overlay, got %v", physarum.All())
	}
}

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry(CategoryBoids)

	if reg.IsEnabled(OverlayVelocity) {
		t.Fatal("overlays start disabled")
	}
	if !reg.Toggle(OverlayVelocity) || !reg.IsEnabled(OverlayVelocity) {
		t.Error("toggle should enable")
	}
	if reg.Toggle(OverlayVelocity) {
		t.Error("second toggle should disable")
	}
	if reg.Toggle(OverlaySensors) {
		t.Error("unregistered overlay cannot be enabled")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry(CategoryBoids)
	reg.Register(OverlayDescriptor{ID: "a", Category: CategoryBoids})
	reg.Register(OverlayDescriptor{ID: "b", Category: CategoryBoids, Exclusive: []OverlayID{"a"}})

	reg.SetEnabled("a", true)
	reg.SetEnabled("b", true)

	if reg.IsEnabled("a") {
		t.Error("enabling b should disable a")
	}
	if !reg.IsEnabled("b") {
		t.Error("b should be enabled")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry(CategoryBoids)

	id, on, ok := reg.HandleKeyPress(rl.KeyG)
	if !ok || id != OverlaySpatialGrid || !on {
		t.Errorf("G should enable the grid, got %s %v %v", id, on, ok)
	}

	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle")
	}

	reg.Toggle(OverlayPerception)
	got := reg.EnabledOverlays()
	if len(got) != 2 || got[0] != OverlayPerception || got[1] != OverlaySpatialGrid {
		t.Errorf("expected registration order, got %v", got)
	}
}

func TestOverlayLegend(t *testing.T) {
	reg := NewOverlayRegistry(CategoryPhysarum)
	if got := reg.Legend(); got != "S: Sensors" {
		t.Errorf("unexpected legend %q", got)
	}
}

func TestControlsPanelHeight(t *testing.T) {
	var flag bool
	var value float64
	panel := NewControlsPanel("Settings", 0, 0, 200)
	theme := DefaultTheme()

	empty := panel.Height()
	if empty != theme.Padding*2+theme.LineHeight {
		t.Errorf("unexpected empty height %d", empty)
	}

	panel.AddCheckBox("a", &flag).AddSlider("b", &value, 0, 1)
	want := empty + (theme.LineHeight + 8) + (theme.LineHeight + 26)
	if got := panel.Height(); got != want {
		t.Errorf("expected height %d, got %d", want, got)
	}
}

func TestControlsPanelToggle(t *testing.T) {
	panel := NewControlsPanel("Settings", 0, 0, 200)
	if !panel.IsVisible() {
		t.Fatal("panel starts visible")
	}
	if panel.Toggle() || panel.IsVisible() {
		t.Error("toggle should hide the panel")
	}
}
