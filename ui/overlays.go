package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayPerception  OverlayID = "perception"
	OverlaySpatialGrid OverlayID = "spatial_grid"
	OverlayVelocity    OverlayID = "velocity"
	OverlaySensors     OverlayID = "sensors"
)

// Overlay categories. A sketch only registers the overlays it can draw.
const (
	CategoryBoids    = "boids"
	CategoryPhysarum = "physarum"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "G")
	Category    string      // Sketch the overlay belongs to
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry holding the default overlays of
// one category.
func NewOverlayRegistry(category string) *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	for _, desc := range defaultOverlays() {
		if desc.Category == category {
			reg.Register(desc)
		}
	}
	return reg
}

func defaultOverlays() []OverlayDescriptor {
	return []OverlayDescriptor{
		{
			ID:          OverlayPerception,
			Name:        "Perception",
			Description: "Perception and separation radii of one boid and its neighbors",
			Key:         rl.KeyP,
			KeyLabel:    "P",
			Category:    CategoryBoids,
		},
		{
			ID:          OverlaySpatialGrid,
			Name:        "Spatial Grid",
			Description: "Neighbor query grid cells",
			Key:         rl.KeyG,
			KeyLabel:    "G",
			Category:    CategoryBoids,
		},
		{
			ID:          OverlayVelocity,
			Name:        "Velocity",
			Description: "Velocity vector of every boid",
			Key:         rl.KeyV,
			KeyLabel:    "V",
			Category:    CategoryBoids,
		},
		{
			ID:          OverlaySensors,
			Name:        "Sensors",
			Description: "Sensor reach along each agent heading",
			Key:         rl.KeyS,
			KeyLabel:    "S",
			Category:    CategoryPhysarum,
		},
	}
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, dup := r.byID[desc.ID]; dup {
		return
	}
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the currently enabled overlay IDs in
// registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}

// Legend returns "key: name" hints for every overlay, for the HUD.
func (r *OverlayRegistry) Legend() string {
	var parts []string
	for _, desc := range r.descriptors {
		if desc.KeyLabel != "" {
			parts = append(parts, desc.KeyLabel+": "+desc.Name)
		}
	}
	return strings.Join(parts, " | ")
}
