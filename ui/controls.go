package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type controlKind uint8

const (
	controlCheckBox controlKind = iota
	controlSlider
)

// control binds one widget to a value owned by the caller.
type control struct {
	kind   controlKind
	label  string
	flag   *bool
	value  *float64
	lo, hi float64
}

// ControlsPanel renders a panel of widgets bound to caller-owned values.
// Edits are written through the bound pointers during Draw, so a
// simulation reading the same values picks them up on its next step.
type ControlsPanel struct {
	renderer *Renderer
	title    string
	x, y     int32
	width    int32
	visible  bool
	controls []control
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(title string, x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		title:    title,
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// AddCheckBox binds a checkbox to v.
func (c *ControlsPanel) AddCheckBox(label string, v *bool) *ControlsPanel {
	c.controls = append(c.controls, control{kind: controlCheckBox, label: label, flag: v})
	return c
}

// AddSlider binds a slider over [lo, hi] to v.
func (c *ControlsPanel) AddSlider(label string, v *float64, lo, hi float64) *ControlsPanel {
	c.controls = append(c.controls, control{kind: controlSlider, label: label, value: v, lo: lo, hi: hi})
	return c
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height in pixels.
func (c *ControlsPanel) Height() int32 {
	t := c.renderer.Theme
	h := t.Padding*2 + t.LineHeight
	for _, ctl := range c.controls {
		h += c.rowHeight(ctl)
	}
	return h
}

func (c *ControlsPanel) rowHeight(ctl control) int32 {
	t := c.renderer.Theme
	if ctl.kind == controlSlider {
		return t.LineHeight + 26
	}
	return t.LineHeight + 8
}

// Draw renders the panel and applies any edits.
func (c *ControlsPanel) Draw() {
	if !c.visible {
		return
	}
	r := c.renderer
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	y := r.DrawSectionHeader(c.x+r.Theme.Padding, c.y+r.Theme.Padding, c.title)
	for _, ctl := range c.controls {
		switch ctl.kind {
		case controlCheckBox:
			*ctl.flag = c.checkBox(y, ctl.label, *ctl.flag)
		case controlSlider:
			*ctl.value = c.slider(y, ctl.label, *ctl.value, ctl.lo, ctl.hi)
		}
		y += c.rowHeight(ctl)
	}
}

func (c *ControlsPanel) checkBox(y int32, label string, checked bool) bool {
	pad := float32(c.renderer.Theme.Padding)
	bounds := rl.Rectangle{X: float32(c.x) + pad, Y: float32(y), Width: 16, Height: 16}
	return gui.CheckBox(bounds, label, checked)
}

func (c *ControlsPanel) slider(y int32, label string, value, lo, hi float64) float64 {
	r := c.renderer
	pad := r.Theme.Padding
	r.DrawLabel(c.x+pad, y, label)
	r.DrawValue(c.x+c.width-pad-40, y, fmt.Sprintf("%.2f", value))

	bounds := rl.Rectangle{
		X:      float32(c.x + pad + 24),
		Y:      float32(y + r.Theme.LineHeight),
		Width:  float32(c.width - 2*pad - 48),
		Height: 16,
	}
	v := gui.SliderBar(bounds,
		fmt.Sprintf("%.1f", lo), fmt.Sprintf("%.0f", hi),
		float32(value), float32(lo), float32(hi),
	)
	if v == float32(value) {
		// untouched: keep the float64 as is
		return value
	}
	return float64(v)
}
