package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabel draws a text label.
func (r *Renderer) DrawLabel(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// DrawValue draws a value text.
func (r *Renderer) DrawValue(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for [0, 1] values.
func (r *Renderer) DrawBar(x, y int32, label string, value float64, width int32) int32 {
	value = min(max(value, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fillWidth := int32(float64(barWidth) * value)
	rl.DrawRectangle(barX, y+2, fillWidth, r.Theme.BarHeight, r.Theme.BarFill)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}
