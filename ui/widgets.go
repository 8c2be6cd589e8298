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
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for [0, 1] values. Fractions below a quarter
// use the low fill color.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = clamp01(value)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 40

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFill
	if value < 0.25 {
		fill = r.Theme.BarFillLow
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, fill)

	rl.DrawText(fmt.Sprintf("%.0f%%", value*100), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawSpacer returns y advanced by amount.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
