package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel displays.
type ControlsState struct {
	ShowAll bool
	Fast    bool
}

// ControlsAction reports which buttons were pressed this frame.
type ControlsAction struct {
	ToggleShowAll bool
	ToggleSpeed   bool
	ClearBrains   bool
}

// Any reports whether any button was pressed.
func (a ControlsAction) Any() bool {
	return a.ToggleShowAll || a.ToggleSpeed || a.ClearBrains
}

// ControlsPanel renders the raygui buttons under the HUD.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

const buttonHeight = 30

// Height returns the panel height in pixels.
func (c *ControlsPanel) Height() int32 {
	return buttonHeight*3 + c.renderer.Theme.Padding*4 + c.renderer.Theme.LineHeight + 2
}

// Draw renders the buttons and returns what was clicked.
func (c *ControlsPanel) Draw(state ControlsState) ControlsAction {
	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	y := r.DrawSectionHeader(c.x+pad, c.y+pad, "Controls")
	button := func(text string) bool {
		rect := rl.Rectangle{
			X:      float32(c.x + pad),
			Y:      float32(y),
			Width:  float32(c.width - pad*2),
			Height: buttonHeight,
		}
		y += buttonHeight + pad
		return gui.Button(rect, text)
	}

	showLabel := "Show all snakes"
	if state.ShowAll {
		showLabel = "Show leader only"
	}
	speedLabel := "Fast [Space]"
	if state.Fast {
		speedLabel = "Slow [Space]"
	}

	var action ControlsAction
	action.ToggleShowAll = button(showLabel)
	action.ToggleSpeed = button(speedLabel)
	action.ClearBrains = button("Delete saved snake data")
	return action
}

// DrawLegend renders the key legend at the bottom of the sidebar.
func (c *ControlsPanel) DrawLegend(screenHeight int32, legend string) {
	rl.DrawText(legend, c.x, screenHeight-25, 12, rl.Gray)
}
