// Package ui draws the sidebar next to the board: the generation HUD, the
// phase timing panel and the raygui controls.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// SidebarWidth is the width of the panel column to the right of the board.
const SidebarWidth = 220

// Theme holds UI styling constants.
type Theme struct {
	Background     rl.Color
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 51, G: 51, B: 51, A: 255},
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 200, B: 100, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
