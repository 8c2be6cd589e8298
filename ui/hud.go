package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/telemetry"
)

// HUDData holds all the data needed to render the generation panel.
type HUDData struct {
	Generation     int
	Alive          int
	Population     int
	HighScore      int // best score seen in any generation
	GenerationBest int // best score of the last tick
	Tick           int
	MaxTicks       int
	FramesPerTick  int
	FPS            int32
}

// AliveFraction returns Alive/Population, or 0 for an empty population.
func (d HUDData) AliveFraction() float32 {
	if d.Population == 0 {
		return 0
	}
	return float32(d.Alive) / float32(d.Population)
}

// HUD renders the generation panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*8 + pad*2
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + pad
	y := h.y + pad
	inner := h.width - pad*2

	y = r.DrawSectionHeader(x, y, "Snake Evolution")
	y = r.DrawLabelValue(x, y, "Generation", fmt.Sprintf("%d", data.Generation))
	y = r.DrawLabelValue(x, y, "Alive", fmt.Sprintf("%d/%d", data.Alive, data.Population))
	y = r.DrawBar(x, y, "Share", data.AliveFraction(), inner)
	y = r.DrawLabelValue(x, y, "High score", fmt.Sprintf("%d", data.HighScore))
	y = r.DrawLabelValue(x, y, "This gen", fmt.Sprintf("%d", data.GenerationBest))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d/%d", data.Tick, data.MaxTicks))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("1/%d | %d fps", data.FramesPerTick, data.FPS))

	return h.y + height + pad
}

// PerfPanel renders the per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	if stats.Ticks == 0 {
		return
	}
	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
