package game

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.toggleSpeed()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		g.showAll = !g.showAll
	}
}

// toggleSpeed switches between the fast and slow tick rates. The first
// toggle always selects the fast rate.
func (g *Game) toggleSpeed() {
	if g.speed == g.cfg.Render.FastSpeed {
		g.speed = g.cfg.Render.SlowSpeed
	} else {
		g.speed = g.cfg.Render.FastSpeed
	}
}

// Speed returns the number of frames per tick.
func (g *Game) Speed() int { return g.speed }

// clearBrainsFromUI deletes the saved controllers from the controls panel.
func (g *Game) clearBrainsFromUI() {
	if err := g.ClearBrains(context.Background()); err != nil {
		g.logger.Error("failed to delete saved controllers", "error", err)
	}
}
