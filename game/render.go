package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/snakevo/ui"
)

// Draw renders the board and the sidebar.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ui.DefaultTheme().Background)

	g.scene.Rebuild(g.Views())
	g.board.Draw(g.scene)

	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawUI() {
	y := g.hud.Draw(ui.HUDData{
		Generation:     g.Generation(),
		Alive:          g.alive,
		Population:     len(g.agents),
		HighScore:      g.highScore,
		GenerationBest: g.largestScore,
		Tick:           g.updates,
		MaxTicks:       g.cfg.Generation.MaxUpdates,
		FramesPerTick:  g.speed,
		FPS:            rl.GetFPS(),
	})

	x := int32(g.cfg.Screen.Width) + ui.DefaultTheme().Padding
	g.controls.SetPosition(x, y)
	action := g.controls.Draw(ui.ControlsState{
		ShowAll: g.showAll,
		Fast:    g.speed == g.cfg.Render.FastSpeed,
	})
	if action.ToggleShowAll {
		g.showAll = !g.showAll
	}
	if action.ToggleSpeed {
		g.toggleSpeed()
	}
	if action.ClearBrains {
		g.clearBrainsFromUI()
	}

	g.perfPanel.SetPosition(x, y+g.controls.Height()+ui.DefaultTheme().Padding)
	g.perfPanel.Draw(g.perfCollector.Stats())

	g.controls.DrawLegend(int32(g.cfg.Screen.Height), "[Space] speed  [A] show all")
}
