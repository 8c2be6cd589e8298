package game

import (
	"github.com/pthm-cable/snakevo/telemetry"
)

// Step runs one tick across the whole population, phase by phase: every
// agent moves, then every agent is checked for death, then every agent
// eats, then every score is updated, then every agent decides its next
// heading. It returns true when the tick ended the generation.
func (g *Game) Step() bool {
	g.perfCollector.StartTick()
	g.updates++

	g.perfCollector.StartPhase(telemetry.PhaseMove)
	for _, a := range g.agents {
		a.Update()
	}

	g.perfCollector.StartPhase(telemetry.PhaseDeath)
	alive := 0
	for _, a := range g.agents {
		wasDead := a.Dead()
		if !a.Death() {
			alive++
		} else if !wasDead {
			g.collector.RecordDeath(a.Score())
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseEat)
	for _, a := range g.agents {
		if a.Eat() {
			g.collector.RecordEat()
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseScore)
	largest := 0
	for _, a := range g.agents {
		if s := a.CalculateScore(); s > largest {
			largest = s
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseThink)
	for _, a := range g.agents {
		a.Think()
	}

	g.alive = alive
	g.largestScore = largest
	if largest > g.highScore {
		g.highScore = largest
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.metrics.ObserveTick(alive, largest, g.highScore)
	if every := g.cfg.Stream.Every; every > 0 && g.updates%every == 0 {
		g.publishFrame()
	}

	g.perfCollector.EndTick()

	// The tick is closed first so its timing lands in the ending
	// generation's perf record.
	ended := g.generationOver()
	if ended {
		g.nextGeneration()
	}
	return ended
}

// generationOver reports whether the current generation has run out of
// ticks or time, or has no agent left alive.
func (g *Game) generationOver() bool {
	if g.updates > g.cfg.Generation.MaxUpdates {
		return true
	}
	if lifetime := g.cfg.Derived.Lifetime; lifetime > 0 && g.clock().Sub(g.generationStart) > lifetime {
		return true
	}
	return g.alive == 0
}

// UpdateHeadless runs one tick.
func (g *Game) UpdateHeadless() bool {
	return g.Step()
}

// Update handles input and runs a tick when the frame counter says so:
// on the first frame and then every speed frames.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	g.frame++
	if g.frame%g.speed == 0 || g.frame == 1 {
		g.Step()
	}
}
