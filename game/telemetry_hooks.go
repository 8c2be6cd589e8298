package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/snakevo/neural"
	"github.com/pthm-cable/snakevo/stream"
	"github.com/pthm-cable/snakevo/telemetry"
)

// weighted is implemented by controllers whose parameters can be archived.
type weighted interface {
	Weights() neural.BrainWeights
}

func (g *Game) initTelemetry(outputDir string, now time.Time) error {
	g.collector = telemetry.NewCollector(g.runID, now)
	g.perfCollector = telemetry.NewPerfCollector(g.cfg.Telemetry.PerfWindow)
	g.hallOfFame = telemetry.NewHallOfFame(g.cfg.Telemetry.HallOfFame)

	sampler, err := telemetry.NewProcessSampler()
	if err != nil {
		g.logger.Warn("process sampling disabled", "error", err)
	}
	g.sampler = sampler

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(g.cfg); err != nil {
		g.logger.Error("failed to write config", "error", err)
	}
	return nil
}

// flushGeneration records the generation that just ended. It runs before
// the population is bred so the hall of fame can copy controller weights.
func (g *Game) flushGeneration(ticks int) {
	generation := g.manager.Generation()

	scores := make([]int, len(g.agents))
	totals := make([]int, len(g.agents))
	for i, a := range g.agents {
		scores[i] = a.Score()
		totals[i] = a.Total()

		if !g.hallOfFame.Qualifies(a.Score()) {
			continue
		}
		w, ok := a.Controller().(weighted)
		if !ok {
			continue
		}
		g.hallOfFame.Consider(telemetry.HallEntry{
			Generation: generation,
			Index:      i,
			Score:      a.Score(),
			Total:      a.Total(),
			Weights:    w.Weights(),
		})
	}

	sample, err := g.sampler.Sample()
	if err != nil {
		g.logger.Debug("process sample failed", "error", err)
	}

	stats := g.collector.Flush(telemetry.GenerationEnd{
		Generation: generation,
		Ticks:      ticks,
		Alive:      g.alive,
		Scores:     scores,
		Totals:     totals,
		HighScore:  g.highScore,
		Process:    sample,
	}, g.clock())
	perfStats := g.perfCollector.Flush()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats(generation)
	} else {
		g.logger.Info("generation complete",
			"generation", generation,
			"ticks", ticks,
			"best", stats.BestScore,
			"mean", stats.MeanScore,
			"high_score", g.highScore,
		)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteGeneration(stats); err != nil {
			g.logger.Error("failed to write generation", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, generation); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}

// publishFrame sends the visible agents to spectators.
func (g *Game) publishFrame() {
	if g.hub == nil {
		return
	}
	g.hub.Publish(stream.Frame{
		Generation: g.manager.Generation(),
		Tick:       g.updates,
		Alive:      g.alive,
		HighScore:  g.highScore,
		Agents:     g.Views(),
	})
}

// finalizeTelemetry writes the outputs that are only produced once per run.
func (g *Game) finalizeTelemetry() {
	if g.outputManager == nil {
		return
	}
	if g.cfg.Telemetry.Plot {
		if err := g.outputManager.WritePlot(fmt.Sprintf("Scores (run %s)", g.runID)); err != nil {
			g.logger.Error("failed to write score plot", "error", err)
		}
	}
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		g.logger.Error("failed to write hall of fame", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
