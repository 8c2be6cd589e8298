package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/game"
	"github.com/pthm-cable/snakevo/storage"
	"github.com/pthm-cable/snakevo/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	generations []telemetry.GenerationStats // collected via StatsCallback
	hallOfFame  *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(x, s)
			if err != nil {
				slog.Error("evaluation failed", "seed", s, "error", err)
				results[idx] = seedResult{fitness: 0}
				return
			}
			results[idx] = seedResult{
				fitness:    computeFitness(result.generations),
				quality:    computeQuality(result.generations),
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation evolves a fresh population for the configured number of
// generations. Controllers are kept in memory only.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return nil, err
	}

	result := &runResult{}
	g, err := game.NewGame(cfg, game.Options{
		Seed:     seed,
		Headless: true,
		Store:    storage.NewMemoryStore(),
		Logger:   slog.New(slog.DiscardHandler),
		StatsCallback: func(stats telemetry.GenerationStats) {
			result.generations = append(result.generations, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	for g.Generation() < fe.generations {
		g.UpdateHeadless()
	}
	result.hallOfFame = g.HallOfFame()
	return result, nil
}

// copyConfig creates a copy of the base config with persistence and file
// output turned off.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Brains.Load = false
	cfg.Brains.Save = false
	cfg.Telemetry.OutputDir = ""
	return &cfg
}

// tailFraction is the share of final generations that fitness is measured on.
const tailFraction = 0.25

// tail returns the last quarter of the generations, at least one.
func tail(gens []telemetry.GenerationStats) []telemetry.GenerationStats {
	n := int(math.Ceil(float64(len(gens)) * tailFraction))
	if n < 1 {
		n = 1
	}
	if n > len(gens) {
		n = len(gens)
	}
	return gens[len(gens)-n:]
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(mean p90 score of the final generations) × (1 + 0.2 × quality)
func computeFitness(gens []telemetry.GenerationStats) float64 {
	if len(gens) == 0 {
		return 0
	}
	last := tail(gens)
	p90 := make([]float64, len(last))
	for i, s := range last {
		p90[i] = s.P90Score
	}
	return -(stat.Mean(p90, nil) * (1.0 + 0.2*computeQuality(gens)))
}

// computeQuality scores how much of the run's food collection happened in
// the final generations, in [0, 1]. A population that keeps improving eats
// more late than early.
func computeQuality(gens []telemetry.GenerationStats) float64 {
	if len(gens) < 2 {
		return 0
	}
	var early, late float64
	half := len(gens) / 2
	for i, s := range gens {
		if i < half {
			early += float64(s.FoodsEaten)
		} else {
			late += float64(s.FoodsEaten)
		}
	}
	if early+late == 0 {
		return 0
	}
	return clamp01(late / (early + late))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
