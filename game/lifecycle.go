package game

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/snakevo/neural"
	"github.com/pthm-cable/snakevo/snake"
)

// ioLimit bounds concurrent store operations.
const ioLimit = 8

// ControllerKey is the storage key of the controller at index i.
func ControllerKey(prefix string, i int) string {
	return fmt.Sprintf("snake%s--%d", prefix, i)
}

// spawnInitialPopulation creates the first generation.
func (g *Game) spawnInitialPopulation(ctx context.Context) error {
	n := g.cfg.Population.Size
	brains := make([]neural.Controller, n)
	if g.cfg.Brains.Load {
		g.loadControllers(ctx, brains)
	}

	g.agents = make([]*snake.Agent, n)
	for i := range g.agents {
		if brains[i] == nil {
			brains[i] = g.factory.New()
		}
		g.agents[i] = snake.New(g.world, brains[i], g.rng)
	}
	g.alive = n
	return nil
}

// loadControllers fills brains with every controller found in the store.
// Loading is best effort: a missing or unreadable controller leaves its
// slot nil.
func (g *Game) loadControllers(ctx context.Context, brains []neural.Controller) {
	var eg errgroup.Group
	eg.SetLimit(ioLimit)
	var loaded atomic.Int32

	for i := range brains {
		key := ControllerKey(g.cfg.Brains.Prefix, i)
		eg.Go(func() error {
			c, ok, err := g.factory.Load(ctx, key)
			if err != nil {
				g.logger.Warn("failed to load controller", "key", key, "error", err)
				return nil
			}
			if ok {
				brains[i] = c
				loaded.Add(1)
			}
			return nil
		})
	}
	eg.Wait()

	g.logger.Info("controllers loaded", "loaded", loaded.Load(), "population", len(brains))
}

// nextGeneration replaces the population with its offspring and saves the
// new controllers when saving is due.
func (g *Game) nextGeneration() {
	ticks := g.updates
	g.flushGeneration(ticks)

	next, generation := g.manager.Next(g.agents)
	g.agents = next
	g.alive = len(next)
	g.updates = 0

	now := g.clock()
	g.generationStart = now
	g.metrics.ObserveGeneration(generation, ticks)

	if g.cfg.Brains.Save && now.Sub(g.lastSave) > g.cfg.Derived.SaveInterval {
		g.lastSave = now
		if err := g.SaveControllers(context.Background()); err != nil {
			g.logger.Error("failed to save controllers", "generation", generation, "error", err)
		}
	}

	g.publishFrame()
}

// SaveControllers writes every current controller under its index key and
// waits for all writes. Every write is attempted; the first error is
// returned.
func (g *Game) SaveControllers(ctx context.Context) error {
	var eg errgroup.Group
	eg.SetLimit(ioLimit)
	var failed atomic.Int32

	for i, a := range g.agents {
		key := ControllerKey(g.cfg.Brains.Prefix, i)
		c := a.Controller()
		eg.Go(func() error {
			if err := c.Save(ctx, key); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}
	err := eg.Wait()

	bad := int(failed.Load())
	g.metrics.ObserveSaves(len(g.agents)-bad, bad)
	g.logger.Info("controllers saved", "count", len(g.agents)-bad, "failed", bad)
	return err
}

// ClearBrains deletes every persisted controller.
func (g *Game) ClearBrains(ctx context.Context) error {
	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing saved controllers: %w", err)
	}
	g.logger.Info("saved controllers deleted")
	return nil
}
