// Package game runs the generational simulation: it ticks the population
// phase by phase, ends generations, breeds the next one and persists its
// controllers.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/evolve"
	"github.com/pthm-cable/snakevo/neural"
	"github.com/pthm-cable/snakevo/renderer"
	"github.com/pthm-cable/snakevo/scene"
	"github.com/pthm-cable/snakevo/snake"
	"github.com/pthm-cable/snakevo/storage"
	"github.com/pthm-cable/snakevo/stream"
	"github.com/pthm-cable/snakevo/telemetry"
	"github.com/pthm-cable/snakevo/ui"
)

// Options configures a Game beyond what the config file holds.
type Options struct {
	Seed      int64
	OutputDir string // overrides telemetry.output_dir
	Headless  bool   // skip raylib resources
	LogStats  bool   // log generation and perf stats
	RunID     string

	// ClearBrains deletes every persisted controller before the first
	// population is built, so nothing is loaded from the store.
	ClearBrains bool

	// Clock defaults to time.Now.
	Clock func() time.Time
	// Factory defaults to a BrainFactory shaped by the config and backed by Store.
	Factory neural.Factory
	// Store defaults to the backend named in the config. A provided store is
	// not closed by Unload.
	Store storage.Store

	Logger  *slog.Logger
	Metrics *telemetry.Metrics
	Hub     *stream.Hub

	// StatsCallback is called with the stats of every finished generation.
	StatsCallback func(telemetry.GenerationStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	world  snake.World
	rng    *rand.Rand
	clock  func() time.Time
	logger *slog.Logger
	runID  string

	agents    []*snake.Agent
	manager   *evolve.Manager
	factory   neural.Factory
	store     storage.Store
	ownsStore bool

	// Generation state
	updates         int
	generationStart time.Time
	lastSave        time.Time
	alive           int
	largestScore    int // best score at the last tick
	highScore       int // best score at any tick of any generation

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	hallOfFame    *telemetry.HallOfFame
	sampler       *telemetry.ProcessSampler
	metrics       *telemetry.Metrics
	hub           *stream.Hub
	logStats      bool
	statsCallback func(telemetry.GenerationStats)

	// Graphics
	headless  bool
	frame     int
	speed     int // frames per tick
	showAll   bool
	scene     *scene.Scene
	board     *renderer.Board
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
}

// NewGame creates a game and its first population. Controllers persisted
// under the configured prefix are loaded when enabled; any index that fails
// to load gets a fresh controller.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = clock().UnixNano()
	}

	world := snake.World{
		Width:     cfg.Screen.Width,
		Height:    cfg.Screen.Height,
		Cell:      cfg.Grid.CellSize,
		TopMargin: cfg.Grid.TopMarginRows,
	}
	now := clock()

	g := &Game{
		cfg:             cfg,
		world:           world,
		rng:             rand.New(rand.NewSource(seed)),
		clock:           clock,
		logger:          logger,
		runID:           opts.RunID,
		generationStart: now,
		lastSave:        now,
		metrics:         opts.Metrics,
		hub:             opts.Hub,
		logStats:        opts.LogStats,
		statsCallback:   opts.StatsCallback,
		headless:        opts.Headless,
		speed:           1,
		showAll:         cfg.Render.ShowAll,
	}
	g.manager = evolve.NewManager(g.rng, world, cfg.Mutation.Rate)

	g.store = opts.Store
	if g.store == nil {
		store, err := storage.NewStore(cfg.Brains.Backend, cfg.Brains.Path)
		if err != nil {
			return nil, err
		}
		g.store = store
		g.ownsStore = true
	}
	if err := g.store.Init(context.Background()); err != nil {
		g.closeStore()
		return nil, fmt.Errorf("initializing controller store: %w", err)
	}
	if opts.ClearBrains {
		if err := g.ClearBrains(context.Background()); err != nil {
			g.closeStore()
			return nil, err
		}
	}

	g.factory = opts.Factory
	if g.factory == nil {
		g.factory = &neural.BrainFactory{
			Inputs:  cfg.Derived.NumInputs,
			Hidden:  cfg.Neural.Hidden,
			Outputs: cfg.Neural.Outputs,
			Sigma:   cfg.Mutation.Sigma,
			Rng:     g.rng,
			Store:   g.store,
		}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	if err := g.initTelemetry(outputDir, now); err != nil {
		g.closeStore()
		return nil, err
	}

	if err := g.spawnInitialPopulation(context.Background()); err != nil {
		g.closeStore()
		return nil, err
	}

	if !g.headless {
		g.initGraphics()
	}

	g.logger.Info("game created",
		"run_id", g.runID,
		"seed", seed,
		"population", len(g.agents),
		"inputs", world.NumInputs(),
	)
	return g, nil
}

func (g *Game) initGraphics() {
	w := int32(g.cfg.Screen.Width)
	h := int32(g.cfg.Screen.Height)
	pad := ui.DefaultTheme().Padding
	width := int32(ui.SidebarWidth) - pad*2

	g.scene = scene.New()
	g.board = renderer.NewBoard(w, h, int32(g.cfg.Grid.CellSize))
	g.hud = ui.NewHUD(w+pad, pad, width)
	g.controls = ui.NewControlsPanel(w+pad, 0, width)
	g.perfPanel = ui.NewPerfPanel(w+pad, 0)
}

// Unload writes final outputs and releases resources.
func (g *Game) Unload() {
	g.finalizeTelemetry()
	g.closeStore()
}

func (g *Game) closeStore() {
	if g.ownsStore {
		if err := storage.CloseIfSupported(g.store); err != nil {
			g.logger.Error("failed to close store", "error", err)
		}
	}
}

// Generation returns the number of completed generations.
func (g *Game) Generation() int { return g.manager.Generation() }

// Tick returns the number of ticks run in the current generation.
func (g *Game) Tick() int { return g.updates }

// Alive returns the number of agents alive after the last tick.
func (g *Game) Alive() int { return g.alive }

// HighScore returns the best score seen in any tick so far.
func (g *Game) HighScore() int { return g.highScore }

// GenerationBest returns the best score of the last tick.
func (g *Game) GenerationBest() int { return g.largestScore }

// Population returns the current agents. The slice must not be modified.
func (g *Game) Population() []*snake.Agent { return g.agents }

// HallOfFame returns the best controllers archived so far.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hallOfFame }

// RunID returns the run identifier.
func (g *Game) RunID() string { return g.runID }

// Views snapshots the agents that are drawn: every agent when show-all is
// on, otherwise only the leader.
func (g *Game) Views() []snake.AgentView {
	if g.showAll {
		views := make([]snake.AgentView, len(g.agents))
		for i, a := range g.agents {
			views[i] = a.View()
		}
		return views
	}
	if leader := evolve.Leader(g.agents); leader != nil {
		return []snake.AgentView{leader.View()}
	}
	return nil
}

// SetShowAll chooses between drawing every agent and only the leader.
func (g *Game) SetShowAll(v bool) { g.showAll = v }

// ShowAll reports whether every agent is drawn.
func (g *Game) ShowAll() bool { return g.showAll }
