package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/snakevo/config"
	"github.com/pthm-cable/snakevo/game"
	"github.com/pthm-cable/snakevo/stream"
	"github.com/pthm-cable/snakevo/telemetry"
	"github.com/pthm-cable/snakevo/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output generation and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, plot and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	listen := flag.String("listen", "", "Address for /ws spectators and /metrics (empty = disabled)")
	clearBrains := flag.Bool("clear-brains", false, "Delete saved controllers before starting")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := uuid.NewString()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := telemetry.NewMetrics()
	var hub *stream.Hub
	if *listen != "" {
		hub = stream.NewHub(cfg.Screen.Width, cfg.Screen.Height, cfg.Grid.CellSize, logger)
		go hub.Run(ctx)
		srv := serve(*listen, hub, metrics)
		defer shutdown(srv)
	}

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		Headless:  *headless,
		LogStats:  *logStats,
		RunID:     runID,
		Logger:    logger,
		Metrics:   metrics,
		Hub:       hub,

		ClearBrains: *clearBrains,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g := newGame(cfg, opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"run_id", runID,
			"seed", rngSeed,
			"max_generations", *maxGenerations,
		)

		for ctx.Err() == nil {
			if g.UpdateHeadless() && done(g, *maxGenerations) {
				slog.Info("max generations reached", "generation", g.Generation())
				return
			}
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width+ui.SidebarWidth), int32(cfg.Screen.Height), "Snake Evolution")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := newGame(cfg, opts)
	defer g.Unload()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()

		if done(g, *maxGenerations) {
			break
		}
	}
}

func newGame(cfg *config.Config, opts game.Options) *game.Game {
	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	return g
}

func done(g *game.Game, maxGenerations int) bool {
	return maxGenerations > 0 && g.Generation() >= maxGenerations
}

// serve starts the spectator and metrics endpoints in the background.
func serve(addr string, hub *stream.Hub, metrics *telemetry.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
}
