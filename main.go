package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadlife/camera"
	"github.com/pthm-cable/quadlife/config"
	"github.com/pthm-cable/quadlife/game"
	"github.com/pthm-cable/quadlife/renderer"
	"github.com/pthm-cable/quadlife/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output census and perf windows via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	level := slog.LevelInfo
	if *logStats {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		MaxTicks:       int32(*maxTicks),
	}

	if *headless {
		// Headless mode - no window, nothing is drawn
		g, err := game.NewGameWithOptions(cfg, opts, renderer.Discard)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for !g.Done() {
			g.UpdateHeadless()
		}
		slog.Info("max ticks reached", "tick", g.Tick())
		return
	}

	rl.InitWindow(cfg.Derived.ScreenW, cfg.Derived.ScreenH, "Quadlife")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(
		float32(cfg.Derived.ScreenW), float32(cfg.Derived.ScreenH),
		float32(cfg.World.Width), float32(cfg.World.Height),
	)
	g, err := game.NewGameWithOptions(cfg, opts, ui.NewCanvas(cam))
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	win := ui.NewWindow(g, cam, cfg.Screen.ShowHUD)
	for !rl.WindowShouldClose() {
		win.Update()
		win.Draw()

		if g.Done() {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}
