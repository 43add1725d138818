// Package game runs the life simulation: the Universe and the loop that drives it.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/quadlife/config"
	"github.com/pthm-cable/quadlife/renderer"
	"github.com/pthm-cable/quadlife/telemetry"
)

// MaxStepsPerUpdate caps how many ticks one Update may run.
const MaxStepsPerUpdate = 64

// Options configures a Game beyond the simulation config.
type Options struct {
	Seed           int64  // RNG seed (0 = time-based)
	LogStats       bool   // Log census and perf windows via slog
	OutputDir      string // Directory for CSV output (empty = disabled)
	StepsPerUpdate int    // Ticks per Update call
	MaxTicks       int32  // Stop stepping at this tick (0 = unlimited)
}

// Game drives a Universe and routes its telemetry to logs and files.
type Game struct {
	universe *Universe
	rngSeed  int64

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.Census)

	paused         bool
	stepsPerUpdate int
	maxTicks       int32
}

// NewGameWithOptions builds and seeds a universe that renders onto surface.
func NewGameWithOptions(cfg *config.Config, opts Options, surface renderer.Surface) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	u, err := NewUniverse(cfg, rand.New(rand.NewSource(seed)), surface)
	if err != nil {
		return nil, err
	}
	if err := u.Seed(cfg.Population.Seeds); err != nil {
		return nil, err
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.CensusInterval)
	u.SetPerfCollector(perf)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("output: %w", err)
	}

	g := &Game{
		universe:       u,
		rngSeed:        seed,
		perfCollector:  perf,
		outputManager:  om,
		logStats:       opts.LogStats,
		stepsPerUpdate: max(1, min(opts.StepsPerUpdate, MaxStepsPerUpdate)),
		maxTicks:       max(0, opts.MaxTicks),
	}

	slog.Info("universe seeded",
		"seed", seed,
		"population", u.Len(),
		"world_w", cfg.World.Width,
		"world_h", cfg.World.Height,
		"levels", cfg.Index.Levels,
	)
	return g, nil
}

// Update runs StepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	g.runBatch()
}

// UpdateHeadless runs StepsPerUpdate ticks, ignoring pause.
func (g *Game) UpdateHeadless() {
	g.runBatch()
}

// runBatch steps up to StepsPerUpdate ticks without passing MaxTicks.
func (g *Game) runBatch() {
	for i := 0; i < g.stepsPerUpdate && !g.Done(); i++ {
		g.universe.Step()
		slog.Debug("step", "tick", g.universe.Tick(), "stats", g.universe.LastStep())
		g.flushTelemetry()
	}
}

// Done reports whether the tick limit has been reached.
func (g *Game) Done() bool {
	return g.maxTicks > 0 && g.universe.Tick() >= g.maxTicks
}

// Draw renders the universe onto its surface.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	g.universe.Render()
}

// SetStatsCallback registers fn to receive every census window.
func (g *Game) SetStatsCallback(fn func(telemetry.Census)) {
	g.statsCallback = fn
}

// TogglePause flips the paused state and returns it.
func (g *Game) TogglePause() bool {
	g.paused = !g.paused
	return g.paused
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool { return g.paused }

// StepsPerUpdate returns the current simulation speed.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate sets the simulation speed, clamped to [1, MaxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, MaxStepsPerUpdate))
}

// Universe returns the simulated universe.
func (g *Game) Universe() *Universe { return g.universe }

// Perf returns the step timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perfCollector }

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 { return g.rngSeed }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.universe.Tick() }

// Unload flushes and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
