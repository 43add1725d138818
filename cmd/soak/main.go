// Package main runs many seeded universes in parallel and checks the
// broad phase invariants while they walk.
//
// Usage: go run ./cmd/soak -seeds 16 -ticks 20000
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/quadlife/config"
	"github.com/pthm-cable/quadlife/game"
	"github.com/pthm-cable/quadlife/renderer"
	"github.com/pthm-cable/quadlife/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 8, "Number of universes to run")
	firstSeed := flag.Int64("first-seed", 1, "Seed of the first universe; the rest count up")
	ticks := flag.Int("ticks", 10000, "Ticks per universe")
	checkEvery := flag.Int("check-every", 100, "Ticks between invariant checks")
	workers := flag.Int("workers", runtime.NumCPU(), "Universes run concurrently")
	outputDir := flag.String("output-dir", "", "Write per-seed census CSVs under this directory")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	start := time.Now()
	var done atomic.Int64

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, *workers))

	for i := 0; i < *seeds; i++ {
		seed := *firstSeed + int64(i)
		g.Go(func() error {
			dir := ""
			if *outputDir != "" {
				dir = filepath.Join(*outputDir, fmt.Sprintf("seed-%d", seed))
			}
			if err := soak(ctx, cfg, seed, *ticks, *checkEvery, dir); err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			slog.Info("seed passed",
				"seed", seed,
				"done", done.Add(1),
				"of", *seeds,
				"elapsed", formatDuration(time.Since(start)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("soak failed", "error", err)
		os.Exit(1)
	}
	slog.Info("soak complete", "seeds", *seeds, "ticks", *ticks, "elapsed", formatDuration(time.Since(start)))
}

// soak runs one universe for ticks steps, checking invariants every checkEvery ticks.
func soak(ctx context.Context, cfg *config.Config, seed int64, ticks, checkEvery int, dir string) error {
	u, err := game.NewUniverse(cfg, rand.New(rand.NewSource(seed)), renderer.Discard)
	if err != nil {
		return err
	}
	if err := u.Seed(cfg.Population.Seeds); err != nil {
		return err
	}

	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	checkEvery = max(1, checkEvery)
	for t := 1; t <= ticks; t++ {
		u.Step()

		if census, ok := u.FlushCensus(); ok {
			if err := om.WriteCensus(census); err != nil {
				return err
			}
		}
		if t%checkEvery != 0 && t != ticks {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Check(u); err != nil {
			return fmt.Errorf("tick %d: %w", u.Tick(), err)
		}
	}
	return nil
}
