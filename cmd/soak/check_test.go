package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/pthm-cable/quadlife/config"
	"github.com/pthm-cable/quadlife/game"
	"github.com/pthm-cable/quadlife/renderer"
)

func TestCheckPassesWhileWalking(t *testing.T) {
	cfg := config.Defaults()
	u, err := game.NewUniverse(cfg, rand.New(rand.NewSource(17)), renderer.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.Seed(cfg.Population.Seeds); err != nil {
		t.Fatal(err)
	}

	for tick := 0; tick < 500; tick++ {
		u.Step()
		if tick%50 == 0 {
			if err := Check(u); err != nil {
				t.Fatalf("tick %d: %v", tick, err)
			}
		}
	}
}

func TestSoakWritesCensus(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.CensusInterval = 50
	if err := soak(context.Background(), cfg, 3, 200, 100, t.TempDir()); err != nil {
		t.Fatal(err)
	}
}

func TestSoakHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := soak(ctx, config.Defaults(), 1, 10, 1, ""); err == nil {
		t.Error("expected cancelled soak to fail")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[string]string{
		"0m05s":    formatDuration(5_000_000_000),
		"2m00s":    formatDuration(120_000_000_000),
		"1h01m01s": formatDuration(3_661_000_000_000),
	}
	for want, got := range tests {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
