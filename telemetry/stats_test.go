package telemetry

import (
	"log/slog"
	"math"
	"testing"

	"github.com/pthm-cable/quadlife/components"
)

func TestOccupancyStats(t *testing.T) {
	tests := []struct {
		name      string
		occupancy []int
		occupied  int
		mean, std float64
		p90       float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"all zero", []int{0, 0, 0}, 0, 0, 0, 0},
		{"single bucket", []int{0, 4, 0}, 1, 4, 0, 4},
		{"uniform", []int{2, 0, 2, 2, 2}, 4, 2, 0, 2},
		{"spread", []int{1, 3, 0, 0}, 2, 2, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occupied, mean, std, p90 := OccupancyStats(tt.occupancy)
			if occupied != tt.occupied {
				t.Errorf("occupied = %d, want %d", occupied, tt.occupied)
			}
			if math.Abs(mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if math.Abs(p90-tt.p90) > 1e-9 {
				t.Errorf("p90 = %v, want %v", p90, tt.p90)
			}
		})
	}
}

func TestNaivePairs(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 0, 2: 1, 10: 45, 310: 47895} {
		if got := NaivePairs(n); got != want {
			t.Errorf("NaivePairs(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.RecordBirth(components.SpeciesPlant)
	c.RecordBirth(components.SpeciesCarnivore)
	c.RecordMove(false)
	c.RecordMove(true)
	c.RecordMove(false)
	c.RecordBlocked()

	if c.ShouldFlush(9) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("expected flush at window end")
	}

	census := c.Flush(10, Snapshot{
		Counts:         [3]int{2, 1, 1},
		Occupancy:      []int{1, 0, 3},
		CandidatePairs: 3,
	})

	if census.Population != 4 || census.Plants != 2 || census.Herbivores != 1 || census.Carnivores != 1 {
		t.Errorf("unexpected population %+v", census)
	}
	if census.Births != 2 || census.Moves != 3 || census.Rebuckets != 1 || census.Blocked != 1 {
		t.Errorf("unexpected event counts %+v", census)
	}
	if census.BlockedRate != 0.25 {
		t.Errorf("blocked rate = %v, want 0.25", census.BlockedRate)
	}
	if census.RootLoad != 1 || census.OccupiedBuckets != 2 {
		t.Errorf("unexpected index shape %+v", census)
	}
	if census.NaivePairs != 6 || census.PairRatio != 0.5 {
		t.Errorf("pairs %d/%d ratio %v", census.CandidatePairs, census.NaivePairs, census.PairRatio)
	}

	// Counters reset for the next window
	next := c.Flush(20, Snapshot{})
	if next.WindowStartTick != 10 || next.Moves != 0 || next.Births != 0 {
		t.Errorf("collector did not reset: %+v", next)
	}
	if c.ShouldFlush(25) {
		t.Error("window start not advanced")
	}
}

func TestCensusLogValue(t *testing.T) {
	v := Census{WindowEndTick: 600, Population: 310}.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("expected group value, got %v", v.Kind())
	}
	found := false
	for _, a := range v.Group() {
		if a.Key == "population" && a.Value.Int64() == 310 {
			found = true
		}
	}
	if !found {
		t.Error("population attribute missing")
	}
}
