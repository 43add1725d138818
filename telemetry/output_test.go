package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/quadlife/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// Nil manager accepts writes
	if err := om.WriteCensus(Census{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, tick := range []int32{600, 1200} {
		if err := om.WriteCensus(Census{WindowEndTick: tick, Population: 310}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{TicksPerSecond: 1000}, 600); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Defaults()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "census.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,population,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Contains(lines[0], "window_start") {
		t.Error("window start should not be exported")
	}
	if !strings.HasPrefix(lines[2], "1200,310,") {
		t.Errorf("unexpected row %q", lines[2])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestCSVStreamHeaderAfterFailedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	s := csvStream{file: f}

	// Not a slice, rejected before anything is written
	if err := s.write(PerfStatsCSV{WindowEnd: 1}); err == nil {
		t.Fatal("expected error for non-slice records")
	}
	if s.headerWritten {
		t.Fatal("header marked written after a failed write")
	}

	if err := s.write([]PerfStatsCSV{{WindowEnd: 600}}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "window_end,") || !strings.HasPrefix(lines[1], "600,") {
		t.Errorf("expected header then one row, got:\n%s", data)
	}
}
