package game

import "log/slog"

// flushTelemetry closes the census window when it has elapsed and routes it
// to the callback, the log and the output files.
func (g *Game) flushTelemetry() {
	census, ok := g.universe.FlushCensus()
	if !ok {
		return
	}
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(census)
	}

	if g.logStats {
		slog.Info("census", "stats", census)
		slog.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteCensus(census); err != nil {
			slog.Error("failed to write census", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, census.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
