package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Census holds aggregated statistics for a window of ticks.
type Census struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Population int `csv:"population"`
	Plants     int `csv:"plants"`
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`

	// Events during window
	Births      int     `csv:"births"`
	Moves       int     `csv:"moves"`
	Blocked     int     `csv:"blocked"`
	Rebuckets   int     `csv:"rebuckets"`
	BlockedRate float64 `csv:"blocked_rate"`

	// Index shape at window end
	OccupiedBuckets int     `csv:"occupied_buckets"`
	RootLoad        int     `csv:"root_load"`
	OccupancyMean   float64 `csv:"occupancy_mean"`
	OccupancyStd    float64 `csv:"occupancy_std"`
	OccupancyP90    float64 `csv:"occupancy_p90"`

	// Broad phase efficiency
	CandidatePairs int     `csv:"candidate_pairs"`
	NaivePairs     int     `csv:"naive_pairs"`
	PairRatio      float64 `csv:"pair_ratio"` // candidate / naive
}

// OccupancyStats summarizes the non-empty buckets of a quadtree occupancy vector.
func OccupancyStats(occupancy []int) (occupied int, mean, std, p90 float64) {
	loads := make([]float64, 0, len(occupancy))
	for _, n := range occupancy {
		if n > 0 {
			loads = append(loads, float64(n))
		}
	}
	if len(loads) == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(loads, nil)
	slices.Sort(loads)
	p90 = stat.Quantile(0.9, stat.Empirical, loads, nil)
	return len(loads), mean, std, p90
}

// NaivePairs is the number of pairs an all-against-all check would test.
func NaivePairs(n int) int {
	return n * (n - 1) / 2
}

// LogValue implements slog.LogValuer for structured logging.
func (c Census) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(c.WindowStartTick)),
		slog.Int("window_end", int(c.WindowEndTick)),
		slog.Int("population", c.Population),
		slog.Int("plants", c.Plants),
		slog.Int("herbivores", c.Herbivores),
		slog.Int("carnivores", c.Carnivores),
		slog.Int("births", c.Births),
		slog.Int("moves", c.Moves),
		slog.Int("blocked", c.Blocked),
		slog.Int("rebuckets", c.Rebuckets),
		slog.Float64("blocked_rate", c.BlockedRate),
		slog.Int("occupied_buckets", c.OccupiedBuckets),
		slog.Int("root_load", c.RootLoad),
		slog.Float64("occupancy_mean", c.OccupancyMean),
		slog.Float64("occupancy_std", c.OccupancyStd),
		slog.Float64("occupancy_p90", c.OccupancyP90),
		slog.Int("candidate_pairs", c.CandidatePairs),
		slog.Int("naive_pairs", c.NaivePairs),
		slog.Float64("pair_ratio", c.PairRatio),
	)
}
