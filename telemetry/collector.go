package telemetry

import "github.com/pthm-cable/quadlife/components"

// Snapshot is the state sampled at the end of a census window.
type Snapshot struct {
	Counts         [3]int // indexed by components.Species
	Occupancy      []int  // entities per quadtree bucket
	CandidatePairs int
}

// Collector accumulates events within tick windows and produces a Census.
type Collector struct {
	windowTicks     int32
	windowStartTick int32

	births    int
	moves     int
	blocked   int
	rebuckets int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int32) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records a new entity.
func (c *Collector) RecordBirth(components.Species) {
	c.births++
}

// RecordMove records an applied step. rebucketed is true if the entity changed quadtree bucket.
func (c *Collector) RecordMove(rebucketed bool) {
	c.moves++
	if rebucketed {
		c.rebuckets++
	}
}

// RecordBlocked records a step refused at the field boundary.
func (c *Collector) RecordBlocked() {
	c.blocked++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a Census and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) Census {
	population := snap.Counts[0] + snap.Counts[1] + snap.Counts[2]
	occupied, mean, std, p90 := OccupancyStats(snap.Occupancy)
	naive := NaivePairs(population)

	census := Census{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population: population,
		Plants:     snap.Counts[components.SpeciesPlant],
		Herbivores: snap.Counts[components.SpeciesHerbivore],
		Carnivores: snap.Counts[components.SpeciesCarnivore],

		Births:    c.births,
		Moves:     c.moves,
		Blocked:   c.blocked,
		Rebuckets: c.rebuckets,

		OccupiedBuckets: occupied,
		OccupancyMean:   mean,
		OccupancyStd:    std,
		OccupancyP90:    p90,

		CandidatePairs: snap.CandidatePairs,
		NaivePairs:     naive,
	}
	if len(snap.Occupancy) > 0 {
		census.RootLoad = snap.Occupancy[0]
	}
	if attempts := c.moves + c.blocked; attempts > 0 {
		census.BlockedRate = float64(c.blocked) / float64(attempts)
	}
	if naive > 0 {
		census.PairRatio = float64(snap.CandidatePairs) / float64(naive)
	}

	c.windowStartTick = currentTick
	c.births = 0
	c.moves = 0
	c.blocked = 0
	c.rebuckets = 0

	return census
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
