package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadlife/components"
	"github.com/pthm-cable/quadlife/config"
	"github.com/pthm-cable/quadlife/renderer"
	"github.com/pthm-cable/quadlife/systems"
	"github.com/pthm-cable/quadlife/telemetry"
)

// ErrFieldTooSmall is returned by Birth when no position keeps a body inside the field.
var ErrFieldTooSmall = errors.New("field too small for entity body")

// LifeInfo is a read-only view of one entity.
type LifeInfo struct {
	Entity   ecs.Entity
	Species  components.Species
	Position components.Position
	Heading  components.Direction
	Node     systems.Handle
}

// StepStats counts what happened during one Step.
type StepStats struct {
	Moved      int
	Rebucketed int
	Blocked    int
}

// LogValue implements slog.LogValuer.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("moved", s.Moved),
		slog.Int("rebucketed", s.Rebucketed),
		slog.Int("blocked", s.Blocked),
	)
}

// Universe owns the field, every entity and the collision detector.
// It is single-threaded; run one Universe per goroutine.
type Universe struct {
	world *ecs.World
	rng   systems.Rand

	entityMap *ecs.Map5[
		components.Position,
		components.Body,
		components.Heading,
		components.Life,
		components.Broadphase,
	]

	// Master sequence in birth order; Step and Render walk it in this order
	lives []ecs.Entity
	moved []ecs.Entity

	field    components.Field
	diameter uint32
	movement systems.Movement
	detector *systems.CollisionDetector

	surface  renderer.Surface
	colors   config.ColorsConfig
	showGrid bool

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	counts [3]int
	tick   int32
	last   StepStats
}

// NewUniverse builds an empty universe over the configured field.
// rng drives spawning and movement; surface receives Render calls.
func NewUniverse(cfg *config.Config, rng systems.Rand, surface renderer.Surface) (*Universe, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	field := components.Field{Width: cfg.World.Width, Height: cfg.World.Height}
	detector, err := systems.NewCollisionDetector(field, cfg.Index.Levels)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	return &Universe{
		world: world,
		rng:   rng,
		entityMap: ecs.NewMap5[
			components.Position,
			components.Body,
			components.Heading,
			components.Life,
			components.Broadphase,
		](world),
		field:    field,
		diameter: cfg.Entity.Diameter,
		movement: systems.Movement{
			TurnChance: cfg.Movement.TurnChance,
			Step:       cfg.Movement.Step,
		},
		detector:  detector,
		surface:   surface,
		colors:    cfg.Colors,
		showGrid:  cfg.Screen.ShowGrid,
		collector: telemetry.NewCollector(int32(cfg.Telemetry.CensusInterval)),
	}, nil
}

// Seed births every configured species in order.
func (u *Universe) Seed(seeds []config.SeedConfig) error {
	for _, s := range seeds {
		species, err := components.ParseSpecies(s.Species)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		if err := u.Birth(species, s.Count); err != nil {
			return fmt.Errorf("seeding %d %s: %w", s.Count, species, err)
		}
	}
	return nil
}

// Birth adds count entities of one species at uniformly random positions
// whose bodies fit inside the field. New entities have no heading yet.
func (u *Universe) Birth(species components.Species, count uint32) error {
	if count == 0 {
		return nil
	}

	body := components.Body{Diameter: u.diameter}
	half := body.Half()
	if u.field.Width <= 2*half || u.field.Height <= 2*half {
		return fmt.Errorf("%dx%d field, diameter %d: %w",
			u.field.Width, u.field.Height, body.Diameter, ErrFieldTooSmall)
	}
	spanX := int(u.field.Width - 2*half)
	spanY := int(u.field.Height - 2*half)

	for i := uint32(0); i < count; i++ {
		pos := components.Position{
			X: half + uint32(u.rng.Intn(spanX)),
			Y: half + uint32(u.rng.Intn(spanY)),
		}
		e := u.entityMap.NewEntity(
			&pos,
			&body,
			&components.Heading{Dir: components.DirectionNone},
			&components.Life{Species: species},
			&components.Broadphase{Node: int32(systems.NoNode)},
		)
		_, _, _, _, bp := u.entityMap.Get(e)
		bp.Node = int32(u.detector.Register(e, pos, body))

		u.lives = append(u.lives, e)
		u.counts[species]++
		u.collector.RecordBirth(species)
	}
	return nil
}

// Step advances every entity one tick in birth order, then re-buckets the
// ones that moved.
func (u *Universe) Step() {
	if u.perf != nil {
		u.perf.StartTick()
		u.perf.StartPhase(telemetry.PhaseMovement)
	}

	u.moved = u.moved[:0]
	stats := StepStats{}
	for _, e := range u.lives {
		pos, body, heading, _, _ := u.entityMap.Get(e)
		if u.movement.Advance(pos, *body, heading, u.field, u.rng) {
			u.moved = append(u.moved, e)
		} else if heading.Dir != components.DirectionNone {
			u.collector.RecordBlocked()
			stats.Blocked++
		}
	}

	if u.perf != nil {
		u.perf.StartPhase(telemetry.PhaseIndex)
	}
	for _, e := range u.moved {
		pos, body, _, _, bp := u.entityMap.Get(e)
		rebucketed := u.detector.NotifyMoved(systems.Handle(bp.Node), *pos, *body)
		u.collector.RecordMove(rebucketed)
		if rebucketed {
			stats.Rebucketed++
		}
	}
	stats.Moved = len(u.moved)
	u.last = stats

	u.tick++
	if u.perf != nil {
		u.perf.EndTick()
	}
}

// Render draws the field and every entity onto the surface. It never mutates state.
func (u *Universe) Render() {
	w, h := float64(u.field.Width), float64(u.field.Height)
	u.surface.FillRect(0, 0, w, h, u.colors.Background)
	u.surface.StrokeRect(0, 0, w, h, u.colors.Border)

	if u.showGrid {
		index := u.detector.Index()
		for b := 0; b < index.NumBuckets(); b++ {
			if index.BucketLen(b) == 0 {
				continue
			}
			x, y, cw, ch := index.Cell(b)
			u.surface.StrokeRect(x, y, cw, ch, u.colors.Grid)
		}
	}

	for _, e := range u.lives {
		pos, body, _, life, _ := u.entityMap.Get(e)
		color := u.colors.Species(life.Species)
		u.surface.Arc(float64(pos.X), float64(pos.Y), body.Radius(), 0, renderer.FullCircle, color, color)
	}
}

// Census samples population and index shape for telemetry.
func (u *Universe) Census() telemetry.Snapshot {
	return telemetry.Snapshot{
		Counts:         u.counts,
		Occupancy:      u.detector.Index().Occupancy(),
		CandidatePairs: u.detector.CandidatePairs(),
	}
}

// FlushCensus closes the current census window if it has elapsed.
func (u *Universe) FlushCensus() (telemetry.Census, bool) {
	if !u.collector.ShouldFlush(u.tick) {
		return telemetry.Census{}, false
	}
	return u.collector.Flush(u.tick, u.Census()), true
}

// Lives returns a snapshot of every entity in birth order.
func (u *Universe) Lives() []LifeInfo {
	out := make([]LifeInfo, 0, len(u.lives))
	for _, e := range u.lives {
		pos, _, heading, life, bp := u.entityMap.Get(e)
		out = append(out, LifeInfo{
			Entity:   e,
			Species:  life.Species,
			Position: *pos,
			Heading:  heading.Dir,
			Node:     systems.Handle(bp.Node),
		})
	}
	return out
}

// LastStep returns the counts of the most recent Step.
func (u *Universe) LastStep() StepStats { return u.last }

// Counts returns the population per species.
func (u *Universe) Counts() [3]int { return u.counts }

// Tick returns the number of completed steps.
func (u *Universe) Tick() int32 { return u.tick }

// Len returns the number of entities.
func (u *Universe) Len() int { return len(u.lives) }

// Field returns the field bounds.
func (u *Universe) Field() components.Field { return u.field }

// Body returns the body every entity is born with.
func (u *Universe) Body() components.Body { return components.Body{Diameter: u.diameter} }

// SpeciesColor returns the configured color of a species.
func (u *Universe) SpeciesColor(s components.Species) string { return u.colors.Species(s) }

// Detector exposes the collision detector.
func (u *Universe) Detector() *systems.CollisionDetector { return u.detector }

// ShowGrid reports whether Render draws occupied bucket cells.
func (u *Universe) ShowGrid() bool { return u.showGrid }

// SetShowGrid toggles the bucket grid overlay.
func (u *Universe) SetShowGrid(on bool) { u.showGrid = on }

// SetPerfCollector enables per-phase step timing.
func (u *Universe) SetPerfCollector(p *telemetry.PerfCollector) { u.perf = p }
