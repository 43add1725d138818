package systems

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadlife/components"
)

// ErrEmptyField is returned when a detector is built over a zero-sized field.
var ErrEmptyField = errors.New("collision detector needs a non-empty field")

// Handle identifies an entity registered with a CollisionDetector.
type Handle = NodeHandle

// CollisionDetector is the broad phase: it keeps every registered entity
// bucketed in a quadtree and answers which other entities could touch it.
// Narrow-phase tests are left to the caller.
type CollisionDetector struct {
	index   *QuadTree[ecs.Entity]
	scratch []NodeHandle
}

// NewCollisionDetector creates a detector covering field with the given quadtree depth.
func NewCollisionDetector(field components.Field, levels int) (*CollisionDetector, error) {
	if field.Width == 0 || field.Height == 0 {
		return nil, fmt.Errorf("field %dx%d: %w", field.Width, field.Height, ErrEmptyField)
	}
	if levels < 1 || levels > MaxLevels {
		return nil, fmt.Errorf("index levels %d out of range [1, %d]", levels, MaxLevels)
	}
	return &CollisionDetector{
		index: NewQuadTree[ecs.Entity](float64(field.Width), float64(field.Height), levels),
	}, nil
}

// Register buckets the entity by its current bounding square.
func (c *CollisionDetector) Register(e ecs.Entity, pos components.Position, body components.Body) Handle {
	ul, dr := Corners(pos, body)
	return c.index.Insert(e, ul, dr)
}

// Unregister drops the entity from the index. Unregistering twice is harmless.
func (c *CollisionDetector) Unregister(h Handle) {
	c.index.Remove(h)
}

// NotifyMoved re-buckets the entity after a position change.
// Returns true if it landed in a different bucket.
func (c *CollisionDetector) NotifyMoved(h Handle, pos components.Position, body components.Body) bool {
	ul, dr := Corners(pos, body)
	return c.index.Relocate(h, ul, dr)
}

// Query returns the handles of every entity that could collide with h.
// The returned slice is reused by the next call to Query.
func (c *CollisionDetector) Query(h Handle) []Handle {
	c.scratch = c.index.Candidates(h, c.scratch[:0])
	return c.scratch
}

// QueryInto appends the candidates of h to dst.
func (c *CollisionDetector) QueryInto(dst []Handle, h Handle) []Handle {
	return c.index.Candidates(h, dst)
}

// Entity returns the entity registered under h.
func (c *CollisionDetector) Entity(h Handle) ecs.Entity {
	return c.index.Member(h)
}

// Registered reports whether h is still in the index.
func (c *CollisionDetector) Registered(h Handle) bool {
	return c.index.Live(h)
}

// Len returns the number of registered entities.
func (c *CollisionDetector) Len() int {
	return c.index.Len()
}

// CandidatePairs counts the broad-phase pairs across the whole index.
func (c *CollisionDetector) CandidatePairs() int {
	n := 0
	c.index.Pairs(func(_, _ NodeHandle) { n++ })
	return n
}

// Index exposes the underlying quadtree for telemetry and overlays.
func (c *CollisionDetector) Index() *QuadTree[ecs.Entity] {
	return c.index
}
