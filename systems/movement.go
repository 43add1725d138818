package systems

import "github.com/pthm-cable/quadlife/components"

// Rand is the randomness source movement and spawning draw from.
// *math/rand.Rand satisfies it; tests pass scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Movement holds the random walk parameters.
type Movement struct {
	TurnChance float64 // Per-tick probability of drawing a fresh heading
	Step       uint32  // Distance moved per tick
}

// DefaultMovement returns the walk used when no config overrides it.
func DefaultMovement() Movement {
	return Movement{TurnChance: 0.1, Step: 1}
}

// Advance runs one tick of the random walk. A fresh heading is drawn with
// probability TurnChance (it may repeat the current one), then the entity
// steps along its heading unless that would push its body out of the field.
// A blocked step keeps the heading. Returns true if the position changed.
func (m Movement) Advance(pos *components.Position, body components.Body, heading *components.Heading, field components.Field, rng Rand) bool {
	if rng.Float64() < m.TurnChance {
		heading.Dir = components.Headings[rng.Intn(len(components.Headings))]
	}

	if m.Step == 0 || !CanMove(*pos, body, heading.Dir, m.Step, field) {
		return false
	}

	switch heading.Dir {
	case components.DirectionNorth:
		pos.Y -= m.Step
	case components.DirectionSouth:
		pos.Y += m.Step
	case components.DirectionEast:
		pos.X += m.Step
	case components.DirectionWest:
		pos.X -= m.Step
	}
	return true
}

// CanMove reports whether stepping along dir keeps the leading edge of the
// body strictly inside the field. Computed in int64 so positions smaller than
// the body margin are blocked rather than wrapped.
func CanMove(pos components.Position, body components.Body, dir components.Direction, step uint32, field components.Field) bool {
	half := int64(body.Half())
	d := int64(step)
	x, y := int64(pos.X), int64(pos.Y)

	switch dir {
	case components.DirectionNorth:
		return y-half-d > 0
	case components.DirectionSouth:
		return y+half+d < int64(field.Height)
	case components.DirectionEast:
		return x+half+d < int64(field.Width)
	case components.DirectionWest:
		return x-half-d > 0
	}
	return false
}

// Corners returns the diagonal corners of the entity's bounding square.
func Corners(pos components.Position, body components.Body) (upLeft, downRight Point) {
	r := body.Radius()
	x, y := float64(pos.X), float64(pos.Y)
	return Point{X: x - r, Y: y - r}, Point{X: x + r, Y: y + r}
}
