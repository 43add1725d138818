// Package components defines ECS components for the simulation.
package components

// DefaultDiameter is the body diameter every entity is born with.
const DefaultDiameter uint32 = 10

// Species tags what kind of life an entity is. Immutable per entity.
type Species uint8

const (
	SpeciesPlant Species = iota
	SpeciesHerbivore
	SpeciesCarnivore
)

// Direction is the heading an entity moves along each tick.
// DirectionNone means no heading has been chosen yet.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionNorth
	DirectionEast
	DirectionSouth
	DirectionWest
)

// Headings lists the four directions a heading is drawn from, in draw order.
var Headings = [4]Direction{DirectionNorth, DirectionEast, DirectionSouth, DirectionWest}

// Field holds the world bounds. Immutable for a run.
type Field struct {
	Width, Height uint32
}

// Position represents an entity's center in field coordinates.
type Position struct {
	X, Y uint32
}

// Body holds the entity's circular extent.
type Body struct {
	Diameter uint32
}

// Half returns ceil(diameter/2), the margin used by the movement boundary checks.
func (b Body) Half() uint32 {
	return (b.Diameter + 1) / 2
}

// Radius returns the exact radius used for bounding boxes and drawing.
func (b Body) Radius() float64 {
	return float64(b.Diameter) / 2
}

// Heading is the entity's current direction of travel.
type Heading struct {
	Dir Direction
}

// Life tags an entity with its species.
type Life struct {
	Species Species
}

// Broadphase links an entity to its node in the collision detector's index.
type Broadphase struct {
	Node int32
}
