package systems

import (
	"errors"
	"slices"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/quadlife/components"
)

// newEntities creates n bare entities in a fresh world.
func newEntities(n int) []ecs.Entity {
	world := ecs.NewWorld()
	mapper := ecs.NewMap[components.Life](world)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = mapper.NewEntity(&components.Life{})
	}
	return out
}

func TestNewCollisionDetector_RejectsEmptyField(t *testing.T) {
	_, err := NewCollisionDetector(components.Field{Width: 0, Height: 500}, 4)
	if !errors.Is(err, ErrEmptyField) {
		t.Errorf("expected ErrEmptyField, got %v", err)
	}

	if _, err := NewCollisionDetector(testField, 0); err == nil {
		t.Error("expected error for zero levels")
	}
}

func TestCollisionDetector_RegisterQuery(t *testing.T) {
	cd, err := NewCollisionDetector(testField, 4)
	if err != nil {
		t.Fatal(err)
	}
	ents := newEntities(3)
	body := components.Body{Diameter: 10}

	a := cd.Register(ents[0], components.Position{X: 30, Y: 30}, body)
	b := cd.Register(ents[1], components.Position{X: 40, Y: 40}, body)
	far := cd.Register(ents[2], components.Position{X: 470, Y: 470}, body)

	got := cd.Query(a)
	if !slices.Contains(got, b) {
		t.Errorf("expected neighbor %d in %v", b, got)
	}
	if slices.Contains(got, far) {
		t.Errorf("did not expect far entity %d in %v", far, got)
	}
	if cd.Entity(b) != ents[1] {
		t.Error("handle does not map back to its entity")
	}
	if cd.Len() != 3 {
		t.Errorf("expected 3 registered, got %d", cd.Len())
	}
}

func TestCollisionDetector_UnregisterRoundTrip(t *testing.T) {
	cd, _ := NewCollisionDetector(testField, 4)
	ents := newEntities(2)
	body := components.Body{Diameter: 10}

	cd.Register(ents[0], components.Position{X: 100, Y: 100}, body)
	before := cd.Index().Occupancy()

	h := cd.Register(ents[1], components.Position{X: 250, Y: 250}, body)
	cd.Unregister(h)
	cd.Unregister(h)

	if !slices.Equal(before, cd.Index().Occupancy()) {
		t.Error("register then unregister changed occupancy")
	}
	if cd.Registered(h) {
		t.Error("handle still registered")
	}
}

func TestCollisionDetector_NotifyMoved(t *testing.T) {
	cd, _ := NewCollisionDetector(testField, 4)
	ents := newEntities(3)
	body := components.Body{Diameter: 10}

	mover := cd.Register(ents[0], components.Position{X: 30, Y: 30}, body)
	oldNeighbor := cd.Register(ents[1], components.Position{X: 40, Y: 30}, body)
	newNeighbor := cd.Register(ents[2], components.Position{X: 470, Y: 470}, body)

	if cd.NotifyMoved(mover, components.Position{X: 31, Y: 30}, body) {
		t.Error("one step inside a cell should not re-bucket")
	}
	if !cd.NotifyMoved(mover, components.Position{X: 475, Y: 470}, body) {
		t.Fatal("expected re-bucket after crossing the field")
	}

	if slices.Contains(cd.Query(oldNeighbor), mover) {
		t.Error("mover still visible from its stale bucket")
	}
	if !slices.Contains(cd.Query(newNeighbor), mover) {
		t.Error("mover not visible from its new bucket")
	}
}

func TestCollisionDetector_CandidatePairs(t *testing.T) {
	cd, _ := NewCollisionDetector(testField, 4)
	ents := newEntities(4)
	body := components.Body{Diameter: 10}

	cd.Register(ents[0], components.Position{X: 30, Y: 30}, body)
	cd.Register(ents[1], components.Position{X: 40, Y: 40}, body)
	cd.Register(ents[2], components.Position{X: 470, Y: 470}, body)
	cd.Register(ents[3], components.Position{X: 250, Y: 250}, body) // root, pairs with everyone

	// (0,1) share a bucket, plus root against the other three
	if got := cd.CandidatePairs(); got != 4 {
		t.Errorf("expected 4 candidate pairs, got %d", got)
	}
}
