package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pthm-cable/quadlife/game"
	"github.com/pthm-cable/quadlife/systems"
)

var (
	errOutOfBounds = errors.New("body outside field")
	errStaleBucket = errors.New("entity indexed in stale bucket")
	errMissedPair  = errors.New("overlapping pair not reported as candidates")
)

// Check verifies that every body is inside the field, every index bucket
// matches its entity's position and every pair of overlapping bounding
// squares is reported by the broad phase.
func Check(u *game.Universe) error {
	field := u.Field()
	body := u.Body()
	half := body.Half()
	detector := u.Detector()
	index := detector.Index()
	lives := u.Lives()

	for _, l := range lives {
		p := l.Position
		if p.X < half || p.X+half > field.Width || p.Y < half || p.Y+half > field.Height {
			return fmt.Errorf("%v at (%d, %d): %w", l.Entity, p.X, p.Y, errOutOfBounds)
		}
		ul, dr := systems.Corners(p, body)
		if want, got := index.BucketFor(ul, dr), index.Bucket(l.Node); want != got {
			return fmt.Errorf("%v in bucket %d, want %d: %w", l.Entity, got, want, errStaleBucket)
		}
	}

	d := int64(body.Diameter)
	var candidates []systems.Handle
	for i, a := range lives {
		candidates = detector.QueryInto(candidates[:0], a.Node)
		for _, b := range lives[i+1:] {
			if abs(int64(a.Position.X)-int64(b.Position.X)) >= d ||
				abs(int64(a.Position.Y)-int64(b.Position.Y)) >= d {
				continue
			}
			if !slices.Contains(candidates, b.Node) {
				return fmt.Errorf("%v and %v: %w", a.Entity, b.Entity, errMissedPair)
			}
		}
	}
	return nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
