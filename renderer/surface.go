// Package renderer provides drawing surfaces the simulation renders onto.
package renderer

import "math"

// FullCircle is the end angle of a complete arc, in radians.
const FullCircle = 2 * math.Pi

// Surface is a stateless set of 2D drawing primitives in field coordinates.
// Colors are CSS hex strings ("#fff", "#02ab83", "#02ab83ff"); angles are radians.
type Surface interface {
	FillRect(x, y, w, h float64, fill string)
	StrokeRect(x, y, w, h float64, stroke string)
	Arc(x, y, radius, startAngle, endAngle float64, stroke, fill string)
}

// Discard is a Surface that drops every call.
var Discard Surface = discard{}

type discard struct{}

func (discard) FillRect(x, y, w, h float64, fill string)                            {}
func (discard) StrokeRect(x, y, w, h float64, stroke string)                        {}
func (discard) Arc(x, y, radius, startAngle, endAngle float64, stroke, fill string) {}
