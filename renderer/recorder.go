package renderer

import "fmt"

// Op is the kind of a recorded draw call.
type Op uint8

const (
	OpFillRect Op = iota
	OpStrokeRect
	OpArc
)

func (o Op) String() string {
	switch o {
	case OpFillRect:
		return "fillRect"
	case OpStrokeRect:
		return "strokeRect"
	case OpArc:
		return "arc"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Call is one recorded draw call. Rect calls leave the arc fields zero.
type Call struct {
	Op         Op
	X, Y       float64
	W, H       float64
	Radius     float64
	Start, End float64
	Stroke     string
	Fill       string
}

// Recorder is a Surface that records calls instead of drawing them.
type Recorder struct {
	Calls []Call
}

// FillRect records a filled rectangle.
func (r *Recorder) FillRect(x, y, w, h float64, fill string) {
	r.Calls = append(r.Calls, Call{Op: OpFillRect, X: x, Y: y, W: w, H: h, Fill: fill})
}

// StrokeRect records a rectangle outline.
func (r *Recorder) StrokeRect(x, y, w, h float64, stroke string) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeRect, X: x, Y: y, W: w, H: h, Stroke: stroke})
}

// Arc records a circle sector.
func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, stroke, fill string) {
	r.Calls = append(r.Calls, Call{
		Op: OpArc, X: x, Y: y, Radius: radius,
		Start: startAngle, End: endAngle,
		Stroke: stroke, Fill: fill,
	})
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
