package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// WallKind selects the shape of a mirror wall.
type WallKind int

const (
	Line WallKind = iota
	Round
)

func (k WallKind) String() string {
	switch k {
	case Line:
		return "line"
	case Round:
		return "round"
	}
	return "unknown"
}

// Wall is a mirror edge between two points of a room.
//
// A wall is either a straight Line or a Round circular arc. All derived
// geometry is cached on the wall and recomputed by updateParams whenever an
// endpoint moves or a shape parameter changes.
type Wall struct {
	room  *Room
	index int
	kind  WallKind

	// Indices of the endpoints in room.points
	start, end int

	// Cached endpoint coordinates
	a, b pt.Vector

	// Only meaningful for Round walls
	arc arc

	revision int
}

func (w *Wall) Kind() WallKind {
	return w.kind
}

// Index is the position of the wall in its room's wall chain.
func (w *Wall) Index() int {
	return w.index
}

func (w *Wall) Start() pt.Vector {
	return w.a
}

func (w *Wall) End() pt.Vector {
	return w.b
}

func (w *Wall) StartIndex() int {
	return w.start
}

func (w *Wall) EndIndex() int {
	return w.end
}

// Revision counts how many times the wall geometry has been recomputed.
func (w *Wall) Revision() int {
	return w.revision
}

func (w *Wall) RadiusCoef() float64 {
	return w.arc.radiusCoef
}

func (w *Wall) Radius() float64 {
	return w.arc.radius
}

func (w *Wall) Chord() float64 {
	return distance(w.a, w.b)
}

func (w *Wall) Center() pt.Vector {
	return w.arc.center
}

// StartAngle and EndAngle bound the arc counter-clockwise, in degrees.
// StartAngle is in [0, 360) and EndAngle is never smaller than StartAngle.
func (w *Wall) StartAngle() float64 {
	return w.arc.startAngle
}

func (w *Wall) EndAngle() float64 {
	return w.arc.endAngle
}

func (w *Wall) Orient() bool {
	return w.arc.orient
}

func (w *Wall) IsBig() bool {
	return w.arc.isBig
}

func (w *Wall) updateParams() {
	w.a = w.room.points[w.start].coord
	w.b = w.room.points[w.end].coord
	if w.kind == Round {
		w.arc.update(w.a, w.b)
	}
	w.revision++
}

// ClosestPoint returns the point on the wall nearest to p.
func (w *Wall) ClosestPoint(p pt.Vector) pt.Vector {
	switch w.kind {
	case Round:
		return w.arc.closestPoint(p, w.a, w.b)
	default:
		ab := w.b.Sub(w.a)
		l2 := ab.Dot(ab)
		if l2 == 0 {
			return w.a
		}
		t := clamp(p.Sub(w.a).Dot(ab)/l2, 0, 1)
		return w.a.Add(ab.MulScalar(t))
	}
}

func (w *Wall) DistanceToWall(p pt.Vector) float64 {
	return distance(p, w.ClosestPoint(p))
}

// Normal returns the unit normal of the wall at p.
//
// A Line normal is the edge vector turned counter-clockwise, so walls of a
// counter-clockwise room face inwards. A Round normal points from p to the
// arc center.
func (w *Wall) Normal(p pt.Vector) pt.Vector {
	switch w.kind {
	case Round:
		n := normalize(w.arc.center.Sub(p))
		if n.Length() == 0 {
			return normalize(perpendicular(w.b.Sub(w.a)))
		}
		return n
	default:
		return normalize(perpendicular(w.b.Sub(w.a)))
	}
}

// TByPoint maps p to the wall parameter t in [0, 1], where 0 is the start
// point and 1 is the end point. It returns -1 when p is further than
// precision from the wall.
func (w *Wall) TByPoint(p pt.Vector, precision float64) float64 {
	switch w.kind {
	case Round:
		return w.arc.tByPoint(p, precision)
	default:
		ab := w.b.Sub(w.a)
		length := ab.Length()
		if length == 0 {
			return -1
		}
		t := p.Sub(w.a).Dot(ab) / (length * length)
		slack := precision / length
		if t < -slack || t > 1+slack {
			return -1
		}
		if distance(p, w.a.Add(ab.MulScalar(t))) > precision {
			return -1
		}
		return clamp(t, 0, 1)
	}
}

// PointByT is the inverse of TByPoint. t is clamped to [0, 1].
func (w *Wall) PointByT(t float64) pt.Vector {
	t = clamp(t, 0, 1)
	switch w.kind {
	case Round:
		return w.arc.pointByT(t)
	default:
		return w.a.Add(w.b.Sub(w.a).MulScalar(t))
	}
}

// intersect returns the hit nearest to start of the segment start→end
// with this wall, ignoring hits closer than floor.
func (w *Wall) intersect(start, end pt.Vector, floor float64) (pt.Vector, bool) {
	switch w.kind {
	case Round:
		return w.arc.intersect(start, end, floor)
	default:
		return intersectLines(start, end, w.a, w.b, floor)
	}
}

// intersectLines solves the two segment intersection with Cramer's rule.
func intersectLines(start, end, wallStart, wallEnd pt.Vector, floor float64) (pt.Vector, bool) {
	denominator := (start.X-end.X)*(wallStart.Y-wallEnd.Y) - (start.Y-end.Y)*(wallStart.X-wallEnd.X)
	if math.Abs(denominator) < parallelEpsilon {
		return pt.Vector{}, false
	}

	t := ((start.X-wallStart.X)*(wallStart.Y-wallEnd.Y) - (start.Y-wallStart.Y)*(wallStart.X-wallEnd.X)) / denominator
	u := -((start.X-end.X)*(start.Y-wallStart.Y) - (start.Y-end.Y)*(start.X-wallStart.X)) / denominator

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return pt.Vector{}, false
	}
	hit := start.Add(end.Sub(start).MulScalar(t))
	if distance(start, hit) <= floor {
		return pt.Vector{}, false
	}
	return hit, true
}

// segmentCircle returns the parameters t in [0, 1], ascending, at which the
// segment start→end crosses the circle.
func segmentCircle(start, end, center pt.Vector, radius float64) []float64 {
	d := end.Sub(start)
	f := start.Sub(center)

	a := d.Dot(d)
	if a == 0 {
		return nil
	}
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	disc = math.Sqrt(disc)
	roots := make([]float64, 0, 2)
	for _, t := range []float64{(-b - disc) / (2 * a), (-b + disc) / (2 * a)} {
		if t >= 0 && t <= 1 {
			roots = append(roots, t)
		}
	}
	return roots
}
