package room

import (
	"github.com/fogleman/pt/pt"
)

// AimArea is a circular target. A ray that enters it stops there.
type AimArea struct {
	Center pt.Vector
	Radius float64
}

func (a *AimArea) ContainsPoint(p pt.Vector) bool {
	return distance(a.Center, V2(p.X, p.Y)) <= a.Radius
}

// IntersectsWithRay returns the first point where the segment enters the
// circle, with its segment parameter t.
func (a *AimArea) IntersectsWithRay(s RaySegment) (float64, pt.Vector, bool) {
	roots := segmentCircle(s.Start, s.End, a.Center, a.Radius)
	if len(roots) == 0 {
		return 0, pt.Vector{}, false
	}
	t := roots[0]
	return t, s.Start.Add(s.End.Sub(s.Start).MulScalar(t)), true
}

func (a *AimArea) intersect(start, end pt.Vector, floor float64) (pt.Vector, bool) {
	d := end.Sub(start)
	for _, t := range segmentCircle(start, end, a.Center, a.Radius) {
		hit := start.Add(d.MulScalar(t))
		if distance(start, hit) > floor {
			return hit, true
		}
	}
	return pt.Vector{}, false
}
