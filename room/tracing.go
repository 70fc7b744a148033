package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Denominators below this are treated as parallel lines
const parallelEpsilon = 1e-4

// TraceParams contains parameters to guide tracing
type TraceParams struct {
	// Maximum number of segments in a ray path
	MaxDepth int
	// Length of the provisional segment cast from the anchor and from every
	// reflection. Any real hit lies well within it.
	FarDistance float64
	// Hits closer than this to the start of a segment are ignored so that a
	// reflected ray does not hit the wall it just left
	MinHitDistance float64
	// Tolerance used when mapping points onto walls
	Precision float64
}

func DefaultTraceParams() TraceParams {
	return TraceParams{
		MaxDepth:       10,
		FarDistance:    10000,
		MinHitDistance: 0.1,
		Precision:      0.1,
	}
}

// RaySegment is one leg of a ray path, between two reflections.
type RaySegment struct {
	Start pt.Vector
	// Provisional far point of the segment
	End pt.Vector
	// Position in the path, starting at 1
	Depth int

	HasHit   bool
	HitPoint pt.Vector
	// Wall that was hit, nil when the segment escaped or hit the aim
	HitWall *Wall
	HitAim  bool
}

// Terminus is where the segment stops: its hit point or its far end.
func (s RaySegment) Terminus() pt.Vector {
	if s.HasHit {
		return s.HitPoint
	}
	return s.End
}

func (s RaySegment) Length() float64 {
	return distance(s.Start, s.Terminus())
}

// Direction is the unit direction of the segment.
func (s RaySegment) Direction() pt.Vector {
	return normalize(s.End.Sub(s.Start))
}

// trace builds the ray path from start in direction dir. origin is the wall
// the ray leaves from.
//
// The path ends when a segment escapes, reaches the aim, or the path holds
// params.MaxDepth segments.
func (r *Room) trace(start, dir pt.Vector, origin *Wall) []RaySegment {
	maxDepth := r.params.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	segments := make([]RaySegment, 0, maxDepth)

	for depth := 1; depth <= maxDepth; depth++ {
		segment := RaySegment{
			Start: start,
			End:   start.Add(dir.MulScalar(r.params.FarDistance)),
			Depth: depth,
		}
		r.findIntersection(&segment, origin)
		segments = append(segments, segment)
		if !segment.HasHit || segment.HitAim {
			break
		}

		normal := segment.HitWall.Normal(segment.HitPoint)
		incident := normalize(segment.HitPoint.Sub(segment.Start))
		reflected := reflect(incident, normal)
		verifyReflectionLaw(incident, normal, reflected)

		start, dir, origin = segment.HitPoint, reflected, segment.HitWall
	}
	return segments
}

// findIntersection records on s the closest thing it runs into: the aim or a
// wall.
func (r *Room) findIntersection(s *RaySegment, origin *Wall) {
	floor := r.params.MinHitDistance
	minDist := math.Inf(1)

	if r.aim != nil {
		if r.aim.ContainsPoint(s.Start) {
			s.HasHit = true
			s.HitAim = true
			s.HitPoint = s.Start
			return
		}
		if hit, ok := r.aim.intersect(s.Start, s.End, floor); ok {
			minDist = distance(s.Start, hit)
			s.HasHit = true
			s.HitAim = true
			s.HitPoint = hit
		}
	}

	for _, w := range r.walls {
		// A ray cannot meet the flat wall it leaves from again
		if w == origin && w.kind == Line {
			continue
		}
		hit, ok := w.intersect(s.Start, s.End, floor)
		if !ok {
			continue
		}
		if d := distance(s.Start, hit); d < minDist {
			minDist = d
			s.HasHit = true
			s.HitAim = false
			s.HitPoint = hit
			s.HitWall = w
		}
	}
	if s.HitAim {
		s.HitWall = nil
	}
}
