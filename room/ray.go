package room

import (
	"github.com/fogleman/pt/pt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	MinRayAngle     = 1
	MaxRayAngle     = 179
	DefaultRayAngle = 90
)

// Anchors closer than this to a wall endpoint count as a corner
const cornerTolerance = 1e-6

// RayStart is the anchor of a ray on a wall.
//
// The anchor is stored as the wall parameter t so that it follows the wall
// when the geometry changes. The launch angle is measured from the wall
// direction: 90 degrees shoots along the normal.
type RayStart struct {
	room     *Room
	wall     *Wall
	t        float64
	start    pt.Vector
	angle    float64
	inverted bool
	segments []RaySegment
}

func validAngle(angle float64) bool {
	return angle >= MinRayAngle && angle <= MaxRayAngle
}

func newRayStart(w *Wall, anchor pt.Vector, angle float64) (*RayStart, error) {
	if !validAngle(angle) {
		return nil, errors.Wrapf(ErrInvalidAngle, "got %v", angle)
	}
	if sameSpot(anchor, w.Start()) || sameSpot(anchor, w.End()) {
		return nil, ErrCantStartInCorner
	}
	t := w.TByPoint(anchor, w.room.params.Precision)
	if t < 0 {
		return nil, errors.Wrapf(ErrNoWallNearby, "(%.1f, %.1f) is not on wall %d", anchor.X, anchor.Y, w.index)
	}
	return &RayStart{
		room:  w.room,
		wall:  w,
		t:     t,
		start: anchor,
		angle: angle,
	}, nil
}

func sameSpot(a, b pt.Vector) bool {
	return scalar.EqualWithinAbs(a.X, b.X, cornerTolerance) && scalar.EqualWithinAbs(a.Y, b.Y, cornerTolerance)
}

func (s *RayStart) Start() pt.Vector {
	return s.start
}

// Angle is the launch angle in degrees.
func (s *RayStart) Angle() float64 {
	return s.angle
}

func (s *RayStart) Wall() *Wall {
	return s.wall
}

func (s *RayStart) T() float64 {
	return s.t
}

func (s *RayStart) Inverted() bool {
	return s.inverted
}

// Segments returns a copy of the current ray path.
func (s *RayStart) Segments() []RaySegment {
	segments := make([]RaySegment, len(s.segments))
	copy(segments, s.segments)
	return segments
}

// Direction is the unit launch direction.
func (s *RayStart) Direction() pt.Vector {
	angle := s.angle
	if s.inverted {
		angle = 180 - angle
	}
	n := s.wall.Normal(s.start)
	return normalize(rotate(n, toRadians(angle-90)))
}

func (s *RayStart) setAngle(angle float64) error {
	if !validAngle(angle) {
		return errors.Wrapf(ErrInvalidAngle, "got %v", angle)
	}
	s.angle = angle
	s.updateRaySegments()
	return nil
}

// InverseT moves the anchor to the mirrored position along its wall.
func (s *RayStart) InverseT() {
	s.t = 1 - s.t
	s.updateParams()
}

// InverseDirection mirrors the launch direction across the wall normal.
func (s *RayStart) InverseDirection() {
	s.inverted = !s.inverted
	s.updateRaySegments()
}

func (s *RayStart) updateParams() {
	s.start = s.wall.PointByT(s.t)
	s.updateRaySegments()
}

func (s *RayStart) updateRaySegments() {
	s.segments = s.room.trace(s.start, s.Direction(), s.wall)
}
