package room

import (
	"math"

	"github.com/fogleman/pt/pt"
	"github.com/pkg/errors"
)

const (
	// Minimal distance allowed between two vertices
	MinimalDistance = 20
	MaximumPoints   = 9
	MinimumPoints   = 4

	DefaultRadiusCoef = 50
	DefaultAimRadius  = 20

	// Pick distances used by ClosestWall and ClosestRay
	WallPickDistance = 15
	RayPickDistance  = 20
)

// Room is a polygon of mirror walls with at most one ray and one aim.
//
// The walls form a chain: wall i joins point i to point i+1, and the closing
// wall joins the last point back to point 0. Every mutation recomputes the
// affected wall geometry and then the ray before returning. A Room is not
// safe for concurrent use.
type Room struct {
	points []*Point
	walls  []*Wall
	ray    *RayStart
	aim    *AimArea
	params TraceParams
}

// New returns an empty room traced with DefaultTraceParams.
func New() *Room {
	return &Room{params: DefaultTraceParams()}
}

func (r *Room) TraceParams() TraceParams {
	return r.params
}

func (r *Room) SetTraceParams(params TraceParams) {
	r.params = params
	r.updateRay()
}

// IsClosed reports whether the wall chain loops back to its first point.
func (r *Room) IsClosed() bool {
	if len(r.walls) < 3 {
		return false
	}
	return r.walls[0].start == r.walls[len(r.walls)-1].end
}

// AddWallLine appends a vertex at coord joined to the previous vertex by a
// straight wall. See addWall for the construction rules.
func (r *Room) AddWallLine(coord pt.Vector) (*Wall, error) {
	return r.addWall(coord, Line, 0)
}

// AddWallRound is AddWallLine for an arc wall with the given curvature.
func (r *Room) AddWallRound(coord pt.Vector, radiusCoef float64) (*Wall, error) {
	if !validRadiusCoef(radiusCoef) {
		return nil, errors.Wrapf(ErrInvalidRadiusCoef, "got %v", radiusCoef)
	}
	return r.addWall(coord, Round, radiusCoef)
}

// addWall places a new vertex. A coordinate close to the first vertex of a
// room with more than two points closes the room instead, and returns the
// closing wall. The very first vertex has no wall and returns nil. The new
// wall may not cross an existing one.
func (r *Room) addWall(coord pt.Vector, kind WallKind, radiusCoef float64) (*Wall, error) {
	if r.IsClosed() {
		return nil, ErrRoomClosed
	}
	coord = V2(coord.X, coord.Y)

	n := len(r.points)
	closing := false
	for i, p := range r.points {
		if distance(p.coord, coord) >= MinimalDistance {
			continue
		}
		if i == 0 && n > 2 {
			if n < MinimumPoints {
				return nil, ErrTooFewPoints
			}
			closing = true
			break
		}
		return nil, errors.Wrapf(ErrPointsAreTooClose, "(%.1f, %.1f) is near point %d", coord.X, coord.Y, i)
	}

	if !closing && n >= MaximumPoints {
		return nil, ErrTooManyPoints
	}

	if n > 0 {
		end := coord
		if closing {
			end = r.points[0].coord
		}
		if i, crossed := r.crossedWall(r.points[n-1].coord, end); crossed {
			return nil, errors.Wrapf(ErrWallsCollision, "new wall crosses wall %d", i)
		}
	}

	if closing {
		w := r.link(n-1, 0, kind, radiusCoef)
		r.updateRay()
		return w, nil
	}

	r.points = append(r.points, &Point{index: n, coord: coord})
	if n == 0 {
		return nil, nil
	}
	w := r.link(n-1, n, kind, radiusCoef)
	r.updateRay()
	return w, nil
}

// crossedWall returns the index of the first wall whose chord crosses the
// segment a→b anywhere but at a vertex the two share.
func (r *Room) crossedWall(a, b pt.Vector) (int, bool) {
	for _, w := range r.walls {
		hit, ok := intersectLines(a, b, w.a, w.b, -1)
		if !ok {
			continue
		}
		if sharedVertex(hit, a, w) || sharedVertex(hit, b, w) {
			continue
		}
		return w.index, true
	}
	return -1, false
}

// sharedVertex reports whether hit sits on v and v is an endpoint of w.
func sharedVertex(hit, v pt.Vector, w *Wall) bool {
	if !sameSpot(hit, v) {
		return false
	}
	return sameSpot(v, w.a) || sameSpot(v, w.b)
}

func (r *Room) link(start, end int, kind WallKind, radiusCoef float64) *Wall {
	w := &Wall{
		room:  r,
		index: len(r.walls),
		kind:  kind,
		start: start,
		end:   end,
	}
	if kind == Round {
		w.arc = arc{radiusCoef: radiusCoef}
	}
	r.walls = append(r.walls, w)
	r.points[start].addWall(w.index)
	r.points[end].addWall(w.index)
	w.updateParams()
	return w
}

// MovePoint moves the vertex with the given index to coord and refreshes
// every incident wall and the ray.
func (r *Room) MovePoint(index int, coord pt.Vector) error {
	if index < 0 || index >= len(r.points) {
		return errors.Wrapf(ErrUnknownPoint, "index %d", index)
	}
	coord = V2(coord.X, coord.Y)
	for i, p := range r.points {
		if i != index && distance(p.coord, coord) < MinimalDistance {
			return errors.Wrapf(ErrPointsAreTooClose, "(%.1f, %.1f) is near point %d", coord.X, coord.Y, i)
		}
	}

	p := r.points[index]
	p.coord = coord
	p.updateWalls(r)
	r.updateRay()
	return nil
}

// ChangeWallType swaps a wall between Line and Round in place. The wall keeps
// its endpoints and its position in the chain; a new Round wall uses
// DefaultRadiusCoef.
func (r *Room) ChangeWallType(w *Wall) (*Wall, error) {
	if !r.owns(w) {
		return nil, ErrUnknownWall
	}
	switch w.kind {
	case Line:
		w.kind = Round
		w.arc = arc{radiusCoef: DefaultRadiusCoef}
	case Round:
		w.kind = Line
		w.arc = arc{}
	}
	w.updateParams()
	r.updateRay()
	return w, nil
}

// ToggleOrient flips an arc between concave and convex.
//
// The ray anchor keeps its parameter t, which is measured from the wall's
// start point in both orientations, so it stays at the mirrored spot.
func (r *Room) ToggleOrient(w *Wall) error {
	if err := r.checkRound(w); err != nil {
		return err
	}
	w.arc.orient = !w.arc.orient
	w.updateParams()
	r.updateRay()
	return nil
}

// ToggleArcSize switches an arc between its minor and major arc.
func (r *Room) ToggleArcSize(w *Wall) error {
	if err := r.checkRound(w); err != nil {
		return err
	}
	w.arc.isBig = !w.arc.isBig
	w.updateParams()
	r.updateRay()
	return nil
}

func (r *Room) SetRadiusCoef(w *Wall, radiusCoef float64) error {
	if err := r.checkRound(w); err != nil {
		return err
	}
	if !validRadiusCoef(radiusCoef) {
		return errors.Wrapf(ErrInvalidRadiusCoef, "got %v", radiusCoef)
	}
	w.arc.radiusCoef = radiusCoef
	w.updateParams()
	r.updateRay()
	return nil
}

func (r *Room) checkRound(w *Wall) error {
	if !r.owns(w) {
		return ErrUnknownWall
	}
	if w.kind != Round {
		return errors.Wrapf(ErrNotRound, "wall %d", w.index)
	}
	return nil
}

func (r *Room) owns(w *Wall) bool {
	return w != nil && w.room == r && w.index < len(r.walls) && r.walls[w.index] == w
}

// AddRay anchors a new ray on the wall nearest to p, launched at
// DefaultRayAngle. Any previous ray is discarded.
func (r *Room) AddRay(p pt.Vector) (*RayStart, error) {
	return r.addRay(p, DefaultRayAngle, false)
}

func (r *Room) addRay(p pt.Vector, angle float64, inverted bool) (*RayStart, error) {
	w := r.ClosestWall(p)
	if w == nil {
		return nil, errors.Wrapf(ErrNoWallNearby, "(%.1f, %.1f)", p.X, p.Y)
	}
	ray, err := newRayStart(w, w.ClosestPoint(p), angle)
	if err != nil {
		return nil, err
	}
	ray.inverted = inverted
	r.ray = ray
	ray.updateRaySegments()
	return ray, nil
}

func (r *Room) SetRayAngle(angle float64) error {
	if r.ray == nil {
		return ErrNoRay
	}
	return r.ray.setAngle(angle)
}

// InverseRayDirection mirrors the ray launch direction across the wall
// normal.
func (r *Room) InverseRayDirection() error {
	if r.ray == nil {
		return ErrNoRay
	}
	r.ray.InverseDirection()
	return nil
}

func (r *Room) RemoveRay() {
	r.ray = nil
}

// AddAim places the target circle, replacing any previous one.
func (r *Room) AddAim(center pt.Vector, radius float64) (*AimArea, error) {
	if !(radius > 0) {
		return nil, errors.Wrapf(ErrInvalidAimRadius, "got %v", radius)
	}
	r.aim = &AimArea{Center: V2(center.X, center.Y), Radius: radius}
	r.updateRay()
	return r.aim, nil
}

func (r *Room) RemoveAim() {
	r.aim = nil
	r.updateRay()
}

// Clear drops every point, wall, the ray and the aim.
func (r *Room) Clear() {
	r.points = nil
	r.walls = nil
	r.ray = nil
	r.aim = nil
}

// ClosestWall returns the wall nearest to p if it is within
// WallPickDistance, nil otherwise.
func (r *Room) ClosestWall(p pt.Vector) *Wall {
	var closest *Wall
	best := math.Inf(1)
	for _, w := range r.walls {
		if d := w.DistanceToWall(p); d < best {
			best = d
			closest = w
		}
	}
	if best > WallPickDistance {
		return nil
	}
	return closest
}

// ClosestRay returns the ray if its anchor is within RayPickDistance of p.
func (r *Room) ClosestRay(p pt.Vector) *RayStart {
	if r.ray == nil || distance(r.ray.start, V2(p.X, p.Y)) > RayPickDistance {
		return nil
	}
	return r.ray
}

// ClosestPoint returns the vertex within MinimalDistance of p, if any.
func (r *Room) ClosestPoint(p pt.Vector) *Point {
	p = V2(p.X, p.Y)
	for _, point := range r.points {
		if distance(point.coord, p) < MinimalDistance {
			return point
		}
	}
	return nil
}

// Walls returns the wall chain in order.
func (r *Room) Walls() []*Wall {
	walls := make([]*Wall, len(r.walls))
	copy(walls, r.walls)
	return walls
}

func (r *Room) Points() []*Point {
	points := make([]*Point, len(r.points))
	copy(points, r.points)
	return points
}

func (r *Room) Wall(index int) (*Wall, error) {
	if index < 0 || index >= len(r.walls) {
		return nil, errors.Wrapf(ErrUnknownWall, "index %d", index)
	}
	return r.walls[index], nil
}

func (r *Room) Ray() *RayStart {
	return r.ray
}

func (r *Room) Aim() *AimArea {
	return r.aim
}

// Segments returns the current ray path, or nil without a ray.
func (r *Room) Segments() []RaySegment {
	if r.ray == nil {
		return nil
	}
	return r.ray.Segments()
}

func (r *Room) updateRay() {
	if r.ray != nil {
		r.ray.updateParams()
	}
}
