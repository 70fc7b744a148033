package room

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fogleman/pt/pt"
	"github.com/pkg/errors"
)

// JSON schema types
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WallJSON struct {
	Type string `json:"type"`
	// Required for round walls
	RadiusCoef *float64 `json:"radiusCoef,omitempty"`
	Orient     bool     `json:"orient,omitempty"`
	Big        bool     `json:"big,omitempty"`
}

type RayStartJSON struct {
	// Launch angle in degrees
	Angle    float64   `json:"angle"`
	Start    PointJSON `json:"start"`
	Inverted bool      `json:"inverted"`
}

type AimJSON struct {
	Center PointJSON `json:"center"`
	Radius float64   `json:"radius"`
}

// RoomJSON is the persisted layout of a room. Wall i joins point i to point
// i+1. When there are as many walls as points the last wall closes the room
// back to point 0.
type RoomJSON struct {
	Points   []PointJSON   `json:"points"`
	Walls    []WallJSON    `json:"walls"`
	RayStart *RayStartJSON `json:"rayStart,omitempty"`
	Aim      *AimJSON      `json:"aim,omitempty"`
}

type SegmentJSON struct {
	Depth int       `json:"depth"`
	Start PointJSON `json:"start"`
	End   PointJSON `json:"end"`
	// Set when the segment ended on a wall or on the aim
	Hit  *PointJSON `json:"hit,omitempty"`
	Wall *int       `json:"wall,omitempty"`
	Aim  bool       `json:"aim,omitempty"`
}

func vectorToJSON(v pt.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y}
}

func (p PointJSON) vector() pt.Vector {
	return V2(p.X, p.Y)
}

// ToJSON captures the persistent state of the room.
func (r *Room) ToJSON() RoomJSON {
	doc := RoomJSON{
		Points: make([]PointJSON, 0, len(r.points)),
		Walls:  make([]WallJSON, 0, len(r.walls)),
	}
	for _, p := range r.points {
		doc.Points = append(doc.Points, vectorToJSON(p.coord))
	}
	for _, w := range r.walls {
		wall := WallJSON{Type: w.kind.String()}
		if w.kind == Round {
			coef := w.arc.radiusCoef
			wall.RadiusCoef = &coef
			wall.Orient = w.arc.orient
			wall.Big = w.arc.isBig
		}
		doc.Walls = append(doc.Walls, wall)
	}
	if r.ray != nil {
		doc.RayStart = &RayStartJSON{
			Angle:    r.ray.angle,
			Start:    vectorToJSON(r.ray.start),
			Inverted: r.ray.inverted,
		}
	}
	if r.aim != nil {
		doc.Aim = &AimJSON{
			Center: vectorToJSON(r.aim.Center),
			Radius: r.aim.Radius,
		}
	}
	return doc
}

func (r *Room) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToJSON())
}

// FromJSON decodes a room saved by MarshalJSON or Save.
func FromJSON(data []byte) (*Room, error) {
	var doc RoomJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, err.Error())
	}
	return FromRoomJSON(doc)
}

// FromRoomJSON rebuilds a room by replaying its construction, so every room
// rule is checked again. Malformed documents return ErrInvalidFormat;
// documents describing an impossible room return the construction error.
func FromRoomJSON(doc RoomJSON) (*Room, error) {
	if doc.Points == nil || doc.Walls == nil {
		return nil, errors.Wrap(ErrInvalidFormat, "points and walls are required")
	}
	np, nw := len(doc.Points), len(doc.Walls)
	if np == 0 && nw > 0 || np > 0 && nw != np-1 && nw != np {
		return nil, errors.Wrapf(ErrInvalidFormat, "%d walls cannot join %d points", nw, np)
	}
	for i, w := range doc.Walls {
		if err := w.validate(); err != nil {
			return nil, errors.Wrapf(err, "wall %d", i)
		}
	}

	r := New()
	for i, p := range doc.Points {
		if i == 0 {
			if _, err := r.AddWallLine(p.vector()); err != nil {
				return nil, errors.Wrapf(err, "point %d", i)
			}
			continue
		}
		if err := r.replayWall(doc.Walls[i-1], p.vector()); err != nil {
			return nil, errors.Wrapf(err, "wall %d", i-1)
		}
	}
	if np > 0 && nw == np {
		if err := r.replayWall(doc.Walls[nw-1], doc.Points[0].vector()); err != nil {
			return nil, errors.Wrapf(err, "closing wall %d", nw-1)
		}
	}

	if doc.Aim != nil {
		if _, err := r.AddAim(doc.Aim.Center.vector(), doc.Aim.Radius); err != nil {
			return nil, errors.Wrap(err, "aim")
		}
	}
	if doc.RayStart != nil {
		if _, err := r.addRay(doc.RayStart.Start.vector(), doc.RayStart.Angle, doc.RayStart.Inverted); err != nil {
			return nil, errors.Wrap(err, "ray")
		}
	}
	return r, nil
}

func (w WallJSON) validate() error {
	switch w.Type {
	case "line":
		if w.Orient || w.Big {
			return errors.Wrap(ErrInvalidFormat, "orient and big only apply to round walls")
		}
	case "round":
		if w.RadiusCoef == nil {
			return errors.Wrap(ErrInvalidFormat, "round wall without radiusCoef")
		}
	default:
		return errors.Wrapf(ErrInvalidFormat, "unknown wall type %q", w.Type)
	}
	return nil
}

func (r *Room) replayWall(w WallJSON, coord pt.Vector) error {
	if w.Type == "line" {
		_, err := r.AddWallLine(coord)
		return err
	}
	wall, err := r.AddWallRound(coord, *w.RadiusCoef)
	if err != nil {
		return err
	}
	if w.Orient {
		if err := r.ToggleOrient(wall); err != nil {
			return err
		}
	}
	if w.Big {
		return r.ToggleArcSize(wall)
	}
	return nil
}

// SegmentsToJSON converts a ray path for export.
func SegmentsToJSON(segments []RaySegment) []SegmentJSON {
	out := make([]SegmentJSON, 0, len(segments))
	for _, s := range segments {
		seg := SegmentJSON{
			Depth: s.Depth,
			Start: vectorToJSON(s.Start),
			End:   vectorToJSON(s.End),
			Aim:   s.HitAim,
		}
		if s.HasHit {
			hit := vectorToJSON(s.HitPoint)
			seg.Hit = &hit
		}
		if s.HitWall != nil {
			index := s.HitWall.index
			seg.Wall = &index
		}
		out = append(out, seg)
	}
	return out
}

// Load reads a room from a JSON file.
func Load(filename string) (*Room, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading room: %w", err)
	}
	return FromJSON(data)
}

// Save writes the room to a JSON file.
func (r *Room) Save(filename string) error {
	data, err := json.MarshalIndent(r.ToJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling room: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
