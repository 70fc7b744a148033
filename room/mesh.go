package room

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
	"github.com/hpinc/go3mf"
	"github.com/pkg/errors"
)

// ImportOptions control how a 3D model becomes a room outline.
type ImportOptions struct {
	// Height of the horizontal cut, in model units
	Height float64
	// Multiplies every outline coordinate. Zero means 1.
	Scale float64
}

// NewFrom3MF slices the model stored in a 3MF file at opts.Height and builds a
// room of Line walls from the largest closed outline.
func NewFrom3MF(filepath string, opts ImportOptions) (*Room, error) {
	mesh, err := loadMesh(filepath)
	if err != nil {
		return nil, err
	}
	return FromMesh(mesh, opts)
}

func loadMesh(filepath string) (*pt.Mesh, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening 3mf file: %w", err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("error decoding 3mf file: %w", err)
	}

	triangles := []*pt.Triangle{}
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		vertices := obj.Mesh.Vertices.Vertex
		for _, t := range obj.Mesh.Triangles.Triangle {
			tri := &pt.Triangle{
				V1: toVector(vertices[t.V1]),
				V2: toVector(vertices[t.V2]),
				V3: toVector(vertices[t.V3]),
			}
			tri.FixNormals()
			triangles = append(triangles, tri)
		}
	}
	if len(triangles) == 0 {
		return nil, errors.Wrapf(ErrInvalidFormat, "%s has no mesh", filepath)
	}
	return pt.NewMesh(triangles), nil
}

func toVector(v go3mf.Point3D) pt.Vector {
	return V(float64(v.X()), float64(v.Y()), float64(v.Z()))
}

// FromMesh cuts m with a horizontal plane and builds a room from the largest
// closed outline.
func FromMesh(m *pt.Mesh, opts ImportOptions) (*Room, error) {
	plane := MakePlane(V(0, 0, opts.Height), V(0, 0, 1))

	var outline []pt.Vector
	bestArea := 0.0
	for _, path := range plane.SliceMesh(m) {
		if !path.Closed() {
			continue
		}
		loop := make([]pt.Vector, 0, len(path)-1)
		for _, v := range path[:len(path)-1] {
			loop = append(loop, plane.Project(v))
		}
		if area := math.Abs(signedArea(loop)); area > bestArea {
			bestArea = area
			outline = loop
		}
	}
	if outline == nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "no closed outline at height %v", opts.Height)
	}

	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	for i, v := range outline {
		outline[i] = v.MulScalar(scale)
	}
	return FromOutline(outline)
}

// FromOutline builds a closed room of Line walls through the given vertices.
// Collinear and repeated vertices are dropped and the outline is turned
// counter-clockwise so that every wall faces inwards.
func FromOutline(outline []pt.Vector) (*Room, error) {
	outline = simplifyOutline(outline)
	if signedArea(outline) < 0 {
		for i, j := 0, len(outline)-1; i < j; i, j = i+1, j-1 {
			outline[i], outline[j] = outline[j], outline[i]
		}
	}

	r := New()
	for i, v := range outline {
		if _, err := r.AddWallLine(v); err != nil {
			return nil, errors.Wrapf(err, "outline vertex %d", i)
		}
	}
	if len(outline) > 0 {
		if _, err := r.AddWallLine(outline[0]); err != nil {
			return nil, errors.Wrap(err, "closing outline")
		}
	}
	return r, nil
}

// signedArea is the shoelace area, positive for counter-clockwise loops.
func signedArea(loop []pt.Vector) float64 {
	area := 0.0
	for i, a := range loop {
		b := loop[(i+1)%len(loop)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

const collinearEpsilon = 1e-9

func simplifyOutline(outline []pt.Vector) []pt.Vector {
	points := make([]pt.Vector, 0, len(outline))
	for _, v := range outline {
		v = V2(v.X, v.Y)
		if len(points) > 0 && points[len(points)-1] == v {
			continue
		}
		points = append(points, v)
	}
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}

	// Removing a vertex can make its neighbours collinear, so repeat until
	// nothing changes
	for changed := true; changed && len(points) > 3; {
		changed = false
		for i := range points {
			prev := points[(i+len(points)-1)%len(points)]
			next := points[(i+1)%len(points)]
			cross := points[i].Sub(prev).Cross(next.Sub(points[i]))
			scale := distance(prev, points[i]) * distance(points[i], next)
			if scale == 0 || math.Abs(cross.Z) <= collinearEpsilon*scale {
				points = append(points[:i], points[i+1:]...)
				changed = true
				break
			}
		}
	}
	return points
}
