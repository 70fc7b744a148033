package room

import (
	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats/scalar"
)

// Most of this code is taken from https://github.com/fogleman/choppy/tree/master with some modifications

// Cut points are rounded to this many decimal places so that neighbouring
// triangles agree on the points they share.
const snapPlaces = 6

// Plane is a cutting plane with an in-plane basis U, V.
type Plane struct {
	Point  pt.Vector
	Normal pt.Vector
	U, V   pt.Vector
}

// MakePlane builds a plane and its basis. For a horizontal plane U and V are
// the X and Y axes, so Project keeps X and Y as they are.
func MakePlane(point, normal pt.Vector) Plane {
	normal = normal.Normalize()
	u := planeAxis(normal)
	v := normal.Cross(u).Normalize()
	return Plane{point, normal, u, v}
}

func planeAxis(n pt.Vector) pt.Vector {
	if n.X == 0 && n.Y == 0 {
		return V(1, 0, 0)
	}
	return V(-n.Y, n.X, 0).Normalize()
}

// Project returns the coordinates of point in the plane basis, with Z set to
// 0.
func (p Plane) Project(point pt.Vector) pt.Vector {
	d := point.Sub(p.Point)
	return V2(d.Dot(p.U), d.Dot(p.V))
}

type Path []pt.Vector

// Closed reports whether the path ends where it starts.
func (p Path) Closed() bool {
	return len(p) > 3 && p[0] == p[len(p)-1]
}

func snap(v pt.Vector) pt.Vector {
	return V(scalar.Round(v.X, snapPlaces), scalar.Round(v.Y, snapPlaces), scalar.Round(v.Z, snapPlaces))
}

// joinPaths chains two point segments that share an endpoint into longer
// paths. Segment direction is ignored.
func joinPaths(segments []Path) []Path {
	byEnd := make(map[pt.Vector][]int, 2*len(segments))
	for i, s := range segments {
		byEnd[s[0]] = append(byEnd[s[0]], i)
		byEnd[s[1]] = append(byEnd[s[1]], i)
	}
	used := make([]bool, len(segments))

	next := func(v pt.Vector) (pt.Vector, bool) {
		for _, i := range byEnd[v] {
			if used[i] {
				continue
			}
			used[i] = true
			if segments[i][0] == v {
				return segments[i][1], true
			}
			return segments[i][0], true
		}
		return pt.Vector{}, false
	}

	var result []Path
	for i, s := range segments {
		if used[i] {
			continue
		}
		used[i] = true
		path := Path{s[0], s[1]}
		for v, ok := next(s[1]); ok; v, ok = next(v) {
			path = append(path, v)
			if v == path[0] {
				break
			}
		}
		result = append(result, path)
	}
	return result
}

// SliceMesh cuts every triangle of m and joins the cuts into paths.
func (p Plane) SliceMesh(m *pt.Mesh) []Path {
	var paths []Path
	for _, t := range m.Triangles {
		if v1, v2, ok := p.IntersectTriangle(t); ok {
			paths = append(paths, Path{snap(v1), snap(v2)})
		}
	}
	return joinPaths(paths)
}

func (p Plane) intersectSegment(v0, v1 pt.Vector) (pt.Vector, bool) {
	u := v1.Sub(v0)
	w := v0.Sub(p.Point)
	d := p.Normal.Dot(u)
	if d > -1e-9 && d < 1e-9 {
		return pt.Vector{}, false
	}
	n := -p.Normal.Dot(w)
	t := n / d
	if t < 0 || t > 1 {
		return pt.Vector{}, false
	}
	return v0.Add(u.MulScalar(t)), true
}

func (p Plane) IntersectTriangle(t *pt.Triangle) (pt.Vector, pt.Vector, bool) {
	v1, ok1 := p.intersectSegment(t.V1, t.V2)
	v2, ok2 := p.intersectSegment(t.V2, t.V3)
	v3, ok3 := p.intersectSegment(t.V3, t.V1)
	var p1, p2 pt.Vector
	if ok1 && ok2 {
		p1, p2 = v1, v2
	} else if ok1 && ok3 {
		p1, p2 = v1, v3
	} else if ok2 && ok3 {
		p1, p2 = v2, v3
	} else {
		return pt.Vector{}, pt.Vector{}, false
	}
	if p1 == p2 {
		return pt.Vector{}, pt.Vector{}, false
	}
	n := p2.Sub(p1).Cross(p.Normal)
	if n.Dot(t.Normal()) < 0 {
		return p1, p2, true
	}
	return p2, p1, true
}
