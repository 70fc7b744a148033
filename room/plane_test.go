package room

import (
	"fmt"
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTri(v1, v2, v3 pt.Vector) *pt.Triangle {
	return pt.NewTriangle(v1, v2, v3, pt.Vector{}, pt.Vector{}, pt.Vector{}, pt.Material{})
}

func TestIntersectSegment(t *testing.T) {
	assert := assert.New(t)
	p := MakePlane(V(0, 0, 0), V(0, 1, 0))

	v, ok := p.intersectSegment(V(0, 2, 0), V(0, -1, 0))
	assert.True(ok)
	assert.Less(math.Abs(V(0, 0, 0).Sub(v).Length()), 0.01)

	_, ok = p.intersectSegment(V(0, 2, 0), V(1, 2, 0))
	assert.False(ok)
}

func TestIntersectTriangle(t *testing.T) {
	assert := assert.New(t)
	intersects := func(plane Plane, want1 pt.Vector, want2 pt.Vector, tri *pt.Triangle) {
		v1, v2, ok := plane.IntersectTriangle(tri)
		msg := fmt.Sprintf(`
			Expected vertices {%f, %f, %f}, {%f, %f, %f}
			Got vertices      {%f, %f, %f}, {%f, %f, %f}`, want1.X, want1.Y, want1.Z, want2.X, want2.Y, want2.Z, v1.X, v1.Y, v1.Z, v2.X, v2.Y, v2.Z)
		assert.True(ok)
		assert.Less(math.Abs(want1.Sub(v1).Length()), 0.01, msg)
		assert.Less(math.Abs(want2.Sub(v2).Length()), 0.01, msg)
	}

	p := MakePlane(V(0, 1, 0), V(0, 1, 0))

	_, _, ok := p.IntersectTriangle(buildTri(V(0, 2, 0), V(15, 2, 0), V(-10, 5, 7)))
	assert.False(ok)
	intersects(p, V(1, 1, 0), V(-1, 1, 0), buildTri(V(0.0, 0, 0), V(2, 2, 0), V(-2, 2, 0)))
	intersects(p, V(1, 1, 0), V(0, 1, 0), buildTri(V(0, 0, 0), V(2, 0, 0), V(0, 2, 0)))
}

func TestHorizontalProjection(t *testing.T) {
	p := MakePlane(V(0, 0, 50), V(0, 0, 1))
	assertVector(t, V2(12, -7), p.Project(V(12, -7, 50)), tolerance)
	assert.Zero(t, p.Project(V(12, -7, 80)).Z)
}

func TestJoinPaths(t *testing.T) {
	// Segment directions are deliberately mixed
	segments := []Path{
		{V2(0, 0), V2(1, 0)},
		{V2(1, 1), V2(1, 0)},
		{V2(0, 1), V2(1, 1)},
		{V2(0, 1), V2(0, 0)},
		{V2(5, 5), V2(6, 6)},
	}
	paths := joinPaths(segments)
	require.Len(t, paths, 2)
	assert.True(t, paths[0].Closed())
	assert.Len(t, paths[0], 5)
	assert.False(t, paths[1].Closed())
}

func TestSliceCube(t *testing.T) {
	m := pt.NewCube(V(0, 0, 0), V(200, 200, 200), pt.Material{}).Mesh()
	paths := MakePlane(V(0, 0, 100), V(0, 0, 1)).SliceMesh(m)
	require.Len(t, paths, 1)
	assert.True(t, paths[0].Closed())
	for _, v := range paths[0] {
		assert.InDelta(t, 100, v.Z, tolerance)
	}
}

func TestFromMesh(t *testing.T) {
	assert := assert.New(t)
	m := pt.NewCube(V(0, 0, 0), V(200, 200, 200), pt.Material{}).Mesh()

	r, err := FromMesh(m, ImportOptions{Height: 100, Scale: 0.5})
	require.NoError(t, err)
	assert.True(r.IsClosed())
	require.Len(t, r.Points(), 4)

	XMin, XMax, YMin, YMax := r.BoundingBox()
	assert.InDelta(0, XMin, tolerance)
	assert.InDelta(100, XMax, tolerance)
	assert.InDelta(0, YMin, tolerance)
	assert.InDelta(100, YMax, tolerance)

	// Every wall faces the middle of the room
	for _, w := range r.Walls() {
		mid := w.PointByT(0.5)
		assert.Greater(w.Normal(mid).Dot(V2(50, 50).Sub(mid)), 0.0, "wall %d", w.Index())
	}

	_, err = FromMesh(m, ImportOptions{Height: 500})
	assert.ErrorIs(err, ErrInvalidFormat)
}

func TestFromOutline(t *testing.T) {
	// Clockwise, with a repeated point and a collinear one
	outline := []pt.Vector{V2(0, 0), V2(0, 100), V2(0, 100), V2(100, 100), V2(100, 50), V2(100, 0)}
	r, err := FromOutline(outline)
	require.NoError(t, err)
	assert.True(t, r.IsClosed())
	assert.Len(t, r.Points(), 4)
	assert.Greater(t, signedArea(pointCoords(r)), 0.0)

	_, err = FromOutline([]pt.Vector{V2(0, 0), V2(100, 0), V2(50, 80)})
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func pointCoords(r *Room) []pt.Vector {
	var coords []pt.Vector
	for _, p := range r.Points() {
		coords = append(coords, p.Coord())
	}
	return coords
}
