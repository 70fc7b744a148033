package room

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoom(t *testing.T, points ...pt.Vector) *Room {
	t.Helper()
	r := New()
	for _, p := range points {
		_, err := r.AddWallLine(p)
		require.NoError(t, err)
	}
	return r
}

// square is the closed room (0,0) (100,0) (100,100) (0,100).
func square(t *testing.T) *Room {
	t.Helper()
	r := buildRoom(t, V2(0, 0), V2(100, 0), V2(100, 100), V2(0, 100))
	w, err := r.AddWallLine(V2(0, 0))
	require.NoError(t, err)
	require.NotNil(t, w)
	return r
}

func TestConstruction(t *testing.T) {
	assert := assert.New(t)
	r := New()

	w, err := r.AddWallLine(V2(0, 0))
	assert.NoError(err)
	assert.Nil(w, "the first point has no wall")

	for i, p := range []pt.Vector{V2(100, 0), V2(100, 100), V2(0, 100)} {
		w, err := r.AddWallLine(p)
		require.NoError(t, err)
		assert.Equal(i, w.Index())
		assert.Equal(i, w.StartIndex())
		assert.Equal(i+1, w.EndIndex())
		assert.False(r.IsClosed())
	}

	w, err = r.AddWallLine(V2(3, 4))
	require.NoError(t, err)
	assert.Equal(3, w.StartIndex())
	assert.Equal(0, w.EndIndex())
	assert.True(r.IsClosed())
	assert.Len(r.Points(), 4, "closing does not add a point")
	assert.Len(r.Walls(), 4)

	_, err = r.AddWallLine(V2(300, 300))
	assert.ErrorIs(err, ErrRoomClosed)
}

func TestPointIncidence(t *testing.T) {
	r := square(t)
	points := r.Points()
	assert.ElementsMatch(t, []int{0, 3}, points[0].Walls())
	assert.ElementsMatch(t, []int{0, 1}, points[1].Walls())
	assert.ElementsMatch(t, []int{1, 2}, points[2].Walls())
	assert.ElementsMatch(t, []int{2, 3}, points[3].Walls())
}

func TestConstructionErrors(t *testing.T) {
	testCases := []struct {
		name   string
		points []pt.Vector
		next   pt.Vector
		want   error
	}{
		{
			name:   "closing with three points",
			points: []pt.Vector{V2(0, 0), V2(100, 0), V2(100, 100)},
			next:   V2(5, 0),
			want:   ErrTooFewPoints,
		},
		{
			name:   "near a point that is not the first",
			points: []pt.Vector{V2(0, 0), V2(100, 0), V2(100, 100)},
			next:   V2(105, 100),
			want:   ErrPointsAreTooClose,
		},
		{
			name:   "near the first point of a two point room",
			points: []pt.Vector{V2(0, 0), V2(100, 0)},
			next:   V2(5, 5),
			want:   ErrPointsAreTooClose,
		},
		{
			name:   "too many points",
			points: circle(9, 200),
			next:   V2(0, -500),
			want:   ErrTooManyPoints,
		},
		{
			name:   "crossing an earlier wall",
			points: []pt.Vector{V2(0, 0), V2(100, 100), V2(100, 0)},
			next:   V2(0, 100),
			want:   ErrWallsCollision,
		},
		{
			name:   "closing across an earlier wall",
			points: []pt.Vector{V2(0, 0), V2(100, 0), V2(100, 100), V2(150, 50)},
			next:   V2(3, 4),
			want:   ErrWallsCollision,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := buildRoom(t, tc.points...)
			before := r.ToJSON()

			w, err := r.AddWallLine(tc.next)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, w)
			assert.Equal(t, before, r.ToJSON(), "a rejected wall leaves the room untouched")
		})
	}
}

// circle places n points evenly on a circle of the given radius.
func circle(n int, radius float64) []pt.Vector {
	points := make([]pt.Vector, n)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(n+1)
		points[i] = V2(radius*math.Cos(a), radius*math.Sin(a))
	}
	return points
}

func TestRadiusCoefValidation(t *testing.T) {
	testCases := []struct {
		coef float64
		want error
	}{
		{150, ErrInvalidRadiusCoef},
		{-5, ErrInvalidRadiusCoef},
		{50, nil},
		{0, nil},
		{100, nil},
	}
	for _, tc := range testCases {
		r := buildRoom(t, V2(0, 0))
		w, err := r.AddWallRound(V2(100, 0), tc.coef)
		if tc.want != nil {
			assert.ErrorIs(t, err, tc.want, "coef %v", tc.coef)
			assert.Len(t, r.Points(), 1)
			continue
		}
		require.NoError(t, err, "coef %v", tc.coef)
		assert.Equal(t, tc.coef, w.RadiusCoef())
	}
}

func TestMovePoint(t *testing.T) {
	assert := assert.New(t)
	r := square(t)
	walls := r.Walls()
	revisions := make([]int, len(walls))
	for i, w := range walls {
		revisions[i] = w.Revision()
	}

	require.NoError(t, r.MovePoint(2, V2(150, 120)))
	assert.True(r.IsClosed())

	// Point 2 joins walls 1 and 2
	assert.Equal(revisions[0], walls[0].Revision())
	assert.Equal(revisions[1]+1, walls[1].Revision())
	assert.Equal(revisions[2]+1, walls[2].Revision())
	assert.Equal(revisions[3], walls[3].Revision())

	assertVector(t, V2(150, 120), walls[1].End(), tolerance)
	assertVector(t, V2(150, 120), walls[2].Start(), tolerance)
	assertVector(t, V2(150, 120), walls[1].ClosestPoint(V2(200, 200)), tolerance)
	assertVector(t, normalize(perpendicular(V2(50, 120))), walls[1].Normal(V2(125, 60)), tolerance)

	assert.ErrorIs(r.MovePoint(2, V2(5, 100)), ErrPointsAreTooClose)
	assert.ErrorIs(r.MovePoint(7, V2(500, 500)), ErrUnknownPoint)
	assertVector(t, V2(150, 120), r.Points()[2].Coord(), tolerance)
}

func TestChangeWallType(t *testing.T) {
	assert := assert.New(t)
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)

	w, err := r.ChangeWallType(r.Walls()[0])
	require.NoError(t, err)
	assert.Equal(Round, w.Kind())
	assert.Equal(0, w.Index())
	assert.EqualValues(DefaultRadiusCoef, w.RadiusCoef())
	assertVector(t, V2(0, 0), w.Start(), tolerance)
	assertVector(t, V2(100, 0), w.End(), tolerance)
	assert.True(r.IsClosed())

	// The ray keeps its place along the wall
	assert.Same(w, r.Ray().Wall())
	assertVector(t, V2(50, -17.7878), r.Ray().Start(), 1e-3)

	w, err = r.ChangeWallType(w)
	require.NoError(t, err)
	assert.Equal(Line, w.Kind())
	assertVector(t, V2(50, 0), r.Ray().Start(), tolerance)

	_, err = r.ChangeWallType(lineWall(t))
	assert.ErrorIs(err, ErrUnknownWall)
}

func TestRoundOnlyOperations(t *testing.T) {
	r := square(t)
	line := r.Walls()[1]
	assert.ErrorIs(t, r.ToggleOrient(line), ErrNotRound)
	assert.ErrorIs(t, r.ToggleArcSize(line), ErrNotRound)
	assert.ErrorIs(t, r.SetRadiusCoef(line, 20), ErrNotRound)

	round, err := r.ChangeWallType(line)
	require.NoError(t, err)
	assert.ErrorIs(t, r.SetRadiusCoef(round, 150), ErrInvalidRadiusCoef)
	assert.EqualValues(t, DefaultRadiusCoef, round.RadiusCoef())

	before := round.Radius()
	require.NoError(t, r.SetRadiusCoef(round, 90))
	assert.Less(t, round.Radius(), before)
}

func TestQueries(t *testing.T) {
	assert := assert.New(t)
	r := square(t)

	assert.Equal(0, r.ClosestWall(V2(50, 10)).Index())
	assert.Equal(1, r.ClosestWall(V2(110, 50)).Index())
	assert.Nil(r.ClosestWall(V2(50, 50)))

	assert.Equal(2, r.ClosestPoint(V2(95, 110)).Index())
	assert.Nil(r.ClosestPoint(V2(50, 50)))

	assert.Nil(r.ClosestRay(V2(50, 0)))
	ray, err := r.AddRay(V2(50, 5))
	require.NoError(t, err)
	assert.Same(ray, r.ClosestRay(V2(55, 10)))
	assert.Nil(r.ClosestRay(V2(50, 30)))

	w, err := r.Wall(3)
	require.NoError(t, err)
	assert.Equal(3, w.Index())
	_, err = r.Wall(4)
	assert.ErrorIs(err, ErrUnknownWall)
}

func TestClear(t *testing.T) {
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)
	_, err = r.AddAim(V2(50, 50), DefaultAimRadius)
	require.NoError(t, err)

	r.Clear()
	assert.Empty(t, r.Points())
	assert.Empty(t, r.Walls())
	assert.Nil(t, r.Ray())
	assert.Nil(t, r.Aim())
	assert.False(t, r.IsClosed())

	_, err = r.AddWallLine(V2(0, 0))
	assert.NoError(t, err)
}
