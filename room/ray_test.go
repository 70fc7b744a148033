package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareBounce(t *testing.T) {
	assert := assert.New(t)
	r := square(t)
	require.True(t, r.IsClosed())

	ray, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)
	assert.EqualValues(DefaultRayAngle, ray.Angle())
	assert.InDelta(0.5, ray.T(), tolerance)
	assertVector(t, V2(0, 1), ray.Direction(), tolerance)

	segments := r.Segments()
	require.Len(t, segments, r.TraceParams().MaxDepth)

	for i, s := range segments {
		assert.Equal(i+1, s.Depth)
		assert.True(s.HasHit)
		assert.False(s.HitAim)
		if i%2 == 0 {
			assertVector(t, V2(50, 100), s.HitPoint, tolerance, "segment %d", i)
			assert.Equal(2, s.HitWall.Index())
		} else {
			assertVector(t, V2(50, 0), s.HitPoint, tolerance, "segment %d", i)
			assert.Equal(0, s.HitWall.Index())
		}
		assert.InDelta(100, s.Length(), tolerance)
	}

	// Normal incidence reflects straight back
	assertVector(t, segments[0].Direction().MulScalar(-1), segments[1].Direction(), tolerance)
}

func TestMaxDepth(t *testing.T) {
	// Two facing mirrors keep the ray bouncing forever
	r := square(t)
	_, err := r.AddRay(V2(30, 0))
	require.NoError(t, err)

	for _, depth := range []int{1, 3, 10, 25} {
		params := r.TraceParams()
		params.MaxDepth = depth
		r.SetTraceParams(params)
		assert.Len(t, r.Segments(), depth)
	}
}

func TestAngledRay(t *testing.T) {
	assert := assert.New(t)
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)

	require.NoError(t, r.SetRayAngle(45))
	segments := r.Segments()
	assertVector(t, V2(100, 50), segments[0].HitPoint, tolerance)
	assert.Equal(1, segments[0].HitWall.Index())
	assertVector(t, V2(50, 100), segments[1].HitPoint, tolerance)
	assertVector(t, V2(0, 50), segments[2].HitPoint, tolerance)
	assertVector(t, V2(50, 0), segments[3].HitPoint, tolerance)

	require.NoError(t, r.InverseRayDirection())
	assert.True(r.Ray().Inverted())
	segments = r.Segments()
	assertVector(t, V2(0, 50), segments[0].HitPoint, tolerance)
	assert.Equal(3, segments[0].HitWall.Index())
}

func TestRayAngleValidation(t *testing.T) {
	r := square(t)
	assert.ErrorIs(t, r.SetRayAngle(45), ErrNoRay)
	assert.ErrorIs(t, r.InverseRayDirection(), ErrNoRay)

	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)

	testCases := []struct {
		angle float64
		want  error
	}{
		{0, ErrInvalidAngle},
		{0.5, ErrInvalidAngle},
		{180, ErrInvalidAngle},
		{-90, ErrInvalidAngle},
		{1, nil},
		{179, nil},
		{120, nil},
	}
	for _, tc := range testCases {
		err := r.SetRayAngle(tc.angle)
		if tc.want != nil {
			assert.ErrorIs(t, err, tc.want, "angle %v", tc.angle)
			continue
		}
		assert.NoError(t, err, "angle %v", tc.angle)
		assert.Equal(t, tc.angle, r.Ray().Angle())
	}
	assert.Equal(t, 120.0, r.Ray().Angle(), "rejected angles keep the last valid one")
}

func TestRayErrors(t *testing.T) {
	r := square(t)

	_, err := r.AddRay(V2(0, 0))
	assert.ErrorIs(t, err, ErrCantStartInCorner)
	_, err = r.AddRay(V2(100, 0))
	assert.ErrorIs(t, err, ErrCantStartInCorner)
	assert.Nil(t, r.Ray())

	_, err = r.AddRay(V2(50, 50))
	assert.ErrorIs(t, err, ErrNoWallNearby)

	first, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)
	second, err := r.AddRay(V2(100, 50))
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Same(t, second, r.Ray(), "a new ray replaces the old one")

	r.RemoveRay()
	assert.Nil(t, r.Ray())
	assert.Empty(t, r.Segments())
}

func TestRayFollowsGeometry(t *testing.T) {
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)

	require.NoError(t, r.MovePoint(1, V2(200, 0)))
	assertVector(t, V2(100, 0), r.Ray().Start(), tolerance, "the anchor keeps t")

	require.NoError(t, r.MovePoint(3, V2(0, 50)))
	segments := r.Segments()
	require.NotEmpty(t, segments)
	// The ray still leaves along the normal of the bottom wall
	assertVector(t, V2(0, 1), segments[0].Direction(), tolerance)
}

func TestInverseT(t *testing.T) {
	r := square(t)
	ray, err := r.AddRay(V2(25, 0))
	require.NoError(t, err)
	ray.InverseT()
	assert.InDelta(t, 0.75, ray.T(), tolerance)
	assertVector(t, V2(75, 0), ray.Start(), tolerance)
}

func TestToggleOrientMirrorsAnchor(t *testing.T) {
	w := arcWall(t, 100, false, false)
	before := w.PointByT(0.25)
	ray, err := w.room.AddRay(before)
	require.NoError(t, err)
	anchor := ray.T()

	require.NoError(t, w.room.ToggleOrient(w))
	assert.InDelta(t, anchor, ray.T(), tolerance)
	assertVector(t, V2(before.X, -before.Y), ray.Start(), tolerance, "the anchor sits on the other side of the chord")
}

func TestAim(t *testing.T) {
	assert := assert.New(t)
	r := square(t)
	_, err := r.AddAim(V2(50, 50), 0)
	assert.ErrorIs(err, ErrInvalidAimRadius)

	_, err = r.AddRay(V2(50, 0))
	require.NoError(t, err)
	aim, err := r.AddAim(V2(50, 50), 10)
	require.NoError(t, err)
	assert.Same(aim, r.Aim())

	segments := r.Segments()
	require.Len(t, segments, 1)
	assert.True(segments[0].HitAim)
	assert.Nil(segments[0].HitWall)
	assertVector(t, V2(50, 40), segments[0].HitPoint, tolerance)

	stats := r.Stats()
	assert.True(stats.HitAim)
	assert.Equal(0, stats.Bounces)
	assert.InDelta(40, stats.Length, tolerance)

	// Reached after one bounce
	_, err = r.AddAim(V2(80, 70), 10)
	require.NoError(t, err)
	require.NoError(t, r.SetRayAngle(45))
	segments = r.Segments()
	require.Len(t, segments, 2)
	assert.True(segments[1].HitAim)

	r.RemoveAim()
	assert.Len(r.Segments(), r.TraceParams().MaxDepth)
}

func TestAimContainsStart(t *testing.T) {
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)
	_, err = r.AddAim(V2(50, 5), 10)
	require.NoError(t, err)

	segments := r.Segments()
	require.Len(t, segments, 1)
	assert.True(t, segments[0].HitAim)
	assert.Zero(t, segments[0].Length())
}

func TestAimIntersectsWithRay(t *testing.T) {
	aim := AimArea{Center: V2(0, 0), Radius: 10}
	tt, p, ok := aim.IntersectsWithRay(RaySegment{Start: V2(-20, 0), End: V2(20, 0)})
	require.True(t, ok)
	assert.InDelta(t, 0.25, tt, tolerance)
	assertVector(t, V2(-10, 0), p, tolerance)

	_, _, ok = aim.IntersectsWithRay(RaySegment{Start: V2(-20, 15), End: V2(20, 15)})
	assert.False(t, ok)
}

func TestEscapingRay(t *testing.T) {
	r := buildRoom(t, V2(0, 0), V2(100, 0), V2(100, 100))
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)

	segments := r.Segments()
	require.Len(t, segments, 1)
	assert.False(t, segments[0].HasHit)
	assertVector(t, V2(50, r.TraceParams().FarDistance), segments[0].Terminus(), tolerance)

	stats := r.Stats()
	assert.True(t, stats.Escaped)
	assert.Zero(t, stats.Length)
}

func TestConcaveArcFocus(t *testing.T) {
	// A ray reflected inside a round wall must find the far side of the same
	// wall, not stop at its own starting point.
	r := New()
	_, err := r.AddWallLine(V2(0, 0))
	require.NoError(t, err)
	w, err := r.AddWallRound(V2(100, 0), 100)
	require.NoError(t, err)
	_, err = r.AddWallLine(V2(100, 100))
	require.NoError(t, err)
	_, err = r.AddWallLine(V2(0, 100))
	require.NoError(t, err)
	_, err = r.AddWallLine(V2(0, 0))
	require.NoError(t, err)
	require.True(t, r.IsClosed())

	_, err = r.AddRay(V2(50, 50))
	require.Error(t, err)

	// Launch from the top wall at 60 degrees, down onto the bowl
	_, err = r.AddRay(V2(50, 100))
	require.NoError(t, err)
	require.NoError(t, r.SetRayAngle(60))

	stats := r.Stats()
	assert.Greater(t, stats.WallHits[w.Index()], 0)
	for _, s := range r.Segments() {
		if s.HasHit && !s.HitAim {
			assert.Greater(t, s.Length(), r.TraceParams().MinHitDistance)
		}
	}
}

func TestStatsOf(t *testing.T) {
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)
	params := r.TraceParams()
	params.MaxDepth = 4
	r.SetTraceParams(params)

	stats := r.Stats()
	assert.Equal(t, 4, stats.Segments)
	assert.Equal(t, 4, stats.Bounces)
	assert.InDelta(t, 400, stats.Length, tolerance)
	assert.Equal(t, map[int]int{0: 2, 2: 2}, stats.WallHits)
	assert.False(t, stats.Escaped)
}

func TestScanAngles(t *testing.T) {
	r := square(t)
	_, err := r.ScanAngles(10)
	assert.ErrorIs(t, err, ErrNoRay)

	_, err = r.AddRay(V2(50, 0))
	require.NoError(t, err)
	require.NoError(t, r.SetRayAngle(30))
	_, err = r.AddAim(V2(50, 60), 5)
	require.NoError(t, err)

	result, err := r.ScanAngles(179)
	require.NoError(t, err)
	require.Len(t, result.Samples, 179)
	assert.EqualValues(t, MinRayAngle, result.Samples[0].Angle)
	assert.EqualValues(t, MaxRayAngle, result.Samples[178].Angle)
	assert.Contains(t, result.AimAngles(), 90.0)
	assert.InDelta(t, 55, result.LengthAt(90), tolerance)

	assert.Equal(t, 30.0, r.Ray().Angle(), "the angle is restored")
}

func TestScanAnglesSampleCounts(t *testing.T) {
	r := square(t)
	_, err := r.AddRay(V2(50, 0))
	require.NoError(t, err)

	for _, samples := range []int{2, 11, 12, 23, 45, 72, 89, 143, 1000} {
		t.Run(fmt.Sprint(samples), func(t *testing.T) {
			result, err := r.ScanAngles(samples)
			require.NoError(t, err)
			require.Len(t, result.Samples, samples)
			assert.Equal(t, float64(MinRayAngle), result.Samples[0].Angle)
			assert.Equal(t, float64(MaxRayAngle), result.Samples[samples-1].Angle)
			for _, sample := range result.Samples {
				assert.GreaterOrEqual(t, sample.Angle, float64(MinRayAngle))
				assert.LessOrEqual(t, sample.Angle, float64(MaxRayAngle))
			}
			assert.EqualValues(t, DefaultRayAngle, r.Ray().Angle())
		})
	}
}
