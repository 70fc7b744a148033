package room

import (
	"math"

	"github.com/pkg/errors"
	lin "github.com/sgreben/piecewiselinear"
)

// ScanSample is the outcome of tracing the ray at one launch angle.
type ScanSample struct {
	Angle float64 `json:"angle"`
	PathStats
}

type ScanResult struct {
	Samples []ScanSample
	length  lin.Function
}

// LengthAt interpolates the path length between scanned angles.
func (s ScanResult) LengthAt(angle float64) float64 {
	return s.length.At(angle)
}

// AimAngles lists the scanned angles whose path reached the aim.
func (s ScanResult) AimAngles() []float64 {
	var angles []float64
	for _, sample := range s.Samples {
		if sample.HitAim {
			angles = append(angles, sample.Angle)
		}
	}
	return angles
}

// ScanAngles traces the ray for samples evenly spaced launch angles covering
// [MinRayAngle, MaxRayAngle]. The ray keeps its anchor, and its angle is
// restored before returning.
func (r *Room) ScanAngles(samples int) (result ScanResult, err error) {
	if r.ray == nil {
		return ScanResult{}, ErrNoRay
	}
	if samples < 2 {
		samples = 2
	}

	prev := r.ray.angle
	defer func() {
		if restoreErr := r.ray.setAngle(prev); restoreErr != nil && err == nil {
			result, err = ScanResult{}, errors.Wrap(restoreErr, "restoring ray angle")
		}
	}()

	result = ScanResult{Samples: make([]ScanSample, 0, samples)}
	angles := lin.Span(MinRayAngle, MaxRayAngle, samples)
	lengths := make([]float64, 0, samples)
	for i, angle := range angles {
		// Span accumulates rounding error, which can push the ends outside
		// the valid range
		angle = math.Min(math.Max(angle, MinRayAngle), MaxRayAngle)
		angles[i] = angle
		if err := r.ray.setAngle(angle); err != nil {
			return ScanResult{}, err
		}
		stats := StatsOf(r.ray.segments)
		result.Samples = append(result.Samples, ScanSample{Angle: angle, PathStats: stats})
		lengths = append(lengths, stats.Length)
	}
	result.length = lin.Function{X: angles, Y: lengths}
	return result, nil
}
