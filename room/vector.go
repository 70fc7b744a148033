package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// V2 builds a vector in the room plane (Z is always 0).
func V2(X, Y float64) pt.Vector {
	return pt.Vector{X: X, Y: Y}
}

func distance(a, b pt.Vector) float64 {
	return a.Sub(b).Length()
}

// rotate turns v counter-clockwise by rad radians around the Z axis.
func rotate(v pt.Vector, rad float64) pt.Vector {
	sin, cos := math.Sincos(rad)
	return pt.Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// perpendicular returns v turned by +90 degrees.
func perpendicular(v pt.Vector) pt.Vector {
	return pt.Vector{X: -v.Y, Y: v.X}
}

// normalize is pt.Vector.Normalize without the NaN for zero vectors.
func normalize(v pt.Vector) pt.Vector {
	if v.Length() == 0 {
		return pt.Vector{}
	}
	return v.Normalize()
}

// reflect mirrors direction d against the unit normal n: d - 2(d·n)n
func reflect(d, n pt.Vector) pt.Vector {
	incident := pt.Ray{Origin: pt.Vector{}, Direction: d}
	surface := pt.Ray{Origin: pt.Vector{}, Direction: n}
	return surface.Reflect(incident).Direction
}

func toRadians(deg float64) float64 {
	return deg / 180 * math.Pi
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normAngle maps an angle in degrees into [0, 360).
func normAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
