package room

import (
	"math"

	"github.com/fogleman/pt/pt"
)

const (
	MinRadiusCoef = 0
	MaxRadiusCoef = 100
)

// arcAngleEpsilon is the slack, in degrees, allowed when testing whether an
// angle falls inside an arc.
const arcAngleEpsilon = 1e-6

type arc struct {
	radiusCoef float64
	// false puts the center on the right of start→end, true on the left
	orient bool
	// Use the major arc instead of the minor one
	isBig bool

	chord  float64
	radius float64
	center pt.Vector

	startAngle float64
	endAngle   float64
	// The wall's start point sits at endAngle
	flipped bool
}

func validRadiusCoef(coef float64) bool {
	return coef >= MinRadiusCoef && coef <= MaxRadiusCoef
}

// arcRadius maps the 0-100 curvature dial onto a radius. The result shrinks
// from 4·chord at 0 to chord/2 (a half circle) at 100.
func arcRadius(chord, radiusCoef float64) float64 {
	return chord * (77/(2*(radiusCoef+10)) + 3.0/20)
}

func (c *arc) update(a, b pt.Vector) {
	m := a.Add(b).MulScalar(0.5)
	dx := a.X - b.X
	dy := a.Y - b.Y
	c.chord = math.Hypot(dx, dy)
	c.radius = arcRadius(c.chord, c.radiusCoef)

	if c.chord == 0 {
		c.center = m
		c.startAngle, c.endAngle, c.flipped = 0, 0, false
		return
	}

	// h is real because radius >= chord/2 for every coefficient in range
	h := math.Sqrt(math.Max(0, c.radius*c.radius-c.chord*c.chord/4))
	offset := c.offsetDirection(a, b)
	c.center = m.Add(offset.MulScalar(h))

	c.updateAngles(a, b, offset)
}

// offsetDirection is the unit vector from the chord midpoint towards the
// center.
func (c *arc) offsetDirection(a, b pt.Vector) pt.Vector {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if c.orient {
		return V2(-dy/c.chord, dx/c.chord)
	}
	return V2(dy/c.chord, -dx/c.chord)
}

func (c *arc) updateAngles(a, b, offset pt.Vector) {
	startDeg := c.angleOf(a)
	endDeg := c.angleOf(b)
	ccwSpan := normAngle(endDeg - startDeg)

	// The minor arc bulges away from the center
	bulge := normAngle(toDegrees(math.Atan2(-offset.Y, -offset.X)))
	ccwHoldsBulge := normAngle(bulge-startDeg) <= ccwSpan

	if ccwHoldsBulge != c.isBig {
		c.startAngle = startDeg
		c.endAngle = startDeg + ccwSpan
		c.flipped = false
	} else {
		c.startAngle = endDeg
		c.endAngle = endDeg + (360 - ccwSpan)
		c.flipped = true
	}
}

func (c *arc) angleOf(p pt.Vector) float64 {
	return normAngle(toDegrees(math.Atan2(p.Y-c.center.Y, p.X-c.center.X)))
}

func (c *arc) crossesZeroDeg() bool {
	return c.endAngle >= 360
}

// span is the angular length of the arc in degrees.
func (c *arc) span() float64 {
	start := normAngle(c.startAngle)
	end := normAngle(c.endAngle)
	if c.crossesZeroDeg() {
		return (360 - start) + end
	}
	return end - start
}

// offsetOf is how far, counter-clockwise in degrees, p lies past startAngle.
func (c *arc) offsetOf(p pt.Vector) float64 {
	return normAngle(c.angleOf(p) - c.startAngle)
}

// isPointOnArc only checks the angle of p, not its distance from the center.
func (c *arc) isPointOnArc(p pt.Vector) bool {
	offset := c.offsetOf(p)
	return offset <= c.span()+arcAngleEpsilon || offset >= 360-arcAngleEpsilon
}

func (c *arc) tByAngleOffset(offset float64) float64 {
	span := c.span()
	if span == 0 {
		return 0
	}
	u := clamp(offset/span, 0, 1)
	if c.flipped {
		return 1 - u
	}
	return u
}

func (c *arc) tByPoint(p pt.Vector, precision float64) float64 {
	if c.radius == 0 || math.Abs(distance(p, c.center)-c.radius) > precision {
		return -1
	}

	span := c.span()
	tolerance := toDegrees(precision / c.radius)
	offset := c.offsetOf(p)
	if offset > span {
		switch {
		case offset >= 360-tolerance:
			offset = 0
		case offset <= span+tolerance:
			offset = span
		default:
			return -1
		}
	}
	return c.tByAngleOffset(offset)
}

func (c *arc) pointByT(t float64) pt.Vector {
	u := t
	if c.flipped {
		u = 1 - t
	}
	angle := toRadians(c.startAngle + u*c.span())
	sin, cos := math.Sincos(angle)
	return V2(c.center.X+c.radius*cos, c.center.Y+c.radius*sin)
}

func (c *arc) closestPoint(p, a, b pt.Vector) pt.Vector {
	v := p.Sub(c.center)
	if v.Length() == 0 {
		return a
	}
	onCircle := c.center.Add(v.Normalize().MulScalar(c.radius))
	if c.isPointOnArc(onCircle) {
		return onCircle
	}
	if distance(p, a) <= distance(p, b) {
		return a
	}
	return b
}

func (c *arc) intersect(start, end pt.Vector, floor float64) (pt.Vector, bool) {
	d := end.Sub(start)
	for _, t := range segmentCircle(start, end, c.center, c.radius) {
		hit := start.Add(d.MulScalar(t))
		if distance(start, hit) <= floor {
			continue
		}
		if c.isPointOnArc(hit) {
			return hit, true
		}
	}
	return pt.Vector{}, false
}
