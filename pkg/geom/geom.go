package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon guards degenerate numeric cases (zero-length lines, collinear
// circumcenters). Values below this are treated as zero.
const Epsilon = 1e-10

// Cross returns the scalar cross product of a and b.
func Cross(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Perp returns a rotated 90 degrees counter-clockwise.
func Perp(a v2.Vec) v2.Vec {
	return v2.Vec{X: -a.Y, Y: a.X}
}

// EqualPoint reports whether a and b coincide within tol.
func EqualPoint(a, b v2.Vec, tol float64) bool {
	return a.Sub(b).Length() <= tol
}

// Round2 rounds x to two decimal places. Used for the default values offered
// when prompting for a numeric constraint parameter.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Lerp returns the point at parameter t along the segment a-b.
func Lerp(a, b v2.Vec, t float64) v2.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// ParamOnLine returns the parametric position of p projected onto the
// infinite line through a and b, where a is t=0 and b is t=1. A zero-length
// line yields t=0.
func ParamOnLine(p, a, b v2.Vec) float64 {
	d := b.Sub(a)
	l2 := d.Length2()
	if l2 < Epsilon {
		return 0
	}
	return p.Sub(a).Dot(d) / l2
}

// PointSegmentDistance returns the distance from p to the segment a-b.
func PointSegmentDistance(p, a, b v2.Vec) float64 {
	t := ParamOnLine(p, a, b)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(Lerp(a, b, t)).Length()
}

// Reflect mirrors p across the infinite line through a and b using the
// project-then-double formula P' = 2*proj(P) - P. A zero-length axis
// returns p unchanged.
func Reflect(p, a, b v2.Vec) v2.Vec {
	d := b.Sub(a)
	if d.Length2() < Epsilon {
		return p
	}
	t := ParamOnLine(p, a, b)
	proj := Lerp(a, b, t)
	return proj.MulScalar(2).Sub(p)
}

// Direction returns the unit vector from a toward b, and false if the two
// points coincide within Epsilon.
func Direction(a, b v2.Vec) (v2.Vec, bool) {
	d := b.Sub(a)
	if d.Length() < Epsilon {
		return v2.Vec{}, false
	}
	return d.Normalize(), true
}
