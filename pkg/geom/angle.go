package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// AngleNorm normalizes theta into the range [0, 2*pi).
func AngleNorm(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// AngleOf returns the angle in [0, 2*pi) of p as seen from center.
func AngleOf(center, p v2.Vec) float64 {
	d := p.Sub(center)
	return AngleNorm(math.Atan2(d.Y, d.X))
}

// PointAtAngle returns the point on the circle (center, radius) at theta.
func PointAtAngle(center v2.Vec, radius, theta float64) v2.Vec {
	return center.Add(v2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}.MulScalar(radius))
}

// SpanCCW returns the counter-clockwise sweep from angle `from` to angle
// `to`, in [0, 2*pi).
func SpanCCW(from, to float64) float64 {
	return AngleNorm(to - from)
}

// AngleInSpan reports whether theta lies on the counter-clockwise span from
// `from` to `to`, widened by tol at both ends. Angles may be outside
// [0, 2*pi).
func AngleInSpan(theta, from, to, tol float64) bool {
	d := AngleNorm(theta - from)
	span := SpanCCW(from, to)
	if d <= span+tol {
		return true
	}
	// theta just before `from`, wrapped to ~2*pi.
	return d >= 2*math.Pi-tol
}

// MidAngleCCW returns the angular midpoint of the counter-clockwise span
// from `from` to `to`.
func MidAngleCCW(from, to float64) float64 {
	return AngleNorm(from + SpanCCW(from, to)/2)
}
