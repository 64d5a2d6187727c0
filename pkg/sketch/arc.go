package sketch

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
)

// ArcCenter returns the circumcenter of the arc's three defining points.
// Collinear points return ok=false; callers fall back to identity-safe
// behavior instead of propagating NaN.
func ArcCenter(d ArcData) (v2.Vec, bool) {
	return geom.Circumcenter(d.Start, d.Mid, d.End)
}

// ArcRadius returns the arc radius re-derived from its three points, or 0
// for degenerate (collinear) arcs.
func ArcRadius(d ArcData) float64 {
	c, ok := ArcCenter(d)
	if !ok {
		return 0
	}
	return d.Start.Sub(c).Length()
}

// ArcSpan returns the swept angular span as a counter-clockwise interval
// (from, to) that contains the mid point. Degenerate arcs return ok=false.
func ArcSpan(d ArcData) (from, to float64, ok bool) {
	c, ok := ArcCenter(d)
	if !ok {
		return 0, 0, false
	}
	start := geom.AngleOf(c, d.Start)
	end := geom.AngleOf(c, d.End)
	mid := geom.AngleOf(c, d.Mid)
	if geom.AngleInSpan(mid, start, end, 0) {
		return start, end, true
	}
	return end, start, true
}

// ArcContains reports whether the angle theta (about the arc's center)
// lies on the swept span, widened by tol at both ends.
func ArcContains(d ArcData, theta, tol float64) bool {
	from, to, ok := ArcSpan(d)
	if !ok {
		return false
	}
	return geom.AngleInSpan(theta, from, to, tol)
}

// ArcFromSpan builds arc geometry on the circle (center, radius) sweeping
// counter-clockwise from angle `from` to angle `to`, with the mid point at
// the angular midpoint of the span.
func ArcFromSpan(center v2.Vec, radius, from, to float64) ArcData {
	return ArcData{
		Start: geom.PointAtAngle(center, radius, from),
		Mid:   geom.PointAtAngle(center, radius, geom.MidAngleCCW(from, to)),
		End:   geom.PointAtAngle(center, radius, to),
	}
}
