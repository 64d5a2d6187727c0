// Package tessellate flattens sketch entities into polylines for the
// frontend canvas. One polyline is produced per entity. The tessellator is
// read-only and never mutates the sketch.
package tessellate

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// CircleSegments is the number of segments used for a full circle. Arcs
// use a proportional share of it, with a floor so tiny arcs stay smooth.
const CircleSegments = 64

// MinArcSegments is the fewest segments an arc is ever flattened to.
const MinArcSegments = 8

// CurveSegmentsPerSpan is the sample count per control-point span of a
// freeform curve.
const CurveSegmentsPerSpan = 16

// Polyline is the flattened form of one entity: interleaved x,y
// coordinates ready for a canvas path.
type Polyline struct {
	EntityID string    `json:"entityId"`
	Kind     string    `json:"kind"`
	Points   []float64 `json:"points"`
	Closed   bool      `json:"closed"`
}

// Tessellate flattens every entity of a sketch into a polyline.
func Tessellate(s *sketch.Sketch) []Polyline {
	out := make([]Polyline, 0, len(s.Entities))
	for _, e := range s.Entities {
		out = append(out, Entity(e))
	}
	return out
}

// Entity flattens a single entity.
func Entity(e sketch.Entity) Polyline {
	pl := Polyline{EntityID: string(e.ID), Kind: e.Kind.String()}

	switch d := e.Data.(type) {
	case sketch.LineData:
		pl.Points = flatten([]v2.Vec{d.Start, d.End})

	case sketch.RectData:
		corners := d.Corners()
		pl.Points = flatten(corners[:])
		pl.Closed = true

	case sketch.CircleData:
		pts := make([]v2.Vec, 0, CircleSegments)
		for i := 0; i < CircleSegments; i++ {
			theta := 2 * math.Pi * float64(i) / CircleSegments
			pts = append(pts, geom.PointAtAngle(d.Center, d.Radius, theta))
		}
		pl.Points = flatten(pts)
		pl.Closed = true

	case sketch.ArcData:
		pl.Points = flatten(arcPoints(d))

	case sketch.SplineData:
		pl.Points = flatten(catmullRom(d.Points))

	case sketch.BezierData:
		pl.Points = flatten(bezierPoints(d.Points))
	}
	return pl
}

// arcPoints samples an arc along its counter-clockwise span. Degenerate
// (collinear) arcs fall back to the three raw points.
func arcPoints(d sketch.ArcData) []v2.Vec {
	center, ok := sketch.ArcCenter(d)
	if !ok {
		return []v2.Vec{d.Start, d.Mid, d.End}
	}
	from, to, _ := sketch.ArcSpan(d)
	span := geom.SpanCCW(from, to)
	radius := d.Start.Sub(center).Length()

	n := int(math.Ceil(span / (2 * math.Pi) * CircleSegments))
	if n < MinArcSegments {
		n = MinArcSegments
	}
	pts := make([]v2.Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := from + span*float64(i)/float64(n)
		pts = append(pts, geom.PointAtAngle(center, radius, theta))
	}
	return pts
}

// catmullRom interpolates a smooth curve through the control points using
// a uniform Catmull-Rom spline with clamped end tangents.
func catmullRom(ctrl []v2.Vec) []v2.Vec {
	if len(ctrl) < 3 {
		return append([]v2.Vec(nil), ctrl...)
	}
	var pts []v2.Vec
	for i := 0; i < len(ctrl)-1; i++ {
		p0 := ctrl[maxInt(i-1, 0)]
		p1 := ctrl[i]
		p2 := ctrl[i+1]
		p3 := ctrl[minInt(i+2, len(ctrl)-1)]
		for j := 0; j < CurveSegmentsPerSpan; j++ {
			t := float64(j) / CurveSegmentsPerSpan
			pts = append(pts, catmullRomPoint(p0, p1, p2, p3, t))
		}
	}
	return append(pts, ctrl[len(ctrl)-1])
}

func catmullRomPoint(p0, p1, p2, p3 v2.Vec, t float64) v2.Vec {
	t2 := t * t
	t3 := t2 * t
	a := p1.MulScalar(2)
	b := p2.Sub(p0).MulScalar(t)
	c := p0.MulScalar(2).Sub(p1.MulScalar(5)).Add(p2.MulScalar(4)).Sub(p3).MulScalar(t2)
	d := p1.MulScalar(3).Sub(p0).Sub(p2.MulScalar(3)).Add(p3).MulScalar(t3)
	return a.Add(b).Add(c).Add(d).MulScalar(0.5)
}

// bezierPoints samples a Bezier curve of arbitrary degree by de Casteljau
// evaluation.
func bezierPoints(ctrl []v2.Vec) []v2.Vec {
	if len(ctrl) < 3 {
		return append([]v2.Vec(nil), ctrl...)
	}
	n := CurveSegmentsPerSpan * (len(ctrl) - 1)
	pts := make([]v2.Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, deCasteljau(ctrl, float64(i)/float64(n)))
	}
	return pts
}

func deCasteljau(ctrl []v2.Vec, t float64) v2.Vec {
	work := append([]v2.Vec(nil), ctrl...)
	for k := len(work) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			work[i] = geom.Lerp(work[i], work[i+1], t)
		}
	}
	return work[0]
}

func flatten(pts []v2.Vec) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
