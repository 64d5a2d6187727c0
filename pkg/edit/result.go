package edit

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// onSegmentTol is the slack allowed when deciding whether an intersection
// lies within a segment's parametric range.
const onSegmentTol = 1e-9

// ResultKind tags the outcome of an edit operation.
type ResultKind int

const (
	// Replace carries the delta to commit.
	Replace ResultKind = iota
	// NeedMore means the selection is insufficient.
	NeedMore
	// NeedValue means a numeric parameter is required; Default carries a
	// sensible suggestion.
	NeedValue
	// Invalid means the selection or geometry is structurally incompatible.
	Invalid
)

// Result is the outcome of an edit operation.
type Result struct {
	Kind    ResultKind
	Delta   sketch.Delta // Replace
	Default float64      // NeedValue
	Reason  string       // NeedMore / Invalid
}

func replace(d sketch.Delta) Result { return Result{Kind: Replace, Delta: d} }
func needMore(reason string) Result { return Result{Kind: NeedMore, Reason: reason} }
func needValue(def float64) Result  { return Result{Kind: NeedValue, Default: def} }
func invalid(reason string) Result  { return Result{Kind: Invalid, Reason: reason} }

// lineHits collects intersections of the infinite line a-b against every
// entity except exclude. Hit positions are parametric along a-b (0 at a,
// 1 at b). Intersections must lie on the other entity: within a segment's
// range, on a circle anywhere, on an arc's swept span.
func lineHits(a, b v2.Vec, entities []sketch.Entity, exclude sketch.EntityID) []geom.LineHit {
	var hits []geom.LineHit
	for _, e := range entities {
		if e.ID == exclude {
			continue
		}
		switch d := e.Data.(type) {
		case sketch.LineData:
			hits = appendSegmentHit(hits, a, b, d)
		case sketch.RectData:
			for _, edge := range d.Edges() {
				hits = appendSegmentHit(hits, a, b, edge)
			}
		case sketch.CircleData:
			hits = append(hits, geom.LineCircleIntersections(a, b, d.Center, d.Radius)...)
		case sketch.ArcData:
			c, ok := sketch.ArcCenter(d)
			if !ok {
				continue
			}
			r := d.Start.Sub(c).Length()
			for _, h := range geom.LineCircleIntersections(a, b, c, r) {
				if sketch.ArcContains(d, geom.AngleOf(c, h.P), 0) {
					hits = append(hits, h)
				}
			}
		}
	}
	return hits
}

func appendSegmentHit(hits []geom.LineHit, a, b v2.Vec, seg sketch.LineData) []geom.LineHit {
	t, u, p, ok := geom.LineLineIntersection(a, b, seg.Start, seg.End)
	if !ok {
		return hits
	}
	if u < -onSegmentTol || u > 1+onSegmentTol {
		return hits
	}
	return append(hits, geom.LineHit{T: t, P: p})
}

// circleHits collects intersection points of the circle (center, radius)
// against every entity except exclude.
func circleHits(center v2.Vec, radius float64, entities []sketch.Entity, exclude sketch.EntityID) []v2.Vec {
	var pts []v2.Vec
	for _, e := range entities {
		if e.ID == exclude {
			continue
		}
		switch d := e.Data.(type) {
		case sketch.LineData:
			pts = appendCircleSegmentHits(pts, center, radius, d)
		case sketch.RectData:
			for _, edge := range d.Edges() {
				pts = appendCircleSegmentHits(pts, center, radius, edge)
			}
		case sketch.CircleData:
			pts = append(pts, geom.CircleCircleIntersections(center, radius, d.Center, d.Radius)...)
		case sketch.ArcData:
			c, ok := sketch.ArcCenter(d)
			if !ok {
				continue
			}
			r := d.Start.Sub(c).Length()
			for _, p := range geom.CircleCircleIntersections(center, radius, c, r) {
				if sketch.ArcContains(d, geom.AngleOf(c, p), 0) {
					pts = append(pts, p)
				}
			}
		}
	}
	return pts
}

func appendCircleSegmentHits(pts []v2.Vec, center v2.Vec, radius float64, seg sketch.LineData) []v2.Vec {
	for _, h := range geom.LineCircleIntersections(seg.Start, seg.End, center, radius) {
		if h.T >= -onSegmentTol && h.T <= 1+onSegmentTol {
			pts = append(pts, h.P)
		}
	}
	return pts
}
