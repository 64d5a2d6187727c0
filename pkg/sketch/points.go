package sketch

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// PointRef identifies a point structurally as (entity, point index). It is
// a lookup key, never an owning reference; point-index semantics are
// entity-type-specific (see PointCoords).
type PointRef struct {
	Entity EntityID `json:"entity"`
	Point  int      `json:"point"`
}

// PointCount returns the number of addressable points on an entity:
// line 2 (start, end), rectangle 4 (derived corners), circle 1 (center),
// arc 3 (start, mid, end), spline/bezier their point count.
func PointCount(e Entity) int {
	switch d := e.Data.(type) {
	case LineData:
		return 2
	case RectData:
		return 4
	case CircleData:
		return 1
	case ArcData:
		return 3
	case SplineData:
		return len(d.Points)
	case BezierData:
		return len(d.Points)
	default:
		return 0
	}
}

// PointCoords resolves a point index on an entity to coordinates.
// Indices follow the PointRef semantics: line {0=start,1=end}, rectangle
// {0..3 derived corners}, circle {0=center}, arc {0=start,1=mid,2=end}.
func PointCoords(e Entity, idx int) (v2.Vec, bool) {
	switch d := e.Data.(type) {
	case LineData:
		switch idx {
		case 0:
			return d.Start, true
		case 1:
			return d.End, true
		}
	case RectData:
		if idx >= 0 && idx < 4 {
			return d.Corners()[idx], true
		}
	case CircleData:
		if idx == 0 {
			return d.Center, true
		}
	case ArcData:
		switch idx {
		case 0:
			return d.Start, true
		case 1:
			return d.Mid, true
		case 2:
			return d.End, true
		}
	case SplineData:
		if idx >= 0 && idx < len(d.Points) {
			return d.Points[idx], true
		}
	case BezierData:
		if idx >= 0 && idx < len(d.Points) {
			return d.Points[idx], true
		}
	}
	return v2.Vec{}, false
}

// Endpoint is a point that participates in closest-pair searches when
// applying coincident/distance constraints.
type Endpoint struct {
	Ref PointRef
	P   v2.Vec
}

// Endpoints returns the endpoint set of an entity: line start/end,
// rectangle corners, circle center, arc start/end (the arc mid point is a
// shape parameter, not an endpoint).
func Endpoints(e Entity) []Endpoint {
	switch d := e.Data.(type) {
	case LineData:
		return []Endpoint{
			{Ref: PointRef{e.ID, 0}, P: d.Start},
			{Ref: PointRef{e.ID, 1}, P: d.End},
		}
	case RectData:
		c := d.Corners()
		eps := make([]Endpoint, 4)
		for i := range c {
			eps[i] = Endpoint{Ref: PointRef{e.ID, i}, P: c[i]}
		}
		return eps
	case CircleData:
		return []Endpoint{{Ref: PointRef{e.ID, 0}, P: d.Center}}
	case ArcData:
		return []Endpoint{
			{Ref: PointRef{e.ID, 0}, P: d.Start},
			{Ref: PointRef{e.ID, 2}, P: d.End},
		}
	default:
		return nil
	}
}
