package sketch

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// EntityID is a caller-supplied stable identifier for a sketch entity.
type EntityID string

// EntityKind enumerates the entity variants.
type EntityKind int

const (
	EntityLine   EntityKind = iota // two-point segment
	EntityRect                     // axis-aligned rectangle, two corners
	EntityCircle                   // center + radius
	EntityArc                      // three points: start, mid, end
	EntitySpline                   // passively carried, not editable
	EntityBezier                   // passively carried, not editable
)

func (k EntityKind) String() string {
	switch k {
	case EntityLine:
		return "line"
	case EntityRect:
		return "rectangle"
	case EntityCircle:
		return "circle"
	case EntityArc:
		return "arc"
	case EntitySpline:
		return "spline"
	case EntityBezier:
		return "bezier"
	default:
		return "unknown"
	}
}

// Entity is a single sketch entity. Geometry lives in the kind-specific
// Data payload, in 2D sketch-plane coordinates.
type Entity struct {
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`
	Data EntityData `json:"data"`
}

// EntityData is the interface for kind-specific entity payloads.
type EntityData interface {
	entityData() // marker method restricting implementations to this package
}

// LineData is a straight segment from Start to End.
type LineData struct {
	Start v2.Vec `json:"start"`
	End   v2.Vec `json:"end"`
}

func (LineData) entityData() {}

// Length returns the segment length.
func (d LineData) Length() float64 {
	return d.End.Sub(d.Start).Length()
}

// RectData is an axis-aligned rectangle defined by two opposite corners.
// The other two corners are always derived, never stored.
type RectData struct {
	Corner1 v2.Vec `json:"corner1"`
	Corner2 v2.Vec `json:"corner2"`
}

func (RectData) entityData() {}

// Corners returns the four corners in derived order:
// 0=(c1.X,c1.Y) 1=(c2.X,c1.Y) 2=(c2.X,c2.Y) 3=(c1.X,c2.Y).
func (d RectData) Corners() [4]v2.Vec {
	return [4]v2.Vec{
		{X: d.Corner1.X, Y: d.Corner1.Y},
		{X: d.Corner2.X, Y: d.Corner1.Y},
		{X: d.Corner2.X, Y: d.Corner2.Y},
		{X: d.Corner1.X, Y: d.Corner2.Y},
	}
}

// Edges returns the four edges as line payloads, edge i running from
// corner i to corner (i+1)%4.
func (d RectData) Edges() [4]LineData {
	c := d.Corners()
	return [4]LineData{
		{Start: c[0], End: c[1]},
		{Start: c[1], End: c[2]},
		{Start: c[2], End: c[3]},
		{Start: c[3], End: c[0]},
	}
}

// CircleData is a full circle.
type CircleData struct {
	Center v2.Vec  `json:"center"`
	Radius float64 `json:"radius"`
}

func (CircleData) entityData() {}

// ArcData is a circular arc through three points. Center, radius and
// angles are always recomputed from these points, never stored.
type ArcData struct {
	Start v2.Vec `json:"start"`
	Mid   v2.Vec `json:"mid"`
	End   v2.Vec `json:"end"`
}

func (ArcData) entityData() {}

// SplineData is a passively carried point list; edit operations skip it.
type SplineData struct {
	Points []v2.Vec `json:"points"`
}

func (SplineData) entityData() {}

// BezierData is a passively carried control-point list; edit operations
// skip it.
type BezierData struct {
	Points []v2.Vec `json:"points"`
}

func (BezierData) entityData() {}

// NewLine builds a line entity.
func NewLine(id EntityID, start, end v2.Vec) Entity {
	return Entity{ID: id, Kind: EntityLine, Data: LineData{Start: start, End: end}}
}

// NewRect builds a rectangle entity.
func NewRect(id EntityID, corner1, corner2 v2.Vec) Entity {
	return Entity{ID: id, Kind: EntityRect, Data: RectData{Corner1: corner1, Corner2: corner2}}
}

// NewCircle builds a circle entity.
func NewCircle(id EntityID, center v2.Vec, radius float64) Entity {
	return Entity{ID: id, Kind: EntityCircle, Data: CircleData{Center: center, Radius: radius}}
}

// NewArc builds an arc entity from its three defining points.
func NewArc(id EntityID, start, mid, end v2.Vec) Entity {
	return Entity{ID: id, Kind: EntityArc, Data: ArcData{Start: start, Mid: mid, End: end}}
}
