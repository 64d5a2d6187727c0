package edit

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// DefaultOffset is the distance suggested when prompting for an offset.
const DefaultOffset = 1.0

// Offset displaces an entity by a signed distance: lines move
// perpendicular to their direction, circles and arcs grow or shrink their
// radius, rectangles expand or contract both corners symmetrically.
// distance==nil requests a value; a zero distance or a non-positive
// resulting radius is Invalid.
func Offset(entities []sketch.Entity, targetID sketch.EntityID, distance *float64, gen sketch.IDGen) Result {
	target, ok := find(entities, targetID)
	if !ok {
		return invalid("offset target not found")
	}
	if distance == nil {
		return needValue(DefaultOffset)
	}
	dist := *distance
	if dist == 0 {
		return invalid("offset distance must be non-zero")
	}

	var data sketch.EntityData
	var kind sketch.EntityKind

	switch d := target.Data.(type) {
	case sketch.LineData:
		dir, ok := geom.Direction(d.Start, d.End)
		if !ok {
			return invalid("zero-length line")
		}
		n := geom.Perp(dir).MulScalar(dist)
		kind = sketch.EntityLine
		data = sketch.LineData{Start: d.Start.Add(n), End: d.End.Add(n)}

	case sketch.CircleData:
		r := d.Radius + dist
		if r <= geom.Epsilon {
			return invalid("offset would collapse the circle")
		}
		kind = sketch.EntityCircle
		data = sketch.CircleData{Center: d.Center, Radius: r}

	case sketch.ArcData:
		center, ok := sketch.ArcCenter(d)
		if !ok {
			return invalid("degenerate arc")
		}
		r := d.Start.Sub(center).Length()
		next := r + dist
		if next <= geom.Epsilon {
			return invalid("offset would collapse the arc")
		}
		// Rescale all three defining points from the circumcenter.
		ratio := next / r
		scale := func(p v2.Vec) v2.Vec {
			return center.Add(p.Sub(center).MulScalar(ratio))
		}
		kind = sketch.EntityArc
		data = sketch.ArcData{Start: scale(d.Start), Mid: scale(d.Mid), End: scale(d.End)}

	case sketch.RectData:
		lo := v2.Vec{X: math.Min(d.Corner1.X, d.Corner2.X), Y: math.Min(d.Corner1.Y, d.Corner2.Y)}
		hi := v2.Vec{X: math.Max(d.Corner1.X, d.Corner2.X), Y: math.Max(d.Corner1.Y, d.Corner2.Y)}
		lo = lo.Sub(v2.Vec{X: dist, Y: dist})
		hi = hi.Add(v2.Vec{X: dist, Y: dist})
		if hi.X-lo.X <= geom.Epsilon || hi.Y-lo.Y <= geom.Epsilon {
			return invalid("offset would collapse the rectangle")
		}
		kind = sketch.EntityRect
		data = sketch.RectData{Corner1: lo, Corner2: hi}

	default:
		return invalid("cannot offset a " + target.Kind.String())
	}

	return replace(sketch.Delta{
		RemoveIDs: []sketch.EntityID{targetID},
		Add:       []sketch.Entity{{ID: sketch.EntityID(gen()), Kind: kind, Data: data}},
	})
}
