package edit

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// Mirror reflects the selected entities across an axis line. The last
// selected entity is the axis and must be a line; everything before it is
// reflected point-by-point into new entities. The originals are kept.
func Mirror(entities []sketch.Entity, selected []sketch.EntityID, gen sketch.IDGen) Result {
	if len(selected) < 2 {
		return needMore("mirror requires entities plus an axis line")
	}

	axis, ok := find(entities, selected[len(selected)-1])
	if !ok {
		return invalid("mirror axis not found")
	}
	ad, ok := axis.Data.(sketch.LineData)
	if !ok {
		return invalid("mirror axis must be a line, got " + axis.Kind.String())
	}
	if ad.Length() < geom.Epsilon {
		return invalid("zero-length mirror axis")
	}

	reflect := func(p v2.Vec) v2.Vec {
		return geom.Reflect(p, ad.Start, ad.End)
	}

	var added []sketch.Entity
	for _, id := range selected[:len(selected)-1] {
		e, ok := find(entities, id)
		if !ok {
			return invalid("mirror selection references an unknown entity")
		}

		var data sketch.EntityData
		switch d := e.Data.(type) {
		case sketch.LineData:
			data = sketch.LineData{Start: reflect(d.Start), End: reflect(d.End)}
		case sketch.RectData:
			data = sketch.RectData{Corner1: reflect(d.Corner1), Corner2: reflect(d.Corner2)}
		case sketch.CircleData:
			data = sketch.CircleData{Center: reflect(d.Center), Radius: d.Radius}
		case sketch.ArcData:
			data = sketch.ArcData{Start: reflect(d.Start), Mid: reflect(d.Mid), End: reflect(d.End)}
		case sketch.SplineData:
			data = sketch.SplineData{Points: reflectAll(d.Points, reflect)}
		case sketch.BezierData:
			data = sketch.BezierData{Points: reflectAll(d.Points, reflect)}
		default:
			return invalid("cannot mirror a " + e.Kind.String())
		}
		added = append(added, sketch.Entity{ID: sketch.EntityID(gen()), Kind: e.Kind, Data: data})
	}

	return replace(sketch.Delta{Add: added})
}

func reflectAll(pts []v2.Vec, f func(v2.Vec) v2.Vec) []v2.Vec {
	out := make([]v2.Vec, len(pts))
	for i, p := range pts {
		out[i] = f(p)
	}
	return out
}
