package solver

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// Synthetic id scheme: an entity's points are "<id>.p<N>" following the
// PointRef index semantics, a rectangle's edges are "<id>.e<N>", an arc's
// center is "<id>.c", the curve itself keeps the bare entity id, and
// rectangle shape constraints are "<id>.c<N>".

func pointID(id sketch.EntityID, n int) string {
	return fmt.Sprintf("%s.p%d", id, n)
}

func edgeID(id sketch.EntityID, n int) string {
	return fmt.Sprintf("%s.e%d", id, n)
}

func arcCenterID(id sketch.EntityID) string {
	return string(id) + ".c"
}

func shapeID(id sketch.EntityID, n int) string {
	return fmt.Sprintf("%s.c%d", id, n)
}

func point(id string, p v2.Vec) Primitive {
	return Primitive{ID: id, Kind: PrimPoint, X: p.X, Y: p.Y}
}

// Lower flattens a sketch into solver primitives: every entity
// contributes its free points plus a curve primitive, rectangles
// additionally contribute the shape constraints that keep them
// rectangular, and every constraint contributes one primitive.
func Lower(s *sketch.Sketch) ([]Primitive, error) {
	var prims []Primitive

	for _, e := range s.Entities {
		switch d := e.Data.(type) {
		case sketch.LineData:
			prims = append(prims,
				point(pointID(e.ID, 0), d.Start),
				point(pointID(e.ID, 1), d.End),
				Primitive{ID: string(e.ID), Kind: PrimLine, Refs: []string{pointID(e.ID, 0), pointID(e.ID, 1)}},
			)

		case sketch.RectData:
			corners := d.Corners()
			for i, c := range corners {
				prims = append(prims, point(pointID(e.ID, i), c))
			}
			for i := 0; i < 4; i++ {
				prims = append(prims, Primitive{
					ID:   edgeID(e.ID, i),
					Kind: PrimLine,
					Refs: []string{pointID(e.ID, i), pointID(e.ID, (i+1)%4)},
				})
			}
			// Opposite edges parallel, adjacent edges perpendicular; the
			// fourth relation is implied.
			prims = append(prims,
				Primitive{ID: shapeID(e.ID, 0), Kind: PrimParallel, Refs: []string{edgeID(e.ID, 0), edgeID(e.ID, 2)}},
				Primitive{ID: shapeID(e.ID, 1), Kind: PrimParallel, Refs: []string{edgeID(e.ID, 1), edgeID(e.ID, 3)}},
				Primitive{ID: shapeID(e.ID, 2), Kind: PrimPerpendicular, Refs: []string{edgeID(e.ID, 0), edgeID(e.ID, 1)}},
			)

		case sketch.CircleData:
			prims = append(prims,
				point(pointID(e.ID, 0), d.Center),
				Primitive{ID: string(e.ID), Kind: PrimCircle, Refs: []string{pointID(e.ID, 0)}, Value: d.Radius},
			)

		case sketch.ArcData:
			center, ok := sketch.ArcCenter(d)
			if !ok {
				return nil, fmt.Errorf("entity %s: degenerate arc", e.ID)
			}
			prims = append(prims,
				point(arcCenterID(e.ID), center),
				point(pointID(e.ID, 0), d.Start),
				point(pointID(e.ID, 2), d.End),
				Primitive{
					ID:         string(e.ID),
					Kind:       PrimArc,
					Refs:       []string{arcCenterID(e.ID), pointID(e.ID, 0), pointID(e.ID, 2)},
					Value:      d.Start.Sub(center).Length(),
					StartAngle: geom.AngleOf(center, d.Start),
					EndAngle:   geom.AngleOf(center, d.End),
				},
			)

		case sketch.SplineData, sketch.BezierData:
			// Freeform curves are carried in the sketch but not solved.
		}
	}

	for _, c := range s.Constraints {
		p, err := lowerConstraint(s, c)
		if err != nil {
			return nil, err
		}
		prims = append(prims, p)
	}
	return prims, nil
}

// lowerConstraint maps one constraint to its solver primitive, resolving
// point references to synthetic point ids.
func lowerConstraint(s *sketch.Sketch, c sketch.Constraint) (Primitive, error) {
	p := Primitive{ID: string(c.ID)}

	switch d := c.Data.(type) {
	case sketch.CoincidentData:
		a, err := resolvePointRef(s, d.A)
		if err != nil {
			return Primitive{}, fmt.Errorf("constraint %s: %w", c.ID, err)
		}
		b, err := resolvePointRef(s, d.B)
		if err != nil {
			return Primitive{}, fmt.Errorf("constraint %s: %w", c.ID, err)
		}
		p.Kind = PrimCoincident
		p.Refs = []string{a, b}

	case sketch.HorizontalData:
		p.Kind = PrimHorizontal
		p.Refs = []string{string(d.Entity)}

	case sketch.VerticalData:
		p.Kind = PrimVertical
		p.Refs = []string{string(d.Entity)}

	case sketch.ParallelData:
		p.Kind = PrimParallel
		p.Refs = []string{string(d.A), string(d.B)}

	case sketch.PerpendicularData:
		p.Kind = PrimPerpendicular
		p.Refs = []string{string(d.A), string(d.B)}

	case sketch.EqualData:
		p.Kind = PrimEqual
		p.Refs = []string{string(d.A), string(d.B)}

	case sketch.DistanceData:
		a, err := resolvePointRef(s, d.A)
		if err != nil {
			return Primitive{}, fmt.Errorf("constraint %s: %w", c.ID, err)
		}
		b, err := resolvePointRef(s, d.B)
		if err != nil {
			return Primitive{}, fmt.Errorf("constraint %s: %w", c.ID, err)
		}
		p.Kind = PrimDistance
		p.Refs = []string{a, b}
		p.Value = d.Value

	case sketch.RadiusData:
		p.Kind = PrimRadius
		p.Refs = []string{string(d.Entity)}
		p.Value = d.Value

	case sketch.AngleData:
		p.Kind = PrimAngle
		p.Refs = []string{string(d.A), string(d.B)}
		p.Value = d.Value

	default:
		return Primitive{}, fmt.Errorf("constraint %s: unsupported kind %s", c.ID, c.Kind)
	}
	return p, nil
}

// resolvePointRef maps a PointRef to the synthetic id of a pushed point
// primitive. The arc mid point (index 1) is derived geometry with no
// solver variable behind it and cannot be referenced.
func resolvePointRef(s *sketch.Sketch, ref sketch.PointRef) (string, error) {
	e, ok := s.Entity(ref.Entity)
	if !ok {
		return "", fmt.Errorf("point ref %s/%d: unknown entity", ref.Entity, ref.Point)
	}
	switch e.Data.(type) {
	case sketch.LineData:
		if ref.Point == 0 || ref.Point == 1 {
			return pointID(e.ID, ref.Point), nil
		}
	case sketch.RectData:
		if ref.Point >= 0 && ref.Point < 4 {
			return pointID(e.ID, ref.Point), nil
		}
	case sketch.CircleData:
		if ref.Point == 0 {
			return pointID(e.ID, 0), nil
		}
	case sketch.ArcData:
		if ref.Point == 0 || ref.Point == 2 {
			return pointID(e.ID, ref.Point), nil
		}
	}
	return "", fmt.Errorf("point ref %s/%d: no solver point for %s index %d", ref.Entity, ref.Point, e.Kind, ref.Point)
}

// readBack rebuilds entities from solved primitives. An entity whose
// primitives are missing from the solution is returned unchanged.
func readBack(s *sketch.Sketch, sol Solver) []sketch.Entity {
	out := make([]sketch.Entity, 0, len(s.Entities))
	for _, e := range s.Entities {
		out = append(out, readEntity(e, sol))
	}
	return out
}

func readEntity(e sketch.Entity, sol Solver) sketch.Entity {
	solvedPoint := func(id string) (v2.Vec, bool) {
		p, ok := sol.Primitive(id)
		if !ok || p.Kind != PrimPoint {
			return v2.Vec{}, false
		}
		return v2.Vec{X: p.X, Y: p.Y}, true
	}

	switch d := e.Data.(type) {
	case sketch.LineData:
		start, ok1 := solvedPoint(pointID(e.ID, 0))
		end, ok2 := solvedPoint(pointID(e.ID, 1))
		if !ok1 || !ok2 {
			return e
		}
		return sketch.Entity{ID: e.ID, Kind: e.Kind, Data: sketch.LineData{Start: start, End: end}}

	case sketch.RectData:
		c0, ok1 := solvedPoint(pointID(e.ID, 0))
		c2, ok2 := solvedPoint(pointID(e.ID, 2))
		if !ok1 || !ok2 {
			return e
		}
		return sketch.Entity{ID: e.ID, Kind: e.Kind, Data: sketch.RectData{Corner1: c0, Corner2: c2}}

	case sketch.CircleData:
		center, ok := solvedPoint(pointID(e.ID, 0))
		if !ok {
			return e
		}
		radius := d.Radius
		if curve, ok := sol.Primitive(string(e.ID)); ok && curve.Kind == PrimCircle {
			radius = curve.Value
		}
		return sketch.Entity{ID: e.ID, Kind: e.Kind, Data: sketch.CircleData{Center: center, Radius: radius}}

	case sketch.ArcData:
		center, okC := solvedPoint(arcCenterID(e.ID))
		start, okS := solvedPoint(pointID(e.ID, 0))
		end, okE := solvedPoint(pointID(e.ID, 2))
		if !okC || !okS || !okE {
			return e
		}
		radius := start.Sub(center).Length()
		if curve, ok := sol.Primitive(string(e.ID)); ok && curve.Kind == PrimArc {
			radius = curve.Value
		}
		// The mid point is recomputed on the solved circle at the angular
		// midpoint, keeping the original sweep orientation.
		sa := geom.AngleOf(center, start)
		ea := geom.AngleOf(center, end)
		midAngle := geom.MidAngleCCW(sa, ea)
		if c, ok := sketch.ArcCenter(d); ok {
			om := geom.AngleOf(c, d.Mid)
			if !geom.AngleInSpan(om, geom.AngleOf(c, d.Start), geom.AngleOf(c, d.End), 0) {
				// Original sweep ran clockwise from start to end.
				midAngle = geom.MidAngleCCW(ea, sa)
			}
		}
		return sketch.Entity{ID: e.ID, Kind: e.Kind, Data: sketch.ArcData{
			Start: start,
			Mid:   geom.PointAtAngle(center, radius, midAngle),
			End:   end,
		}}

	default:
		return e
	}
}
