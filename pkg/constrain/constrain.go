package constrain

import (
	"math"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// Tool enumerates the constraint tools.
type Tool int

const (
	ToolCoincident Tool = iota
	ToolHorizontal
	ToolVertical
	ToolParallel
	ToolPerpendicular
	ToolEqual
	ToolDistance
	ToolRadius
	ToolAngle
)

func (t Tool) String() string {
	switch t {
	case ToolCoincident:
		return "coincident"
	case ToolHorizontal:
		return "horizontal"
	case ToolVertical:
		return "vertical"
	case ToolParallel:
		return "parallel"
	case ToolPerpendicular:
		return "perpendicular"
	case ToolEqual:
		return "equal"
	case ToolDistance:
		return "distance"
	case ToolRadius:
		return "radius"
	case ToolAngle:
		return "angle"
	default:
		return "unknown"
	}
}

// ParseTool maps a tool name to a Tool.
func ParseTool(name string) (Tool, bool) {
	for t := ToolCoincident; t <= ToolAngle; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// ResultKind tags the outcome of a constraint selection.
type ResultKind int

const (
	// NeedMore means the selection is insufficient for the chosen tool.
	NeedMore ResultKind = iota
	// NeedValue means the selection is valid but a numeric parameter is
	// required; Default carries a sensible suggestion.
	NeedValue
	// Create carries the new constraint.
	Create
	// Invalid means the selection is structurally incompatible.
	Invalid
)

// Result is the outcome of a constraint selection.
type Result struct {
	Kind       ResultKind
	Constraint sketch.Constraint // Create
	Default    float64           // NeedValue
	Reason     string            // NeedMore / Invalid
}

func needMore(reason string) Result  { return Result{Kind: NeedMore, Reason: reason} }
func needValue(def float64) Result   { return Result{Kind: NeedValue, Default: def} }
func invalid(reason string) Result   { return Result{Kind: Invalid, Reason: reason} }
func created(c sketch.Constraint) Result {
	return Result{Kind: Create, Constraint: c}
}

// Select applies a constraint tool to the current selection. Order
// matters: the first two selected entities are significant for pairwise
// constraints. Tools that need a numeric parameter (distance, radius,
// angle) return NeedValue with a computed default; the caller prompts and
// calls SelectWithValue.
func Select(tool Tool, selected []sketch.EntityID, s *sketch.Sketch, gen sketch.IDGen) Result {
	return apply(tool, selected, s, gen, nil)
}

// SelectWithValue is Select with the numeric parameter supplied. Tools
// that take no value ignore it.
func SelectWithValue(tool Tool, selected []sketch.EntityID, s *sketch.Sketch, value float64, gen sketch.IDGen) Result {
	return apply(tool, selected, s, gen, &value)
}

func apply(tool Tool, selected []sketch.EntityID, s *sketch.Sketch, gen sketch.IDGen, value *float64) Result {
	ents, ok := resolve(selected, s)
	if !ok {
		return invalid("selection references an unknown entity")
	}

	switch tool {
	case ToolCoincident:
		if len(ents) < 2 {
			return needMore("coincident requires two entities")
		}
		a, b, _, ok := closestPair(ents[0], ents[1])
		if !ok {
			return invalid("selected entities have no endpoints")
		}
		return created(sketch.Constraint{
			ID:   sketch.ConstraintID(gen()),
			Kind: sketch.ConstraintCoincident,
			Data: sketch.CoincidentData{A: a, B: b},
		})

	case ToolDistance:
		if len(ents) < 2 {
			return needMore("distance requires two entities")
		}
		a, b, dist, ok := closestPair(ents[0], ents[1])
		if !ok {
			return invalid("selected entities have no endpoints")
		}
		if value == nil {
			return needValue(geom.Round2(dist))
		}
		return created(sketch.Constraint{
			ID:   sketch.ConstraintID(gen()),
			Kind: sketch.ConstraintDistance,
			Data: sketch.DistanceData{A: a, B: b, Value: *value},
		})

	case ToolHorizontal, ToolVertical:
		if len(ents) < 1 {
			return needMore(tool.String() + " requires a line")
		}
		if ents[0].Kind != sketch.EntityLine {
			return invalid(tool.String() + " requires a line, got " + ents[0].Kind.String())
		}
		if tool == ToolHorizontal {
			return created(sketch.Constraint{
				ID:   sketch.ConstraintID(gen()),
				Kind: sketch.ConstraintHorizontal,
				Data: sketch.HorizontalData{Entity: ents[0].ID},
			})
		}
		return created(sketch.Constraint{
			ID:   sketch.ConstraintID(gen()),
			Kind: sketch.ConstraintVertical,
			Data: sketch.VerticalData{Entity: ents[0].ID},
		})

	case ToolParallel, ToolPerpendicular:
		if len(ents) < 2 {
			return needMore(tool.String() + " requires two lines")
		}
		if ents[0].Kind != sketch.EntityLine || ents[1].Kind != sketch.EntityLine {
			return invalid(tool.String() + " requires two lines")
		}
		kind := sketch.ConstraintParallel
		var data sketch.ConstraintData = sketch.ParallelData{A: ents[0].ID, B: ents[1].ID}
		if tool == ToolPerpendicular {
			kind = sketch.ConstraintPerpendicular
			data = sketch.PerpendicularData{A: ents[0].ID, B: ents[1].ID}
		}
		return created(sketch.Constraint{ID: sketch.ConstraintID(gen()), Kind: kind, Data: data})

	case ToolAngle:
		if len(ents) < 2 {
			return needMore("angle requires two lines")
		}
		if ents[0].Kind != sketch.EntityLine || ents[1].Kind != sketch.EntityLine {
			return invalid("angle requires two lines")
		}
		if value == nil {
			return needValue(geom.Round2(angleBetween(ents[0], ents[1])))
		}
		return created(sketch.Constraint{
			ID:   sketch.ConstraintID(gen()),
			Kind: sketch.ConstraintAngle,
			Data: sketch.AngleData{A: ents[0].ID, B: ents[1].ID, Value: *value},
		})

	case ToolEqual:
		if len(ents) < 2 {
			return needMore("equal requires two entities")
		}
		bothLines := ents[0].Kind == sketch.EntityLine && ents[1].Kind == sketch.EntityLine
		bothCurved := isCurved(ents[0].Kind) && isCurved(ents[1].Kind)
		if !bothLines && !bothCurved {
			return invalid("equal requires two lines or two curved entities")
		}
		return created(sketch.Constraint{
			ID:   sketch.ConstraintID(gen()),
			Kind: sketch.ConstraintEqual,
			Data: sketch.EqualData{A: ents[0].ID, B: ents[1].ID},
		})

	case ToolRadius:
		if len(ents) < 1 {
			return needMore("radius requires a circle or arc")
		}
		r, ok := radiusOf(ents[0])
		if !ok {
			return invalid("radius requires a circle or arc, got " + ents[0].Kind.String())
		}
		if value == nil {
			return needValue(geom.Round2(r))
		}
		return created(sketch.Constraint{
			ID:   sketch.ConstraintID(gen()),
			Kind: sketch.ConstraintRadius,
			Data: sketch.RadiusData{Entity: ents[0].ID, Value: *value},
		})
	}
	return invalid("unknown constraint tool")
}

// resolve maps selected ids to entities, failing on any unknown id.
func resolve(selected []sketch.EntityID, s *sketch.Sketch) ([]sketch.Entity, bool) {
	ents := make([]sketch.Entity, 0, len(selected))
	for _, id := range selected {
		e, ok := s.Entity(id)
		if !ok {
			return nil, false
		}
		ents = append(ents, e)
	}
	return ents, true
}

// closestPair finds the closest pair of endpoints between two entities by
// exhaustive pairwise distance over each entity's endpoint set.
func closestPair(a, b sketch.Entity) (sketch.PointRef, sketch.PointRef, float64, bool) {
	epsA := sketch.Endpoints(a)
	epsB := sketch.Endpoints(b)
	if len(epsA) == 0 || len(epsB) == 0 {
		return sketch.PointRef{}, sketch.PointRef{}, 0, false
	}

	best := math.Inf(1)
	var refA, refB sketch.PointRef
	for _, pa := range epsA {
		for _, pb := range epsB {
			d := pa.P.Sub(pb.P).Length()
			if d < best {
				best = d
				refA = pa.Ref
				refB = pb.Ref
			}
		}
	}
	return refA, refB, best, true
}

// angleBetween returns the unsigned angle between two line directions in
// degrees, via atan2(|cross|, dot).
func angleBetween(a, b sketch.Entity) float64 {
	da := a.Data.(sketch.LineData)
	db := b.Data.(sketch.LineData)
	va := da.End.Sub(da.Start)
	vb := db.End.Sub(db.Start)
	rad := math.Atan2(math.Abs(geom.Cross(va, vb)), va.Dot(vb))
	return rad * 180 / math.Pi
}

// radiusOf returns the current radius of a circle or arc (arcs re-derive
// it from the circumcenter of their three points).
func radiusOf(e sketch.Entity) (float64, bool) {
	switch d := e.Data.(type) {
	case sketch.CircleData:
		return d.Radius, true
	case sketch.ArcData:
		return sketch.ArcRadius(d), true
	}
	return 0, false
}

func isCurved(k sketch.EntityKind) bool {
	return k == sketch.EntityCircle || k == sketch.EntityArc
}
