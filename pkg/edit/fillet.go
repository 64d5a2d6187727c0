package edit

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// DefaultFilletRadius is suggested when prompting for a fillet radius.
const DefaultFilletRadius = 1.0

// DefaultChamferDistance is suggested when prompting for a chamfer setback.
const DefaultChamferDistance = 1.0

// maxTrimFraction rejects a fillet or chamfer whose trim distance would
// consume (nearly) a whole line.
const maxTrimFraction = 0.99

// corner is a pair of lines meeting at a shared endpoint.
type corner struct {
	shared v2.Vec // midpoint of the two near-coincident endpoints

	far1, far2 v2.Vec // the untouched endpoints
	dir1, dir2 v2.Vec // unit directions from shared toward far
	len1, len2 float64

	sharedAtStart1, sharedAtStart2 bool
}

// findCorner locates the shared endpoint of two lines, checking all four
// start/end combinations within sketch.SharedEndpointTol and keeping the
// closest pair.
func findCorner(l1, l2 sketch.LineData) (corner, bool) {
	type combo struct {
		p1, p2         v2.Vec
		atStart1, atStart2 bool
	}
	combos := []combo{
		{l1.Start, l2.Start, true, true},
		{l1.Start, l2.End, true, false},
		{l1.End, l2.Start, false, true},
		{l1.End, l2.End, false, false},
	}

	best := math.Inf(1)
	var pick combo
	for _, c := range combos {
		d := c.p1.Sub(c.p2).Length()
		if d < best {
			best = d
			pick = c
		}
	}
	if best > sketch.SharedEndpointTol {
		return corner{}, false
	}

	co := corner{
		shared:         pick.p1.Add(pick.p2).MulScalar(0.5),
		sharedAtStart1: pick.atStart1,
		sharedAtStart2: pick.atStart2,
	}
	if pick.atStart1 {
		co.far1 = l1.End
	} else {
		co.far1 = l1.Start
	}
	if pick.atStart2 {
		co.far2 = l2.End
	} else {
		co.far2 = l2.Start
	}

	var ok bool
	if co.dir1, ok = geom.Direction(co.shared, co.far1); !ok {
		return corner{}, false
	}
	if co.dir2, ok = geom.Direction(co.shared, co.far2); !ok {
		return corner{}, false
	}
	co.len1 = co.far1.Sub(co.shared).Length()
	co.len2 = co.far2.Sub(co.shared).Length()
	return co, true
}

// trimmedLine shortens a line toward its far endpoint, replacing the
// shared endpoint with the tangent point while preserving orientation.
func trimmedLine(l sketch.LineData, sharedAtStart bool, tangent v2.Vec, gen sketch.IDGen) sketch.Entity {
	next := l
	if sharedAtStart {
		next.Start = tangent
	} else {
		next.End = tangent
	}
	return sketch.Entity{ID: sketch.EntityID(gen()), Kind: sketch.EntityLine, Data: next}
}

// Fillet replaces the corner between two lines sharing an endpoint with a
// tangent arc of the given radius, trimming both lines back. radius==nil
// requests a value. Parallel lines, non-shared endpoints and trim
// distances at or beyond 99% of either line's length are Invalid.
func Fillet(entities []sketch.Entity, id1, id2 sketch.EntityID, radius *float64, gen sketch.IDGen) Result {
	l1, l2, res := cornerLines(entities, id1, id2)
	if res != nil {
		return *res
	}
	if radius == nil {
		return needValue(DefaultFilletRadius)
	}
	r := *radius
	if r <= 0 {
		return invalid("fillet radius must be positive")
	}

	co, ok := findCorner(l1, l2)
	if !ok {
		return invalid("lines do not share an endpoint")
	}

	half := halfAngle(co)
	if half < geom.Epsilon || math.Tan(half) < geom.Epsilon {
		return invalid("lines are parallel")
	}
	trim := r / math.Tan(half)
	if trim >= maxTrimFraction*co.len1 || trim >= maxTrimFraction*co.len2 {
		return invalid("fillet radius too large for the selected lines")
	}

	t1 := co.shared.Add(co.dir1.MulScalar(trim))
	t2 := co.shared.Add(co.dir2.MulScalar(trim))

	bis := co.dir1.Add(co.dir2)
	if bis.Length() < geom.Epsilon {
		return invalid("lines are collinear")
	}
	center := co.shared.Add(bis.Normalize().MulScalar(r / math.Sin(half)))
	toCorner, _ := geom.Direction(center, co.shared)
	mid := center.Add(toCorner.MulScalar(r))

	arc := sketch.Entity{
		ID:   sketch.EntityID(gen()),
		Kind: sketch.EntityArc,
		Data: sketch.ArcData{Start: t1, Mid: mid, End: t2},
	}
	return replace(sketch.Delta{
		RemoveIDs: []sketch.EntityID{id1, id2},
		Add: []sketch.Entity{
			trimmedLine(l1, co.sharedAtStart1, t1, gen),
			trimmedLine(l2, co.sharedAtStart2, t2, gen),
			arc,
		},
	})
}

// Chamfer cuts the corner between two lines sharing an endpoint with a
// straight line connecting the two trim points, at the given setback
// distance along each line. distance==nil requests a value.
func Chamfer(entities []sketch.Entity, id1, id2 sketch.EntityID, distance *float64, gen sketch.IDGen) Result {
	l1, l2, res := cornerLines(entities, id1, id2)
	if res != nil {
		return *res
	}
	if distance == nil {
		return needValue(DefaultChamferDistance)
	}
	trim := *distance
	if trim <= 0 {
		return invalid("chamfer distance must be positive")
	}

	co, ok := findCorner(l1, l2)
	if !ok {
		return invalid("lines do not share an endpoint")
	}
	if halfAngle(co) < geom.Epsilon {
		return invalid("lines are parallel")
	}
	if trim >= maxTrimFraction*co.len1 || trim >= maxTrimFraction*co.len2 {
		return invalid("chamfer distance too large for the selected lines")
	}

	t1 := co.shared.Add(co.dir1.MulScalar(trim))
	t2 := co.shared.Add(co.dir2.MulScalar(trim))

	return replace(sketch.Delta{
		RemoveIDs: []sketch.EntityID{id1, id2},
		Add: []sketch.Entity{
			trimmedLine(l1, co.sharedAtStart1, t1, gen),
			trimmedLine(l2, co.sharedAtStart2, t2, gen),
			sketch.NewLine(sketch.EntityID(gen()), t1, t2),
		},
	})
}

// cornerLines resolves the two selected entities, requiring both to be
// lines. A non-nil Result short-circuits the operation.
func cornerLines(entities []sketch.Entity, id1, id2 sketch.EntityID) (sketch.LineData, sketch.LineData, *Result) {
	e1, ok1 := find(entities, id1)
	e2, ok2 := find(entities, id2)
	if !ok1 || !ok2 {
		r := invalid("selection references an unknown entity")
		return sketch.LineData{}, sketch.LineData{}, &r
	}
	l1, ok1 := e1.Data.(sketch.LineData)
	l2, ok2 := e2.Data.(sketch.LineData)
	if !ok1 || !ok2 {
		r := invalid("requires two lines")
		return sketch.LineData{}, sketch.LineData{}, &r
	}
	return l1, l2, nil
}

// halfAngle returns half the angle between the two outward directions.
func halfAngle(co corner) float64 {
	dot := co.dir1.Dot(co.dir2)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	return math.Acos(dot) / 2
}
