package edit

import (
	"math"
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// ArcClickTol widens the sub-arc containment test during arc trimming, in
// radians. Clicks near an intersection angle still select a sub-arc.
const ArcClickTol = 0.1

// Trim removes the portion of the clicked entity between its nearest
// intersection boundaries. Lines are cut at their intersections with all
// other entities; rectangles are first decomposed into four independent
// lines with the edge nearest the click as the trim target; circles and
// arcs are segmented by intersection angles. An entity with too few
// intersections to cut is Invalid.
func Trim(entities []sketch.Entity, targetID sketch.EntityID, click v2.Vec, gen sketch.IDGen) Result {
	target, ok := find(entities, targetID)
	if !ok {
		return invalid("trim target not found")
	}

	switch d := target.Data.(type) {
	case sketch.LineData:
		segs, ok := trimLine(d, click, entities, targetID, gen)
		if !ok {
			return invalid("no intersections to trim against")
		}
		return replace(sketch.Delta{RemoveIDs: []sketch.EntityID{targetID}, Add: segs})

	case sketch.RectData:
		return trimRect(d, click, entities, targetID, gen)

	case sketch.CircleData:
		return trimCircle(d, click, entities, targetID, gen)

	case sketch.ArcData:
		return trimArc(d, click, entities, targetID, gen)

	default:
		return invalid("cannot trim a " + target.Kind.String())
	}
}

// trimLine cuts the segment at its interior intersections, dropping the
// sub-segment containing the click. Returns ok=false when there is
// nothing to cut against.
func trimLine(ld sketch.LineData, click v2.Vec, entities []sketch.Entity, exclude sketch.EntityID, gen sketch.IDGen) ([]sketch.Entity, bool) {
	var ts []float64
	for _, h := range lineHits(ld.Start, ld.End, entities, exclude) {
		if h.T > onSegmentTol && h.T < 1-onSegmentTol {
			ts = append(ts, h.T)
		}
	}
	ts = dedupeSorted(ts, onSegmentTol)
	if len(ts) == 0 {
		return nil, false
	}

	// Ordered boundary list [0, t_1..t_n, 1].
	bounds := make([]float64, 0, len(ts)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, ts...)
	bounds = append(bounds, 1)

	tc := geom.ParamOnLine(click, ld.Start, ld.End)
	if tc < 0 {
		tc = 0
	} else if tc > 1 {
		tc = 1
	}
	clicked := len(bounds) - 2
	for i := 0; i < len(bounds)-1; i++ {
		if tc <= bounds[i+1] {
			clicked = i
			break
		}
	}

	var segs []sketch.Entity
	for i := 0; i < len(bounds)-1; i++ {
		if i == clicked || bounds[i+1]-bounds[i] < onSegmentTol {
			continue
		}
		segs = append(segs, sketch.NewLine(
			sketch.EntityID(gen()),
			geom.Lerp(ld.Start, ld.End, bounds[i]),
			geom.Lerp(ld.Start, ld.End, bounds[i+1]),
		))
	}
	return segs, true
}

// trimRect decomposes the rectangle into four lines and trims the edge
// nearest the click; the other three edges survive as independent lines.
func trimRect(rd sketch.RectData, click v2.Vec, entities []sketch.Entity, targetID sketch.EntityID, gen sketch.IDGen) Result {
	edges := rd.Edges()
	nearest := 0
	best := math.Inf(1)
	for i, edge := range edges {
		d := geom.PointSegmentDistance(click, edge.Start, edge.End)
		if d < best {
			best = d
			nearest = i
		}
	}

	// The surviving edges become real entities and also participate in
	// the intersection scan for the trimmed edge.
	work := make([]sketch.Entity, 0, len(entities)+3)
	var survivors []sketch.Entity
	for _, e := range entities {
		if e.ID != targetID {
			work = append(work, e)
		}
	}
	for i, edge := range edges {
		if i == nearest {
			continue
		}
		line := sketch.NewLine(sketch.EntityID(gen()), edge.Start, edge.End)
		survivors = append(survivors, line)
		work = append(work, line)
	}

	segs, ok := trimLine(edges[nearest], click, work, "", gen)
	if !ok {
		return invalid("no intersections to trim against")
	}
	return replace(sketch.Delta{
		RemoveIDs: []sketch.EntityID{targetID},
		Add:       append(survivors, segs...),
	})
}

// trimCircle cuts the circle into arcs between consecutive intersection
// angles, omitting the arc containing the click angle. Fewer than two
// intersections cannot produce an arc.
func trimCircle(cd sketch.CircleData, click v2.Vec, entities []sketch.Entity, targetID sketch.EntityID, gen sketch.IDGen) Result {
	var angles []float64
	for _, p := range circleHits(cd.Center, cd.Radius, entities, targetID) {
		angles = append(angles, geom.AngleOf(cd.Center, p))
	}
	sort.Float64s(angles)
	angles = dedupeSorted(angles, onSegmentTol)
	if len(angles) < 2 {
		return invalid("circle trim requires at least two intersections")
	}

	clickAngle := geom.AngleOf(cd.Center, click)
	clicked := 0
	for i := range angles {
		from := angles[i]
		to := angles[(i+1)%len(angles)]
		if geom.AngleInSpan(clickAngle, from, to, onSegmentTol) {
			clicked = i
			break
		}
	}

	var arcs []sketch.Entity
	for i := range angles {
		if i == clicked {
			continue
		}
		from := angles[i]
		to := angles[(i+1)%len(angles)]
		ad := sketch.ArcFromSpan(cd.Center, cd.Radius, from, to)
		arcs = append(arcs, sketch.Entity{ID: sketch.EntityID(gen()), Kind: sketch.EntityArc, Data: ad})
	}
	return replace(sketch.Delta{RemoveIDs: []sketch.EntityID{targetID}, Add: arcs})
}

// trimArc applies the circle segmentation restricted to the arc's own
// angular span, using ArcClickTol to decide which sub-arc holds the click.
func trimArc(ad sketch.ArcData, click v2.Vec, entities []sketch.Entity, targetID sketch.EntityID, gen sketch.IDGen) Result {
	center, ok := sketch.ArcCenter(ad)
	if !ok {
		return invalid("degenerate arc")
	}
	radius := ad.Start.Sub(center).Length()
	from, to, _ := sketch.ArcSpan(ad)
	span := geom.SpanCCW(from, to)

	var offsets []float64
	for _, p := range circleHits(center, radius, entities, targetID) {
		o := geom.AngleNorm(geom.AngleOf(center, p) - from)
		if o > onSegmentTol && o < span-onSegmentTol {
			offsets = append(offsets, o)
		}
	}
	sort.Float64s(offsets)
	offsets = dedupeSorted(offsets, onSegmentTol)
	if len(offsets) == 0 {
		return invalid("no intersections to trim against")
	}

	bounds := make([]float64, 0, len(offsets)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, offsets...)
	bounds = append(bounds, span)

	oc := geom.AngleNorm(geom.AngleOf(center, click) - from)
	if oc > span {
		oc = span
	}
	clicked := len(bounds) - 2
	for i := 0; i < len(bounds)-1; i++ {
		if oc >= bounds[i]-ArcClickTol && oc <= bounds[i+1]+ArcClickTol {
			clicked = i
			break
		}
	}

	var arcs []sketch.Entity
	for i := 0; i < len(bounds)-1; i++ {
		if i == clicked || bounds[i+1]-bounds[i] < onSegmentTol {
			continue
		}
		sub := sketch.ArcFromSpan(center, radius, from+bounds[i], from+bounds[i+1])
		arcs = append(arcs, sketch.Entity{ID: sketch.EntityID(gen()), Kind: sketch.EntityArc, Data: sub})
	}
	return replace(sketch.Delta{RemoveIDs: []sketch.EntityID{targetID}, Add: arcs})
}

func find(entities []sketch.Entity, id sketch.EntityID) (sketch.Entity, bool) {
	for _, e := range entities {
		if e.ID == id {
			return e, true
		}
	}
	return sketch.Entity{}, false
}

// dedupeSorted collapses near-equal values in an ascending slice.
func dedupeSorted(vals []float64, tol float64) []float64 {
	sort.Float64s(vals)
	out := vals[:0]
	for _, v := range vals {
		if len(out) == 0 || v-out[len(out)-1] > tol {
			out = append(out, v)
		}
	}
	return out
}
