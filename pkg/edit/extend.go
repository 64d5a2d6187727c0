package edit

import (
	"math"

	"github.com/chazu/burin/pkg/geom"
	"github.com/chazu/burin/pkg/sketch"
)

// ExtendReach is how far past each endpoint a line is extrapolated when
// searching for something to extend to, as a multiple of its own length.
const ExtendReach = 100.0

// extendMinGap is the minimum distance past the original endpoint an
// intersection must lie to count as an extension, in sketch-plane units.
const extendMinGap = 0.01

// Extend lengthens a line to the nearest valid intersection past one of
// its endpoints, choosing whichever side yields the closer hit. Only lines
// can be extended; a line with no reachable intersection on either side is
// Invalid.
func Extend(entities []sketch.Entity, targetID sketch.EntityID, gen sketch.IDGen) Result {
	target, ok := find(entities, targetID)
	if !ok {
		return invalid("extend target not found")
	}
	ld, ok := target.Data.(sketch.LineData)
	if !ok {
		return invalid("can only extend a line, got " + target.Kind.String())
	}
	length := ld.Length()
	if length < geom.Epsilon {
		return invalid("zero-length line")
	}

	hits := lineHits(ld.Start, ld.End, entities, targetID)
	minGapT := extendMinGap / length

	// Past the end: smallest t beyond 1; past the start: largest t below 0.
	bestEnd := math.Inf(1)
	bestStart := math.Inf(-1)
	for _, h := range hits {
		if h.T > 1+minGapT && h.T < 1+ExtendReach && h.T < bestEnd {
			bestEnd = h.T
		}
		if h.T < -minGapT && h.T > -ExtendReach && h.T > bestStart {
			bestStart = h.T
		}
	}

	endDist := math.Inf(1)
	if !math.IsInf(bestEnd, 1) {
		endDist = (bestEnd - 1) * length
	}
	startDist := math.Inf(1)
	if !math.IsInf(bestStart, -1) {
		startDist = -bestStart * length
	}
	if math.IsInf(endDist, 1) && math.IsInf(startDist, 1) {
		return invalid("nothing to extend to")
	}

	var next sketch.LineData
	if endDist <= startDist {
		next = sketch.LineData{Start: ld.Start, End: geom.Lerp(ld.Start, ld.End, bestEnd)}
	} else {
		next = sketch.LineData{Start: geom.Lerp(ld.Start, ld.End, bestStart), End: ld.End}
	}
	return replace(sketch.Delta{
		RemoveIDs: []sketch.EntityID{targetID},
		Add: []sketch.Entity{
			{ID: sketch.EntityID(gen()), Kind: sketch.EntityLine, Data: next},
		},
	})
}
