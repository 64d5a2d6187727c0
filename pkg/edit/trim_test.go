package edit

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/chazu/burin/pkg/sketch"
)

const testTol = 1e-9

func gen() sketch.IDGen {
	return sketch.NewCounterGen("t")
}

func nearVec(t *testing.T, got, want v2.Vec, what string) {
	t.Helper()
	if !scalar.EqualWithinAbs(got.X, want.X, testTol) || !scalar.EqualWithinAbs(got.Y, want.Y, testTol) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func lineData(t *testing.T, e sketch.Entity) sketch.LineData {
	t.Helper()
	d, ok := e.Data.(sketch.LineData)
	if !ok {
		t.Fatalf("entity %s is %T, want LineData", e.ID, e.Data)
	}
	return d
}

func arcData(t *testing.T, e sketch.Entity) sketch.ArcData {
	t.Helper()
	d, ok := e.Data.(sketch.ArcData)
	if !ok {
		t.Fatalf("entity %s is %T, want ArcData", e.ID, e.Data)
	}
	return d
}

func TestTrimLineMiddleSegment(t *testing.T) {
	entities := []sketch.Entity{
		sketch.NewLine("target", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 0}),
		sketch.NewLine("v1", v2.Vec{X: 3, Y: -5}, v2.Vec{X: 3, Y: 5}),
		sketch.NewLine("v2", v2.Vec{X: 7, Y: -5}, v2.Vec{X: 7, Y: 5}),
	}
	res := Trim(entities, "target", v2.Vec{X: 5, Y: 0}, gen())
	if res.Kind != Replace {
		t.Fatalf("kind = %v (%s)", res.Kind, res.Reason)
	}
	if len(res.Delta.RemoveIDs) != 1 || res.Delta.RemoveIDs[0] != "target" {
		t.Errorf("remove = %v", res.Delta.RemoveIDs)
	}
	if len(res.Delta.Add) != 2 {
		t.Fatalf("added %d segments, want 2", len(res.Delta.Add))
	}
	d0 := lineData(t, res.Delta.Add[0])
	nearVec(t, d0.Start, v2.Vec{X: 0, Y: 0}, "seg0 start")
	nearVec(t, d0.End, v2.Vec{X: 3, Y: 0}, "seg0 end")
	d1 := lineData(t, res.Delta.Add[1])
	nearVec(t, d1.Start, v2.Vec{X: 7, Y: 0}, "seg1 start")
	nearVec(t, d1.End, v2.Vec{X: 10, Y: 0}, "seg1 end")
}

func TestTrimLineEndSegment(t *testing.T) {
	entities := []sketch.Entity{
		sketch.NewLine("target", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 0}),
		sketch.NewLine("v1", v2.Vec{X: 3, Y: -5}, v2.Vec{X: 3, Y: 5}),
		sketch.NewLine("v2", v2.Vec{X: 7, Y: -5}, v2.Vec{X: 7, Y: 5}),
	}
	res := Trim(entities, "target", v2.Vec{X: 1, Y: 0}, gen())
	if res.Kind != Replace {
		t.Fatalf("kind = %v (%s)", res.Kind, res.Reason)
	}
	if len(res.Delta.Add) != 2 {
		t.Fatalf("added %d segments, want 2", len(res.Delta.Add))
	}
	d0 := lineData(t, res.Delta.Add[0])
	nearVec(t, d0.Start, v2.Vec{X: 3, Y: 0}, "seg0 start")
	nearVec(t, d0.End, v2.Vec{X: 7, Y: 0}, "seg0 end")
}

func TestTrimLineNoIntersections(t *testing.T) {
	entities := []sketch.Entity{
		sketch.NewLine("target", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 0}),
	}
	if res := Trim(entities, "target", v2.Vec{X: 5, Y: 0}, gen()); res.Kind != Invalid {
		t.Errorf("kind = %v, want Invalid", res.Kind)
	}
}

func TestTrimLineAgainstCircle(t *testing.T) {
	// Circle cuts the line at x=2 and x=8; clicking between them keeps
	// the two outer pieces.
	entities := []sketch.Entity{
		sketch.NewLine("target", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 0}),
		sketch.NewCircle("c", v2.Vec{X: 5, Y: 0}, 3),
	}
	res := Trim(entities, "target", v2.Vec{X: 5, Y: 0}, gen())
	if res.Kind != Replace {
		t.Fatalf("kind = %v (%s)", res.Kind, res.Reason)
	}
	if len(res.Delta.Add) != 2 {
		t.Fatalf("added %d segments, want 2", len(res.Delta.Add))
	}
	nearVec(t, lineData(t, res.Delta.Add[0]).End, v2.Vec{X: 2, Y: 0}, "left piece end")
	nearVec(t, lineData(t, res.Delta.Add[1]).Start, v2.Vec{X: 8, Y: 0}, "right piece start")
}

func TestTrimCircleLeavesOneArc(t *testing.T) {
	// Line crosses the circle at 30 and 150 degrees; clicking at 0
	// degrees removes the lower span and keeps the upper arc.
	entities := []sketch.Entity{
		sketch.NewCircle("target", v2.Vec{}, 2),
		sketch.NewLine("l", v2.Vec{X: -5, Y: 1}, v2.Vec{X: 5, Y: 1}),
	}
	res := Trim(entities, "target", v2.Vec{X: 2, Y: 0}, gen())
	if res.Kind != Replace {
		t.Fatalf("kind = %v (%s)", res.Kind, res.Reason)
	}
	if len(res.Delta.Add) != 1 {
		t.Fatalf("added %d arcs, want 1", len(res.Delta.Add))
	}
	d := arcData(t, res.Delta.Add[0])
	sq3 := math.Sqrt(3)
	nearVec(t, d.Start, v2.Vec{X: sq3, Y: 1}, "arc start")
	nearVec(t, d.Mid, v2.Vec{X: 0, Y: 2}, "arc mid")
	nearVec(t, d.End, v2.Vec{X: -sq3, Y: 1}, "arc end")
}

func TestTrimCircleSingleIntersectionInvalid(t *testing.T) {
	entities := []sketch.Entity{
		sketch.NewCircle("target", v2.Vec{}, 2),
		sketch.NewLine("l", v2.Vec{X: -5, Y: 2}, v2.Vec{X: 5, Y: 2}), // tangent
	}
	if res := Trim(entities, "target", v2.Vec{X: 2, Y: 0}, gen()); res.Kind != Invalid {
		t.Errorf("kind = %v, want Invalid", res.Kind)
	}
}

func TestTrimRectSplitsNearestEdge(t *testing.T) {
	entities := []sketch.Entity{
		sketch.NewRect("target", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 10}),
		sketch.NewLine("v", v2.Vec{X: 5, Y: -2}, v2.Vec{X: 5, Y: 2}),
	}
	res := Trim(entities, "target", v2.Vec{X: 2, Y: -0.1}, gen())
	if res.Kind != Replace {
		t.Fatalf("kind = %v (%s)", res.Kind, res.Reason)
	}
	// Three surviving edges plus the kept piece of the bottom edge.
	if len(res.Delta.Add) != 4 {
		t.Fatalf("added %d entities, want 4", len(res.Delta.Add))
	}
	kept := lineData(t, res.Delta.Add[3])
	nearVec(t, kept.Start, v2.Vec{X: 5, Y: 0}, "kept piece start")
	nearVec(t, kept.End, v2.Vec{X: 10, Y: 0}, "kept piece end")
}

func TestTrimLoneRectInvalid(t *testing.T) {
	// With nothing crossing it, even the decomposed edge has no interior
	// intersections.
	entities := []sketch.Entity{
		sketch.NewRect("target", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 10, Y: 10}),
	}
	if res := Trim(entities, "target", v2.Vec{X: 5, Y: -0.1}, gen()); res.Kind != Invalid {
		t.Errorf("kind = %v, want Invalid", res.Kind)
	}
}

func TestTrimArc(t *testing.T) {
	// Upper half arc of radius 2 crossed by a vertical line at 90 deg;
	// clicking near 45 deg keeps the 90..180 sub-arc.
	entities := []sketch.Entity{
		sketch.NewArc("target", v2.Vec{X: 2, Y: 0}, v2.Vec{X: 0, Y: 2}, v2.Vec{X: -2, Y: 0}),
		sketch.NewLine("v", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 0, Y: 3}),
	}
	res := Trim(entities, "target", v2.Vec{X: 1.5, Y: 1.5}, gen())
	if res.Kind != Replace {
		t.Fatalf("kind = %v (%s)", res.Kind, res.Reason)
	}
	if len(res.Delta.Add) != 1 {
		t.Fatalf("added %d arcs, want 1", len(res.Delta.Add))
	}
	d := arcData(t, res.Delta.Add[0])
	nearVec(t, d.Start, v2.Vec{X: 0, Y: 2}, "sub-arc start")
	nearVec(t, d.End, v2.Vec{X: -2, Y: 0}, "sub-arc end")
}

func TestTrimUnknownTarget(t *testing.T) {
	if res := Trim(nil, "nope", v2.Vec{}, gen()); res.Kind != Invalid {
		t.Errorf("kind = %v, want Invalid", res.Kind)
	}
}
