package sketch

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func near(t *testing.T, got, want float64, what string) {
	t.Helper()
	if !scalar.EqualWithinAbs(got, want, tol) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func nearVec(t *testing.T, got, want v2.Vec, what string) {
	t.Helper()
	if !scalar.EqualWithinAbs(got.X, want.X, tol) || !scalar.EqualWithinAbs(got.Y, want.Y, tol) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestRectCorners(t *testing.T) {
	r := RectData{Corner1: v2.Vec{X: 1, Y: 2}, Corner2: v2.Vec{X: 5, Y: 7}}
	c := r.Corners()
	want := []v2.Vec{{X: 1, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 7}, {X: 1, Y: 7}}
	for i := range want {
		nearVec(t, c[i], want[i], "corner")
	}
}

func TestPointCoords(t *testing.T) {
	line := NewLine("l1", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 4, Y: 0})
	if n := PointCount(line); n != 2 {
		t.Fatalf("line point count = %d, want 2", n)
	}
	p, ok := PointCoords(line, 1)
	if !ok {
		t.Fatal("expected point 1")
	}
	nearVec(t, p, v2.Vec{X: 4, Y: 0}, "line end")

	if _, ok := PointCoords(line, 2); ok {
		t.Error("line has no point 2")
	}

	arc := NewArc("a1", v2.Vec{X: 1, Y: 0}, v2.Vec{X: 0, Y: 1}, v2.Vec{X: -1, Y: 0})
	p, ok = PointCoords(arc, 1)
	if !ok {
		t.Fatal("expected arc mid point")
	}
	nearVec(t, p, v2.Vec{X: 0, Y: 1}, "arc mid")
}

func TestEndpointsSkipArcMid(t *testing.T) {
	arc := NewArc("a1", v2.Vec{X: 1, Y: 0}, v2.Vec{X: 0, Y: 1}, v2.Vec{X: -1, Y: 0})
	eps := Endpoints(arc)
	if len(eps) != 2 {
		t.Fatalf("arc endpoints = %d, want 2", len(eps))
	}
	if eps[0].Ref.Point != 0 || eps[1].Ref.Point != 2 {
		t.Errorf("arc endpoint indices = %d,%d, want 0,2", eps[0].Ref.Point, eps[1].Ref.Point)
	}
}

func TestArcGeometry(t *testing.T) {
	// Upper half of the unit circle.
	d := ArcData{Start: v2.Vec{X: 1, Y: 0}, Mid: v2.Vec{X: 0, Y: 1}, End: v2.Vec{X: -1, Y: 0}}

	c, ok := ArcCenter(d)
	if !ok {
		t.Fatal("expected center")
	}
	nearVec(t, c, v2.Vec{}, "center")
	near(t, ArcRadius(d), 1, "radius")

	from, to, ok := ArcSpan(d)
	if !ok {
		t.Fatal("expected span")
	}
	near(t, from, 0, "span from")
	near(t, to, math.Pi, "span to")

	if !ArcContains(d, math.Pi/2, 0) {
		t.Error("90deg should be on the arc")
	}
	if ArcContains(d, 3*math.Pi/2, 0) {
		t.Error("270deg should be off the arc")
	}
}

func TestArcSpanOrientation(t *testing.T) {
	// Same endpoints, mid on the lower half: span flips to end->start.
	d := ArcData{Start: v2.Vec{X: 1, Y: 0}, Mid: v2.Vec{X: 0, Y: -1}, End: v2.Vec{X: -1, Y: 0}}
	from, to, ok := ArcSpan(d)
	if !ok {
		t.Fatal("expected span")
	}
	near(t, from, math.Pi, "span from")
	near(t, to, 0, "span to")
}

func TestArcDegenerate(t *testing.T) {
	d := ArcData{Start: v2.Vec{}, Mid: v2.Vec{X: 1, Y: 0}, End: v2.Vec{X: 2, Y: 0}}
	if _, ok := ArcCenter(d); ok {
		t.Error("collinear arc must have no center")
	}
	near(t, ArcRadius(d), 0, "degenerate radius")
}

func TestArcFromSpan(t *testing.T) {
	d := ArcFromSpan(v2.Vec{}, 2, 0, math.Pi)
	nearVec(t, d.Start, v2.Vec{X: 2, Y: 0}, "start")
	nearVec(t, d.Mid, v2.Vec{X: 0, Y: 2}, "mid")
	nearVec(t, d.End, v2.Vec{X: -2, Y: 0}, "end")
}

func TestApplyPrunesConstraintsAndNames(t *testing.T) {
	s := New()
	l1 := NewLine("l1", v2.Vec{}, v2.Vec{X: 5, Y: 0})
	l2 := NewLine("l2", v2.Vec{}, v2.Vec{X: 0, Y: 5})
	s.AddEntity(l1)
	s.AddEntity(l2)
	s.Name("first", "l1")
	s.AddConstraint(Constraint{
		ID:   "c1",
		Kind: ConstraintPerpendicular,
		Data: PerpendicularData{A: "l1", B: "l2"},
	})
	s.AddConstraint(Constraint{
		ID:   "c2",
		Kind: ConstraintHorizontal,
		Data: HorizontalData{Entity: "l2"},
	})

	s.Apply(Delta{
		RemoveIDs: []EntityID{"l1"},
		Add:       []Entity{NewLine("l3", v2.Vec{}, v2.Vec{X: 1, Y: 1})},
	})

	if s.EntityCount() != 2 {
		t.Fatalf("entity count = %d, want 2", s.EntityCount())
	}
	if _, ok := s.Entity("l1"); ok {
		t.Error("l1 should be removed")
	}
	if _, ok := s.Entity("l3"); !ok {
		t.Error("l3 should be added")
	}
	if len(s.Constraints) != 1 || s.Constraints[0].ID != "c2" {
		t.Errorf("constraints referencing removed entities must be pruned, got %v", s.Constraints)
	}
	if _, ok := s.Lookup("first"); ok {
		t.Error("name of removed entity must be dropped")
	}
}

func TestRemoveEntity(t *testing.T) {
	s := New()
	s.AddEntity(NewCircle("c1", v2.Vec{}, 3))
	s.AddConstraint(Constraint{ID: "r1", Kind: ConstraintRadius, Data: RadiusData{Entity: "c1", Value: 3}})

	if !s.RemoveEntity("c1") {
		t.Fatal("expected removal")
	}
	if s.RemoveEntity("c1") {
		t.Error("second removal must report false")
	}
	if len(s.Constraints) != 0 {
		t.Error("radius constraint must be pruned with its entity")
	}
}

func TestCounterGenDeterministic(t *testing.T) {
	gen := NewCounterGen("e")
	if got := gen(); got != "e1" {
		t.Errorf("first id = %q, want e1", got)
	}
	if got := gen(); got != "e2" {
		t.Errorf("second id = %q, want e2", got)
	}
}

func TestUUIDGenUnique(t *testing.T) {
	gen := NewUUIDGen()
	a, b := gen(), gen()
	if a == b || a == "" {
		t.Errorf("uuid gen produced %q and %q", a, b)
	}
}

func TestStateForDOF(t *testing.T) {
	cases := []struct {
		dof  int
		want ConstraintState
	}{
		{0, StateWellConstrained},
		{3, StateUnderConstrained},
		{-1, StateOverConstrained},
	}
	for _, c := range cases {
		if got := StateForDOF(c.dof); got != c.want {
			t.Errorf("StateForDOF(%d) = %v, want %v", c.dof, got, c.want)
		}
	}
}

func TestLineLength(t *testing.T) {
	l := LineData{Start: v2.Vec{}, End: v2.Vec{X: 3, Y: 4}}
	near(t, l.Length(), 5, "length")
}
