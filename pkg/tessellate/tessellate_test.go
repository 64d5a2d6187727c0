package tessellate_test

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/chazu/burin/pkg/sketch"
	"github.com/chazu/burin/pkg/tessellate"
)

const tol = 1e-9

func firstPoint(pl tessellate.Polyline) (float64, float64) {
	return pl.Points[0], pl.Points[1]
}

func lastPoint(pl tessellate.Polyline) (float64, float64) {
	n := len(pl.Points)
	return pl.Points[n-2], pl.Points[n-1]
}

func TestLinePolyline(t *testing.T) {
	pl := tessellate.Entity(sketch.NewLine("l1", v2.Vec{X: 1, Y: 2}, v2.Vec{X: 3, Y: 4}))
	if pl.Kind != "line" || pl.Closed {
		t.Errorf("kind=%q closed=%v", pl.Kind, pl.Closed)
	}
	want := []float64{1, 2, 3, 4}
	if len(pl.Points) != len(want) {
		t.Fatalf("points = %v", pl.Points)
	}
	for i := range want {
		if pl.Points[i] != want[i] {
			t.Fatalf("points = %v, want %v", pl.Points, want)
		}
	}
}

func TestRectPolylineClosed(t *testing.T) {
	pl := tessellate.Entity(sketch.NewRect("r1", v2.Vec{X: 0, Y: 0}, v2.Vec{X: 4, Y: 3}))
	if !pl.Closed {
		t.Error("rectangle polyline must be closed")
	}
	if len(pl.Points) != 8 {
		t.Fatalf("got %d floats, want 8", len(pl.Points))
	}
	// Second corner derives from the corner coordinates.
	if pl.Points[2] != 4 || pl.Points[3] != 0 {
		t.Errorf("corner 1 = (%v,%v), want (4,0)", pl.Points[2], pl.Points[3])
	}
}

func TestCirclePolyline(t *testing.T) {
	pl := tessellate.Entity(sketch.NewCircle("c1", v2.Vec{}, 5))
	if !pl.Closed {
		t.Error("circle polyline must be closed")
	}
	if len(pl.Points) != 2*tessellate.CircleSegments {
		t.Fatalf("got %d floats, want %d", len(pl.Points), 2*tessellate.CircleSegments)
	}
	// Every sample sits on the circle.
	for i := 0; i < len(pl.Points); i += 2 {
		p := v2.Vec{X: pl.Points[i], Y: pl.Points[i+1]}
		if !scalar.EqualWithinAbs(p.Length(), 5, tol) {
			t.Fatalf("sample %d off circle: %v", i/2, p)
		}
	}
}

func TestArcPolylineEndpoints(t *testing.T) {
	pl := tessellate.Entity(sketch.NewArc("a1",
		v2.Vec{X: 2, Y: 0}, v2.Vec{X: 0, Y: 2}, v2.Vec{X: -2, Y: 0}))
	if pl.Closed {
		t.Error("arc polyline must be open")
	}
	x, y := firstPoint(pl)
	if !scalar.EqualWithinAbs(x, 2, tol) || !scalar.EqualWithinAbs(y, 0, tol) {
		t.Errorf("first sample = (%v,%v), want (2,0)", x, y)
	}
	x, y = lastPoint(pl)
	if !scalar.EqualWithinAbs(x, -2, tol) || !scalar.EqualWithinAbs(y, 0, tol) {
		t.Errorf("last sample = (%v,%v), want (-2,0)", x, y)
	}
}

func TestDegenerateArcFallsBack(t *testing.T) {
	pl := tessellate.Entity(sketch.NewArc("a1",
		v2.Vec{X: 0, Y: 0}, v2.Vec{X: 1, Y: 0}, v2.Vec{X: 2, Y: 0}))
	if len(pl.Points) != 6 {
		t.Errorf("collinear arc should emit its three raw points, got %v", pl.Points)
	}
}

func TestBezierEndpoints(t *testing.T) {
	pl := tessellate.Entity(sketch.Entity{
		ID:   "b1",
		Kind: sketch.EntityBezier,
		Data: sketch.BezierData{Points: []v2.Vec{{X: 0, Y: 0}, {X: 5, Y: 10}, {X: 10, Y: 0}}},
	})
	x, y := firstPoint(pl)
	if x != 0 || y != 0 {
		t.Errorf("first sample = (%v,%v)", x, y)
	}
	x, y = lastPoint(pl)
	if !scalar.EqualWithinAbs(x, 10, tol) || !scalar.EqualWithinAbs(y, 0, tol) {
		t.Errorf("last sample = (%v,%v)", x, y)
	}
	// Quadratic midpoint of this symmetric curve is (5,5).
	mid := len(pl.Points) / 4 * 2
	if !scalar.EqualWithinAbs(pl.Points[mid], 5, 0.2) {
		t.Errorf("mid sample x = %v", pl.Points[mid])
	}
}

func TestSplinePassesThroughEndpoints(t *testing.T) {
	pl := tessellate.Entity(sketch.Entity{
		ID:   "s1",
		Kind: sketch.EntitySpline,
		Data: sketch.SplineData{Points: []v2.Vec{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}}},
	})
	x, y := firstPoint(pl)
	if x != 0 || y != 0 {
		t.Errorf("first sample = (%v,%v)", x, y)
	}
	x, y = lastPoint(pl)
	if x != 10 || y != 0 {
		t.Errorf("last sample = (%v,%v)", x, y)
	}
}

func TestTessellateSketch(t *testing.T) {
	s := sketch.New()
	s.AddEntity(sketch.NewLine("l1", v2.Vec{}, v2.Vec{X: 1, Y: 0}))
	s.AddEntity(sketch.NewCircle("c1", v2.Vec{}, 1))

	pls := tessellate.Tessellate(s)
	if len(pls) != 2 {
		t.Fatalf("got %d polylines, want 2", len(pls))
	}
	if pls[0].EntityID != "l1" || pls[1].EntityID != "c1" {
		t.Errorf("ids = %s, %s", pls[0].EntityID, pls[1].EntityID)
	}
}
