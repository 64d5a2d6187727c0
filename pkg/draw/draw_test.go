package draw

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/sketch"
)

func gen() sketch.IDGen {
	return sketch.NewCounterGen("e")
}

func TestLineTwoClicks(t *testing.T) {
	g := gen()
	res := Click(ToolLine, v2.Vec{X: 1, Y: 1}, nil, g)
	if res.Kind != Advance || len(res.Points) != 1 {
		t.Fatalf("first click: kind=%v points=%d", res.Kind, len(res.Points))
	}

	res = Click(ToolLine, v2.Vec{X: 5, Y: 1}, res.Points, g)
	if res.Kind != Create {
		t.Fatalf("second click: kind=%v, want Create", res.Kind)
	}
	d, ok := res.Entity.Data.(sketch.LineData)
	if !ok {
		t.Fatalf("entity data is %T, want LineData", res.Entity.Data)
	}
	if d.Start != (v2.Vec{X: 1, Y: 1}) || d.End != (v2.Vec{X: 5, Y: 1}) {
		t.Errorf("line = %v -> %v", d.Start, d.End)
	}
}

func TestLineChains(t *testing.T) {
	g := gen()
	res := Click(ToolLine, v2.Vec{}, nil, g)
	res = Click(ToolLine, v2.Vec{X: 5, Y: 0}, res.Points, g)
	if res.Kind != Create {
		t.Fatal("expected Create")
	}
	// Chaining: the next session is seeded with the last click.
	if len(res.Chain) != 1 || res.Chain[0] != (v2.Vec{X: 5, Y: 0}) {
		t.Fatalf("chain = %v, want [{5 0}]", res.Chain)
	}

	res = Click(ToolLine, v2.Vec{X: 5, Y: 5}, res.Chain, g)
	if res.Kind != Create {
		t.Fatal("chained click should create immediately")
	}
	d := res.Entity.Data.(sketch.LineData)
	if d.Start != (v2.Vec{X: 5, Y: 0}) {
		t.Errorf("chained line starts at %v", d.Start)
	}
}

func TestRectangleDoesNotChain(t *testing.T) {
	g := gen()
	res := Click(ToolRectangle, v2.Vec{}, nil, g)
	res = Click(ToolRectangle, v2.Vec{X: 4, Y: 3}, res.Points, g)
	if res.Kind != Create {
		t.Fatal("expected Create")
	}
	if res.Chain != nil {
		t.Errorf("rectangle must not chain, got %v", res.Chain)
	}
	d := res.Entity.Data.(sketch.RectData)
	if d.Corner1 != (v2.Vec{}) || d.Corner2 != (v2.Vec{X: 4, Y: 3}) {
		t.Errorf("rect corners = %v %v", d.Corner1, d.Corner2)
	}
}

func TestCircleFromCenterAndRadiusPoint(t *testing.T) {
	g := gen()
	res := Click(ToolCircle, v2.Vec{X: 2, Y: 2}, nil, g)
	res = Click(ToolCircle, v2.Vec{X: 5, Y: 6}, res.Points, g)
	if res.Kind != Create {
		t.Fatal("expected Create")
	}
	d := res.Entity.Data.(sketch.CircleData)
	if d.Center != (v2.Vec{X: 2, Y: 2}) || d.Radius != 5 {
		t.Errorf("circle = center %v radius %v", d.Center, d.Radius)
	}
}

func TestCircleTooSmallDiscarded(t *testing.T) {
	g := gen()
	res := Click(ToolCircle, v2.Vec{X: 2, Y: 2}, nil, g)
	res = Click(ToolCircle, v2.Vec{X: 2, Y: 2.005}, res.Points, g)
	if res.Kind != None {
		t.Fatalf("kind = %v, want None for radius below %v", res.Kind, MinCircleRadius)
	}
}

func TestArcThreeClicks(t *testing.T) {
	g := gen()
	res := Click(ToolArc, v2.Vec{X: 1, Y: 0}, nil, g)
	if res.Kind != Advance {
		t.Fatal("first click should advance")
	}
	res = Click(ToolArc, v2.Vec{X: -1, Y: 0}, res.Points, g)
	if res.Kind != Advance || len(res.Points) != 2 {
		t.Fatalf("second click: kind=%v points=%d", res.Kind, len(res.Points))
	}
	// Third click supplies the mid point between the held endpoints.
	res = Click(ToolArc, v2.Vec{X: 0, Y: 1}, res.Points, g)
	if res.Kind != Create {
		t.Fatal("third click should create")
	}
	d := res.Entity.Data.(sketch.ArcData)
	if d.Start != (v2.Vec{X: 1, Y: 0}) || d.Mid != (v2.Vec{X: 0, Y: 1}) || d.End != (v2.Vec{X: -1, Y: 0}) {
		t.Errorf("arc = %v %v %v", d.Start, d.Mid, d.End)
	}
}

func TestParseTool(t *testing.T) {
	cases := []struct {
		name string
		want Tool
		ok   bool
	}{
		{"line", ToolLine, true},
		{"rect", ToolRectangle, true},
		{"rectangle", ToolRectangle, true},
		{"circle", ToolCircle, true},
		{"arc", ToolArc, true},
		{"polygon", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseTool(c.name)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ParseTool(%q) = %v,%v", c.name, got, ok)
		}
	}
}
