package engine

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/chazu/burin/pkg/sketch"
)

func evaluate(t *testing.T, source string) *sketch.Sketch {
	t.Helper()
	e := NewEngine()
	s, evalErrs, err := e.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return s
}

func TestEmptySourceYieldsEmptySketch(t *testing.T) {
	s := evaluate(t, "")
	if s.EntityCount() != 0 {
		t.Errorf("entity count = %d", s.EntityCount())
	}
}

func TestLineForm(t *testing.T) {
	s := evaluate(t, `(line 0 0 10 0 :name "base")`)
	if s.EntityCount() != 1 {
		t.Fatalf("entity count = %d", s.EntityCount())
	}
	e, ok := s.Lookup("base")
	if !ok {
		t.Fatal("name lookup failed")
	}
	d := e.Data.(sketch.LineData)
	if d.Start.X != 0 || d.End.X != 10 {
		t.Errorf("line = %v -> %v", d.Start, d.End)
	}
}

func TestDeterministicIDs(t *testing.T) {
	src := `(line 0 0 1 0) (circle 5 5 2)`
	s1 := evaluate(t, src)
	s2 := evaluate(t, src)
	if s1.Entities[0].ID != "e1" || s1.Entities[1].ID != "e2" {
		t.Errorf("ids = %v, %v", s1.Entities[0].ID, s1.Entities[1].ID)
	}
	if s2.Entities[0].ID != s1.Entities[0].ID {
		t.Error("evaluation must be reproducible")
	}
}

func TestConstraintForms(t *testing.T) {
	s := evaluate(t, `
		(line 0 0 10 0 :name "a")
		(line 10 0 10 8 :name "b")
		(horizontal "a")
		(perpendicular "a" "b")
		(distance "a" "b" 4)
	`)
	if len(s.Constraints) != 3 {
		t.Fatalf("constraint count = %d", len(s.Constraints))
	}
	if s.Constraints[0].Kind != sketch.ConstraintHorizontal {
		t.Errorf("first constraint = %v", s.Constraints[0].Kind)
	}
	d := s.Constraints[2].Data.(sketch.DistanceData)
	if d.Value != 4 {
		t.Errorf("distance value = %v", d.Value)
	}
}

func TestValueFormAdoptsMeasuredDefault(t *testing.T) {
	// Omitting the radius value adopts the measured radius.
	s := evaluate(t, `
		(circle 0 0 3 :name "c")
		(radius "c")
	`)
	if len(s.Constraints) != 1 {
		t.Fatalf("constraint count = %d", len(s.Constraints))
	}
	d := s.Constraints[0].Data.(sketch.RadiusData)
	if !scalar.EqualWithinAbs(d.Value, 3, 1e-9) {
		t.Errorf("radius value = %v, want measured 3", d.Value)
	}
}

func TestFilletForm(t *testing.T) {
	s := evaluate(t, `
		(line 0 0 10 0 :name "a")
		(line 10 0 10 10 :name "b")
		(fillet "a" "b" 2)
	`)
	// Two trimmed lines plus the tangent arc.
	if s.EntityCount() != 3 {
		t.Fatalf("entity count = %d, want 3", s.EntityCount())
	}
	arcs := 0
	for _, e := range s.Entities {
		if e.Kind == sketch.EntityArc {
			arcs++
		}
	}
	if arcs != 1 {
		t.Errorf("arc count = %d", arcs)
	}
	// Names of the replaced lines are gone.
	if _, ok := s.Lookup("a"); ok {
		t.Error("name of removed entity must be dropped")
	}
}

func TestMirrorForm(t *testing.T) {
	s := evaluate(t, `
		(line 1 1 3 1 :name "l")
		(line 0 0 0 5 :name "axis")
		(mirror "l" "axis")
	`)
	if s.EntityCount() != 3 {
		t.Fatalf("entity count = %d, want 3", s.EntityCount())
	}
	d := s.Entities[2].Data.(sketch.LineData)
	if !scalar.EqualWithinAbs(d.Start.X, -1, 1e-9) || !scalar.EqualWithinAbs(d.End.X, -3, 1e-9) {
		t.Errorf("mirrored line = %v -> %v", d.Start, d.End)
	}
}

func TestTrimForm(t *testing.T) {
	s := evaluate(t, `
		(line 0 0 10 0 :name "t")
		(line 3 -5 3 5)
		(line 7 -5 7 5)
		(trim "t" 5 0)
	`)
	// The target becomes two pieces; the crossers stay.
	if s.EntityCount() != 4 {
		t.Fatalf("entity count = %d, want 4", s.EntityCount())
	}
}

func TestOffsetForm(t *testing.T) {
	s := evaluate(t, `
		(circle 0 0 3 :name "c")
		(offset "c" 2)
	`)
	if s.EntityCount() != 1 {
		t.Fatalf("entity count = %d, want 1", s.EntityCount())
	}
	d := s.Entities[0].Data.(sketch.CircleData)
	if d.Radius != 5 {
		t.Errorf("offset radius = %v, want 5", d.Radius)
	}
}

func TestRuntimeErrorReported(t *testing.T) {
	e := NewEngine()
	s, evalErrs, err := e.Evaluate(`(horizontal "missing")`)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if s != nil || len(evalErrs) == 0 {
		t.Errorf("expected eval errors, got sketch=%v errs=%v", s, evalErrs)
	}
}

func TestParseErrorReported(t *testing.T) {
	e := NewEngine()
	s, evalErrs, err := e.Evaluate(`(line 0 0`)
	if err != nil {
		t.Fatalf("fatal: %v", err)
	}
	if s != nil || len(evalErrs) == 0 {
		t.Errorf("expected eval errors, got sketch=%v errs=%v", s, evalErrs)
	}
}

func TestSemicolonComments(t *testing.T) {
	s := evaluate(t, `
		; leading comment
		(line 0 0 1 0) ;; trailing comment
	`)
	if s.EntityCount() != 1 {
		t.Errorf("entity count = %d", s.EntityCount())
	}
}

func TestPreprocessSource(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`:name`, `"__kw_name"`},
		{`x := 1`, `x := 1`},
		{`some-name`, `some_name`},
		{`(- 5 3)`, `(- 5 3)`},
		{`"a-b :kw"`, `"a-b :kw"`},
		{"; c\n(x)", "// c\n(x)"},
	}
	for _, c := range cases {
		if got := preprocessSource(c.in); got != c.want {
			t.Errorf("preprocess(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseZygomysError(t *testing.T) {
	errs := parseZygomysError(errFromString("Error on line 3: unexpected token"))
	if len(errs) != 1 || errs[0].Line != 3 || !strings.Contains(errs[0].Message, "unexpected token") {
		t.Errorf("errs = %v", errs)
	}

	errs = parseZygomysError(errFromString("something broke"))
	if len(errs) != 1 || errs[0].Line != 0 {
		t.Errorf("fallback errs = %v", errs)
	}
}

type errFromString string

func (e errFromString) Error() string { return string(e) }
