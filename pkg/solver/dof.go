package solver

import "github.com/chazu/burin/pkg/sketch"

// EntityDOF returns the degrees of freedom an entity contributes:
// line 4 (two points), rectangle 4 (position plus width and height),
// circle 3 (center plus radius), arc 5 (center, radius and two angles),
// freeform curves 2 per control point.
func EntityDOF(e sketch.Entity) int {
	switch d := e.Data.(type) {
	case sketch.LineData:
		return 4
	case sketch.RectData:
		return 4
	case sketch.CircleData:
		return 3
	case sketch.ArcData:
		return 5
	case sketch.SplineData:
		return 2 * len(d.Points)
	case sketch.BezierData:
		return 2 * len(d.Points)
	default:
		return 0
	}
}

// ConstraintDOF returns the degrees of freedom a constraint removes:
// coincident pins two coordinates, everything else one equation.
func ConstraintDOF(c sketch.Constraint) int {
	if c.Kind == sketch.ConstraintCoincident {
		return 2
	}
	return 1
}

// ApproxDOF estimates the remaining degrees of freedom of a sketch by
// simple counting, without detecting redundant constraints. Used when the
// numeric solver is unavailable or fails to converge.
func ApproxDOF(s *sketch.Sketch) int {
	dof := 0
	for _, e := range s.Entities {
		dof += EntityDOF(e)
	}
	for _, c := range s.Constraints {
		dof -= ConstraintDOF(c)
	}
	return dof
}
