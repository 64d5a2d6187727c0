package solver

// Status is the outcome reported by the external solver's solve call.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
)

// PrimitiveKind enumerates the solver primitive types: geometry first,
// then the constraint equations.
type PrimitiveKind int

const (
	PrimPoint PrimitiveKind = iota
	PrimLine
	PrimCircle
	PrimArc
	PrimCoincident
	PrimHorizontal
	PrimVertical
	PrimParallel
	PrimPerpendicular
	PrimEqual
	PrimDistance
	PrimRadius
	PrimAngle
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimPoint:
		return "point"
	case PrimLine:
		return "line"
	case PrimCircle:
		return "circle"
	case PrimArc:
		return "arc"
	case PrimCoincident:
		return "coincident"
	case PrimHorizontal:
		return "horizontal"
	case PrimVertical:
		return "vertical"
	case PrimParallel:
		return "parallel"
	case PrimPerpendicular:
		return "perpendicular"
	case PrimEqual:
		return "equal"
	case PrimDistance:
		return "distance"
	case PrimRadius:
		return "radius"
	case PrimAngle:
		return "angle"
	default:
		return "unknown"
	}
}

// Primitive is one entry in the solver's flat primitive graph. Points
// carry coordinates; curves and constraints reference other primitives by
// synthetic id through Refs.
type Primitive struct {
	ID   string
	Kind PrimitiveKind

	X, Y float64 // PrimPoint coordinates

	// Refs lists referenced primitive ids: line [start end], circle
	// [center], arc [center start end], constraints their point or curve
	// operands.
	Refs []string

	// Value is the radius for circle/arc, or the numeric parameter for
	// distance/radius/angle constraints (angle in degrees).
	Value float64

	// Arc angular range, radians.
	StartAngle, EndAngle float64
}

// Solver is the contract with the external geometric constraint solver.
// Production code binds the real numeric module; tests bind a stub.
//
// Invocation order: ClearData, PushPrimitivesAndParams, Solve, then on
// success ApplySolution and DOF. HasConflictingConstraints disambiguates
// a failed solve.
type Solver interface {
	ClearData()
	PushPrimitivesAndParams(prims []Primitive) error
	Solve() Status
	ApplySolution()
	DOF() int
	HasConflictingConstraints() bool
	// Primitive looks up a solved primitive by synthetic id.
	Primitive(id string) (Primitive, bool)
}
