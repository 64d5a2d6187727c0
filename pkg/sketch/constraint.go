package sketch

// ConstraintID is a caller-supplied stable identifier for a constraint.
type ConstraintID string

// ConstraintKind enumerates the constraint variants.
type ConstraintKind int

const (
	ConstraintCoincident ConstraintKind = iota
	ConstraintHorizontal
	ConstraintVertical
	ConstraintParallel
	ConstraintPerpendicular
	ConstraintEqual
	ConstraintDistance
	ConstraintRadius
	ConstraintAngle
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintCoincident:
		return "coincident"
	case ConstraintHorizontal:
		return "horizontal"
	case ConstraintVertical:
		return "vertical"
	case ConstraintParallel:
		return "parallel"
	case ConstraintPerpendicular:
		return "perpendicular"
	case ConstraintEqual:
		return "equal"
	case ConstraintDistance:
		return "distance"
	case ConstraintRadius:
		return "radius"
	case ConstraintAngle:
		return "angle"
	default:
		return "unknown"
	}
}

// Constraint is a single geometric constraint over entities or points.
type Constraint struct {
	ID   ConstraintID   `json:"id"`
	Kind ConstraintKind `json:"kind"`
	Data ConstraintData `json:"data"`
}

// ConstraintData is the interface for kind-specific constraint payloads.
type ConstraintData interface {
	constraintData() // marker method restricting implementations to this package
}

// CoincidentData pins two points together.
type CoincidentData struct {
	A PointRef `json:"a"`
	B PointRef `json:"b"`
}

func (CoincidentData) constraintData() {}

// HorizontalData forces a line horizontal.
type HorizontalData struct {
	Entity EntityID `json:"entity"`
}

func (HorizontalData) constraintData() {}

// VerticalData forces a line vertical.
type VerticalData struct {
	Entity EntityID `json:"entity"`
}

func (VerticalData) constraintData() {}

// ParallelData forces two lines parallel.
type ParallelData struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (ParallelData) constraintData() {}

// PerpendicularData forces two lines perpendicular.
type PerpendicularData struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (PerpendicularData) constraintData() {}

// EqualData forces two lines to equal length, or two curved entities to
// equal radius.
type EqualData struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (EqualData) constraintData() {}

// DistanceData fixes the distance between two points.
type DistanceData struct {
	A     PointRef `json:"a"`
	B     PointRef `json:"b"`
	Value float64  `json:"value"`
}

func (DistanceData) constraintData() {}

// RadiusData fixes the radius of a circle or arc.
type RadiusData struct {
	Entity EntityID `json:"entity"`
	Value  float64  `json:"value"`
}

func (RadiusData) constraintData() {}

// AngleData fixes the angle between two lines, in degrees.
type AngleData struct {
	A     EntityID `json:"a"`
	B     EntityID `json:"b"`
	Value float64  `json:"value"`
}

func (AngleData) constraintData() {}

// EntityRefs returns the entity ids a constraint references.
func (c Constraint) EntityRefs() []EntityID {
	switch d := c.Data.(type) {
	case CoincidentData:
		return []EntityID{d.A.Entity, d.B.Entity}
	case HorizontalData:
		return []EntityID{d.Entity}
	case VerticalData:
		return []EntityID{d.Entity}
	case ParallelData:
		return []EntityID{d.A, d.B}
	case PerpendicularData:
		return []EntityID{d.A, d.B}
	case EqualData:
		return []EntityID{d.A, d.B}
	case DistanceData:
		return []EntityID{d.A.Entity, d.B.Entity}
	case RadiusData:
		return []EntityID{d.Entity}
	case AngleData:
		return []EntityID{d.A, d.B}
	default:
		return nil
	}
}

// ConstraintState classifies a sketch by its remaining degrees of freedom.
type ConstraintState int

const (
	StateUnderConstrained ConstraintState = iota
	StateWellConstrained
	StateOverConstrained
)

func (s ConstraintState) String() string {
	switch s {
	case StateUnderConstrained:
		return "under-constrained"
	case StateWellConstrained:
		return "well-constrained"
	case StateOverConstrained:
		return "over-constrained"
	default:
		return "unknown"
	}
}

// StateForDOF maps a degrees-of-freedom count to a ConstraintState:
// 0 is well-constrained, negative over, positive under.
func StateForDOF(dof int) ConstraintState {
	switch {
	case dof == 0:
		return StateWellConstrained
	case dof < 0:
		return StateOverConstrained
	default:
		return StateUnderConstrained
	}
}
