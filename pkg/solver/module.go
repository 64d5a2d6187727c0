package solver

import (
	"fmt"
	"sync"

	"github.com/chazu/burin/pkg/sketch"
)

// Factory constructs a Solver backend. The production factory loads the
// numeric module; tests supply stubs.
type Factory func() (Solver, error)

// Module owns the lifecycle of a solver backend: lazy idempotent Init,
// a readiness probe, and an explicit Destroy. SolveSketch never runs
// against an uninitialized backend; it degrades to the approximate
// counting fallback instead.
type Module struct {
	mu      sync.Mutex
	factory Factory
	backend Solver
}

// NewModule creates a Module around a backend factory. The backend is not
// constructed until Init.
func NewModule(f Factory) *Module {
	return &Module{factory: f}
}

// Init constructs the backend if it is not already up. Safe to call
// repeatedly; only the first successful call does work.
func (m *Module) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend != nil {
		return nil
	}
	if m.factory == nil {
		return fmt.Errorf("solver: no backend factory configured")
	}
	s, err := m.factory()
	if err != nil {
		return fmt.Errorf("solver: init backend: %w", err)
	}
	m.backend = s
	return nil
}

// Ready reports whether a backend is initialized.
func (m *Module) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend != nil
}

// Destroy drops the backend. A later Init builds a fresh one.
func (m *Module) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend != nil {
		m.backend.ClearData()
		m.backend = nil
	}
}

// Result is the outcome of solving a sketch: the (possibly updated)
// entities, the remaining degrees of freedom, the derived constraint
// state, and whether the numbers came from the counting fallback rather
// than the numeric solver.
type Result struct {
	Entities    []sketch.Entity
	DOF         int
	State       sketch.ConstraintState
	Approximate bool
}

// SolveSketch lowers the sketch, runs the backend, and reads solved
// coordinates back. A push failure reports over-constrained with DOF -1.
// A failed solve leaves entities untouched and uses the conflict probe to
// decide between over- and under-constrained. Without a backend, or when
// lowering fails, the approximate fallback is used.
func (m *Module) SolveSketch(s *sketch.Sketch) Result {
	m.mu.Lock()
	backend := m.backend
	m.mu.Unlock()

	if backend == nil || len(s.Entities) == 0 {
		return fallback(s)
	}

	prims, err := Lower(s)
	if err != nil {
		return fallback(s)
	}

	backend.ClearData()
	if err := backend.PushPrimitivesAndParams(prims); err != nil {
		return Result{
			Entities: cloneEntities(s.Entities),
			DOF:      -1,
			State:    sketch.StateOverConstrained,
		}
	}

	if backend.Solve() != StatusSuccess {
		res := Result{Entities: cloneEntities(s.Entities)}
		if backend.HasConflictingConstraints() {
			res.DOF = -1
			res.State = sketch.StateOverConstrained
		} else {
			res.DOF = ApproxDOF(s)
			res.State = sketch.StateUnderConstrained
			res.Approximate = true
		}
		return res
	}

	backend.ApplySolution()
	dof := backend.DOF()
	return Result{
		Entities: readBack(s, backend),
		DOF:      dof,
		State:    sketch.StateForDOF(dof),
	}
}

// fallback returns the sketch unchanged with counting-based numbers.
func fallback(s *sketch.Sketch) Result {
	dof := ApproxDOF(s)
	return Result{
		Entities:    cloneEntities(s.Entities),
		DOF:         dof,
		State:       sketch.StateForDOF(dof),
		Approximate: true,
	}
}

func cloneEntities(in []sketch.Entity) []sketch.Entity {
	out := make([]sketch.Entity, len(in))
	copy(out, in)
	return out
}
