package main

import (
	"context"
	"log"
	"sync"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/constrain"
	"github.com/chazu/burin/pkg/draw"
	"github.com/chazu/burin/pkg/edit"
	"github.com/chazu/burin/pkg/engine"
	"github.com/chazu/burin/pkg/sketch"
	"github.com/chazu/burin/pkg/solver"
	"github.com/chazu/burin/pkg/tessellate"
)

// App is the Wails backend. It owns the live sketch and exposes the
// drawing, constraint, edit and solve operations to the frontend via
// bindings. All bound methods are safe for concurrent use.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	solver *solver.Module

	mu     sync.Mutex // guards sketch state and the drawing session
	sketch *sketch.Sketch
	gen    sketch.IDGen

	// Active drawing session.
	drawActive bool
	drawTool   draw.Tool
	drawPoints []v2.Vec
}

// NewApp creates a new App with an engine, a solver module and an empty
// sketch. Interactive ids are UUIDs so entities survive merges; DSL
// evaluation uses its own deterministic generator.
func NewApp() *App {
	return NewAppWithSolver(nil)
}

// NewAppWithSolver creates an App whose solver module uses the given
// backend factory. A nil factory leaves the module uninitialized and
// solving degrades to the approximate fallback.
func NewAppWithSolver(f solver.Factory) *App {
	return &App{
		engine: engine.NewEngine(),
		solver: solver.NewModule(f),
		sketch: sketch.New(),
		gen:    sketch.NewUUIDGen(),
	}
}

func (a *App) lock()   { a.mu.Lock() }
func (a *App) unlock() { a.mu.Unlock() }

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ---------------------------------------------------------------------------
// Frontend payload types
// ---------------------------------------------------------------------------

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// SketchView is the render payload: one polyline per entity plus the
// current constraint list.
type SketchView struct {
	Polylines   []tessellate.Polyline `json:"polylines"`
	Constraints []ConstraintInfo      `json:"constraints"`
}

// ConstraintInfo is a JSON-serializable constraint summary.
type ConstraintInfo struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Entities []string `json:"entities"`
}

// EvalResult is the full DSL evaluation result returned to the frontend.
type EvalResult struct {
	View   SketchView      `json:"view"`
	Errors []EvalErrorData `json:"errors"`
}

// ClickResult reports the outcome of one drawing click.
type ClickResult struct {
	// Status is "advance", "create" or "none".
	Status string `json:"status"`
	// Preview is the accumulated click points of the open session.
	Preview []float64 `json:"preview"`
	// EntityID is set when Status is "create".
	EntityID string     `json:"entityId,omitempty"`
	View     SketchView `json:"view"`
}

// OpResult reports the outcome of a constraint or edit operation.
type OpResult struct {
	// Status is "ok", "need_more", "need_value" or "invalid".
	Status string `json:"status"`
	// Default carries the suggested value when Status is "need_value".
	Default float64 `json:"default,omitempty"`
	Reason  string  `json:"reason,omitempty"`
	// ConstraintID is set when a constraint was created.
	ConstraintID string `json:"constraintId,omitempty"`
	// AddedIDs lists entities created by an edit.
	AddedIDs []string   `json:"addedIds,omitempty"`
	View     SketchView `json:"view"`
}

// SolveResult reports a solve outcome.
type SolveResult struct {
	DOF         int        `json:"dof"`
	State       string     `json:"state"`
	Approximate bool       `json:"approximate"`
	View        SketchView `json:"view"`
}

func (a *App) view() SketchView {
	v := SketchView{
		Polylines:   tessellate.Tessellate(a.sketch),
		Constraints: make([]ConstraintInfo, 0, len(a.sketch.Constraints)),
	}
	for _, c := range a.sketch.Constraints {
		info := ConstraintInfo{ID: string(c.ID), Kind: c.Kind.String()}
		for _, id := range c.EntityRefs() {
			info.Entities = append(info.Entities, string(id))
		}
		v.Constraints = append(v.Constraints, info)
	}
	return v
}

// ---------------------------------------------------------------------------
// DSL evaluation
// ---------------------------------------------------------------------------

// Evaluate takes Lisp source, rebuilds the sketch from it and returns the
// render payload. This is the binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}}

	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.lock()
	defer a.unlock()
	a.sketch = s
	a.drawActive = false
	a.drawPoints = nil
	result.View = a.view()
	return result
}

// ---------------------------------------------------------------------------
// Drawing sessions
// ---------------------------------------------------------------------------

// StartDraw begins a drawing session with the named tool, discarding any
// open session.
func (a *App) StartDraw(tool string) OpResult {
	t, ok := draw.ParseTool(tool)
	if !ok {
		return OpResult{Status: "invalid", Reason: "unknown drawing tool " + tool}
	}
	a.lock()
	defer a.unlock()
	a.drawActive = true
	a.drawTool = t
	a.drawPoints = nil
	return OpResult{Status: "ok", View: a.view()}
}

// CancelDraw abandons the open drawing session.
func (a *App) CancelDraw() {
	a.lock()
	defer a.unlock()
	a.drawActive = false
	a.drawPoints = nil
}

// Click feeds one canvas click to the active drawing session.
func (a *App) Click(x, y float64) ClickResult {
	a.lock()
	defer a.unlock()

	if !a.drawActive {
		return ClickResult{Status: "none", View: a.view()}
	}

	res := draw.Click(a.drawTool, v2.Vec{X: x, Y: y}, a.drawPoints, a.gen)
	switch res.Kind {
	case draw.Advance:
		a.drawPoints = res.Points
		return ClickResult{Status: "advance", Preview: flattenPoints(a.drawPoints), View: a.view()}

	case draw.Create:
		a.sketch.AddEntity(res.Entity)
		// Chaining tools seed the next session from the last click.
		a.drawPoints = res.Chain
		return ClickResult{
			Status:   "create",
			Preview:  flattenPoints(a.drawPoints),
			EntityID: string(res.Entity.ID),
			View:     a.view(),
		}

	default:
		a.drawPoints = nil
		return ClickResult{Status: "none", View: a.view()}
	}
}

// ---------------------------------------------------------------------------
// Constraints
// ---------------------------------------------------------------------------

// Constrain applies a constraint tool to the selected entities. Value
// tools respond with need_value and a suggested default; the frontend
// prompts and calls ConstrainWithValue.
func (a *App) Constrain(tool string, ids []string) OpResult {
	return a.constrain(tool, ids, nil)
}

// ConstrainWithValue is Constrain with the numeric parameter supplied.
func (a *App) ConstrainWithValue(tool string, ids []string, value float64) OpResult {
	return a.constrain(tool, ids, &value)
}

func (a *App) constrain(tool string, ids []string, value *float64) OpResult {
	t, ok := constrain.ParseTool(tool)
	if !ok {
		return OpResult{Status: "invalid", Reason: "unknown constraint tool " + tool}
	}

	a.lock()
	defer a.unlock()

	var res constrain.Result
	if value != nil {
		res = constrain.SelectWithValue(t, entityIDs(ids), a.sketch, *value, a.gen)
	} else {
		res = constrain.Select(t, entityIDs(ids), a.sketch, a.gen)
	}

	switch res.Kind {
	case constrain.Create:
		a.sketch.AddConstraint(res.Constraint)
		return OpResult{Status: "ok", ConstraintID: string(res.Constraint.ID), View: a.view()}
	case constrain.NeedValue:
		return OpResult{Status: "need_value", Default: res.Default, View: a.view()}
	case constrain.NeedMore:
		return OpResult{Status: "need_more", Reason: res.Reason, View: a.view()}
	default:
		return OpResult{Status: "invalid", Reason: res.Reason, View: a.view()}
	}
}

// DeleteConstraint removes a constraint by id.
func (a *App) DeleteConstraint(id string) OpResult {
	a.lock()
	defer a.unlock()
	if !a.sketch.RemoveConstraint(sketch.ConstraintID(id)) {
		return OpResult{Status: "invalid", Reason: "unknown constraint " + id, View: a.view()}
	}
	return OpResult{Status: "ok", View: a.view()}
}

// ---------------------------------------------------------------------------
// Edit operations
// ---------------------------------------------------------------------------

// Trim removes the clicked segment of an entity, splitting it at its
// intersections with the rest of the sketch.
func (a *App) Trim(id string, x, y float64) OpResult {
	a.lock()
	defer a.unlock()
	return a.applyEdit(edit.Trim(a.sketch.Entities, sketch.EntityID(id), v2.Vec{X: x, Y: y}, a.gen))
}

// Extend lengthens the nearest end of a line to the closest intersection
// within reach.
func (a *App) Extend(id string) OpResult {
	a.lock()
	defer a.unlock()
	return a.applyEdit(edit.Extend(a.sketch.Entities, sketch.EntityID(id), a.gen))
}

// Offset displaces an entity by a signed distance. haveValue false asks
// for the suggested default first.
func (a *App) Offset(id string, value float64, haveValue bool) OpResult {
	a.lock()
	defer a.unlock()
	return a.applyEdit(edit.Offset(a.sketch.Entities, sketch.EntityID(id), optional(value, haveValue), a.gen))
}

// Mirror reflects the selected entities across the last selected line.
func (a *App) Mirror(ids []string) OpResult {
	a.lock()
	defer a.unlock()
	return a.applyEdit(edit.Mirror(a.sketch.Entities, entityIDs(ids), a.gen))
}

// Fillet replaces the corner between two lines with a tangent arc.
func (a *App) Fillet(id1, id2 string, value float64, haveValue bool) OpResult {
	a.lock()
	defer a.unlock()
	return a.applyEdit(edit.Fillet(a.sketch.Entities,
		sketch.EntityID(id1), sketch.EntityID(id2), optional(value, haveValue), a.gen))
}

// Chamfer cuts the corner between two lines with a straight line.
func (a *App) Chamfer(id1, id2 string, value float64, haveValue bool) OpResult {
	a.lock()
	defer a.unlock()
	return a.applyEdit(edit.Chamfer(a.sketch.Entities,
		sketch.EntityID(id1), sketch.EntityID(id2), optional(value, haveValue), a.gen))
}

// DeleteEntity removes an entity and the constraints that reference it.
func (a *App) DeleteEntity(id string) OpResult {
	a.lock()
	defer a.unlock()
	if !a.sketch.RemoveEntity(sketch.EntityID(id)) {
		return OpResult{Status: "invalid", Reason: "unknown entity " + id, View: a.view()}
	}
	return OpResult{Status: "ok", View: a.view()}
}

// applyEdit commits a Replace delta and maps the other outcomes to
// frontend statuses. Callers hold the lock.
func (a *App) applyEdit(res edit.Result) OpResult {
	switch res.Kind {
	case edit.Replace:
		a.sketch.Apply(res.Delta)
		out := OpResult{Status: "ok", View: a.view()}
		for _, e := range res.Delta.Add {
			out.AddedIDs = append(out.AddedIDs, string(e.ID))
		}
		return out
	case edit.NeedValue:
		return OpResult{Status: "need_value", Default: res.Default, View: a.view()}
	case edit.NeedMore:
		return OpResult{Status: "need_more", Reason: res.Reason, View: a.view()}
	default:
		return OpResult{Status: "invalid", Reason: res.Reason, View: a.view()}
	}
}

// ---------------------------------------------------------------------------
// Solving
// ---------------------------------------------------------------------------

// InitSolver initializes the solver backend. Safe to call repeatedly.
func (a *App) InitSolver() OpResult {
	if err := a.solver.Init(); err != nil {
		return OpResult{Status: "invalid", Reason: err.Error()}
	}
	return OpResult{Status: "ok"}
}

// SolverReady reports whether a solver backend is loaded.
func (a *App) SolverReady() bool {
	return a.solver.Ready()
}

// DestroySolver drops the solver backend.
func (a *App) DestroySolver() {
	a.solver.Destroy()
}

// Solve runs the constraint solver over the sketch and commits the solved
// coordinates.
func (a *App) Solve() SolveResult {
	a.lock()
	defer a.unlock()

	res := a.solver.SolveSketch(a.sketch)
	a.sketch.Entities = res.Entities
	return SolveResult{
		DOF:         res.DOF,
		State:       res.State.String(),
		Approximate: res.Approximate,
		View:        a.view(),
	}
}

// ---------------------------------------------------------------------------
// Misc bindings
// ---------------------------------------------------------------------------

// Render returns the current render payload without mutating anything.
func (a *App) Render() SketchView {
	a.lock()
	defer a.unlock()
	return a.view()
}

// Clear resets the sketch and any open drawing session.
func (a *App) Clear() SketchView {
	a.lock()
	defer a.unlock()
	a.sketch = sketch.New()
	a.drawActive = false
	a.drawPoints = nil
	return a.view()
}

func entityIDs(ids []string) []sketch.EntityID {
	out := make([]sketch.EntityID, len(ids))
	for i, id := range ids {
		out[i] = sketch.EntityID(id)
	}
	return out
}

func optional(value float64, have bool) *float64 {
	if !have {
		return nil
	}
	return &value
}

func flattenPoints(pts []v2.Vec) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}
