package draw

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/burin/pkg/sketch"
)

// MinCircleRadius is the smallest circle a click pair may create; anything
// smaller is discarded as degenerate.
const MinCircleRadius = 0.01

// Tool enumerates the drawing tools.
type Tool int

const (
	ToolLine Tool = iota
	ToolRectangle
	ToolCircle
	ToolArc
)

func (t Tool) String() string {
	switch t {
	case ToolLine:
		return "line"
	case ToolRectangle:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolArc:
		return "arc"
	default:
		return "unknown"
	}
}

// ParseTool maps a tool name to a Tool.
func ParseTool(name string) (Tool, bool) {
	switch name {
	case "line":
		return ToolLine, true
	case "rectangle", "rect":
		return ToolRectangle, true
	case "circle":
		return ToolCircle, true
	case "arc":
		return ToolArc, true
	}
	return 0, false
}

// ResultKind tags the outcome of a click.
type ResultKind int

const (
	// Advance accumulates the click; the session continues.
	Advance ResultKind = iota
	// Create finishes the session with a new entity.
	Create
	// None discards the session (degenerate geometry).
	None
)

// Result is the outcome of feeding one click to the state machine.
type Result struct {
	Kind   ResultKind
	Points []v2.Vec      // Advance: the new accumulated point list
	Entity sketch.Entity // Create: the entity to add
	Chain  []v2.Vec      // Create: points seeding the next session (chaining tools)
}

func advance(points []v2.Vec) Result {
	return Result{Kind: Advance, Points: points}
}

func create(e sketch.Entity, chain []v2.Vec) Result {
	return Result{Kind: Create, Entity: e, Chain: chain}
}

// Click feeds one click point to the creation state machine. points is the
// accumulator from earlier clicks in the same session (empty on the first
// click); gen supplies the id for a created entity.
func Click(tool Tool, p v2.Vec, points []v2.Vec, gen sketch.IDGen) Result {
	switch tool {
	case ToolLine:
		if len(points) == 0 {
			return advance([]v2.Vec{p})
		}
		e := sketch.NewLine(sketch.EntityID(gen()), points[0], p)
		// Line is the only chaining tool: drawing continues from p.
		return create(e, []v2.Vec{p})

	case ToolRectangle:
		if len(points) == 0 {
			return advance([]v2.Vec{p})
		}
		return create(sketch.NewRect(sketch.EntityID(gen()), points[0], p), nil)

	case ToolCircle:
		if len(points) == 0 {
			return advance([]v2.Vec{p})
		}
		radius := p.Sub(points[0]).Length()
		if radius < MinCircleRadius {
			return Result{Kind: None}
		}
		return create(sketch.NewCircle(sketch.EntityID(gen()), points[0], radius), nil)

	case ToolArc:
		switch len(points) {
		case 0:
			return advance([]v2.Vec{p})
		case 1:
			// Hold start and end; the UI previews with the next point as
			// the putative mid.
			return advance([]v2.Vec{points[0], p})
		default:
			e := sketch.NewArc(sketch.EntityID(gen()), points[0], p, points[1])
			return create(e, nil)
		}
	}
	return Result{Kind: None}
}
