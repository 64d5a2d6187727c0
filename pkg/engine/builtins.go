package engine

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burin/pkg/constrain"
	"github.com/chazu/burin/pkg/draw"
	"github.com/chazu/burin/pkg/edit"
	"github.com/chazu/burin/pkg/sketch"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms sketch Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: some-name -> some_name
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpEntityRef wraps a sketch.EntityID so entities can be passed between
// builtins.
type sexpEntityRef struct {
	id   sketch.EntityID
	name string // user-assigned name for error messages
}

func (r *sexpEntityRef) SexpString(ps *zygo.PrintState) string {
	if r.name != "" {
		return fmt.Sprintf("(entity %q)", r.name)
	}
	return fmt.Sprintf("(entity %s)", r.id)
}
func (r *sexpEntityRef) Type() *zygo.RegisteredType { return nil }

// sexpConstraintRef wraps a sketch.ConstraintID.
type sexpConstraintRef struct {
	id sketch.ConstraintID
}

func (r *sexpConstraintRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(constraint %s)", r.id)
}
func (r *sexpConstraintRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toEntityID resolves a builtin argument to an entity id: either an
// entity reference returned by another builtin, or a name string
// registered with :name.
func toEntityID(s *sketch.Sketch, arg zygo.Sexp) (sketch.EntityID, error) {
	switch v := arg.(type) {
	case *sexpEntityRef:
		return v.id, nil
	case *zygo.SexpStr:
		if e, ok := s.Lookup(v.S); ok {
			return e.ID, nil
		}
		// Fall back to treating the string as a raw entity id.
		if e, ok := s.Entity(sketch.EntityID(v.S)); ok {
			return e.ID, nil
		}
		return "", fmt.Errorf("no entity named %q", v.S)
	}
	return "", fmt.Errorf("expected entity reference or name, got %T (%s)", arg, arg.SexpString(nil))
}

// floatsAt extracts n consecutive positional floats starting at offset.
func floatsAt(pa kwArgs, offset, n int, form string) ([]float64, error) {
	if len(pa.positional) < offset+n {
		return nil, fmt.Errorf("%s requires %d numeric arguments", form, n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := toFloat64(pa.positional[offset+i])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", form, offset+i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the sketch DSL builtins into a zygomys
// environment. The builtins operate on the provided Sketch, populating it
// during evaluation. Ids come from counter generators so evaluation is
// deterministic.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *sketch.Sketch) {
	entGen := sketch.NewCounterGen("e")
	conGen := sketch.NewCounterGen("c")

	// addEntity stores a freshly built entity and registers its optional
	// :name.
	addEntity := func(e sketch.Entity, pa kwArgs, form string) (zygo.Sexp, error) {
		name := ""
		if v, ok := pa.kw["name"]; ok {
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: name: %w", form, err)
			}
			name = n
		}
		s.AddEntity(e)
		if name != "" {
			s.Name(name, e.ID)
		}
		return &sexpEntityRef{id: e.ID, name: name}, nil
	}

	// constraintResult turns a constrain.Result into a builtin return,
	// accepting the computed default when a value form omitted its number.
	constraintResult := func(form string, tool constrain.Tool, ids []sketch.EntityID, value *float64) (zygo.Sexp, error) {
		var res constrain.Result
		if value != nil {
			res = constrain.SelectWithValue(tool, ids, s, *value, conGen)
		} else {
			res = constrain.Select(tool, ids, s, conGen)
		}
		if res.Kind == constrain.NeedValue {
			res = constrain.SelectWithValue(tool, ids, s, res.Default, conGen)
		}
		switch res.Kind {
		case constrain.Create:
			s.AddConstraint(res.Constraint)
			return &sexpConstraintRef{id: res.Constraint.ID}, nil
		default:
			return zygo.SexpNull, fmt.Errorf("%s: %s", form, res.Reason)
		}
	}

	// editResult applies an edit.Result's delta and returns the refs of
	// the added entities.
	editResult := func(form string, res edit.Result) (zygo.Sexp, error) {
		if res.Kind != edit.Replace {
			return zygo.SexpNull, fmt.Errorf("%s: %s", form, res.Reason)
		}
		s.Apply(res.Delta)
		refs := make([]zygo.Sexp, 0, len(res.Delta.Add))
		for _, e := range res.Delta.Add {
			refs = append(refs, &sexpEntityRef{id: e.ID})
		}
		return env.NewSexpArray(refs), nil
	}

	// -----------------------------------------------------------------------
	// (line x1 y1 x2 y2 :name "a")
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floatsAt(pa, 0, 4, "line")
		if err != nil {
			return zygo.SexpNull, err
		}
		e := sketch.NewLine(sketch.EntityID(entGen()),
			v2.Vec{X: f[0], Y: f[1]}, v2.Vec{X: f[2], Y: f[3]})
		return addEntity(e, pa, "line")
	})

	// -----------------------------------------------------------------------
	// (rect x1 y1 x2 y2 :name "a")
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floatsAt(pa, 0, 4, "rect")
		if err != nil {
			return zygo.SexpNull, err
		}
		e := sketch.NewRect(sketch.EntityID(entGen()),
			v2.Vec{X: f[0], Y: f[1]}, v2.Vec{X: f[2], Y: f[3]})
		return addEntity(e, pa, "rect")
	})

	// -----------------------------------------------------------------------
	// (circle cx cy r :name "a")
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floatsAt(pa, 0, 3, "circle")
		if err != nil {
			return zygo.SexpNull, err
		}
		if f[2] < draw.MinCircleRadius {
			return zygo.SexpNull, fmt.Errorf("circle: radius %v below minimum %v", f[2], draw.MinCircleRadius)
		}
		e := sketch.NewCircle(sketch.EntityID(entGen()), v2.Vec{X: f[0], Y: f[1]}, f[2])
		return addEntity(e, pa, "circle")
	})

	// -----------------------------------------------------------------------
	// (arc x1 y1 mx my x2 y2 :name "a")  -- start, mid, end
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floatsAt(pa, 0, 6, "arc")
		if err != nil {
			return zygo.SexpNull, err
		}
		e := sketch.NewArc(sketch.EntityID(entGen()),
			v2.Vec{X: f[0], Y: f[1]}, v2.Vec{X: f[2], Y: f[3]}, v2.Vec{X: f[4], Y: f[5]})
		return addEntity(e, pa, "arc")
	})

	// -----------------------------------------------------------------------
	// Constraint forms. Pairwise forms take two entity refs or names;
	// value forms accept an optional trailing number and otherwise adopt
	// the default measured from the current geometry.
	//
	//   (coincident a b) (horizontal a) (vertical a) (parallel a b)
	//   (perpendicular a b) (equal a b) (distance a b 25) (radius a 5)
	//   (angle a b 45)
	// -----------------------------------------------------------------------
	type constraintForm struct {
		name     string
		tool     constrain.Tool
		arity    int
		hasValue bool
	}
	forms := []constraintForm{
		{"coincident", constrain.ToolCoincident, 2, false},
		{"horizontal", constrain.ToolHorizontal, 1, false},
		{"vertical", constrain.ToolVertical, 1, false},
		{"parallel", constrain.ToolParallel, 2, false},
		{"perpendicular", constrain.ToolPerpendicular, 2, false},
		{"equal", constrain.ToolEqual, 2, false},
		{"distance", constrain.ToolDistance, 2, true},
		{"radius", constrain.ToolRadius, 1, true},
		{"angle", constrain.ToolAngle, 2, true},
	}
	for _, cf := range forms {
		cf := cf
		env.AddFunction(cf.name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) < cf.arity {
				return zygo.SexpNull, fmt.Errorf("%s requires %d entity arguments", cf.name, cf.arity)
			}
			ids := make([]sketch.EntityID, cf.arity)
			for i := 0; i < cf.arity; i++ {
				id, err := toEntityID(s, pa.positional[i])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", cf.name, err)
				}
				ids[i] = id
			}
			var value *float64
			if cf.hasValue && len(pa.positional) > cf.arity {
				f, err := toFloat64(pa.positional[cf.arity])
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: value: %w", cf.name, err)
				}
				value = &f
			}
			return constraintResult(cf.name, cf.tool, ids, value)
		})
	}

	// -----------------------------------------------------------------------
	// (trim target x y)  -- x y is the click point selecting the segment
	// -----------------------------------------------------------------------
	env.AddFunction("trim", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("trim requires a target entity")
		}
		id, err := toEntityID(s, pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: %w", err)
		}
		f, err := floatsAt(pa, 1, 2, "trim")
		if err != nil {
			return zygo.SexpNull, err
		}
		return editResult("trim", edit.Trim(s.Entities, id, v2.Vec{X: f[0], Y: f[1]}, entGen))
	})

	// -----------------------------------------------------------------------
	// (extend target)
	// -----------------------------------------------------------------------
	env.AddFunction("extend", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("extend requires a target entity")
		}
		id, err := toEntityID(s, pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: %w", err)
		}
		return editResult("extend", edit.Extend(s.Entities, id, entGen))
	})

	// -----------------------------------------------------------------------
	// (offset target 5)  -- distance optional, defaults when omitted
	// -----------------------------------------------------------------------
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("offset requires a target entity")
		}
		id, err := toEntityID(s, pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		dist := edit.DefaultOffset
		if len(pa.positional) > 1 {
			if dist, err = toFloat64(pa.positional[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("offset: distance: %w", err)
			}
		}
		return editResult("offset", edit.Offset(s.Entities, id, &dist, entGen))
	})

	// -----------------------------------------------------------------------
	// (mirror a b ... axis)  -- last argument is the axis line
	// -----------------------------------------------------------------------
	env.AddFunction("mirror", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("mirror requires entities plus an axis line")
		}
		ids := make([]sketch.EntityID, len(pa.positional))
		for i, arg := range pa.positional {
			id, err := toEntityID(s, arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("mirror: %w", err)
			}
			ids[i] = id
		}
		return editResult("mirror", edit.Mirror(s.Entities, ids, entGen))
	})

	// -----------------------------------------------------------------------
	// (fillet a b 2)  -- radius optional, defaults when omitted
	// -----------------------------------------------------------------------
	env.AddFunction("fillet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		id1, id2, val, err := cornerArgs(s, pa, "fillet", edit.DefaultFilletRadius)
		if err != nil {
			return zygo.SexpNull, err
		}
		return editResult("fillet", edit.Fillet(s.Entities, id1, id2, &val, entGen))
	})

	// -----------------------------------------------------------------------
	// (chamfer a b 2)  -- distance optional, defaults when omitted
	// -----------------------------------------------------------------------
	env.AddFunction("chamfer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		id1, id2, val, err := cornerArgs(s, pa, "chamfer", edit.DefaultChamferDistance)
		if err != nil {
			return zygo.SexpNull, err
		}
		return editResult("chamfer", edit.Chamfer(s.Entities, id1, id2, &val, entGen))
	})
}

// cornerArgs parses the shared (a b value?) argument shape of fillet and
// chamfer.
func cornerArgs(s *sketch.Sketch, pa kwArgs, form string, def float64) (sketch.EntityID, sketch.EntityID, float64, error) {
	if len(pa.positional) < 2 {
		return "", "", 0, fmt.Errorf("%s requires two line entities", form)
	}
	id1, err := toEntityID(s, pa.positional[0])
	if err != nil {
		return "", "", 0, fmt.Errorf("%s: %w", form, err)
	}
	id2, err := toEntityID(s, pa.positional[1])
	if err != nil {
		return "", "", 0, fmt.Errorf("%s: %w", form, err)
	}
	val := def
	if len(pa.positional) > 2 {
		if val, err = toFloat64(pa.positional[2]); err != nil {
			return "", "", 0, fmt.Errorf("%s: value: %w", form, err)
		}
	}
	return id1, id2, val, nil
}
