package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/hulomjosuan21/counter-app/pkg/graph"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms diagram script source before passing it to
// zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     This avoids registering keyword symbols as globals, which would
//     conflict with user-defined variables of the same name.
//
//  2. Line comments: ; comments become // comments, which is what zygomys
//     actually parses.
//
// Both transformations respect string literal boundaries.
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
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
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
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
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
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef wraps a graph.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec2 wraps a graph.Vec2.
type sexpVec2 struct {
	vec graph.Vec2
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

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
				// Keyword at end with no value; treat as flag with nil.
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

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (graph.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return graph.ZeroID, fmt.Errorf("expected node reference, got %T (%s)", s, s.SexpString(nil))
}

// toVec2 extracts a Vec2 from a sexpVec2.
func toVec2(s zygo.Sexp) (graph.Vec2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return graph.Vec2{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the diagram script builtins into a zygomys
// environment. The builtins operate on the provided Diagram, populating and
// mutating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, d *graph.Diagram) {

	// -----------------------------------------------------------------------
	// (vec2 120 80)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: graph.Vec2{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (counter "total" :at (vec2 120 80))
	// -----------------------------------------------------------------------
	env.AddFunction("counter", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("counter requires a name argument")
		}
		cname, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("counter: name: %w", err)
		}
		if d.Lookup(cname) != nil {
			return zygo.SexpNull, fmt.Errorf("counter: name %q already defined", cname)
		}

		pos, err := optionalAt(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("counter: %w", err)
		}

		n := d.AddNamedNode(graph.NodeCounter, cname, pos)
		return &sexpNodeRef{id: n.ID, name: cname}, nil
	})

	// -----------------------------------------------------------------------
	// (increment :at (vec2 200 80)) / (decrement :at (vec2 200 140))
	// -----------------------------------------------------------------------
	addOperatorBuiltin(env, d, "increment", graph.NodeIncrement)
	addOperatorBuiltin(env, d, "decrement", graph.NodeDecrement)

	// -----------------------------------------------------------------------
	// (node "total")
	// -----------------------------------------------------------------------
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("node requires a name argument")
		}
		nname, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: name: %w", err)
		}
		n := d.Lookup(nname)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("node: no node named %q", nname)
		}
		return &sexpNodeRef{id: n.ID, name: nname}, nil
	})

	// -----------------------------------------------------------------------
	// (connect a b)
	// -----------------------------------------------------------------------
	env.AddFunction("connect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("connect requires exactly 2 node references, got %d", len(args))
		}
		src, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: source: %w", err)
		}
		tgt, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("connect: target: %w", err)
		}
		d.Connect(src, tgt)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (click op) / (click op 3)
	// -----------------------------------------------------------------------
	env.AddFunction("click", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("click requires an operator reference")
		}
		id, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("click: %w", err)
		}
		n := d.Get(id)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("click: node %s no longer exists", id.Short())
		}
		if !n.Kind.IsOperator() {
			return zygo.SexpNull, fmt.Errorf("click: %s node is not an operator", n.Kind)
		}

		times := 1
		if len(args) > 1 {
			times, err = toInt(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("click: times: %w", err)
			}
			if times < 0 {
				return zygo.SexpNull, fmt.Errorf("click: times must be non-negative, got %d", times)
			}
		}

		touched := 0
		for i := 0; i < times; i++ {
			touched = len(d.ApplyOperator(id))
		}
		return &zygo.SexpInt{Val: int64(touched)}, nil
	})
}

// addOperatorBuiltin registers an operator-creating builtin. Operators are
// anonymous unless given a :name, since scripts usually only need to hold the
// returned reference.
func addOperatorBuiltin(env *zygo.Zlisp, d *graph.Diagram, fname string, kind graph.NodeKind) {
	env.AddFunction(fname, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		pos, err := optionalAt(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", fname, err)
		}

		oname := ""
		if v, ok := pa.kw["name"]; ok {
			oname, err = toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: name: %w", fname, err)
			}
			if d.Lookup(oname) != nil {
				return zygo.SexpNull, fmt.Errorf("%s: name %q already defined", fname, oname)
			}
		}

		n := d.AddNamedNode(kind, oname, pos)
		return &sexpNodeRef{id: n.ID, name: oname}, nil
	})
}

// optionalAt extracts the :at position keyword, defaulting to the origin.
func optionalAt(pa kwArgs) (graph.Vec2, error) {
	v, ok := pa.kw["at"]
	if !ok {
		return graph.Vec2{}, nil
	}
	pos, err := toVec2(v)
	if err != nil {
		return graph.Vec2{}, fmt.Errorf("at: %w", err)
	}
	return pos, nil
}
