package graph

import "fmt"

// ValidationSeverity indicates whether a finding is structural (error) or
// merely advisory (warning).
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // structural problem
	SeverityWarning                           // advisory
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single structural finding.
type ValidationError struct {
	NodeID   NodeID // which node has the problem (zero if edge-level)
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	NodeID  NodeID
	Message string
}

// ValidationResult bundles errors and warnings from all checks.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate inspects the diagram and reports findings. Connections are never
// rejected at creation time, so degenerate shapes (self-links, same-kind
// links, idle operators) surface here as warnings; only a dangling edge
// endpoint is an error. Validate is read-only and never mutates the diagram.
func Validate(d *Diagram) ValidationResult {
	var res ValidationResult
	res.Errors = append(res.Errors, validateEndpoints(d)...)
	res.Warnings = append(res.Warnings, warnDegenerateEdges(d)...)
	res.Warnings = append(res.Warnings, warnIdleOperators(d)...)
	return res
}

// validateEndpoints flags edges whose endpoints reference missing nodes.
func validateEndpoints(d *Diagram) []ValidationError {
	var errs []ValidationError
	for _, e := range d.Edges {
		for _, id := range []NodeID{e.Source, e.Target} {
			if d.Nodes[id] == nil {
				errs = append(errs, ValidationError{
					Message:  fmt.Sprintf("edge %s references missing node %s", e.ID, id.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// warnDegenerateEdges flags self-links, links between two nodes of the same
// category, and duplicate edges over the same unordered pair.
func warnDegenerateEdges(d *Diagram) []ValidationWarning {
	var warns []ValidationWarning
	type pair struct{ a, b NodeID }
	seen := make(map[pair]bool)

	for _, e := range d.Edges {
		if e.Source == e.Target {
			warns = append(warns, ValidationWarning{
				NodeID:  e.Source,
				Message: fmt.Sprintf("node %s is connected to itself", e.Source.Short()),
			})
			continue
		}

		p := pair{e.Source, e.Target}
		if p.b < p.a {
			p.a, p.b = p.b, p.a
		}
		if seen[p] {
			warns = append(warns, ValidationWarning{
				Message: fmt.Sprintf("duplicate connection between %s and %s", p.a.Short(), p.b.Short()),
			})
		}
		seen[p] = true

		src, tgt := d.Nodes[e.Source], d.Nodes[e.Target]
		if src == nil || tgt == nil {
			continue // dangling endpoint, reported as an error
		}
		switch {
		case src.Kind == NodeCounter && tgt.Kind == NodeCounter:
			warns = append(warns, ValidationWarning{
				Message: fmt.Sprintf("connection %s links two counters; it has no effect", e.ID),
			})
		case src.Kind.IsOperator() && tgt.Kind.IsOperator():
			warns = append(warns, ValidationWarning{
				Message: fmt.Sprintf("connection %s links two operators; it has no effect", e.ID),
			})
		}
	}
	return warns
}

// warnIdleOperators flags operators with no counter neighbor. Clicking them is
// a no-op; the UI renders them disabled.
func warnIdleOperators(d *Diagram) []ValidationWarning {
	var warns []ValidationWarning
	for _, op := range d.Operators() {
		if !d.CanApply(op.ID) {
			warns = append(warns, ValidationWarning{
				NodeID:  op.ID,
				Message: fmt.Sprintf("%s node %s has no connected counter", op.Kind, op.ID.Short()),
			})
		}
	}
	return warns
}
