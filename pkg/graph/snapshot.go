package graph

import "sort"

// NodeView is the JSON-serializable node format sent to the frontend.
type NodeView struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Name  string  `json:"name,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Count int     `json:"count"`
	// Active mirrors CanApply for operator nodes so the frontend can render
	// the click control as disabled without a second round trip.
	Active bool `json:"active"`
}

// EdgeView is the JSON-serializable edge format sent to the frontend.
type EdgeView struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Snapshot is the complete serializable state of a diagram, including the
// advisory validation findings for the current shape.
type Snapshot struct {
	Nodes    []NodeView `json:"nodes"`
	Edges    []EdgeView `json:"edges"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// Snapshot captures the current diagram state. Nodes are ordered by id so the
// output is deterministic; edges keep insertion order.
func (d *Diagram) Snapshot() Snapshot {
	s := Snapshot{
		Nodes: make([]NodeView, 0, len(d.Nodes)),
		Edges: make([]EdgeView, 0, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		s.Nodes = append(s.Nodes, d.viewOf(n))
	}
	sort.Slice(s.Nodes, func(i, j int) bool { return s.Nodes[i].ID < s.Nodes[j].ID })

	for _, e := range d.Edges {
		s.Edges = append(s.Edges, EdgeView{
			ID:     string(e.ID),
			Source: string(e.Source),
			Target: string(e.Target),
		})
	}

	res := Validate(d)
	for _, e := range res.Errors {
		s.Errors = append(s.Errors, e.Error())
	}
	for _, w := range res.Warnings {
		s.Warnings = append(s.Warnings, w.Message)
	}
	return s
}

func (d *Diagram) viewOf(n *Node) NodeView {
	v := NodeView{
		ID:   string(n.ID),
		Kind: n.Kind.String(),
		Name: n.Name,
		X:    n.Pos.X,
		Y:    n.Pos.Y,
	}
	switch n.Kind {
	case NodeCounter:
		v.Count = n.Count()
		v.Active = true
	default:
		v.Active = d.CanApply(n.ID)
	}
	return v
}
