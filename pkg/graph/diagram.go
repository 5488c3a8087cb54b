package graph

import "sort"

// Diagram is the mutable store behind the editor session. It is owned by a
// single interaction surface and mutated synchronously; every operation either
// fully applies or does nothing.
type Diagram struct {
	Nodes     map[NodeID]*Node
	Edges     []*Edge
	NameIndex map[string]NodeID
}

// New creates an empty Diagram.
func New() *Diagram {
	return &Diagram{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// AddNode creates a node of the given kind at the given position with a fresh
// unique id. Counter nodes start with a count of zero. It always succeeds.
func (d *Diagram) AddNode(kind NodeKind, pos Vec2) *Node {
	return d.AddNamedNode(kind, "", pos)
}

// AddNamedNode is AddNode with an optional user-assigned name. Named nodes can
// later be retrieved with Lookup; an empty name is not indexed.
func (d *Diagram) AddNamedNode(kind NodeKind, name string, pos Vec2) *Node {
	n := &Node{
		ID:   NewNodeID(),
		Kind: kind,
		Name: name,
		Pos:  pos,
	}
	if kind == NodeCounter {
		n.Data = &CounterData{}
	} else {
		n.Data = &OperatorData{Delta: kind.Delta()}
	}
	d.Nodes[n.ID] = n
	if name != "" {
		d.NameIndex[name] = n.ID
	}
	return n
}

// Connect appends an edge between two node ids. It performs no validation:
// self-links and same-kind links are recorded as drawn and only flagged by
// Validate. The edge carries direction for display; counting logic ignores it.
func (d *Diagram) Connect(source, target NodeID) *Edge {
	e := &Edge{ID: NewEdgeID(), Source: source, Target: target}
	d.Edges = append(d.Edges, e)
	return e
}

// NeighborsOf returns the ids of all nodes connected to id by exactly one
// edge, checking both endpoints. Each neighbor appears once, in edge insertion
// order. A self-link makes the node its own neighbor.
func (d *Diagram) NeighborsOf(id NodeID) []NodeID {
	var out []NodeID
	seen := make(map[NodeID]bool)
	for _, e := range d.Edges {
		if !e.Touches(id) {
			continue
		}
		other := e.Other(id)
		if !seen[other] {
			seen[other] = true
			out = append(out, other)
		}
	}
	return out
}

// ApplyOperator applies one click of the operator node: every directly
// connected counter gains the operator's delta. Neighbors are never followed
// transitively. Returns the ids of the counters that changed; nil when id is
// unknown, not an operator, or has no counter neighbors (the call is a no-op).
func (d *Diagram) ApplyOperator(id NodeID) []NodeID {
	op := d.Nodes[id]
	if op == nil || !op.Kind.IsOperator() {
		return nil
	}
	delta := op.Kind.Delta()
	var touched []NodeID
	for _, nid := range d.NeighborsOf(id) {
		n := d.Nodes[nid]
		if n == nil || n.Kind != NodeCounter {
			continue
		}
		n.Data.(*CounterData).Count += delta
		touched = append(touched, nid)
	}
	return touched
}

// CanApply reports whether the operator has at least one counter neighbor.
// The UI presents the click control as disabled when this is false; the model
// itself never rejects the click.
func (d *Diagram) CanApply(id NodeID) bool {
	op := d.Nodes[id]
	if op == nil || !op.Kind.IsOperator() {
		return false
	}
	for _, nid := range d.NeighborsOf(id) {
		if n := d.Nodes[nid]; n != nil && n.Kind == NodeCounter {
			return true
		}
	}
	return false
}

// RemoveNode deletes the node and every edge incident to it.
func (d *Diagram) RemoveNode(id NodeID) {
	n, ok := d.Nodes[id]
	if !ok {
		return
	}
	delete(d.Nodes, id)
	if n.Name != "" {
		delete(d.NameIndex, n.Name)
	}
	kept := d.Edges[:0]
	for _, e := range d.Edges {
		if !e.Touches(id) {
			kept = append(kept, e)
		}
	}
	d.Edges = kept
}

// RemoveEdge deletes one edge by id.
func (d *Diagram) RemoveEdge(id EdgeID) {
	for i, e := range d.Edges {
		if e.ID == id {
			d.Edges = append(d.Edges[:i], d.Edges[i+1:]...)
			return
		}
	}
}

// Get returns the node with the given id, or nil.
func (d *Diagram) Get(id NodeID) *Node {
	return d.Nodes[id]
}

// Lookup returns the node with the given user-assigned name, or nil.
func (d *Diagram) Lookup(name string) *Node {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.Nodes[id]
}

// Counters returns all counter nodes, ordered by id.
func (d *Diagram) Counters() []*Node {
	var out []*Node
	for _, n := range d.Nodes {
		if n.Kind == NodeCounter {
			out = append(out, n)
		}
	}
	sortByID(out)
	return out
}

// Operators returns all increment and decrement nodes, ordered by id.
func (d *Diagram) Operators() []*Node {
	var out []*Node
	for _, n := range d.Nodes {
		if n.Kind.IsOperator() {
			out = append(out, n)
		}
	}
	sortByID(out)
	return out
}

func sortByID(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}

// NodeCount returns the total number of nodes.
func (d *Diagram) NodeCount() int {
	return len(d.Nodes)
}

// EdgeCount returns the total number of edges.
func (d *Diagram) EdgeCount() int {
	return len(d.Edges)
}
