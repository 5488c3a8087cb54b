package graph

// Node is a single element on the canvas.
type Node struct {
	ID   NodeID   `json:"id"`
	Kind NodeKind `json:"kind"`
	Name string   `json:"name,omitempty"`
	Pos  Vec2     `json:"pos"`
	Data NodeData `json:"data"`
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// CounterData is the payload of a counter node. The count starts at zero and
// has no floor; decrement clicks may take it negative.
type CounterData struct {
	Count int `json:"count"`
}

func (CounterData) nodeData() {}

// OperatorData is the payload of an increment or decrement node. Delta is the
// signed change applied to each connected counter per click.
type OperatorData struct {
	Delta int `json:"delta"`
}

func (OperatorData) nodeData() {}

// Count returns the counter value, or 0 if the node is not a counter.
func (n *Node) Count() int {
	if d, ok := n.Data.(*CounterData); ok {
		return d.Count
	}
	return 0
}

// Edge connects two nodes. It records a source and target because the canvas
// draws connections directionally, but all counting logic treats the pair as
// unordered.
type Edge struct {
	ID     EdgeID `json:"id"`
	Source NodeID `json:"source"`
	Target NodeID `json:"target"`
}

// Other returns the endpoint opposite to id, or ZeroID when id is not an
// endpoint of the edge.
func (e *Edge) Other(id NodeID) NodeID {
	switch id {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return ZeroID
}

// Touches reports whether id is either endpoint.
func (e *Edge) Touches(id NodeID) bool {
	return e.Source == id || e.Target == id
}
