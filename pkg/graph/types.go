package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID uniquely identifies a node for the lifetime of a diagram.
type NodeID string

// EdgeID uniquely identifies an edge.
type EdgeID string

// NewNodeID returns a fresh random node identifier.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// NewEdgeID returns a fresh random edge identifier.
func NewEdgeID() EdgeID {
	return EdgeID(uuid.NewString())
}

// ZeroID is the zero-value node identifier.
const ZeroID = NodeID("")

// IsZero reports whether the id is the zero value.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns an abbreviated form of the id for log and error messages.
func (id NodeID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// NodeKind discriminates the node types on the canvas. The kind is carried
// explicitly on every node; nothing in this package inspects id strings.
type NodeKind int

const (
	NodeCounter   NodeKind = iota // display node holding a mutable count
	NodeIncrement                 // operator adding 1 to connected counters
	NodeDecrement                 // operator subtracting 1 from connected counters
)

func (k NodeKind) String() string {
	switch k {
	case NodeCounter:
		return "counter"
	case NodeIncrement:
		return "increment"
	case NodeDecrement:
		return "decrement"
	default:
		return "unknown"
	}
}

// IsOperator reports whether the kind is an increment or decrement node.
func (k NodeKind) IsOperator() bool {
	return k == NodeIncrement || k == NodeDecrement
}

// Delta returns the count change an operator of this kind applies to each
// connected counter. Zero for non-operator kinds.
func (k NodeKind) Delta() int {
	switch k {
	case NodeIncrement:
		return 1
	case NodeDecrement:
		return -1
	}
	return 0
}

// Drag payload tags carried through the host drag-data channel. "display" is
// the historical tag for counter nodes.
const (
	TagDisplay   = "display"
	TagIncrement = "increment"
	TagDecrement = "decrement"
)

// KindFromTag maps a drag payload tag to a NodeKind.
func KindFromTag(tag string) (NodeKind, error) {
	switch tag {
	case TagDisplay:
		return NodeCounter, nil
	case TagIncrement:
		return NodeIncrement, nil
	case TagDecrement:
		return NodeDecrement, nil
	}
	return 0, fmt.Errorf("unknown drag tag %q", tag)
}

// Vec2 is a canvas position. Positions have no meaning beyond display.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
