package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/hulomjosuan21/counter-app/pkg/engine"
	"github.com/hulomjosuan21/counter-app/pkg/graph"
)

// loadDelay simulates the latency of a real load action. The stub completes
// once, eventually, with a notification before and after.
const loadDelay = 600 * time.Millisecond

// App is the Wails backend. It owns the diagram and exposes the interaction
// handlers to the frontend via bindings. The mutex is needed because the Wails
// runtime dispatches each binding call on its own goroutine, even though the
// UI issues them one at a time.
type App struct {
	ctx context.Context

	mu      sync.Mutex
	diagram *graph.Diagram
	theme   string

	engine *engine.Engine
	log    *zap.Logger
}

// ClickResult is returned from ClickOperator: which counters changed, plus
// the refreshed diagram state.
type ClickResult struct {
	Touched []string       `json:"touched"`
	State   graph.Snapshot `json:"state"`
}

// ScriptErrorData is a JSON-serializable script error for the frontend.
type ScriptErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ScriptResult is the full result of running a diagram script.
type ScriptResult struct {
	Errors []ScriptErrorData `json:"errors"`
	State  graph.Snapshot    `json:"state"`
}

// NewApp creates a new App with an empty diagram.
func NewApp() *App {
	log, err := zap.NewDevelopment()
	if err != nil {
		log = zap.NewNop()
	}
	return &App{
		diagram: graph.New(),
		theme:   "light",
		engine:  engine.NewEngine(),
		log:     log,
	}
}

// startup is called by Wails on app startup. The context is saved so runtime
// events can be emitted later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// emit forwards a runtime event to the frontend. Events are skipped when no
// Wails context is present (tests, headless use).
func (a *App) emit(event string, args ...interface{}) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, event, args...)
	}
}

// DropNode materializes a node from a drag payload tag at the drop
// coordinates and returns its view.
func (a *App) DropNode(tag string, x, y float64) (graph.NodeView, error) {
	kind, err := graph.KindFromTag(tag)
	if err != nil {
		return graph.NodeView{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.diagram.AddNode(kind, graph.Vec2{X: x, Y: y})
	a.log.Debug("node dropped",
		zap.String("id", n.ID.Short()),
		zap.Stringer("kind", kind),
	)
	return graph.NodeView{
		ID:     string(n.ID),
		Kind:   kind.String(),
		X:      x,
		Y:      y,
		Active: kind == graph.NodeCounter,
	}, nil
}

// ConnectNodes appends an edge between two existing nodes. The frontend only
// ever sends ids it was handed, so unknown ids are rejected rather than
// recorded as dangling edges.
func (a *App) ConnectNodes(source, target string) (graph.EdgeView, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, id := range []string{source, target} {
		if a.diagram.Get(graph.NodeID(id)) == nil {
			return graph.EdgeView{}, fmt.Errorf("no node with id %q", id)
		}
	}

	e := a.diagram.Connect(graph.NodeID(source), graph.NodeID(target))
	return graph.EdgeView{
		ID:     string(e.ID),
		Source: source,
		Target: target,
	}, nil
}

// ClickOperator applies one click of an operator node. A click on an operator
// with no connected counter is a no-op with an empty touched list; the
// frontend keeps such controls disabled anyway.
func (a *App) ClickOperator(id string) (ClickResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.diagram.Get(graph.NodeID(id))
	if n == nil {
		return ClickResult{}, fmt.Errorf("no node with id %q", id)
	}
	if !n.Kind.IsOperator() {
		return ClickResult{}, fmt.Errorf("node %s is a %s, not an operator", n.ID.Short(), n.Kind)
	}

	touched := a.diagram.ApplyOperator(n.ID)
	res := ClickResult{Touched: make([]string, 0, len(touched))}
	for _, t := range touched {
		res.Touched = append(res.Touched, string(t))
	}
	res.State = a.diagram.Snapshot()
	return res, nil
}

// RemoveNode removes a node and its incident edges. Removing an unknown id is
// a no-op.
func (a *App) RemoveNode(id string) graph.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.diagram.RemoveNode(graph.NodeID(id))
	return a.diagram.Snapshot()
}

// RemoveEdge removes a single edge.
func (a *App) RemoveEdge(id string) graph.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.diagram.RemoveEdge(graph.EdgeID(id))
	return a.diagram.Snapshot()
}

// State returns the current diagram state with validation findings.
func (a *App) State() graph.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.diagram.Snapshot()
}

// SaveDiagram is a stub: it emits the current node/edge collections to the
// diagnostic log and notifies the frontend. Nothing durable is written.
func (a *App) SaveDiagram() error {
	a.mu.Lock()
	snap := a.diagram.Snapshot()
	a.mu.Unlock()

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}

	a.log.Info("diagram saved",
		zap.Int("nodes", len(snap.Nodes)),
		zap.Int("edges", len(snap.Edges)),
		zap.ByteString("state", payload),
	)
	a.emit("diagram:saved")
	return nil
}

// LoadDiagram is a stub with simulated latency. It notifies the frontend
// before and after the artificial delay and returns the current state; there
// is no durable store to read from.
func (a *App) LoadDiagram() graph.Snapshot {
	a.emit("diagram:loading")
	time.Sleep(loadDelay)

	a.mu.Lock()
	snap := a.diagram.Snapshot()
	a.mu.Unlock()

	a.emit("diagram:loaded")
	return snap
}

// RunScript evaluates a diagram script and, on success, replaces the current
// diagram with the result.
func (a *App) RunScript(source string) ScriptResult {
	res := ScriptResult{Errors: []ScriptErrorData{}}

	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout).
		a.log.Error("script evaluation failed", zap.Error(err))
		res.Errors = append(res.Errors, ScriptErrorData{Message: err.Error()})
		res.State = a.State()
		return res
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			res.Errors = append(res.Errors, ScriptErrorData{Line: e.Line, Message: e.Message})
		}
		res.State = a.State()
		return res
	}

	a.mu.Lock()
	a.diagram = d
	snap := a.diagram.Snapshot()
	a.mu.Unlock()

	res.State = snap
	a.emit("diagram:replaced")
	return res
}

// Theme returns the current UI theme.
func (a *App) Theme() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// SetTheme switches the UI theme and notifies every frontend subtree.
func (a *App) SetTheme(theme string) {
	a.mu.Lock()
	a.theme = theme
	a.mu.Unlock()
	a.emit("theme:changed", theme)
}
