package traversal

import (
	"context"
	"fmt"

	"github.com/mxu49/taintwalk/internal/calltrace"
	"github.com/mxu49/taintwalk/internal/taint"
)

// Result is the outcome of one traversal run: the chains found from the
// sink back to every root, and the taint known about every function
// visited. Diagnostic is set instead of Chains when the sink itself
// isn't present in the call graph.
type Result struct {
	Sink       string
	Chains     [][]string
	Map        taint.Map
	Diagnostic string
}

// Driver runs the full backward-then-forward taint sweep over every call
// chain into a sink.
type Driver struct {
	Graph  *calltrace.Graph
	Source StatementSource
	Engine *taint.Engine
	Sink   string
}

// NewDriver builds a driver over graph, seeding the engine with defs for
// the backward sweep's previousFunction/alias matching.
func NewDriver(graph *calltrace.Graph, source StatementSource, sink string, defs map[string][]string) *Driver {
	return &Driver{
		Graph:  graph,
		Source: source,
		Engine: taint.NewEngine(graph, defs),
		Sink:   sink,
	}
}

// Run seeds the taint map from the graph's pollution info (for every
// function it names, not just ones on a chain into the sink), enumerates
// every call chain into the sink, sweeps every chain backward and then
// every chain forward, and drains the worklist of callees discovered
// along the way.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	target := d.Graph.FindNode(d.Sink)
	if target == nil {
		return &Result{
			Sink:       d.Sink,
			Diagnostic: fmt.Sprintf("sink %q not found in call graph", d.Sink),
		}, nil
	}

	d.seedPollution()

	chains := d.Graph.FindAllCallChains(target)

	for _, chain := range chains {
		d.runChain(ctx, chain, false)
	}
	for _, chain := range chains {
		d.runChain(ctx, chain, true)
	}

	chainNames := make([][]string, len(chains))
	for i, c := range chains {
		names := make([]string, len(c))
		for j, n := range c {
			names[j] = n.Name()
		}
		chainNames[i] = names
	}

	return &Result{Sink: d.Sink, Chains: chainNames, Map: d.Engine.Map}, nil
}

func (d *Driver) seedPollution() {
	for function, info := range d.Graph.Pollution {
		entry := d.Engine.Map.Entry(function)
		for v := range info.Var {
			entry.Locals[v] = struct{}{}
		}
		for idx := range info.Index {
			entry.Slots[idx] = struct{}{}
		}
	}
}

type workItem struct {
	name    string
	hasArgs bool
}

// runChain sweeps one call chain in one direction. Backward visits the
// sink end first (the chain is reversed before iterating) and carries
// previousFunction forward as whatever function it just analyzed.
// Forward visits root-to-sink and looks ahead to the next hop in the
// chain for previousFunction, since that lookahead is already known from
// the enumerated path.
//
// Only the forward sweep populates a worklist (tainted call arguments,
// or zero-argument callees whose return is pre-tainted); it is drained,
// LIFO, with forceTrack set so each drained function is analyzed in full
// rather than gated on a chain position it doesn't have.
func (d *Driver) runChain(ctx context.Context, chain calltrace.Path, isForward bool) {
	path := chain
	if !isForward {
		path = reversedPath(chain)
	}

	var worklist []workItem
	push := func(name string, hasArgs bool) {
		worklist = append(worklist, workItem{name: name, hasArgs: hasArgs})
	}

	previousFunction := ""
	for i, node := range path {
		name := node.Name()

		prevFn := previousFunction
		if isForward && i+1 < len(path) {
			prevFn = path[i+1].Name()
		}

		stmts, err := d.Source.Statements(ctx, name)
		if err != nil || stmts == nil {
			// Unresolved function (absent symbol, or no line info): skip it,
			// but still advance the chain-position bookkeeping as if it had
			// been visited, so later nodes aren't left waiting on a hop that
			// will never be analyzed.
			previousFunction = name
			continue
		}

		var onPush taint.WorklistPush
		if isForward {
			onPush = push
		}
		d.Engine.Analyze(name, stmts, prevFn, isForward, false, onPush)

		previousFunction = name
		if isForward {
			previousFunction = prevFn
		}
	}

	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		stmts, err := d.Source.Statements(ctx, item.name)
		if err != nil || stmts == nil {
			continue
		}
		d.Engine.Analyze(item.name, stmts, "", true, true, push)
	}
}

func reversedPath(p calltrace.Path) calltrace.Path {
	out := make(calltrace.Path, len(p))
	for i, n := range p {
		out[len(p)-1-i] = n
	}
	return out
}
