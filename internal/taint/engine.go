package taint

import "github.com/mxu49/taintwalk/internal/srcxml"

// GraphNodes is the subset of *calltrace.Graph the forward sweep needs: a
// membership check so call targets outside the known call graph are
// pruned rather than followed blind.
type GraphNodes interface {
	HasNode(name string) bool
}

// Definitions maps a function name to the set of definitions (e.g.
// interceptor wrappers, typedef'd aliases) that should also match it when
// the backward sweep looks for the call into previousFunction.
type Definitions map[string][]string

// WorklistPush receives a (function, hasArguments) pair discovered during
// a forward sweep — a tainted call argument, or a zero-argument callee
// whose return was pre-tainted — for the driver to analyze afterward with
// forceTrack set.
type WorklistPush func(function string, hasArguments bool)

// Engine runs the backward and forward taint sweeps over one call chain
// at a time, accumulating results into a shared Map.
type Engine struct {
	Map         Map
	Graph       GraphNodes
	Definitions Definitions
}

// NewEngine returns an engine backed by graph (for forward call pruning)
// and defs (for backward's previousFunction/definition matching).
func NewEngine(graph GraphNodes, defs Definitions) *Engine {
	if defs == nil {
		defs = Definitions{}
	}
	return &Engine{Map: NewMap(), Graph: graph, Definitions: defs}
}

// Analyze is the shared per-function setup the original implementation
// calls TaintAnalysis: it seeds the working tainted-variable set from
// whatever this function's entry already knows (so repeat visits
// accumulate rather than reset), dispatches to the backward or forward
// sweep over stmts, then unions the result back into the function's
// tainted locals.
func (e *Engine) Analyze(current string, stmts []srcxml.CodeElement, previousFunction string, isForward, forceTrack bool, push WorklistPush) {
	entry := e.Map.Entry(current)
	tainted := map[string]struct{}{}
	for v := range entry.Locals {
		tainted[v] = struct{}{}
	}

	if isForward {
		e.forward(entry, stmts, previousFunction, tainted, forceTrack, push)
	} else {
		prevSlots := e.Map.SlotsOf(previousFunction)
		e.backward(entry, stmts, previousFunction, prevSlots, tainted, forceTrack)
	}

	for v := range tainted {
		entry.Locals[v] = struct{}{}
	}
}
