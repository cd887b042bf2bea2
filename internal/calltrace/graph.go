package calltrace

// FunctionInfo is one stack frame as reported by a sanitizer backtrace.
type FunctionInfo struct {
	Name string
	File string
	Line int
}

// PollutionInfo is the seed taint for one function: the locals known to
// carry suspect data at the point the backtrace was captured, and the
// parameter/return slots (in the "#N" / "$N" / "$*" grammar) already known
// tainted.
type PollutionInfo struct {
	Var   map[string]struct{}
	Index map[string]struct{}
}

// Graph is the directed multigraph of caller->callee edges, plus the crash
// backtrace, macro-expansion map, and seed taint map that seed the
// traversal. Graph exclusively owns every Node; successor references are
// non-owning and valid for the Graph's lifetime.
type Graph struct {
	list        []*Node
	index       map[string]*Node
	Backtrace   []FunctionInfo
	Definitions map[string][]string
	Pollution   map[string]PollutionInfo
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:       make(map[string]*Node),
		Definitions: make(map[string][]string),
		Pollution:   make(map[string]PollutionInfo),
	}
}

// FindNode returns the node with the given name, or nil if absent.
func (g *Graph) FindNode(name string) *Node {
	return g.index[name]
}

// HasNode reports whether name is a registered node, used by the forward
// taint sweep to prune call targets outside the known call graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// AddNode creates and registers a node, returning it. If a node with this
// name already exists it is returned unchanged (idempotent).
func (g *Graph) AddNode(name string) *Node {
	if n, ok := g.index[name]; ok {
		return n
	}
	n := newNode(name)
	g.list = append(g.list, n)
	g.index[name] = n
	return n
}

// Size returns the number of nodes in the graph.
func (g *Graph) Size() int { return len(g.list) }

// Nodes returns every node currently in the graph, in insertion order.
func (g *Graph) Nodes() []*Node { return g.list }

// AddCall records a call from caller to callee, creating either node on
// first reference. Idempotent in edge identity, but counts multiplicity.
func (g *Graph) AddCall(caller, callee string) {
	callerNode := g.AddNode(caller)
	calleeNode := g.AddNode(callee)
	callerNode.addSuccessor(calleeNode)
}

// RemoveInterceptors rewrites every node whose name starts with
// "__interceptor_" to its suffix, unifying the sanitizer's wrapper symbol
// with the real one so path enumeration doesn't fragment across both.
// Idempotent: a second pass finds nothing left to rewrite.
func (g *Graph) RemoveInterceptors() {
	const prefix = "__interceptor_"
	for _, n := range g.list {
		if len(n.name) > len(prefix) && n.name[:len(prefix)] == prefix {
			stripped := n.name[len(prefix):]
			delete(g.index, n.name)
			n.ChangeName(stripped)
			// Two interceptor/real-symbol nodes may now share a name; keep
			// whichever index entry already maps to the canonical node.
			if _, exists := g.index[stripped]; !exists {
				g.index[stripped] = n
			}
		}
	}
}
