package calltrace

// Path is an ordered sequence of nodes from a root to a target, in forward
// call order (caller before callee).
type Path []*Node

// ReverseGraph returns, for every node in the graph, its set of direct
// predecessors (callers). Every node is present as a key, even those with
// no predecessors, so callers can distinguish "no predecessors" from "not
// yet visited".
func (g *Graph) ReverseGraph() map[*Node][]*Node {
	reversed := make(map[*Node][]*Node, len(g.list))
	for _, n := range g.list {
		if _, ok := reversed[n]; !ok {
			reversed[n] = nil
		}
	}
	for _, n := range g.list {
		for _, succ := range n.next {
			reversed[succ] = append(reversed[succ], n)
		}
	}
	return reversed
}

// FindAllCallChains enumerates every call chain terminating at target: a
// depth-first search over the reversed graph, starting at target, that
// stops a branch at a node with no predecessors or named "main". A node may
// appear at most twice on any recorded path (a cycle is traversed once, not
// unrolled); a third occurrence prunes the branch. Chain order among the
// results is unspecified; each chain itself is in forward call order.
func (g *Graph) FindAllCallChains(target *Node) []Path {
	reversed := g.ReverseGraph()
	var all []Path
	var current Path
	dfs(target, &current, &all, reversed)
	return all
}

func dfs(node *Node, current *Path, all *[]Path, reversed map[*Node][]*Node) {
	if countOccurrences(*current, node) > 1 {
		return
	}
	*current = append(*current, node)

	preds := reversed[node]
	if len(preds) == 0 || node.Name() == "main" {
		path := make(Path, len(*current))
		for i, n := range *current {
			path[len(*current)-1-i] = n
		}
		*all = append(*all, path)
	} else {
		for _, prev := range preds {
			dfs(prev, current, all, reversed)
		}
	}

	*current = (*current)[:len(*current)-1]
}

func countOccurrences(path Path, node *Node) int {
	count := 0
	for _, n := range path {
		if n == node {
			count++
		}
	}
	return count
}
