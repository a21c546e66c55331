package explore

// Graph is a directed graph over opaque comparable nodes with idempotent
// edge insertion. Node identity is value equality, never pointer identity.
type Graph[N comparable] struct {
	nodes map[N]struct{}
	edges map[N][]N
}

// NewGraph returns an empty graph.
func NewGraph[N comparable]() *Graph[N] {
	return &Graph[N]{
		nodes: make(map[N]struct{}),
		edges: make(map[N][]N),
	}
}

// AddEdge inserts the directed edge from→to. Inserting an existing edge is
// a no-op; the graph never holds duplicate edges.
func (g *Graph[N]) AddEdge(from, to N) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	for _, existing := range g.edges[from] {
		if existing == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], to)
}

// AddPath inserts an edge for every consecutive pair of nodes.
func (g *Graph[N]) AddPath(nodes []N) {
	for i := 0; i+1 < len(nodes); i++ {
		g.AddEdge(nodes[i], nodes[i+1])
	}
	if len(nodes) == 1 {
		g.nodes[nodes[0]] = struct{}{}
	}
}

// Contains reports whether node is in the graph.
func (g *Graph[N]) Contains(node N) bool {
	_, ok := g.nodes[node]
	return ok
}

// AllPaths returns every path starting at from with between 1 and maxLen
// nodes, found by exhaustive depth-first traversal. Every prefix is a
// distinct result, not only maximal paths, and traversal continues through
// cycles: a cycle keeps yielding new, longer paths as maxLen grows, paths
// the checker never directly observed but the graph can legitimately guess.
//
// Returns nil if from is absent or maxLen is 0. Worst case is exponential
// in branching factor times maxLen; callers keep maxLen small.
func (g *Graph[N]) AllPaths(from N, maxLen int) [][]N {
	if maxLen == 0 || !g.Contains(from) {
		return nil
	}
	var paths [][]N
	g.walk([]N{from}, maxLen, &paths)
	return paths
}

func (g *Graph[N]) walk(path []N, maxLen int, out *[][]N) {
	// Record every prefix as its own path.
	snapshot := make([]N, len(path))
	copy(snapshot, path)
	*out = append(*out, snapshot)

	if len(path) == maxLen {
		return
	}
	last := path[len(path)-1]
	for _, next := range g.edges[last] {
		g.walk(append(path, next), maxLen, out)
	}
}
