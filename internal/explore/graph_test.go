package explore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_AllPathsEmptyCases(t *testing.T) {
	g := NewGraph[string]()
	g.AddEdge("a", "b")

	assert.Nil(t, g.AllPaths("a", 0), "zero length yields no paths")
	assert.Nil(t, g.AllPaths("z", 3), "unknown start yields no paths")
}

func TestGraph_AllPathsEveryPrefix(t *testing.T) {
	g := NewGraph[string]()
	g.AddPath([]string{"a", "b", "c"})

	paths := g.AllPaths("a", 3)
	assert.ElementsMatch(t, [][]string{
		{"a"},
		{"a", "b"},
		{"a", "b", "c"},
	}, paths, "every prefix is its own path")
}

func TestGraph_AllPathsBranching(t *testing.T) {
	g := NewGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	paths := g.AllPaths("a", 2)
	assert.ElementsMatch(t, [][]string{
		{"a"},
		{"a", "b"},
		{"a", "c"},
	}, paths)
}

func TestGraph_AllPathsCycleGrowsWithLength(t *testing.T) {
	g := NewGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")

	// A two-node cycle keeps yielding one longer path per extra length.
	assert.Len(t, g.AllPaths("a", 1), 1)
	assert.Len(t, g.AllPaths("a", 2), 2)
	assert.Len(t, g.AllPaths("a", 3), 3)
	assert.Len(t, g.AllPaths("a", 6), 6)

	paths := g.AllPaths("a", 4)
	assert.Contains(t, paths, []string{"a", "b", "a", "b"},
		"traversal continues through cycles")
}

func TestGraph_AddEdgeIdempotent(t *testing.T) {
	g := NewGraph[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	paths := g.AllPaths("a", 2)
	assert.Len(t, paths, 2, "duplicate edges must not duplicate paths")
}

func TestGraph_AddPathSingleNode(t *testing.T) {
	g := NewGraph[string]()
	g.AddPath([]string{"a"})

	assert.True(t, g.Contains("a"))
	assert.Equal(t, [][]string{{"a"}}, g.AllPaths("a", 3))
}
