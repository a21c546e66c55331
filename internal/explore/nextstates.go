package explore

import (
	"fmt"

	"github.com/modelkit/tracegen/internal/artifact"
)

// NextStatesIndex maps a state to the ordered list of states the checker
// has confirmed to be its immediate successors. Keys are canonical state
// renderings (artifact.Canonical), never raw text.
type NextStatesIndex struct {
	Next map[string][]artifact.State `json:"next"`
}

// NewNextStatesIndex returns an empty index.
func NewNextStatesIndex() *NextStatesIndex {
	return &NextStatesIndex{Next: make(map[string][]artifact.State)}
}

// Add records next as a confirmed successor of the state with canonical
// key start. A duplicate successor for the same predecessor is a
// programming error in the exploration loop and panics.
func (x *NextStatesIndex) Add(start string, next artifact.State) {
	key := next.Canonical()
	for _, existing := range x.Next[start] {
		if existing.Canonical() == key {
			panic(fmt.Sprintf("explore: duplicate next state recorded for %q", start))
		}
	}
	if x.Next == nil {
		x.Next = make(map[string][]artifact.State)
	}
	x.Next[start] = append(x.Next[start], next)
}

// Get returns the confirmed successors of the state with canonical key
// start, in discovery order. Absent means none discovered yet.
func (x *NextStatesIndex) Get(start string) []artifact.State {
	return x.Next[start]
}

// Graph renders the index as a transition graph over canonical renderings.
func (x *NextStatesIndex) Graph() *Graph[string] {
	g := NewGraph[string]()
	for start, nexts := range x.Next {
		for _, next := range nexts {
			g.AddEdge(start, next.Canonical())
		}
	}
	return g
}
