package artifact

// NextStates is the ordered list of states confirmed by the checker to be
// immediate successors of some start state. Each entry carries both the
// textual and, when decodable, the structured form.
type NextStates struct {
	States []State `json:"states"`
}

// Add appends a confirmed successor.
func (n *NextStates) Add(s State) {
	n.States = append(n.States, s)
}

// Len returns the number of successors.
func (n *NextStates) Len() int { return len(n.States) }
