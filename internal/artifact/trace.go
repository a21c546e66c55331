package artifact

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// State is one point-in-time binding of all specification variables.
// Text is the literal rendering emitted by the checker; Values is the
// structured key/value form when the rendering could be decoded.
type State struct {
	// Text is the conjunction-list rendering of the state, newline
	// separated, exactly as the checker printed it.
	Text string `json:"text"`

	// Values maps variable names to their rendered values. Nil when the
	// textual form did not decode.
	Values map[string]string `json:"values,omitempty"`
}

// NewState builds a State from its textual rendering, decoding the
// structured form when possible.
func NewState(text string) State {
	return State{Text: text, Values: decodeBindings(text)}
}

// Canonical returns the identity key of the state: its NFC-normalized,
// whitespace-trimmed rendering. Two states with equal Canonical forms are
// the same state everywhere in this module.
func (s State) Canonical() string {
	return Canonical(s.Text)
}

// Canonical normalizes a state rendering for use as a map or graph key.
func Canonical(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// decodeBindings scans a conjunction-list rendering of the form
//
//	/\ a = 1
//	/\ b = <<1, 2>>
//
// into a variable-to-value map. A binding value continues across lines
// until the next "/\" line. Returns nil if no binding line is present;
// the textual form is then the only available form.
func decodeBindings(text string) map[string]string {
	var (
		values  map[string]string
		current string
		value   strings.Builder
	)
	flush := func() {
		if current != "" {
			values[current] = strings.TrimSpace(value.String())
		}
		current = ""
		value.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, `/\ `); ok {
			name, val, found := strings.Cut(rest, " = ")
			if !found {
				continue
			}
			if values == nil {
				values = make(map[string]string)
			}
			flush()
			current = strings.TrimSpace(name)
			value.WriteString(val)
			continue
		}
		if current != "" && trimmed != "" {
			value.WriteString("\n")
			value.WriteString(trimmed)
		}
	}
	if values != nil {
		flush()
	}
	return values
}

// Trace is an ordered, append-only sequence of states produced by one
// checker run. An empty trace is a meaningful value: it is the absence of
// a counterexample.
type Trace struct {
	States []State `json:"states"`
}

// Add appends a state to the trace.
func (t *Trace) Add(s State) {
	t.States = append(t.States, s)
}

// Len returns the number of states in the trace.
func (t *Trace) Len() int { return len(t.States) }

// IsEmpty reports whether the trace holds no states.
func (t *Trace) IsEmpty() bool { return len(t.States) == 0 }

func (t Trace) String() string {
	var b strings.Builder
	for _, s := range t.States {
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
