package checker

import (
	"regexp"
	"strings"

	"github.com/modelkit/tracegen/internal/artifact"
)

// stateHeader matches the opening line of one step in an Apalache
// counterexample: "State0 ==", "State12 ==", optionally with the state
// expression continuing on the same line.
var stateHeader = regexp.MustCompile(`^State\d+\s*==\s*(.*)$`)

// operatorHeader matches any other top-level definition in the artifact
// (ConstInit, InvariantViolation, ...), which ends the open state block.
var operatorHeader = regexp.MustCompile(`^\w+\s*==`)

// ParseCounterexample converts an Apalache counterexample artifact — a
// sequence of named state blocks — into a single trace, with the blocks as
// states in file order.
//
// The artifact grammar is narrow: comment lines and module framing are
// skipped, a state begins at a "State<N> ==" line, and its body runs until
// the next state or the closing module line. An artifact without a single
// state block fails with a CounterexampleError.
func ParseCounterexample(content string) (*artifact.Trace, error) {
	var (
		trace artifact.Trace
		body  []string
		open  bool
	)
	flush := func() {
		if open {
			trace.Add(artifact.NewState(strings.TrimSpace(strings.Join(body, "\n"))))
		}
		body = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "(*") || strings.HasPrefix(trimmed, `\*`):
			// comment
		case strings.HasPrefix(trimmed, "----") || strings.HasPrefix(trimmed, "===="):
			// module framing; the closing line also ends the last state
			flush()
			open = false
		case stateHeader.MatchString(trimmed):
			flush()
			open = true
			if rest := stateHeader.FindStringSubmatch(trimmed)[1]; rest != "" {
				body = append(body, rest)
			}
		case operatorHeader.MatchString(trimmed):
			flush()
			open = false
		case open && trimmed != "":
			body = append(body, trimmed)
		}
	}
	flush()

	if trace.IsEmpty() {
		return nil, &CounterexampleError{Reason: "no state blocks found"}
	}
	return &trace, nil
}
