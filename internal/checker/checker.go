package checker

import (
	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/journal"
	"github.com/modelkit/tracegen/internal/runtime"
)

// Backend names accepted by New.
const (
	NameTLC      = "tlc"
	NameApalache = "apalache"
)

// Checker is an invocable model-checker backend. Trace evaluates the suite
// and returns the counterexample trace, a NoTraceError when the property
// held, or a FailureError when the checker itself reported an error.
//
// Trace blocks for the duration of the external process. Timeouts and
// retries are the caller's policy, not this layer's.
type Checker interface {
	Name() string
	Trace(suite *artifact.Suite, rt *runtime.Runtime) (*artifact.Trace, error)
}

// New returns the named backend driver. The journal may be nil.
func New(name string, j *journal.Journal) (Checker, error) {
	switch name {
	case NameTLC:
		return &TLC{Journal: j}, nil
	case NameApalache:
		return &Apalache{Journal: j}, nil
	default:
		return nil, &UnrecognizedError{Name: name}
	}
}
