package explore

import (
	"fmt"
	"strings"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/cache"
	"github.com/modelkit/tracegen/internal/checker"
	"github.com/modelkit/tracegen/internal/runtime"
)

// initPredicate pins bootstrap exploration to the specification's own
// initial-state predicate.
const initPredicate = `/\ Init`

// Runner invokes a checker over a suite. Satisfied by checker.Checker.
type Runner interface {
	Trace(suite *artifact.Suite, rt *runtime.Runtime) (*artifact.Trace, error)
}

// VariableSource supplies a specification's declared variable names. The
// static analysis behind it is an external collaborator; satisfied by
// checker.Apalache.
type VariableSource interface {
	Variables(spec *artifact.SpecFile, rt *runtime.Runtime) (artifact.Variables, error)
}

// Explorer answers next-states requests by combining the session store
// with targeted checker queries.
type Explorer struct {
	runner Runner
	vars   VariableSource
	rt     *runtime.Runtime
}

// New builds an Explorer.
func New(runner Runner, vars VariableSource, rt *runtime.Runtime) *Explorer {
	return &Explorer{runner: runner, vars: vars, rt: rt}
}

// Session loads the persisted exploration session for the suite, if any.
func (e *Explorer) Session(suite *artifact.Suite) (*Session, bool, error) {
	store, err := OpenSessionStore(e.rt.Dir)
	if err != nil {
		return nil, false, err
	}
	key, err := cache.Key(suite.Spec, suite.Config)
	if err != nil {
		return nil, false, err
	}
	return store.Get(key)
}

// NextStates returns count successors of start, skipping the first skip,
// discovering them through the checker as needed.
//
// start may be nil, meaning the specification's initial state. Fewer than
// count returned states is not an error: it signals that start has no
// further successors.
//
// The loop is strictly sequential for one suite: every discovery is
// persisted before the known set is re-examined. Callers must not run two
// explorations of the same suite concurrently.
func (e *Explorer) NextStates(suite *artifact.Suite, start *artifact.State, count, skip int) (*artifact.NextStates, error) {
	store, err := OpenSessionStore(e.rt.Dir)
	if err != nil {
		return nil, err
	}
	key, err := cache.Key(suite.Spec, suite.Config)
	if err != nil {
		return nil, err
	}

	session, ok, err := store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		if session, err = e.bootstrap(suite, key, store); err != nil {
			return nil, err
		}
	}

	startState := session.Initial
	if start != nil {
		startState = *start
	}
	startKey := startState.Canonical()

	for {
		known := session.Index.Get(startKey)
		if len(known)-skip >= count {
			return collect(known[skip : skip+count]), nil
		}

		next, found, err := e.discover(suite, session, startState, known)
		if err != nil {
			return nil, err
		}
		if !found {
			// No violation: the known set is complete. Fewer than count
			// states signals exhaustion.
			if skip >= len(known) {
				return &artifact.NextStates{}, nil
			}
			return collect(known[skip:]), nil
		}

		session.Index.Add(startKey, next)
		if err := store.Put(key, session); err != nil {
			return nil, err
		}
	}
}

// bootstrap creates the session for a suite never explored before: it
// obtains the variable set from the static-analysis collaborator, then
// coerces the checker into revealing the starting state by checking an
// invariant that the first exploration step violates by construction.
func (e *Explorer) bootstrap(suite *artifact.Suite, key string, store *SessionStore) (*Session, error) {
	vars, err := e.vars.Variables(suite.Spec, e.rt)
	if err != nil {
		return nil, err
	}

	trace, err := e.runQuery(suite, vars, initPredicate, nil, InvariantFindInitialState)
	if err != nil {
		return nil, err
	}
	if trace.Len() != 2 {
		return nil, &checker.OutputError{
			Checker: "explorer",
			Reason:  fmt.Sprintf("bootstrap trace has %d states, want 2", trace.Len()),
		}
	}

	session := &Session{
		Variables: vars,
		// The canonical initial state is the second state of the
		// single-step bootstrap trace, with the tracking variable
		// stripped.
		Initial: stripAux(trace.States[1]),
		Index:   NewNextStatesIndex(),
	}
	if err := store.Put(key, session); err != nil {
		return nil, err
	}
	return session, nil
}

// discover runs one Explore query. It returns the newly confirmed
// successor, or found=false when the checker reported no violation,
// proving the known set complete.
func (e *Explorer) discover(suite *artifact.Suite, session *Session, start artifact.State, known []artifact.State) (artifact.State, bool, error) {
	trace, err := e.runQuery(suite, session.Variables, start.Text, known, InvariantExplore)
	if checker.IsNoTrace(err) {
		return artifact.State{}, false, nil
	}
	if err != nil {
		return artifact.State{}, false, err
	}
	if trace.Len() < 2 {
		return artifact.State{}, false, &checker.OutputError{
			Checker: "explorer",
			Reason:  fmt.Sprintf("exploration trace has %d states, want at least 2", trace.Len()),
		}
	}
	return stripAux(trace.States[1]), true, nil
}

func (e *Explorer) runQuery(
	suite *artifact.Suite,
	vars artifact.Variables,
	startPredicate string,
	known []artifact.State,
	invariant Invariant,
) (*artifact.Trace, error) {
	querySuite, cleanup, err := GenerateQuery(suite.Spec, suite.Config, vars, startPredicate, known, invariant)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return e.runner.Trace(querySuite, e.rt)
}

// stripAux removes the tracking variable's binding from a state produced
// by a query run, leaving only the specification's own variables. The
// binding may span lines; it ends at the next conjunct.
func stripAux(state artifact.State) artifact.State {
	var (
		kept     []string
		dropping bool
	)
	for _, line := range strings.Split(state.Text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, `/\ `) {
			dropping = strings.HasPrefix(trimmed, `/\ `+auxVariable+` `) ||
				strings.HasPrefix(trimmed, `/\ `+auxVariable+`=`)
		}
		if !dropping {
			kept = append(kept, line)
		}
	}
	return artifact.NewState(strings.TrimRight(strings.Join(kept, "\n"), "\n"))
}

func collect(states []artifact.State) *artifact.NextStates {
	next := &artifact.NextStates{}
	for _, s := range states {
		next.Add(s)
	}
	return next
}
