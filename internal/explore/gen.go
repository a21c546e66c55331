package explore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/modelkit/tracegen/internal/artifact"
)

// Invariant selects which synthesized invariant a query asks the checker
// to violate.
type Invariant string

const (
	// InvariantFindInitialState holds only while the tracking set is
	// empty. InitExplore satisfies it, the first NextExplore step violates
	// it, and the single-step counterexample's second state is the state
	// exploration starts from.
	InvariantFindInitialState Invariant = "FindInitialState"

	// InvariantExplore is violated iff the discovered next-state set is
	// not a subset of the known ones: the counterexample's last state
	// carries one successor we have not seen, or no violation proves the
	// known set complete.
	InvariantExplore Invariant = "Explore"
)

// auxVariable is the tracking variable added to every generated query
// module. Specifications using this name themselves are not supported.
const auxVariable = "nextStates"

// GenerateQuery writes a synthesized exploration module and configuration
// next to the specification (they must be siblings so the module can
// extend it) and returns the resulting suite plus a cleanup that removes
// both generated files.
//
// Each query gets a name unique to it, so concurrent or prior queries
// never collide on generated artifacts.
func GenerateQuery(
	spec *artifact.SpecFile,
	config *artifact.ConfigFile,
	vars artifact.Variables,
	startPredicate string,
	known []artifact.State,
	invariant Invariant,
) (*artifact.Suite, func(), error) {
	name := queryName()

	moduleBody, err := queryModule(name, spec.ModuleName(), vars, startPredicate, known)
	if err != nil {
		return nil, nil, err
	}

	modulePath := filepath.Join(spec.Dir(), name+spec.Ext())
	if err := os.WriteFile(modulePath, []byte(moduleBody), 0o644); err != nil {
		return nil, nil, fmt.Errorf("write query module: %w", err)
	}

	configPath := filepath.Join(spec.Dir(), name+".cfg")
	configBody, err := queryConfig(config, invariant)
	if err != nil {
		os.Remove(modulePath)
		return nil, nil, err
	}
	if err := os.WriteFile(configPath, []byte(configBody), 0o644); err != nil {
		os.Remove(modulePath)
		return nil, nil, fmt.Errorf("write query config: %w", err)
	}

	cleanup := func() {
		os.Remove(modulePath)
		os.Remove(configPath)
	}

	suite, err := artifact.NewSuite(modulePath, configPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return suite, cleanup, nil
}

func queryName() string {
	suffix := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
	return "Explore_" + suffix
}

// queryModule renders the exploration module. The module extends the
// original specification, adds the auxiliary tracking variable, and pins
// the start of exploration to startPredicate. NextExplore applies the
// specification's own Next while accumulating every reached state into the
// tracking set, which the invariants then constrain.
func queryModule(name, specModule string, vars artifact.Variables, startPredicate string, known []artifact.State) (string, error) {
	set, err := knownSet(vars, known)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`---------- MODULE %s ----------

EXTENDS %s

VARIABLE %s

%s

InitExplore ==
    %s
    /\ %s = {}

NextExplore ==
    /\ Next
    /\ %s' = %s \union {%s}

%s ==
    /\ %s = {}

KnownNextStates ==
    {
        %s
    }

%s ==
    /\ %s \subseteq KnownNextStates

====================================
`,
		name,
		specModule,
		auxVariable,
		exploredStateDef(vars),
		indentPredicate(startPredicate),
		auxVariable,
		auxVariable, auxVariable, exploredStateCall(vars),
		InvariantFindInitialState,
		auxVariable,
		set,
		InvariantExplore,
		auxVariable,
	), nil
}

// queryConfig copies the original configuration's text (constants and all)
// and overrides the entry points and the checked invariant.
func queryConfig(config *artifact.ConfigFile, invariant Invariant) (string, error) {
	base, err := os.ReadFile(config.Path())
	if err != nil {
		return "", fmt.Errorf("read config %s: %w", config.Path(), err)
	}
	return fmt.Sprintf(`%s
INIT InitExplore
NEXT NextExplore
INVARIANT %s
`, strings.TrimRight(string(base), "\n"), invariant), nil
}

// exploredStateDef declares the record constructor used to reify one
// reached state as a value the tracking set can hold.
//
//	ExploredState(a_value, b_value) ==
//	    [
//	        a |-> a_value,
//	        b |-> b_value
//	    ]
func exploredStateDef(vars artifact.Variables) string {
	args := make([]string, len(vars.Names))
	fields := make([]string, len(vars.Names))
	for i, v := range vars.Names {
		args[i] = v + "_value"
		fields[i] = fmt.Sprintf("%s |-> %s_value", v, v)
	}
	return fmt.Sprintf("ExploredState(%s) ==\n    [\n        %s\n    ]",
		strings.Join(args, ", "),
		strings.Join(fields, ",\n        "))
}

// exploredStateCall applies the constructor to the primed variables: the
// state reached after Next.
func exploredStateCall(vars artifact.Variables) string {
	args := make([]string, len(vars.Names))
	for i, v := range vars.Names {
		args[i] = v + "'"
	}
	return fmt.Sprintf("ExploredState(%s)", strings.Join(args, ", "))
}

// knownSet renders the previously confirmed successors as a set of records
// matching the ExploredState shape.
func knownSet(vars artifact.Variables, known []artifact.State) (string, error) {
	entries := make([]string, 0, len(known))
	for _, state := range known {
		record, err := stateRecord(vars, state)
		if err != nil {
			return "", err
		}
		entries = append(entries, record)
	}
	return strings.Join(entries, ",\n        "), nil
}

// stateRecord renders one state as a record value. Only the structured
// form can be spliced into a set literal; a state that never decoded, or
// that lacks a binding for a declared variable, cannot be rendered.
func stateRecord(vars artifact.Variables, state artifact.State) (string, error) {
	if state.Values == nil {
		return "", fmt.Errorf("state has no decoded bindings: %q", state.Text)
	}
	fields := make([]string, len(vars.Names))
	for i, v := range vars.Names {
		value, ok := state.Values[v]
		if !ok {
			return "", fmt.Errorf("state has no binding for variable %q: %q", v, state.Text)
		}
		fields[i] = fmt.Sprintf("%s |-> %s", v, value)
	}
	return "[" + strings.Join(fields, ", ") + "]", nil
}

// indentPredicate lines up a multi-line start predicate under InitExplore.
func indentPredicate(pred string) string {
	lines := strings.Split(strings.TrimSpace(pred), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = "    " + strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "\n")
}
