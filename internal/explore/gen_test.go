package explore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelkit/tracegen/internal/artifact"
)

func writeQuerySuite(t *testing.T) *artifact.Suite {
	t.Helper()
	dir := t.TempDir()
	spec := filepath.Join(dir, "Counter.tla")
	config := filepath.Join(dir, "Counter.cfg")
	require.NoError(t, os.WriteFile(spec, []byte("---- MODULE Counter ----\nVARIABLE x\nInit == x = 0\nNext == x' = x + 1\n====\n"), 0o644))
	require.NoError(t, os.WriteFile(config, []byte("CONSTANT N = 3\n"), 0o644))
	suite, err := artifact.NewSuite(spec, config)
	require.NoError(t, err)
	return suite
}

func TestGenerateQuery_WritesSiblings(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x"})

	query, cleanup, err := GenerateQuery(suite.Spec, suite.Config, vars, initPredicate, nil, InvariantFindInitialState)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, suite.Spec.Dir(), query.Spec.Dir(), "query module must be a sibling of the spec")
	assert.True(t, strings.HasPrefix(query.Spec.ModuleName(), "Explore_"))
	assert.Equal(t, ".tla", query.Spec.Ext())

	module, err := os.ReadFile(query.Spec.Path())
	require.NoError(t, err)
	body := string(module)
	assert.Contains(t, body, "EXTENDS Counter")
	assert.Contains(t, body, "VARIABLE nextStates")
	assert.Contains(t, body, "ExploredState(x_value)")
	assert.Contains(t, body, "InitExplore ==")
	assert.Contains(t, body, "/\\ nextStates = {}")
	assert.Contains(t, body, "NextExplore ==")
	assert.Contains(t, body, "nextStates' = nextStates \\union {ExploredState(x')}")
	assert.Contains(t, body, "FindInitialState ==")
	assert.Contains(t, body, "KnownNextStates ==")
	assert.Contains(t, body, "Explore ==")

	config, err := os.ReadFile(query.Config.Path())
	require.NoError(t, err)
	cfg := string(config)
	assert.Contains(t, cfg, "CONSTANT N = 3", "base configuration text is retained")
	assert.Contains(t, cfg, "INIT InitExplore")
	assert.Contains(t, cfg, "NEXT NextExplore")
	assert.Contains(t, cfg, "INVARIANT FindInitialState")
}

func TestGenerateQuery_BootstrapInvariantHoldsInitially(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x"})

	query, cleanup, err := GenerateQuery(suite.Spec, suite.Config, vars, initPredicate, nil, InvariantFindInitialState)
	require.NoError(t, err)
	defer cleanup()

	module, err := os.ReadFile(query.Spec.Path())
	require.NoError(t, err)
	body := string(module)

	// InitExplore pins the tracking set empty, so the bootstrap invariant
	// must be satisfied at depth 0 and violated only after the first
	// NextExplore step; the counterexample then has two states.
	assert.Contains(t, body, "FindInitialState ==\n    /\\ nextStates = {}")
	assert.NotContains(t, body, "nextStates /= {}")
}

func TestGenerateQuery_UndecodableKnownState(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x"})
	known := []artifact.State{artifact.NewState("not a conjunction list")}

	_, _, err := GenerateQuery(suite.Spec, suite.Config, vars, "/\\ x = 0", known, InvariantExplore)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no decoded bindings")

	// A failed generation must leave no artifacts behind.
	entries, err := os.ReadDir(suite.Spec.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGenerateQuery_MissingVariableBinding(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x", "y"})
	known := []artifact.State{artifact.NewState("/\\ x = 1")}

	_, _, err := GenerateQuery(suite.Spec, suite.Config, vars, "/\\ x = 0", known, InvariantExplore)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no binding for variable "y"`)
}

func TestGenerateQuery_KnownStatesRendered(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x"})
	known := []artifact.State{
		artifact.NewState("/\\ x = 1"),
		artifact.NewState("/\\ x = 2"),
	}

	query, cleanup, err := GenerateQuery(suite.Spec, suite.Config, vars, "/\\ x = 0", known, InvariantExplore)
	require.NoError(t, err)
	defer cleanup()

	module, err := os.ReadFile(query.Spec.Path())
	require.NoError(t, err)
	body := string(module)
	assert.Contains(t, body, "[x |-> 1]")
	assert.Contains(t, body, "[x |-> 2]")

	config, err := os.ReadFile(query.Config.Path())
	require.NoError(t, err)
	assert.Contains(t, string(config), "INVARIANT Explore")
}

func TestGenerateQuery_UniqueNames(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x"})

	q1, cleanup1, err := GenerateQuery(suite.Spec, suite.Config, vars, initPredicate, nil, InvariantFindInitialState)
	require.NoError(t, err)
	defer cleanup1()
	q2, cleanup2, err := GenerateQuery(suite.Spec, suite.Config, vars, initPredicate, nil, InvariantFindInitialState)
	require.NoError(t, err)
	defer cleanup2()

	assert.NotEqual(t, q1.Spec.ModuleName(), q2.Spec.ModuleName())
}

func TestGenerateQuery_CleanupRemovesArtifacts(t *testing.T) {
	suite := writeQuerySuite(t)
	vars := artifact.NewVariables([]string{"x"})

	query, cleanup, err := GenerateQuery(suite.Spec, suite.Config, vars, initPredicate, nil, InvariantFindInitialState)
	require.NoError(t, err)

	cleanup()

	_, err = os.Stat(query.Spec.Path())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(query.Config.Path())
	assert.True(t, os.IsNotExist(err))
}
