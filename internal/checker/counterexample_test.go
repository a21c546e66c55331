package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterexampleModule = `---------------------------- MODULE counterexample ----------------------------

EXTENDS Counter

(* Constant initialization state *)
ConstInit == TRUE

(* Initial state *)
State0 ==
  x = 0

(* Transition 0 to State1 *)
State1 ==
  x = 1

(* The following formula holds true in the last state and violates the invariant *)
InvariantViolation == x >= 1

================================================================================
\* Created by Apalache
`

func TestParseCounterexample(t *testing.T) {
	trace, err := ParseCounterexample(counterexampleModule)
	require.NoError(t, err)
	require.Equal(t, 2, trace.Len())

	assert.Equal(t, "x = 0", trace.States[0].Text)
	assert.Equal(t, "x = 1", trace.States[1].Text)
}

func TestParseCounterexample_InlineStateExpression(t *testing.T) {
	trace, err := ParseCounterexample("State0 == x = 0 /\\ y = 1\n")
	require.NoError(t, err)
	require.Equal(t, 1, trace.Len())
	assert.Equal(t, "x = 0 /\\ y = 1", trace.States[0].Text)
}

func TestParseCounterexample_MultiLineState(t *testing.T) {
	content := "State0 ==\n  x = <<1,\n    2>>\n  /\\ y = 0\nState1 ==\n  x = <<>>\n"
	trace, err := ParseCounterexample(content)
	require.NoError(t, err)
	require.Equal(t, 2, trace.Len())
	assert.Equal(t, "x = <<1,\n2>>\n/\\ y = 0", trace.States[0].Text)
}

func TestParseCounterexample_TrailingOperatorEndsState(t *testing.T) {
	content := "State0 ==\n  x = 0\nInvariantViolation == x = 0\n"
	trace, err := ParseCounterexample(content)
	require.NoError(t, err)
	require.Equal(t, 1, trace.Len())
	assert.Equal(t, "x = 0", trace.States[0].Text,
		"definitions after the last state are not part of it")
}

func TestParseCounterexample_NoStates(t *testing.T) {
	_, err := ParseCounterexample("---- MODULE counterexample ----\nConstInit == TRUE\n====\n")
	require.Error(t, err)
	assert.True(t, IsInvalidCounterexample(err))
}
