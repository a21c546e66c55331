package checker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const violationOutput = `@!@!@STARTMSG 2217:4 @!@!@
1: <Initial predicate>
/\ x = 0
@!@!@ENDMSG 2217 @!@!@
@!@!@STARTMSG 2217:4 @!@!@
2: <Action line 6, col 9 to line 6, col 18 of module Counter>
/\ x = 1
@!@!@ENDMSG 2217 @!@!@
`

func TestParseTraces_NoMessages(t *testing.T) {
	traces, err := ParseTraces("TLC2 Version 2.20\nModel checking completed.\n", "log.txt")
	require.NoError(t, err)
	assert.Empty(t, traces, "a run that held produces no traces and no error")
}

func TestParseTraces_SingleTrace(t *testing.T) {
	traces, err := ParseTraces(violationOutput, "log.txt")
	require.NoError(t, err)
	require.Len(t, traces, 1)
	require.Equal(t, 2, traces[0].Len())

	assert.Equal(t, "0", traces[0].States[0].Values["x"])
	assert.Equal(t, "1", traces[0].States[1].Values["x"])
}

func TestParseTraces_TwoTraces(t *testing.T) {
	output := violationOutput + violationOutput
	traces, err := ParseTraces(output, "log.txt")
	require.NoError(t, err)
	require.Len(t, traces, 2, "each initial-predicate print opens a fresh trace")
	assert.Equal(t, 2, traces[0].Len())
	assert.Equal(t, 2, traces[1].Len())
}

func TestParseTraces_ErrorMessages(t *testing.T) {
	output := `@!@!@STARTMSG 2110:1 @!@!@
Invariant Inv is violated
somewhere
@!@!@ENDMSG 2110 @!@!@
@!@!@STARTMSG 1000:1 @!@!@
parse error
@!@!@ENDMSG 1000 @!@!@
`
	_, err := ParseTraces(output, "log.txt")
	require.Error(t, err)
	assert.True(t, IsFailure(err))
	// Codes ascend and bodies flatten to one line each.
	assert.Contains(t, err.Error(), "[log.txt:1000]: parse error\n[log.txt:2110]: Invariant Inv is violated somewhere")
}

func TestParseTraces_MismatchedEndCode(t *testing.T) {
	output := "@!@!@STARTMSG 2217:4 @!@!@\nbody\n@!@!@ENDMSG 2218 @!@!@\n"
	_, err := ParseTraces(output, "log.txt")
	require.Error(t, err)
	assert.True(t, IsInvalidOutput(err))
}

func TestParseTraces_EndWithoutStart(t *testing.T) {
	_, err := ParseTraces("@!@!@ENDMSG 2217 @!@!@\n", "log.txt")
	require.Error(t, err)
	assert.True(t, IsInvalidOutput(err))
}

func TestParseTraces_StartInsideMessage(t *testing.T) {
	output := "@!@!@STARTMSG 2217:4 @!@!@\n@!@!@STARTMSG 2218:4 @!@!@\n"
	_, err := ParseTraces(output, "log.txt")
	require.Error(t, err)
	assert.True(t, IsInvalidOutput(err))
}

func TestParseTraces_Unterminated(t *testing.T) {
	output := "@!@!@STARTMSG 2217:4 @!@!@\n1: <Initial predicate>\n/\\ x = 0\n"
	_, err := ParseTraces(output, "log.txt")
	require.Error(t, err)
	assert.True(t, IsInvalidOutput(err))
}

func TestParseTraces_MalformedStartTag(t *testing.T) {
	_, err := ParseTraces("@!@!@STARTMSG nonsense @!@!@\n", "log.txt")
	require.Error(t, err)
	assert.True(t, IsInvalidOutput(err))
}

func TestParseTraces_Golden(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "tlc_violation.log"))
	require.NoError(t, err)

	traces, err := ParseTraces(string(raw), "log.txt")
	require.NoError(t, err)

	encoded, err := json.MarshalIndent(traces, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tlc_violation", encoded)
}
