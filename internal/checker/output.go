package checker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/modelkit/tracegen/internal/artifact"
)

// TLC's "-tool" output protocol. Each message is opened by a line
//
//	@!@!@STARTMSG <code>:<class> @!@!@
//
// and closed by a matching
//
//	@!@!@ENDMSG <code> @!@!@
//
// with the body lines in between accumulated verbatim. Codes and classes
// are protocol constants fixed by the tool; they are opaque literals here.
const (
	startMsgPrefix = "@!@!@STARTMSG "
	endMsgPrefix   = "@!@!@ENDMSG "
	msgSuffix      = "@!@!@"

	// Message classes. ERROR = 1, STATE = 4.
	classError = 1
	classState = 4

	// Code 2217 in the state class is a state print: one body per state of
	// the counterexample trace.
	codeStatePrint = 2217

	// First line of a state print that opens a fresh trace.
	initialPredicateMarker = "1: <Initial predicate>"
)

// messageStream groups parsed message bodies by class, then by code, in
// stream order.
type messageStream map[int]map[int][]string

// bodies returns the bodies for (class, code), or nil.
func (m messageStream) bodies(class, code int) []string {
	return m[class][code]
}

// parseMessages decodes the tagged message stream into a messageStream.
//
// The decoder is an explicit two-state machine: outside a message, only a
// STARTMSG line is meaningful and everything else is tool chatter; inside a
// message, every line up to the ENDMSG is body. A STARTMSG while inside, an
// ENDMSG while outside, an ENDMSG whose code differs from the opening one,
// or an unterminated message at end of stream are all protocol violations.
func parseMessages(output string) (messageStream, error) {
	stream := make(messageStream)

	var (
		inside bool
		code   int
		class  int
		body   strings.Builder
	)

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, startMsgPrefix):
			if inside {
				return nil, &OutputError{
					Checker: "tlc",
					Reason:  fmt.Sprintf("message %d not terminated before next STARTMSG", code),
				}
			}
			var err error
			code, class, err = parseStartTag(line)
			if err != nil {
				return nil, err
			}
			inside = true
			body.Reset()

		case strings.HasPrefix(line, endMsgPrefix):
			if !inside {
				return nil, &OutputError{Checker: "tlc", Reason: "ENDMSG without a matching STARTMSG"}
			}
			endCode, err := parseEndTag(line)
			if err != nil {
				return nil, err
			}
			if endCode != code {
				return nil, &OutputError{
					Checker: "tlc",
					Reason:  fmt.Sprintf("ENDMSG code %d does not match STARTMSG code %d", endCode, code),
				}
			}
			if stream[class] == nil {
				stream[class] = make(map[int][]string)
			}
			stream[class][code] = append(stream[class][code], body.String())
			inside = false

		case inside:
			body.WriteString(line)
			body.WriteString("\n")
		}
	}

	if inside {
		return nil, &OutputError{
			Checker: "tlc",
			Reason:  fmt.Sprintf("message %d not terminated at end of output", code),
		}
	}
	return stream, nil
}

// parseStartTag extracts (code, class) from "@!@!@STARTMSG <code>:<class> @!@!@".
func parseStartTag(line string) (code, class int, err error) {
	tag := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, startMsgPrefix), msgSuffix))
	codeStr, classStr, found := strings.Cut(tag, ":")
	if !found {
		return 0, 0, &OutputError{Checker: "tlc", Reason: fmt.Sprintf("malformed STARTMSG tag %q", line)}
	}
	code, err = strconv.Atoi(codeStr)
	if err == nil {
		class, err = strconv.Atoi(classStr)
	}
	if err != nil {
		return 0, 0, &OutputError{Checker: "tlc", Reason: fmt.Sprintf("malformed STARTMSG tag %q", line)}
	}
	return code, class, nil
}

// parseEndTag extracts the code from "@!@!@ENDMSG <code> @!@!@".
func parseEndTag(line string) (int, error) {
	tag := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, endMsgPrefix), msgSuffix))
	code, err := strconv.Atoi(tag)
	if err != nil {
		return 0, &OutputError{Checker: "tlc", Reason: fmt.Sprintf("malformed ENDMSG tag %q", line)}
	}
	return code, nil
}

// ParseTraces extracts counterexample traces from one TLC run's stdout.
//
// After the message stream is grouped:
//   - state prints present: each body whose first line is the initial
//     predicate marker opens a fresh trace; every body, first line
//     stripped, becomes one state of the open trace.
//   - otherwise, error messages present: the run failed; every error body
//     is folded into a FailureError.
//   - otherwise: the run held, there is no counterexample, and the result
//     is an empty trace list.
//
// logPath only labels error messages; it is not read.
func ParseTraces(output, logPath string) ([]artifact.Trace, error) {
	stream, err := parseMessages(output)
	if err != nil {
		return nil, err
	}

	if prints := stream.bodies(classState, codeStatePrint); len(prints) > 0 {
		return tracesFromStatePrints(prints)
	}

	if errs := stream[classError]; len(errs) > 0 {
		return nil, &FailureError{Checker: "tlc", Message: formatErrors(errs, logPath)}
	}

	return nil, nil
}

func tracesFromStatePrints(prints []string) ([]artifact.Trace, error) {
	var (
		traces []artifact.Trace
		open   *artifact.Trace
	)
	for _, body := range prints {
		first, rest, found := strings.Cut(body, "\n")
		if !found {
			return nil, &OutputError{Checker: "tlc", Reason: fmt.Sprintf("state print without a state: %q", body)}
		}
		if strings.HasPrefix(first, initialPredicateMarker) {
			if open != nil {
				traces = append(traces, *open)
			}
			open = &artifact.Trace{}
		}
		if open != nil {
			open.Add(artifact.NewState(rest))
		}
	}
	if open != nil {
		traces = append(traces, *open)
	}
	return traces, nil
}

// formatErrors renders every (code, bodies) error pair as one
// "[<log>:<code>]: <body>" line, bodies flattened to a single line, codes
// in ascending order so the message is deterministic.
func formatErrors(errs map[int][]string, logPath string) string {
	codes := make([]int, 0, len(errs))
	for code := range errs {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		flattened := make([]string, 0, len(errs[code]))
		for _, body := range errs[code] {
			flattened = append(flattened, strings.ReplaceAll(strings.TrimSpace(body), "\n", " "))
		}
		lines = append(lines, fmt.Sprintf("[%s:%d]: %s", logPath, code, strings.Join(flattened, " ")))
	}
	return strings.Join(lines, "\n")
}
