package checker

import (
	"errors"
	"fmt"
)

// FailureError reports a genuine error surfaced by the checker itself: a
// nonsense specification, a missing definition, a crashed run. The message
// aggregates every error the checker reported.
type FailureError struct {
	Checker string
	Message string
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%s failure: %s", e.Checker, e.Message)
}

// IsFailure returns true if the error is a FailureError.
// Uses errors.As to handle wrapped errors.
func IsFailure(err error) bool {
	var fe *FailureError
	return errors.As(err, &fe)
}

// OutputError reports checker output this package could not make sense of:
// a malformed tagged message stream, mismatched message codes, or an
// impossible stdout/stderr combination.
type OutputError struct {
	Checker string
	Reason  string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("invalid %s output: %s", e.Checker, e.Reason)
}

// IsInvalidOutput returns true if the error is an OutputError.
func IsInvalidOutput(err error) bool {
	var oe *OutputError
	return errors.As(err, &oe)
}

// NoTraceError reports a run that completed cleanly but produced no trace
// when one was required.
type NoTraceError struct {
	Log string
}

func (e *NoTraceError) Error() string {
	return fmt.Sprintf("no trace found in %s", e.Log)
}

// IsNoTrace returns true if the error is a NoTraceError.
func IsNoTrace(err error) bool {
	var ne *NoTraceError
	return errors.As(err, &ne)
}

// CounterexampleError reports an Apalache counterexample artifact whose
// expected per-step structure is absent.
type CounterexampleError struct {
	Reason string
}

func (e *CounterexampleError) Error() string {
	return fmt.Sprintf("invalid counterexample: %s", e.Reason)
}

// IsInvalidCounterexample returns true if the error is a CounterexampleError.
func IsInvalidCounterexample(err error) bool {
	var ce *CounterexampleError
	return errors.As(err, &ce)
}

// UnrecognizedError reports a checker name this package does not know.
type UnrecognizedError struct {
	Name string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized checker: %s", e.Name)
}
