// Package checker drives the external model-checker backends and parses
// their output into traces.
//
// Two interchangeable backends exist: TLC, which reports results on stdout
// in a tagged message-stream protocol, and Apalache, which writes a textual
// counterexample artifact. Both produce the same artifact.Trace type, so
// downstream consumers are backend-agnostic.
//
// A backend invocation is a blocking external-process call. Results are
// memoized in the trace cache keyed by the content digest of the input
// files, so re-running an unchanged specification never launches a process.
// Callers wanting concurrency run independent invocations in parallel;
// this package never spawns its own goroutines.
package checker
