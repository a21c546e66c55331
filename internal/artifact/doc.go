// Package artifact defines the file and value artifacts exchanged between
// the checker drivers, the cache, and the explorer.
//
// File artifacts (SpecFile, ConfigFile) are path-validated handles: a handle
// exists only if the file existed at construction time, and its path is
// always canonical and absolute. Value artifacts (Trace, State, Variables,
// NextStates) are produced by parsers, owned by the caller, and immutable
// after creation.
//
// State identity is textual: two states are the same state iff their
// NFC-normalized, whitespace-trimmed renderings are byte-equal. All graph
// and cache keys derived from states go through State.Canonical.
package artifact
