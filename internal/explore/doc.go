// Package explore discovers a specification's state space incrementally by
// treating the model checker as a slow oracle.
//
// Instead of asking the checker for "all successors of this state" — an
// unbounded, expensive query — the explorer issues a sequence of narrow,
// synthesized queries whose only purpose is to make the checker reveal one
// targeted fact through an invariant violation: the initial state, or one
// successor not yet known. Every discovered edge is memoized in a
// persistent per-suite session, so each fact is paid for at most once.
//
// One session is owned by one logical task at a time; the exploration loop
// is inherently sequential per suite (discover, persist, re-check) and must
// not be run concurrently against the same session.
package explore
