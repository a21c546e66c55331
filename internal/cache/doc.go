// Package cache implements a content-addressed, write-once key/value store
// backed by a directory of JSON blobs.
//
// Each logical table is one directory: <root>/cache/<table>/<hex-key>, one
// file per key. The directory listing is the authoritative key index; it is
// scanned once when the table is opened and mirrored in memory afterwards.
//
// Entries are immutable: a key, once written, is never overwritten or
// deleted. That is what makes concurrent readers safe without any locking.
// The flip side is a caller precondition, not a runtime lock: at most one
// writer per key at a time. Callers must Get before Put, and must serialize
// per-key access (one exploration session owned by a single task). A second
// Put for the same key is a programming error and panics.
package cache
