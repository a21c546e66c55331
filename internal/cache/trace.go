package cache

import "github.com/modelkit/tracegen/internal/artifact"

const traceTable = "trace"

// TraceCache memoizes the trace produced for a (specification,
// configuration) pair, keyed by Key.
type TraceCache struct {
	cache *Cache
}

// OpenTraceCache opens the trace table under root.
func OpenTraceCache(root string) (*TraceCache, error) {
	c, err := Open(traceTable, root)
	if err != nil {
		return nil, err
	}
	return &TraceCache{cache: c}, nil
}

// Get returns the cached trace for key, if any.
func (t *TraceCache) Get(key string) (*artifact.Trace, bool, error) {
	var trace artifact.Trace
	ok, err := t.cache.Get(key, &trace)
	if !ok || err != nil {
		return nil, false, err
	}
	return &trace, true, nil
}

// Put records the trace for key. Write-once: see Cache.Put.
func (t *TraceCache) Put(key string, trace *artifact.Trace) error {
	return t.cache.Put(key, trace)
}
