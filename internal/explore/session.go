package explore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelkit/tracegen/internal/artifact"
)

// Session is the persistent exploration state for one (specification,
// configuration) cache key: the specification's variable set, the
// discovered initial state, and every confirmed transition. It is created
// on the first next-states request for a key, extended incrementally, and
// never deleted automatically.
type Session struct {
	Variables artifact.Variables `json:"variables"`
	Initial   artifact.State     `json:"initial"`
	Index     *NextStatesIndex   `json:"index"`
}

// SessionStore persists sessions under <root>/cache/next_states/<key>.
//
// Unlike the write-once trace cache, a session is mutable by nature: every
// discovered edge extends it. The store therefore replaces the blob
// atomically (write to a temporary file, then rename) instead of refusing
// overwrites. The single-writer-per-key precondition still applies — one
// session is owned by one logical task — the store only makes a crashed
// writer harmless, not concurrent writers safe.
type SessionStore struct {
	dir string
}

// OpenSessionStore ensures the session directory exists.
func OpenSessionStore(root string) (*SessionStore, error) {
	dir := filepath.Join(root, "cache", "next_states")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir %s: %w", dir, err)
	}
	return &SessionStore{dir: dir}, nil
}

// Get loads the session for key, if one was ever persisted.
func (s *SessionStore) Get(key string) (*Session, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read session %s: %w", key, err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", key, err)
	}
	return &session, true, nil
}

// Put persists the session for key, replacing any previous version
// atomically.
func (s *SessionStore) Put(key string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".tmp-")
	if err != nil {
		return fmt.Errorf("write session %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write session %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write session %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) path(key string) string {
	return filepath.Join(s.dir, key)
}
