package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j, path
}

func TestJournal_RecordAndRecent(t *testing.T) {
	j, _ := openTestJournal(t)

	require.NoError(t, j.Record(Entry{
		Checker:  "tlc",
		SpecPath: "/specs/Counter.tla",
		CacheKey: "k1",
		Duration: 1500 * time.Millisecond,
	}))
	require.NoError(t, j.Record(Entry{
		Checker:  "tlc",
		SpecPath: "/specs/Counter.tla",
		CacheKey: "k1",
		CacheHit: true,
	}))

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first: the cache hit was recorded last.
	assert.True(t, entries[0].CacheHit)
	assert.False(t, entries[1].CacheHit)
	assert.Equal(t, 1500*time.Millisecond, entries[1].Duration)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestJournal_RecentLimit(t *testing.T) {
	j, _ := openTestJournal(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(Entry{Checker: "tlc"}))
	}

	entries, err := j.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestJournal_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Record(Entry{Checker: "apalache", ExitCode: 12}))
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	entries, err := j2.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "apalache", entries[0].Checker)
	assert.Equal(t, 12, entries[0].ExitCode)
}

func TestJournal_NilIsNoOp(t *testing.T) {
	var j *Journal
	assert.NoError(t, j.Record(Entry{Checker: "tlc"}))
	assert.NoError(t, j.Close())
}
