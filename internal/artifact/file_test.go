package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpecFile_Missing(t *testing.T) {
	_, err := NewSpecFile(filepath.Join(t.TempDir(), "Missing.tla"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestNewSpecFile_Properties(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Numbers.tla")
	require.NoError(t, os.WriteFile(path, []byte("---- MODULE Numbers ----\n====\n"), 0o644))

	spec, err := NewSpecFile(path)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(spec.Path()))
	assert.Equal(t, ".tla", spec.Ext())
	assert.Equal(t, "Numbers", spec.ModuleName())
	assert.Equal(t, filepath.Dir(spec.Path()), spec.Dir())
}

func TestNewSuite(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "Numbers.tla")
	config := filepath.Join(dir, "Numbers.cfg")
	require.NoError(t, os.WriteFile(spec, []byte("----"), 0o644))
	require.NoError(t, os.WriteFile(config, []byte("INIT Init"), 0o644))

	suite, err := NewSuite(spec, config)
	require.NoError(t, err)
	assert.Equal(t, "Numbers", suite.Spec.ModuleName())

	_, err = NewSuite(spec, filepath.Join(dir, "missing.cfg"))
	assert.True(t, IsNotFound(err))
}
