package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/digest"
)

// Key derives the content-addressed cache key for a specification and its
// configuration.
//
// The key digests, in lexicographic order, the contents of every file in
// the specification's directory that shares its extension, plus the
// configuration file. The specification's own absolute path is then fed
// into the same running digest before finalizing: two specifications that
// share a directory and a configuration but differ only in name must not
// collide.
func Key(spec *artifact.SpecFile, config *artifact.ConfigFile) (string, error) {
	entries, err := os.ReadDir(spec.Dir())
	if err != nil {
		return "", fmt.Errorf("read spec dir %s: %w", spec.Dir(), err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != spec.Ext() {
			continue
		}
		paths = append(paths, filepath.Join(spec.Dir(), entry.Name()))
	}
	paths = append(paths, config.Path())

	for i, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		if _, statErr := os.Stat(abs); statErr != nil {
			return "", &artifact.NotFoundError{Path: abs}
		}
		paths[i] = abs
	}

	// Sort so the key does not depend on directory-listing order.
	sort.Strings(paths)

	h, err := digest.Files(paths)
	if err != nil {
		return "", err
	}
	h.Write([]byte(spec.Path()))
	return digest.Encode(h), nil
}
