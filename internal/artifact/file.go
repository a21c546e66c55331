package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NotFoundError reports a referenced specification or configuration file
// that does not exist (or is not a regular file).
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// IsNotFound returns true if the error is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// SpecFile is a handle to a specification file on disk.
// The path is canonical and absolute; the file existed when the handle was
// created.
type SpecFile struct {
	path string
}

// NewSpecFile validates that path names an existing regular file and
// returns a handle with its absolute path.
func NewSpecFile(path string) (*SpecFile, error) {
	abs, err := checkFile(path)
	if err != nil {
		return nil, err
	}
	return &SpecFile{path: abs}, nil
}

// Path returns the canonical absolute path of the specification file.
func (f *SpecFile) Path() string { return f.path }

// Dir returns the directory containing the specification file.
func (f *SpecFile) Dir() string { return filepath.Dir(f.path) }

// Ext returns the file extension, including the leading dot.
func (f *SpecFile) Ext() string { return filepath.Ext(f.path) }

// ModuleName returns the module name of the specification, which by
// convention is the file name without its extension.
func (f *SpecFile) ModuleName() string {
	base := filepath.Base(f.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (f *SpecFile) String() string { return f.path }

// ConfigFile is a handle to a checker configuration file on disk.
// Its body is treated as opaque text.
type ConfigFile struct {
	path string
}

// NewConfigFile validates that path names an existing regular file and
// returns a handle with its absolute path.
func NewConfigFile(path string) (*ConfigFile, error) {
	abs, err := checkFile(path)
	if err != nil {
		return nil, err
	}
	return &ConfigFile{path: abs}, nil
}

// Path returns the canonical absolute path of the configuration file.
func (f *ConfigFile) Path() string { return f.path }

func (f *ConfigFile) String() string { return f.path }

// Suite bundles a specification file with its configuration file. Checker
// drivers take a Suite so that both paths travel together.
type Suite struct {
	Spec   *SpecFile
	Config *ConfigFile
}

// NewSuite builds a Suite from the two paths, validating both.
func NewSuite(specPath, configPath string) (*Suite, error) {
	spec, err := NewSpecFile(specPath)
	if err != nil {
		return nil, err
	}
	config, err := NewConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	return &Suite{Spec: spec, Config: config}, nil
}

func checkFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", &NotFoundError{Path: path}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
