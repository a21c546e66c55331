// Package runtime holds the per-invocation settings shared by every
// component: the working directory, the selected checker backend, worker
// count and log file, and the locations of the checker executables.
package runtime

import "path/filepath"

// WorkersAuto lets the backend pick a worker count itself.
const WorkersAuto = "auto"

// Runtime bundles the settings for one tracegen run. The zero value is not
// usable; construct with Default or Load.
type Runtime struct {
	// Dir is the working directory: cache tables, logs and the invocation
	// journal live under it.
	Dir string `yaml:"dir"`

	// Checker names the backend: "tlc" or "apalache".
	Checker string `yaml:"checker"`

	// Workers is "auto" or a positive decimal count. Single-threaded
	// backends ignore it with a warning.
	Workers string `yaml:"workers"`

	// Log is the file name, relative to Dir, where the raw checker output
	// of the last run is written.
	Log string `yaml:"log"`

	// TLAToolsJar and CommunityModulesJar locate the TLC backend.
	// Fetching these artifacts is outside this module's scope.
	TLAToolsJar         string `yaml:"tla2tools_jar"`
	CommunityModulesJar string `yaml:"community_modules_jar"`

	// ApalacheJar locates the Apalache backend.
	ApalacheJar string `yaml:"apalache_jar"`
}

// Default returns the settings used when no config file is given.
func Default() *Runtime {
	return &Runtime{
		Dir:                 ".tracegen",
		Checker:             "tlc",
		Workers:             WorkersAuto,
		Log:                 "checker.log",
		TLAToolsJar:         filepath.Join(".tracegen", "tla2tools.jar"),
		CommunityModulesJar: filepath.Join(".tracegen", "CommunityModules.jar"),
		ApalacheJar:         filepath.Join(".tracegen", "apalache.jar"),
	}
}

// LogPath returns the absolute-ish path of the checker log file.
func (r *Runtime) LogPath() string {
	return filepath.Join(r.Dir, r.Log)
}

// JournalPath returns the path of the invocation journal database.
func (r *Runtime) JournalPath() string {
	return filepath.Join(r.Dir, "journal.db")
}
