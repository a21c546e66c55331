package checker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/cache"
	"github.com/modelkit/tracegen/internal/journal"
	"github.com/modelkit/tracegen/internal/runtime"
)

// Apalache drives the Apalache backend. Unlike TLC it does not speak the
// tagged message protocol: a violation is reported as a counterexample
// file next to the checked specification, parsed by ParseCounterexample.
//
// Every invocation runs in its own temporary directory holding a copy of
// the specification, its sibling modules and the configuration, so
// concurrent invocations never trample each other's scratch files. The
// directory is discarded after output capture.
type Apalache struct {
	// Journal, when non-nil, receives one entry per Trace call.
	Journal *journal.Journal
}

// Name returns the backend name.
func (a *Apalache) Name() string { return NameApalache }

// Trace runs Apalache over the suite and returns the counterexample trace,
// consulting the trace cache first.
func (a *Apalache) Trace(suite *artifact.Suite, rt *runtime.Runtime) (*artifact.Trace, error) {
	traceCache, err := cache.OpenTraceCache(rt.Dir)
	if err != nil {
		return nil, err
	}
	key, err := cache.Key(suite.Spec, suite.Config)
	if err != nil {
		return nil, err
	}
	if trace, ok, err := traceCache.Get(key); err != nil {
		return nil, err
	} else if ok {
		if err := a.Journal.Record(journalEntry(NameApalache, suite, key, 0, 0, true)); err != nil {
			return nil, err
		}
		return trace, nil
	}

	workDir, cleanup, err := stageSuite(suite)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	// Apalache is single-threaded; the workers setting cannot fail the
	// run, only be ignored.
	if rt.Workers != runtime.WorkersAuto {
		slog.Warn("ignoring workers setting: apalache is single-threaded", "workers", rt.Workers)
	}

	cmd := exec.Command(
		"java",
		"-jar", rt.ApalacheJar,
		"check",
		fmt.Sprintf("--config=%s", filepath.Base(suite.Config.Path())),
		filepath.Base(suite.Spec.Path()),
	)
	cmd.Dir = workDir

	started := time.Now()
	stdout, exitCode, err := a.run(cmd, rt)
	if err != nil {
		return nil, err
	}
	if err := a.Journal.Record(journalEntry(NameApalache, suite, key, exitCode, time.Since(started), false)); err != nil {
		return nil, err
	}

	// An invariant violation exits with EXITCODE: ERROR and still writes
	// the counterexample; the file, not the exit code, decides the
	// outcome. Only an error without a counterexample is a failure.
	counterexample := filepath.Join(workDir, "counterexample.tla")
	data, err := os.ReadFile(counterexample)
	if err != nil {
		if strings.Contains(stdout, "EXITCODE: ERROR") {
			return nil, &FailureError{Checker: NameApalache, Message: tail(stdout, 20)}
		}
		// The property held; Apalache writes no counterexample.
		return nil, &NoTraceError{Log: rt.LogPath()}
	}

	trace, err := ParseCounterexample(string(data))
	if err != nil {
		return nil, err
	}
	if err := traceCache.Put(key, trace); err != nil {
		return nil, err
	}
	return trace, nil
}

// Variables extracts the specification's declared variable names by running
// Apalache's parse command with JSON output and scanning the declarations.
func (a *Apalache) Variables(spec *artifact.SpecFile, rt *runtime.Runtime) (artifact.Variables, error) {
	workDir, cleanup, err := stageSpec(spec)
	if err != nil {
		return artifact.Variables{}, err
	}
	defer cleanup()

	parsed := spec.ModuleName() + "Parsed.json"
	cmd := exec.Command(
		"java",
		"-jar", rt.ApalacheJar,
		"parse",
		fmt.Sprintf("--output=%s", parsed),
		filepath.Base(spec.Path()),
	)
	cmd.Dir = workDir

	stdout, _, err := a.run(cmd, rt)
	if err != nil {
		return artifact.Variables{}, err
	}
	// parse produces no counterexample, so any reported error is fatal.
	if strings.Contains(stdout, "EXITCODE: ERROR") {
		return artifact.Variables{}, &FailureError{Checker: NameApalache, Message: tail(stdout, 20)}
	}

	data, err := os.ReadFile(filepath.Join(workDir, parsed))
	if err != nil {
		return artifact.Variables{}, fmt.Errorf("read parsed spec: %w", err)
	}

	var doc struct {
		Declarations []struct {
			Variable *string `json:"variable"`
		} `json:"declarations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return artifact.Variables{}, &OutputError{
			Checker: NameApalache,
			Reason:  fmt.Sprintf("parse output is not valid JSON: %v", err),
		}
	}

	var names []string
	for _, decl := range doc.Declarations {
		if decl.Variable != nil {
			names = append(names, *decl.Variable)
		}
	}
	return artifact.NewVariables(names), nil
}

// run launches an Apalache command and checks its stream shape: Apalache
// writes everything, errors included, to stdout. The EXITCODE marker is
// not interpreted here; whether an error is fatal depends on the command.
func (a *Apalache) run(cmd *exec.Cmd, rt *runtime.Runtime) (stdout string, exitCode int, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		exitCode = exitErr.ExitCode()
	default:
		return "", 0, fmt.Errorf("run apalache: %w", runErr)
	}

	stdout = outBuf.String()
	if stdout == "" || errBuf.Len() > 0 {
		return "", 0, &OutputError{
			Checker: NameApalache,
			Reason:  fmt.Sprintf("unexpected stdout/stderr combination (stdout %d bytes, stderr %d bytes)", len(stdout), errBuf.Len()),
		}
	}

	if err := os.WriteFile(rt.LogPath(), []byte(stdout), 0o644); err != nil {
		return "", 0, fmt.Errorf("write checker log: %w", err)
	}
	return stdout, exitCode, nil
}

// stageSuite copies the specification, every sibling module sharing its
// extension, and the configuration into a fresh temporary directory.
func stageSuite(suite *artifact.Suite) (dir string, cleanup func(), err error) {
	dir, cleanup, err = stageSpec(suite.Spec)
	if err != nil {
		return "", nil, err
	}
	if err := copyFile(suite.Config.Path(), filepath.Join(dir, filepath.Base(suite.Config.Path()))); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

func stageSpec(spec *artifact.SpecFile) (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "tracegen-apalache-")
	if err != nil {
		return "", nil, fmt.Errorf("create work dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	entries, err := os.ReadDir(spec.Dir())
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("read spec dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != spec.Ext() {
			continue
		}
		src := filepath.Join(spec.Dir(), entry.Name())
		if err := copyFile(src, filepath.Join(dir, entry.Name())); err != nil {
			cleanup()
			return "", nil, err
		}
	}
	return dir, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("stage %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("stage %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("stage %s: %w", dst, err)
	}
	return nil
}

// tail returns the last n lines of s, enough context for a failure message
// without echoing a whole log.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
