package checker

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/cache"
	"github.com/modelkit/tracegen/internal/journal"
	"github.com/modelkit/tracegen/internal/runtime"
)

// TLC drives the TLC backend. TLC is launched with the "-tool" flag so its
// stdout follows the tagged message-stream protocol parsed by ParseTraces.
type TLC struct {
	// Journal, when non-nil, receives one entry per Trace call.
	Journal *journal.Journal
}

// Name returns the backend name.
func (t *TLC) Name() string { return NameTLC }

// Trace runs TLC over the suite and returns the single counterexample
// trace it produced. Results are memoized: an unchanged suite is answered
// from the trace cache without launching a process.
func (t *TLC) Trace(suite *artifact.Suite, rt *runtime.Runtime) (*artifact.Trace, error) {
	traces, err := t.cachedRun(suite, rt)
	if err != nil {
		return nil, err
	}
	if len(traces) == 0 {
		return nil, &NoTraceError{Log: rt.LogPath()}
	}
	if len(traces) > 1 {
		return nil, &OutputError{
			Checker: NameTLC,
			Reason:  fmt.Sprintf("expected at most one trace, found %d", len(traces)),
		}
	}
	return &traces[0], nil
}

func (t *TLC) cachedRun(suite *artifact.Suite, rt *runtime.Runtime) ([]artifact.Trace, error) {
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
		if err := t.Journal.Record(journalEntry(NameTLC, suite, key, 0, 0, true)); err != nil {
			return nil, err
		}
		return []artifact.Trace{*trace}, nil
	}

	started := time.Now()
	stdout, stderr, exitCode, err := t.run(suite, rt)
	if err != nil {
		return nil, err
	}
	if err := t.Journal.Record(journalEntry(NameTLC, suite, key, exitCode, time.Since(started), false)); err != nil {
		return nil, err
	}

	switch {
	case stdout != "" && stderr == "":
		// A violation report is a normal run for TLC; the real outcome is
		// on stdout.
	case stdout == "" && stderr != "":
		return nil, &FailureError{Checker: NameTLC, Message: stderr}
	default:
		return nil, &OutputError{
			Checker: NameTLC,
			Reason:  fmt.Sprintf("unexpected stdout/stderr combination (stdout %d bytes, stderr %d bytes)", len(stdout), len(stderr)),
		}
	}

	if err := os.WriteFile(rt.LogPath(), []byte(stdout), 0o644); err != nil {
		return nil, fmt.Errorf("write checker log: %w", err)
	}

	// TLC names its scratch folder under 'states' with second precision;
	// two runs in the same second collide on it. Removing it after every
	// run sidesteps the collision.
	if err := os.RemoveAll(filepath.Join(suite.Spec.Dir(), "states")); err != nil {
		return nil, fmt.Errorf("remove TLC states dir: %w", err)
	}

	traces, err := ParseTraces(stdout, rt.LogPath())
	if err != nil {
		return nil, err
	}
	if len(traces) == 1 {
		if err := traceCache.Put(key, &traces[0]); err != nil {
			return nil, err
		}
	}
	return traces, nil
}

// run launches the TLC process and captures its streams. A non-zero exit
// is not an error at this level: TLC exits non-zero on a violation, and
// the streams decide the outcome.
func (t *TLC) run(suite *artifact.Suite, rt *runtime.Runtime) (stdout, stderr string, exitCode int, err error) {
	classpath := rt.TLAToolsJar + string(os.PathListSeparator) + rt.CommunityModulesJar
	cmd := exec.Command(
		"java",
		"-cp", classpath,
		"tlc2.TLC", suite.Spec.Path(),
		"-config", suite.Config.Path(),
		// "-tool" switches stdout to the tagged message protocol.
		"-tool",
		"-workers", rt.Workers,
	)

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
		return "", "", 0, fmt.Errorf("run tlc: %w", runErr)
	}
	return outBuf.String(), errBuf.String(), exitCode, nil
}

func journalEntry(name string, suite *artifact.Suite, key string, exitCode int, d time.Duration, hit bool) journal.Entry {
	return journal.Entry{
		Checker:    name,
		SpecPath:   suite.Spec.Path(),
		ConfigPath: suite.Config.Path(),
		CacheKey:   key,
		ExitCode:   exitCode,
		Duration:   d,
		CacheHit:   hit,
	}
}
