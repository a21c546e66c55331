package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/checker"
	"github.com/modelkit/tracegen/internal/journal"
)

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <spec-file> <config-file>",
		Short: "Generate a counterexample trace for a specification",
		Long: `Run the configured model checker over a specification and its
configuration and print the counterexample trace. Results are cached by
the content digest of the inputs; an unchanged pair never re-runs the
checker.

Example:
  tracegen trace NumbersTest.tla Numbers.cfg
  tracegen --config tracegen.yaml --format json trace NumbersTest.tla Numbers.cfg`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runTrace(opts *RootOptions, specPath, configPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rt, err := loadRuntime(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if err := os.MkdirAll(rt.Dir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "create working directory", err)
	}

	suite, err := artifact.NewSuite(specPath, configPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolve input files", err)
	}

	j, err := journal.Open(rt.JournalPath())
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	backend, err := checker.New(rt.Checker, j)
	if err != nil {
		return WrapExitError(ExitCommandError, "select checker", err)
	}

	formatter.VerboseLog("running %s over %s", backend.Name(), suite.Spec)
	trace, err := backend.Trace(suite, rt)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitFailure, "trace generation failed", err)
	}
	return formatter.Success(trace)
}
