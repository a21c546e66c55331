package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/checker"
	"github.com/modelkit/tracegen/internal/explore"
	"github.com/modelkit/tracegen/internal/journal"
)

// NextOptions holds flags for the next command.
type NextOptions struct {
	*RootOptions
	StartFile string
	Count     int
	Skip      int
}

// NewNextCommand creates the next command.
func NewNextCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NextOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "next <spec-file> <config-file>",
		Short: "Discover the next states of a specification state",
		Long: `Incrementally discover the immediate successors of a state, using the
model checker as an oracle. Discovered transitions are persisted, so
repeated requests are answered from the session without invoking the
checker.

The start state defaults to the specification's initial state; pass
--start-file with a file holding a state rendering to start elsewhere.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.StartFile, "start-file", "", "file holding the start state rendering")
	cmd.Flags().IntVar(&opts.Count, "count", 1, "number of next states to return")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "number of next states to skip")

	return cmd
}

func runNext(opts *NextOptions, specPath, configPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rt, err := loadRuntime(opts.RootOptions)
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

	var start *artifact.State
	if opts.StartFile != "" {
		data, err := os.ReadFile(opts.StartFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "read start state", err)
		}
		s := artifact.NewState(strings.TrimSpace(string(data)))
		start = &s
	}

	j, err := journal.Open(rt.JournalPath())
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	// TLC answers the exploration queries; Apalache supplies the variable
	// set through its parse command.
	runner := &checker.TLC{Journal: j}
	vars := &checker.Apalache{Journal: j}

	explorer := explore.New(runner, vars, rt)
	next, err := explorer.NextStates(suite, start, opts.Count, opts.Skip)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitFailure, "next-states discovery failed", err)
	}

	formatter.VerboseLog("discovered %d state(s)", next.Len())
	if opts.Format == "json" {
		return formatter.Success(next)
	}
	var b strings.Builder
	for _, s := range next.States {
		b.WriteString(s.Text)
		b.WriteString("\n\n")
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}
