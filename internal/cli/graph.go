package cli

import (
	"github.com/spf13/cobra"

	"github.com/modelkit/tracegen/internal/artifact"
	"github.com/modelkit/tracegen/internal/explore"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <spec-file> <config-file>",
		Short: "Print the explored transition graph as Graphviz dot",
		Long: `Render the transitions discovered so far for a specification as a
Graphviz digraph. Requires a prior 'tracegen next' run for the same
specification and configuration; no checker is invoked.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runGraph(opts *RootOptions, specPath, configPath string, cmd *cobra.Command) error {
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

	suite, err := artifact.NewSuite(specPath, configPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolve input files", err)
	}

	explorer := explore.New(nil, nil, rt)
	session, ok, err := explorer.Session(suite)
	if err != nil {
		return WrapExitError(ExitCommandError, "load session", err)
	}
	if !ok {
		_ = formatter.Error("no exploration session found; run 'tracegen next' first")
		return WrapExitError(ExitFailure, "no exploration session", nil)
	}
	return formatter.Success(session.Dot())
}
