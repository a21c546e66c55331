package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelkit/tracegen/internal/journal"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Limit int
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show recent checker invocations",
		Long: `List the most recent checker invocations recorded in the journal,
newest first, including the ones answered from the cache without a
process launch.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournal(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of entries to show")
	return cmd
}

func runJournal(opts *JournalOptions, cmd *cobra.Command) error {
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

	j, err := journal.Open(rt.JournalPath())
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	entries, err := j.Recent(opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "read journal", err)
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	var b strings.Builder
	for _, e := range entries {
		source := "run"
		if e.CacheHit {
			source = "cache"
		}
		fmt.Fprintf(&b, "%-8s %-6s exit=%d %6dms %s\n",
			e.Checker, source, e.ExitCode, e.Duration.Milliseconds(), e.SpecPath)
	}
	return formatter.Success(strings.TrimRight(b.String(), "\n"))
}
