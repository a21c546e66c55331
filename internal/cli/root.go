// Package cli implements the tracegen command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelkit/tracegen/internal/runtime"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional config file path
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tracegen CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tracegen",
		Short: "Generate test traces from formal specifications",
		Long: `tracegen drives external model checkers (TLC or Apalache) to produce
execution traces from formal specifications, turning invariant violations
into replayable test inputs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewNextCommand(opts))
	cmd.AddCommand(NewGraphCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))

	return cmd
}

// loadRuntime resolves the runtime settings from the --config flag or the
// defaults.
func loadRuntime(opts *RootOptions) (*runtime.Runtime, error) {
	if opts.Config == "" {
		return runtime.Default(), nil
	}
	return runtime.Load(opts.Config)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
