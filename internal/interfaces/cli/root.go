// Package cli implements the thslctl command tree: translation against a
// running API server, standalone word segmentation and lexicon validation.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ServerAddr   string
	OutputFormat string
	Timeout      time.Duration
}

// NewRootCommand creates the root cobra command with all global flags and
// subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "thslctl",
		Short:   "thslctl — Thai-to-ThSL translation toolkit",
		Long:    "thslctl drives the ThSL translation service: submit sentences for\ngrammatical reordering, resolve single words against the sign dictionary,\nsegment Thai text and validate heuristic lexicon files.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ServerAddr, "server", "http://localhost:8080", "API server address")
	cmd.PersistentFlags().StringVarP(&opts.OutputFormat, "output", "o", "text", "output format: text|json")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 15*time.Second, "request timeout")

	cmd.AddCommand(newTranslateCommand(opts))
	cmd.AddCommand(newResolveCommand(opts))
	cmd.AddCommand(newSegmentCommand(opts))
	cmd.AddCommand(newLexiconCommand())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// printResult writes v as JSON or hands it to the text formatter.
func printResult(cmd *cobra.Command, format string, v interface{}, text func()) error {
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text()
	return nil
}

func printErrLine(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
