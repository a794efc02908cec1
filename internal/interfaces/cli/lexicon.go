package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thaisign/thsl-translate/internal/translate"
)

func newLexiconCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect heuristic lexicon files",
	}
	cmd.AddCommand(newLexiconVerifyCommand())
	return cmd
}

func newLexiconVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <path>",
		Short: "Validate a lexicon file and report its size",
		Long:  "Loads a lexicon YAML file the same way the API server does, failing on\nunknown role names or duplicate words.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := translate.ValidateLexiconFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d words)\n", args[0], n)
			return nil
		},
	}
}
