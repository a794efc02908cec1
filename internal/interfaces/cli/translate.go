package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thaisign/thsl-translate/pkg/client"
)

func newTranslateCommand(opts *RootOptions) *cobra.Command {
	var keywords []string

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate a Thai sentence into ThSL sign order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(opts.ServerAddr, client.WithTimeout(opts.Timeout))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			out, err := c.Translate(ctx, &client.TranslateRequest{
				Text:     args[0],
				Keywords: keywords,
			})
			if err != nil {
				return err
			}

			return printResult(cmd, opts.OutputFormat, out, func() {
				glosses := make([]string, len(out.Tokens))
				for i, tok := range out.Tokens {
					glosses[i] = tok.Word
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(glosses, " "))
				if out.RuleID != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "rule: %s\n", out.RuleID)
				}
				if out.LowConfidence {
					fmt.Fprintln(cmd.OutOrStdout(), "low confidence: no reordering rule matched")
				}
				if len(out.NotFound) > 0 {
					printErrLine(cmd, "not in dictionary: %s", strings.Join(out.NotFound, ", "))
				}
			})
		},
	}

	cmd.Flags().StringSliceVarP(&keywords, "keywords", "k", nil, "pre-extracted keywords (comma separated)")
	return cmd
}

func newResolveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <word>",
		Short: "Resolve one word against the sign dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(opts.ServerAddr, client.WithTimeout(opts.Timeout))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			out, err := c.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			return printResult(cmd, opts.OutputFormat, out, func() {
				for _, e := range out.Entries {
					avail := "pose missing"
					if e.PoseAvailable {
						avail = e.PoseURL
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", out.Word, e.Category, avail)
				}
			})
		},
	}
}
