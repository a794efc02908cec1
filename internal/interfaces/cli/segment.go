package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/infrastructure/segmenter"
	"github.com/thaisign/thsl-translate/internal/translate"
)

func newSegmentCommand(opts *RootOptions) *cobra.Command {
	var endpoint, engine string

	cmd := &cobra.Command{
		Use:   "segment <text>",
		Short: "Segment Thai text into words",
		Long:  "Segments Thai text using the external word-segmentation service, or a\nplain whitespace split when --endpoint is not given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var seg translate.Segmenter = translate.WhitespaceSegmenter{}
			if endpoint != "" {
				seg = segmenter.NewClient(config.SegmenterConfig{
					Endpoint: endpoint,
					Engine:   engine,
					Timeout:  opts.Timeout,
				}, nil)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			words, err := seg.Segment(ctx, args[0])
			if err != nil {
				return err
			}

			out := struct {
				Words []string `json:"words"`
			}{Words: words}
			return printResult(cmd, opts.OutputFormat, out, func() {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, "|"))
			})
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "segmenter service endpoint")
	cmd.Flags().StringVar(&engine, "engine", "", "segmentation engine name passed upstream")
	return cmd
}
