package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
	"github.com/jsnanigans/reanchor/pkg/render"
)

func newDiffCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the character-level edit script between two texts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := opts.texts(args)
			if err != nil {
				return err
			}
			oldText, newText := reanchor.NewText(texts[0]), reanchor.NewText(texts[1])
			ops := reanchor.NewDiffMatchPatch(reanchor.WithLogger(opts.logger)).Diff(oldText, newText)
			records := reanchor.NewClassifier(reanchor.WithLogger(opts.logger)).Classify(ops)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Detailed Change Analysis:")
			for _, line := range render.Details(records) {
				fmt.Fprintln(out, line)
			}
			if !opts.noColor {
				fmt.Fprintln(out, "\nColored Diff Representation:")
				fmt.Fprintln(out, opts.theme(cmd).Colored(records))
			}
			fmt.Fprintln(out, "\nChange Statistics:")
			fmt.Fprintln(out, render.Summary(reanchor.CollectStats(records)))
			return nil
		},
	}
}
