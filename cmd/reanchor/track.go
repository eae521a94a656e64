package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsnanigans/reanchor/pkg/reanchor"
	"github.com/jsnanigans/reanchor/pkg/render"
)

func newTrackCmd(opts *rootOptions) *cobra.Command {
	var (
		patterns []string
		id       string
	)
	cmd := &cobra.Command{
		Use:   "track TEXT NEXT...",
		Short: "Annotate a pattern in TEXT and follow it through each NEXT version",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(patterns) == 0 {
				return errors.New("at least one --pattern is required")
			}
			texts, err := opts.texts(args)
			if err != nil {
				return err
			}

			empty, err := reanchor.NewIndex(reanchor.NewText(texts[0]), nil)
			if err != nil {
				return err
			}
			tracker := reanchor.NewTracker(empty, reanchor.WithLogger(opts.logger))
			for i, pattern := range patterns {
				annID := reanchor.AnnotationID(id)
				if annID == "" {
					annID = reanchor.NewAnnotationID()
				} else if len(patterns) > 1 {
					annID = reanchor.AnnotationID(fmt.Sprintf("%s-%d", id, i))
				}
				if _, err := tracker.Track(pattern, annID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			theme := opts.theme(cmd)
			show := func(cycle int, idx *reanchor.Index) {
				for _, annID := range idx.IDs() {
					positions, _ := idx.Positions(annID)
					var text string
					if opts.noColor {
						text = render.Mark(idx.Text(), positions, "[", "]")
					} else {
						text = theme.HighlightText(idx.Text(), positions)
					}
					fmt.Fprintf(out, "cycle %d %s %v: %s\n", cycle, annID, positions, text)
				}
			}

			show(0, tracker.Current())
			for cycle, next := range texts[1:] {
				prev := tracker.Current()
				res, err := tracker.Advance(reanchor.NewText(next))
				if err != nil {
					return err
				}
				for _, lost := range res.Lost {
					positions, _ := prev.Positions(lost)
					if len(positions) == 0 {
						fmt.Fprintf(out, "cycle %d %s: lost\n", cycle+1, lost)
						continue
					}
					near := reanchor.MapPosition(positions[0], res.Records)
					fmt.Fprintf(out, "cycle %d %s: lost near %d\n", cycle+1, lost, near)
				}
				show(cycle+1, res.Index)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "literal pattern to annotate (repeatable)")
	cmd.Flags().StringVar(&id, "id", "", "annotation id; generated when empty")
	return cmd
}
