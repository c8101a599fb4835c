package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vibeandbuild/internal/layout"
)

// newLayoutCommand previews the deterministic block order the site renders
// for one experiment column.
func newLayoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "layout <experiment-number>",
		Short: "Preview the shuffled block layout for an experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid experiment number %q", args[0])
			}

			stores, err := ctx.openStores()
			if err != nil {
				return err
			}
			experiments, err := stores.Experiments.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, exp := range experiments {
				number, ok := exp.Number()
				if !ok || number != index {
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", exp.ID, exp.Title)
				for i, block := range layout.Blocks(index, exp.Text, exp.Images) {
					switch block.Type {
					case layout.BlockHeader:
						fmt.Fprintf(out, "%2d. header\n", i+1)
					case layout.BlockImage:
						fmt.Fprintf(out, "%2d. image  #%d\n", i+1, block.ImageIndex)
					default:
						fmt.Fprintf(out, "%2d. text   %q\n", i+1, block.Content)
					}
				}
				return nil
			}
			return fmt.Errorf("no experiment numbered %d", index)
		},
	}
}
