package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAnchorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anchors [source]",
		Short: "Print the document with ids added to its headings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			_, html, err := a.loadHTML(cmd.Context(), argAt(args, 0))
			if err != nil {
				return err
			}

			r := a.settings.Range
			out, err := a.extension.AddAnchors(html, r.Top, r.Depth)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}
