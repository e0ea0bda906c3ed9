package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCommand prints the transform catalog in registration order.
func (c *CLI) listCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			names := c.catalog.List()
			if plain {
				for _, name := range names {
					fmt.Fprintln(w, name)
				}
				return nil
			}
			fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%d transforms", len(names))))
			fmt.Fprintln(w, renderGrid(names, gridColumns, -1))
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print one name per line without styling")
	return cmd
}
