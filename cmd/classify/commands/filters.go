package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
)

// filters: list the toggleable fields and whether the config shows them.
func filtersCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the fields that can be toggled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tLABEL\tDEFAULT")
			for _, key := range projection.FilterKeys() {
				shown := "off"
				if st.wire.Filters.Has(key) {
					shown = "on"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", key, key.Label(), shown)
			}
			return tw.Flush()
		},
	}
}
