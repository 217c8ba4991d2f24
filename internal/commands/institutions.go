package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/linking"
)

func newInstitutionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "institutions",
		Short: "List the banks that can be linked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME")
			for _, inst := range linking.Institutions() {
				fmt.Fprintf(tw, "%s\t%s\n", inst.ID, inst.Name)
			}
			return tw.Flush()
		},
	}
}
