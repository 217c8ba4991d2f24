package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/snapshot"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the stored accounts and transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				state := a.store.State()
				out := cmd.OutOrStdout()

				verrs := snapshot.Validate(state)
				if len(verrs) == 0 {
					fmt.Fprintf(out, "OK: %s, %s\n",
						plural(len(state.Accounts), "account"), plural(len(state.Transactions), "transaction"))
					return nil
				}

				for _, ve := range verrs {
					fmt.Fprintln(out, ve.Error())
				}
				return fmt.Errorf("%s found", plural(len(verrs), "problem"))
			})
		},
	}
}
