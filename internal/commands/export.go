package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/export"
	"github.com/pocketledger/pocketledger/internal/filter"
)

func newExportCommand() *cobra.Command {
	var ff filterFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := ff.criteria(time.Now())
			if err != nil {
				return err
			}
			return withApp(cmd, func(_ context.Context, a *app) error {
				txns := filter.Apply(filter.SortByDateDesc(a.store.Transactions()), criteria)

				if outPath == "" || outPath == "-" {
					return export.WriteTransactions(cmd.OutOrStdout(), txns)
				}
				if err := export.WriteFile(outPath, txns); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", plural(len(txns), "transaction"), outPath)
				return nil
			})
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	return cmd
}
