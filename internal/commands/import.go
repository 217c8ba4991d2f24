package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/importer"
	"github.com/pocketledger/pocketledger/internal/linking"
)

func newImportCommand() *cobra.Command {
	var accountID string
	var format string
	var keep bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import bank CSV files from the import/ directory into an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown CSV format %q", format)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				acct, ok := a.store.Account(accountID)
				if !ok {
					return fmt.Errorf("account %s not found", accountID)
				}

				files, err := importer.Scan(a.dir)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					fmt.Fprintln(out, "No CSV files in import/.")
					return nil
				}

				paths := make([]string, len(files))
				for i, f := range files {
					paths[i] = f.Path
				}
				bts, err := importer.ParseFiles(ctx, parser, paths)
				if err != nil {
					return err
				}

				linker := linking.NewLinker(a.store, a.categorizer)
				added, err := linker.Sync(ctx, acct.ID, importer.ToFeeds(bts, acct.ExternalID))
				if err != nil {
					return err
				}

				if !keep {
					for _, f := range files {
						if err := importer.MarkProcessed(a.dir, f.Name); err != nil {
							return err
						}
					}
				}

				fmt.Fprintf(out, "Imported %s from %s into %s\n",
					plural(len(added), "transaction"), plural(len(files), "file"), acct.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id to import into (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&format, "format", "chase", "CSV format")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave files in import/ instead of moving them to import/processed/")

	return cmd
}
