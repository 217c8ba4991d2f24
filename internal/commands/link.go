package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/importer"
	"github.com/pocketledger/pocketledger/internal/linking"
	"github.com/pocketledger/pocketledger/internal/model"
)

func newLinkCommand() *cobra.Command {
	var (
		name        string
		accountType string
		balance     string
		mask        string
		externalID  string
		csvFiles    []string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "link <institution>",
		Short: "Connect a bank account, optionally loading its history from CSV exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bal, err := parseMoney("balance", balance)
			if err != nil {
				return err
			}
			if externalID == "" {
				externalID = "ext-" + uuid.NewString()
			}

			req := linking.LinkRequest{
				InstitutionID: args[0],
				Accounts: []linking.ExternalAccount{{
					ID:      externalID,
					Name:    name,
					Subtype: model.AccountType(accountType),
					Balance: bal,
					Mask:    mask,
				}},
			}

			if len(csvFiles) > 0 {
				parser := importer.DefaultRegistry().Get(format)
				if parser == nil {
					return fmt.Errorf("unknown CSV format %q", format)
				}
				bts, err := importer.ParseFiles(cmd.Context(), parser, csvFiles)
				if err != nil {
					return err
				}
				req.Transactions = importer.ToFeeds(bts, externalID)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				res, err := linking.NewLinker(a.store, a.categorizer).Link(ctx, req)
				if err != nil {
					return err
				}
				inst, _ := linking.LookupInstitution(req.InstitutionID)
				fmt.Fprintf(cmd.OutOrStdout(), "Linked %s at %s with %s\n",
					plural(len(res.Accounts), "account"), inst.Name, plural(len(res.Transactions), "transaction"))
				for _, acct := range res.Accounts {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s ****%s\n", acct.ID, acct.Name, acct.LastFour)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "checking, savings, credit or investment")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance")
	cmd.Flags().StringVar(&mask, "mask", "", "last four digits")
	cmd.Flags().StringVar(&externalID, "external-id", "", "the bank's id for the account (default: generated)")
	cmd.Flags().StringSliceVar(&csvFiles, "csv", nil, "bank CSV exports to load as the account's history")
	cmd.Flags().StringVar(&format, "format", "chase", "CSV format of --csv files")

	return cmd
}
