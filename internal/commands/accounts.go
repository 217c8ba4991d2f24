package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/insights"
	"github.com/pocketledger/pocketledger/internal/model"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(
		newAccountsListCommand(),
		newAccountsAddCommand(),
		newAccountsUpdateCommand(),
		newAccountsRemoveCommand(),
	)
	return cmd
}

func newAccountsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(_ context.Context, a *app) error {
				accounts := a.store.Accounts()
				out := cmd.OutOrStdout()
				if len(accounts) == 0 {
					fmt.Fprintln(out, "No accounts.")
					return nil
				}

				tw := newTable(out)
				fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBALANCE\tINSTITUTION\tLAST FOUR\tSTATUS")
				for _, acct := range accounts {
					status := "manual"
					if acct.Connected {
						status = "connected"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						acct.ID, acct.Name, acct.Type, formatMoney(acct.Balance), acct.Institution, acct.LastFour, status)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nTotal balance: %s\n", formatMoney(insights.TotalBalance(accounts)))
				return nil
			})
		},
	}
}

func newAccountsAddCommand() *cobra.Command {
	var (
		name        string
		accountType string
		balance     string
		lastFour    string
		institution string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := model.AccountType(accountType)
			if !t.Valid() {
				return fmt.Errorf("invalid --type %q: must be one of %v", accountType, model.AccountTypes)
			}
			bal, err := parseMoney("balance", balance)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				acct, err := a.store.AddAccount(ctx, model.Account{
					Name:        name,
					Type:        t,
					Balance:     bal,
					LastFour:    lastFour,
					Institution: institution,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s)\n", acct.ID, acct.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "checking, savings, credit or investment")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance, negative when owed")
	cmd.Flags().StringVar(&lastFour, "last-four", "", "last four digits of the account number")
	cmd.Flags().StringVar(&institution, "institution", "", "bank name")

	return cmd
}

func newAccountsUpdateCommand() *cobra.Command {
	var (
		name        string
		accountType string
		balance     string
		lastFour    string
		institution string
		connected   bool
	)

	cmd := &cobra.Command{
		Use:   "update <account-id>",
		Short: "Change fields of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u model.AccountUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				u.Name = &name
			}
			if flags.Changed("type") {
				t := model.AccountType(accountType)
				if !t.Valid() {
					return fmt.Errorf("invalid --type %q: must be one of %v", accountType, model.AccountTypes)
				}
				u.Type = &t
			}
			if flags.Changed("balance") {
				bal, err := parseMoney("balance", balance)
				if err != nil {
					return err
				}
				u.Balance = &bal
			}
			if flags.Changed("last-four") {
				u.LastFour = &lastFour
			}
			if flags.Changed("institution") {
				u.Institution = &institution
			}
			if flags.Changed("connected") {
				u.Connected = &connected
			}
			if u.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				ok, err := a.store.UpdateAccount(ctx, args[0], u)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("account %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&accountType, "type", "", "checking, savings, credit or investment")
	cmd.Flags().StringVar(&balance, "balance", "", "current balance")
	cmd.Flags().StringVar(&lastFour, "last-four", "", "last four digits")
	cmd.Flags().StringVar(&institution, "institution", "", "bank name")
	cmd.Flags().BoolVar(&connected, "connected", false, "mark as connected to its bank")

	return cmd
}

func newAccountsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <account-id>",
		Short: "Remove an account and all of its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				count := 0
				for _, t := range a.store.Transactions() {
					if t.AccountID == args[0] {
						count++
					}
				}

				ok, err := a.store.RemoveAccount(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("account %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s and %s\n", args[0], plural(count, "transaction"))
				return nil
			})
		},
	}
}
