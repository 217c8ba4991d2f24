package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/filter"
	"github.com/pocketledger/pocketledger/internal/insights"
	"github.com/pocketledger/pocketledger/internal/model"
)

func newTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "List, add and annotate transactions",
	}
	cmd.AddCommand(
		newTransactionsListCommand(),
		newTransactionsAddCommand(),
		newTransactionsCategorizeCommand(),
		newTransactionsNoteCommand(),
	)
	return cmd
}

func newTransactionsListCommand() *cobra.Command {
	var ff filterFlags
	var group bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := ff.criteria(time.Now())
			if err != nil {
				return err
			}
			return withApp(cmd, func(_ context.Context, a *app) error {
				txns := filter.Apply(filter.SortByDateDesc(a.store.Transactions()), criteria)
				summary := insights.Summarize(txns)
				if limit > 0 && len(txns) > limit {
					txns = txns[:limit]
				}

				out := cmd.OutOrStdout()
				if len(txns) == 0 {
					fmt.Fprintln(out, "No transactions.")
					return nil
				}

				if group {
					for _, g := range filter.GroupByDay(txns) {
						fmt.Fprintf(out, "%s\n", g.Day)
						if err := writeTransactions(out, g.Transactions); err != nil {
							return err
						}
						fmt.Fprintln(out)
					}
				} else if err := writeTransactions(out, txns); err != nil {
					return err
				}

				fmt.Fprintf(out, "\n%s  in %s  out %s  net %s\n",
					plural(summary.Count, "transaction"),
					formatMoney(summary.Inflow), formatMoney(summary.Outflow), formatMoney(summary.Net))
				return nil
			})
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&group, "group", false, "group by day")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many transactions")

	return cmd
}

func writeTransactions(w io.Writer, txns []model.Transaction) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tID\tACCOUNT\tAMOUNT\tDESCRIPTION\tCATEGORY\tFLAGS")
	for _, t := range txns {
		var flags []string
		if t.Pending {
			flags = append(flags, "pending")
		}
		if t.Recurring {
			flags = append(flags, "recurring")
		}
		if t.Notes != "" {
			flags = append(flags, "note")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format(time.DateOnly), t.ID, t.AccountID, formatMoney(t.Amount), t.Description, t.Category, strings.Join(flags, ","))
	}
	return tw.Flush()
}

func newTransactionsAddCommand() *cobra.Command {
	var (
		accountID   string
		amount      string
		description string
		merchant    string
		category    string
		date        string
		pending     bool
		location    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual transaction, categorized automatically unless --category is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := parseMoney("amount", amount)
			if err != nil {
				return err
			}
			when := time.Now().UTC()
			if date != "" {
				if when, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
			}
			if merchant == "" {
				merchant = description
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				if _, ok := a.store.Account(accountID); !ok {
					return fmt.Errorf("account %s not found", accountID)
				}

				t := model.Transaction{
					AccountID:   accountID,
					Amount:      amt,
					Description: description,
					Merchant:    merchant,
					Date:        when,
					Pending:     pending,
					Location:    location,
				}
				if category != "" {
					t.Category = category
				} else {
					t = a.categorizer.Enrich(t)
				}

				added, err := a.store.AddTransactions(ctx, []model.Transaction{t})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %s (%s)\n", added[0].ID, added[0].Category)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, negative for spending (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&description, "description", "", "description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&merchant, "merchant", "", "merchant name (default: the description)")
	cmd.Flags().StringVar(&category, "category", "", "category, skips automatic categorization")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&pending, "pending", false, "mark as pending")
	cmd.Flags().StringVar(&location, "location", "", "where it happened")

	return cmd
}

func newTransactionsCategorizeCommand() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "categorize <transaction-id>",
		Short: "Show the suggested category for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				t, ok := a.store.Transaction(args[0])
				if !ok {
					return fmt.Errorf("transaction %s not found", args[0])
				}

				result := a.categorizer.Enrich(t)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Category:    %s\n", result.Category)
				if result.AISubcategory != "" {
					fmt.Fprintf(out, "Subcategory: %s\n", result.AISubcategory)
				}
				fmt.Fprintf(out, "Confidence:  %s%%\n", result.AIConfidence.Decimal.Mul(decimal.NewFromInt(100)).StringFixed(0))
				if result.Recurring {
					fmt.Fprintln(out, "Recurring:   likely")
				}

				if !apply {
					return nil
				}
				_, err := a.store.UpdateTransaction(ctx, t.ID, model.TransactionUpdate{
					Category:      &result.Category,
					AISubcategory: &result.AISubcategory,
					AIConfidence:  &result.AIConfidence,
					Recurring:     &result.Recurring,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Updated transaction %s\n", t.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "store the suggestion on the transaction")

	return cmd
}

func newTransactionsNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "note <transaction-id> <text>...",
		Short: "Set the notes on a transaction (empty text clears them)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := strings.Join(args[1:], " ")
			return withApp(cmd, func(ctx context.Context, a *app) error {
				ok, err := a.store.UpdateTransaction(ctx, args[0], model.TransactionUpdate{Notes: &notes})
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("transaction %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated notes on %s\n", args[0])
				return nil
			})
		},
	}
}
