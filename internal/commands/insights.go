package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/filter"
	"github.com/pocketledger/pocketledger/internal/insights"
)

func newInsightsCommand() *cobra.Command {
	var ff filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Spending insights, anomalies, a next-month forecast and savings ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := ff.criteria(time.Now())
			if err != nil {
				return err
			}
			return withApp(cmd, func(_ context.Context, a *app) error {
				txns := filter.Apply(filter.SortByDateDesc(a.store.Transactions()), criteria)
				report := insights.NewAnalyzer(a.cfg.Insights.Thresholds()).Report(a.store.Accounts(), txns)

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}
				return writeReport(cmd, report)
			})
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func writeReport(cmd *cobra.Command, r insights.Report) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Total balance: %s\n", formatMoney(r.TotalBalance))
	fmt.Fprintf(out, "%s  in %s  out %s  net %s\n",
		plural(r.Summary.Count, "transaction"),
		formatMoney(r.Summary.Inflow), formatMoney(r.Summary.Outflow), formatMoney(r.Summary.Net))
	fmt.Fprintf(out, "Predicted spending next month: %s\n", formatMoney(r.Prediction))

	if len(r.Insights) > 0 {
		fmt.Fprintln(out, "\nInsights")
		for _, s := range r.Insights {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}

	if len(r.Anomalies) > 0 {
		fmt.Fprintln(out, "\nUnusual transactions")
		if err := writeTransactions(out, r.Anomalies); err != nil {
			return err
		}
	}

	if len(r.Opportunities) > 0 {
		fmt.Fprintln(out, "\nSavings opportunities")
		for _, o := range r.Opportunities {
			fmt.Fprintf(out, "  - %s: save %s of %s. %s\n",
				o.Category, formatMoney(o.PotentialSavings), formatMoney(o.CurrentSpending), o.Suggestion)
		}
	}

	if len(r.Categories) > 0 {
		fmt.Fprintln(out, "\nSpending by category")
		tw := newTable(out)
		for _, c := range r.Categories {
			fmt.Fprintf(tw, "  %s\t%s\t%s%%\n", c.Category, formatMoney(c.Amount), c.Share.StringFixed(1))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.TopMerchants) > 0 {
		fmt.Fprintln(out, "\nTop merchants")
		tw := newTable(out)
		for _, m := range r.TopMerchants {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.Merchant, formatMoney(m.Amount), plural(m.Transactions, "transaction"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
