package commands

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pocketledger/pocketledger/internal/filter"
)

// filterFlags are the transaction query flags shared by list, export and insights.
type filterFlags struct {
	rangeName  string
	search     string
	accounts   []string
	categories []string
	min        string
	max        string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rangeName, "range", "", "date range: this-month, last-month, last-30-days or last-90-days")
	cmd.Flags().StringVar(&f.search, "search", "", "match description, merchant or category")
	cmd.Flags().StringSliceVar(&f.accounts, "account", nil, "only these account ids")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "only these categories")
	cmd.Flags().StringVar(&f.min, "min", "", "minimum absolute amount")
	cmd.Flags().StringVar(&f.max, "max", "", "maximum absolute amount")
}

func (f *filterFlags) criteria(now time.Time) (filter.Criteria, error) {
	c := filter.Criteria{
		Search:     f.search,
		AccountIDs: f.accounts,
		Categories: f.categories,
	}
	if f.rangeName != "" {
		r, err := filter.PresetRange(f.rangeName, now)
		if err != nil {
			return filter.Criteria{}, err
		}
		c.Range = r
	}
	if f.min != "" {
		d, err := parseMoney("min", f.min)
		if err != nil {
			return filter.Criteria{}, err
		}
		c.MinAmount = decimal.NewNullDecimal(d)
	}
	if f.max != "" {
		d, err := parseMoney("max", f.max)
		if err != nil {
			return filter.Criteria{}, err
		}
		c.MaxAmount = decimal.NewNullDecimal(d)
	}
	return c, nil
}
