package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Summary is the inflow/outflow header shown above a transaction list.
type Summary struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"` // absolute
	Net     decimal.Decimal `json:"net"`
	Count   int             `json:"count"`
}

// Summarize totals inflows and outflows.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{Inflow: decimal.Zero, Outflow: decimal.Zero, Count: len(txns)}
	for _, t := range txns {
		switch {
		case t.IsInflow():
			s.Inflow = s.Inflow.Add(t.Amount)
		case t.IsOutflow():
			s.Outflow = s.Outflow.Add(t.AbsAmount())
		}
	}
	s.Net = s.Inflow.Sub(s.Outflow)
	return s
}

// CategoryTotal is outflow for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Share    decimal.Decimal `json:"share"` // percent of all outflow, one decimal place
}

// ByCategory returns outflow per category, largest first. Ties sort by name.
func ByCategory(txns []model.Transaction) []CategoryTotal {
	totals := outflowByCategory(txns)
	grand := decimal.Zero
	for _, v := range totals {
		grand = grand.Add(v)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for cat, amt := range totals {
		share := decimal.Zero
		if !grand.IsZero() {
			share = amt.Div(grand).Mul(decimal.NewFromInt(100)).Round(1)
		}
		out = append(out, CategoryTotal{Category: cat, Amount: amt, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MerchantTotal is outflow for one merchant.
type MerchantTotal struct {
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`
	Transactions int             `json:"transactions"`
}

// TopMerchants returns the n merchants with the most outflow. n <= 0 returns
// all of them.
func TopMerchants(txns []model.Transaction, n int) []MerchantTotal {
	index := make(map[string]int)
	var out []MerchantTotal
	for _, t := range txns {
		if !t.IsOutflow() {
			continue
		}
		i, ok := index[t.Merchant]
		if !ok {
			i = len(out)
			index[t.Merchant] = i
			out = append(out, MerchantTotal{Merchant: t.Merchant, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.AbsAmount())
		out[i].Transactions++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TotalBalance sums account balances. Credit balances are negative, so they
// reduce the total.
func TotalBalance(accounts []model.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
