package insights

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// DetectAnomalies returns every transaction whose absolute amount exceeds
// AnomalyMultiplier times the mean absolute amount. Empty input yields nil.
// The comparison is |amount|*n > multiplier*sum, so a non-terminating mean
// never shifts the boundary.
func (a *Analyzer) DetectAnomalies(txns []model.Transaction) []model.Transaction {
	if len(txns) == 0 {
		return nil
	}
	n := decimal.NewFromInt(int64(len(txns)))
	threshold := sumAbs(txns).Mul(a.th.AnomalyMultiplier)

	var out []model.Transaction
	for _, t := range txns {
		if t.AbsAmount().Mul(n).GreaterThan(threshold) {
			out = append(out, t)
		}
	}
	return out
}

// PredictNextMonthSpending projects outflow over the next PredictionDays from
// the first PredictionWindow outflows in collection order. The caller is
// responsible for passing the collection newest first.
func (a *Analyzer) PredictNextMonthSpending(txns []model.Transaction) decimal.Decimal {
	var recent []model.Transaction
	for _, t := range txns {
		if len(recent) == a.th.PredictionWindow {
			break
		}
		if t.IsOutflow() {
			recent = append(recent, t)
		}
	}
	if len(recent) == 0 || a.th.PredictionDays <= 0 {
		return decimal.Zero
	}

	days := decimal.NewFromInt(int64(a.th.PredictionDays))
	daily := sumAbs(recent).Div(days)
	return daily.Mul(days).Round(2)
}
