package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// SpendingInsights returns the weekend, subscription and large-transaction
// insights that fire, in that order.
func (a *Analyzer) SpendingInsights(txns []model.Transaction) []string {
	var out []string
	if s, ok := a.WeekendSkew(txns); ok {
		out = append(out, s)
	}
	if s, ok := a.Subscriptions(txns); ok {
		out = append(out, s)
	}
	if s, ok := a.LargeTransactions(txns); ok {
		out = append(out, s)
	}
	return out
}

// WeekendSkew compares mean absolute amounts on Saturday/Sunday against
// Monday-Friday. The day is taken in each timestamp's own location.
// A zero weekday mean never fires.
func (a *Analyzer) WeekendSkew(txns []model.Transaction) (string, bool) {
	var weekend, weekday []model.Transaction
	for _, t := range txns {
		switch t.Date.Weekday() {
		case time.Saturday, time.Sunday:
			weekend = append(weekend, t)
		default:
			weekday = append(weekday, t)
		}
	}

	if len(weekend) == 0 || len(weekday) == 0 {
		return "", false
	}
	weekendSum, weekdaySum := sumAbs(weekend), sumAbs(weekday)
	if weekdaySum.IsZero() {
		return "", false
	}

	// weekendSum/nWeekend > ratio * weekdaySum/nWeekday, without dividing.
	lhs := weekendSum.Mul(decimal.NewFromInt(int64(len(weekday))))
	rhs := weekdaySum.Mul(decimal.NewFromInt(int64(len(weekend)))).Mul(a.th.WeekendRatio)
	if !lhs.GreaterThan(rhs) {
		return "", false
	}

	base := weekdaySum.Mul(decimal.NewFromInt(int64(len(weekend))))
	pct := lhs.Sub(base).Mul(decimal.NewFromInt(100)).Div(base)
	return fmt.Sprintf("You spend %s%% more on weekends", pct.StringFixed(0)), true
}

// Subscriptions reports recurring outflows once there are more than
// SubscriptionMinCount of them.
func (a *Analyzer) Subscriptions(txns []model.Transaction) (string, bool) {
	subs := recurringOutflows(txns)
	if len(subs) <= a.th.SubscriptionMinCount {
		return "", false
	}
	return fmt.Sprintf("%d subscriptions costing $%s/month", len(subs), sumAbs(subs).StringFixed(0)), true
}

// LargeTransactions counts transactions whose absolute amount exceeds
// LargeAmount.
func (a *Analyzer) LargeTransactions(txns []model.Transaction) (string, bool) {
	n := len(a.Large(txns))
	if n == 0 {
		return "", false
	}
	suffix := ""
	if n > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("%d large transaction%s this period", n, suffix), true
}

// Large returns the transactions whose absolute amount exceeds LargeAmount.
func (a *Analyzer) Large(txns []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.AbsAmount().GreaterThan(a.th.LargeAmount) {
			out = append(out, t)
		}
	}
	return out
}

func recurringOutflows(txns []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, t := range txns {
		if t.Recurring && t.IsOutflow() {
			out = append(out, t)
		}
	}
	return out
}
