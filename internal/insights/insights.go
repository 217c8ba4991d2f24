// Package insights computes derived statistics over a transaction collection.
// Every function is read-only and accepts an empty collection.
package insights

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Thresholds tunes when an insight fires.
type Thresholds struct {
	WeekendRatio            decimal.Decimal // weekend mean must exceed weekday mean by this factor
	SubscriptionMinCount    int             // subscription count must exceed this
	LargeAmount             decimal.Decimal // |amount| strictly above this is "large"
	AnomalyMultiplier       decimal.Decimal // |amount| above multiplier x mean is an anomaly
	PredictionWindow        int             // most recent outflows considered
	PredictionDays          int             // days the window is assumed to span, and the projection horizon
	FoodSpendLimit          decimal.Decimal
	FoodSavingsRate         decimal.Decimal
	SubscriptionSpendLimit  decimal.Decimal
	SubscriptionSavingsRate decimal.Decimal
}

// DefaultThresholds returns the stock tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WeekendRatio:            decimal.RequireFromString("1.4"),
		SubscriptionMinCount:    3,
		LargeAmount:             decimal.NewFromInt(500),
		AnomalyMultiplier:       decimal.NewFromInt(3),
		PredictionWindow:        30,
		PredictionDays:          30,
		FoodSpendLimit:          decimal.NewFromInt(300),
		FoodSavingsRate:         decimal.RequireFromString("0.3"),
		SubscriptionSpendLimit:  decimal.NewFromInt(50),
		SubscriptionSavingsRate: decimal.RequireFromString("0.25"),
	}
}

// Analyzer runs the insight functions with a fixed set of thresholds.
type Analyzer struct {
	th Thresholds
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(th Thresholds) *Analyzer {
	return &Analyzer{th: th}
}

// Thresholds returns the analyzer's tuning.
func (a *Analyzer) Thresholds() Thresholds { return a.th }

var defaultAnalyzer = NewAnalyzer(DefaultThresholds())

// SpendingInsights runs WeekendSkew, Subscriptions and LargeTransactions with
// the default thresholds.
func SpendingInsights(txns []model.Transaction) []string {
	return defaultAnalyzer.SpendingInsights(txns)
}

// DetectAnomalies runs Analyzer.DetectAnomalies with the default thresholds.
func DetectAnomalies(txns []model.Transaction) []model.Transaction {
	return defaultAnalyzer.DetectAnomalies(txns)
}

// PredictNextMonthSpending runs Analyzer.PredictNextMonthSpending with the
// default thresholds.
func PredictNextMonthSpending(txns []model.Transaction) decimal.Decimal {
	return defaultAnalyzer.PredictNextMonthSpending(txns)
}

// SavingsOpportunities runs Analyzer.SavingsOpportunities with the default
// thresholds.
func SavingsOpportunities(txns []model.Transaction) []Opportunity {
	return defaultAnalyzer.SavingsOpportunities(txns)
}

func sumAbs(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.AbsAmount())
	}
	return total
}
