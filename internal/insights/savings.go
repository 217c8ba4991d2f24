package insights

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Opportunity is a suggested way to cut spending.
type Opportunity struct {
	Category         string          `json:"category"`
	CurrentSpending  decimal.Decimal `json:"current_spending"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
	Suggestion       string          `json:"suggestion"`
}

// Category label and suggestions used by SavingsOpportunities.
const (
	FoodCategory           = "Food & Drink"
	SubscriptionsCategory  = "Subscriptions"
	FoodSuggestion         = "Cook at home 2-3 more days per week"
	SubscriptionSuggestion = "Review and cancel unused subscriptions"
)

// SavingsOpportunities suggests cutting food spend and recurring charges when
// they pass their limits.
func (a *Analyzer) SavingsOpportunities(txns []model.Transaction) []Opportunity {
	var out []Opportunity

	food := outflowByCategory(txns)[FoodCategory]
	if food.GreaterThan(a.th.FoodSpendLimit) {
		out = append(out, Opportunity{
			Category:         FoodCategory,
			CurrentSpending:  food,
			PotentialSavings: food.Mul(a.th.FoodSavingsRate),
			Suggestion:       FoodSuggestion,
		})
	}

	recurring := sumAbs(recurringOutflows(txns))
	if recurring.GreaterThan(a.th.SubscriptionSpendLimit) {
		out = append(out, Opportunity{
			Category:         SubscriptionsCategory,
			CurrentSpending:  recurring,
			PotentialSavings: recurring.Mul(a.th.SubscriptionSavingsRate),
			Suggestion:       SubscriptionSuggestion,
		})
	}
	return out
}

func outflowByCategory(txns []model.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsOutflow() {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.AbsAmount())
	}
	return totals
}
