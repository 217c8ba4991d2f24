package insights

import (
	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Report bundles every insight for one snapshot of the store.
type Report struct {
	TotalBalance  decimal.Decimal     `json:"total_balance"`
	Summary       Summary             `json:"summary"`
	Insights      []string            `json:"insights"`
	Anomalies     []model.Transaction `json:"anomalies"`
	Prediction    decimal.Decimal     `json:"predicted_next_month"`
	Opportunities []Opportunity       `json:"opportunities"`
	Categories    []CategoryTotal     `json:"categories"`
	TopMerchants  []MerchantTotal     `json:"top_merchants"`
}

// topMerchantCount matches the dashboard's merchant card.
const topMerchantCount = 5

// Report runs every insight.
func (a *Analyzer) Report(accounts []model.Account, txns []model.Transaction) Report {
	return Report{
		TotalBalance:  TotalBalance(accounts),
		Summary:       Summarize(txns),
		Insights:      a.SpendingInsights(txns),
		Anomalies:     a.DetectAnomalies(txns),
		Prediction:    a.PredictNextMonthSpending(txns),
		Opportunities: a.SavingsOpportunities(txns),
		Categories:    ByCategory(txns),
		TopMerchants:  TopMerchants(txns, topMerchantCount),
	}
}
