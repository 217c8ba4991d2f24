package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/model"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Transaction{
		txn("2500.00", monday),
		txn("-45.67", monday),
		txn("-54.33", monday),
		txn("0", monday),
	})
	assert.Equal(t, "2500.00", s.Inflow.StringFixed(2))
	assert.Equal(t, "100.00", s.Outflow.StringFixed(2))
	assert.Equal(t, "2400.00", s.Net.StringFixed(2))
	assert.Equal(t, 4, s.Count)

	empty := Summarize(nil)
	assert.True(t, empty.Net.IsZero())
	assert.Zero(t, empty.Count)
}

func TestByCategory(t *testing.T) {
	got := ByCategory([]model.Transaction{
		categorized("-75", "Shopping"),
		categorized("-25", "Entertainment"),
		categorized("-125", "Food & Drink"),
		categorized("-50", "Shopping"),
		categorized("3000", "Income"),
	})
	require.Len(t, got, 3)

	assert.Equal(t, "Food & Drink", got[0].Category)
	assert.Equal(t, "Shopping", got[1].Category, "ties sort by name")
	assert.Equal(t, "125.00", got[1].Amount.StringFixed(2))
	assert.Equal(t, "Entertainment", got[2].Category)
	assert.Equal(t, "45.5", got[1].Share.StringFixed(1))
	assert.Equal(t, "9.1", got[2].Share.StringFixed(1))

	assert.Empty(t, ByCategory(nil))
}

func TestTopMerchants(t *testing.T) {
	mk := func(amount, merchant string) model.Transaction {
		tx := txn(amount, monday)
		tx.Merchant = merchant
		return tx
	}
	txns := []model.Transaction{
		mk("-5", "Starbucks"),
		mk("-90", "Amazon"),
		mk("-5", "Starbucks"),
		mk("-15.99", "Netflix"),
		mk("2500", "Tech Corp"),
	}

	got := TopMerchants(txns, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Amazon", got[0].Merchant)
	assert.Equal(t, 1, got[0].Transactions)
	assert.Equal(t, "Netflix", got[1].Merchant)

	all := TopMerchants(txns, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "Starbucks", all[2].Merchant)
	assert.Equal(t, 2, all[2].Transactions)
	assert.Equal(t, "10.00", all[2].Amount.StringFixed(2))
}

func TestTotalBalance(t *testing.T) {
	accounts := []model.Account{
		{Balance: dec("4250.75")},
		{Balance: dec("12840.50")},
		{Balance: dec("-1250.30")},
	}
	assert.Equal(t, "15840.95", TotalBalance(accounts).StringFixed(2))
	assert.True(t, TotalBalance(nil).IsZero())
}

func TestReport(t *testing.T) {
	a := NewAnalyzer(DefaultThresholds())
	r := a.Report(
		[]model.Account{{Balance: dec("100")}},
		[]model.Transaction{txn("-1000", monday), categorized("-20", "Food & Drink")},
	)
	assert.Equal(t, "100", r.TotalBalance.String())
	assert.Equal(t, 2, r.Summary.Count)
	assert.Equal(t, []string{"1 large transaction this period"}, r.Insights)
	assert.Equal(t, "1020.00", r.Prediction.StringFixed(2))
	assert.Len(t, r.Categories, 2)
	assert.Len(t, r.TopMerchants, 1)
	assert.Empty(t, r.Opportunities)
	assert.Empty(t, r.Anomalies)
}
