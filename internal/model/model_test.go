package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountTypeValid(t *testing.T) {
	tests := []struct {
		in   AccountType
		want bool
	}{
		{AccountTypeChecking, true},
		{AccountTypeSavings, true},
		{AccountTypeCredit, true},
		{AccountTypeInvestment, true},
		{"brokerage", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Valid(), "Valid(%q)", tt.in)
	}
}

func TestAccountUpdateApply(t *testing.T) {
	acct := Account{
		ID:       "acct_1",
		Name:     "Primary Checking",
		Type:     AccountTypeChecking,
		Balance:  decimal.RequireFromString("4250.75"),
		LastFour: "4532",
	}

	name := "Everyday Checking"
	balance := decimal.RequireFromString("100.00")
	AccountUpdate{Name: &name, Balance: &balance}.Apply(&acct)

	assert.Equal(t, "acct_1", acct.ID)
	assert.Equal(t, "Everyday Checking", acct.Name)
	assert.Equal(t, "100.00", acct.Balance.StringFixed(2))
	assert.Equal(t, "4532", acct.LastFour, "untouched field must survive")
	assert.Equal(t, AccountTypeChecking, acct.Type)
}

func TestAccountUpdateIsEmpty(t *testing.T) {
	assert.True(t, AccountUpdate{}.IsEmpty())
	connected := false
	assert.False(t, AccountUpdate{Connected: &connected}.IsEmpty())
}

func TestTransactionUpdateApply(t *testing.T) {
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	txn := Transaction{
		ID:          "txn_1",
		AccountID:   "acct_1",
		Amount:      decimal.RequireFromString("-45.67"),
		Description: "Starbucks Coffee",
		Category:    "Food & Drink",
		Date:        when,
	}

	notes := "team coffee"
	recurring := true
	TransactionUpdate{Notes: &notes, Recurring: &recurring}.Apply(&txn)

	assert.Equal(t, "team coffee", txn.Notes)
	assert.True(t, txn.Recurring)
	assert.Equal(t, "Starbucks Coffee", txn.Description)
	assert.Equal(t, when, txn.Date)
	assert.True(t, TransactionUpdate{}.IsEmpty())
}

func TestTransactionDirection(t *testing.T) {
	out := Transaction{Amount: decimal.RequireFromString("-10.00")}
	in := Transaction{Amount: decimal.RequireFromString("2500.00")}
	zero := Transaction{}

	assert.True(t, out.IsOutflow())
	assert.False(t, out.IsInflow())
	assert.Equal(t, "10.00", out.AbsAmount().StringFixed(2))
	assert.True(t, in.IsInflow())
	assert.False(t, zero.IsInflow())
	assert.False(t, zero.IsOutflow())
}

func TestCategorizationApply(t *testing.T) {
	var txn Transaction
	Categorization{
		Category:     "Food & Drink",
		Confidence:   decimal.RequireFromString("0.95"),
		Subcategory:  "Coffee & Cafes",
		Recurring:    true,
		MerchantType: "restaurant",
	}.Apply(&txn)

	assert.Equal(t, "Food & Drink", txn.Category)
	assert.Equal(t, "Coffee & Cafes", txn.AISubcategory)
	assert.True(t, txn.AIConfidence.Valid)
	assert.Equal(t, "0.95", txn.AIConfidence.Decimal.String())
	assert.True(t, txn.Recurring)
}

func TestStateClone(t *testing.T) {
	s := State{Accounts: []Account{{ID: "acct_1"}}}
	c := s.Clone()
	c.Accounts[0].Name = "changed"
	assert.Empty(t, s.Accounts[0].Name)
}
