package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single posted or pending movement on an account.
type Transaction struct {
	ID            string              `json:"id"`
	AccountID     string              `json:"account_id"`
	Amount        decimal.Decimal     `json:"amount"` // negative = outflow, positive = inflow
	Description   string              `json:"description"`
	Merchant      string              `json:"merchant"`
	Category      string              `json:"category"`
	AISubcategory string              `json:"ai_subcategory,omitempty"`
	AIConfidence  decimal.NullDecimal `json:"ai_confidence"`
	Date          time.Time           `json:"date"`
	Pending       bool                `json:"pending"`
	MerchantIcon  string              `json:"merchant_icon,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Recurring     bool                `json:"recurring,omitempty"`
	Location      string              `json:"location,omitempty"`
}

// IsInflow reports whether money came into the account.
func (t Transaction) IsInflow() bool { return t.Amount.IsPositive() }

// IsOutflow reports whether money left the account.
func (t Transaction) IsOutflow() bool { return t.Amount.IsNegative() }

// AbsAmount returns |Amount|.
func (t Transaction) AbsAmount() decimal.Decimal { return t.Amount.Abs() }

// TransactionUpdate is a partial update. Nil fields are left untouched.
type TransactionUpdate struct {
	AccountID     *string
	Amount        *decimal.Decimal
	Description   *string
	Merchant      *string
	Category      *string
	AISubcategory *string
	AIConfidence  *decimal.NullDecimal
	Date          *time.Time
	Pending       *bool
	MerchantIcon  *string
	Notes         *string
	Recurring     *bool
	Location      *string
}

// Apply merges the non-nil fields of u into t.
func (u TransactionUpdate) Apply(t *Transaction) {
	if u.AccountID != nil {
		t.AccountID = *u.AccountID
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Merchant != nil {
		t.Merchant = *u.Merchant
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.AISubcategory != nil {
		t.AISubcategory = *u.AISubcategory
	}
	if u.AIConfidence != nil {
		t.AIConfidence = *u.AIConfidence
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.Pending != nil {
		t.Pending = *u.Pending
	}
	if u.MerchantIcon != nil {
		t.MerchantIcon = *u.MerchantIcon
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
	if u.Recurring != nil {
		t.Recurring = *u.Recurring
	}
	if u.Location != nil {
		t.Location = *u.Location
	}
}

// IsEmpty reports whether the update changes nothing.
func (u TransactionUpdate) IsEmpty() bool {
	return u == TransactionUpdate{}
}
