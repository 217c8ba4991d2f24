package model

import "github.com/shopspring/decimal"

// Categorization is the engine's guess for one transaction. It is never
// stored on its own; callers copy it onto a Transaction with Apply.
type Categorization struct {
	Category     string
	Confidence   decimal.Decimal
	Subcategory  string // empty = none
	Recurring    bool
	MerchantType string
}

// Apply copies the guess onto t the way the account-linking flow does.
func (c Categorization) Apply(t *Transaction) {
	t.Category = c.Category
	t.AISubcategory = c.Subcategory
	t.AIConfidence = decimal.NewNullDecimal(c.Confidence)
	t.Recurring = c.Recurring
}
