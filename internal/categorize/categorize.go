// Package categorize guesses a category for a transaction from its free text
// using an ordered keyword rule table. Matching is deterministic: the same
// input always yields the same result.
package categorize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Input is the part of a transaction the engine looks at.
type Input struct {
	Description string
	Merchant    string
	Amount      decimal.Decimal
}

// FromTransaction builds an Input from a transaction.
func FromTransaction(t model.Transaction) Input {
	return Input{Description: t.Description, Merchant: t.Merchant, Amount: t.Amount}
}

// Categorizer evaluates a rule table.
type Categorizer struct {
	rules    []Rule
	fallback Fallback
}

// New creates a Categorizer over rules. Rule order is precedence order.
func New(rules []Rule, fallback Fallback) *Categorizer {
	return &Categorizer{rules: append([]Rule(nil), rules...), fallback: fallback}
}

// Default returns a Categorizer with the built-in rules.
func Default() *Categorizer {
	return New(DefaultRules(), DefaultFallback())
}

// Rules returns a copy of the rule table.
func (c *Categorizer) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Categorize returns the result of the first matching rule, or the fallback.
func (c *Categorizer) Categorize(in Input) model.Categorization {
	text := strings.ToLower(in.Description + " " + in.Merchant)

	for _, r := range c.rules {
		if r.RequirePositive && !in.Amount.IsPositive() {
			continue
		}
		if !containsAny(text, r.Keywords) {
			continue
		}
		return model.Categorization{
			Category:     r.Category,
			Confidence:   r.Confidence,
			Subcategory:  r.subcategory(text),
			Recurring:    r.recurring(text),
			MerchantType: r.MerchantType,
		}
	}

	return model.Categorization{
		Category:     c.fallback.Category,
		Confidence:   c.fallback.Confidence,
		MerchantType: c.fallback.MerchantType,
	}
}

// Enrich categorizes t and copies the result onto a copy of it.
func (c *Categorizer) Enrich(t model.Transaction) model.Transaction {
	c.Categorize(FromTransaction(t)).Apply(&t)
	return t
}

// Categorize runs the built-in rules.
func Categorize(in Input) model.Categorization {
	return defaultCategorizer.Categorize(in)
}

var defaultCategorizer = Default()

func (r Rule) subcategory(text string) string {
	for _, s := range r.Subcategories {
		if containsAny(text, s.Keywords) {
			return s.Name
		}
	}
	return r.DefaultSubcategory
}

func (r Rule) recurring(text string) bool {
	switch r.Recurrence {
	case RecurAlways:
		return true
	case RecurKeywords:
		return containsAny(text, r.RecurrenceKeywords)
	default:
		return false
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
