package categorize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RecurrenceMode says how a matched rule sets the recurring hint.
type RecurrenceMode string

const (
	RecurNever    RecurrenceMode = "never"
	RecurAlways   RecurrenceMode = "always"
	RecurKeywords RecurrenceMode = "keywords" // recurring when any RecurrenceKeywords hit
)

// Valid reports whether m is a known mode. The zero value means never.
func (m RecurrenceMode) Valid() bool {
	switch m {
	case "", RecurNever, RecurAlways, RecurKeywords:
		return true
	}
	return false
}

// Subcategory is a secondary keyword check inside a matched rule.
type Subcategory struct {
	Name     string
	Keywords []string
}

// Rule maps a keyword set to a category. Rules are evaluated in order and the
// first hit wins.
type Rule struct {
	Category           string
	Keywords           []string
	RequirePositive    bool // only match inflows
	Confidence         decimal.Decimal
	Subcategories      []Subcategory
	DefaultSubcategory string
	Recurrence         RecurrenceMode
	RecurrenceKeywords []string
	MerchantType       string
}

// Fallback is returned when no rule matches.
type Fallback struct {
	Category     string
	Confidence   decimal.Decimal
	MerchantType string
}

// Names of the built-in categories.
const (
	CategoryFoodAndDrink   = "Food & Drink"
	CategoryTransportation = "Transportation"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryBills          = "Bills & Utilities"
	CategoryIncome         = "Income"
	CategoryHealthcare     = "Healthcare"
	CategoryOther          = "Other"
)

// DefaultRules returns the built-in rule table in precedence order.
// "gas" appears in both Transportation and Bills & Utilities; Transportation
// wins because it comes first.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category:           CategoryFoodAndDrink,
			Keywords:           []string{"starbucks", "coffee", "restaurant", "food", "dining", "cafe"},
			Confidence:         decimal.RequireFromString("0.95"),
			Subcategories:      []Subcategory{{Name: "Coffee & Cafes", Keywords: []string{"coffee"}}},
			DefaultSubcategory: "Restaurants",
			Recurrence:         RecurKeywords,
			RecurrenceKeywords: []string{"starbucks", "coffee"},
			MerchantType:       "restaurant",
		},
		{
			Category:           CategoryTransportation,
			Keywords:           []string{"uber", "lyft", "taxi", "gas", "fuel", "parking"},
			Confidence:         decimal.RequireFromString("0.92"),
			Subcategories:      []Subcategory{{Name: "Rideshare", Keywords: []string{"uber", "lyft"}}},
			DefaultSubcategory: "Fuel",
			MerchantType:       "transportation",
		},
		{
			Category:           CategoryShopping,
			Keywords:           []string{"amazon", "target", "walmart", "shopping", "store"},
			Confidence:         decimal.RequireFromString("0.88"),
			Subcategories:      []Subcategory{{Name: "Online Shopping", Keywords: []string{"amazon"}}},
			DefaultSubcategory: "Retail",
			MerchantType:       "retail",
		},
		{
			Category:           CategoryEntertainment,
			Keywords:           []string{"netflix", "spotify", "movie", "entertainment", "subscription"},
			Confidence:         decimal.RequireFromString("0.94"),
			Subcategories:      []Subcategory{{Name: "Streaming Services", Keywords: []string{"netflix", "spotify"}}},
			DefaultSubcategory: "Entertainment",
			Recurrence:         RecurAlways,
			MerchantType:       "subscription",
		},
		{
			Category:           CategoryBills,
			Keywords:           []string{"electric", "gas", "water", "internet", "phone", "utility"},
			Confidence:         decimal.RequireFromString("0.96"),
			DefaultSubcategory: "Utilities",
			Recurrence:         RecurAlways,
			MerchantType:       "utility",
		},
		{
			Category:           CategoryIncome,
			Keywords:           []string{"salary", "payroll", "deposit", "income"},
			RequirePositive:    true,
			Confidence:         decimal.RequireFromString("0.99"),
			DefaultSubcategory: "Salary",
			Recurrence:         RecurAlways,
			MerchantType:       "employer",
		},
		{
			Category:           CategoryHealthcare,
			Keywords:           []string{"pharmacy", "doctor", "medical", "hospital", "health"},
			Confidence:         decimal.RequireFromString("0.91"),
			DefaultSubcategory: "Medical",
			MerchantType:       "healthcare",
		},
	}
}

// DefaultFallback is the "Other" result.
func DefaultFallback() Fallback {
	return Fallback{
		Category:     CategoryOther,
		Confidence:   decimal.RequireFromString("0.5"),
		MerchantType: "unknown",
	}
}

// ValidateRules checks every rule and returns all problems at once.
func ValidateRules(rules []Rule) error {
	var problems []string
	one := decimal.NewFromInt(1)
	for i, r := range rules {
		if strings.TrimSpace(r.Category) == "" {
			problems = append(problems, fmt.Sprintf("rule %d: category is required", i+1))
		}
		if len(r.Keywords) == 0 {
			problems = append(problems, fmt.Sprintf("rule %d (%s): at least one keyword is required", i+1, r.Category))
		}
		if r.Confidence.IsNegative() || r.Confidence.GreaterThan(one) {
			problems = append(problems, fmt.Sprintf("rule %d (%s): confidence %s not in [0,1]", i+1, r.Category, r.Confidence))
		}
		if !r.Recurrence.Valid() {
			problems = append(problems, fmt.Sprintf("rule %d (%s): unknown recurrence %q", i+1, r.Category, r.Recurrence))
		}
		if r.Recurrence == RecurKeywords && len(r.RecurrenceKeywords) == 0 {
			problems = append(problems, fmt.Sprintf("rule %d (%s): recurrence \"keywords\" needs recurrence_keywords", i+1, r.Category))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid rules:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ValidateFallback applies the rule checks for category and confidence to fb.
func ValidateFallback(fb Fallback) error {
	var problems []string
	if strings.TrimSpace(fb.Category) == "" {
		problems = append(problems, "fallback: category is required")
	}
	if fb.Confidence.IsNegative() || fb.Confidence.GreaterThan(decimal.NewFromInt(1)) {
		problems = append(problems, fmt.Sprintf("fallback: confidence %s not in [0,1]", fb.Confidence))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid rules:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
