package categorize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/model"
)

type categorizeCase struct {
	name         string
	description  string
	merchant     string
	amount       string
	category     string
	confidence   string
	subcategory  string
	recurring    bool
	merchantType string
}

var categorizeCases = []categorizeCase{
	{"coffee", "Starbucks Coffee", "Starbucks", "-45.67", CategoryFoodAndDrink, "0.95", "Coffee & Cafes", true, "restaurant"},
	{"starbucks without coffee", "Morning order", "Starbucks", "-6.10", CategoryFoodAndDrink, "0.95", "Restaurants", true, "restaurant"},
	{"restaurant", "Olive Garden Restaurant", "Olive Garden", "-62.00", CategoryFoodAndDrink, "0.95", "Restaurants", false, "restaurant"},
	{"uppercase", "STARBUCKS STORE 1234", "", "-5.00", CategoryFoodAndDrink, "0.95", "Restaurants", true, "restaurant"},
	{"rideshare", "Uber Trip", "Uber", "-18.40", CategoryTransportation, "0.92", "Rideshare", false, "transportation"},
	{"lyft", "Ride home", "Lyft", "-22.10", CategoryTransportation, "0.92", "Rideshare", false, "transportation"},
	{"fuel", "Shell Gas Station", "Shell", "-40.00", CategoryTransportation, "0.92", "Fuel", false, "transportation"},
	{"gas bill resolves to transportation", "Gas Bill", "City Utilities", "-80.00", CategoryTransportation, "0.92", "Fuel", false, "transportation"},
	{"online shopping", "Amazon Purchase", "Amazon", "-89.99", CategoryShopping, "0.88", "Online Shopping", false, "retail"},
	{"retail", "Weekly run", "Target", "-54.20", CategoryShopping, "0.88", "Retail", false, "retail"},
	{"streaming", "Netflix Subscription", "Netflix", "-15.99", CategoryEntertainment, "0.94", "Streaming Services", true, "subscription"},
	{"movie", "AMC Movie Tickets", "AMC", "-31.00", CategoryEntertainment, "0.94", "Entertainment", true, "subscription"},
	{"electric", "Electric Bill", "PG&E", "-120.00", CategoryBills, "0.96", "Utilities", true, "utility"},
	{"internet", "Comcast Internet", "Comcast", "-79.99", CategoryBills, "0.96", "Utilities", true, "utility"},
	{"salary", "Salary Deposit", "Tech Corp Inc", "2500.00", CategoryIncome, "0.99", "Salary", true, "employer"},
	{"payroll", "ACME PAYROLL", "ACME", "1800.00", CategoryIncome, "0.99", "Salary", true, "employer"},
	{"pharmacy", "CVS Pharmacy", "CVS", "-12.49", CategoryHealthcare, "0.91", "Medical", false, "healthcare"},
	{"doctor", "Dr visit copay", "Doctor Smith", "-30.00", CategoryHealthcare, "0.91", "Medical", false, "healthcare"},
	{"other", "Random Thing", "Acme", "-10.00", CategoryOther, "0.5", "", false, "unknown"},
	{"empty", "", "", "0", CategoryOther, "0.5", "", false, "unknown"},
}

func TestCategorize(t *testing.T) {
	for _, tt := range categorizeCases {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(Input{
				Description: tt.description,
				Merchant:    tt.merchant,
				Amount:      decimal.RequireFromString(tt.amount),
			})
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.confidence, got.Confidence.String())
			assert.Equal(t, tt.subcategory, got.Subcategory)
			assert.Equal(t, tt.recurring, got.Recurring)
			assert.Equal(t, tt.merchantType, got.MerchantType)
		})
	}
}

func TestCategorize_Idempotent(t *testing.T) {
	c := Default()
	for _, tt := range categorizeCases {
		in := Input{Description: tt.description, Merchant: tt.merchant, Amount: decimal.RequireFromString(tt.amount)}
		first := c.Categorize(in)
		second := c.Categorize(in)
		assert.Equal(t, first, second, "case %s", tt.name)
	}
}

func TestCategorize_Precedence(t *testing.T) {
	got := Categorize(Input{Description: "Starbucks then Uber", Merchant: "", Amount: decimal.RequireFromString("-20")})
	assert.Equal(t, CategoryFoodAndDrink, got.Category)

	got = Categorize(Input{Description: "Uber Eats order", Merchant: "Amazon", Amount: decimal.RequireFromString("-20")})
	assert.Equal(t, CategoryTransportation, got.Category)
}

func TestCategorize_IncomeRequiresPositiveAmount(t *testing.T) {
	for _, amount := range []string{"-2500.00", "0"} {
		got := Categorize(Input{Description: "Salary Deposit", Merchant: "Tech Corp Inc", Amount: decimal.RequireFromString(amount)})
		assert.NotEqual(t, CategoryIncome, got.Category, "amount %s", amount)
		assert.Equal(t, CategoryOther, got.Category)
	}
}

func TestCategorize_EveryKeywordHitsItsRule(t *testing.T) {
	// Each keyword must resolve to its own rule or to an earlier one, never a later one.
	rules := DefaultRules()
	index := make(map[string]int, len(rules))
	for i, r := range rules {
		index[r.Category] = i
	}
	for i, r := range rules {
		for _, kw := range r.Keywords {
			got := Categorize(Input{Description: kw, Amount: decimal.NewFromInt(100)})
			pos, ok := index[got.Category]
			require.True(t, ok, "keyword %q fell through to %s", kw, got.Category)
			assert.LessOrEqual(t, pos, i, "keyword %q of %s resolved to later rule %s", kw, r.Category, got.Category)
		}
	}
}

func TestEnrich(t *testing.T) {
	txn := model.Transaction{
		Description: "Amazon Purchase",
		Merchant:    "Amazon",
		Amount:      decimal.RequireFromString("-89.99"),
		Category:    "Uncategorized",
	}
	got := Default().Enrich(txn)

	assert.Equal(t, CategoryShopping, got.Category)
	assert.Equal(t, "Online Shopping", got.AISubcategory)
	assert.Equal(t, "0.88", got.AIConfidence.Decimal.String())
	assert.Equal(t, "Uncategorized", txn.Category, "input must not be modified")
}

func TestNew_CustomRules(t *testing.T) {
	c := New([]Rule{{
		Category:   "Pets",
		Keywords:   []string{"chewy"},
		Confidence: decimal.RequireFromString("0.8"),
	}}, DefaultFallback())

	assert.Equal(t, "Pets", c.Categorize(Input{Description: "Chewy order"}).Category)
	assert.Equal(t, CategoryOther, c.Categorize(Input{Description: "Starbucks"}).Category)
	assert.Len(t, c.Rules(), 1)
}

func TestValidateRules(t *testing.T) {
	require.NoError(t, ValidateRules(DefaultRules()))

	err := ValidateRules([]Rule{
		{Category: "", Keywords: []string{"x"}, Confidence: decimal.RequireFromString("0.5")},
		{Category: "Empty", Confidence: decimal.RequireFromString("0.5")},
		{Category: "Too sure", Keywords: []string{"x"}, Confidence: decimal.RequireFromString("1.5")},
		{Category: "Bad mode", Keywords: []string{"x"}, Recurrence: "sometimes"},
		{Category: "No recur keywords", Keywords: []string{"x"}, Recurrence: RecurKeywords},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 1: category is required")
	assert.Contains(t, err.Error(), "rule 2 (Empty): at least one keyword")
	assert.Contains(t, err.Error(), "not in [0,1]")
	assert.Contains(t, err.Error(), `unknown recurrence "sometimes"`)
	assert.Contains(t, err.Error(), "needs recurrence_keywords")
}
