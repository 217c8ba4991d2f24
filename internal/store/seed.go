package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/id"
	"github.com/pocketledger/pocketledger/internal/model"
)

// DemoState builds the demo accounts and transactions used by `init --demo`.
// Transactions are most-recent first, relative to now.
func DemoState(now time.Time, ids id.Generator) model.State {
	checking := ids.Next(id.KindAccount)
	savings := ids.Next(id.KindAccount)
	credit := ids.Next(id.KindAccount)

	day := 24 * time.Hour
	confidence := func(s string) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.RequireFromString(s))
	}

	accounts := []model.Account{
		{
			ID:              checking,
			Name:            "Primary Checking",
			Type:            model.AccountTypeChecking,
			Balance:         decimal.RequireFromString("4250.75"),
			LastFour:        "4532",
			Institution:     "Chase Bank",
			InstitutionLogo: "bank",
			Connected:       true,
			LastSync:        now,
		},
		{
			ID:              savings,
			Name:            "High Yield Savings",
			Type:            model.AccountTypeSavings,
			Balance:         decimal.RequireFromString("12840.50"),
			LastFour:        "7891",
			Institution:     "Ally Bank",
			InstitutionLogo: "piggy-bank",
			Connected:       true,
			LastSync:        now,
		},
		{
			ID:              credit,
			Name:            "Freedom Credit Card",
			Type:            model.AccountTypeCredit,
			Balance:         decimal.RequireFromString("-1250.30"),
			LastFour:        "2468",
			Institution:     "Chase Bank",
			InstitutionLogo: "credit-card",
			Connected:       true,
			LastSync:        now,
		},
	}

	txns := []model.Transaction{
		{
			AccountID:     checking,
			Amount:        decimal.RequireFromString("-45.67"),
			Description:   "Starbucks Coffee",
			Merchant:      "Starbucks",
			Category:      "Food & Drink",
			AISubcategory: "Coffee & Cafes",
			AIConfidence:  confidence("0.95"),
			Date:          now,
			MerchantIcon:  "coffee",
			Recurring:     true,
		},
		{
			AccountID:     checking,
			Amount:        decimal.RequireFromString("-1250.00"),
			Description:   "Rent Payment",
			Merchant:      "Property Management Co",
			Category:      "Housing",
			AISubcategory: "Rent",
			AIConfidence:  confidence("0.99"),
			Date:          now.Add(-day),
			MerchantIcon:  "home",
			Recurring:     true,
		},
		{
			AccountID:     savings,
			Amount:        decimal.RequireFromString("2500.00"),
			Description:   "Salary Deposit",
			Merchant:      "Tech Corp Inc",
			Category:      "Income",
			AISubcategory: "Salary",
			AIConfidence:  confidence("0.99"),
			Date:          now.Add(-2 * day),
			MerchantIcon:  "briefcase",
			Recurring:     true,
		},
		{
			AccountID:     checking,
			Amount:        decimal.RequireFromString("-89.99"),
			Description:   "Amazon Purchase",
			Merchant:      "Amazon",
			Category:      "Shopping",
			AISubcategory: "Online Shopping",
			AIConfidence:  confidence("0.92"),
			Date:          now.Add(-3 * day),
			MerchantIcon:  "package",
		},
		{
			AccountID:     credit,
			Amount:        decimal.RequireFromString("-15.99"),
			Description:   "Netflix Subscription",
			Merchant:      "Netflix",
			Category:      "Entertainment",
			AISubcategory: "Streaming Services",
			AIConfidence:  confidence("0.98"),
			Date:          now.Add(-4 * day),
			MerchantIcon:  "film",
			Recurring:     true,
		},
	}
	for i := range txns {
		txns[i].ID = ids.Next(id.KindTransaction)
	}

	return model.State{Accounts: accounts, Transactions: txns}
}
