package snapshot

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	RecordID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.RecordID, e.Description)
}

// Validate enforces 5 invariants on a state:
//
//  1. every record has a non-empty id, unique across accounts and transactions
//  2. account types are known
//  3. transactions reference an existing account
//  4. AI confidence, when present, is in [0,1]
//  5. balances and amounts have at most 2 decimal places
func Validate(state model.State) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	checkID := func(id, kind string, index int) {
		if id == "" {
			errs = append(errs, ValidationError{
				Invariant:   1,
				RecordID:    fmt.Sprintf("%s #%d", kind, index+1),
				Description: "missing id",
			})
			return
		}
		if seen[id] {
			errs = append(errs, ValidationError{Invariant: 1, RecordID: id, Description: "duplicate id"})
		}
		seen[id] = true
	}

	accountIDs := make(map[string]bool, len(state.Accounts))
	for i, a := range state.Accounts {
		checkID(a.ID, "account", i)
		accountIDs[a.ID] = true

		if !a.Type.Valid() {
			errs = append(errs, ValidationError{
				Invariant:   2,
				RecordID:    a.ID,
				Description: fmt.Sprintf("unknown account type %q", a.Type),
			})
		}
		if !twoPlaces(a.Balance) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				RecordID:    a.ID,
				Description: fmt.Sprintf("balance %s has more than 2 decimal places", a.Balance),
			})
		}
	}

	one := decimal.NewFromInt(1)
	for i, t := range state.Transactions {
		checkID(t.ID, "transaction", i)

		if !accountIDs[t.AccountID] {
			errs = append(errs, ValidationError{
				Invariant:   3,
				RecordID:    t.ID,
				Description: fmt.Sprintf("unknown account %q", t.AccountID),
			})
		}
		if c := t.AIConfidence; c.Valid && (c.Decimal.IsNegative() || c.Decimal.GreaterThan(one)) {
			errs = append(errs, ValidationError{
				Invariant:   4,
				RecordID:    t.ID,
				Description: fmt.Sprintf("confidence %s not in [0,1]", c.Decimal),
			})
		}
		if !twoPlaces(t.Amount) {
			errs = append(errs, ValidationError{
				Invariant:   5,
				RecordID:    t.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", t.Amount),
			})
		}
	}

	return errs
}

func twoPlaces(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}
