package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies linked accounts.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
)

// AccountTypes lists every supported account type.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCredit,
	AccountTypeInvestment,
}

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is a linked bank, card or brokerage account.
type Account struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            AccountType     `json:"type"`
	Balance         decimal.Decimal `json:"balance"` // negative = owed (credit)
	LastFour        string          `json:"last_four"`
	Institution     string          `json:"institution"`
	InstitutionLogo string          `json:"institution_logo"`
	Connected       bool            `json:"connected"`
	LastSync        time.Time       `json:"last_sync"`
	ExternalID      string          `json:"external_id,omitempty"`
}

// AccountUpdate is a partial update. Nil fields are left untouched.
type AccountUpdate struct {
	Name            *string
	Type            *AccountType
	Balance         *decimal.Decimal
	LastFour        *string
	Institution     *string
	InstitutionLogo *string
	Connected       *bool
	LastSync        *time.Time
	ExternalID      *string
}

// Apply merges the non-nil fields of u into a.
func (u AccountUpdate) Apply(a *Account) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.Balance != nil {
		a.Balance = *u.Balance
	}
	if u.LastFour != nil {
		a.LastFour = *u.LastFour
	}
	if u.Institution != nil {
		a.Institution = *u.Institution
	}
	if u.InstitutionLogo != nil {
		a.InstitutionLogo = *u.InstitutionLogo
	}
	if u.Connected != nil {
		a.Connected = *u.Connected
	}
	if u.LastSync != nil {
		a.LastSync = *u.LastSync
	}
	if u.ExternalID != nil {
		a.ExternalID = *u.ExternalID
	}
}

// IsEmpty reports whether the update changes nothing.
func (u AccountUpdate) IsEmpty() bool {
	return u == AccountUpdate{}
}
