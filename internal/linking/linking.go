// Package linking connects external bank accounts to the store: it creates
// the accounts, then categorizes and adds their transactions.
package linking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/categorize"
	"github.com/pocketledger/pocketledger/internal/logger"
	"github.com/pocketledger/pocketledger/internal/model"
)

var (
	// ErrUnknownInstitution is returned when a link request names an
	// institution that is not in Institutions().
	ErrUnknownInstitution = errors.New("unknown institution")
	// ErrUnknownAccount is returned when a feed transaction points at an
	// account that is neither in the request nor in the store.
	ErrUnknownAccount = errors.New("unknown account")
)

const defaultMask = "0000"

// ExternalAccount is an account as reported by the bank.
type ExternalAccount struct {
	ID      string
	Name    string
	Subtype model.AccountType
	Balance decimal.Decimal
	Mask    string
}

// FeedTransaction is a transaction as reported by the bank, keyed by the
// bank's account id.
type FeedTransaction struct {
	ExternalAccountID string
	Amount            decimal.Decimal
	Description       string
	Merchant          string
	Date              time.Time
	Pending           bool
	MerchantIcon      string
	Location          string
}

// LinkRequest is everything the user selected in one link session.
type LinkRequest struct {
	InstitutionID string
	Accounts      []ExternalAccount
	Transactions  []FeedTransaction
}

// LinkResult holds the records as stored.
type LinkResult struct {
	Accounts     []model.Account
	Transactions []model.Transaction
}

// AccountStore is the part of the store the linker writes to.
type AccountStore interface {
	AddAccount(ctx context.Context, a model.Account) (model.Account, error)
	AddTransactions(ctx context.Context, batch []model.Transaction) ([]model.Transaction, error)
	UpdateAccount(ctx context.Context, accountID string, u model.AccountUpdate) (bool, error)
	Account(accountID string) (model.Account, bool)
}

// Linker runs link and sync sessions.
type Linker struct {
	store       AccountStore
	categorizer *categorize.Categorizer
	now         func() time.Time
}

// NewLinker creates a Linker. A nil categorizer uses the built-in rules.
func NewLinker(store AccountStore, categorizer *categorize.Categorizer) *Linker {
	if categorizer == nil {
		categorizer = categorize.Default()
	}
	return &Linker{store: store, categorizer: categorizer, now: time.Now}
}

// Link adds every requested account as connected, then adds the feed
// transactions against the new account ids. The request is checked up front;
// an invalid request writes nothing.
func (l *Linker) Link(ctx context.Context, req LinkRequest) (LinkResult, error) {
	log := logger.FromContext(ctx)

	inst, ok := LookupInstitution(req.InstitutionID)
	if !ok {
		return LinkResult{}, fmt.Errorf("%w: %q", ErrUnknownInstitution, req.InstitutionID)
	}

	external := make(map[string]bool, len(req.Accounts))
	for _, ea := range req.Accounts {
		if !ea.Subtype.Valid() {
			return LinkResult{}, fmt.Errorf("account %s: unsupported account type %q", ea.ID, ea.Subtype)
		}
		external[ea.ID] = true
	}
	for i, ft := range req.Transactions {
		if !external[ft.ExternalAccountID] {
			return LinkResult{}, fmt.Errorf("transaction %d: %w %q", i+1, ErrUnknownAccount, ft.ExternalAccountID)
		}
	}

	now := l.now()
	var result LinkResult
	accountIDs := make(map[string]string, len(req.Accounts))
	for _, ea := range req.Accounts {
		mask := ea.Mask
		if mask == "" {
			mask = defaultMask
		}
		a, err := l.store.AddAccount(ctx, model.Account{
			Name:            ea.Name,
			Type:            ea.Subtype,
			Balance:         ea.Balance,
			LastFour:        mask,
			Institution:     inst.Name,
			InstitutionLogo: inst.Logo,
			Connected:       true,
			LastSync:        now,
			ExternalID:      ea.ID,
		})
		if err != nil {
			return result, fmt.Errorf("adding account %s: %w", ea.Name, err)
		}
		accountIDs[ea.ID] = a.ID
		result.Accounts = append(result.Accounts, a)
	}

	batch := make([]model.Transaction, 0, len(req.Transactions))
	for _, ft := range req.Transactions {
		batch = append(batch, l.toTransaction(ft, accountIDs[ft.ExternalAccountID]))
	}
	added, err := l.store.AddTransactions(ctx, batch)
	result.Transactions = added
	if err != nil {
		return result, fmt.Errorf("adding transactions: %w", err)
	}

	log.Info().
		Str("institution", inst.ID).
		Int("accounts", len(result.Accounts)).
		Int("transactions", len(result.Transactions)).
		Msg("linked accounts")
	return result, nil
}

// Sync adds feed transactions to an account that is already in the store and
// bumps its last-sync time. ExternalAccountID on the feed is ignored.
func (l *Linker) Sync(ctx context.Context, accountID string, feed []FeedTransaction) ([]model.Transaction, error) {
	if _, ok := l.store.Account(accountID); !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAccount, accountID)
	}

	batch := make([]model.Transaction, 0, len(feed))
	for _, ft := range feed {
		batch = append(batch, l.toTransaction(ft, accountID))
	}
	added, err := l.store.AddTransactions(ctx, batch)
	if err != nil {
		return added, fmt.Errorf("adding transactions: %w", err)
	}

	now := l.now()
	if _, err := l.store.UpdateAccount(ctx, accountID, model.AccountUpdate{LastSync: &now}); err != nil {
		return added, fmt.Errorf("updating last sync: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info().Str("account", accountID).Int("transactions", len(added)).Msg("synced account")
	return added, nil
}

func (l *Linker) toTransaction(ft FeedTransaction, accountID string) model.Transaction {
	merchant := ft.Merchant
	if merchant == "" {
		merchant = ft.Description
	}
	return l.categorizer.Enrich(model.Transaction{
		AccountID:    accountID,
		Amount:       ft.Amount,
		Description:  ft.Description,
		Merchant:     merchant,
		Date:         ft.Date,
		Pending:      ft.Pending,
		MerchantIcon: ft.MerchantIcon,
		Location:     ft.Location,
	})
}

