// Package store holds the accounts and transactions for a running process and
// writes a snapshot after every mutation.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pocketledger/pocketledger/internal/activity"
	"github.com/pocketledger/pocketledger/internal/id"
	"github.com/pocketledger/pocketledger/internal/model"
	"github.com/pocketledger/pocketledger/internal/snapshot"
)

// ErrUnknownAccount is returned when a transaction names an account the store
// does not hold.
var ErrUnknownAccount = errors.New("unknown account")

// Persister loads and saves the whole state.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go
type Persister interface {
	Load(ctx context.Context) (model.State, bool, error)
	Save(ctx context.Context, state model.State) error
}

// Recorder receives one entry per mutation.
type Recorder interface {
	Record(ctx context.Context, e activity.Entry) error
}

// Store is the single owner of the account and transaction collections.
// All methods are safe for concurrent use; mutations are serialized.
type Store struct {
	mu        sync.Mutex
	state     model.State
	loading   bool
	persister Persister
	ids       id.Generator
	log       zerolog.Logger
	recorder  Recorder
	seed      *model.State
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID-based ids.
func WithIDGenerator(g id.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the logger used for persistence and recorder failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithRecorder reports every mutation to r.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// WithSeed sets the state used when no snapshot exists yet.
func WithSeed(state model.State) Option {
	return func(s *Store) {
		seed := state.Clone()
		s.seed = &seed
	}
}

// Open rehydrates a Store from p. Without a snapshot the store starts from the
// seed (which is saved right away) or empty.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: p,
		ids:       id.UUIDGenerator{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	state, found, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	switch {
	case found:
		s.state = state
		for _, verr := range snapshot.Validate(state) {
			s.log.Warn().Int("invariant", verr.Invariant).Str("record", verr.RecordID).Msg(verr.Description)
		}
	case s.seed != nil:
		s.state = s.seed.Clone()
		if err := p.Save(ctx, s.state.Clone()); err != nil {
			return nil, fmt.Errorf("saving seed state: %w", err)
		}
	}

	s.log.Debug().
		Bool("restored", found).
		Int("accounts", len(s.state.Accounts)).
		Int("transactions", len(s.state.Transactions)).
		Msg("store opened")
	return s, nil
}

// AddAccount assigns a fresh id to a and appends it.
func (s *Store) AddAccount(ctx context.Context, a model.Account) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.ids.Next(id.KindAccount)
	s.state.Accounts = append(s.state.Accounts, a)

	err := s.commit(ctx, activity.Entry{
		Action:  activity.ActionAccountAdded,
		Subject: a.ID,
		Details: fmt.Sprintf("%s (%s)", a.Name, a.Type),
	})
	return a, err
}

// UpdateAccount merges u into the account with the given id. Unknown ids are
// a no-op and report false.
func (s *Store) UpdateAccount(ctx context.Context, accountID string, u model.AccountUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(accountID)
	if i < 0 {
		return false, nil
	}
	u.Apply(&s.state.Accounts[i])

	return true, s.commit(ctx, activity.Entry{
		Action:  activity.ActionAccountUpdated,
		Subject: accountID,
	})
}

// RemoveAccount deletes the account and every transaction that references it.
// Unknown ids are a no-op and report false.
func (s *Store) RemoveAccount(ctx context.Context, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(accountID)
	if i < 0 {
		return false, nil
	}

	accounts := make([]model.Account, 0, len(s.state.Accounts)-1)
	accounts = append(accounts, s.state.Accounts[:i]...)
	accounts = append(accounts, s.state.Accounts[i+1:]...)

	var kept []model.Transaction
	removed := 0
	for _, t := range s.state.Transactions {
		if t.AccountID == accountID {
			removed++
			continue
		}
		kept = append(kept, t)
	}

	s.state.Accounts = accounts
	s.state.Transactions = kept

	return true, s.commit(ctx, activity.Entry{
		Action:  activity.ActionAccountRemoved,
		Subject: accountID,
		Details: fmt.Sprintf("%d transactions removed", removed),
	})
}

// AddTransactions assigns fresh ids to the batch and puts it in front of the
// existing transactions, keeping the batch's own order. Nothing is re-sorted.
// Every transaction must reference an existing account; otherwise nothing is
// added.
func (s *Store) AddTransactions(ctx context.Context, batch []model.Transaction) ([]model.Transaction, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range batch {
		if s.accountIndex(t.AccountID) < 0 {
			return nil, fmt.Errorf("transaction %d: %w %q", i+1, ErrUnknownAccount, t.AccountID)
		}
	}

	added := make([]model.Transaction, len(batch))
	for i, t := range batch {
		t.ID = s.ids.Next(id.KindTransaction)
		added[i] = t
	}

	txns := make([]model.Transaction, 0, len(added)+len(s.state.Transactions))
	txns = append(txns, added...)
	txns = append(txns, s.state.Transactions...)
	s.state.Transactions = txns

	err := s.commit(ctx, activity.Entry{
		Action:  activity.ActionTransactionsAdded,
		Subject: added[0].ID,
		Details: fmt.Sprintf("%d transactions", len(added)),
	})
	return append([]model.Transaction(nil), added...), err
}

// UpdateTransaction merges u into the transaction with the given id. Unknown
// ids are a no-op and report false. Moving a transaction to an unknown
// account is rejected.
func (s *Store) UpdateTransaction(ctx context.Context, txnID string, u model.TransactionUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(txnID)
	if i < 0 {
		return false, nil
	}
	if u.AccountID != nil && s.accountIndex(*u.AccountID) < 0 {
		return false, fmt.Errorf("transaction %s: %w %q", txnID, ErrUnknownAccount, *u.AccountID)
	}
	u.Apply(&s.state.Transactions[i])

	return true, s.commit(ctx, activity.Entry{
		Action:  activity.ActionTransactionUpdated,
		Subject: txnID,
	})
}

// SetLoading sets the cosmetic loading flag. It is never persisted.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading returns the flag set by SetLoading.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Accounts returns a copy of all accounts.
func (s *Store) Accounts() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Account(nil), s.state.Accounts...)
}

// Transactions returns a copy of all transactions in stored order.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Transaction(nil), s.state.Transactions...)
}

// Account looks up a single account.
func (s *Store) Account(accountID string) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.accountIndex(accountID); i >= 0 {
		return s.state.Accounts[i], true
	}
	return model.Account{}, false
}

// Transaction looks up a single transaction.
func (s *Store) Transaction(txnID string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.transactionIndex(txnID); i >= 0 {
		return s.state.Transactions[i], true
	}
	return model.Transaction{}, false
}

// State returns a copy of the full state.
func (s *Store) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) accountIndex(accountID string) int {
	for i, a := range s.state.Accounts {
		if a.ID == accountID {
			return i
		}
	}
	return -1
}

func (s *Store) transactionIndex(txnID string) int {
	for i, t := range s.state.Transactions {
		if t.ID == txnID {
			return i
		}
	}
	return -1
}

// commit saves the current state and records e. Must be called with mu held.
// A failed save leaves the in-memory change in place.
func (s *Store) commit(ctx context.Context, e activity.Entry) error {
	if err := s.persister.Save(ctx, s.state.Clone()); err != nil {
		s.log.Error().Err(err).Str("action", string(e.Action)).Str("subject", e.Subject).Msg("persisting state")
		return fmt.Errorf("persisting state: %w", err)
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, e); err != nil {
			s.log.Warn().Err(err).Str("action", string(e.Action)).Msg("recording activity")
		}
	}
	return nil
}
