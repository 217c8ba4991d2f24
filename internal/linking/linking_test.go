package linking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/pocketledger/internal/id"
	"github.com/pocketledger/pocketledger/internal/kv"
	"github.com/pocketledger/pocketledger/internal/model"
	"github.com/pocketledger/pocketledger/internal/snapshot"
	"github.com/pocketledger/pocketledger/internal/store"
)

var linkTime = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func newTestLinker(t *testing.T) (*Linker, *store.Store) {
	t.Helper()
	p := snapshot.NewPersister(kv.NewMemoryStore(), "bank-storage")
	s, err := store.Open(context.Background(), p, store.WithIDGenerator(id.NewSequenceGenerator("test")))
	require.NoError(t, err)
	l := NewLinker(s, nil)
	l.now = func() time.Time { return linkTime }
	return l, s
}

func testRequest() LinkRequest {
	return LinkRequest{
		InstitutionID: "chase",
		Accounts: []ExternalAccount{
			{ID: "acc1", Name: "Primary Checking", Subtype: model.AccountTypeChecking, Balance: decimal.RequireFromString("2450.75"), Mask: "1234"},
			{ID: "acc3", Name: "Credit Card", Subtype: model.AccountTypeCredit, Balance: decimal.RequireFromString("-1250.30")},
		},
		Transactions: []FeedTransaction{
			{ExternalAccountID: "acc1", Amount: decimal.RequireFromString("-45.67"), Description: "Starbucks Coffee", Merchant: "Starbucks", Date: linkTime},
			{ExternalAccountID: "acc3", Amount: decimal.RequireFromString("-89.99"), Description: "Amazon Purchase", Date: linkTime.Add(-24 * time.Hour)},
		},
	}
}

func TestInstitutions(t *testing.T) {
	insts := Institutions()
	require.Len(t, insts, 6)
	assert.Equal(t, "chase", insts[0].ID)

	inst, ok := LookupInstitution("ALLY")
	require.True(t, ok)
	assert.Equal(t, "Ally Bank", inst.Name)

	_, ok = LookupInstitution("monzo")
	assert.False(t, ok)

	insts[0].Name = "changed"
	assert.Equal(t, "Chase", Institutions()[0].Name)
}

func TestLink(t *testing.T) {
	l, s := newTestLinker(t)

	res, err := l.Link(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, res.Accounts, 2)
	require.Len(t, res.Transactions, 2)

	checking := res.Accounts[0]
	assert.Equal(t, "acct_test-000001", checking.ID)
	assert.Equal(t, "Chase", checking.Institution)
	assert.Equal(t, "bank", checking.InstitutionLogo)
	assert.True(t, checking.Connected)
	assert.Equal(t, linkTime, checking.LastSync)
	assert.Equal(t, "acc1", checking.ExternalID)
	assert.Equal(t, "1234", checking.LastFour)
	assert.Equal(t, "0000", res.Accounts[1].LastFour)

	coffee := res.Transactions[0]
	assert.Equal(t, checking.ID, coffee.AccountID)
	assert.Equal(t, "Food & Drink", coffee.Category)
	assert.Equal(t, "Coffee & Cafes", coffee.AISubcategory)
	assert.True(t, coffee.AIConfidence.Valid)
	assert.Equal(t, "0.95", coffee.AIConfidence.Decimal.String())

	amazon := res.Transactions[1]
	assert.Equal(t, res.Accounts[1].ID, amazon.AccountID)
	assert.Equal(t, "Amazon Purchase", amazon.Merchant, "merchant falls back to description")
	assert.Equal(t, "Shopping", amazon.Category)

	assert.Len(t, s.Accounts(), 2)
	assert.Equal(t, res.Transactions, s.Transactions())
	assert.Empty(t, snapshot.Validate(s.State()))
}

func TestLink_UnknownInstitution(t *testing.T) {
	l, s := newTestLinker(t)
	req := testRequest()
	req.InstitutionID = "monzo"

	_, err := l.Link(context.Background(), req)
	require.ErrorIs(t, err, ErrUnknownInstitution)
	assert.Empty(t, s.Accounts())
}

func TestLink_InvalidRequestWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LinkRequest)
		wantErr string
	}{
		{
			name:    "bad account type",
			mutate:  func(r *LinkRequest) { r.Accounts[1].Subtype = "loan" },
			wantErr: `unsupported account type "loan"`,
		},
		{
			name:    "transaction for unselected account",
			mutate:  func(r *LinkRequest) { r.Transactions[1].ExternalAccountID = "acc2" },
			wantErr: `unknown account "acc2"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, s := newTestLinker(t)
			req := testRequest()
			tt.mutate(&req)

			_, err := l.Link(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, s.Accounts())
			assert.Empty(t, s.Transactions())
		})
	}
}

func TestSync(t *testing.T) {
	l, s := newTestLinker(t)
	ctx := context.Background()
	a, err := s.AddAccount(ctx, model.Account{Name: "Checking", Type: model.AccountTypeChecking})
	require.NoError(t, err)

	added, err := l.Sync(ctx, a.ID, []FeedTransaction{
		{Amount: decimal.RequireFromString("-15.99"), Description: "NETFLIX.COM", Date: linkTime},
	})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, a.ID, added[0].AccountID)
	assert.Equal(t, "Entertainment", added[0].Category)

	got, _ := s.Account(a.ID)
	assert.Equal(t, linkTime, got.LastSync)

	_, err = l.Sync(ctx, "acct_missing", nil)
	assert.ErrorIs(t, err, ErrUnknownAccount)
}
