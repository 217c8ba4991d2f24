package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	got := New(KindTransaction)
	kind, token, err := Parse(got)
	require.NoError(t, err)
	assert.Equal(t, KindTransaction, kind)

	_, err = uuid.Parse(token)
	assert.NoError(t, err, "token should be a uuid: %s", token)
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		got := New(KindAccount)
		require.False(t, seen[got], "duplicate id %s", got)
		seen[got] = true
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input     string
		wantKind  Kind
		wantToken string
	}{
		{"acct_abc", KindAccount, "abc"},
		{"txn_test-000001", KindTransaction, "test-000001"},
		{"txn_a_b", KindTransaction, "a_b"},
	}
	for _, tt := range tests {
		kind, token, err := Parse(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantKind, kind)
		assert.Equal(t, tt.wantToken, token)
	}
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"acct",
		"acct_",
		"user_123",
		"1",
	}
	for _, input := range badInputs {
		_, _, err := Parse(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAccount, KindOf("acct_x"))
	assert.Equal(t, Kind(""), KindOf("bogus"))
}

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("test")
	assert.Equal(t, "acct_test-000001", g.Next(KindAccount))
	assert.Equal(t, "txn_test-000002", g.Next(KindTransaction))
	assert.Equal(t, "txn_test-000003", g.Next(KindTransaction))
}

func TestUUIDGenerator(t *testing.T) {
	var g Generator = UUIDGenerator{}
	a := g.Next(KindAccount)
	b := g.Next(KindAccount)
	assert.NotEqual(t, a, b)
	assert.Equal(t, KindAccount, KindOf(a))
}
