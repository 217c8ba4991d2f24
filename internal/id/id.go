package id

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Kind is the record type an identifier belongs to.
type Kind string

const (
	KindAccount     Kind = "acct"
	KindTransaction Kind = "txn"
)

// Generator hands out identifiers that are unique for the life of the process.
type Generator interface {
	Next(kind Kind) string
}

// New returns an identifier like "txn_5f0c2d9e-...".
func New(kind Kind) string {
	return Format(kind, uuid.NewString())
}

// Format joins a kind prefix and a token.
func Format(kind Kind, token string) string {
	return string(kind) + "_" + token
}

// Parse splits "txn_<token>" into its kind and token.
func Parse(id string) (Kind, string, error) {
	prefix, token, ok := strings.Cut(id, "_")
	if !ok || token == "" {
		return "", "", fmt.Errorf("invalid id format: %q", id)
	}
	kind := Kind(prefix)
	switch kind {
	case KindAccount, KindTransaction:
	default:
		return "", "", fmt.Errorf("unknown id kind %q in %q", prefix, id)
	}
	return kind, token, nil
}

// KindOf returns the kind of id, or "" if id is malformed.
func KindOf(id string) Kind {
	kind, _, err := Parse(id)
	if err != nil {
		return ""
	}
	return kind
}

// UUIDGenerator draws random v4 UUIDs.
type UUIDGenerator struct{}

// Next implements Generator.
func (UUIDGenerator) Next(kind Kind) string { return New(kind) }

// SequenceGenerator is a monotonic counter under a namespace, e.g.
// "txn_test-000001". Deterministic, so tests can predict ids.
type SequenceGenerator struct {
	Namespace string

	mu  sync.Mutex
	seq int
}

// NewSequenceGenerator creates a SequenceGenerator.
func NewSequenceGenerator(namespace string) *SequenceGenerator {
	return &SequenceGenerator{Namespace: namespace}
}

// Next implements Generator.
func (g *SequenceGenerator) Next(kind Kind) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return Format(kind, fmt.Sprintf("%s-%06d", g.Namespace, g.seq))
}
