// Package snapshot encodes the store's state into a single versioned blob and
// keeps it in a kv slot.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pocketledger/pocketledger/internal/kv"
	"github.com/pocketledger/pocketledger/internal/model"
)

// Version is the envelope format written by Encode.
const Version = 1

type envelope struct {
	Version int         `json:"version"`
	State   model.State `json:"state"`
}

// Encode serializes state. Timestamps keep nanosecond precision and amounts
// are written as decimal strings, so Decode(Encode(s)) reproduces s.
func Encode(state model.State) ([]byte, error) {
	env := envelope{Version: Version, State: state}
	if env.State.Accounts == nil {
		env.State.Accounts = []model.Account{}
	}
	if env.State.Transactions == nil {
		env.State.Transactions = []model.Transaction{}
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode.
func Decode(data []byte) (model.State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.State{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if env.Version != Version {
		return model.State{}, fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	return env.State, nil
}

// Persister stores the state under a fixed namespace key.
type Persister struct {
	store     kv.Store
	namespace string
}

// NewPersister creates a Persister.
func NewPersister(store kv.Store, namespace string) *Persister {
	return &Persister{store: store, namespace: namespace}
}

// Namespace returns the key the snapshot is kept under.
func (p *Persister) Namespace() string { return p.namespace }

// Load returns the stored state. found is false when nothing has been saved yet.
func (p *Persister) Load(ctx context.Context) (state model.State, found bool, err error) {
	data, err := p.store.Get(ctx, p.namespace)
	if errors.Is(err, kv.ErrNotFound) {
		return model.State{}, false, nil
	}
	if err != nil {
		return model.State{}, false, fmt.Errorf("loading snapshot %s: %w", p.namespace, err)
	}
	state, err = Decode(data)
	if err != nil {
		return model.State{}, false, fmt.Errorf("loading snapshot %s: %w", p.namespace, err)
	}
	return state, true, nil
}

// Save replaces the stored state.
func (p *Persister) Save(ctx context.Context, state model.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := p.store.Put(ctx, p.namespace, data); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", p.namespace, err)
	}
	return nil
}
