// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/probalance/provault/state"
)

var _ state.Mutable = (*TState)(nil)

// TState buffers the writes of a single state transition on top of an
// immutable base. Nothing reaches the base until [Commit]; dropping the
// TState discards every pending change.
type TState struct {
	base        state.Immutable
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState reading through to [base].
func New(base state.Immutable) *TState {
	return &TState{
		base:        base,
		changedKeys: make(map[string]maybe.Maybe[[]byte]),
	}
}

func (ts *TState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if v, ok := ts.changedKeys[string(key)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return v.Value(), nil
	}
	return ts.base.GetValue(ctx, key)
}

func (ts *TState) Insert(_ context.Context, key []byte, value []byte) error {
	ts.changedKeys[string(key)] = maybe.Some(value)
	return nil
}

func (ts *TState) Remove(_ context.Context, key []byte) error {
	ts.changedKeys[string(key)] = maybe.Nothing[[]byte]()
	return nil
}

// PendingChanges returns the number of keys this view would modify.
func (ts *TState) PendingChanges() int {
	return len(ts.changedKeys)
}

// Commit stages every buffered change into [b] and applies it with a
// single Write. Once Commit is called the TState should not be reused.
func (ts *TState) Commit(b state.Batch) error {
	for key, v := range ts.changedKeys {
		if v.IsNothing() {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := b.Put([]byte(key), v.Value()); err != nil {
			return err
		}
	}
	return b.Write()
}
