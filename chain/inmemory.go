// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/database"

	"github.com/probalance/provault/state"
)

var (
	_ state.Mutable  = (*InMemoryStore)(nil)
	_ state.Database = (*InMemoryStore)(nil)
)

// InMemoryStore is a storage that acts as a wrapper around a map and
// implements state.Database.
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (s *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := s.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (s *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	s.Storage[string(key)] = value
	return nil
}

func (s *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(s.Storage, string(key))
	return nil
}

func (s *InMemoryStore) NewBatch() state.Batch {
	return &memBatch{store: s}
}

func (*InMemoryStore) Close() error {
	return nil
}

type memOp struct {
	key    string
	value  []byte
	delete bool
}

type memBatch struct {
	store *InMemoryStore
	ops   []memOp
}

func (b *memBatch) Put(key []byte, value []byte) error {
	b.ops = append(b.ops, memOp{key: string(key), value: value})
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.ops = append(b.ops, memOp{key: string(key), delete: true})
	return nil
}

func (b *memBatch) Write() error {
	for _, op := range b.ops {
		if op.delete {
			delete(b.store.Storage, op.key)
			continue
		}
		b.store.Storage[op.key] = op.value
	}
	b.ops = nil
	return nil
}
