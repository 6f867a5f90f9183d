// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"

	"github.com/probalance/provault/state"
)

var _ state.Database = (*Database)(nil)

type Config struct {
	// Sync forces every commit through to disk before returning.
	Sync bool

	BytesPerSync int
	MaxOpenFiles int
}

func NewDefaultConfig() Config {
	return Config{
		Sync:         true,
		BytesPerSync: 1 << 20, // 1 MB
		MaxOpenFiles: 4_096,
	}
}

// Database persists vault state in a pebble store. Batches commit
// atomically, which is what gives failed operations their no-effect
// guarantee across restarts.
type Database struct {
	db *pebble.DB
	wo *pebble.WriteOptions
}

func New(dir string, cfg Config) (*Database, error) {
	opts := &pebble.Options{
		BytesPerSync: cfg.BytesPerSync,
		MaxOpenFiles: cfg.MaxOpenFiles,
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, err
	}
	wo := pebble.NoSync
	if cfg.Sync {
		wo = pebble.Sync
	}
	return &Database{db: db, wo: wo}, nil
}

func (d *Database) GetValue(_ context.Context, key []byte) ([]byte, error) {
	v, closer, err := d.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// [v] is only valid until the closer is released.
	value := make([]byte, len(v))
	copy(value, v)
	if err := closer.Close(); err != nil {
		return nil, err
	}
	return value, nil
}

func (d *Database) Insert(_ context.Context, key []byte, value []byte) error {
	return d.db.Set(key, value, d.wo)
}

func (d *Database) Remove(_ context.Context, key []byte) error {
	return d.db.Delete(key, d.wo)
}

func (d *Database) NewBatch() state.Batch {
	return &batch{b: d.db.NewBatch(), wo: d.wo}
}

func (d *Database) Close() error {
	return d.db.Close()
}

type batch struct {
	b  *pebble.Batch
	wo *pebble.WriteOptions
}

func (b *batch) Put(key []byte, value []byte) error {
	return b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	return b.b.Delete(key, nil)
}

func (b *batch) Write() error {
	if err := b.b.Commit(b.wo); err != nil {
		return err
	}
	return b.b.Close()
}
