// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

// Database is a persistent backing store. Reads must return
// [database.ErrNotFound] for missing keys.
type Database interface {
	Mutable

	NewBatch() Batch
	Close() error
}

// Batch collects writes that are applied atomically by Write.
type Batch interface {
	Put(key []byte, value []byte) error
	Delete(key []byte) error
	Write() error
}
