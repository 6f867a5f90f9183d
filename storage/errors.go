// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	// ErrInvalidBalance reports balance arithmetic that would overflow or
	// underflow a balance cell.
	ErrInvalidBalance = errors.New("invalid balance")

	// ErrInsufficientBalance reports a withdraw-class amount exceeding the
	// recorded custody balance.
	ErrInsufficientBalance = errors.New("not enough balance")

	// ErrAlreadyInitialized reports a re-run of one-time setup.
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrNotInitialized reports an operation against a vault or token
	// custody account that does not exist yet.
	ErrNotInitialized = errors.New("not initialized")
)
