// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	// ErrInvalidAmount rejects non-positive transfer amounts before any
	// state is read.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidMint rejects the reserved native asset id where a token
	// mint is required.
	ErrInvalidMint = errors.New("invalid mint")
)
