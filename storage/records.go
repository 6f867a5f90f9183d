// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/probalance/provault/codec"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Custody is the recorded holdings of the vault for one asset. The
// native asset is tracked on the VaultRecord itself, per-mint assets on
// their TokenCustody account; both paths share this contract so they
// cannot diverge.
type Custody interface {
	// Credit records a deposit. Fails with ErrInvalidBalance on overflow
	// without mutating the record.
	Credit(amount uint64) error
	// Debit records a withdrawal. Fails with ErrInsufficientBalance if
	// [amount] exceeds the recorded balance, without mutating the record.
	Debit(amount uint64) error
}

var (
	_ Custody = (*VaultRecord)(nil)
	_ Custody = (*TokenCustody)(nil)
)

// VaultRecord is the singleton vault state, borsh-encoded at the key of
// the deterministic vault address.
type VaultRecord struct {
	// Balance is the native base-asset amount owed to depositors. The
	// vault address's own balance cell always equals
	// CustodyReserve + Balance.
	Balance uint64

	// LastWithdrawTime is the unix-second timestamp of the most recent
	// successful withdraw-class operation. Recorded for audit; nothing
	// enforces a cooldown on it.
	LastWithdrawTime int64

	Operator codec.Address
	Admin    codec.Address
}

func (r *VaultRecord) Credit(amount uint64) error {
	nbal, err := smath.Add(r.Balance, amount)
	if err != nil {
		return fmt.Errorf("%w: could not credit vault (bal=%d, amount=%d)", ErrInvalidBalance, r.Balance, amount)
	}
	r.Balance = nbal
	return nil
}

func (r *VaultRecord) Debit(amount uint64) error {
	if amount > r.Balance {
		return fmt.Errorf("%w: vault holds %d, requested %d", ErrInsufficientBalance, r.Balance, amount)
	}
	r.Balance -= amount
	return nil
}

// TokenCustody is the vault's custody account for one mint,
// borsh-encoded at the key of the derived custody address.
type TokenCustody struct {
	Mint    ids.ID
	Balance uint64
}

func (c *TokenCustody) Credit(amount uint64) error {
	nbal, err := smath.Add(c.Balance, amount)
	if err != nil {
		return fmt.Errorf("%w: could not credit custody (mint=%s, bal=%d, amount=%d)", ErrInvalidBalance, c.Mint, c.Balance, amount)
	}
	c.Balance = nbal
	return nil
}

func (c *TokenCustody) Debit(amount uint64) error {
	if amount > c.Balance {
		return fmt.Errorf("%w: custody of %s holds %d, requested %d", ErrInsufficientBalance, c.Mint, c.Balance, amount)
	}
	c.Balance -= amount
	return nil
}
