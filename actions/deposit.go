// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
)

var (
	_ chain.Action = (*Deposit)(nil)
	_ codec.Typed  = (*DepositResult)(nil)
)

// Deposit moves native units from the actor into vault custody. Any
// identity may deposit.
type Deposit struct {
	// Amount of native base units to deposit.
	Amount uint64 `json:"amount"`
}

func (*Deposit) GetTypeID() uint8 {
	return depositID
}

func (t *Deposit) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (codec.Typed, error) {
	if t.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	record, exists, err := storage.GetVault(ctx, mu)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: vault record", storage.ErrNotInitialized)
	}
	if err := depositAsset(ctx, mu, actor, storage.VaultAddress(), storage.NativeAsset, t.Amount, record); err != nil {
		return nil, err
	}
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	return &DepositResult{Balance: record.Balance}, nil
}

type DepositResult struct {
	// Balance is the vault's recorded native balance after the deposit.
	Balance uint64 `json:"balance"`
}

func (*DepositResult) GetTypeID() uint8 {
	return depositID
}
