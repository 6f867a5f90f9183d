// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/probalance/provault/auth"
	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
)

var (
	_ chain.Action = (*Withdraw)(nil)
	_ codec.Typed  = (*WithdrawResult)(nil)
)

// Withdraw pays native units out of vault custody to the admin's own
// account. Only the stored admin may call it.
type Withdraw struct {
	// Amount of native base units to withdraw.
	Amount uint64 `json:"amount"`
}

func (*Withdraw) GetTypeID() uint8 {
	return withdrawID
}

func (t *Withdraw) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
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
	if err := auth.Authorize(record.Admin, record.Operator, actor, auth.Admin); err != nil {
		return nil, err
	}
	if err := withdrawAsset(ctx, mu, storage.VaultAddress(), actor, storage.NativeAsset, t.Amount, record); err != nil {
		return nil, err
	}
	record.LastWithdrawTime = timestamp
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	return &WithdrawResult{Balance: record.Balance}, nil
}

type WithdrawResult struct {
	// Balance is the vault's recorded native balance after the
	// withdrawal.
	Balance uint64 `json:"balance"`
}

func (*WithdrawResult) GetTypeID() uint8 {
	return withdrawID
}
