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
	_ chain.Action = (*SendWithdraw)(nil)
	_ codec.Typed  = (*SendWithdrawResult)(nil)
)

// SendWithdraw pays native units out of vault custody to an arbitrary
// receiver. Only the stored operator may call it; the receiver carries
// no constraint.
type SendWithdraw struct {
	// Receiver of the withdrawn units.
	Receiver codec.Address `json:"receiver"`

	// Amount of native base units to send.
	Amount uint64 `json:"amount"`
}

func (*SendWithdraw) GetTypeID() uint8 {
	return sendWithdrawID
}

func (t *SendWithdraw) Execute(
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
	if err := auth.Authorize(record.Admin, record.Operator, actor, auth.Operator); err != nil {
		return nil, err
	}
	if err := withdrawAsset(ctx, mu, storage.VaultAddress(), t.Receiver, storage.NativeAsset, t.Amount, record); err != nil {
		return nil, err
	}
	record.LastWithdrawTime = timestamp
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	return &SendWithdrawResult{Balance: record.Balance}, nil
}

type SendWithdrawResult struct {
	// Balance is the vault's recorded native balance after the send.
	Balance uint64 `json:"balance"`
}

func (*SendWithdrawResult) GetTypeID() uint8 {
	return sendWithdrawID
}
