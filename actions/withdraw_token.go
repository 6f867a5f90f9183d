// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/probalance/provault/auth"
	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
)

var (
	_ chain.Action = (*WithdrawToken)(nil)
	_ codec.Typed  = (*WithdrawTokenResult)(nil)
)

// WithdrawToken pays token units out of the vault's custody account for
// a mint to the admin's own token account. Only the stored admin may
// call it; insufficiency is judged against the per-mint custody balance.
type WithdrawToken struct {
	// Mint identifies the token asset.
	Mint ids.ID `json:"mint"`

	// Amount of token units to withdraw.
	Amount uint64 `json:"amount"`
}

func (*WithdrawToken) GetTypeID() uint8 {
	return withdrawTokenID
}

func (t *WithdrawToken) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	timestamp int64,
	actor codec.Address,
) (codec.Typed, error) {
	if t.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	if t.Mint == storage.NativeAsset {
		return nil, fmt.Errorf("%w: use Withdraw for the native asset", ErrInvalidMint)
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
	custody, exists, err := storage.GetCustody(ctx, mu, t.Mint)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: custody for %s", storage.ErrNotInitialized, t.Mint)
	}
	if err := withdrawAsset(ctx, mu, storage.CustodyAddress(t.Mint), actor, t.Mint, t.Amount, custody); err != nil {
		return nil, err
	}
	record.LastWithdrawTime = timestamp
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	if err := storage.SetCustody(ctx, mu, custody); err != nil {
		return nil, err
	}
	return &WithdrawTokenResult{Balance: custody.Balance}, nil
}

type WithdrawTokenResult struct {
	// Balance is the custody account's recorded balance after the
	// withdrawal.
	Balance uint64 `json:"balance"`
}

func (*WithdrawTokenResult) GetTypeID() uint8 {
	return withdrawTokenID
}
