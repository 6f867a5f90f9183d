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
	_ chain.Action = (*SendWithdrawToken)(nil)
	_ codec.Typed  = (*SendWithdrawTokenResult)(nil)
)

// SendWithdrawToken pays token units out of the vault's custody account
// for a mint to an arbitrary receiver's token account. Only the stored
// operator may call it.
type SendWithdrawToken struct {
	// Mint identifies the token asset.
	Mint ids.ID `json:"mint"`

	// Receiver of the withdrawn units.
	Receiver codec.Address `json:"receiver"`

	// Amount of token units to send.
	Amount uint64 `json:"amount"`
}

func (*SendWithdrawToken) GetTypeID() uint8 {
	return sendWithdrawTokenID
}

func (t *SendWithdrawToken) Execute(
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
		return nil, fmt.Errorf("%w: use SendWithdraw for the native asset", ErrInvalidMint)
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
	custody, exists, err := storage.GetCustody(ctx, mu, t.Mint)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: custody for %s", storage.ErrNotInitialized, t.Mint)
	}
	if err := withdrawAsset(ctx, mu, storage.CustodyAddress(t.Mint), t.Receiver, t.Mint, t.Amount, custody); err != nil {
		return nil, err
	}
	record.LastWithdrawTime = timestamp
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	if err := storage.SetCustody(ctx, mu, custody); err != nil {
		return nil, err
	}
	return &SendWithdrawTokenResult{Balance: custody.Balance}, nil
}

type SendWithdrawTokenResult struct {
	// Balance is the custody account's recorded balance after the send.
	Balance uint64 `json:"balance"`
}

func (*SendWithdrawTokenResult) GetTypeID() uint8 {
	return sendWithdrawTokenID
}
