// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
)

var (
	_ chain.Action = (*DepositToken)(nil)
	_ codec.Typed  = (*DepositTokenResult)(nil)
)

// DepositToken moves units of a mint from the actor's token account into
// the vault's custody account for that mint. Any identity may deposit.
type DepositToken struct {
	// Mint identifies the token asset.
	Mint ids.ID `json:"mint"`

	// Amount of token units to deposit.
	Amount uint64 `json:"amount"`
}

func (*DepositToken) GetTypeID() uint8 {
	return depositTokenID
}

func (t *DepositToken) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (codec.Typed, error) {
	if t.Amount == 0 {
		return nil, ErrInvalidAmount
	}
	if t.Mint == storage.NativeAsset {
		return nil, fmt.Errorf("%w: use Deposit for the native asset", ErrInvalidMint)
	}
	custody, exists, err := storage.GetCustody(ctx, mu, t.Mint)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: custody for %s", storage.ErrNotInitialized, t.Mint)
	}
	if err := depositAsset(ctx, mu, actor, storage.CustodyAddress(t.Mint), t.Mint, t.Amount, custody); err != nil {
		return nil, err
	}
	if err := storage.SetCustody(ctx, mu, custody); err != nil {
		return nil, err
	}
	return &DepositTokenResult{Balance: custody.Balance}, nil
}

type DepositTokenResult struct {
	// Balance is the custody account's recorded balance after the
	// deposit.
	Balance uint64 `json:"balance"`
}

func (*DepositTokenResult) GetTypeID() uint8 {
	return depositTokenID
}
