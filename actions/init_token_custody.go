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
	_ chain.Action = (*InitTokenCustody)(nil)
	_ codec.Typed  = (*InitTokenCustodyResult)(nil)
)

// InitTokenCustody onboards a mint by creating the vault's custody
// account for it. Any payer may call it, once per mint; a second call
// for the same mint is a hard error so duplicate-initialization attempts
// surface instead of masking bugs.
type InitTokenCustody struct {
	// Mint of the token asset to onboard.
	Mint ids.ID `json:"mint"`
}

func (*InitTokenCustody) GetTypeID() uint8 {
	return initTokenCustodyID
}

func (t *InitTokenCustody) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	_ codec.Address,
) (codec.Typed, error) {
	if t.Mint == storage.NativeAsset {
		return nil, fmt.Errorf("%w: native asset needs no custody account", ErrInvalidMint)
	}
	_, exists, err := storage.GetVault(ctx, mu)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: vault record", storage.ErrNotInitialized)
	}
	_, exists, err = storage.GetCustody(ctx, mu, t.Mint)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: custody for %s", storage.ErrAlreadyInitialized, t.Mint)
	}
	custody := &storage.TokenCustody{
		Mint:    t.Mint,
		Balance: 0,
	}
	if err := storage.SetCustody(ctx, mu, custody); err != nil {
		return nil, err
	}
	return &InitTokenCustodyResult{Custody: storage.CustodyAddress(t.Mint)}, nil
}

type InitTokenCustodyResult struct {
	Custody codec.Address `json:"custody"`
}

func (*InitTokenCustodyResult) GetTypeID() uint8 {
	return initTokenCustodyID
}
