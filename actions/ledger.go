// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
)

// The native and token paths are the same ledger parameterized over an
// asset id (storage.NativeAsset for the base asset). Both asset handlers
// move units through these two helpers so the paths cannot diverge.

// depositAsset moves [amount] of [asset] from [from] into the vault's
// [holder] cell and credits the recorded custody.
func depositAsset(
	ctx context.Context,
	mu state.Mutable,
	from codec.Address,
	holder codec.Address,
	asset ids.ID,
	amount uint64,
	custody storage.Custody,
) error {
	if _, err := storage.SubBalance(ctx, mu, from, asset, amount); err != nil {
		return err
	}
	if _, err := storage.AddBalance(ctx, mu, holder, asset, amount); err != nil {
		return err
	}
	return custody.Credit(amount)
}

// withdrawAsset debits the recorded custody and moves [amount] of
// [asset] out of the vault's [holder] cell to [to]. The debit runs
// first, re-validating the recorded balance at the point of mutation.
func withdrawAsset(
	ctx context.Context,
	mu state.Mutable,
	holder codec.Address,
	to codec.Address,
	asset ids.ID,
	amount uint64,
	custody storage.Custody,
) error {
	if err := custody.Debit(amount); err != nil {
		return err
	}
	if _, err := storage.SubBalance(ctx, mu, holder, asset, amount); err != nil {
		return err
	}
	if _, err := storage.AddBalance(ctx, mu, to, asset, amount); err != nil {
		return err
	}
	return nil
}
