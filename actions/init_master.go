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
	_ chain.Action = (*InitMaster)(nil)
	_ codec.Typed  = (*InitMasterResult)(nil)
)

// InitMaster creates the singleton vault record. Callable by anyone,
// exactly once; the actor pays the custody reserve.
type InitMaster struct {
	// Admin may withdraw vault funds to itself.
	Admin codec.Address `json:"admin"`

	// Operator may send vault funds to arbitrary receivers.
	Operator codec.Address `json:"operator"`
}

func (*InitMaster) GetTypeID() uint8 {
	return initMasterID
}

func (t *InitMaster) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (codec.Typed, error) {
	_, exists, err := storage.GetVault(ctx, mu)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: vault record", storage.ErrAlreadyInitialized)
	}

	// Fund the protocol-reserved minimum from the payer so the custody
	// account stays above it even when the recorded balance is zero.
	vault := storage.VaultAddress()
	if reserve := r.GetCustodyReserve(); reserve > 0 {
		if _, err := storage.SubBalance(ctx, mu, actor, storage.NativeAsset, reserve); err != nil {
			return nil, err
		}
		if _, err := storage.AddBalance(ctx, mu, vault, storage.NativeAsset, reserve); err != nil {
			return nil, err
		}
	}

	record := &storage.VaultRecord{
		Balance:          0,
		LastWithdrawTime: 0,
		Operator:         t.Operator,
		Admin:            t.Admin,
	}
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	return &InitMasterResult{Vault: vault}, nil
}

type InitMasterResult struct {
	Vault codec.Address `json:"vault"`
}

func (*InitMasterResult) GetTypeID() uint8 {
	return initMasterID
}
