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
	_ chain.Action = (*SetAdmin)(nil)
	_ codec.Typed  = (*SetAdminResult)(nil)
)

// SetAdmin transfers admin rights to a new identity. Only the current
// admin may call it.
type SetAdmin struct {
	NewAdmin codec.Address `json:"newAdmin"`
}

func (*SetAdmin) GetTypeID() uint8 {
	return setAdminID
}

func (t *SetAdmin) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
) (codec.Typed, error) {
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
	record.Admin = t.NewAdmin
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	return &SetAdminResult{Admin: record.Admin}, nil
}

type SetAdminResult struct {
	Admin codec.Address `json:"admin"`
}

func (*SetAdminResult) GetTypeID() uint8 {
	return setAdminID
}
