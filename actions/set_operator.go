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
	_ chain.Action = (*SetOperator)(nil)
	_ codec.Typed  = (*SetOperatorResult)(nil)
)

// SetOperator installs a new operator identity. Only the admin may call
// it.
type SetOperator struct {
	NewOperator codec.Address `json:"newOperator"`
}

func (*SetOperator) GetTypeID() uint8 {
	return setOperatorID
}

func (t *SetOperator) Execute(
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
	record.Operator = t.NewOperator
	if err := storage.SetVault(ctx, mu, record); err != nil {
		return nil, err
	}
	return &SetOperatorResult{Operator: record.Operator}, nil
}

type SetOperatorResult struct {
	Operator codec.Address `json:"operator"`
}

func (*SetOperatorResult) GetTypeID() uint8 {
	return setOperatorID
}
