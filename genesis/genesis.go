// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/probalance/provault/codec"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

// CustomAllocation funds an external account with native units at
// startup. This is the hook for the out-of-core funding collaborator;
// depositors arrive with balances, the vault never mints.
type CustomAllocation struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type Genesis struct {
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	Rules            *Rules              `json:"initialRules"`
}

func NewDefaultGenesis(customAllocations []*CustomAllocation) *Genesis {
	return &Genesis{
		CustomAllocation: customAllocations,
		Rules:            NewDefaultRules(),
	}
}

// Load parses a JSON genesis, filling defaulted rules.
func Load(b []byte) (*Genesis, error) {
	g := &Genesis{Rules: NewDefaultRules()}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	return g, nil
}

// InitializeState credits every custom allocation into the balance
// table. Called once against an empty store.
func (g *Genesis) InitializeState(ctx context.Context, mu state.Mutable) error {
	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		addr, err := codec.StringToAddress(alloc.Address)
		if err != nil {
			return fmt.Errorf("%w: %s", err, alloc.Address)
		}
		supply, err = safemath.Add(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if _, err := storage.AddBalance(ctx, mu, addr, storage.NativeAsset, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	return nil
}
