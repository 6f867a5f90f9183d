// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probalance/provault/auth"
	"github.com/probalance/provault/chain"
	"github.com/probalance/provault/state"
	"github.com/probalance/provault/storage"
)

func TestWithdrawAction(t *testing.T) {
	tests := map[string]chain.ActionTest{
		"ZeroAmount": {
			Action:      &Withdraw{Amount: 0},
			Actor:       admin,
			State:       chain.NewInMemoryStore(),
			ExpectedErr: ErrInvalidAmount,
		},
		"VaultMissing": {
			Action:      &Withdraw{Amount: 1},
			Actor:       admin,
			State:       chain.NewInMemoryStore(),
			ExpectedErr: storage.ErrNotInitialized,
		},
		"NotAdmin": {
			Action:      &Withdraw{Amount: 1},
			Actor:       other,
			State:       vaultStore(t, 100, 0),
			ExpectedErr: auth.ErrUnauthorized,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				require := require.New(t)
				record, _, err := storage.GetVault(ctx, mu)
				require.NoError(err)
				require.Equal(uint64(100), record.Balance)
			},
		},
		"OperatorIsNotAdmin": {
			Action:      &Withdraw{Amount: 1},
			Actor:       operator,
			State:       vaultStore(t, 100, 0),
			ExpectedErr: auth.ErrUnauthorized,
		},
		"Overdraw": {
			Action:      &Withdraw{Amount: 101},
			Actor:       admin,
			State:       vaultStore(t, 100, 0),
			ExpectedErr: storage.ErrInsufficientBalance,
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				require := require.New(t)
				record, _, err := storage.GetVault(ctx, mu)
				require.NoError(err)
				require.Equal(uint64(100), record.Balance)
			},
		},
		"SimpleWithdraw": {
			Action:         &Withdraw{Amount: 40},
			Actor:          admin,
			Timestamp:      1_700_000_000,
			State:          vaultStore(t, 100, 0),
			ExpectedOutput: &WithdrawResult{Balance: 60},
			Assertion: func(ctx context.Context, t *testing.T, mu state.Mutable) {
				require := require.New(t)
				record, _, err := storage.GetVault(ctx, mu)
				require.NoError(err)
				require.Equal(uint64(60), record.Balance)
				require.Equal(int64(1_700_000_000), record.LastWithdrawTime)

				adminBal, err := storage.GetBalance(ctx, mu, admin, storage.NativeAsset)
				require.NoError(err)
				require.Equal(uint64(40), adminBal)
			},
		},
	}

	testSuite := chain.ActionTestSuite{Tests: tests}
	testSuite.Run(t)
}
